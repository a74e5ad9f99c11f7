// Package promptpay builds PromptPay payment request payloads and renders them as QR codes.
//
// The payload is an EMVCo merchant presented QR code in the PromptPay profile of the
// Bank of Thailand: a sequence of ID / length / value fields terminated by a
// CRC-16/CCITT-FALSE checksum.
package promptpay

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"github.com/sigurn/crc16"
	"github.com/skip2/go-qrcode"
)

// Field IDs of the payload.
const (
	idPayloadFormat       = "00"
	idPOIMethod           = "01"
	idMerchantInfoBOT     = "29"
	idTransactionCurrency = "53"
	idTransactionAmount   = "54"
	idCountryCode         = "58"
	idCRC                 = "63"

	payloadFormatEMVCo = "01"
	poiMethodStatic    = "11"
	poiMethodDynamic   = "12"

	merchantInfoAID     = "00"
	merchantInfoPhone   = "01"
	merchantInfoTaxID   = "02"
	merchantInfoEWallet = "03"

	guidPromptPay = "A000000677010111"
	currencyTHB   = "764"
	countryTH     = "TH"
)

const defaultImageSize = 256

// maxTargetLength is the longest target that fits into the merchant account
// field next to the AID. Field lengths have two digits.
const maxTargetLength = 99 - 4 - len(guidPromptPay) - 4

// MaxAmount is the largest amount a payload can request. The amount field
// holds at most 13 characters.
var MaxAmount = decimal.RequireFromString("9999999999.99")

var (
	ErrInvalidTarget  = errors.New("the PromptPay ID must contain a phone number, tax ID or e-wallet ID")
	ErrNegativeAmount = errors.New("the amount of a payment request must not be negative")
	ErrAmountTooLarge = errors.New("the amount of a payment request must not be larger than 9999999999.99")
)

var crcTable = crc16.MakeTable(crc16.CRC16_CCITT_FALSE)

// Generator creates payment request payloads and renders them.
type Generator interface {
	// Payload returns the payload requesting amount for target. A zero amount
	// creates a payload where the payer enters the amount.
	Payload(target string, amount decimal.Decimal) (string, error)

	// PNG renders the payload as a PNG encoded QR code.
	PNG(payload string) ([]byte, error)
}

// QRGenerator is the default Generator.
type QRGenerator struct {
	// Size is the width and height of rendered images in pixels
	Size int
}

// New returns a QRGenerator rendering images of the given size.
// A size of zero or less uses the default size.
func New(size int) QRGenerator {
	if size <= 0 {
		size = defaultImageSize
	}

	return QRGenerator{Size: size}
}

// Payload implements Generator.
func (g QRGenerator) Payload(target string, amount decimal.Decimal) (string, error) {
	return Payload(target, amount)
}

// PNG implements Generator.
func (g QRGenerator) PNG(payload string) ([]byte, error) {
	size := g.Size
	if size <= 0 {
		size = defaultImageSize
	}

	png, err := qrcode.Encode(payload, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("could not render QR code: %w", err)
	}

	return png, nil
}

// Payload builds the PromptPay payload for target and amount.
func Payload(target string, amount decimal.Decimal) (string, error) {
	if amount.IsNegative() {
		return "", ErrNegativeAmount
	}

	if amount.Round(2).GreaterThan(MaxAmount) {
		return "", ErrAmountTooLarge
	}

	account, err := merchantAccount(target)
	if err != nil {
		return "", err
	}

	poiMethod := poiMethodStatic
	if amount.IsPositive() {
		poiMethod = poiMethodDynamic
	}

	var b strings.Builder
	b.WriteString(field(idPayloadFormat, payloadFormatEMVCo))
	b.WriteString(field(idPOIMethod, poiMethod))
	b.WriteString(field(idMerchantInfoBOT, field(merchantInfoAID, guidPromptPay)+account))
	b.WriteString(field(idCountryCode, countryTH))
	b.WriteString(field(idTransactionCurrency, currencyTHB))
	if amount.IsPositive() {
		b.WriteString(field(idTransactionAmount, amount.StringFixed(2)))
	}

	// The checksum covers its own ID and length
	b.WriteString(idCRC + "04")
	b.WriteString(Checksum(b.String()))

	return b.String(), nil
}

// Checksum returns the CRC-16/CCITT-FALSE of s as four upper case hex digits.
func Checksum(s string) string {
	return fmt.Sprintf("%04X", crc16.Checksum([]byte(s), crcTable))
}

// ValidateTarget checks that a payload can be built for target.
func ValidateTarget(target string) error {
	digits := sanitizeTarget(target)
	if digits == "" || len(digits) > maxTargetLength {
		return ErrInvalidTarget
	}

	return nil
}

// merchantAccount returns the merchant account sub-field identifying target.
func merchantAccount(target string) (string, error) {
	if err := ValidateTarget(target); err != nil {
		return "", err
	}

	digits := sanitizeTarget(target)

	switch {
	case len(digits) >= 15:
		return field(merchantInfoEWallet, digits), nil
	case len(digits) >= 13:
		return field(merchantInfoTaxID, digits), nil
	default:
		return field(merchantInfoPhone, formatPhone(digits)), nil
	}
}

// sanitizeTarget removes everything but digits.
func sanitizeTarget(target string) string {
	return strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII || !unicode.IsDigit(r) {
			return -1
		}
		return r
	}, target)
}

// formatPhone converts a national phone number into the
// 13 digit international form, e.g. 0801234567 to 0066801234567.
func formatPhone(digits string) string {
	if strings.HasPrefix(digits, "0") {
		digits = "66" + digits[1:]
	}

	if len(digits) < 13 {
		digits = strings.Repeat("0", 13-len(digits)) + digits
	}

	return digits[len(digits)-13:]
}

func field(id, value string) string {
	return fmt.Sprintf("%s%02d%s", id, len(value), value)
}
