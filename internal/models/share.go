package models

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/thaishare/backend/internal/types"
	"gorm.io/gorm"
)

// Share is an expense split evenly between a number of people.
type Share struct {
	Model
	Date         types.Date      `gorm:"column:date;not null"`
	Title        string          `gorm:"column:title;not null"`
	EvidencePath *string         `gorm:"column:evidence_path"` // Name of the evidence file, nil if none was uploaded
	PromptPay    string          `gorm:"column:promptpay;not null"`
	People       int             `gorm:"column:people;not null;check:people_positive,people > 0"`
	Amount       decimal.Decimal `gorm:"column:amount;type:DECIMAL(20,8);not null;check:amount_positive,amount > 0"`
	PerPerson    decimal.Decimal `gorm:"column:per_person;type:DECIMAL(20,8);not null"`
	QRPath       string          `gorm:"column:qr_path;not null"` // Name of the QR code image, empty until it has been rendered
}

// BeforeSave trims whitespace from string fields and validates the share.
func (s *Share) BeforeSave(_ *gorm.DB) error {
	s.Title = strings.TrimSpace(s.Title)
	s.PromptPay = strings.TrimSpace(s.PromptPay)

	return s.Validate()
}

// Validate returns the first violated invariant of the share.
func (s Share) Validate() error {
	if strings.TrimSpace(s.Title) == "" {
		return ErrShareTitleEmpty
	}

	if strings.TrimSpace(s.PromptPay) == "" {
		return ErrSharePromptPayEmpty
	}

	if s.People < 1 {
		return ErrSharePeopleInvalid
	}

	if !s.Amount.IsPositive() {
		return ErrShareAmountInvalid
	}

	return nil
}

// HasEvidence reports whether an evidence file is attached.
func (s Share) HasEvidence() bool {
	return s.EvidencePath != nil && *s.EvidencePath != ""
}
