package v1

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/thaishare/backend/internal/httputil"
	"github.com/thaishare/backend/internal/models"
	"github.com/thaishare/backend/internal/types"
)

// Share is the API representation of a share.
type Share struct {
	ID        uint            `json:"id" example:"42"`
	CreatedAt time.Time       `json:"createdAt" example:"2025-03-14T09:26:53Z"`
	Date      types.Date      `json:"date" example:"2025-03-14"`                      // Date of the expense
	Title     string          `json:"title" example:"Dinner at Jay Fai"`              // What the expense was for
	PromptPay string          `json:"promptpay" example:"0801234567"`                 // Phone number, tax ID or e-wallet ID receiving the payments
	People    int             `json:"people" example:"3"`                             // Number of people the amount is split between
	Amount    decimal.Decimal `json:"amount" swaggertype:"string" example:"100"`      // Total amount in THB
	PerPerson decimal.Decimal `json:"perPerson" swaggertype:"string" example:"33.33"` // Amount each person pays
	Evidence  *string         `json:"evidence" example:"20250314092653_receipt.jpg"`  // Name of the evidence file, null if there is none
	QRCode    string          `json:"qrCode" example:"qr_42.png"`                     // Name of the QR code image
	Links     ShareLinks      `json:"links"`
}

type ShareLinks struct {
	Self     string `json:"self" example:"https://example.com/api/v1/shares/42"`                           // The share itself
	Evidence string `json:"evidence" example:"https://example.com/api/uploads/20250314092653_receipt.jpg"` // The evidence file, empty if there is none
	QRCode   string `json:"qrCode" example:"https://example.com/api/qrcodes/qr_42.png"`                    // The QR code image
}

func newShare(c *gin.Context, model models.Share) Share {
	url := httputil.BaseURL(c)

	share := Share{
		ID:        model.ID,
		CreatedAt: model.CreatedAt,
		Date:      model.Date,
		Title:     model.Title,
		PromptPay: model.PromptPay,
		People:    model.People,
		Amount:    model.Amount,
		PerPerson: model.PerPerson,
		Evidence:  model.EvidencePath,
		QRCode:    model.QRPath,
		Links: ShareLinks{
			Self: fmt.Sprintf("%s/v1/shares/%d", url, model.ID),
		},
	}

	if model.HasEvidence() {
		share.Links.Evidence = url + "/uploads/" + *model.EvidencePath
	}

	if model.QRPath != "" {
		share.Links.QRCode = url + "/qrcodes/" + model.QRPath
	}

	return share
}

type ShareListResponse struct {
	Data  []Share `json:"data"`                                                                // List of shares
	Error *string `json:"error" example:"an error occurred on the server during your request"` // The error, if any occurred
}

type ShareResponse struct {
	Data  *Share  `json:"data"`                                                  // Data for the share
	Error *string `json:"error" example:"there is no share matching your query"` // The error, if any occurred
}

type httpError = httputil.HTTPError
