package models_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/thaishare/backend/internal/models"
	"github.com/thaishare/backend/internal/types"
)

func (suite *TestSuiteStandard) TestShareTrimWhitespace() {
	title := "\t Lunch at the market   "
	promptpay := "  0801234567 \n"

	share := suite.createTestShare(models.Share{
		Title:     title,
		PromptPay: promptpay,
	})

	assert.Equal(suite.T(), strings.TrimSpace(title), share.Title)
	assert.Equal(suite.T(), strings.TrimSpace(promptpay), share.PromptPay)
}

func (suite *TestSuiteStandard) TestShareRoundTrip() {
	evidence := "20240101120000_receipt.jpg"
	share := suite.createTestShare(models.Share{
		Date:         types.NewDate(2024, 2, 29),
		Title:        "Groceries",
		EvidencePath: &evidence,
		PromptPay:    "1111111111111",
		People:       3,
		Amount:       decimal.RequireFromString("100"),
		PerPerson:    decimal.RequireFromString("33.33"),
	})

	var got models.Share
	err := suite.db.First(&got, share.ID).Error
	assert.Nil(suite.T(), err)

	assert.Equal(suite.T(), share.ID, got.ID)
	assert.Equal(suite.T(), "2024-02-29", got.Date.String())
	assert.Equal(suite.T(), "Groceries", got.Title)
	assert.Equal(suite.T(), evidence, *got.EvidencePath)
	assert.Equal(suite.T(), "1111111111111", got.PromptPay)
	assert.Equal(suite.T(), 3, got.People)
	assert.True(suite.T(), got.Amount.Equal(decimal.NewFromInt(100)), "Amount is %s", got.Amount)
	assert.True(suite.T(), got.PerPerson.Equal(decimal.RequireFromString("33.33")), "PerPerson is %s", got.PerPerson)
	assert.Equal(suite.T(), "", got.QRPath)
	assert.Equal(suite.T(), "UTC", got.CreatedAt.Location().String())
	assert.True(suite.T(), got.HasEvidence())
}

func (suite *TestSuiteStandard) TestShareNullEvidence() {
	share := suite.createTestShare(models.Share{})

	var got models.Share
	err := suite.db.First(&got, share.ID).Error
	assert.Nil(suite.T(), err)
	assert.Nil(suite.T(), got.EvidencePath)
	assert.False(suite.T(), got.HasEvidence())
}

func (suite *TestSuiteStandard) TestShareSequentialIDs() {
	first := suite.createTestShare(models.Share{})
	second := suite.createTestShare(models.Share{})

	assert.Equal(suite.T(), first.ID+1, second.ID)
}

func (suite *TestSuiteStandard) TestShareValidation() {
	tests := []struct {
		name  string
		share models.Share
		err   error
	}{
		{"Empty title", models.Share{Title: "   ", PromptPay: "0801234567", People: 1, Amount: decimal.NewFromInt(1)}, models.ErrShareTitleEmpty},
		{"Empty PromptPay", models.Share{Title: "A", People: 1, Amount: decimal.NewFromInt(1)}, models.ErrSharePromptPayEmpty},
		{"No people", models.Share{Title: "A", PromptPay: "0801234567", Amount: decimal.NewFromInt(1)}, models.ErrSharePeopleInvalid},
		{"Negative people", models.Share{Title: "A", PromptPay: "0801234567", People: -1, Amount: decimal.NewFromInt(1)}, models.ErrSharePeopleInvalid},
		{"Zero amount", models.Share{Title: "A", PromptPay: "0801234567", People: 1}, models.ErrShareAmountInvalid},
		{"Negative amount", models.Share{Title: "A", PromptPay: "0801234567", People: 1, Amount: decimal.NewFromInt(-3)}, models.ErrShareAmountInvalid},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			err := suite.db.Create(&tt.share).Error
			assert.True(t, errors.Is(err, tt.err), "Expected %v, got %v", tt.err, err)
		})
	}

	var count int64
	suite.db.Model(&models.Share{}).Count(&count)
	assert.Equal(suite.T(), int64(0), count, "Invalid shares must not be persisted")
}

func (suite *TestSuiteStandard) TestShareNotFound() {
	var share models.Share
	err := suite.db.First(&share, 4711).Error

	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)
	assert.Contains(suite.T(), err.Error(), "there is no share matching your query")
}

func (suite *TestSuiteStandard) TestShareDatabaseClosed() {
	suite.CloseDB()

	var shares []models.Share
	err := suite.db.Find(&shares).Error
	assert.ErrorIs(suite.T(), err, models.ErrGeneral)
}
