package v1_test

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	v1 "github.com/thaishare/backend/internal/controllers/v1"
	"github.com/thaishare/backend/test"
)

func (suite *TestSuiteStandard) createTestShare(overrides map[string]string, files ...*test.FormFile) v1.Share {
	body, headers := test.ShareForm(suite.T(), overrides, files...)
	r := suite.server.Request(suite.T(), http.MethodPost, "http://example.com/v1/shares", body, headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	var response v1.ShareResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Require().NotNil(response.Data)

	return *response.Data
}

func (suite *TestSuiteStandard) TestSharesOptions() {
	tests := []struct {
		name   string
		path   string
		status int
		allow  string
	}{
		{"Collection", "http://example.com/v1/shares", http.StatusNoContent, "OPTIONS, GET, POST"},
		{"Not found", "http://example.com/v1/shares/42", http.StatusNotFound, ""},
		{"Invalid ID", "http://example.com/v1/shares/NotAnID", http.StatusBadRequest, ""},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := suite.server.Request(t, http.MethodOptions, tt.path, nil)
			test.AssertHTTPStatus(t, &r, tt.status)
			assert.Equal(t, tt.allow, r.Header().Get("allow"))
		})
	}

	share := suite.createTestShare(nil)
	r := suite.server.Request(suite.T(), http.MethodOptions, share.Links.Self, nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	suite.Assert().Equal("OPTIONS, GET, DELETE", r.Header().Get("allow"))
}

func (suite *TestSuiteStandard) TestSharesCreate() {
	share := suite.createTestShare(nil)

	suite.Assert().Equal(uint(1), share.ID)
	suite.Assert().Equal("2025-03-01", share.Date.String())
	suite.Assert().Equal("Dinner", share.Title)
	suite.Assert().Equal("0801234567", share.PromptPay)
	suite.Assert().Equal(3, share.People)
	suite.Assert().True(share.Amount.Equal(decimal.NewFromInt(100)))
	suite.Assert().True(share.PerPerson.Equal(decimal.RequireFromString("33.33")), "PerPerson is %s", share.PerPerson)
	suite.Assert().Nil(share.Evidence)
	suite.Assert().Equal("qr_1.png", share.QRCode)

	suite.Assert().Equal("http://example.com/v1/shares/1", share.Links.Self)
	suite.Assert().Equal("", share.Links.Evidence)
	suite.Assert().Equal("http://example.com/qrcodes/qr_1.png", share.Links.QRCode)

	_, err := os.Stat(filepath.Join(suite.server.QRDir, share.QRCode))
	suite.Assert().Nil(err, "QR code image must exist")
}

func (suite *TestSuiteStandard) TestSharesCreateWithEvidence() {
	share := suite.createTestShare(nil, &test.FormFile{Field: "evidence", Filename: "My Receipt.JPG", Content: []byte("jpeg")})

	suite.Require().NotNil(share.Evidence)
	suite.Assert().Equal("20250314092653_My_Receipt.JPG", *share.Evidence)
	suite.Assert().Equal("http://example.com/uploads/20250314092653_My_Receipt.JPG", share.Links.Evidence)

	content, err := os.ReadFile(filepath.Join(suite.server.EvidenceDir, *share.Evidence))
	suite.Require().Nil(err)
	suite.Assert().Equal("jpeg", string(content))
}

func (suite *TestSuiteStandard) TestSharesCreateWithThaiEvidenceName() {
	share := suite.createTestShare(nil, &test.FormFile{Field: "evidence", Filename: "ใบเสร็จ.jpg", Content: []byte("jpeg")})

	suite.Require().NotNil(share.Evidence)
	suite.Assert().Equal("20250314092653_evidence.jpg", *share.Evidence)
}

func (suite *TestSuiteStandard) TestSharesCreateDefaultDate() {
	share := suite.createTestShare(map[string]string{"date": ""})
	suite.Assert().Equal("2025-03-14", share.Date.String())
}

func (suite *TestSuiteStandard) TestSharesCreateFails() {
	tests := []struct {
		name      string
		overrides map[string]string
		files     []*test.FormFile
		status    int
		message   string
	}{
		{"Empty title", map[string]string{"title": " "}, nil, http.StatusBadRequest, "the title must not be empty"},
		{"No PromptPay", map[string]string{"promptpay": ""}, nil, http.StatusBadRequest, "the PromptPay ID must not be empty"},
		{"Invalid PromptPay", map[string]string{"promptpay": "no digits"}, nil, http.StatusBadRequest, "PromptPay"},
		{"Invalid PromptPay with evidence", map[string]string{"promptpay": "no digits"}, []*test.FormFile{{Field: "evidence", Filename: "slip.png", Content: []byte("png")}}, http.StatusBadRequest, "PromptPay"},
		{"Amount too large", map[string]string{"amount": "10000000000"}, nil, http.StatusBadRequest, "the amount must not be larger than 9999999999.99"},
		{"Zero people", map[string]string{"people": "0"}, nil, http.StatusBadRequest, "the number of people must be at least 1"},
		{"People not a number", map[string]string{"people": "many"}, nil, http.StatusBadRequest, "the number of people must be a whole number"},
		{"Negative amount", map[string]string{"amount": "-5"}, nil, http.StatusBadRequest, "the amount must be greater than zero"},
		{"Amount not a number", map[string]string{"amount": "5 baht"}, nil, http.StatusBadRequest, "the amount must be a number"},
		{"Invalid date", map[string]string{"date": "yesterday"}, nil, http.StatusBadRequest, "YYYY-MM-DD"},
		{"Evidence type", nil, []*test.FormFile{{Field: "evidence", Filename: "virus.exe", Content: []byte("MZ")}}, http.StatusBadRequest, "the evidence file type is not allowed"},
		{"Too large", nil, []*test.FormFile{{Field: "evidence", Filename: "huge.png", Content: make([]byte, test.MaxUploadSize+1)}}, http.StatusRequestEntityTooLarge, "larger than the allowed maximum"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			body, headers := test.ShareForm(t, tt.overrides, tt.files...)
			r := suite.server.Request(t, http.MethodPost, "http://example.com/v1/shares", body, headers)
			test.AssertHTTPStatus(t, &r, tt.status)

			var response v1.ShareResponse
			test.DecodeResponse(t, &r, &response)
			assert.Nil(t, response.Data)
			if assert.NotNil(t, response.Error) {
				assert.Contains(t, *response.Error, tt.message)
			}
		})
	}

	r := suite.server.Request(suite.T(), http.MethodGet, "http://example.com/v1/shares", nil)
	suite.Assert().JSONEq(`{"data": [], "error": null}`, r.Body.String(), "no share must have been created")

	entries, err := os.ReadDir(suite.server.EvidenceDir)
	suite.Require().Nil(err)
	suite.Assert().Empty(entries, "no evidence must have been stored")
}

func (suite *TestSuiteStandard) TestSharesCreateDatabaseError() {
	suite.server.CloseDB(suite.T())

	body, headers := test.ShareForm(suite.T(), nil)
	r := suite.server.Request(suite.T(), http.MethodPost, "http://example.com/v1/shares", body, headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusInternalServerError)

	var response v1.ShareResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Require().NotNil(response.Error)
	suite.Assert().Contains(*response.Error, "an error occurred on the server during your request")
}

func (suite *TestSuiteStandard) TestSharesList() {
	for i := 1; i <= 3; i++ {
		suite.createTestShare(map[string]string{"title": fmt.Sprintf("Share %d", i)})
	}

	r := suite.server.Request(suite.T(), http.MethodGet, "http://example.com/v1/shares", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.ShareListResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Require().Len(response.Data, 3)

	ids := []uint{response.Data[0].ID, response.Data[1].ID, response.Data[2].ID}
	suite.Assert().Equal([]uint{3, 2, 1}, ids, "the most recent share must be listed first")
	suite.Assert().Equal("Share 3", response.Data[0].Title)
}

func (suite *TestSuiteStandard) TestSharesListDatabaseError() {
	suite.server.CloseDB(suite.T())

	r := suite.server.Request(suite.T(), http.MethodGet, "http://example.com/v1/shares", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusInternalServerError)
}

func (suite *TestSuiteStandard) TestSharesGet() {
	created := suite.createTestShare(map[string]string{"title": "Taxi", "people": "4", "amount": "250"})

	r := suite.server.Request(suite.T(), http.MethodGet, created.Links.Self, nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.ShareResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Require().NotNil(response.Data)

	suite.Assert().Equal(created.Title, response.Data.Title)
	suite.Assert().Equal(created.People, response.Data.People)
	suite.Assert().True(response.Data.PerPerson.Equal(decimal.RequireFromString("62.5")))
	suite.Assert().Equal(created.QRCode, response.Data.QRCode)
}

func (suite *TestSuiteStandard) TestSharesGetFails() {
	tests := []struct {
		name   string
		id     string
		status int
	}{
		{"Not found", "17", http.StatusNotFound},
		{"Not a number", "abc", http.StatusBadRequest},
		{"Zero", "0", http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := suite.server.Request(t, http.MethodGet, "http://example.com/v1/shares/"+tt.id, nil)
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}

	r := suite.server.Request(suite.T(), http.MethodGet, "http://example.com/v1/shares/17", nil)
	var response v1.ShareResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Require().NotNil(response.Error)
	suite.Assert().Equal("there is no share matching your query", *response.Error)
}

func (suite *TestSuiteStandard) TestSharesDelete() {
	share := suite.createTestShare(nil, &test.FormFile{Field: "evidence", Filename: "receipt.png", Content: []byte("png")})

	r := suite.server.Request(suite.T(), http.MethodDelete, share.Links.Self, nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = suite.server.Request(suite.T(), http.MethodGet, share.Links.Self, nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)

	_, err := os.Stat(filepath.Join(suite.server.QRDir, share.QRCode))
	suite.Assert().True(os.IsNotExist(err), "QR code image must be removed")

	_, err = os.Stat(filepath.Join(suite.server.EvidenceDir, *share.Evidence))
	suite.Assert().True(os.IsNotExist(err), "evidence must be removed")
}

func (suite *TestSuiteStandard) TestSharesDeleteNonExistent() {
	r := suite.server.Request(suite.T(), http.MethodDelete, "http://example.com/v1/shares/4711", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = suite.server.Request(suite.T(), http.MethodDelete, "http://example.com/v1/shares/delete-me", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestSharesMethodNotAllowed() {
	r := suite.server.Request(suite.T(), http.MethodPatch, "http://example.com/v1/shares", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusMethodNotAllowed)
	suite.Assert().Equal("this HTTP method is not allowed for the endpoint you called", test.DecodeError(suite.T(), r.Body.Bytes()))
}
