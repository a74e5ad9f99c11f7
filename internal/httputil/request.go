package httputil

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/shopspring/decimal"
	"github.com/thaishare/backend/internal/service"
)

// ContextURL is the key of the external URL of the backend in the gin context.
const ContextURL = "thaishare-backend-url"

// BaseURL returns the external URL of the backend as set by the router.
func BaseURL(c *gin.Context) string {
	return strings.TrimSuffix(c.GetString(ContextURL), "/")
}

// ParseID parses the ID in the path parameter param.
func ParseID(c *gin.Context, param string) (uint, error) {
	parsed, err := strconv.ParseUint(c.Param(param), 10, 0)
	if err != nil || parsed == 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidID, c.Param(param))
	}

	return uint(parsed), nil
}

// ShareForm is the form data for creating a share.
type ShareForm struct {
	Date      string `form:"date"`
	Title     string `form:"title"`
	PromptPay string `form:"promptpay"`
	People    string `form:"people"`
	Amount    string `form:"amount"`
}

// BindShareForm parses a urlencoded or multipart form into the input for creating
// a share. The request body is limited to maxSize bytes.
//
// The returned function closes the evidence file and must always be called.
func BindShareForm(c *gin.Context, maxSize int64) (service.CreateInput, func(), error) {
	noop := func() {}

	if maxSize > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxSize)
	}

	var form ShareForm
	if err := c.ShouldBindWith(&form, binding.Form); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return service.CreateInput{}, noop, fmt.Errorf("%w: %d bytes", ErrRequestTooLarge, tooLarge.Limit)
		}
		return service.CreateInput{}, noop, fmt.Errorf("%w: %w", ErrInvalidFormInput, err)
	}

	in := service.CreateInput{
		Date:      form.Date,
		Title:     form.Title,
		PromptPay: form.PromptPay,
	}

	// Empty numbers are left at zero and rejected by the validation
	if people := strings.TrimSpace(form.People); people != "" {
		n, err := strconv.Atoi(people)
		if err != nil {
			return service.CreateInput{}, noop, ErrPeopleNotNumber
		}
		in.People = n
	}

	if amount := strings.TrimSpace(form.Amount); amount != "" {
		d, err := decimal.NewFromString(amount)
		if err != nil {
			return service.CreateInput{}, noop, ErrAmountNotNumber
		}
		in.Amount = d
	}

	fh, err := c.FormFile("evidence")
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) || (err == nil && fh.Filename == "") {
		return in, noop, nil
	}
	if err != nil {
		return service.CreateInput{}, noop, fmt.Errorf("%w: %w", ErrInvalidEvidence, err)
	}

	f, err := fh.Open()
	if err != nil {
		return service.CreateInput{}, noop, fmt.Errorf("%w: %w", ErrInvalidEvidence, err)
	}

	in.Evidence = &service.Evidence{
		Filename: fh.Filename,
		Size:     fh.Size,
		Content:  f,
	}

	return in, closer(f), nil
}

func closer(f multipart.File) func() {
	return func() {
		_ = f.Close()
	}
}
