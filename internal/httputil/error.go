package httputil

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/thaishare/backend/internal/models"
	"github.com/thaishare/backend/internal/promptpay"
	"github.com/thaishare/backend/internal/service"
)

// HTTPError is used for error responses that contain a body.
type HTTPError struct {
	Error string `json:"error" example:"there is no share matching your query"`
}

// Status returns the appropriate HTTP status for an error.
func Status(err error) int {
	var tooLarge *http.MaxBytesError

	switch {
	case errors.Is(err, models.ErrGeneral):
		return http.StatusInternalServerError
	case errors.Is(err, models.ErrResourceNotFound):
		return http.StatusNotFound
	case errors.As(err, &tooLarge), errors.Is(err, ErrRequestTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, ErrInvalidID),
		errors.Is(err, ErrPeopleNotNumber),
		errors.Is(err, ErrAmountNotNumber),
		errors.Is(err, ErrInvalidEvidence),
		errors.Is(err, ErrInvalidFormInput),
		errors.Is(err, promptpay.ErrInvalidTarget),
		errors.Is(err, promptpay.ErrNegativeAmount),
		errors.Is(err, promptpay.ErrAmountTooLarge):
		return http.StatusBadRequest
	}

	return http.StatusInternalServerError
}

// ErrorMessage returns the message to show to the client for err.
//
// Server errors are logged, the client only receives a general message
// with the request ID.
func ErrorMessage(c *gin.Context, err error) string {
	if Status(err) == http.StatusRequestEntityTooLarge {
		return ErrRequestTooLarge.Error()
	}

	if Status(err) < http.StatusInternalServerError {
		return err.Error()
	}

	log.Error().Str("request-id", requestid.Get(c)).Msgf("%T: %v", err, err.Error())
	return fmt.Sprintf("an error occurred on the server during your request, please contact your server administrator. The request id is '%v', send this to your server administrator to help them finding the problem", requestid.Get(c))
}

// NewError writes the error as JSON with the status appropriate for it.
func NewError(c *gin.Context, err error) {
	c.JSON(Status(err), HTTPError{
		Error: ErrorMessage(c, err),
	})
}
