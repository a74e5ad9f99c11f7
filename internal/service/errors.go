package service

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrValidation       = errors.New("the share is not valid")
	ErrDateInvalid      = errors.New("the date must be in the format YYYY-MM-DD")
	ErrAmountTooLarge   = errors.New("the amount must not be larger than 9999999999.99")
	ErrEvidenceType     = errors.New("the evidence file type is not allowed")
	ErrEvidenceTooLarge = errors.New("the evidence file is too large")
)

// FieldError is a problem with a single input field.
type FieldError struct {
	Field string
	Err   error
}

// ValidationError collects all problems of an input.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) add(field string, err error) {
	e.Fields = append(e.Fields, FieldError{Field: field, Err: err})
}

func (e *ValidationError) empty() bool {
	return len(e.Fields) == 0
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Err.Error())
	}

	return fmt.Sprintf("%s: %s", ErrValidation, strings.Join(msgs, ", "))
}

// Unwrap allows matching the ValidationError against ErrValidation
// and all of the field errors with errors.Is.
func (e *ValidationError) Unwrap() []error {
	errs := []error{ErrValidation}
	for _, f := range e.Fields {
		errs = append(errs, f.Err)
	}

	return errs
}

// Has reports whether there is a problem with the field.
func (e *ValidationError) Has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}

	return false
}
