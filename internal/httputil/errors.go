package httputil

import "errors"

var (
	ErrInvalidID        = errors.New("the specified resource ID is not a valid ID")
	ErrRequestTooLarge  = errors.New("the request is larger than the allowed maximum")
	ErrPeopleNotNumber  = errors.New("the number of people must be a whole number")
	ErrAmountNotNumber  = errors.New("the amount must be a number")
	ErrInvalidEvidence  = errors.New("the evidence file could not be read")
	ErrInvalidFormInput = errors.New("the form data of your request could not be parsed")
)
