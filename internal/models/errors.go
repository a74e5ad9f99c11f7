package models

import (
	"errors"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")
)

// Share errors
var (
	ErrShareTitleEmpty     = errors.New("the title must not be empty")
	ErrSharePromptPayEmpty = errors.New("the PromptPay ID must not be empty")
	ErrSharePeopleInvalid  = errors.New("the number of people must be at least 1")
	ErrShareAmountInvalid  = errors.New("the amount must be greater than zero")
)
