// Package split divides a shared expense evenly among participants.
package split

import (
	"errors"

	"github.com/shopspring/decimal"
)

// Places is the number of fractional digits per-person amounts are rounded to.
const Places int32 = 2

var (
	ErrNoParticipants    = errors.New("there must be at least one participant")
	ErrNonPositiveAmount = errors.New("the amount must be greater than zero")
)

// PerPerson returns amount divided by people, rounded half away from zero
// to two fractional digits.
func PerPerson(amount decimal.Decimal, people int) (decimal.Decimal, error) {
	if people <= 0 {
		return decimal.Zero, ErrNoParticipants
	}

	if !amount.IsPositive() {
		return decimal.Zero, ErrNonPositiveAmount
	}

	return amount.DivRound(decimal.NewFromInt(int64(people)), Places), nil
}
