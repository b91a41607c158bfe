package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Expense struct {
	ID          uuid.UUID
	ActivityID  uuid.UUID
	PayerID     uuid.UUID
	Amount      decimal.Decimal
	Description *string
	CreatedAt   time.Time
}

// MaxAmount is the largest single expense or payment, the capacity of the
// NUMERIC(14, 2) amount columns.
var MaxAmount = decimal.RequireFromString("999999999999.99")

// ValidAmount reports whether d can be stored as a ledger amount: not
// negative, no finer than one cent and at most MaxAmount.
func ValidAmount(d decimal.Decimal) bool {
	return !d.IsNegative() && d.Equal(d.Round(2)) && d.LessThanOrEqual(MaxAmount)
}
