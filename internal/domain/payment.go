package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payment is a direct repayment from one user to another. It offsets debt
// the payer owes the payee.
type Payment struct {
	ID         uuid.UUID
	FromUserID uuid.UUID
	ToUserID   uuid.UUID
	Amount     decimal.Decimal
	Note       *string
	CreatedAt  time.Time
}
