package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Balance records that Debtor owes Creditor Amount, as accumulated from the
// expenses and payments the two actually shared. Amount is always positive.
type Balance struct {
	DebtorID   uuid.UUID
	CreditorID uuid.UUID
	Amount     decimal.Decimal
}

// SettlementInstruction is a transfer that, together with the rest of its
// batch, clears every user's net position. The two parties may never have
// transacted directly.
type SettlementInstruction struct {
	DebtorID   uuid.UUID
	CreditorID uuid.UUID
	Amount     decimal.Decimal
}
