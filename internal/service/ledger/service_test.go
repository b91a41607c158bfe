package ledger

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/josh-kwaku/palpay/internal/domain"
)

func TestRoundSettlements(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	in := []domain.SettlementInstruction{
		{DebtorID: a, CreditorID: b, Amount: decimal.NewFromFloat(3.3333333333)},
		{DebtorID: a, CreditorID: b, Amount: decimal.NewFromFloat(0.004)},
		{DebtorID: b, CreditorID: a, Amount: decimal.NewFromFloat(6.665)},
	}

	out := roundSettlements(in)

	assert.Len(t, out, 2)
	assert.Equal(t, "3.33", out[0].Amount.StringFixed(2))
	assert.Equal(t, "6.67", out[1].Amount.StringFixed(2))
	assert.Equal(t, b, out[1].DebtorID)
}
