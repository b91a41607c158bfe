package reconcile

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/josh-kwaku/palpay/internal/domain"
)

var (
	u1 = uuid.MustParse("00000000-0000-0000-0000-000000000001")
	u2 = uuid.MustParse("00000000-0000-0000-0000-000000000002")
	u3 = uuid.MustParse("00000000-0000-0000-0000-000000000003")
	u4 = uuid.MustParse("00000000-0000-0000-0000-000000000004")
	u5 = uuid.MustParse("00000000-0000-0000-0000-000000000005")
)

func activity(participants ...uuid.UUID) domain.Activity {
	return domain.Activity{ID: uuid.New(), Name: "activity", Participants: participants}
}

func expense(a domain.Activity, payer uuid.UUID, amount string) domain.Expense {
	return domain.Expense{
		ID:         uuid.New(),
		ActivityID: a.ID,
		PayerID:    payer,
		Amount:     decimal.RequireFromString(amount),
	}
}

func payment(from, to uuid.UUID, amount string) domain.Payment {
	return domain.Payment{
		ID:         uuid.New(),
		FromUserID: from,
		ToUserID:   to,
		Amount:     decimal.RequireFromString(amount),
	}
}

// balanceMap keys pairwise output by (debtor, creditor) and fails on a
// duplicate or reversed-duplicate pair.
func balanceMap(t *testing.T, balances []domain.Balance) map[Pair]string {
	t.Helper()
	out := make(map[Pair]string, len(balances))
	for _, b := range balances {
		p := Pair{Debtor: b.DebtorID, Creditor: b.CreditorID}
		_, dup := out[p]
		_, rev := out[p.reversed()]
		require.False(t, dup || rev, "pair %v emitted twice", p)
		out[p] = b.Amount.StringFixed(2)
	}
	return out
}
