package reconcile

import (
	"github.com/google/uuid"

	"github.com/josh-kwaku/palpay/internal/domain"
)

type position struct {
	party  uuid.UUID
	amount float64
}

// ActivityBalances returns each participant's personal balance for one
// activity: what they paid minus an equal share of the activity total.
// Positive means the participant is owed money. Expenses for other
// activities are ignored. An activity without participants yields nil.
func ActivityBalances(activity domain.Activity, expenses []domain.Expense) map[uuid.UUID]float64 {
	balances := personalBalances(activity, expenses)
	if balances == nil {
		return nil
	}
	out := make(map[uuid.UUID]float64, len(balances))
	for _, b := range balances {
		out[b.party] = b.amount
	}
	return out
}

// personalBalances is ActivityBalances in participant order.
func personalBalances(activity domain.Activity, expenses []domain.Expense) []position {
	participants := domain.UniqueIDs(activity.Participants)
	if len(participants) == 0 {
		return nil
	}

	paid := make(map[uuid.UUID]float64, len(participants))
	var total float64
	for _, e := range expenses {
		if e.ActivityID != activity.ID {
			continue
		}
		amount := e.Amount.InexactFloat64()
		paid[e.PayerID] += amount
		total += amount
	}

	share := total / float64(len(participants))
	balances := make([]position, len(participants))
	for i, p := range participants {
		balances[i] = position{party: p, amount: paid[p] - share}
	}
	return balances
}

// split separates personal balances into debts and credits, both positive.
func split(balances []position) (debtors, creditors []position, totalDebt, totalCredit float64) {
	for _, b := range balances {
		switch {
		case b.amount < 0:
			debtors = append(debtors, position{party: b.party, amount: -b.amount})
			totalDebt += -b.amount
		case b.amount > 0:
			creditors = append(creditors, b)
			totalCredit += b.amount
		}
	}
	return debtors, creditors, totalDebt, totalCredit
}
