package reconcile

import (
	"github.com/google/uuid"

	"github.com/josh-kwaku/palpay/internal/domain"
)

// Aggregate builds the global debt graph. Within each activity a debtor's
// shortfall is owed to that activity's creditors in proportion to their
// credit; contributions from different activities add up. Each payment is
// then subtracted from its payer→payee edge, which may leave the edge
// negative.
//
// Expenses whose activity is not in activities are dropped.
func Aggregate(activities []domain.Activity, expenses []domain.Expense, payments []domain.Payment) Edges {
	edges := make(Edges)
	byActivity := groupByActivity(expenses)

	for _, a := range uniqueActivities(activities) {
		allocate(edges, personalBalances(a, byActivity[a.ID]))
	}

	for _, p := range payments {
		edges[Pair{Debtor: p.FromUserID, Creditor: p.ToUserID}] -= p.Amount.InexactFloat64()
	}
	return edges
}

func allocate(edges Edges, balances []position) {
	debtors, creditors, _, totalCredit := split(balances)
	if totalCredit == 0 {
		return
	}
	for _, d := range debtors {
		for _, c := range creditors {
			edges[Pair{Debtor: d.party, Creditor: c.party}] += d.amount * (c.amount / totalCredit)
		}
	}
}

func groupByActivity(expenses []domain.Expense) map[uuid.UUID][]domain.Expense {
	out := make(map[uuid.UUID][]domain.Expense)
	for _, e := range expenses {
		out[e.ActivityID] = append(out[e.ActivityID], e)
	}
	return out
}

// uniqueActivities keeps the first occurrence of each activity id.
func uniqueActivities(activities []domain.Activity) []domain.Activity {
	seen := make(map[uuid.UUID]struct{}, len(activities))
	out := make([]domain.Activity, 0, len(activities))
	for _, a := range activities {
		if _, ok := seen[a.ID]; ok {
			continue
		}
		seen[a.ID] = struct{}{}
		out = append(out, a)
	}
	return out
}
