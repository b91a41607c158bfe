package reconcile

import (
	"github.com/google/uuid"

	"github.com/josh-kwaku/palpay/internal/domain"
)

type Snapshot struct {
	Activities []domain.Activity
	Expenses   []domain.Expense
	Payments   []domain.Payment
}

type Result struct {
	Edges       Edges
	Balances    []domain.Balance
	Settlements []domain.SettlementInstruction

	// OrphanedExpenses lists expenses whose activity was not in the
	// snapshot. They were ignored.
	OrphanedExpenses []uuid.UUID
	// EmptyActivities lists activities without participants. They were
	// skipped.
	EmptyActivities []uuid.UUID
}

// Reconcile aggregates the snapshot once and derives both the pairwise
// balances and the global settlement plan from it.
func Reconcile(s Snapshot) Result {
	edges := Aggregate(s.Activities, s.Expenses, s.Payments)
	return Result{
		Edges:            edges,
		Balances:         SimplifyPairwise(edges),
		Settlements:      MatchGlobal(NetPositions(edges)),
		OrphanedExpenses: orphanedExpenses(s.Activities, s.Expenses),
		EmptyActivities:  emptyActivities(s.Activities),
	}
}

func orphanedExpenses(activities []domain.Activity, expenses []domain.Expense) []uuid.UUID {
	known := make(map[uuid.UUID]struct{}, len(activities))
	for _, a := range activities {
		known[a.ID] = struct{}{}
	}
	var out []uuid.UUID
	for _, e := range expenses {
		if _, ok := known[e.ActivityID]; !ok {
			out = append(out, e.ID)
		}
	}
	return out
}

func emptyActivities(activities []domain.Activity) []uuid.UUID {
	var out []uuid.UUID
	for _, a := range uniqueActivities(activities) {
		if len(a.Participants) == 0 {
			out = append(out, a.ID)
		}
	}
	return out
}
