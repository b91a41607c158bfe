package reconcile

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josh-kwaku/palpay/internal/domain"
)

func TestReconcile(t *testing.T) {
	a := activity(u1, u2, u3)
	empty := activity()
	missing := activity(u1, u2)
	orphan := expense(missing, u2, "1000")

	snap := Snapshot{
		Activities: []domain.Activity{a, empty},
		Expenses:   []domain.Expense{expense(a, u1, "90"), orphan, expense(empty, u3, "40")},
		Payments:   []domain.Payment{payment(u2, u1, "30")},
	}

	res := Reconcile(snap)

	assert.Equal(t, map[Pair]string{{u3, u1}: "30.00"}, balanceMap(t, res.Balances))
	require.Len(t, res.Settlements, 1)
	assert.Equal(t, u3, res.Settlements[0].DebtorID)
	assert.Equal(t, u1, res.Settlements[0].CreditorID)
	assert.InDelta(t, 30, res.Settlements[0].Amount.InexactFloat64(), 1e-9)

	// Orphaned expenses are dropped on purpose and reported, not rejected.
	assert.Equal(t, []uuid.UUID{orphan.ID}, res.OrphanedExpenses)
	assert.Equal(t, []uuid.UUID{empty.ID}, res.EmptyActivities)
}

func TestReconcile_DoesNotMutateInputs(t *testing.T) {
	a := activity(u2, u1, u1)
	expenses := []domain.Expense{expense(a, u1, "10")}
	snap := Snapshot{Activities: []domain.Activity{a}, Expenses: expenses}

	Reconcile(snap)

	assert.Equal(t, []uuid.UUID{u2, u1, u1}, snap.Activities[0].Participants)
	assert.Equal(t, "10", snap.Expenses[0].Amount.String())
}

func TestReconcile_EmptySnapshot(t *testing.T) {
	res := Reconcile(Snapshot{})

	assert.Empty(t, res.Edges)
	assert.Empty(t, res.Balances)
	assert.Empty(t, res.Settlements)
	assert.Empty(t, res.OrphanedExpenses)
	assert.Empty(t, res.EmptyActivities)
}
