package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/josh-kwaku/palpay/internal/domain"
)

func TestAggregate_ProportionalToCredit(t *testing.T) {
	// u1 and u2 are owed 60 and 30, so every shortfall splits 2:1.
	a := activity(u1, u2, u3, u4)
	edges := Aggregate(
		[]domain.Activity{a},
		[]domain.Expense{expense(a, u1, "120"), expense(a, u2, "90"), expense(a, u4, "30")},
		nil,
	)

	assert.InDelta(t, 40, edges.Get(u3, u1), 1e-9)
	assert.InDelta(t, 20, edges.Get(u3, u2), 1e-9)
	assert.InDelta(t, 0, edges.Get(u4, u1)+edges.Get(u4, u2)-30, 1e-9)
	assert.InDelta(t, 20, edges.Get(u4, u1), 1e-9)
	assert.Zero(t, edges.Get(u1, u3))
	assert.Zero(t, edges.Get(u1, u2))
}

func TestAggregate_AccumulatesAcrossActivities(t *testing.T) {
	a := activity(u1, u2)
	b := activity(u1, u2)
	edges := Aggregate(
		[]domain.Activity{a, b},
		[]domain.Expense{expense(a, u1, "10"), expense(b, u1, "30")},
		nil,
	)

	assert.InDelta(t, 20, edges.Get(u2, u1), 1e-9)
}

func TestAggregate_PaymentWithoutPriorEdgeGoesNegative(t *testing.T) {
	edges := Aggregate(nil, nil, []domain.Payment{payment(u1, u2, "15")})

	assert.InDelta(t, -15, edges.Get(u1, u2), 1e-9)
	assert.Zero(t, edges.Get(u2, u1))
}

func TestAggregate_DegenerateActivitiesContributeNothing(t *testing.T) {
	balanced := activity(u1, u2)
	empty := activity()
	orphan := activity(u1, u2)

	edges := Aggregate(
		[]domain.Activity{balanced, empty},
		[]domain.Expense{
			expense(balanced, u1, "10"),
			expense(balanced, u2, "10"),
			expense(empty, u1, "50"),
			expense(orphan, u1, "80"),
		},
		nil,
	)

	assert.Empty(t, edges)
}

func TestAggregate_DuplicateActivityCountsOnce(t *testing.T) {
	a := activity(u1, u2)
	edges := Aggregate(
		[]domain.Activity{a, a},
		[]domain.Expense{expense(a, u1, "10")},
		nil,
	)

	assert.InDelta(t, 5, edges.Get(u2, u1), 1e-9)
}
