package reconcile

import (
	"math"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/josh-kwaku/palpay/internal/domain"
)

// NetPositions folds the debt graph into one signed position per party:
// everything owed to it minus everything it owes. Positive means the party is
// owed money.
func NetPositions(edges Edges) map[uuid.UUID]float64 {
	net := make(map[uuid.UUID]float64)
	for _, p := range edges.pairs() {
		amount := edges[p]
		net[p.Creditor] += amount
		net[p.Debtor] -= amount
	}
	return net
}

// NetPositionsFromLedger computes the same positions as
// NetPositions(Aggregate(...)) straight from personal balances and payments,
// without building per-pair edges. Creditors of an activity are scaled by
// total debt over total credit, which is 1 whenever every payer is a
// participant.
func NetPositionsFromLedger(activities []domain.Activity, expenses []domain.Expense, payments []domain.Payment) map[uuid.UUID]float64 {
	net := make(map[uuid.UUID]float64)
	byActivity := groupByActivity(expenses)

	for _, a := range uniqueActivities(activities) {
		debtors, creditors, totalDebt, totalCredit := split(personalBalances(a, byActivity[a.ID]))
		if totalCredit == 0 {
			continue
		}
		for _, d := range debtors {
			net[d.party] -= d.amount
		}
		scale := totalDebt / totalCredit
		for _, c := range creditors {
			net[c.party] += c.amount * scale
		}
	}

	for _, p := range payments {
		amount := p.Amount.InexactFloat64()
		net[p.FromUserID] += amount
		net[p.ToUserID] -= amount
	}
	return net
}

// MatchGlobal produces the settlement instructions that clear every net
// position. Debtors are served smallest debt first against creditors largest
// credit first; equal amounts are ordered by party id. Amounts are not
// rounded.
func MatchGlobal(net map[uuid.UUID]float64) []domain.SettlementInstruction {
	var debtors, creditors []position
	for _, party := range sortedParties(net) {
		switch v := net[party]; {
		case v < 0:
			debtors = append(debtors, position{party: party, amount: -v})
		case v > 0:
			creditors = append(creditors, position{party: party, amount: v})
		}
	}

	sort.SliceStable(debtors, func(i, j int) bool { return debtors[i].amount < debtors[j].amount })
	sort.SliceStable(creditors, func(i, j int) bool { return creditors[i].amount > creditors[j].amount })

	var out []domain.SettlementInstruction
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		d, c := &debtors[i], &creditors[j]

		amount := math.Min(d.amount, c.amount)
		if amount > Epsilon {
			out = append(out, domain.SettlementInstruction{
				DebtorID:   d.party,
				CreditorID: c.party,
				Amount:     decimal.NewFromFloat(amount),
			})
		}

		d.amount -= amount
		c.amount -= amount
		if d.amount < Epsilon {
			i++
		}
		if c.amount < Epsilon {
			j++
		}
	}
	return out
}

// SettleActivity matches the personal balances of a single activity, ignoring
// every other activity and all payments.
func SettleActivity(activity domain.Activity, expenses []domain.Expense) []domain.SettlementInstruction {
	return MatchGlobal(NetPositionsFromLedger([]domain.Activity{activity}, expenses, nil))
}
