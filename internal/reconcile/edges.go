package reconcile

import (
	"bytes"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Epsilon is the tolerance below which a remaining debt or credit counts as
// settled and an instruction is not worth emitting.
const Epsilon = 1e-9

type Pair struct {
	Debtor   uuid.UUID
	Creditor uuid.UUID
}

func (p Pair) reversed() Pair {
	return Pair{Debtor: p.Creditor, Creditor: p.Debtor}
}

// Edges maps an ordered (debtor, creditor) pair to the amount the debtor
// owes. A missing pair is a zero edge; a negative value is a debt running the
// other way.
type Edges map[Pair]float64

func (e Edges) Get(debtor, creditor uuid.UUID) float64 {
	return e[Pair{Debtor: debtor, Creditor: creditor}]
}

// pairs returns the keys ordered by debtor then creditor so that callers
// accumulate floats in a fixed order.
func (e Edges) pairs() []Pair {
	keys := make([]Pair, 0, len(e))
	for p := range e {
		keys = append(keys, p)
	}
	sort.Slice(keys, func(i, j int) bool {
		return lessPair(keys[i], keys[j])
	})
	return keys
}

func lessID(a, b uuid.UUID) bool {
	return bytes.Compare(a[:], b[:]) < 0
}

func lessPair(a, b Pair) bool {
	if a.Debtor != b.Debtor {
		return lessID(a.Debtor, b.Debtor)
	}
	return lessID(a.Creditor, b.Creditor)
}

func sortedParties(m map[uuid.UUID]float64) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return lessID(ids[i], ids[j]) })
	return ids
}

// RoundAmount rounds x to cents, half away from zero, on the shortest decimal
// representation of the float.
func RoundAmount(x float64) decimal.Decimal {
	return decimal.NewFromFloat(x).Round(2)
}
