package reconcile

import (
	"sort"

	"github.com/josh-kwaku/palpay/internal/domain"
)

// SimplifyPairwise nets the two directions of every pair into a single
// Balance. Nets that round to zero cents are dropped. The result is ordered
// by debtor id, then creditor id.
func SimplifyPairwise(edges Edges) []domain.Balance {
	visited := make(map[Pair]struct{}, len(edges))
	var out []domain.Balance

	for _, p := range edges.pairs() {
		if _, ok := visited[p]; ok {
			continue
		}
		rev := p.reversed()
		visited[p] = struct{}{}
		visited[rev] = struct{}{}

		net := RoundAmount(edges[p] - edges[rev])
		switch net.Sign() {
		case 1:
			out = append(out, domain.Balance{DebtorID: p.Debtor, CreditorID: p.Creditor, Amount: net})
		case -1:
			out = append(out, domain.Balance{DebtorID: rev.Debtor, CreditorID: rev.Creditor, Amount: net.Neg()})
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return lessPair(
			Pair{Debtor: out[i].DebtorID, Creditor: out[i].CreditorID},
			Pair{Debtor: out[j].DebtorID, Creditor: out[j].CreditorID},
		)
	})
	return out
}
