package stats

import (
	"cmp"
	"slices"

	"github.com/rustyeddy/walletstats/wallet"
)

// OthersLabel collects the types folded out of a TypeMix.
const OthersLabel = "Others"

// DefaultMixTop is how many transact types TypeMix keeps by default.
const DefaultMixTop = 6

type TypeCount struct {
	Type  string
	Count int
}

// TypeMix counts records per transact type, most frequent first (ties by
// name). When top > 0 only the top entries are kept and the rest are summed
// into an OthersLabel entry.
func (a *Aggregator) TypeMix(records []wallet.Record, top int) []TypeCount {
	counts := map[wallet.TransactType]int{}
	for _, r := range records {
		counts[r.Type]++
	}

	out := make([]TypeCount, 0, len(counts))
	for t, n := range counts {
		out = append(out, TypeCount{Type: string(t), Count: n})
	}
	slices.SortFunc(out, func(x, y TypeCount) int {
		if c := cmp.Compare(y.Count, x.Count); c != 0 {
			return c
		}
		return cmp.Compare(x.Type, y.Type)
	})

	if top <= 0 || len(out) <= top {
		return out
	}
	others := 0
	for _, tc := range out[top:] {
		others += tc.Count
	}
	return append(out[:top:top], TypeCount{Type: OthersLabel, Count: others})
}
