// Package ranking sequences scoring over a full run and orders the result.
package ranking

import (
	"sort"

	"github.com/Zia971/immo-opportunit-s/internal"
	"github.com/Zia971/immo-opportunit-s/internal/criteria"
	"github.com/Zia971/immo-opportunit-s/internal/scoring"
)

// Rank scores every enriched listing, attaches score and explanations, and
// returns the listings ordered by descending score. The sort is stable: ties
// keep the upstream collection order. Empty input yields an empty result.
func Rank(listings []*internal.Listing, targets map[criteria.Key]*criteria.Criterion, catWeights criteria.CategoryWeights) []*internal.Listing {
	ranked := make([]*internal.Listing, 0, len(listings))

	for _, l := range listings {
		if l == nil {
			continue
		}

		score, explications := scoring.ScoreListing(l, targets, catWeights)
		l.Score = score
		l.Explications = explications

		ranked = append(ranked, l)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	return ranked
}
