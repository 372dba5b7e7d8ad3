// Package history computes cross-run listing state: first/last seen, last
// price, price drops and age. The store is read once as a snapshot before a
// run and rewritten wholesale after it, so ids that vanish from the sources
// drop out of the next snapshot. That is the chosen retention policy
// (current-set semantics), not an accident; Options.RetainStaleIds carries
// unseen rows over verbatim for callers that want the broader behavior.
package history

import (
	"math"
	"time"

	"github.com/Zia971/immo-opportunit-s/internal"
	"github.com/Zia971/immo-opportunit-s/internal/util"
)

// Record is the per-listing state tracked across runs.
type Record struct {
	FirstSeen    time.Time
	LastSeen     time.Time
	LastPrice    float64
	Status       string
	PriceDropPct float64
}

// Store maps listing id to its last observed state.
type Store map[string]Record

type Options struct {
	// RetainStaleIds keeps records whose id was not observed this run.
	RetainStaleIds bool
}

// UpdateHistory builds the next snapshot from this run's listings and the
// previous snapshot. FirstSeen is carried over unchanged for known ids and
// never mutated afterwards. Listings with an empty id are skipped entirely.
// now is explicit so runs are reproducible under test.
func UpdateHistory(now time.Time, listings []*internal.Listing, prev Store, opts Options) Store {
	next := make(Store, len(listings))

	for _, l := range listings {
		if l == nil || l.Id == "" {
			continue
		}

		status := l.Status
		if status == "" {
			status = internal.StatusAvailable
		}

		rec, known := prev[l.Id]
		if !known {
			next[l.Id] = Record{
				FirstSeen:    now,
				LastSeen:     now,
				LastPrice:    l.PriceTotal,
				Status:       status,
				PriceDropPct: 0,
			}
			continue
		}

		next[l.Id] = Record{
			FirstSeen:    rec.FirstSeen,
			LastSeen:     now,
			LastPrice:    l.PriceTotal,
			Status:       status,
			PriceDropPct: priceDropPct(l.PriceTotal, rec.LastPrice),
		}
	}

	if opts.RetainStaleIds {
		for id, rec := range prev {
			if _, seen := next[id]; !seen {
				next[id] = rec
			}
		}
	}

	return next
}

// priceDropPct is the relative decrease versus the previous price, rounded to
// two decimals. Price rises, unknown prices and missing previous prices all
// yield 0.
func priceDropPct(price, lastPrice float64) float64 {
	if price <= 0 || lastPrice <= 0 || price >= lastPrice {
		return 0
	}

	pct := (lastPrice - price) / lastPrice * 100

	return math.Round(pct*100) / 100
}

// Enrich left-joins listings to the store by id and fills the derived fields
// in place. Unmatched listings get neutral defaults. Age counts whole days
// since FirstSeen, falling back to LastSeen when FirstSeen is missing.
// IsReturned stays false: detecting a status cycle back to available needs a
// transition history the store does not retain yet.
func Enrich(now time.Time, listings []*internal.Listing, store Store) {
	for _, l := range listings {
		if l == nil {
			continue
		}

		rec, ok := store[l.Id]
		if !ok {
			l.PriceDropPct = 0
			l.AgeDays = 0
			l.IsReturned = false
			if l.Status == "" {
				l.Status = internal.StatusAvailable
			}
			continue
		}

		basis := rec.FirstSeen
		if basis.IsZero() {
			basis = rec.LastSeen
		}

		l.AgeDays = util.WholeDaysBetween(now, basis)
		l.PriceDropPct = rec.PriceDropPct
		l.IsReturned = false

		if rec.Status != "" {
			l.Status = rec.Status
		} else if l.Status == "" {
			l.Status = internal.StatusAvailable
		}
	}
}
