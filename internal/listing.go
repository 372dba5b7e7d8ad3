package internal

import (
	"crypto/sha1"
	"encoding/hex"
	"strings"
)

const (
	StatusAvailable = "available"

	// MaxPhotos caps the photo list carried per listing.
	MaxPhotos = 10
)

// Listing is one real-estate opportunity after normalization.
// Numeric fields use 0 as the unknown sentinel, free-text zone codes use "".
type Listing struct {
	Id         string
	Title      string
	Url        string
	SourceName string
	Photos     []string

	PriceTotal     float64
	SurfaceHab     float64
	Bedrooms       int
	CoproLots      int
	ChargesCoproAn float64
	TaxeFonciere   float64
	CapexRatio     float64
	YieldNet       float64
	Cashflow       float64
	DistAmenMin    float64

	PprZone string
	PluZone string

	DivisionPossible bool
	ColocationReady  bool
	Outdoor          bool

	// set by history enrichment
	AgeDays      int
	PriceDropPct float64
	Status       string
	IsReturned   bool

	// set by scoring
	Score        float64
	Explications []string
}

// DeriveListingId builds a stable identity from the listing url.
// The same url always maps to the same id across runs.
func DeriveListingId(url string) string {
	url = strings.TrimSpace(url)
	if url == "" {
		return ""
	}

	sum := sha1.Sum([]byte(url))
	return hex.EncodeToString(sum[:])
}

// DedupListings drops duplicate ids within one run.
// The last record wins and keeps the position of the first occurrence,
// so the result is deterministic for a given input order.
func DedupListings(listings []*Listing) []*Listing {
	result := make([]*Listing, 0, len(listings))
	index := make(map[string]int, len(listings))

	for _, l := range listings {
		if l == nil {
			continue
		}

		i, seen := index[l.Id]
		if seen {
			result[i] = l
			continue
		}

		index[l.Id] = len(result)
		result = append(result, l)
	}

	return result
}
