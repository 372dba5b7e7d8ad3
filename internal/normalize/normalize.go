// Package normalize coerces loose upstream listing records (field name to raw
// value, any of them possibly missing or malformed) into the canonical
// Listing. Unknown numerics become 0, unknown text becomes "", so downstream
// engines see the documented neutral defaults even when a connector delivered
// a partial record.
package normalize

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Zia971/immo-opportunit-s/internal"
	"github.com/Zia971/immo-opportunit-s/internal/util"
)

// Record is one raw listing record as delivered by a connector.
type Record map[string]interface{}

// Records normalizes a whole collection run and deduplicates it by id.
func Records(records []Record) []*internal.Listing {
	listings := make([]*internal.Listing, 0, len(records))

	for _, rec := range records {
		l := Listing(rec)
		if l.Id == "" && l.Url == "" {
			// nothing to identify the listing by, drop it
			continue
		}

		listings = append(listings, l)
	}

	return internal.DedupListings(listings)
}

// Listing coerces a single raw record. A record with a missing id gets one
// derived from its url.
func Listing(rec Record) *internal.Listing {
	l := &internal.Listing{
		Id:         asString(rec["id"]),
		Title:      asString(rec["title"]),
		Url:        asString(rec["url"]),
		SourceName: asString(rec["source_name"]),
		Photos:     asStrings(rec["photos"], internal.MaxPhotos),

		PriceTotal:     asFloat(rec["price_total"]),
		SurfaceHab:     asFloat(rec["surface_hab"]),
		Bedrooms:       asInt(rec["bedrooms"]),
		CoproLots:      asInt(rec["copro_lots"]),
		ChargesCoproAn: asFloat(rec["charges_copro_an"]),
		TaxeFonciere:   asFloat(rec["taxe_fonciere"]),
		CapexRatio:     asFloat(rec["capex_ratio"]),
		YieldNet:       asFloat(rec["yield_net"]),
		Cashflow:       asFloat(rec["cashflow"]),
		DistAmenMin:    asFloat(rec["dist_amen_min"]),

		PprZone: strings.TrimSpace(asString(rec["ppr_zone"])),
		PluZone: strings.TrimSpace(asString(rec["plu_zone"])),

		DivisionPossible: asBool(rec["division_possible"]),
		ColocationReady:  asBool(rec["colocation_ready"]),
		Outdoor:          asBool(rec["outdoor"]),

		Status: strings.TrimSpace(asString(rec["status"])),
	}

	if l.Id == "" {
		l.Id = internal.DeriveListingId(l.Url)
	}

	if l.Status == "" {
		l.Status = internal.StatusAvailable
	}

	return l
}

func asString(v interface{}) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(s)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	default:
		return strings.TrimSpace(fmt.Sprint(s))
	}
}

func asFloat(v interface{}) float64 {
	switch n := v.(type) {
	case nil:
		return 0
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case bool:
		return 0
	case string:
		f, ok := util.ParseFloatLoose(n)
		if !ok {
			return 0
		}
		return f
	default:
		return 0
	}
}

func asInt(v interface{}) int {
	return int(asFloat(v))
}

func asBool(v interface{}) bool {
	switch b := v.(type) {
	case bool:
		return b
	case string:
		switch util.FoldStr(b) {
		case "true", "1", "yes", "oui", "vrai":
			return true
		}
		return false
	case float64:
		return b != 0
	case int:
		return b != 0
	default:
		return false
	}
}

func asStrings(v interface{}, limit int) []string {
	var out []string

	switch list := v.(type) {
	case nil:
		return nil
	case []string:
		out = append(out, list...)
	case []interface{}:
		for _, item := range list {
			if s := asString(item); s != "" {
				out = append(out, s)
			}
		}
	case string:
		if list != "" {
			out = append(out, list)
		}
	}

	if len(out) > limit {
		out = out[:limit]
	}

	return out
}
