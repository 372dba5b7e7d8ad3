// Package scoring evaluates one enriched listing against the resolved
// criteria. Every predicate is a named, compiled check keyed by the canonical
// criterion key; the calibration only parameterizes thresholds, it never
// injects behavior.
package scoring

import (
	"fmt"
	"strings"

	"github.com/Zia971/immo-opportunit-s/internal"
	"github.com/Zia971/immo-opportunit-s/internal/criteria"
	"github.com/Zia971/immo-opportunit-s/internal/util"
)

// Default thresholds, overridable per criterion through the calibration
// target value. The yield floor moved from 5.0 to 7.0 and the tax ceiling has
// been seen at both 2500 and 4500 across calibration revisions, so the
// workbook value wins whenever it parses.
const (
	DefaultBudgetCeiling   = 250000
	DefaultYieldFloor      = 7.0
	DefaultTaxCeiling      = 2500
	DefaultMaxLots         = 40
	DefaultMaxCharge       = 1400
	DefaultMinBedrooms     = 3
	DefaultMinSurface      = 65
	DefaultMaxAmenityMin   = 10
	DefaultMinPriceDropPct = 10
	DefaultMinAgeDays      = 90
	defaultMaxCapexRatio   = 0.25
	defaultCapexYieldFloor = 8.5
)

// lowRiskZones are hazard-plan codes treated as acceptable risk.
var lowRiskZones = map[string]bool{
	"zone blanche": true,
	"zone bleue":   true,
	"blanche":      true,
	"bleue":        true,
}

// urbanizableZones are the local-plan codes a buildable listing should sit in.
var urbanizableZones = map[string]bool{
	"U":  true,
	"AU": true,
}

type checkFunc func(l *internal.Listing, c *criteria.Criterion) bool

// checks holds one predicate per canonical criterion. Missing or unparseable
// listing data passes rather than fails: sources frequently omit zoning, risk
// and distance fields, and failing on absence would exclude listings for lack
// of data instead of a disqualifying fact.
var checks = map[criteria.Key]checkFunc{
	criteria.KeyHazardRisk:      checkHazardRisk,
	criteria.KeyZoning:          checkZoning,
	criteria.KeyAmenityDistance: checkAmenityDistance,
	criteria.KeyLotCount:        checkLotCount,
	criteria.KeyServiceCharge:   checkServiceCharge,
	criteria.KeyPropertyTax:     checkPropertyTax,
	criteria.KeyBedrooms:        checkBedrooms,
	criteria.KeySurface:         checkSurface,
	criteria.KeyOutdoor:         checkOutdoor,
	criteria.KeyBudgetMax:       checkBudgetMax,
	criteria.KeyNetYield:        checkNetYield,
	criteria.KeyCashFlow:        checkCashFlow,
	criteria.KeyRenovation:      checkRenovation,
	criteria.KeySubdivision:     checkSubdivision,
	criteria.KeyColiving:        checkColiving,
	criteria.KeyPriceDrop:       checkPriceDrop,
	criteria.KeyAge:             checkAge,
	criteria.KeyRelisted:        checkRelisted,
}

// applicable gates rules that only make sense for some listings.
// A non-applicable rule is skipped entirely: no contribution, no explanation.
var applicable = map[criteria.Key]func(l *internal.Listing) bool{
	// service charges are meaningless outside a co-ownership
	criteria.KeyServiceCharge: func(l *internal.Listing) bool { return l.CoproLots > 0 },
}

// ScoreListing evaluates every resolved criterion against the listing in
// canonical order and returns the bounded score with its explanation trail.
// One failed exclusion rule forces the score to 0 regardless of everything
// accumulated before or after it.
func ScoreListing(l *internal.Listing, targets map[criteria.Key]*criteria.Criterion, catWeights criteria.CategoryWeights) (float64, []string) {
	var score float64
	var excluded bool
	explications := make([]string, 0, len(targets))

	for _, key := range criteria.Keys {
		c, ok := targets[key]
		if !ok {
			continue
		}

		if gate, gated := applicable[key]; gated && !gate(l) {
			continue
		}

		passed := checks[key](l, c)
		contribution := c.Weight * catWeights.WeightOf(c.Category) * 100

		var delta float64
		switch c.RuleKind {
		case criteria.RuleExclusion:
			if !passed {
				excluded = true
			}
		case criteria.RuleIndispensable:
			if passed {
				delta = contribution
			} else {
				delta = -0.8 * contribution
			}
		case criteria.RuleBonus:
			if passed {
				delta = contribution
			}
		}

		score += delta
		explications = append(explications, explain(key, c, passed, delta))
	}

	if excluded {
		return 0, explications
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	return score, explications
}

func explain(key criteria.Key, c *criteria.Criterion, passed bool, delta float64) string {
	if c.RuleKind == criteria.RuleExclusion && !passed {
		return fmt.Sprintf("KO %s (%s): exclusion", key, c.Category)
	}

	mark := "OK"
	if !passed {
		mark = "KO"
	}

	return fmt.Sprintf("%s %s (%s) %+.2f", mark, key, c.Category, delta)
}

// Explanation joins an explanation trail for display.
func Explanation(explications []string) string {
	return strings.Join(explications, "; ")
}

// threshold resolves a numeric threshold: the calibration target value when it
// parses, the compiled default otherwise.
func threshold(c *criteria.Criterion, def float64) float64 {
	if v, ok := util.ParseFloatLoose(c.TargetValue); ok {
		return v
	}

	return def
}

func checkHazardRisk(l *internal.Listing, _ *criteria.Criterion) bool {
	zone := util.FoldStr(l.PprZone)
	if zone == "" {
		return true
	}

	return strings.HasPrefix(zone, "hors") || strings.HasPrefix(zone, "outside") || lowRiskZones[zone]
}

func checkZoning(l *internal.Listing, _ *criteria.Criterion) bool {
	zone := strings.ToUpper(strings.TrimSpace(l.PluZone))
	if zone == "" {
		return true
	}

	return urbanizableZones[zone]
}

func checkAmenityDistance(l *internal.Listing, c *criteria.Criterion) bool {
	return l.DistAmenMin <= threshold(c, DefaultMaxAmenityMin)
}

func checkLotCount(l *internal.Listing, c *criteria.Criterion) bool {
	return l.CoproLots == 0 || float64(l.CoproLots) <= threshold(c, DefaultMaxLots)
}

func checkServiceCharge(l *internal.Listing, c *criteria.Criterion) bool {
	return l.ChargesCoproAn <= threshold(c, DefaultMaxCharge)
}

func checkPropertyTax(l *internal.Listing, c *criteria.Criterion) bool {
	return l.TaxeFonciere == 0 || l.TaxeFonciere <= threshold(c, DefaultTaxCeiling)
}

func checkBedrooms(l *internal.Listing, c *criteria.Criterion) bool {
	return float64(l.Bedrooms) >= threshold(c, DefaultMinBedrooms)
}

func checkSurface(l *internal.Listing, c *criteria.Criterion) bool {
	return l.SurfaceHab >= threshold(c, DefaultMinSurface)
}

func checkOutdoor(l *internal.Listing, _ *criteria.Criterion) bool {
	return l.Outdoor
}

func checkBudgetMax(l *internal.Listing, c *criteria.Criterion) bool {
	return l.PriceTotal <= threshold(c, DefaultBudgetCeiling)
}

func checkNetYield(l *internal.Listing, c *criteria.Criterion) bool {
	return l.YieldNet >= threshold(c, DefaultYieldFloor)
}

func checkCashFlow(l *internal.Listing, c *criteria.Criterion) bool {
	return l.Cashflow >= threshold(c, 0)
}

// checkRenovation passes when the renovation budget is unknown, light, or
// heavy but compensated by a strong net yield.
func checkRenovation(l *internal.Listing, _ *criteria.Criterion) bool {
	if l.CapexRatio == 0 {
		return true
	}

	return l.CapexRatio <= defaultMaxCapexRatio || l.YieldNet >= defaultCapexYieldFloor
}

func checkSubdivision(l *internal.Listing, _ *criteria.Criterion) bool {
	return l.DivisionPossible
}

func checkColiving(l *internal.Listing, _ *criteria.Criterion) bool {
	return l.ColocationReady && l.Bedrooms >= DefaultMinBedrooms
}

func checkPriceDrop(l *internal.Listing, c *criteria.Criterion) bool {
	return l.PriceDropPct >= threshold(c, DefaultMinPriceDropPct)
}

func checkAge(l *internal.Listing, c *criteria.Criterion) bool {
	return float64(l.AgeDays) > threshold(c, DefaultMinAgeDays)
}

func checkRelisted(l *internal.Listing, _ *criteria.Criterion) bool {
	return l.IsReturned
}
