// Package criteria holds the buyer's scoring rules: a fixed set of canonical
// criterion keys resolved against a free-text catalog supplied by the
// calibration workbook, plus per-category weights.
package criteria

import (
	"github.com/Zia971/immo-opportunit-s/internal/util"
)

// Key identifies one canonical scoring criterion. Catalog rows are matched to
// keys by case-insensitive substring, so the workbook may phrase criterion
// names freely ("Budget max conseillé (€)" still resolves to KeyBudgetMax).
type Key string

const (
	KeyHazardRisk      Key = "Natural hazard risk"
	KeyZoning          Key = "Zoning"
	KeyAmenityDistance Key = "Distance to amenities"
	KeyLotCount        Key = "Number of lots"
	KeyServiceCharge   Key = "Annual service charge"
	KeyPropertyTax     Key = "Property tax"
	KeyBedrooms        Key = "bedrooms"
	KeySurface         Key = "Habitable surface"
	KeyOutdoor         Key = "Outdoor space"
	KeyBudgetMax       Key = "Budget max"
	KeyNetYield        Key = "Net rental yield"
	KeyCashFlow        Key = "Cash flow"
	KeyRenovation      Key = "Renovation"
	KeySubdivision     Key = "Subdivision possible"
	KeyColiving        Key = "Co-living potential"
	KeyPriceDrop       Key = "price drop"
	KeyAge             Key = "Age"
	KeyRelisted        Key = "Re-listed"
)

// Keys is the fixed evaluation order. Scoring walks this list, so explanation
// trails are deterministic for identical input.
var Keys = []Key{
	KeyHazardRisk,
	KeyZoning,
	KeyAmenityDistance,
	KeyLotCount,
	KeyServiceCharge,
	KeyPropertyTax,
	KeyBedrooms,
	KeySurface,
	KeyOutdoor,
	KeyBudgetMax,
	KeyNetYield,
	KeyCashFlow,
	KeyRenovation,
	KeySubdivision,
	KeyColiving,
	KeyPriceDrop,
	KeyAge,
	KeyRelisted,
}

// Category names, as used by the calibration weights table.
const (
	CategoryLocation   = "Location & Zoning"
	CategoryProperty   = "Property Characteristics"
	CategoryFinance    = "Profitability & Finance"
	CategoryRenovation = "Renovation & Potential"
	CategoryHistory    = "History & Dynamics"
)

// defaultCategories maps each key to its category when the catalog row does
// not carry one.
var defaultCategories = map[Key]string{
	KeyHazardRisk:      CategoryLocation,
	KeyZoning:          CategoryLocation,
	KeyAmenityDistance: CategoryLocation,
	KeyLotCount:        CategoryProperty,
	KeyServiceCharge:   CategoryProperty,
	KeyPropertyTax:     CategoryProperty,
	KeyBedrooms:        CategoryProperty,
	KeySurface:         CategoryProperty,
	KeyOutdoor:         CategoryProperty,
	KeyBudgetMax:       CategoryFinance,
	KeyNetYield:        CategoryFinance,
	KeyCashFlow:        CategoryFinance,
	KeyRenovation:      CategoryRenovation,
	KeySubdivision:     CategoryRenovation,
	KeyColiving:        CategoryRenovation,
	KeyPriceDrop:       CategoryHistory,
	KeyAge:             CategoryHistory,
	KeyRelisted:        CategoryHistory,
}

type RuleKind int

const (
	RuleBonus RuleKind = iota
	RuleIndispensable
	RuleExclusion
)

func (k RuleKind) String() string {
	switch k {
	case RuleExclusion:
		return "exclusion"
	case RuleIndispensable:
		return "indispensable"
	default:
		return "bonus"
	}
}

// ParseRuleKind interprets the free-text rule kind of a catalog row.
// Unknown text falls back to bonus, the weakest kind.
func ParseRuleKind(s string) RuleKind {
	folded := util.FoldStr(s)

	switch {
	case util.ContainsFold(folded, "exclu"):
		return RuleExclusion
	case util.ContainsFold(folded, "indispensable"):
		return RuleIndispensable
	default:
		return RuleBonus
	}
}

// CatalogRow is one raw criteria row as read from the calibration source.
// All fields are free text, interpretation happens in BuildTargets.
type CatalogRow struct {
	Name     string
	Category string
	Kind     string
	Weight   string
	Target   string
}

// Criterion is one resolved scoring rule.
type Criterion struct {
	Name        string
	Category    string
	RuleKind    RuleKind
	Weight      float64
	TargetValue string
}

// CategoryWeights maps category name to its share of the overall score.
// No normalization is assumed.
type CategoryWeights map[string]float64

// WeightOf returns the weight of a category, 0 when absent.
// Lookup tolerates accent and case differences between the criteria table
// and the weights table.
func (w CategoryWeights) WeightOf(category string) float64 {
	if v, ok := w[category]; ok {
		return v
	}

	folded := util.FoldStr(category)
	for name, v := range w {
		if util.FoldStr(name) == folded {
			return v
		}
	}

	return 0
}

// BuildTargets resolves each canonical key against the catalog: the first row
// whose free-text name contains the key case-insensitively wins. Keys with no
// matching row are absent from the result and the corresponding rule is
// skipped by scoring. An unparseable weight resolves to 0, not an error.
func BuildTargets(catalog []CatalogRow) map[Key]*Criterion {
	targets := make(map[Key]*Criterion, len(Keys))

	for _, key := range Keys {
		row, ok := findRow(catalog, key)
		if !ok {
			continue
		}

		weight, ok := util.ParseFloatLoose(row.Weight)
		if !ok || weight < 0 {
			weight = 0
		}

		category := row.Category
		if category == "" {
			category = defaultCategories[key]
		}

		targets[key] = &Criterion{
			Name:        row.Name,
			Category:    category,
			RuleKind:    ParseRuleKind(row.Kind),
			Weight:      weight,
			TargetValue: row.Target,
		}
	}

	return targets
}

func findRow(catalog []CatalogRow, key Key) (CatalogRow, bool) {
	for _, row := range catalog {
		if util.ContainsFold(row.Name, string(key)) {
			return row, true
		}
	}

	return CatalogRow{}, false
}
