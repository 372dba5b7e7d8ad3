package criteria

import "testing"

func testCatalog() []CatalogRow {
	return []CatalogRow{
		{Name: "Budget max conseillé (€)", Category: CategoryFinance, Kind: "Indispensable", Weight: "0.3", Target: "250000"},
		{Name: "Risques naturels (PPR)", Category: CategoryLocation, Kind: "Exclusion", Weight: "0.2"},
		{Name: "Nombre de chambres (bedrooms)", Category: CategoryProperty, Kind: "indispensable", Weight: "0,25"},
		{Name: "Jardin / Outdoor space", Category: CategoryProperty, Kind: "Bonus", Weight: "0.1"},
		{Name: "Baisse de prix (price drop)", Category: CategoryHistory, Kind: "bonus", Weight: "not-a-number"},
	}
}

func TestBuildTargetsSubstringMatch(t *testing.T) {
	targets := BuildTargets(testCatalog())

	budget, ok := targets[KeyBudgetMax]
	if !ok {
		t.Fatal("expected 'Budget max conseillé (€)' to resolve KeyBudgetMax")
	}
	if budget.RuleKind != RuleIndispensable {
		t.Errorf("budget rule kind = %s; want indispensable", budget.RuleKind)
	}
	if budget.Weight != 0.3 {
		t.Errorf("budget weight = %v; want 0.3", budget.Weight)
	}
	if budget.TargetValue != "250000" {
		t.Errorf("budget target = %q; want 250000", budget.TargetValue)
	}

	if _, ok := targets[KeyHazardRisk]; !ok {
		t.Error("expected hazard risk row to resolve")
	}
	if _, ok := targets[KeyOutdoor]; !ok {
		t.Error("expected outdoor row to resolve")
	}
}

func TestBuildTargetsAbsentKeySkipped(t *testing.T) {
	targets := BuildTargets(testCatalog())

	if _, ok := targets[KeyNetYield]; ok {
		t.Error("no catalog row mentions net rental yield; key must be absent")
	}
	if _, ok := targets[KeyRelisted]; ok {
		t.Error("no catalog row mentions re-listed; key must be absent")
	}
}

func TestBuildTargetsCommaWeight(t *testing.T) {
	targets := BuildTargets(testCatalog())

	bedrooms, ok := targets[KeyBedrooms]
	if !ok {
		t.Fatal("expected bedrooms row to resolve")
	}
	if bedrooms.Weight != 0.25 {
		t.Errorf("bedrooms weight = %v; want 0.25 (comma decimal)", bedrooms.Weight)
	}
}

func TestBuildTargetsUnparseableWeightDefaultsToZero(t *testing.T) {
	targets := BuildTargets(testCatalog())

	drop, ok := targets[KeyPriceDrop]
	if !ok {
		t.Fatal("expected price drop row to resolve")
	}
	if drop.Weight != 0 {
		t.Errorf("unparseable weight = %v; want 0", drop.Weight)
	}
}

func TestBuildTargetsEmptyCatalog(t *testing.T) {
	targets := BuildTargets(nil)

	if len(targets) != 0 {
		t.Errorf("expected no resolved criteria for empty catalog, got %d", len(targets))
	}
}

func TestBuildTargetsDefaultCategory(t *testing.T) {
	targets := BuildTargets([]CatalogRow{
		{Name: "Habitable surface minimum", Kind: "indispensable", Weight: "0.2"},
	})

	surface, ok := targets[KeySurface]
	if !ok {
		t.Fatal("expected surface row to resolve")
	}
	if surface.Category != CategoryProperty {
		t.Errorf("category = %q; want default %q", surface.Category, CategoryProperty)
	}
}

func TestParseRuleKind(t *testing.T) {
	tests := []struct {
		input string
		want  RuleKind
	}{
		{"Exclusion", RuleExclusion},
		{"critère EXCLUANT", RuleExclusion},
		{"Indispensable", RuleIndispensable},
		{"bonus", RuleBonus},
		{"", RuleBonus},
		{"whatever", RuleBonus},
	}

	for _, tt := range tests {
		if got := ParseRuleKind(tt.input); got != tt.want {
			t.Errorf("ParseRuleKind(%q) = %s; want %s", tt.input, got, tt.want)
		}
	}
}

func TestCategoryWeightsLookup(t *testing.T) {
	weights := CategoryWeights{
		"Localisation & Urbanisme": 0.4,
		CategoryProperty:           0.35,
	}

	if got := weights.WeightOf(CategoryProperty); got != 0.35 {
		t.Errorf("exact lookup = %v; want 0.35", got)
	}
	if got := weights.WeightOf("localisation & urbanisme"); got != 0.4 {
		t.Errorf("folded lookup = %v; want 0.4", got)
	}
	if got := weights.WeightOf("History & Dynamics"); got != 0 {
		t.Errorf("absent category = %v; want 0", got)
	}
	if got := CategoryWeights(nil).WeightOf(CategoryProperty); got != 0 {
		t.Errorf("nil weights = %v; want 0", got)
	}
}
