package history

import (
	"testing"
	"time"

	"github.com/Zia971/immo-opportunit-s/internal"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func listing(id string, price float64) *internal.Listing {
	return &internal.Listing{Id: id, PriceTotal: price, Status: internal.StatusAvailable}
}

func TestUpdateHistoryNewListing(t *testing.T) {
	store := UpdateHistory(testNow, []*internal.Listing{listing("a", 200000)}, Store{}, Options{})

	rec, ok := store["a"]
	if !ok {
		t.Fatal("expected record for id a")
	}
	if !rec.FirstSeen.Equal(testNow) || !rec.LastSeen.Equal(testNow) {
		t.Errorf("new record timestamps = %v/%v; want both %v", rec.FirstSeen, rec.LastSeen, testNow)
	}
	if rec.LastPrice != 200000 {
		t.Errorf("last price = %v; want 200000", rec.LastPrice)
	}
	if rec.PriceDropPct != 0 {
		t.Errorf("price drop for new listing = %v; want 0", rec.PriceDropPct)
	}
}

func TestUpdateHistoryPriceDrop(t *testing.T) {
	firstSeen := testNow.AddDate(0, 0, -30)
	prev := Store{"a": {FirstSeen: firstSeen, LastSeen: testNow.AddDate(0, 0, -1), LastPrice: 200000, Status: internal.StatusAvailable}}

	tests := []struct {
		name  string
		price float64
		want  float64
	}{
		{"ten percent drop", 180000, 10.0},
		{"small drop rounded", 199999, 0.0},
		{"price rise", 210000, 0.0},
		{"same price", 200000, 0.0},
		{"unknown price", 0, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := UpdateHistory(testNow, []*internal.Listing{listing("a", tt.price)}, prev, Options{})

			rec := store["a"]
			if rec.PriceDropPct != tt.want {
				t.Errorf("price drop = %v; want %v", rec.PriceDropPct, tt.want)
			}
			if !rec.FirstSeen.Equal(firstSeen) {
				t.Errorf("first seen mutated: %v != %v", rec.FirstSeen, firstSeen)
			}
			if !rec.LastSeen.Equal(testNow) {
				t.Errorf("last seen = %v; want %v", rec.LastSeen, testNow)
			}
		})
	}
}

func TestUpdateHistoryDropAgainstZeroLastPrice(t *testing.T) {
	prev := Store{"a": {FirstSeen: testNow.AddDate(0, 0, -5), LastPrice: 0}}

	store := UpdateHistory(testNow, []*internal.Listing{listing("a", 150000)}, prev, Options{})
	if got := store["a"].PriceDropPct; got != 0 {
		t.Errorf("price drop against zero last price = %v; want 0", got)
	}
}

func TestUpdateHistoryRounding(t *testing.T) {
	prev := Store{"a": {FirstSeen: testNow, LastPrice: 300000}}

	store := UpdateHistory(testNow, []*internal.Listing{listing("a", 200000)}, prev, Options{})
	if got := store["a"].PriceDropPct; got != 33.33 {
		t.Errorf("price drop = %v; want 33.33", got)
	}
}

func TestUpdateHistoryFirstSeenMonotonic(t *testing.T) {
	firstSeen := testNow.AddDate(0, 0, -120)
	store := Store{"a": {FirstSeen: firstSeen, LastSeen: firstSeen, LastPrice: 200000}}

	for i := 1; i <= 5; i++ {
		runAt := testNow.AddDate(0, 0, i)
		store = UpdateHistory(runAt, []*internal.Listing{listing("a", 195000-float64(i)*1000)}, store, Options{})

		if !store["a"].FirstSeen.Equal(firstSeen) {
			t.Fatalf("run %d mutated first seen: %v != %v", i, store["a"].FirstSeen, firstSeen)
		}
	}
}

func TestUpdateHistorySkipsEmptyId(t *testing.T) {
	store := UpdateHistory(testNow, []*internal.Listing{listing("", 100000), listing("b", 100000)}, Store{}, Options{})

	if len(store) != 1 {
		t.Fatalf("expected 1 record, got %d", len(store))
	}
	if _, ok := store[""]; ok {
		t.Error("empty id must not appear in the store")
	}
}

func TestUpdateHistoryDropsUnseenIds(t *testing.T) {
	prev := Store{"gone": {FirstSeen: testNow.AddDate(0, 0, -10), LastPrice: 120000}}

	store := UpdateHistory(testNow, []*internal.Listing{listing("a", 100000)}, prev, Options{})

	if _, ok := store["gone"]; ok {
		t.Error("unseen id must be dropped under current-set semantics")
	}
}

func TestUpdateHistoryRetainStaleIds(t *testing.T) {
	stale := Record{FirstSeen: testNow.AddDate(0, 0, -10), LastSeen: testNow.AddDate(0, 0, -2), LastPrice: 120000, Status: internal.StatusAvailable}
	prev := Store{"gone": stale}

	store := UpdateHistory(testNow, []*internal.Listing{listing("a", 100000)}, prev, Options{RetainStaleIds: true})

	got, ok := store["gone"]
	if !ok {
		t.Fatal("expected stale id to be retained")
	}
	if got != stale {
		t.Errorf("stale record mutated: %+v != %+v", got, stale)
	}
}

func TestUpdateHistoryDefaultsStatus(t *testing.T) {
	l := &internal.Listing{Id: "a", PriceTotal: 100000}

	store := UpdateHistory(testNow, []*internal.Listing{l}, Store{}, Options{})
	if got := store["a"].Status; got != internal.StatusAvailable {
		t.Errorf("status = %q; want %q", got, internal.StatusAvailable)
	}
}

func TestEnrichMatched(t *testing.T) {
	l := listing("a", 180000)
	store := Store{"a": {
		FirstSeen:    testNow.AddDate(0, 0, -91),
		LastSeen:     testNow,
		LastPrice:    180000,
		Status:       internal.StatusAvailable,
		PriceDropPct: 10.0,
	}}

	Enrich(testNow, []*internal.Listing{l}, store)

	if l.AgeDays != 91 {
		t.Errorf("age = %d; want 91", l.AgeDays)
	}
	if l.PriceDropPct != 10.0 {
		t.Errorf("price drop = %v; want 10.0", l.PriceDropPct)
	}
	if l.IsReturned {
		t.Error("is_returned must stay false")
	}
}

func TestEnrichFallsBackToLastSeen(t *testing.T) {
	l := listing("a", 100000)
	store := Store{"a": {LastSeen: testNow.AddDate(0, 0, -3)}}

	Enrich(testNow, []*internal.Listing{l}, store)

	if l.AgeDays != 3 {
		t.Errorf("age = %d; want 3 (last seen fallback)", l.AgeDays)
	}
}

func TestEnrichUnmatchedDefaults(t *testing.T) {
	l := &internal.Listing{Id: "unknown"}

	Enrich(testNow, []*internal.Listing{l}, Store{})

	if l.AgeDays != 0 || l.PriceDropPct != 0 || l.IsReturned {
		t.Errorf("unexpected enrichment defaults: %+v", l)
	}
	if l.Status != internal.StatusAvailable {
		t.Errorf("status = %q; want %q", l.Status, internal.StatusAvailable)
	}
}

func TestEnrichEmptyListings(t *testing.T) {
	// must not panic and must not touch the store
	store := Store{"a": {FirstSeen: testNow}}
	Enrich(testNow, nil, store)

	if len(store) != 1 {
		t.Errorf("store mutated by enrichment of empty input")
	}
}
