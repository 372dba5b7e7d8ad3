package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/Zia971/immo-opportunit-s/internal"
)

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "all_listings.csv")

	listings := []*internal.Listing{
		{Id: "a", Title: "Maison", Score: 62.5, Explications: []string{"OK Zoning (Location & Zoning) +6.00"}},
		{Id: "b", Title: "Appartement", Score: 31.0},
	}

	if err := WriteCSV(path, listings); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("failed to open output: %v", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}

	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "id" || rows[0][len(rows[0])-1] != "explications" {
		t.Errorf("unexpected header: %v", rows[0])
	}
	if rows[1][0] != "a" || rows[2][0] != "b" {
		t.Errorf("rows out of rank order: %v / %v", rows[1][0], rows[2][0])
	}
	if rows[1][len(rows[1])-1] == "" {
		t.Error("expected joined explications in the last column")
	}
}

func TestWriteCSVEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "all_listings.csv")

	if err := WriteCSV(path, nil); err != nil {
		t.Fatalf("WriteCSV failed on empty input: %v", err)
	}
}
