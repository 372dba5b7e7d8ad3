// Package export writes the ranked result set for presentation. It consumes
// scores and explanations, it never influences them.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/Zia971/immo-opportunit-s/internal"
	"github.com/Zia971/immo-opportunit-s/internal/scoring"
	"github.com/fatih/color"
)

var csvHeader = []string{
	"id", "title", "url", "source_name", "status",
	"price_total", "surface_hab", "bedrooms",
	"yield_net", "cashflow", "capex_ratio",
	"age_days", "price_drop_pct",
	"score", "explications",
}

// WriteCSV writes the full ranking in order.
func WriteCSV(path string, listings []*internal.Listing) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %v", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %v", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)

	if err := w.Write(csvHeader); err != nil {
		return err
	}

	for _, l := range listings {
		record := []string{
			l.Id, l.Title, l.Url, l.SourceName, l.Status,
			formatFloat(l.PriceTotal), formatFloat(l.SurfaceHab), strconv.Itoa(l.Bedrooms),
			formatFloat(l.YieldNet), formatFloat(l.Cashflow), formatFloat(l.CapexRatio),
			strconv.Itoa(l.AgeDays), formatFloat(l.PriceDropPct),
			formatFloat(l.Score), scoring.Explanation(l.Explications),
		}

		if err := w.Write(record); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// PrintTop renders the first n ranked listings to the console.
func PrintTop(listings []*internal.Listing, n int) {
	if len(listings) == 0 {
		fmt.Println("no listings ranked this run")
		return
	}

	if n > len(listings) {
		n = len(listings)
	}

	header := color.New(color.FgCyan, color.Bold)
	scoreColor := color.New(color.FgGreen, color.Bold)
	dropColor := color.New(color.FgYellow)

	header.Printf("Top %d opportunities\n", n)

	for i, l := range listings[:n] {
		title := l.Title
		if title == "" {
			title = "(untitled)"
		}

		fmt.Printf("%2d. %s  ", i+1, title)
		scoreColor.Printf("%.1f/100", l.Score)

		if l.PriceDropPct > 0 {
			fmt.Print(" ")
			dropColor.Printf("(-%.1f%%)", l.PriceDropPct)
		}

		fmt.Println()

		if l.Url != "" {
			fmt.Printf("    %s\n", l.Url)
		}

		if len(l.Explications) > 0 {
			fmt.Printf("    %s\n", scoring.Explanation(l.Explications))
		}
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
