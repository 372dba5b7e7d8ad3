package criteria

import (
	"fmt"

	"github.com/Zia971/immo-opportunit-s/internal/util"
	"github.com/xuri/excelize/v2"
)

// Sheet and column headers are located by fuzzy match (accents stripped,
// case folded) because the workbook is user-edited and tab names drift
// between revisions. A renamed or missing sheet degrades to an empty catalog
// or zero weights, it never fails the load.

var criteriaSheetHints = []string{"critere", "criteria"}
var weightsSheetHints = []string{"calibration", "ponderation", "poids", "weight"}

var nameColumnHints = []string{"critere", "criterion", "nom", "name"}
var categoryColumnHints = []string{"categorie", "category"}
var kindColumnHints = []string{"regle", "rule", "type"}
var weightColumnHints = []string{"poids", "weight"}
var targetColumnHints = []string{"cible", "valeur", "target", "seuil", "threshold"}

// LoadCalibration reads the criteria catalog and the category weights from an
// xlsx workbook. The only hard failure is an unreadable file; everything
// inside the workbook degrades per the hints above.
func LoadCalibration(path string) ([]CatalogRow, CategoryWeights, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open calibration workbook %s: %v", path, err)
	}
	defer f.Close()

	catalog := readCatalog(f)
	weights := readWeights(f)

	return catalog, weights, nil
}

func findSheet(f *excelize.File, hints []string) (string, bool) {
	for _, sheet := range f.GetSheetList() {
		folded := util.FoldStr(sheet)
		for _, hint := range hints {
			if util.ContainsFold(folded, hint) {
				return sheet, true
			}
		}
	}

	return "", false
}

func readCatalog(f *excelize.File) []CatalogRow {
	sheet, ok := findSheet(f, criteriaSheetHints)
	if !ok {
		return nil
	}

	rows, err := f.GetRows(sheet)
	if err != nil || len(rows) < 2 {
		return nil
	}

	header := rows[0]
	nameCol := findColumn(header, nameColumnHints)
	categoryCol := findColumn(header, categoryColumnHints)
	kindCol := findColumn(header, kindColumnHints)
	weightCol := findColumn(header, weightColumnHints)
	targetCol := findColumn(header, targetColumnHints)

	if nameCol < 0 {
		return nil
	}

	catalog := make([]CatalogRow, 0, len(rows)-1)
	for _, row := range rows[1:] {
		name := cell(row, nameCol)
		if name == "" {
			continue
		}

		catalog = append(catalog, CatalogRow{
			Name:     name,
			Category: cell(row, categoryCol),
			Kind:     cell(row, kindCol),
			Weight:   cell(row, weightCol),
			Target:   cell(row, targetCol),
		})
	}

	return catalog
}

func readWeights(f *excelize.File) CategoryWeights {
	sheet, ok := findSheet(f, weightsSheetHints)
	if !ok {
		return CategoryWeights{}
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return CategoryWeights{}
	}

	weights := make(CategoryWeights, len(rows))
	for _, row := range rows {
		category := cell(row, 0)
		if category == "" {
			continue
		}

		w, ok := util.ParseFloatLoose(cell(row, 1))
		if !ok {
			// header row or malformed weight
			continue
		}

		weights[category] = w
	}

	return weights
}

func findColumn(header []string, hints []string) int {
	for i, col := range header {
		folded := util.FoldStr(col)
		for _, hint := range hints {
			if util.ContainsFold(folded, hint) {
				return i
			}
		}
	}

	return -1
}

func cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}

	return row[col]
}
