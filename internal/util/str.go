package util

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var accentStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// FoldStr normalizes free text for fuzzy matching:
// accents stripped, case folded, whitespace trimmed and collapsed.
func FoldStr(input string) string {
	result := input

	result = strings.ReplaceAll(result, " ", " ")
	result = strings.ReplaceAll(result, "&nbsp;", " ")
	result = strings.ReplaceAll(result, "&#160;", " ")

	if stripped, _, err := transform.String(accentStripper, result); err == nil {
		result = stripped
	}

	result = strings.ToLower(result)
	result = strings.Join(strings.Fields(result), " ")

	return result
}

// ContainsFold reports whether s contains substr under FoldStr normalization.
func ContainsFold(s, substr string) bool {
	return strings.Contains(FoldStr(s), FoldStr(substr))
}

// ParseFloatLoose parses numbers as they appear in spreadsheets and scraped
// text: surrounding spaces, thin spaces as thousand separators, comma as the
// decimal separator. Returns false instead of an error when nothing numeric
// can be extracted.
func ParseFloatLoose(input string) (float64, bool) {
	s := input

	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, ",", ".")
	s = strings.TrimSpace(s)

	if s == "" {
		return 0, false
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}

	return v, true
}
