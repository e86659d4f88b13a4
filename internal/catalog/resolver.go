package catalog

import (
	"math"
	"strconv"
	"strings"
)

// Row is one spreadsheet line: column label -> cell text.
type Row map[string]string

// Resolve looks up label in row, tolerating header variance.
//
// Matching order, first hit wins: exact key, trimmed label, lower-cased
// label, upper-cased label, then a scan comparing trimmed lower-cased keys
// in which the lexically smallest matching key wins.
// The value is trimmed; a blank value reports ok=false so callers only ever
// need a presence check.
func Resolve(row Row, label string) (string, bool) {
	if row == nil {
		return "", false
	}

	trimmed := strings.TrimSpace(label)
	candidates := [...]string{label, trimmed, strings.ToLower(trimmed), strings.ToUpper(trimmed)}
	for _, key := range candidates {
		if v, ok := row[key]; ok {
			return present(v)
		}
	}

	// Several keys may fold to the same label; the smallest one wins so the
	// result does not depend on map iteration order.
	want := strings.ToLower(trimmed)
	match, found := "", false
	for key := range row {
		if strings.ToLower(strings.TrimSpace(key)) != want {
			continue
		}
		if !found || key < match {
			match, found = key, true
		}
	}
	if !found {
		return "", false
	}
	return present(row[match])
}

func present(v string) (string, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return "", false
	}
	return v, true
}

// ParseDecimal parses a spreadsheet number written with either '.' or ','
// as decimal separator. Non-finite or malformed values are absent.
func ParseDecimal(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	s = strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// ParseQuantity parses a stock cell. Fractional quantities are truncated.
func ParseQuantity(s string) (int, bool) {
	v, ok := ParseDecimal(s)
	if !ok || v > math.MaxInt32 || v < math.MinInt32 {
		return 0, false
	}
	return int(v), true
}

// resolveDecimal is Resolve followed by ParseDecimal.
func resolveDecimal(row Row, label string) (float64, bool) {
	raw, ok := Resolve(row, label)
	if !ok {
		return 0, false
	}
	return ParseDecimal(raw)
}

func resolveDecimalPtr(row Row, label string) *float64 {
	if v, ok := resolveDecimal(row, label); ok {
		return &v
	}
	return nil
}

func resolveQuantity(row Row, label string) (int, bool) {
	raw, ok := Resolve(row, label)
	if !ok {
		return 0, false
	}
	return ParseQuantity(raw)
}
