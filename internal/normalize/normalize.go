package normalize

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// amountReplacer strips the currency symbols and thousands separators the
// extraction step is known to emit.
var amountReplacer = strings.NewReplacer("₦", "", "$", "", "£", "", "€", "", ",", "")

// ParseAmount converts a currency-prefixed amount string into a float.
// Malformed or empty input yields 0.0 instead of an error so that a single
// bad row cannot abort an aggregation run. No sign convention is applied
// here; direction is determined later from the transaction type.
func ParseAmount(raw string) float64 {
	if raw == "" {
		return 0
	}
	cleaned := strings.TrimSpace(amountReplacer.Replace(raw))
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return v
}

// dateLayouts are tried in order; the first successful parse wins. Ambiguous
// strings such as "03/04/2024" therefore resolve day-first, by precedence
// rather than locale detection.
var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"01/02/2006",
	"2006/01/02",
	"02-01-2006",
	"01-02-2006",
}

// ExtractMonth normalizes a raw date string into the canonical YYYY-MM key.
// The second return value is false when no layout matches.
func ExtractMonth(raw string) (string, bool) {
	if raw == "" {
		return "", false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("2006-01"), true
		}
	}
	return "", false
}

// PreviousMonth returns the canonical key of the calendar month immediately
// before t, rolling the year back at January.
func PreviousMonth(t time.Time) string {
	if t.Month() == time.January {
		return fmt.Sprintf("%d-12", t.Year()-1)
	}
	return fmt.Sprintf("%d-%02d", t.Year(), int(t.Month())-1)
}

// MonthDisplay renders a month key as a report title, e.g. "2025-08" →
// "August 2025". Keys that fail to parse are returned unchanged.
func MonthDisplay(month string) string {
	t, err := time.Parse("2006-01", month)
	if err != nil {
		return month
	}
	return t.Format("January 2006")
}

// MonthDisplayShort renders a month key in table form, e.g. "2025-08" →
// "Aug 2025". Keys that fail to parse are returned unchanged.
func MonthDisplayShort(month string) string {
	t, err := time.Parse("2006-01", month)
	if err != nil {
		return month
	}
	return t.Format("Jan 2006")
}
