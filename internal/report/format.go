package report

import (
	"math"
	"strconv"
	"strings"
)

// currencySymbol prefixes every formatted amount in rendered documents.
const currencySymbol = "₦"

// formatCurrency renders the absolute value with thousands separators and two
// decimal places, e.g. 1775 → "₦1,775.00". Direction is conveyed by row
// labels, never by a minus sign.
func formatCurrency(amount float64) string {
	s := strconv.FormatFloat(math.Abs(amount), 'f', 2, 64)
	dot := strings.IndexByte(s, '.')
	return currencySymbol + groupThousands(s[:dot]) + s[dot:]
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// truncate caps a label at n characters, counting runes so multi-byte
// merchant names are not split mid-character.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// orUnknown substitutes the placeholder the detail table shows for empty
// fields.
func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}
