package calculation

import (
	"math"
	"strconv"
	"strings"

	"ustat/internal/domain"
)

// FormatTRY renders v with dot thousands separators and two comma decimals,
// e.g. 1234.5 -> "1.234,50".
func FormatTRY(v float64) string {
	neg := v < 0
	cents := int64(math.Round(math.Abs(v) * 100))
	whole := strconv.FormatInt(cents/100, 10)
	frac := cents % 100

	var b strings.Builder
	if neg && cents != 0 {
		b.WriteByte('-')
	}
	b.WriteString(group(whole))
	b.WriteByte(',')
	if frac < 10 {
		b.WriteByte('0')
	}
	b.WriteString(strconv.FormatInt(frac, 10))
	return b.String()
}

// MaskTRY reformats partially typed input: digits are grouped by three and
// at most two digits are kept after the first comma. Anything else is
// dropped.
func MaskTRY(input string) string {
	var clean strings.Builder
	for _, r := range input {
		if (r >= '0' && r <= '9') || r == ',' {
			clean.WriteRune(r)
		}
	}
	s := clean.String()
	if s == "" {
		return ""
	}
	whole, frac, hasComma := strings.Cut(s, ",")
	frac = strings.ReplaceAll(frac, ",", "")
	if len(frac) > 2 {
		frac = frac[:2]
	}
	out := group(whole)
	if hasComma && frac != "" {
		out += "," + frac
	}
	return out
}

// ParseTRY reads an amount written the Turkish way: dots group thousands
// and a comma starts the decimals, so "50.000" is fifty thousand and
// "1.234,56" is 1234.56. It accepts anything MaskTRY or FormatTRY produce.
func ParseTRY(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(strings.TrimSpace(strings.TrimSuffix(s, "TL")), "₺")
	s = strings.TrimSpace(strings.TrimPrefix(s, "₺"))
	if s == "" {
		return 0, domain.Invalid("amount", "please enter an amount")
	}
	s = strings.ReplaceAll(s, ".", "")
	s = strings.Replace(s, ",", ".", 1)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, domain.Invalid("amount", "amount is not a number")
	}
	return v, nil
}

func group(digits string) string {
	digits = strings.TrimLeft(digits, "0")
	if digits == "" {
		return "0"
	}
	n := len(digits)
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (n-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	return b.String()
}
