package format

import (
	"fmt"
	"math"
	"strings"
)

// COP formats a value as Colombian pesos with the local convention of
// dot thousand separators and a comma decimal mark: "$ 1.234.567,00".
func COP(value float64, decimals int) string {
	if decimals < 0 {
		decimals = 0
	}

	negative := math.Signbit(value) && value != 0
	rounded := math.Abs(value)

	scale := math.Pow(10, float64(decimals))
	rounded = math.Round(rounded*scale) / scale

	intPart := int64(rounded)
	fracPart := rounded - float64(intPart)

	grouped := groupThousands(intPart)

	var b strings.Builder
	b.WriteString("$ ")
	if negative {
		b.WriteString("-")
	}
	b.WriteString(grouped)
	if decimals > 0 {
		frac := fmt.Sprintf("%.*f", decimals, fracPart)
		// Keep only the digits after "0."
		b.WriteString(",")
		b.WriteString(frac[2:])
	}
	return b.String()
}

func groupThousands(n int64) string {
	digits := fmt.Sprintf("%d", n)
	if len(digits) <= 3 {
		return digits
	}

	var groups []string
	for len(digits) > 3 {
		groups = append([]string{digits[len(digits)-3:]}, groups...)
		digits = digits[:len(digits)-3]
	}
	groups = append([]string{digits}, groups...)
	return strings.Join(groups, ".")
}
