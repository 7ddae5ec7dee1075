package reporting

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/mamadbah2/inmilk/internal/domain/models"
)

const currencyPrefix = "R$ "

// FormatBRL renders v as Brazilian reais, e.g. "R$ 1.234,56". Values that
// cannot be formatted (NaN, ±Inf) yield an empty string.
func FormatBRL(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return ""
	}

	s := strconv.FormatFloat(v, 'f', 2, 64)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign = "-"
		s = s[1:]
	}

	whole, frac, _ := strings.Cut(s, ".")
	return currencyPrefix + sign + groupThousands(whole, '.') + "," + frac
}

func groupThousands(digits string, sep byte) string {
	if len(digits) <= 3 {
		return digits
	}

	var b strings.Builder
	b.Grow(len(digits) + len(digits)/3)

	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(sep)
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

func formatFixed(v float64, decimals int) string {
	return strconv.FormatFloat(v, 'f', decimals, 64)
}

func formatQuantity(v float64, unit string) string {
	return fmt.Sprintf("%s %s", formatFixed(v, 2), unit)
}

func formatOptional(o models.Optional, decimals int, suffix, undefined string) string {
	if !o.Valid {
		return undefined
	}
	return formatFixed(o.Value, decimals) + suffix
}
