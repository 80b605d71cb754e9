package receipt

import (
	"strings"

	"github.com/shopspring/decimal"

	"hotel-folio/billing"
)

const pesoSign = "₱"

// FormatPeso renders an amount as "₱1,234.50". Anything that is not a finite
// number renders as "₱0.00".
func FormatPeso(v float64) string {
	if !billing.Finite(v) {
		return pesoSign + "0.00"
	}
	s := decimal.NewFromFloat(v).StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	whole, frac, _ := strings.Cut(s, ".")
	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	out := pesoSign + b.String() + "." + frac
	if neg && out != pesoSign+"0.00" {
		return "-" + out
	}
	return out
}
