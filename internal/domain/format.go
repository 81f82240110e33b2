package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatAmount renders an amount rounded to whole units with comma
// separators, e.g. 22000 -> "22,000". Advisor answers and the CLI report
// both present money this way.
func FormatAmount(d decimal.Decimal) string {
	s := d.Round(0).String()
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteByte(s[i])
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}
