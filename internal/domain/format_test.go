package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "0"},
		{"950", "950"},
		{"9500", "9,500"},
		{"22000", "22,000"},
		{"1234567", "1,234,567"},
		{"-22000", "-22,000"},
		{"22000.49", "22,000"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			d, err := decimal.NewFromString(tt.in)
			if err != nil {
				t.Fatalf("bad decimal %q: %v", tt.in, err)
			}
			if got := FormatAmount(d); got != tt.want {
				t.Errorf("FormatAmount(%s) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
