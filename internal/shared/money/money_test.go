package money

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "₱0.00"},
		{"1234.5", "₱1,234.50"},
		{"1234567.891", "₱1,234,567.89"},
		{"-42.1", "-₱42.10"},
		{"0.005", "₱0.01"},
	}
	for _, tt := range tests {
		if got := FormatCurrency(decimal.RequireFromString(tt.in)); got != tt.want {
			t.Errorf("FormatCurrency(%s) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatPeso(t *testing.T) {
	if got := FormatPeso(decimal.NewFromFloat(98765.4)); got != "₱98,765.40" {
		t.Errorf("FormatPeso = %q", got)
	}
}

func TestFormatCompact(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{1_250_000, "₱1.3M"},
		{1_000_000, "₱1.0M"},
		{3_500, "₱3.5K"},
		{999.5, "₱999.50"},
	}
	for _, tt := range tests {
		if got := FormatCompact(decimal.NewFromFloat(tt.in)); got != tt.want {
			t.Errorf("FormatCompact(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"₱1,234.50", "1234.5"},
		{" ₱ 12 ", "12"},
		{"abc", "0"},
		{"", "0"},
	}
	for _, tt := range tests {
		if got := Parse(tt.in); !got.Equal(decimal.RequireFromString(tt.want)) {
			t.Errorf("Parse(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestValuation(t *testing.T) {
	if got := Valuation(3, 19.99); !got.Equal(decimal.RequireFromString("59.97")) {
		t.Errorf("Valuation = %s", got)
	}
}
