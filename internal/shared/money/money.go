// Package money formats Philippine peso amounts.
package money

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	CurrencyCode   = "PHP"
	CurrencySymbol = "₱"
)

var (
	million  = decimal.NewFromInt(1_000_000)
	thousand = decimal.NewFromInt(1_000)
)

// grouped renders amount with two decimals and thousands separators
func grouped(amount decimal.Decimal) string {
	p := message.NewPrinter(language.English)
	return p.Sprintf("%.2f", amount.Round(2).InexactFloat64())
}

// FormatCurrency ₱1,234.50; the sign goes before the symbol
func FormatCurrency(amount decimal.Decimal) string {
	if amount.IsNegative() {
		return "-" + CurrencySymbol + grouped(amount.Neg())
	}
	return CurrencySymbol + grouped(amount)
}

// FormatPeso symbol followed by the grouped amount
func FormatPeso(amount decimal.Decimal) string {
	return CurrencySymbol + grouped(amount)
}

// FormatCompact ₱1.2M, ₱3.5K, or the full amount below a thousand
func FormatCompact(amount decimal.Decimal) string {
	switch {
	case amount.GreaterThanOrEqual(million):
		return CurrencySymbol + amount.Div(million).StringFixed(1) + "M"
	case amount.GreaterThanOrEqual(thousand):
		return CurrencySymbol + amount.Div(thousand).StringFixed(1) + "K"
	}
	return FormatPeso(amount)
}

// Parse strips the symbol, separators and whitespace. Unparseable input is zero.
func Parse(value string) decimal.Decimal {
	cleaned := strings.Map(func(r rune) rune {
		if r == '₱' || r == ',' || unicode.IsSpace(r) {
			return -1
		}
		return r
	}, value)
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// Valuation quantity times unit cost, rounded to centavos
func Valuation(qty int, unitCost float64) decimal.Decimal {
	return decimal.NewFromFloat(unitCost).Mul(decimal.NewFromInt(int64(qty))).Round(2)
}
