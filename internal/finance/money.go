package finance

import "github.com/shopspring/decimal"

// AmountFormatter renders a monetary amount for user-facing message
// templates. The engines are otherwise currency-agnostic; the caller decides
// symbol and placement.
type AmountFormatter interface {
	Format(amount decimal.Decimal) string
}

// SymbolFormatter appends a currency symbol after the rounded amount.
type SymbolFormatter struct {
	Symbol string
}

// NewSymbolFormatter creates a SymbolFormatter for the given symbol.
func NewSymbolFormatter(symbol string) SymbolFormatter {
	return SymbolFormatter{Symbol: symbol}
}

// Format renders the amount rounded to whole units, e.g. "5000 ₸".
func (f SymbolFormatter) Format(amount decimal.Decimal) string {
	return amount.Round(0).String() + " " + f.Symbol
}
