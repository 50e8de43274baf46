package models

import (
	"github.com/shopspring/decimal"
)

// CurrencyOption pairs a supported currency code with its display symbol.
type CurrencyOption struct {
	Code   string `json:"code"`
	Symbol string `json:"symbol"`
}

// supportedCurrencies is the fixed reference set. Order is the display order
// offered by the UI, so keep it stable.
var supportedCurrencies = []CurrencyOption{
	{Code: "EUR", Symbol: "€"},
	{Code: "USD", Symbol: "$"},
	{Code: "TWD", Symbol: "NT$"},
	{Code: "JPY", Symbol: "¥"},
}

// DefaultCurrency is the currency assumed for accounts that never had their
// cash balance set.
const DefaultCurrency = "EUR"

// SupportedCurrencies returns a copy of the currency reference set.
func SupportedCurrencies() []CurrencyOption {
	out := make([]CurrencyOption, len(supportedCurrencies))
	copy(out, supportedCurrencies)
	return out
}

// CurrencyCodes returns the supported codes in display order.
func CurrencyCodes() []string {
	codes := make([]string, 0, len(supportedCurrencies))
	for _, c := range supportedCurrencies {
		codes = append(codes, c.Code)
	}
	return codes
}

// IsSupportedCurrency reports whether code is part of the reference set.
// Codes are matched exactly; there is no case folding.
func IsSupportedCurrency(code string) bool {
	for _, c := range supportedCurrencies {
		if c.Code == code {
			return true
		}
	}
	return false
}

// SymbolFor returns the display symbol for a currency code.
// The second return value is false for unknown codes.
func SymbolFor(code string) (string, bool) {
	for _, c := range supportedCurrencies {
		if c.Code == code {
			return c.Symbol, true
		}
	}
	return "", false
}

// FormatAmount renders an amount as "<symbol><amount>" with two decimal
// places, e.g. "€1234.50". Unknown codes fall back to the raw code so the
// value is still attributable.
func FormatAmount(code string, amount decimal.Decimal) string {
	symbol, ok := SymbolFor(code)
	if !ok {
		symbol = code + " "
	}
	return symbol + amount.StringFixed(2)
}
