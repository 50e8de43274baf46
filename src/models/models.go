package models

import (
	"github.com/shopspring/decimal"
)

// Investment is a single holding inside an account. Unsaved rows carry the
// sentinel ID 0 until the first persistence round-trip assigns a real one.
type Investment struct {
	ID        int64           `json:"id"`
	AccountID int64           `json:"account_id"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	Amount    decimal.Decimal `json:"amount"`   // native units
	Currency  string          `json:"currency"` // native currency code
}

// Account is a bank or brokerage account. The cash balance is denominated in
// CashCurrency independently of any investment's currency.
type Account struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	Holder       string          `json:"holder"`
	Cash         decimal.Decimal `json:"cash"`
	CashCurrency string          `json:"cash_currency"`
	Investments  []Investment    `json:"investments"`
}

// RateMap maps a currency code to its conversion factor relative to the
// reporting currency the map was fetched for. A native amount divided by its
// factor yields the amount in the reporting currency.
type RateMap map[string]decimal.Decimal

// RateFor looks up the conversion factor for a currency code. A missing or
// non-positive entry yields a *MissingRateError; the map is never indexed
// directly so callers cannot silently propagate a zero rate.
func (m RateMap) RateFor(code string) (decimal.Decimal, error) {
	rate, ok := m[code]
	if !ok || rate.LessThanOrEqual(decimal.Zero) {
		return decimal.Decimal{}, &MissingRateError{Currency: code}
	}
	return rate, nil
}
