package models

import (
	"github.com/shopspring/decimal"
)

// CashBucketLabel is the synthetic pseudo-category that collects every
// account's cash balance in the overall breakdown.
const CashBucketLabel = "Cash"

// Bucket is one aggregated slice of a portfolio breakdown: an investment name
// in single-account mode, a category (or the synthetic Cash bucket) in
// overall mode. Value and Percentage are in the reporting currency at full
// precision; rounding happens when the view is assembled.
type Bucket struct {
	Label      string
	Value      decimal.Decimal
	Percentage decimal.Decimal
}

// Breakdown is the result of one full valuation pass. It is rebuilt from
// scratch on every pass, never patched incrementally. MissingCurrencies lists
// the currency codes whose terms were skipped because the rate map had no
// entry for them; a non-empty list means Total is a partial figure.
type Breakdown struct {
	Buckets           []Bucket
	Total             decimal.Decimal
	MissingCurrencies []string
}

// InvestmentStatistic is one row of a persisted overall-view snapshot,
// recorded for historical reporting.
type InvestmentStatistic struct {
	Category   string          `json:"category"`
	Amount     decimal.Decimal `json:"amount"`
	Currency   string          `json:"currency"`
	Percentage decimal.Decimal `json:"percentage"`
}
