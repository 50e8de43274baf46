package processors

import (
	"github.com/shopspring/decimal"

	"github.com/username/hogiahlang/src/models"
)

// AccountTotal computes one account's normalized value: valuated cash plus
// the valuated amount of every investment, each term converted with its own
// native currency. Terms whose currency is absent from rates contribute
// nothing to the sum; their currency codes are returned so the caller can
// show the partial total with a warning instead of dropping it silently.
func AccountTotal(account models.Account, rates models.RateMap) (decimal.Decimal, []string) {
	total := decimal.Zero
	var missing []string

	cash, err := Valuate(account.Cash, account.CashCurrency, rates)
	if err != nil {
		missing = appendMissing(missing, account.CashCurrency)
	} else {
		total = total.Add(cash)
	}

	for _, inv := range account.Investments {
		v, err := Valuate(inv.Amount, inv.Currency, rates)
		if err != nil {
			missing = appendMissing(missing, inv.Currency)
			continue
		}
		total = total.Add(v)
	}
	return total, missing
}

// appendMissing records a currency code once, preserving first-seen order.
func appendMissing(missing []string, code string) []string {
	for _, c := range missing {
		if c == code {
			return missing
		}
	}
	return append(missing, code)
}
