package processors

import (
	"github.com/shopspring/decimal"

	"github.com/username/hogiahlang/src/models"
)

var oneHundred = decimal.NewFromInt(100)

// HoldingBreakdown is the single-account view: one bucket per investment,
// ungrouped, labelled with the investment name. Bucket order follows the
// account's investment order.
func HoldingBreakdown(account models.Account, rates models.RateMap) models.Breakdown {
	buckets := make([]models.Bucket, 0, len(account.Investments))
	var missing []string

	for _, inv := range account.Investments {
		v, err := Valuate(inv.Amount, inv.Currency, rates)
		if err != nil {
			missing = appendMissing(missing, inv.Currency)
			continue
		}
		buckets = append(buckets, models.Bucket{Label: inv.Name, Value: v})
	}
	return finalize(buckets, missing)
}

// OverallBreakdown spans all accounts: one bucket per distinct category
// across every account's investments, plus a synthetic Cash bucket summing
// every account's cash balance. Categories group by the raw string,
// case-sensitively, and buckets appear in first-encounter order with the
// Cash bucket last.
func OverallBreakdown(accounts []models.Account, rates models.RateMap) models.Breakdown {
	var buckets []models.Bucket
	index := make(map[string]int)
	var missing []string

	add := func(label string, v decimal.Decimal) {
		if i, ok := index[label]; ok {
			buckets[i].Value = buckets[i].Value.Add(v)
			return
		}
		index[label] = len(buckets)
		buckets = append(buckets, models.Bucket{Label: label, Value: v})
	}

	for _, account := range accounts {
		for _, inv := range account.Investments {
			v, err := Valuate(inv.Amount, inv.Currency, rates)
			if err != nil {
				missing = appendMissing(missing, inv.Currency)
				continue
			}
			add(inv.Category, v)
		}
	}

	cash := decimal.Zero
	haveCash := false
	for _, account := range accounts {
		v, err := Valuate(account.Cash, account.CashCurrency, rates)
		if err != nil {
			missing = appendMissing(missing, account.CashCurrency)
			continue
		}
		cash = cash.Add(v)
		haveCash = true
	}
	if haveCash {
		add(models.CashBucketLabel, cash)
	}

	return finalize(buckets, missing)
}

// finalize totals the buckets and fills in each bucket's share of the total.
// A zero total yields zero percentages rather than a division error.
func finalize(buckets []models.Bucket, missing []string) models.Breakdown {
	total := decimal.Zero
	for _, b := range buckets {
		total = total.Add(b.Value)
	}
	for i := range buckets {
		if total.IsZero() {
			buckets[i].Percentage = decimal.Zero
			continue
		}
		buckets[i].Percentage = buckets[i].Value.Mul(oneHundred).Div(total)
	}
	return models.Breakdown{Buckets: buckets, Total: total, MissingCurrencies: missing}
}
