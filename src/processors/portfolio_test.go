package processors

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/username/hogiahlang/src/models"
)

func unitRates() models.RateMap {
	rates := models.RateMap{}
	for _, code := range models.CurrencyCodes() {
		rates[code] = decimal.NewFromInt(1)
	}
	return rates
}

func TestHoldingBreakdown_OneBucketPerInvestment(t *testing.T) {
	account := models.Account{
		Cash:         decimal.NewFromInt(999),
		CashCurrency: "EUR",
		Investments: []models.Investment{
			{Name: "S&P 500 ETF", Category: "Stock", Amount: decimal.NewFromInt(100), Currency: "USD"},
			{Name: "Gold", Category: "Commodity", Amount: decimal.NewFromInt(50), Currency: "USD"},
			{Name: "Tech Fund", Category: "Stock", Amount: decimal.NewFromInt(50), Currency: "USD"},
		},
	}

	b := HoldingBreakdown(account, unitRates())

	// Holdings stay ungrouped even when categories repeat; cash is not listed.
	require.Len(t, b.Buckets, 3)
	assert.Equal(t, "S&P 500 ETF", b.Buckets[0].Label)
	assert.Equal(t, "Gold", b.Buckets[1].Label)
	assert.Equal(t, "Tech Fund", b.Buckets[2].Label)
	assert.True(t, decimal.NewFromInt(200).Equal(b.Total), "got %s", b.Total)
}

func TestOverallBreakdown_GroupsByCategoryAcrossAccounts(t *testing.T) {
	accounts := []models.Account{
		{
			Cash:         decimal.Zero,
			CashCurrency: "USD",
			Investments: []models.Investment{
				{Name: "ETF A", Category: "Stock", Amount: decimal.NewFromInt(100), Currency: "USD"},
			},
		},
		{
			Cash:         decimal.Zero,
			CashCurrency: "USD",
			Investments: []models.Investment{
				{Name: "ETF B", Category: "Stock", Amount: decimal.NewFromInt(50), Currency: "USD"},
			},
		},
	}

	b := OverallBreakdown(accounts, models.RateMap{"USD": decimal.NewFromInt(1)})

	require.Empty(t, b.MissingCurrencies)
	require.Len(t, b.Buckets, 2) // one Stock bucket plus the Cash bucket

	assert.Equal(t, "Stock", b.Buckets[0].Label)
	assert.True(t, decimal.NewFromInt(150).Equal(b.Buckets[0].Value), "got %s", b.Buckets[0].Value)

	assert.Equal(t, models.CashBucketLabel, b.Buckets[1].Label)
	assert.True(t, b.Buckets[1].Value.IsZero())
}

func TestOverallBreakdown_CategoryGroupingIsCaseSensitive(t *testing.T) {
	accounts := []models.Account{
		{
			Cash:         decimal.Zero,
			CashCurrency: "EUR",
			Investments: []models.Investment{
				{Name: "A", Category: "Stock", Amount: decimal.NewFromInt(10), Currency: "EUR"},
				{Name: "B", Category: "stock", Amount: decimal.NewFromInt(20), Currency: "EUR"},
			},
		},
	}

	b := OverallBreakdown(accounts, unitRates())

	// Exact string match: different casings land in different buckets.
	require.Len(t, b.Buckets, 3)
	assert.Equal(t, "Stock", b.Buckets[0].Label)
	assert.Equal(t, "stock", b.Buckets[1].Label)
}

func TestOverallBreakdown_BucketOrderIsFirstEncounter(t *testing.T) {
	accounts := []models.Account{
		{
			Cash:         decimal.NewFromInt(5),
			CashCurrency: "EUR",
			Investments: []models.Investment{
				{Name: "A", Category: "Bond", Amount: decimal.NewFromInt(1), Currency: "EUR"},
				{Name: "B", Category: "Stock", Amount: decimal.NewFromInt(2), Currency: "EUR"},
			},
		},
		{
			Cash:         decimal.NewFromInt(5),
			CashCurrency: "EUR",
			Investments: []models.Investment{
				{Name: "C", Category: "Stock", Amount: decimal.NewFromInt(3), Currency: "EUR"},
				{Name: "D", Category: "Crypto", Amount: decimal.NewFromInt(4), Currency: "EUR"},
			},
		},
	}

	b := OverallBreakdown(accounts, unitRates())

	labels := make([]string, 0, len(b.Buckets))
	for _, bucket := range b.Buckets {
		labels = append(labels, bucket.Label)
	}
	assert.Equal(t, []string{"Bond", "Stock", "Crypto", models.CashBucketLabel}, labels)
}

func TestOverallBreakdown_PercentagesSumToHundred(t *testing.T) {
	accounts := []models.Account{
		{
			Cash:         decimal.NewFromInt(37),
			CashCurrency: "EUR",
			Investments: []models.Investment{
				{Name: "A", Category: "Stock", Amount: decimal.RequireFromString("33.33"), Currency: "EUR"},
				{Name: "B", Category: "Bond", Amount: decimal.RequireFromString("66.67"), Currency: "USD"},
				{Name: "C", Category: "Crypto", Amount: decimal.RequireFromString("0.07"), Currency: "JPY"},
			},
		},
	}

	b := OverallBreakdown(accounts, unitRates())
	require.NotEmpty(t, b.Buckets)

	sum := decimal.Zero
	for _, bucket := range b.Buckets {
		sum = sum.Add(bucket.Percentage)
	}
	tolerance := decimal.RequireFromString("0.01").Mul(decimal.NewFromInt(int64(len(b.Buckets))))
	diff := sum.Sub(decimal.NewFromInt(100)).Abs()
	assert.True(t, diff.LessThanOrEqual(tolerance), "percentages sum to %s", sum)
}

func TestOverallBreakdown_ZeroTotalYieldsZeroPercentages(t *testing.T) {
	accounts := []models.Account{
		{
			Cash:         decimal.Zero,
			CashCurrency: "EUR",
			Investments: []models.Investment{
				{Name: "A", Category: "Stock", Amount: decimal.Zero, Currency: "EUR"},
			},
		},
	}

	b := OverallBreakdown(accounts, unitRates())

	require.True(t, b.Total.IsZero())
	for _, bucket := range b.Buckets {
		assert.True(t, bucket.Percentage.IsZero(), "bucket %s", bucket.Label)
	}
}

func TestOverallBreakdown_MissingRateSkipsAndFlags(t *testing.T) {
	accounts := []models.Account{
		{
			Cash:         decimal.NewFromInt(10),
			CashCurrency: "EUR",
			Investments: []models.Investment{
				{Name: "A", Category: "Stock", Amount: decimal.NewFromInt(100), Currency: "JPY"},
				{Name: "B", Category: "Bond", Amount: decimal.NewFromInt(20), Currency: "EUR"},
			},
		},
	}

	b := OverallBreakdown(accounts, models.RateMap{"EUR": decimal.NewFromInt(1)})

	assert.Equal(t, []string{"JPY"}, b.MissingCurrencies)
	require.Len(t, b.Buckets, 2) // Bond and Cash; the JPY holding is skipped
	assert.Equal(t, "Bond", b.Buckets[0].Label)
	assert.Equal(t, models.CashBucketLabel, b.Buckets[1].Label)
	assert.True(t, decimal.NewFromInt(30).Equal(b.Total), "got %s", b.Total)
}

func TestOverallBreakdown_NoAccounts(t *testing.T) {
	b := OverallBreakdown(nil, unitRates())

	assert.Empty(t, b.Buckets)
	assert.True(t, b.Total.IsZero())
	assert.Empty(t, b.MissingCurrencies)
}
