package processors

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/username/hogiahlang/src/models"
)

func testAccount() models.Account {
	return models.Account{
		ID:           1,
		Name:         "Broker",
		Holder:       "Alex",
		Cash:         decimal.NewFromInt(200),
		CashCurrency: "EUR",
		Investments: []models.Investment{
			{ID: 1, AccountID: 1, Name: "S&P 500 ETF", Category: "Stock", Amount: decimal.NewFromInt(100), Currency: "USD"},
			{ID: 2, AccountID: 1, Name: "JP Gov Bond", Category: "Bond", Amount: decimal.NewFromInt(30000), Currency: "JPY"},
		},
	}
}

func TestAccountTotal_SumConsistency(t *testing.T) {
	account := testAccount()
	rates := models.RateMap{
		"EUR": decimal.NewFromInt(1),
		"USD": decimal.RequireFromString("1.25"),
		"JPY": decimal.NewFromInt(150),
	}

	total, missing := AccountTotal(account, rates)

	require.Empty(t, missing)

	// Total must equal the sum of independently valuated terms.
	cash, err := Valuate(account.Cash, account.CashCurrency, rates)
	require.NoError(t, err)
	want := cash
	for _, inv := range account.Investments {
		v, err := Valuate(inv.Amount, inv.Currency, rates)
		require.NoError(t, err)
		want = want.Add(v)
	}
	assert.True(t, want.Equal(total), "want %s, got %s", want, total)

	// 200 + 100/1.25 + 30000/150 = 200 + 80 + 200 = 480
	assert.True(t, decimal.NewFromInt(480).Equal(total), "got %s", total)
}

func TestAccountTotal_MissingRateExcludesTerm(t *testing.T) {
	account := models.Account{
		Cash:         decimal.NewFromInt(50),
		CashCurrency: "USD",
		Investments: []models.Investment{
			{Name: "Nikkei ETF", Amount: decimal.NewFromInt(100), Currency: "JPY"},
		},
	}
	rates := models.RateMap{"USD": decimal.NewFromInt(1)}

	total, missing := AccountTotal(account, rates)

	assert.Equal(t, []string{"JPY"}, missing)
	assert.True(t, decimal.NewFromInt(50).Equal(total), "partial total should exclude the JPY term, got %s", total)
}

func TestAccountTotal_MissingCashCurrency(t *testing.T) {
	account := models.Account{
		Cash:         decimal.NewFromInt(1000),
		CashCurrency: "TWD",
		Investments: []models.Investment{
			{Name: "World ETF", Amount: decimal.NewFromInt(10), Currency: "EUR"},
		},
	}
	rates := models.RateMap{"EUR": decimal.NewFromInt(1)}

	total, missing := AccountTotal(account, rates)

	assert.Equal(t, []string{"TWD"}, missing)
	assert.True(t, decimal.NewFromInt(10).Equal(total))
}

func TestAccountTotal_EmptyInvestments(t *testing.T) {
	account := models.Account{Cash: decimal.NewFromInt(42), CashCurrency: "EUR"}
	rates := models.RateMap{"EUR": decimal.NewFromInt(1)}

	total, missing := AccountTotal(account, rates)

	assert.Empty(t, missing)
	assert.True(t, decimal.NewFromInt(42).Equal(total))
}

func TestAccountTotal_EmptyAccount(t *testing.T) {
	account := models.Account{Cash: decimal.Zero, CashCurrency: "EUR"}
	rates := models.RateMap{"EUR": decimal.NewFromInt(1)}

	total, missing := AccountTotal(account, rates)

	assert.Empty(t, missing)
	assert.True(t, total.IsZero())
}

func TestAccountTotal_DuplicateMissingCurrencyReportedOnce(t *testing.T) {
	account := models.Account{
		Cash:         decimal.NewFromInt(1),
		CashCurrency: "EUR",
		Investments: []models.Investment{
			{Name: "A", Amount: decimal.NewFromInt(1), Currency: "JPY"},
			{Name: "B", Amount: decimal.NewFromInt(2), Currency: "JPY"},
		},
	}
	rates := models.RateMap{"EUR": decimal.NewFromInt(1)}

	_, missing := AccountTotal(account, rates)

	assert.Equal(t, []string{"JPY"}, missing)
}
