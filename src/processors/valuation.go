package processors

import (
	"github.com/shopspring/decimal"

	"github.com/username/hogiahlang/src/models"
)

// Valuate converts an amount from its native currency into the reporting
// currency behind rates. The result keeps full precision; rounding is
// deferred to display time so sums do not compound rounding error.
// Returns a *MissingRateError when the native currency has no usable rate.
func Valuate(amount decimal.Decimal, nativeCurrency string, rates models.RateMap) (decimal.Decimal, error) {
	rate, err := rates.RateFor(nativeCurrency)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return amount.Div(rate), nil
}

// DisplayValue rounds a reporting-currency value to two decimal places,
// half-up, for presentation.
func DisplayValue(v decimal.Decimal) decimal.Decimal {
	return v.Round(2)
}
