package views

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/username/hogiahlang/src/models"
)

func TestAssembleBreakdown_ColorsCycleThroughPalette(t *testing.T) {
	buckets := make([]models.Bucket, 8)
	for i := range buckets {
		buckets[i] = models.Bucket{Label: "Bucket", Value: decimal.NewFromInt(1)}
	}

	view := AssembleBreakdown(models.Breakdown{Buckets: buckets, Total: decimal.NewFromInt(8)}, "EUR")

	require.Len(t, view.Entries, 8)
	assert.Equal(t, 0, view.Entries[0].ColorIndex)
	assert.Equal(t, 5, view.Entries[5].ColorIndex)
	assert.Equal(t, 0, view.Entries[6].ColorIndex) // wraps after six colors
	assert.Equal(t, 1, view.Entries[7].ColorIndex)
	assert.Equal(t, view.Entries[0].Color, view.Entries[6].Color)
}

func TestAssembleBreakdown_RoundsAndFormats(t *testing.T) {
	b := models.Breakdown{
		Buckets: []models.Bucket{
			{Label: "Stock", Value: decimal.RequireFromString("1234.567"), Percentage: decimal.RequireFromString("66.666")},
			{Label: "Cash", Value: decimal.RequireFromString("617.285"), Percentage: decimal.RequireFromString("33.333")},
		},
		Total: decimal.RequireFromString("1851.852"),
	}

	view := AssembleBreakdown(b, "EUR")

	require.Len(t, view.Entries, 2)
	assert.Equal(t, "1234.57", view.Entries[0].Value.String())
	assert.Equal(t, "66.67", view.Entries[0].Percentage.String())
	assert.Equal(t, "€1234.57", view.Entries[0].Formatted)
	assert.Equal(t, "€617.29", view.Entries[1].Formatted)
	assert.Equal(t, "€1851.85", view.TotalFormatted)
	assert.Equal(t, "EUR", view.ReportingCurrency)
}

func TestAssembleBreakdown_SymbolPerCurrency(t *testing.T) {
	b := models.Breakdown{
		Buckets: []models.Bucket{{Label: "Stock", Value: decimal.NewFromInt(100)}},
		Total:   decimal.NewFromInt(100),
	}

	assert.Equal(t, "$100.00", AssembleBreakdown(b, "USD").Entries[0].Formatted)
	assert.Equal(t, "NT$100.00", AssembleBreakdown(b, "TWD").Entries[0].Formatted)
	assert.Equal(t, "¥100.00", AssembleBreakdown(b, "JPY").Entries[0].Formatted)
}

func TestAssembleBreakdown_CarriesMissingCurrencies(t *testing.T) {
	b := models.Breakdown{
		Buckets:           []models.Bucket{{Label: "Stock", Value: decimal.NewFromInt(1)}},
		Total:             decimal.NewFromInt(1),
		MissingCurrencies: []string{"JPY", "TWD"},
	}

	view := AssembleBreakdown(b, "EUR")

	assert.Equal(t, []string{"JPY", "TWD"}, view.MissingCurrencies)
}

func TestAssembleBreakdown_Empty(t *testing.T) {
	view := AssembleBreakdown(models.Breakdown{Total: decimal.Zero}, "EUR")

	assert.Empty(t, view.Entries)
	assert.Equal(t, "€0.00", view.TotalFormatted)
}
