package views

import (
	"github.com/shopspring/decimal"

	"github.com/username/hogiahlang/src/models"
	"github.com/username/hogiahlang/src/processors"
)

// chartColors is the fixed chart palette; buckets cycle through it by
// position, so the sixth and seventh slice share a color.
var chartColors = [...]string{"#0088FE", "#00C49F", "#FFBB28", "#FF8042", "#8884D8", "#82CA9D"}

// ChartEntry is one slice of the breakdown chart as the presentation layer
// consumes it. Value and Percentage are rounded to two decimal places.
type ChartEntry struct {
	Label      string          `json:"label"`
	Value      decimal.Decimal `json:"value"`
	Percentage decimal.Decimal `json:"percentage"`
	ColorIndex int             `json:"colorIndex"`
	Color      string          `json:"color"`
	Formatted  string          `json:"formatted"`
}

// BreakdownView is the assembled response for one valuation pass.
type BreakdownView struct {
	Entries           []ChartEntry    `json:"entries"`
	Total             decimal.Decimal `json:"total"`
	TotalFormatted    string          `json:"totalFormatted"`
	ReportingCurrency string          `json:"reportingCurrency"`
	MissingCurrencies []string        `json:"missingCurrencies,omitempty"`
}

// AssembleBreakdown shapes aggregator output for presentation. It is a pure
// mapping: no lookups, no recomputation of the aggregates.
func AssembleBreakdown(b models.Breakdown, reportingCurrency string) BreakdownView {
	entries := make([]ChartEntry, 0, len(b.Buckets))
	for i, bucket := range b.Buckets {
		value := processors.DisplayValue(bucket.Value)
		entries = append(entries, ChartEntry{
			Label:      bucket.Label,
			Value:      value,
			Percentage: processors.DisplayValue(bucket.Percentage),
			ColorIndex: i % len(chartColors),
			Color:      chartColors[i%len(chartColors)],
			Formatted:  models.FormatAmount(reportingCurrency, value),
		})
	}
	total := processors.DisplayValue(b.Total)
	return BreakdownView{
		Entries:           entries,
		Total:             total,
		TotalFormatted:    models.FormatAmount(reportingCurrency, total),
		ReportingCurrency: reportingCurrency,
		MissingCurrencies: b.MissingCurrencies,
	}
}
