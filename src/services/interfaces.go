package services

import (
	"errors"
	"io"

	"github.com/shopspring/decimal"

	"github.com/username/hogiahlang/src/models"
)

// ErrAccountNotFound is returned when an account id does not belong to the user.
var ErrAccountNotFound = errors.New("account not found")

// RatesService resolves conversion-rate maps for a reporting currency.
type RatesService interface {
	// GetRates returns the rate map for base, serving from cache when fresh
	// and fetching from the provider otherwise.
	GetRates(base string, targets []string) (models.RateMap, error)
	// Refresh always contacts the provider. A response that loses the race
	// to a newer request for the same base is discarded.
	Refresh(base string, targets []string) (models.RateMap, error)
	// ActiveRates returns the last successfully applied map for base.
	ActiveRates(base string) (models.RateMap, bool)
}

// PortfolioService manages accounts, cash and investments, and produces
// valuation breakdowns from them.
type PortfolioService interface {
	FetchAccounts(userID int64) ([]*models.Account, error)
	AddAccount(userID int64, name, holder string) (int64, error)
	DeleteAccount(userID, accountID int64) error
	UpdateCash(userID, accountID int64, amount decimal.Decimal, currency string) error
	UpdateInvestments(userID int64, investments []*models.Investment) error
	DeleteInvestment(userID, investmentID int64) error
	AccountTotal(userID, accountID int64, rates models.RateMap) (decimal.Decimal, []string, error)
	AccountBreakdown(userID, accountID int64, rates models.RateMap) (models.Breakdown, error)
	OverallBreakdown(userID int64, rates models.RateMap) (models.Breakdown, error)
	InvalidateUserCache(userID int64)
}

// CategoryService maintains the per-user category registry.
type CategoryService interface {
	ListCategories(userID int64) ([]string, error)
	AddCategory(userID int64, name string) error
}

// StatisticsService persists overall-portfolio snapshots and exports them.
type StatisticsService interface {
	// Save records a snapshot of the given statistics rows and returns the
	// snapshot id. Percentages are recomputed from the row amounts.
	Save(userID int64, rows []models.InvestmentStatistic) (string, error)
	Latest(userID int64) ([]models.InvestmentStatistic, error)
	// ExportCSV writes the latest snapshot for the user as CSV.
	ExportCSV(w io.Writer, userID int64) error
}
