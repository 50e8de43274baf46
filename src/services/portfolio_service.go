package services

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/patrickmn/go-cache"
	"github.com/shopspring/decimal"

	"github.com/username/hogiahlang/src/logger"
	"github.com/username/hogiahlang/src/model"
	"github.com/username/hogiahlang/src/models"
	"github.com/username/hogiahlang/src/processors"
)

// portfolioServiceImpl implements the PortfolioService interface.
type portfolioServiceImpl struct {
	db          *sql.DB
	reportCache *cache.Cache
}

// NewPortfolioService creates a new instance of the portfolio service.
func NewPortfolioService(db *sql.DB, reportCache *cache.Cache) PortfolioService {
	return &portfolioServiceImpl{
		db:          db,
		reportCache: reportCache,
	}
}

func accountSnapshotKey(userID int64) string {
	return fmt.Sprintf("accounts_user_%d", userID)
}

// InvalidateUserCache removes the cached account snapshot for a user.
// Every mutation calls this so the next read reflects the new state.
func (s *portfolioServiceImpl) InvalidateUserCache(userID int64) {
	s.reportCache.Delete(accountSnapshotKey(userID))
	logger.L.Debug("Account cache invalidated", "userID", userID)
}

// FetchAccounts returns the user's accounts with cash and investments,
// serving from the cache when a snapshot is present.
func (s *portfolioServiceImpl) FetchAccounts(userID int64) ([]*models.Account, error) {
	if cached, found := s.reportCache.Get(accountSnapshotKey(userID)); found {
		if accounts, ok := cached.([]*models.Account); ok {
			return accounts, nil
		}
	}

	accounts, err := model.GetAccountDetails(s.db, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch accounts for user %d: %w", userID, err)
	}
	s.reportCache.Set(accountSnapshotKey(userID), accounts, cache.DefaultExpiration)
	return accounts, nil
}

func (s *portfolioServiceImpl) AddAccount(userID int64, name, holder string) (int64, error) {
	if strings.TrimSpace(name) == "" {
		return 0, &models.ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if strings.TrimSpace(holder) == "" {
		return 0, &models.ValidationError{Field: "holder", Reason: "must not be empty"}
	}

	accountID, err := model.AddAccount(s.db, userID, name, holder)
	if err != nil {
		return 0, fmt.Errorf("failed to add account: %w", err)
	}
	s.InvalidateUserCache(userID)
	return accountID, nil
}

func (s *portfolioServiceImpl) DeleteAccount(userID, accountID int64) error {
	if _, err := s.ownedAccount(userID, accountID); err != nil {
		return err
	}
	if err := model.DeleteAccount(s.db, accountID); err != nil {
		return fmt.Errorf("failed to delete account %d: %w", accountID, err)
	}
	s.InvalidateUserCache(userID)
	return nil
}

func (s *portfolioServiceImpl) UpdateCash(userID, accountID int64, amount decimal.Decimal, currency string) error {
	if amount.IsNegative() {
		return &models.ValidationError{Field: "amount", Reason: "must not be negative"}
	}
	if !models.IsSupportedCurrency(currency) {
		return &models.ValidationError{Field: "currency", Reason: fmt.Sprintf("unsupported currency %q", currency)}
	}
	if _, err := s.ownedAccount(userID, accountID); err != nil {
		return err
	}

	if err := model.UpdateCash(s.db, accountID, amount, currency); err != nil {
		return fmt.Errorf("failed to update cash for account %d: %w", accountID, err)
	}
	s.InvalidateUserCache(userID)
	return nil
}

// UpdateInvestments upserts the given investments. A zero id inserts a new
// row and assigns the generated id back onto the investment. Categories in
// use are registered so the category list always covers the holdings.
func (s *portfolioServiceImpl) UpdateInvestments(userID int64, investments []*models.Investment) error {
	for _, inv := range investments {
		if inv.Amount.IsNegative() {
			return &models.ValidationError{Field: "amount", Reason: "must not be negative"}
		}
		if !models.IsSupportedCurrency(inv.Currency) {
			return &models.ValidationError{Field: "currency", Reason: fmt.Sprintf("unsupported currency %q", inv.Currency)}
		}
		if _, err := s.ownedAccount(userID, inv.AccountID); err != nil {
			return err
		}
	}

	if err := model.UpsertInvestments(s.db, investments); err != nil {
		return fmt.Errorf("failed to save investments: %w", err)
	}

	for _, inv := range investments {
		if strings.TrimSpace(inv.Category) == "" {
			continue
		}
		if err := model.AddCategory(s.db, userID, inv.Category); err != nil {
			logger.L.Warn("Failed to register category from investment", "category", inv.Category, "error", err)
		}
	}

	s.InvalidateUserCache(userID)
	return nil
}

func (s *portfolioServiceImpl) DeleteInvestment(userID, investmentID int64) error {
	if err := s.checkInvestmentOwner(userID, investmentID); err != nil {
		return err
	}
	if err := model.DeleteInvestment(s.db, investmentID); err != nil {
		return fmt.Errorf("failed to delete investment %d: %w", investmentID, err)
	}
	s.InvalidateUserCache(userID)
	return nil
}

// AccountTotal values a single account's cash and investments in the
// reporting currency the rates map was fetched for.
func (s *portfolioServiceImpl) AccountTotal(userID, accountID int64, rates models.RateMap) (decimal.Decimal, []string, error) {
	account, err := s.ownedAccount(userID, accountID)
	if err != nil {
		return decimal.Decimal{}, nil, err
	}
	total, missing := processors.AccountTotal(*account, rates)
	return total, missing, nil
}

// AccountBreakdown produces the per-holding view of a single account.
// Cash is not part of this view.
func (s *portfolioServiceImpl) AccountBreakdown(userID, accountID int64, rates models.RateMap) (models.Breakdown, error) {
	account, err := s.ownedAccount(userID, accountID)
	if err != nil {
		return models.Breakdown{}, err
	}
	return processors.HoldingBreakdown(*account, rates), nil
}

// OverallBreakdown produces the category view across all of the user's
// accounts, with combined cash as its own bucket.
func (s *portfolioServiceImpl) OverallBreakdown(userID int64, rates models.RateMap) (models.Breakdown, error) {
	accounts, err := s.FetchAccounts(userID)
	if err != nil {
		return models.Breakdown{}, err
	}
	snapshot := make([]models.Account, 0, len(accounts))
	for _, account := range accounts {
		snapshot = append(snapshot, *account)
	}
	return processors.OverallBreakdown(snapshot, rates), nil
}

// checkInvestmentOwner confirms the investment sits in one of the user's own
// accounts before it may be deleted.
func (s *portfolioServiceImpl) checkInvestmentOwner(userID, investmentID int64) error {
	accounts, err := s.FetchAccounts(userID)
	if err != nil {
		return err
	}
	for _, account := range accounts {
		for _, inv := range account.Investments {
			if inv.ID == investmentID {
				return nil
			}
		}
	}
	return ErrAccountNotFound
}

func (s *portfolioServiceImpl) ownedAccount(userID, accountID int64) (*models.Account, error) {
	accounts, err := s.FetchAccounts(userID)
	if err != nil {
		return nil, err
	}
	for _, account := range accounts {
		if account.ID == accountID {
			return account, nil
		}
	}
	return nil, ErrAccountNotFound
}
