package model

import (
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/username/hogiahlang/src/models"
)

// AddUser inserts a new user and returns its ID.
func AddUser(db *sql.DB, userName string) (int64, error) {
	res, err := db.Exec("INSERT INTO users (user_name) VALUES (?)", userName)
	if err != nil {
		return 0, fmt.Errorf("inserting user: %w", err)
	}
	return res.LastInsertId()
}

// AddAccount inserts a new account for a user and returns the new account ID.
func AddAccount(db *sql.DB, userID int64, accountName, holderName string) (int64, error) {
	res, err := db.Exec("INSERT INTO accounts (user_id, account_name, holder_name) VALUES (?, ?, ?)",
		userID, accountName, holderName)
	if err != nil {
		return 0, fmt.Errorf("inserting account: %w", err)
	}
	return res.LastInsertId()
}

// DeleteAccount removes an account together with its cash row and
// investments. The three deletes run in one transaction so a failure cannot
// leave orphaned rows.
func DeleteAccount(db *sql.DB, accountID int64) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning delete transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM accounts WHERE id = ?", accountID); err != nil {
		return fmt.Errorf("deleting account %d: %w", accountID, err)
	}
	if _, err := tx.Exec("DELETE FROM cash WHERE account_id = ?", accountID); err != nil {
		return fmt.Errorf("deleting cash for account %d: %w", accountID, err)
	}
	if _, err := tx.Exec("DELETE FROM investments WHERE account_id = ?", accountID); err != nil {
		return fmt.Errorf("deleting investments for account %d: %w", accountID, err)
	}
	return tx.Commit()
}

// UpdateCash upserts the single cash row of an account.
func UpdateCash(db *sql.DB, accountID int64, amount decimal.Decimal, currency string) error {
	query := `INSERT INTO cash (account_id, amount, currency) VALUES (?, ?, ?)
	ON CONFLICT(account_id) DO UPDATE SET amount = excluded.amount, currency = excluded.currency`
	_, err := db.Exec(query, accountID, amount.String(), currency)
	if err != nil {
		return fmt.Errorf("updating cash for account %d: %w", accountID, err)
	}
	return nil
}

// UpsertInvestments applies a batch of investment edits: rows with the
// sentinel ID 0 are inserted and receive their assigned ID, the rest are
// updated in place. The whole batch commits or rolls back together.
func UpsertInvestments(db *sql.DB, investments []*models.Investment) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning upsert transaction: %w", err)
	}
	defer tx.Rollback()

	for _, inv := range investments {
		if inv.ID == 0 {
			res, err := tx.Exec(
				"INSERT INTO investments (account_id, investment_name, category, amount, currency) VALUES (?, ?, ?, ?, ?)",
				inv.AccountID, inv.Name, inv.Category, inv.Amount.String(), inv.Currency)
			if err != nil {
				return fmt.Errorf("inserting investment %q: %w", inv.Name, err)
			}
			id, err := res.LastInsertId()
			if err != nil {
				return fmt.Errorf("reading new investment id: %w", err)
			}
			inv.ID = id
			continue
		}
		_, err := tx.Exec(
			"UPDATE investments SET investment_name = ?, category = ?, amount = ?, currency = ? WHERE id = ?",
			inv.Name, inv.Category, inv.Amount.String(), inv.Currency, inv.ID)
		if err != nil {
			return fmt.Errorf("updating investment %d: %w", inv.ID, err)
		}
	}
	return tx.Commit()
}

// DeleteInvestment removes a single investment row.
func DeleteInvestment(db *sql.DB, investmentID int64) error {
	_, err := db.Exec("DELETE FROM investments WHERE id = ?", investmentID)
	if err != nil {
		return fmt.Errorf("deleting investment %d: %w", investmentID, err)
	}
	return nil
}

// GetAccountDetails returns every account of a user with its cash balance and
// nested investments. Accounts that never had their cash set report a zero
// balance in the default currency, matching how they were created.
func GetAccountDetails(db *sql.DB, userID int64) ([]*models.Account, error) {
	rows, err := db.Query("SELECT id, account_name, holder_name FROM accounts WHERE user_id = ? ORDER BY id ASC", userID)
	if err != nil {
		return nil, fmt.Errorf("querying accounts for user %d: %w", userID, err)
	}
	defer rows.Close()

	var accounts []*models.Account
	for rows.Next() {
		account := &models.Account{}
		if err := rows.Scan(&account.ID, &account.Name, &account.Holder); err != nil {
			return nil, fmt.Errorf("scanning account row: %w", err)
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating account rows: %w", err)
	}

	for _, account := range accounts {
		if err := loadCash(db, account); err != nil {
			return nil, err
		}
		if err := loadInvestments(db, account); err != nil {
			return nil, err
		}
	}
	return accounts, nil
}

func loadCash(db *sql.DB, account *models.Account) error {
	var amountStr, currency string
	err := db.QueryRow("SELECT amount, currency FROM cash WHERE account_id = ?", account.ID).
		Scan(&amountStr, &currency)
	if err == sql.ErrNoRows {
		account.Cash = decimal.Zero
		account.CashCurrency = models.DefaultCurrency
		return nil
	}
	if err != nil {
		return fmt.Errorf("querying cash for account %d: %w", account.ID, err)
	}
	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		return fmt.Errorf("parsing cash amount %q for account %d: %w", amountStr, account.ID, err)
	}
	account.Cash = amount
	account.CashCurrency = currency
	return nil
}

func loadInvestments(db *sql.DB, account *models.Account) error {
	rows, err := db.Query(
		"SELECT id, account_id, investment_name, category, amount, currency FROM investments WHERE account_id = ? ORDER BY id ASC",
		account.ID)
	if err != nil {
		return fmt.Errorf("querying investments for account %d: %w", account.ID, err)
	}
	defer rows.Close()

	account.Investments = []models.Investment{}
	for rows.Next() {
		var inv models.Investment
		var category sql.NullString
		var amountStr string
		if err := rows.Scan(&inv.ID, &inv.AccountID, &inv.Name, &category, &amountStr, &inv.Currency); err != nil {
			return fmt.Errorf("scanning investment row: %w", err)
		}
		inv.Category = category.String
		amount, err := decimal.NewFromString(amountStr)
		if err != nil {
			return fmt.Errorf("parsing investment amount %q: %w", amountStr, err)
		}
		inv.Amount = amount
		account.Investments = append(account.Investments, inv)
	}
	return rows.Err()
}
