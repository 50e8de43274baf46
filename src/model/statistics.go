package model

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/username/hogiahlang/src/models"
)

// SaveStatistics persists one overall-view snapshot under a shared snapshot
// ID. All rows of a snapshot commit together.
func SaveStatistics(db *sql.DB, snapshotID string, userID int64, recordedAt time.Time, rows []models.InvestmentStatistic) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning statistics transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(
		"INSERT INTO investment_statistics (snapshot_id, user_id, category, amount, currency, percentage, recorded_at) VALUES (?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("preparing statistics insert: %w", err)
	}
	defer stmt.Close()

	for _, row := range rows {
		_, err := stmt.Exec(snapshotID, userID, row.Category, row.Amount.String(), row.Currency,
			row.Percentage.String(), recordedAt.UTC())
		if err != nil {
			return fmt.Errorf("inserting statistics row for %q: %w", row.Category, err)
		}
	}
	return tx.Commit()
}

// LatestStatistics returns the rows of the user's most recent snapshot, or an
// empty slice when none has been saved yet.
func LatestStatistics(db *sql.DB, userID int64) ([]models.InvestmentStatistic, error) {
	var snapshotID string
	err := db.QueryRow(
		"SELECT snapshot_id FROM investment_statistics WHERE user_id = ? ORDER BY recorded_at DESC, id DESC LIMIT 1",
		userID).Scan(&snapshotID)
	if err == sql.ErrNoRows {
		return []models.InvestmentStatistic{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying latest snapshot for user %d: %w", userID, err)
	}

	rows, err := db.Query(
		"SELECT category, amount, currency, percentage FROM investment_statistics WHERE user_id = ? AND snapshot_id = ? ORDER BY id ASC",
		userID, snapshotID)
	if err != nil {
		return nil, fmt.Errorf("querying statistics rows: %w", err)
	}
	defer rows.Close()

	var stats []models.InvestmentStatistic
	for rows.Next() {
		var row models.InvestmentStatistic
		var amountStr, percentageStr string
		if err := rows.Scan(&row.Category, &amountStr, &row.Currency, &percentageStr); err != nil {
			return nil, fmt.Errorf("scanning statistics row: %w", err)
		}
		if row.Amount, err = decimal.NewFromString(amountStr); err != nil {
			return nil, fmt.Errorf("parsing statistics amount %q: %w", amountStr, err)
		}
		if row.Percentage, err = decimal.NewFromString(percentageStr); err != nil {
			return nil, fmt.Errorf("parsing statistics percentage %q: %w", percentageStr, err)
		}
		stats = append(stats, row)
	}
	return stats, rows.Err()
}
