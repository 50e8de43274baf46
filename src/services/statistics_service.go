package services

import (
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/username/hogiahlang/src/logger"
	"github.com/username/hogiahlang/src/model"
	"github.com/username/hogiahlang/src/models"
)

var csvHeader = []string{"Category", "Amount", "Currency", "Percentage"}

// statisticsServiceImpl implements the StatisticsService interface.
type statisticsServiceImpl struct {
	db  *sql.DB
	now func() time.Time
}

// NewStatisticsService creates a new instance of the statistics service.
func NewStatisticsService(db *sql.DB) StatisticsService {
	return &statisticsServiceImpl{db: db, now: time.Now}
}

// Save records a snapshot of the given rows under a fresh snapshot id.
// Percentages are recomputed from the row amounts so stored snapshots stay
// internally consistent regardless of what the caller supplied.
func (s *statisticsServiceImpl) Save(userID int64, rows []models.InvestmentStatistic) (string, error) {
	if len(rows) == 0 {
		return "", &models.ValidationError{Field: "statistics", Reason: "must not be empty"}
	}
	total := decimal.Zero
	for _, row := range rows {
		if row.Amount.IsNegative() {
			return "", &models.ValidationError{Field: "amount", Reason: "must not be negative"}
		}
		total = total.Add(row.Amount)
	}

	hundred := decimal.NewFromInt(100)
	for i := range rows {
		if total.IsZero() {
			rows[i].Percentage = decimal.Zero
			continue
		}
		rows[i].Percentage = rows[i].Amount.Mul(hundred).Div(total)
	}

	snapshotID := uuid.NewString()
	if err := model.SaveStatistics(s.db, snapshotID, userID, s.now(), rows); err != nil {
		return "", fmt.Errorf("failed to save statistics snapshot: %w", err)
	}
	logger.L.Info("Saved statistics snapshot", "userID", userID, "snapshotID", snapshotID, "rows", len(rows))
	return snapshotID, nil
}

func (s *statisticsServiceImpl) Latest(userID int64) ([]models.InvestmentStatistic, error) {
	rows, err := model.LatestStatistics(s.db, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load latest statistics: %w", err)
	}
	return rows, nil
}

// ExportCSV writes the latest snapshot for the user as CSV with amounts and
// percentages rendered to two decimal places.
func (s *statisticsServiceImpl) ExportCSV(w io.Writer, userID int64) error {
	rows, err := s.Latest(userID)
	if err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, row := range rows {
		record := []string{
			row.Category,
			row.Amount.StringFixed(2),
			row.Currency,
			row.Percentage.StringFixed(2),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}
