package model

import (
	"database/sql"
	"fmt"
)

// GetCategories returns the user's known categories in insertion order.
func GetCategories(db *sql.DB, userID int64) ([]string, error) {
	rows, err := db.Query("SELECT category FROM categories WHERE user_id = ? ORDER BY id ASC", userID)
	if err != nil {
		return nil, fmt.Errorf("querying categories for user %d: %w", userID, err)
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var category string
		if err := rows.Scan(&category); err != nil {
			return nil, fmt.Errorf("scanning category row: %w", err)
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

// AddCategory registers a category name for a user. Adding a name that is
// already registered is a no-op; the registry only ever grows.
func AddCategory(db *sql.DB, userID int64, category string) error {
	_, err := db.Exec(
		"INSERT INTO categories (user_id, category) VALUES (?, ?) ON CONFLICT(user_id, category) DO NOTHING",
		userID, category)
	if err != nil {
		return fmt.Errorf("inserting category %q for user %d: %w", category, userID, err)
	}
	return nil
}
