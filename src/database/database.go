package database

import (
	"database/sql"
	stdlog "log"

	"github.com/username/hogiahlang/src/logger"
	_ "modernc.org/sqlite"
)

var DB *sql.DB

// InitDB opens the sqlite database and ensures the schema exists. Amounts are
// stored as TEXT so decimal values round-trip exactly.
func InitDB(databasePath string) {
	db, err := sql.Open("sqlite", databasePath)
	if err != nil {
		stdlog.Fatalf("failed to open database at %s: %v", databasePath, err)
	}

	DB = db

	if logger.L != nil {
		logger.L.Info("Checking database migrations", "databasePath", databasePath)
	}
	migrateInvestmentsTable()

	createTableStatement := `
	CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_name TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS accounts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL,
		account_name TEXT NOT NULL,
		holder_name TEXT NOT NULL,
		FOREIGN KEY(user_id) REFERENCES users(id)
	);

	CREATE TABLE IF NOT EXISTS cash (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		account_id INTEGER NOT NULL UNIQUE,
		amount TEXT NOT NULL,
		currency TEXT NOT NULL,
		FOREIGN KEY(account_id) REFERENCES accounts(id)
	);

	CREATE TABLE IF NOT EXISTS investments (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		account_id INTEGER NOT NULL,
		investment_name TEXT NOT NULL,
		category TEXT,
		amount TEXT NOT NULL,
		currency TEXT NOT NULL,
		FOREIGN KEY(account_id) REFERENCES accounts(id)
	);

	CREATE TABLE IF NOT EXISTS categories (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL,
		category TEXT NOT NULL,
		UNIQUE(user_id, category)
	);

	CREATE TABLE IF NOT EXISTS investment_statistics (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		snapshot_id TEXT NOT NULL,
		user_id INTEGER NOT NULL,
		category TEXT NOT NULL,
		amount TEXT NOT NULL,
		currency TEXT NOT NULL,
		percentage TEXT NOT NULL,
		recorded_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	`

	_, err = DB.Exec(createTableStatement)
	if err != nil {
		if logger.L != nil {
			logger.L.Error("failed to create tables", "error", err)
		}
		stdlog.Fatalf("failed to create tables: %v", err)
	}
	if logger.L != nil {
		logger.L.Info("Database tables ensured/created.")
	}
}

// migrateInvestmentsTable adds the category column to databases created
// before categories existed.
func migrateInvestmentsTable() {
	var tableName string
	err := DB.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='investments'").Scan(&tableName)
	if err != nil {
		if err == sql.ErrNoRows {
			return // table will be created with the current schema
		}
		if logger.L != nil {
			logger.L.Error("Error checking for 'investments' table", "error", err)
		}
		return
	}

	rows, err := DB.Query("PRAGMA table_info(investments)")
	if err != nil {
		if logger.L != nil {
			logger.L.Error("Error querying table schema for 'investments'", "error", err)
		}
		return
	}
	defer rows.Close()

	columnExists := make(map[string]bool)
	for rows.Next() {
		var cid, pk int
		var name, dataType string
		var notnullVal int
		var dfltValue interface{}
		if err := rows.Scan(&cid, &name, &dataType, &notnullVal, &dfltValue, &pk); err != nil {
			if logger.L != nil {
				logger.L.Error("Error scanning column info for 'investments'", "error", err)
			}
			return
		}
		columnExists[name] = true
	}
	if err = rows.Err(); err != nil {
		if logger.L != nil {
			logger.L.Error("Error iterating over column info for 'investments'", "error", err)
		}
		return
	}

	if _, ok := columnExists["category"]; !ok {
		_, err := DB.Exec("ALTER TABLE investments ADD COLUMN category TEXT")
		if err != nil {
			logger.L.Error("Error adding 'category' column to 'investments' table", "error", err)
		} else {
			logger.L.Info("Added 'category' column to 'investments' table")
		}
	}
}
