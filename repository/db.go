package repository

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/splitmate-app/splitmate-backend/config"
	"github.com/splitmate-app/splitmate-backend/logger"
)

var db *sql.DB

// InitDB initializes the database connection and ensures the schema exists
func InitDB(cfg *config.DatabaseConfig) error {
	var err error
	db, err = sql.Open("postgres", cfg.ConnectionString())
	if err != nil {
		return fmt.Errorf("failed to open database: %v", err)
	}

	if err = db.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %v", err)
	}

	if err = initSchema(); err != nil {
		return fmt.Errorf("failed to initialize schema: %v", err)
	}

	logger.GetLogger().Infow("Connected to database", "host", cfg.Host, "name", cfg.Name)
	return nil
}

// CloseDB closes the database connection
func CloseDB() {
	if db != nil {
		db.Close()
	}
}

// GetDB returns the database instance
func GetDB() *sql.DB {
	return db
}

func initSchema() error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS groups (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			thumbnail TEXT NOT NULL DEFAULT '',
			admin_email TEXT NOT NULL,
			is_settled BOOLEAN NOT NULL DEFAULT FALSE,
			settled_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS group_members (
			group_id TEXT NOT NULL REFERENCES groups(id) ON DELETE CASCADE,
			email TEXT NOT NULL,
			PRIMARY KEY (group_id, email)
		)`,
		`CREATE TABLE IF NOT EXISTS expenses (
			id TEXT PRIMARY KEY,
			group_id TEXT NOT NULL REFERENCES groups(id) ON DELETE CASCADE,
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			amount DOUBLE PRECISION NOT NULL,
			currency TEXT NOT NULL,
			category TEXT NOT NULL,
			paid_by_email TEXT NOT NULL,
			paid_by_name TEXT NOT NULL DEFAULT '',
			split_type TEXT NOT NULL,
			date TIMESTAMPTZ NOT NULL,
			created_by TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_expenses_group_date ON expenses (group_id, date DESC)`,
		`CREATE TABLE IF NOT EXISTS expense_splits (
			id SERIAL PRIMARY KEY,
			expense_id TEXT NOT NULL REFERENCES expenses(id) ON DELETE CASCADE,
			email TEXT NOT NULL,
			name TEXT NOT NULL DEFAULT '',
			amount DOUBLE PRECISION NOT NULL,
			percentage DOUBLE PRECISION NOT NULL DEFAULT 0,
			is_paid BOOLEAN NOT NULL DEFAULT FALSE
		)`,
		`CREATE INDEX IF NOT EXISTS idx_expense_splits_email ON expense_splits (email)`,
		`CREATE TABLE IF NOT EXISTS expense_attachments (
			id SERIAL PRIMARY KEY,
			expense_id TEXT NOT NULL REFERENCES expenses(id) ON DELETE CASCADE,
			url TEXT NOT NULL,
			filename TEXT NOT NULL DEFAULT ''
		)`,
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
