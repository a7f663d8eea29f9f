package database

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"           // postgres driver
	_ "github.com/mattn/go-sqlite3" // sqlite driver

	"github.com/eslsoft/lexrev/internal/infrastructure/config"
)

// NewConnection opens the configured database and ensures the schema
// exists. The returned cleanup closes the connection.
func NewConnection(cfg *config.Config) (*sqlx.DB, func(), error) {
	driver, err := cfg.DatabaseDriver()
	if err != nil {
		return nil, nil, err
	}
	dsn, err := cfg.DatabaseDSN()
	if err != nil {
		return nil, nil, err
	}

	if driver == "sqlite3" {
		if dir := filepath.Dir(dsn); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, nil, fmt.Errorf("create data directory: %w", err)
			}
		}
	}

	db, err := sqlx.Connect(driver, dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("connect database: %w", err)
	}

	if driver == "sqlite3" {
		if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("enable foreign keys: %w", err)
		}
		// SQLite does not support multiple writers.
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	}

	if err := Migrate(db); err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return db, func() { _ = db.Close() }, nil
}

// Migrate creates the schema when it does not exist yet.
func Migrate(db *sqlx.DB) error {
	idColumn := "INTEGER PRIMARY KEY AUTOINCREMENT"
	if db.DriverName() == "postgres" {
		idColumn = "BIGSERIAL PRIMARY KEY"
	}

	statements := []string{
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS word_lists (
				id %s,
				name TEXT NOT NULL UNIQUE,
				created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
			)`, idColumn),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS vocabulary_items (
				id %s,
				list_id INTEGER NOT NULL REFERENCES word_lists(id),
				text TEXT NOT NULL,
				translation TEXT NOT NULL,
				source_lang TEXT NOT NULL DEFAULT 'en',
				target_lang TEXT NOT NULL DEFAULT '',
				created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
				UNIQUE(list_id, text)
			)`, idColumn),
		`
			CREATE TABLE IF NOT EXISTS srs_records (
				item_id INTEGER PRIMARY KEY REFERENCES vocabulary_items(id) ON DELETE CASCADE,
				ease REAL NOT NULL DEFAULT 2.5,
				interval_days INTEGER NOT NULL DEFAULT 0,
				repetitions INTEGER NOT NULL DEFAULT 0,
				last_review_at TIMESTAMP,
				next_review_at TIMESTAMP
			)`,
		`
			CREATE TABLE IF NOT EXISTS quiz_sessions (
				id TEXT PRIMARY KEY,
				list_id INTEGER NOT NULL,
				mode TEXT NOT NULL,
				started_at TIMESTAMP NOT NULL,
				duration_ms BIGINT NOT NULL DEFAULT 0,
				first_attempt_correct INTEGER NOT NULL DEFAULT 0,
				total_items INTEGER NOT NULL DEFAULT 0
			)`,
		`
			CREATE TABLE IF NOT EXISTS quiz_answers (
				session_id TEXT NOT NULL REFERENCES quiz_sessions(id) ON DELETE CASCADE,
				item_id INTEGER NOT NULL,
				grade INTEGER NOT NULL,
				attempt INTEGER NOT NULL
			)`,
		`CREATE INDEX IF NOT EXISTS idx_srs_records_next_review ON srs_records(next_review_at)`,
		`CREATE INDEX IF NOT EXISTS idx_quiz_sessions_started ON quiz_sessions(started_at)`,
		`CREATE INDEX IF NOT EXISTS idx_quiz_answers_session ON quiz_answers(session_id)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migrate schema: %w", err)
		}
	}
	return nil
}
