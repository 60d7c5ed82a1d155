package database

import (
	"database/sql"
	"fmt"
	"log"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

// busyTimeoutMillis lets concurrent callbacks wait for the audit table lock
const busyTimeoutMillis = 5000

var db *sql.DB

// dataSourceName adds the connection settings the audit store relies on, keeping any
// parameters the caller already set
func dataSourceName(path string) string {
	params := []string{
		fmt.Sprintf("_busy_timeout=%d", busyTimeoutMillis),
		"_foreign_keys=on",
	}
	if !strings.Contains(path, ":memory:") && !strings.Contains(path, "mode=memory") {
		params = append(params, "_journal_mode=WAL")
	}

	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + strings.Join(params, "&")
}

// OpenDB opens the sqlite file at path and checks the connection
func OpenDB(path string) error {
	conn, err := sql.Open("sqlite3", dataSourceName(path))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to ping database %s: %w", path, err)
	}

	db = conn
	return nil
}

// InitializeDatabase opens the audit database and brings its schema up to date
func InitializeDatabase(path string) error {
	if err := OpenDB(path); err != nil {
		return err
	}

	if err := RunMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Printf("Login audit database ready at %s", path)
	return nil
}

// GetDB returns the database connection
func GetDB() *sql.DB {
	return db
}

// CloseDB closes the database connection
func CloseDB() error {
	if db == nil {
		return nil
	}
	err := db.Close()
	db = nil
	return err
}
