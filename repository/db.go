package repository

import (
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/lib/pq"
)

var db *sql.DB

// Querier is the subset of database/sql shared by *sql.DB and *sql.Tx.
// Repository methods that must compose into a caller's transaction accept it.
type Querier interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
	Query(query string, args ...interface{}) (*sql.Rows, error)
	QueryRow(query string, args ...interface{}) *sql.Row
}

// Tx is a transaction handle usable as a Querier. Satisfied by *sql.Tx.
type Tx interface {
	Querier
	Commit() error
	Rollback() error
}

// InitDB opens the database connection and ensures the schema exists.
func InitDB(connStr string) error {
	var err error
	db, err = sql.Open("postgres", connStr)
	if err != nil {
		return fmt.Errorf("failed to open database: %v", err)
	}

	if err = db.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %v", err)
	}

	if err = runMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %v", err)
	}

	slog.Info("connected to database")
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
