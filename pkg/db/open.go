package db

import (
	"database/sql"

	"github.com/jmoiron/sqlx"

	_ "github.com/jackc/pgx/v4/stdlib" // postgres driver
)

// Open opens a connection to the tracking database.
func Open(dataSourceName string) (*sql.DB, error) {
	return sql.Open("pgx", dataSourceName)
}

// Openx opens a connection to the tracking database wrapped in sqlx.
func Openx(dataSourceName string) (*sqlx.DB, error) {
	db, err := Open(dataSourceName)
	if err != nil {
		return nil, err
	}
	return NewDBx(db), nil
}

// NewDBx wraps an open connection in sqlx.
func NewDBx(db *sql.DB) *sqlx.DB {
	return sqlx.NewDb(db, "pgx")
}
