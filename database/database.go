package database

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

func Connect(dsn string, maxIdleConns int) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if maxIdleConns <= 0 {
		maxIdleConns = 5
	}
	db.SetMaxIdleConns(maxIdleConns)

	return db, nil
}
