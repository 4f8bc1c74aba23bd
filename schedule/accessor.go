package schedule

import "database/sql"

// Accessor is the DB layer entrypoint for schedule-related queries.
type Accessor struct {
	db *sql.DB
}

func NewAccessor(db *sql.DB) *Accessor {
	return &Accessor{db: db}
}
