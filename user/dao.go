package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

const selectColumns = `id, name, email, time_zone, start_time, end_time, minimum_booking_notice`

func (a *Accessor) CreateUser(ctx context.Context, user User) (*User, error) {
	user.ApplyDefaults()
	if err := user.Validate(); err != nil {
		return nil, fmt.Errorf("validate: %w", err)
	}

	user.ID = uuid.New()

	query := `INSERT INTO users (id, name, email, time_zone, start_time, end_time, minimum_booking_notice) VALUES ($1, $2, $3, $4, $5, $6, $7)`
	if _, err := a.db.ExecContext(ctx, query, user.ID, user.Name, user.Email, user.TimeZone, user.StartTime, user.EndTime, user.MinimumBookingNotice); err != nil {
		return nil, fmt.Errorf("exec context: %w", err)
	}

	return &user, nil
}

func (a *Accessor) GetUsers(ctx context.Context) ([]User, error) {
	users := []User{}

	query := `SELECT ` + selectColumns + ` FROM users ORDER BY name`
	rows, err := a.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query context: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var user User
		if err := scanUser(rows, &user); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	return users, nil
}

// GetUser returns nil without an error when no user has the given ID.
func (a *Accessor) GetUser(ctx context.Context, id uuid.UUID) (*User, error) {
	var user User

	query := `SELECT ` + selectColumns + ` FROM users WHERE id = $1`
	row := a.db.QueryRowContext(ctx, query, id)
	if err := scanUser(row, &user); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan: %w", err)
	}

	return &user, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(s scanner, u *User) error {
	return s.Scan(&u.ID, &u.Name, &u.Email, &u.TimeZone, &u.StartTime, &u.EndTime, &u.MinimumBookingNotice)
}
