package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const selectColumns = `id, user_id, title, start_time, end_time, status, created_at`

func (a *Accessor) CreateBooking(ctx context.Context, booking Booking, now time.Time) (*Booking, error) {
	if booking.Status == "" {
		booking.Status = StatusAccepted
	}
	if err := booking.Validate(); err != nil {
		return nil, fmt.Errorf("validate: %w", err)
	}

	booking.ID = uuid.New()
	booking.CreatedAt = now

	query := `INSERT INTO bookings (id, user_id, title, start_time, end_time, status, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7)`
	if _, err := a.db.ExecContext(ctx, query, booking.ID, booking.UserID, booking.Title, booking.StartTime, booking.EndTime, string(booking.Status), booking.CreatedAt); err != nil {
		return nil, fmt.Errorf("exec context: %w", err)
	}

	return &booking, nil
}

// GetBooking returns nil without an error when no booking has the given ID.
func (a *Accessor) GetBooking(ctx context.Context, id uuid.UUID) (*Booking, error) {
	var booking Booking

	query := `SELECT ` + selectColumns + ` FROM bookings WHERE id = $1`
	row := a.db.QueryRowContext(ctx, query, id)
	if err := scanBooking(row, &booking); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan: %w", err)
	}

	return &booking, nil
}

func (a *Accessor) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) (*Booking, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("validate: invalid status %q", status)
	}

	query := `UPDATE bookings SET status = $1 WHERE id = $2`
	if _, err := a.db.ExecContext(ctx, query, string(status), id); err != nil {
		return nil, fmt.Errorf("exec context: %w", err)
	}

	updated, err := a.GetBooking(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get booking: %w", err)
	}
	if updated == nil {
		return nil, fmt.Errorf("booking not found after update")
	}
	return updated, nil
}

// GetBookingsInRange returns the user's accepted bookings overlapping
// [from, to), ordered by start time.
func (a *Accessor) GetBookingsInRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]Booking, error) {
	bookings := []Booking{}

	query := `SELECT ` + selectColumns + ` FROM bookings WHERE user_id = $1 AND status = $2 AND start_time < $3 AND end_time > $4 ORDER BY start_time`
	rows, err := a.db.QueryContext(ctx, query, userID, string(StatusAccepted), to, from)
	if err != nil {
		return nil, fmt.Errorf("query context: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var b Booking
		if err := scanBooking(rows, &b); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	return bookings, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanBooking(s scanner, b *Booking) error {
	var status string
	if err := s.Scan(&b.ID, &b.UserID, &b.Title, &b.StartTime, &b.EndTime, &status, &b.CreatedAt); err != nil {
		return err
	}
	b.Status = Status(status)
	return nil
}
