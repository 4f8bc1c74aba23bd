package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// GetSchedulesForUser returns the user's schedules, oldest first.
func (a *Accessor) GetSchedulesForUser(ctx context.Context, userID uuid.UUID) ([]Schedule, error) {
	schedules := []Schedule{}

	query := `SELECT id, user_id, free_busy_times, created_at FROM schedules WHERE user_id = $1 ORDER BY created_at`
	rows, err := a.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("query context: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var s Schedule
		if err := rows.Scan(&s.ID, &s.UserID, &s.FreeBusyTimes, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		schedules = append(schedules, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	return schedules, nil
}

// UpsertSchedule creates the user's schedule or, when one exists, replaces
// the free-busy times of the oldest one. The boolean reports a create.
func (a *Accessor) UpsertSchedule(ctx context.Context, userID uuid.UUID, freeBusy FreeBusyTimes, now time.Time) (*Schedule, bool, error) {
	s := Schedule{UserID: userID, FreeBusyTimes: freeBusy.Normalize()}
	if err := s.Validate(); err != nil {
		return nil, false, fmt.Errorf("validate: %w", err)
	}

	existing, err := a.GetSchedulesForUser(ctx, userID)
	if err != nil {
		return nil, false, fmt.Errorf("get schedules: %w", err)
	}

	if len(existing) == 0 {
		s.ID = uuid.New()
		s.CreatedAt = now
		query := `INSERT INTO schedules (id, user_id, free_busy_times, created_at) VALUES ($1, $2, $3, $4)`
		if _, err := a.db.ExecContext(ctx, query, s.ID, s.UserID, s.FreeBusyTimes, s.CreatedAt); err != nil {
			return nil, false, fmt.Errorf("exec context: %w", err)
		}
		return &s, true, nil
	}

	s.ID = existing[0].ID
	s.CreatedAt = existing[0].CreatedAt
	query := `UPDATE schedules SET free_busy_times = $1 WHERE id = $2`
	if _, err := a.db.ExecContext(ctx, query, s.FreeBusyTimes, s.ID); err != nil {
		return nil, false, fmt.Errorf("exec context: %w", err)
	}
	return &s, false, nil
}
