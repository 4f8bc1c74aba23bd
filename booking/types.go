package booking

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusAccepted  Status = "accepted"
	StatusPending   Status = "pending"
	StatusCancelled Status = "cancelled"
	StatusRejected  Status = "rejected"
)

func (s Status) Valid() bool {
	switch s {
	case StatusAccepted, StatusPending, StatusCancelled, StatusRejected:
		return true
	}
	return false
}

type Booking struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	Title     string    `json:"title"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

func (b *Booking) Validate() error {
	if b.Title == "" {
		return errors.New("title is required")
	}
	if b.UserID == uuid.Nil {
		return errors.New("user ID is required")
	}
	if b.StartTime.IsZero() {
		return errors.New("start time is required")
	}
	if b.EndTime.IsZero() {
		return errors.New("end time is required")
	}
	if b.StartTime.After(b.EndTime) {
		return errors.New("start time is after end time")
	}
	if !b.Status.Valid() {
		return fmt.Errorf("invalid status %q", b.Status)
	}
	return nil
}
