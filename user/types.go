package user

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// MinutesPerDay bounds every minute-of-day value stored on a user.
const MinutesPerDay = 24 * 60

type User struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	// TimeZone is an IANA zone identifier such as "Europe/Berlin".
	TimeZone string `json:"timeZone"`
	// StartTime and EndTime are the default working hours, in local
	// minutes since midnight, used when the user has no schedule entries.
	StartTime int `json:"startTime"`
	EndTime   int `json:"endTime"`
	// MinimumBookingNotice is the lead time in minutes required before a
	// slot can be booked.
	MinimumBookingNotice int `json:"minimumBookingNotice"`
}

// ApplyDefaults fills the zero-valued optional fields.
func (u *User) ApplyDefaults() {
	if u.TimeZone == "" {
		u.TimeZone = "UTC"
	}
	if u.StartTime == 0 && u.EndTime == 0 {
		u.EndTime = MinutesPerDay
	}
}

func (u *User) Validate() error {
	if u.Name == "" {
		return errors.New("name is required")
	}
	if u.Email == "" {
		return errors.New("email is required")
	}
	if _, err := time.LoadLocation(u.TimeZone); err != nil {
		return fmt.Errorf("invalid time zone %q", u.TimeZone)
	}
	if u.StartTime < 0 || u.EndTime > MinutesPerDay || u.StartTime >= u.EndTime {
		return fmt.Errorf("default hours must satisfy 0 <= start < end <= %d", MinutesPerDay)
	}
	if u.MinimumBookingNotice < 0 {
		return errors.New("minimum booking notice must not be negative")
	}
	return nil
}

// Notice returns the minimum booking notice as a duration.
func (u *User) Notice() time.Duration {
	return time.Duration(u.MinimumBookingNotice) * time.Minute
}
