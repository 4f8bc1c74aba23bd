package schedule

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Weekdays lists the free-busy keys in Sunday-first order; the index of a
// name is its weekday number.
var Weekdays = [7]string{"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday"}

// ErrMalformedTime is returned for clock strings that are not "HH:MM".
var ErrMalformedTime = errors.New("malformed time of day")

// TimeRange is one working range of a weekday in local "HH:MM" notation.
type TimeRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Minutes parses both ends into minutes since local midnight.
func (r TimeRange) Minutes() (start, end int, err error) {
	if start, err = ParseClock(r.Start); err != nil {
		return 0, 0, err
	}
	if end, err = ParseClock(r.End); err != nil {
		return 0, 0, err
	}
	if start >= end {
		return 0, 0, fmt.Errorf("%w: %q is not before %q", ErrMalformedTime, r.Start, r.End)
	}
	return start, end, nil
}

// ParseClock converts "HH:MM" into minutes since midnight. "24:00" is
// accepted and maps to the end of the day.
func ParseClock(s string) (int, error) {
	hh, mm, ok := strings.Cut(s, ":")
	if !ok || !isDigits(hh) || !isDigits(mm) {
		return 0, fmt.Errorf("%w: %q", ErrMalformedTime, s)
	}
	hour, err := strconv.Atoi(hh)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedTime, s)
	}
	minute, err := strconv.Atoi(mm)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedTime, s)
	}
	if hour < 0 || hour > 24 || minute < 0 || minute > 59 || (hour == 24 && minute != 0) {
		return 0, fmt.Errorf("%w: %q out of range", ErrMalformedTime, s)
	}
	return hour*60 + minute, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// FreeBusyTimes maps a weekday name to the working ranges of that day.
type FreeBusyTimes map[string][]TimeRange

// Value implements driver.Valuer for INSERT/UPDATE.
func (f FreeBusyTimes) Value() (driver.Value, error) {
	if f == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(f)
}

// Scan implements sql.Scanner for SELECT.
func (f *FreeBusyTimes) Scan(value any) error {
	if value == nil {
		*f = nil
		return nil
	}
	var b []byte
	switch v := value.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("not a []byte: %T", value)
	}
	return json.Unmarshal(b, f)
}

// Normalize lowercases weekday keys so "Monday" and "monday" are the same day.
// Spellings of one day are merged in byte order of the original keys.
func (f FreeBusyTimes) Normalize() FreeBusyTimes {
	out := make(FreeBusyTimes, len(f))
	for _, day := range slices.Sorted(maps.Keys(f)) {
		key := strings.ToLower(strings.TrimSpace(day))
		out[key] = append(out[key], f[day]...)
	}
	return out
}

func (f FreeBusyTimes) Validate() error {
	for day, ranges := range f {
		if weekdayIndex(day) < 0 {
			return fmt.Errorf("unknown weekday %q", day)
		}
		for _, r := range ranges {
			if _, _, err := r.Minutes(); err != nil {
				return fmt.Errorf("%s: %w", day, err)
			}
		}
	}
	return nil
}

func weekdayIndex(name string) int {
	for i, d := range Weekdays {
		if d == name {
			return i
		}
	}
	return -1
}

type Schedule struct {
	ID            uuid.UUID     `json:"id"`
	UserID        uuid.UUID     `json:"userId"`
	FreeBusyTimes FreeBusyTimes `json:"freeBusyTimes"`
	CreatedAt     time.Time     `json:"createdAt"`
}

func (s *Schedule) Validate() error {
	if s.UserID == uuid.Nil {
		return errors.New("user ID is required")
	}
	if err := s.FreeBusyTimes.Validate(); err != nil {
		return fmt.Errorf("free busy times: %w", err)
	}
	return nil
}
