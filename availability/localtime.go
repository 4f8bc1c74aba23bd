package availability

import (
	"fmt"
	"time"
	_ "time/tzdata"
)

const minutesPerDay = 24 * 60

// LocalTime is an instant expressed on a user's wall clock.
type LocalTime struct {
	Weekday int // 0 = Sunday
	Minute  int // minutes since local midnight
	Year    int
	Month   time.Month
	Day     int
}

// LoadZone resolves an IANA zone identifier.
func LoadZone(timeZone string) (*time.Location, error) {
	loc, err := time.LoadLocation(timeZone)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTimeZone, timeZone)
	}
	return loc, nil
}

// ParseInstant parses an ISO-8601 instant with an explicit offset.
func ParseInstant(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimestamp, s)
	}
	return t, nil
}

// ToLocalMinuteOfDay returns the weekday and minute-of-day of instant in
// the given zone. The zone's offset at that instant is used, so daylight
// saving transitions are honoured.
func ToLocalMinuteOfDay(instant time.Time, timeZone string) (weekday, minute int, err error) {
	loc, err := LoadZone(timeZone)
	if err != nil {
		return 0, 0, err
	}
	lt, err := toLocal(instant, loc)
	if err != nil {
		return 0, 0, err
	}
	return lt.Weekday, lt.Minute, nil
}

func toLocal(instant time.Time, loc *time.Location) (LocalTime, error) {
	if instant.IsZero() {
		return LocalTime{}, fmt.Errorf("%w: zero instant", ErrInvalidTimestamp)
	}
	t := instant.In(loc)
	y, m, d := t.Date()
	return LocalTime{
		Weekday: int(t.Weekday()),
		Minute:  t.Hour()*60 + t.Minute(),
		Year:    y,
		Month:   m,
		Day:     d,
	}, nil
}

func (l LocalTime) sameDate(o LocalTime) bool {
	return l.Year == o.Year && l.Month == o.Month && l.Day == o.Day
}

// isNextMidnight reports whether o is exactly the midnight that ends l's day.
func (l LocalTime) isNextMidnight(o LocalTime) bool {
	if o.Minute != 0 {
		return false
	}
	next := time.Date(l.Year, l.Month, l.Day+1, 0, 0, 0, 0, time.UTC)
	y, m, d := next.Date()
	return o.Year == y && o.Month == m && o.Day == d
}
