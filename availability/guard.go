package availability

import (
	"context"
	"fmt"
	"time"

	"availability-system/booking"
	"availability-system/schedule"
	"availability-system/user"

	"github.com/google/uuid"
)

type UserAccessor interface {
	GetUser(ctx context.Context, id uuid.UUID) (*user.User, error)
}

type ScheduleAccessor interface {
	GetSchedulesForUser(ctx context.Context, userID uuid.UUID) ([]schedule.Schedule, error)
}

type BookingAccessor interface {
	GetBookingsInRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]booking.Booking, error)
}

// Rules selects which business checks a resolution applies.
type Rules struct {
	// MaxDuration rejects windows at least this long. Zero disables it.
	MaxDuration          time.Duration
	EnforcePastCheck     bool
	EnforceMinimumNotice bool
	// CheckBookings makes any confirmed booking in the window
	// invalidate availability and reports it as busy.
	CheckBookings bool
}

// StrictRules is the rule set of the slot lookup.
func StrictRules(maxDuration time.Duration) Rules {
	return Rules{
		MaxDuration:          maxDuration,
		EnforcePastCheck:     true,
		EnforceMinimumNotice: true,
		CheckBookings:        true,
	}
}

// LenientRules is the rule set of the availability lookup: only the range
// itself is validated.
func LenientRules() Rules {
	return Rules{}
}

// RecheckRules re-validates a stored booking's window against working hours
// and the other confirmed bookings. The window's age is not considered.
func RecheckRules() Rules {
	return Rules{CheckBookings: true}
}

type Request struct {
	UserID   uuid.UUID
	DateFrom string
	DateTo   string
}

type Result struct {
	TimeZone      string           `json:"timeZone"`
	Busy          []BusyInterval   `json:"busy"`
	SelectedSlots []WeeklyInterval `json:"selectedSlots"`
	Available     bool             `json:"available"`
}

// Guard resolves availability for a user against their working hours and
// confirmed bookings.
type Guard struct {
	users     UserAccessor
	schedules ScheduleAccessor
	bookings  BookingAccessor
	now       func() time.Time
}

func NewGuard(users UserAccessor, schedules ScheduleAccessor, bookings BookingAccessor, now func() time.Time) *Guard {
	if now == nil {
		now = time.Now
	}
	return &Guard{
		users:     users,
		schedules: schedules,
		bookings:  bookings,
		now:       now,
	}
}

// Resolve checks the request against rules in a fixed order and stops at
// the first failure.
func (g *Guard) Resolve(ctx context.Context, req Request, rules Rules) (*Result, error) {
	window, err := parseWindow(req.DateFrom, req.DateTo)
	if err != nil {
		return nil, err
	}

	if rules.MaxDuration > 0 && window.To.Sub(window.From) >= rules.MaxDuration {
		return nil, fmt.Errorf("%w: span %s exceeds %s", ErrSlotTooLong, window.To.Sub(window.From), rules.MaxDuration)
	}

	now := g.now()
	if rules.EnforcePastCheck && window.From.Before(now) {
		return nil, fmt.Errorf("%w: %s", ErrPastBooking, window.From.Format(time.RFC3339))
	}

	u, err := g.users.GetUser(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if u == nil {
		return nil, fmt.Errorf("%w: %s", ErrUserNotFound, req.UserID)
	}

	if rules.EnforceMinimumNotice && u.MinimumBookingNotice > 0 {
		if earliest := now.Add(u.Notice()); window.From.Before(earliest) {
			return nil, fmt.Errorf("%w: %d minutes required", ErrInsufficientNotice, u.MinimumBookingNotice)
		}
	}

	schedules, err := g.schedules.GetSchedulesForUser(ctx, u.ID)
	if err != nil {
		return nil, fmt.Errorf("get schedules: %w", err)
	}
	sources := make([]schedule.FreeBusyTimes, 0, len(schedules))
	for _, s := range schedules {
		sources = append(sources, s.FreeBusyTimes)
	}

	workingHours, err := BuildWorkingHours(sources, u.StartTime, u.EndTime)
	if err != nil {
		return nil, err
	}

	slots, err := ResolveSlots(workingHours, window, u.TimeZone)
	if err != nil {
		return nil, err
	}

	result := &Result{
		TimeZone:      u.TimeZone,
		Busy:          []BusyInterval{},
		SelectedSlots: slots,
		Available:     len(slots) > 0,
	}
	if !rules.CheckBookings {
		return result, nil
	}

	bookings, err := g.bookings.GetBookingsInRange(ctx, u.ID, window.From, window.To)
	if err != nil {
		return nil, fmt.Errorf("get bookings: %w", err)
	}
	result.Busy, err = ToLocalBusyIntervals(bookings, u.TimeZone)
	if err != nil {
		return nil, err
	}
	result.Available = result.Available && len(bookings) == 0

	return result, nil
}

func parseWindow(dateFrom, dateTo string) (Window, error) {
	from, err := ParseInstant(dateFrom)
	if err != nil {
		return Window{}, fmt.Errorf("%w: dateFrom: %w", ErrInvalidRange, err)
	}
	to, err := ParseInstant(dateTo)
	if err != nil {
		return Window{}, fmt.Errorf("%w: dateTo: %w", ErrInvalidRange, err)
	}
	if to.Before(from) {
		return Window{}, fmt.Errorf("%w: dateTo is before dateFrom", ErrInvalidRange)
	}
	return Window{From: from, To: to}, nil
}
