package availability

import (
	"fmt"

	"availability-system/booking"
)

// BusyInterval is a booked range reported in local minutes of day.
type BusyInterval struct {
	StartTime int `json:"startTime"`
	EndTime   int `json:"endTime"`
}

// ToLocalBusyIntervals converts bookings to local minute-of-day pairs,
// preserving input order. Dates are dropped; a booking that ends on a later
// local day than it starts, including exactly at midnight, ends at 1440.
func ToLocalBusyIntervals(bookings []booking.Booking, timeZone string) ([]BusyInterval, error) {
	loc, err := LoadZone(timeZone)
	if err != nil {
		return nil, err
	}

	busy := make([]BusyInterval, 0, len(bookings))
	for _, b := range bookings {
		start, err := toLocal(b.StartTime, loc)
		if err != nil {
			return nil, fmt.Errorf("booking %s start: %w", b.ID, err)
		}
		end, err := toLocal(b.EndTime, loc)
		if err != nil {
			return nil, fmt.Errorf("booking %s end: %w", b.ID, err)
		}
		endMinute := end.Minute
		if !start.sameDate(end) {
			endMinute = minutesPerDay
		}
		busy = append(busy, BusyInterval{StartTime: start.Minute, EndTime: endMinute})
	}
	return busy, nil
}
