package availability

import "time"

// Window is a requested booking range; From must not be after To.
type Window struct {
	From time.Time
	To   time.Time
}

// ResolveSlots returns the intervals that fully contain the window on the
// window's local start day, in input order. Both boundaries are inclusive.
// Each match is reported for that day only.
//
// A window whose local end falls on a later date than its start matches
// nothing, except when it ends exactly at the following local midnight,
// which is read as minute 1440 of the start day.
func ResolveSlots(workingHours []WeeklyInterval, window Window, timeZone string) ([]WeeklyInterval, error) {
	loc, err := LoadZone(timeZone)
	if err != nil {
		return nil, err
	}
	from, err := toLocal(window.From, loc)
	if err != nil {
		return nil, err
	}
	to, err := toLocal(window.To, loc)
	if err != nil {
		return nil, err
	}

	matched := []WeeklyInterval{}

	toMinute := to.Minute
	switch {
	case from.sameDate(to):
	case from.isNextMidnight(to):
		toMinute = minutesPerDay
	default:
		return matched, nil
	}

	for _, wi := range workingHours {
		if !wi.appliesTo(from.Weekday) {
			continue
		}
		if from.Minute < wi.StartTime || from.Minute > wi.EndTime {
			continue
		}
		if toMinute < wi.StartTime || toMinute > wi.EndTime {
			continue
		}
		matched = append(matched, WeeklyInterval{
			Days:      []int{from.Weekday},
			StartTime: wi.StartTime,
			EndTime:   wi.EndTime,
		})
	}
	return matched, nil
}
