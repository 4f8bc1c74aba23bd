package availability

import (
	"cmp"
	"fmt"
	"slices"

	"availability-system/schedule"
)

// WeeklyInterval is a recurring working range in local minutes of day.
type WeeklyInterval struct {
	Days      []int `json:"days"`
	StartTime int   `json:"startTime"`
	EndTime   int   `json:"endTime"`
}

func (w WeeklyInterval) appliesTo(weekday int) bool {
	return slices.Contains(w.Days, weekday)
}

// allDays is the day set of the fallback interval.
var allDays = []int{0, 1, 2, 3, 4, 5, 6}

// BuildWorkingHours turns free-busy maps into weekly intervals sorted by
// start minute. Every entry yields its own single-day interval; entries are
// not merged across days. When no entry exists at all, a single interval
// spanning the whole week with the default hours is returned.
func BuildWorkingHours(sources []schedule.FreeBusyTimes, defaultStart, defaultEnd int) ([]WeeklyInterval, error) {
	normalized := make([]schedule.FreeBusyTimes, len(sources))
	for i, src := range sources {
		normalized[i] = src.Normalize()
	}

	intervals := []WeeklyInterval{}
	for day, name := range schedule.Weekdays {
		for _, src := range normalized {
			for _, r := range src[name] {
				start, end, err := r.Minutes()
				if err != nil {
					return nil, fmt.Errorf("%w: %s: %w", ErrScheduleParse, name, err)
				}
				intervals = append(intervals, WeeklyInterval{
					Days:      []int{day},
					StartTime: start,
					EndTime:   end,
				})
			}
		}
	}

	if len(intervals) == 0 {
		intervals = append(intervals, WeeklyInterval{
			Days:      slices.Clone(allDays),
			StartTime: defaultStart,
			EndTime:   defaultEnd,
		})
	}

	slices.SortStableFunc(intervals, func(a, b WeeklyInterval) int {
		return cmp.Compare(a.StartTime, b.StartTime)
	})
	return intervals, nil
}
