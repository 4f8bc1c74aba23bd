package availability_test

import (
	"testing"

	"availability-system/availability"
	"availability-system/schedule"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildWorkingHours(t *testing.T) {
	t.Run("no entries falls back to the default", func(t *testing.T) {
		got, err := availability.BuildWorkingHours(nil, 540, 1020)
		require.NoError(t, err)
		assert.Equal(t, []availability.WeeklyInterval{
			{Days: []int{0, 1, 2, 3, 4, 5, 6}, StartTime: 540, EndTime: 1020},
		}, got)
	})

	t.Run("empty maps fall back to the default", func(t *testing.T) {
		got, err := availability.BuildWorkingHours([]schedule.FreeBusyTimes{{}, {"monday": nil}}, 0, 1440)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, 1440, got[0].EndTime)
	})

	t.Run("one interval per entry per day", func(t *testing.T) {
		src := schedule.FreeBusyTimes{
			"monday":  {{Start: "09:00", End: "17:00"}},
			"tuesday": {{Start: "09:00", End: "17:00"}},
		}
		got, err := availability.BuildWorkingHours([]schedule.FreeBusyTimes{src}, 0, 1440)
		require.NoError(t, err)
		assert.Equal(t, []availability.WeeklyInterval{
			{Days: []int{1}, StartTime: 540, EndTime: 1020},
			{Days: []int{2}, StartTime: 540, EndTime: 1020},
		}, got)
	})

	t.Run("sorted by start, ties keep weekday order", func(t *testing.T) {
		src := schedule.FreeBusyTimes{
			"saturday":  {{Start: "08:00", End: "10:00"}},
			"sunday":    {{Start: "13:00", End: "15:00"}, {Start: "08:00", End: "09:00"}},
			"Wednesday": {{Start: "07:30", End: "12:00"}},
		}
		got, err := availability.BuildWorkingHours([]schedule.FreeBusyTimes{src}, 0, 1440)
		require.NoError(t, err)
		assert.Equal(t, []availability.WeeklyInterval{
			{Days: []int{3}, StartTime: 450, EndTime: 720},
			{Days: []int{0}, StartTime: 480, EndTime: 540},
			{Days: []int{6}, StartTime: 480, EndTime: 600},
			{Days: []int{0}, StartTime: 780, EndTime: 900},
		}, got)
	})

	t.Run("mixed-case spellings merge the same way every time", func(t *testing.T) {
		src := schedule.FreeBusyTimes{
			"monday": {{Start: "09:00", End: "10:00"}},
			"Monday": {{Start: "09:00", End: "11:00"}},
		}
		want := []availability.WeeklyInterval{
			{Days: []int{1}, StartTime: 540, EndTime: 660},
			{Days: []int{1}, StartTime: 540, EndTime: 600},
		}
		for range 20 {
			got, err := availability.BuildWorkingHours([]schedule.FreeBusyTimes{src}, 0, 1440)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		}
	})

	t.Run("malformed entry", func(t *testing.T) {
		src := schedule.FreeBusyTimes{"monday": {{Start: "9", End: "17:00"}}}
		_, err := availability.BuildWorkingHours([]schedule.FreeBusyTimes{src}, 0, 1440)
		assert.ErrorIs(t, err, availability.ErrScheduleParse)
		assert.ErrorIs(t, err, schedule.ErrMalformedTime)
	})
}
