package booking

import (
	"io"
	"time"

	ics "github.com/arran4/golang-ical"
)

// WriteICS writes the bookings as a published iCalendar feed.
func WriteICS(w io.Writer, calendarName string, bookings []Booking, now time.Time) error {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//availability-system//bookings//EN")
	cal.SetName(calendarName)

	for _, b := range bookings {
		event := cal.AddEvent(b.ID.String() + "@availability-system")
		event.SetDtStampTime(now.UTC())
		event.SetCreatedTime(b.CreatedAt.UTC())
		event.SetStartAt(b.StartTime.UTC())
		event.SetEndAt(b.EndTime.UTC())
		event.SetSummary(b.Title)
		event.SetStatus(ics.ObjectStatusConfirmed)
	}

	return cal.SerializeTo(w)
}
