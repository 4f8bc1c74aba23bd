package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"availability-system/availability"
	"availability-system/booking"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type createBookingRequest struct {
	UserID    string `json:"userId"`
	Title     string `json:"title"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// createBooking stores an accepted booking once the strict slot check
// passes; an occupied or off-hours slot is a conflict.
func (a *API) createBooking(w http.ResponseWriter, r *http.Request) {
	var req createBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.Response(w, http.StatusBadRequest, "invalid request body")
		return
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		a.Response(w, http.StatusBadRequest, "invalid user ID")
		return
	}
	if req.Title == "" {
		a.Response(w, http.StatusBadRequest, "validate: title is required")
		return
	}

	res, err := a.guard().Resolve(r.Context(), availability.Request{
		UserID:   userID,
		DateFrom: req.StartTime,
		DateTo:   req.EndTime,
	}, availability.StrictRules(a.maxSlotDuration))
	if err != nil {
		a.writeResolveError(w, r, err)
		return
	}
	if !res.Available {
		a.Response(w, http.StatusConflict, res)
		return
	}

	// Both instants were validated by the guard.
	start, _ := availability.ParseInstant(req.StartTime)
	end, _ := availability.ParseInstant(req.EndTime)

	bookingAccessor := booking.NewAccessor(a.db)
	b, err := bookingAccessor.CreateBooking(r.Context(), booking.Booking{
		UserID:    userID,
		Title:     req.Title,
		StartTime: start.UTC(),
		EndTime:   end.UTC(),
		Status:    booking.StatusAccepted,
	}, a.now())
	if err != nil {
		a.internalError(w, r, err)
		return
	}
	a.Response(w, http.StatusCreated, b)
}

func (a *API) pathBookingID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id := mux.Vars(r)["id"]
	if id == "" {
		a.Response(w, http.StatusBadRequest, "booking ID is required")
		return uuid.Nil, false
	}

	parsedID, err := uuid.Parse(id)
	if err != nil {
		a.Response(w, http.StatusBadRequest, "invalid booking ID")
		return uuid.Nil, false
	}
	return parsedID, true
}

func (a *API) getBooking(w http.ResponseWriter, r *http.Request) {
	id, ok := a.pathBookingID(w, r)
	if !ok {
		return
	}

	bookingAccessor := booking.NewAccessor(a.db)
	b, err := bookingAccessor.GetBooking(r.Context(), id)
	if err != nil {
		a.internalError(w, r, err)
		return
	}
	if b == nil {
		a.Response(w, http.StatusNotFound, "booking not found")
		return
	}
	a.Response(w, http.StatusOK, b)
}

type updateBookingStatusRequest struct {
	Status booking.Status `json:"status"`
}

func (a *API) updateBookingStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := a.pathBookingID(w, r)
	if !ok {
		return
	}

	var req updateBookingStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.Response(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !req.Status.Valid() {
		a.Response(w, http.StatusBadRequest, fmt.Sprintf("invalid status %q", req.Status))
		return
	}

	bookingAccessor := booking.NewAccessor(a.db)
	existing, err := bookingAccessor.GetBooking(r.Context(), id)
	if err != nil {
		a.internalError(w, r, err)
		return
	}
	if existing == nil {
		a.Response(w, http.StatusNotFound, "booking not found")
		return
	}

	// Only accepted bookings count as busy, so the booking itself is not
	// among the conflicts found here.
	if req.Status == booking.StatusAccepted && existing.Status != booking.StatusAccepted {
		res, err := a.guard().Resolve(r.Context(), availability.Request{
			UserID:   existing.UserID,
			DateFrom: existing.StartTime.Format(time.RFC3339Nano),
			DateTo:   existing.EndTime.Format(time.RFC3339Nano),
		}, availability.RecheckRules())
		if err != nil {
			a.writeResolveError(w, r, err)
			return
		}
		if !res.Available {
			a.Response(w, http.StatusConflict, res)
			return
		}
	}

	updated, err := bookingAccessor.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		a.internalError(w, r, err)
		return
	}
	a.Response(w, http.StatusOK, updated)
}

// exportBookings serves the user's confirmed bookings in
// [dateFrom, dateTo) as an iCalendar feed.
func (a *API) exportBookings(w http.ResponseWriter, r *http.Request) {
	u, ok := a.lookupUser(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	from, err := availability.ParseInstant(q.Get("dateFrom"))
	if err != nil {
		a.Response(w, http.StatusBadRequest, err.Error())
		return
	}
	to, err := availability.ParseInstant(q.Get("dateTo"))
	if err != nil {
		a.Response(w, http.StatusBadRequest, err.Error())
		return
	}
	if to.Before(from) {
		a.Response(w, http.StatusBadRequest, "dateTo is before dateFrom")
		return
	}

	bookingAccessor := booking.NewAccessor(a.db)
	bookings, err := bookingAccessor.GetBookingsInRange(r.Context(), u.ID, from, to)
	if err != nil {
		a.internalError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.ics"`, u.ID))
	w.WriteHeader(http.StatusOK)
	if err := booking.WriteICS(w, u.Name, bookings, a.now().Truncate(time.Second)); err != nil {
		a.logger.Error("write calendar", zap.Error(err))
	}
}
