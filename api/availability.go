package api

import (
	"errors"
	"net/http"

	"availability-system/availability"
	"availability-system/booking"
	"availability-system/schedule"
	"availability-system/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func (a *API) guard() *availability.Guard {
	return availability.NewGuard(
		user.NewAccessor(a.db),
		schedule.NewAccessor(a.db),
		booking.NewAccessor(a.db),
		a.now,
	)
}

// resolveStatus maps a resolution failure to an HTTP status code.
func resolveStatus(err error) int {
	switch {
	case errors.Is(err, availability.ErrInvalidRange),
		errors.Is(err, availability.ErrInvalidTimestamp),
		errors.Is(err, availability.ErrSlotTooLong),
		errors.Is(err, availability.ErrPastBooking),
		errors.Is(err, availability.ErrInsufficientNotice):
		return http.StatusBadRequest
	case errors.Is(err, availability.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, availability.ErrScheduleParse),
		errors.Is(err, availability.ErrInvalidTimeZone):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (a *API) writeResolveError(w http.ResponseWriter, r *http.Request, err error) {
	status := resolveStatus(err)
	if status == http.StatusInternalServerError {
		a.internalError(w, r, err)
		return
	}
	a.logger.Debug("resolution rejected", zap.Int("status", status), zap.Error(err))
	a.Response(w, status, err.Error())
}

// lookupRequest reads the user, dateFrom and dateTo query parameters.
func (a *API) lookupRequest(w http.ResponseWriter, r *http.Request) (availability.Request, bool) {
	q := r.URL.Query()
	userID, err := uuid.Parse(q.Get("user"))
	if err != nil {
		a.Response(w, http.StatusBadRequest, "invalid user ID")
		return availability.Request{}, false
	}
	return availability.Request{
		UserID:   userID,
		DateFrom: q.Get("dateFrom"),
		DateTo:   q.Get("dateTo"),
	}, true
}

// getSlot answers whether the window is bookable.
func (a *API) getSlot(w http.ResponseWriter, r *http.Request) {
	req, ok := a.lookupRequest(w, r)
	if !ok {
		return
	}

	res, err := a.guard().Resolve(r.Context(), req, availability.StrictRules(a.maxSlotDuration))
	if err != nil {
		a.writeResolveError(w, r, err)
		return
	}
	a.Response(w, http.StatusOK, res)
}

type availabilityResponse struct {
	TimeZone     string                        `json:"timeZone"`
	WorkingHours []availability.WeeklyInterval `json:"workingHours"`
	Available    bool                          `json:"available"`
}

// getAvailability reports the working hours covering the window without
// looking at bookings or business rules.
func (a *API) getAvailability(w http.ResponseWriter, r *http.Request) {
	req, ok := a.lookupRequest(w, r)
	if !ok {
		return
	}

	res, err := a.guard().Resolve(r.Context(), req, availability.LenientRules())
	if err != nil {
		a.writeResolveError(w, r, err)
		return
	}
	a.Response(w, http.StatusOK, availabilityResponse{
		TimeZone:     res.TimeZone,
		WorkingHours: res.SelectedSlots,
		Available:    res.Available,
	})
}
