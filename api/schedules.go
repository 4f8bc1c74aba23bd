package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"availability-system/schedule"
)

type getSchedulesResponse struct {
	Schedules []schedule.Schedule `json:"schedules"`
}

func (a *API) getSchedules(w http.ResponseWriter, r *http.Request) {
	u, ok := a.lookupUser(w, r)
	if !ok {
		return
	}

	scheduleAccessor := schedule.NewAccessor(a.db)
	schedules, err := scheduleAccessor.GetSchedulesForUser(r.Context(), u.ID)
	if err != nil {
		a.internalError(w, r, err)
		return
	}
	a.Response(w, http.StatusOK, getSchedulesResponse{Schedules: schedules})
}

type upsertScheduleRequest struct {
	FreeBusyTimes schedule.FreeBusyTimes `json:"freeBusyTimes"`
}

// upsertSchedule creates the user's schedule or overwrites the existing one.
func (a *API) upsertSchedule(w http.ResponseWriter, r *http.Request) {
	u, ok := a.lookupUser(w, r)
	if !ok {
		return
	}

	var req upsertScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.Response(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.FreeBusyTimes == nil {
		a.Response(w, http.StatusBadRequest, "freeBusyTimes is required")
		return
	}

	normalized := req.FreeBusyTimes.Normalize()
	if err := normalized.Validate(); err != nil {
		a.Response(w, http.StatusBadRequest, fmt.Sprintf("validate: %v", err))
		return
	}

	scheduleAccessor := schedule.NewAccessor(a.db)
	s, created, err := scheduleAccessor.UpsertSchedule(r.Context(), u.ID, normalized, a.now())
	if err != nil {
		if errors.Is(err, schedule.ErrMalformedTime) {
			a.Response(w, http.StatusBadRequest, err.Error())
			return
		}
		a.internalError(w, r, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	a.Response(w, status, s)
}
