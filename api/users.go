package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"availability-system/user"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

func (a *API) createUser(w http.ResponseWriter, r *http.Request) {
	var payload user.User

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		a.Response(w, http.StatusBadRequest, "invalid request body")
		return
	}

	payload.ApplyDefaults()
	if err := payload.Validate(); err != nil {
		a.Response(w, http.StatusBadRequest, fmt.Sprintf("validate: %v", err))
		return
	}

	userAccessor := user.NewAccessor(a.db)
	u, err := userAccessor.CreateUser(r.Context(), payload)
	if err != nil {
		a.internalError(w, r, err)
		return
	}
	a.Response(w, http.StatusCreated, u)
}

// pathUserID parses the {id} route variable, answering 400 on failure.
func (a *API) pathUserID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id := mux.Vars(r)["id"]
	if id == "" {
		a.Response(w, http.StatusBadRequest, "user ID is required")
		return uuid.Nil, false
	}

	parsedID, err := uuid.Parse(id)
	if err != nil {
		a.Response(w, http.StatusBadRequest, "invalid user ID")
		return uuid.Nil, false
	}
	return parsedID, true
}

// lookupUser loads the user named by the route, answering 404 when absent.
func (a *API) lookupUser(w http.ResponseWriter, r *http.Request) (*user.User, bool) {
	userID, ok := a.pathUserID(w, r)
	if !ok {
		return nil, false
	}

	userAccessor := user.NewAccessor(a.db)
	u, err := userAccessor.GetUser(r.Context(), userID)
	if err != nil {
		a.internalError(w, r, err)
		return nil, false
	}
	if u == nil {
		a.Response(w, http.StatusNotFound, "user not found")
		return nil, false
	}
	return u, true
}

func (a *API) getUser(w http.ResponseWriter, r *http.Request) {
	u, ok := a.lookupUser(w, r)
	if !ok {
		return
	}
	a.Response(w, http.StatusOK, u)
}

type getUsersResponse struct {
	Users []user.User `json:"users"`
}

func (a *API) getUsers(w http.ResponseWriter, r *http.Request) {
	userAccessor := user.NewAccessor(a.db)
	users, err := userAccessor.GetUsers(r.Context())
	if err != nil {
		a.internalError(w, r, err)
		return
	}
	a.Response(w, http.StatusOK, getUsersResponse{Users: users})
}
