package api

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/netip"
	"os"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// Options configures an API. Zero values fall back to sensible defaults.
type Options struct {
	Logger          *zap.Logger
	Now             func() time.Time
	MaxSlotDuration time.Duration
	AllowedOrigins  []string
	// Limiter throttles requests per client; nil disables rate limiting.
	Limiter         Limiter
	// TrustedProxies may set X-Forwarded-For for the rate limiter key.
	TrustedProxies  []netip.Prefix
}

type API struct {
	router          *mux.Router
	db              *sql.DB
	logger          *zap.Logger
	now             func() time.Time
	maxSlotDuration time.Duration
	allowedOrigins  []string
	limiter         Limiter
	trustedProxies  []netip.Prefix
}

func NewAPI(db *sql.DB, opts Options) *API {
	r := mux.NewRouter()
	r = r.PathPrefix("/api").Subrouter()

	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.MaxSlotDuration <= 0 {
		opts.MaxSlotDuration = 24 * time.Hour
	}
	if len(opts.AllowedOrigins) == 0 {
		opts.AllowedOrigins = []string{"*"}
	}

	return &API{
		router:          r,
		db:              db,
		logger:          opts.Logger,
		now:             opts.Now,
		maxSlotDuration: opts.MaxSlotDuration,
		allowedOrigins:  opts.AllowedOrigins,
		limiter:         opts.Limiter,
		trustedProxies:  opts.TrustedProxies,
	}
}

// Router exposes the bare router, without the outer middleware chain.
func (a *API) Router() *mux.Router {
	return a.router
}

func (a *API) Handler() http.Handler {
	var h http.Handler = a.router
	h = handlers.CORS(
		handlers.AllowedOrigins(a.allowedOrigins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)(h)
	h = handlers.RecoveryHandler(
		handlers.RecoveryLogger(zap.NewStdLog(a.logger)),
		handlers.PrintRecoveryStack(true),
	)(h)
	// Use Gorilla's built-in logging handler
	return handlers.LoggingHandler(os.Stdout, h)
}

type Response struct {
	Status   int `json:"status"`
	Response any `json:"response"`
}

func (a *API) Response(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(Response{
		Status:   status,
		Response: data,
	})
	if err != nil {
		a.logger.Error("encode response", zap.Error(err))
	}
}

// internalError logs err and answers with a generic 500.
func (a *API) internalError(w http.ResponseWriter, r *http.Request, err error) {
	a.logger.Error("request failed",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Error(err),
	)
	a.Response(w, http.StatusInternalServerError, err.Error())
}

func (a *API) RegisterRoutes() {
	if a.limiter != nil {
		a.router.Use(a.rateLimit)
	}

	a.router.HandleFunc("/health", a.health).Methods(http.MethodGet)

	a.router.HandleFunc("/users", a.createUser).Methods(http.MethodPost)
	a.router.HandleFunc("/users", a.getUsers).Methods(http.MethodGet)
	a.router.HandleFunc("/users/{id}", a.getUser).Methods(http.MethodGet)
	a.router.HandleFunc("/users/{id}/schedule", a.getSchedules).Methods(http.MethodGet)
	a.router.HandleFunc("/users/{id}/schedule", a.upsertSchedule).Methods(http.MethodPost, http.MethodPatch)
	a.router.HandleFunc("/users/{id}/bookings.ics", a.exportBookings).Methods(http.MethodGet)

	a.router.HandleFunc("/bookings", a.createBooking).Methods(http.MethodPost)
	a.router.HandleFunc("/bookings/{id}", a.getBooking).Methods(http.MethodGet)
	a.router.HandleFunc("/bookings/{id}/status", a.updateBookingStatus).Methods(http.MethodPatch)

	a.router.HandleFunc("/slots", a.getSlot).Methods(http.MethodGet)
	a.router.HandleFunc("/availability", a.getAvailability).Methods(http.MethodGet)
}
