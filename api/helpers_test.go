package api_test

import (
	"encoding/json"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"availability-system/api"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

var (
	getUserQuery      = regexp.QuoteMeta(`SELECT id, name, email, time_zone, start_time, end_time, minimum_booking_notice FROM users WHERE id = $1`)
	getSchedulesQuery = regexp.QuoteMeta(`SELECT id, user_id, free_busy_times, created_at FROM schedules WHERE user_id = $1 ORDER BY created_at`)
	bookingsInRange   = regexp.QuoteMeta(`SELECT id, user_id, title, start_time, end_time, status, created_at FROM bookings WHERE user_id = $1 AND status = $2 AND start_time < $3 AND end_time > $4 ORDER BY start_time`)

	userColumns     = []string{"id", "name", "email", "time_zone", "start_time", "end_time", "minimum_booking_notice"}
	scheduleColumns = []string{"id", "user_id", "free_busy_times", "created_at"}
	bookingColumns  = []string{"id", "user_id", "title", "start_time", "end_time", "status", "created_at"}
)

// testNow is a Sunday; the default request window is the next morning.
var testNow = time.Date(2024, 1, 7, 12, 0, 0, 0, time.UTC)

func setupAPI(t *testing.T, opts api.Options) (*api.API, sqlmock.Sqlmock) {
	t.Helper()
	db, dbMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	if opts.Now == nil {
		opts.Now = func() time.Time { return testNow }
	}
	a := api.NewAPI(db, opts)
	a.RegisterRoutes()
	return a, dbMock
}

type testUser struct {
	id       uuid.UUID
	timeZone string
	start    int
	end      int
	notice   int
}

func defaultTestUser() testUser {
	return testUser{id: uuid.New(), timeZone: "UTC", start: 540, end: 1020}
}

func expectUser(dbMock sqlmock.Sqlmock, u testUser) {
	dbMock.ExpectQuery(getUserQuery).
		WithArgs(u.id).
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow(u.id.String(), "Alice", "alice@example.com", u.timeZone, u.start, u.end, u.notice))
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) (api.Response, map[string]any) {
	t.Helper()
	var res api.Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
	m, _ := res.Response.(map[string]any)
	return res, m
}
