package user_test

import (
	"database/sql"
	"regexp"
	"testing"
	"time"

	"availability-system/user"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var userColumns = []string{"id", "name", "email", "time_zone", "start_time", "end_time", "minimum_booking_notice"}

func TestUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	a := user.NewAccessor(db)

	const name = "Pulkit"
	const email = "pulkit@example.com"

	insertQuery := `INSERT INTO users (id, name, email, time_zone, start_time, end_time, minimum_booking_notice) VALUES ($1, $2, $3, $4, $5, $6, $7)`
	mock.ExpectExec(regexp.QuoteMeta(insertQuery)).
		WithArgs(sqlmock.AnyArg(), name, email, "Europe/Berlin", 540, 1020, 120).
		WillReturnResult(sqlmock.NewResult(1, 1))

	t.Run("create user", func(t *testing.T) {
		createdUser, err := a.CreateUser(t.Context(), user.User{
			Name:                 name,
			Email:                email,
			TimeZone:             "Europe/Berlin",
			StartTime:            540,
			EndTime:              1020,
			MinimumBookingNotice: 120,
		})
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, createdUser.ID)
		assert.Equal(t, name, createdUser.Name)
		assert.Equal(t, email, createdUser.Email)
		assert.Equal(t, 2*time.Hour, createdUser.Notice())

		require.NoError(t, mock.ExpectationsWereMet())

		t.Run("get user", func(t *testing.T) {
			selectQuery := `SELECT id, name, email, time_zone, start_time, end_time, minimum_booking_notice FROM users WHERE id = $1`
			rows := sqlmock.NewRows(userColumns).
				AddRow(createdUser.ID.String(), name, email, "Europe/Berlin", 540, 1020, 120)

			mock.ExpectQuery(regexp.QuoteMeta(selectQuery)).
				WithArgs(createdUser.ID).
				WillReturnRows(rows)

			u, err := a.GetUser(t.Context(), createdUser.ID)
			require.NoError(t, err)
			require.NotNil(t, u)
			assert.Equal(t, createdUser.ID, u.ID)
			assert.Equal(t, "Europe/Berlin", u.TimeZone)
			assert.Equal(t, 540, u.StartTime)
			assert.Equal(t, 1020, u.EndTime)
			assert.Equal(t, 120, u.MinimumBookingNotice)

			require.NoError(t, mock.ExpectationsWereMet())
		})

		t.Run("get user - no rows", func(t *testing.T) {
			missing := uuid.New()
			selectQuery := `SELECT id, name, email, time_zone, start_time, end_time, minimum_booking_notice FROM users WHERE id = $1`
			mock.ExpectQuery(regexp.QuoteMeta(selectQuery)).
				WithArgs(missing).
				WillReturnError(sql.ErrNoRows)

			u, err := a.GetUser(t.Context(), missing)
			require.NoError(t, err)
			assert.Nil(t, u)
		})
	})

	t.Run("get users", func(t *testing.T) {
		id1, id2 := uuid.New(), uuid.New()
		selectQuery := `SELECT id, name, email, time_zone, start_time, end_time, minimum_booking_notice FROM users ORDER BY name`
		mock.ExpectQuery(regexp.QuoteMeta(selectQuery)).
			WillReturnRows(sqlmock.NewRows(userColumns).
				AddRow(id1.String(), "Alice", "alice@example.com", "UTC", 0, 1440, 0).
				AddRow(id2.String(), "Bob", "bob@example.com", "Asia/Tokyo", 600, 1080, 30))

		users, err := a.GetUsers(t.Context())
		require.NoError(t, err)
		require.Len(t, users, 2)
		assert.Equal(t, id1, users[0].ID)
		assert.Equal(t, "Asia/Tokyo", users[1].TimeZone)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("create user applies defaults", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta(insertQuery)).
			WithArgs(sqlmock.AnyArg(), "Alice", "alice@example.com", "UTC", 0, 1440, 0).
			WillReturnResult(sqlmock.NewResult(1, 1))

		u, err := a.CreateUser(t.Context(), user.User{Name: "Alice", Email: "alice@example.com"})
		require.NoError(t, err)
		assert.Equal(t, "UTC", u.TimeZone)
		assert.Equal(t, 1440, u.EndTime)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserValidate(t *testing.T) {
	valid := user.User{Name: "A", Email: "a@example.com", TimeZone: "UTC", StartTime: 0, EndTime: 1440}
	require.NoError(t, valid.Validate())

	cases := map[string]func(u *user.User){
		"missing name":      func(u *user.User) { u.Name = "" },
		"missing email":     func(u *user.User) { u.Email = "" },
		"unknown time zone": func(u *user.User) { u.TimeZone = "Mars/Olympus" },
		"inverted hours":    func(u *user.User) { u.StartTime, u.EndTime = 600, 540 },
		"end past midnight": func(u *user.User) { u.EndTime = 1441 },
		"negative notice":   func(u *user.User) { u.MinimumBookingNotice = -1 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			u := valid
			mutate(&u)
			assert.Error(t, u.Validate())
		})
	}
}
