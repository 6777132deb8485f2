package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/altynbek8/ServiceApp/internal/model"
	"github.com/altynbek8/ServiceApp/internal/repository"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })
	return sqlx.NewDb(mockDB, "sqlmock"), mock
}

func TestBookingCreate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookingRepository(db)

	b := &model.Booking{
		ClientID:     uuid.New(),
		SpecialistID: uuid.New(),
		DateTime:     "2026-03-15 10:00",
		Status:       model.BookingStatusPending,
	}

	mock.ExpectExec("INSERT INTO bookings").
		WithArgs(sqlmock.AnyArg(), b.ClientID, b.SpecialistID, b.DateTime,
			b.Status, nil, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Create(context.Background(), b))
	assert.NotEqual(t, uuid.Nil, b.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingCreateMapsSlotIndexViolation(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookingRepository(db)

	mock.ExpectExec("INSERT INTO bookings").
		WillReturnError(&pq.Error{
			Code:       "23505",
			Constraint: "bookings_provider_slot_active",
		})

	err := repo.Create(context.Background(), &model.Booking{
		ClientID:     uuid.New(),
		SpecialistID: uuid.New(),
		DateTime:     "2026-03-15 10:00",
		Status:       model.BookingStatusPending,
	})
	assert.ErrorIs(t, err, repository.ErrSlotTaken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingGetNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookingRepository(db)

	id := uuid.New()
	mock.ExpectQuery("SELECT (.+) FROM bookings").
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.Get(context.Background(), id)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestBookingUpdateStatusMissingRow(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookingRepository(db)

	mock.ExpectExec("UPDATE bookings").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateStatus(context.Background(), uuid.New(), model.BookingStatusConfirmed)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestListActiveForDayScopesByDatePrefix(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookingRepository(db)

	specialistID := uuid.New()
	rows := sqlmock.NewRows([]string{
		"id", "client_id", "specialist_id", "date_time", "status",
		"message", "created_at", "updated_at", "client_name", "client_avatar",
	}).AddRow(uuid.New(), uuid.New(), specialistID, "2026-03-15 10:00",
		"pending", nil, time.Now(), time.Now(), "Aida", nil)

	mock.ExpectQuery("SELECT (.+) FROM bookings b").
		WithArgs(specialistID, "2026-03-15%").
		WillReturnRows(rows)

	bookings, err := repo.ListActiveForDay(context.Background(), specialistID, "2026-03-15")
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, "10:00", bookings[0].Slot())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBlockExists(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBlockRepository(db)

	specialistID := uuid.New()
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(specialistID, "2026-03-15", "10:00").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.Exists(context.Background(), specialistID, "2026-03-15", "10:00")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestBlockDeleteMissingRow(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBlockRepository(db)

	mock.ExpectExec("DELETE FROM busy_times").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), uuid.New(), "2026-03-15", "10:00")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestMessageCreateReportsReplayedID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMessageRepository(db)

	// ON CONFLICT DO NOTHING swallows the insert; zero rows means the
	// client retried an already stored ID.
	mock.ExpectExec("INSERT INTO messages").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Create(context.Background(), &model.Message{
		ID:         uuid.New(),
		SenderID:   uuid.New(),
		ReceiverID: uuid.New(),
		Content:    "привет",
	})
	assert.ErrorIs(t, err, repository.ErrDuplicate)
}

func TestProfileCreateMapsDuplicateEmail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProfileRepository(db)

	mock.ExpectExec("INSERT INTO profiles").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "profiles_email_key"})

	err := repo.Create(context.Background(), &model.Profile{Email: "user@example.com"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)
}
