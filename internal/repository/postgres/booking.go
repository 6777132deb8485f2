package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/altynbek8/ServiceApp/internal/model"
	"github.com/altynbek8/ServiceApp/internal/repository"
)

// The bookings table stores date_time as "YYYY-MM-DD HH:MM" text; day
// scoping is a lexical prefix match. Slot exclusivity is enforced by
// the partial unique index
//
//	CREATE UNIQUE INDEX bookings_provider_slot_active
//	ON bookings (specialist_id, date_time) WHERE status <> 'rejected';

func (r *bookingRepository) Create(ctx context.Context, b *model.Booking) error {
	query := `
		INSERT INTO bookings (
			id, client_id, specialist_id, date_time, status, message,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt

	_, err := r.db.ExecContext(ctx, query,
		b.ID,
		b.ClientID,
		b.SpecialistID,
		b.DateTime,
		b.Status,
		b.Message,
		b.CreatedAt,
		b.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err, "bookings_provider_slot_active") {
			return repository.ErrSlotTaken
		}
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

func (r *bookingRepository) Get(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	query := `
		SELECT id, client_id, specialist_id, date_time, status, message,
		       created_at, updated_at
		FROM bookings
		WHERE id = $1
	`
	var b model.Booking
	if err := r.db.GetContext(ctx, &b, query, id); err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", notFound(err))
	}
	return &b, nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.BookingStatus) error {
	query := `
		UPDATE bookings
		SET status = $1, updated_at = $2
		WHERE id = $3
	`
	result, err := r.db.ExecContext(ctx, query, status, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("booking: %w", repository.ErrNotFound)
	}
	return nil
}

func (r *bookingRepository) List(ctx context.Context, filters *model.BookingFilters) ([]*model.Booking, error) {
	query := `
		SELECT b.id, b.client_id, b.specialist_id, b.date_time, b.status,
		       b.message, b.created_at, b.updated_at,
		       c.full_name AS client_name, c.avatar_url AS client_avatar,
		       c.phone AS client_phone,
		       s.full_name AS specialist_name, s.avatar_url AS specialist_avatar
		FROM bookings b
		JOIN profiles c ON c.id = b.client_id
		JOIN profiles s ON s.id = b.specialist_id
		WHERE 1=1
	`
	args := []interface{}{}
	argCount := 1

	if filters.ClientID != nil {
		query += fmt.Sprintf(" AND b.client_id = $%d", argCount)
		args = append(args, *filters.ClientID)
		argCount++
	}
	if filters.SpecialistID != nil {
		query += fmt.Sprintf(" AND b.specialist_id = $%d", argCount)
		args = append(args, *filters.SpecialistID)
		argCount++
	}
	if filters.Status != nil {
		query += fmt.Sprintf(" AND b.status = $%d", argCount)
		args = append(args, *filters.Status)
		argCount++
	}

	query += fmt.Sprintf(" ORDER BY b.created_at DESC LIMIT $%d OFFSET $%d", argCount, argCount+1)
	args = append(args, filters.Limit(), filters.Offset())

	var bookings []*model.Booking
	if err := r.db.SelectContext(ctx, &bookings, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}

func (r *bookingRepository) ListActiveForDay(ctx context.Context, specialistID uuid.UUID, date string) ([]*model.Booking, error) {
	query := `
		SELECT b.id, b.client_id, b.specialist_id, b.date_time, b.status,
		       b.message, b.created_at, b.updated_at,
		       c.full_name AS client_name, c.avatar_url AS client_avatar
		FROM bookings b
		JOIN profiles c ON c.id = b.client_id
		WHERE b.specialist_id = $1
		AND b.date_time LIKE $2
		AND b.status <> 'rejected'
		ORDER BY b.date_time ASC
	`
	var bookings []*model.Booking
	if err := r.db.SelectContext(ctx, &bookings, query, specialistID, date+"%"); err != nil {
		return nil, fmt.Errorf("failed to list day bookings: %w", err)
	}
	return bookings, nil
}

func (r *bookingRepository) FullyBusyDates(ctx context.Context, specialistID uuid.UUID, gridSize int) ([]string, error) {
	// A day is fully busy when active bookings and manual blocks
	// together cover every grid slot.
	query := `
		SELECT day FROM (
			SELECT substring(date_time from 1 for 10) AS day,
			       substring(date_time from 12) AS slot
			FROM bookings
			WHERE specialist_id = $1 AND status <> 'rejected'
			UNION
			SELECT date AS day, time AS slot
			FROM busy_times
			WHERE specialist_id = $1
		) occupied
		GROUP BY day
		HAVING COUNT(DISTINCT slot) >= $2
		ORDER BY day
	`
	var dates []string
	if err := r.db.SelectContext(ctx, &dates, query, specialistID, gridSize); err != nil {
		return nil, fmt.Errorf("failed to compute busy dates: %w", err)
	}
	return dates, nil
}
