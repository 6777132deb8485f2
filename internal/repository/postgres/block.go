package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/altynbek8/ServiceApp/internal/model"
	"github.com/altynbek8/ServiceApp/internal/repository"
)

func (r *blockRepository) ListForDay(ctx context.Context, specialistID uuid.UUID, date string) ([]*model.ManualBlock, error) {
	query := `
		SELECT specialist_id, date, time, created_at
		FROM busy_times
		WHERE specialist_id = $1 AND date = $2
		ORDER BY time ASC
	`
	var blocks []*model.ManualBlock
	if err := r.db.SelectContext(ctx, &blocks, query, specialistID, date); err != nil {
		return nil, fmt.Errorf("failed to list manual blocks: %w", err)
	}
	return blocks, nil
}

func (r *blockRepository) Exists(ctx context.Context, specialistID uuid.UUID, date, timeLabel string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM busy_times
			WHERE specialist_id = $1 AND date = $2 AND time = $3
		)
	`
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, specialistID, date, timeLabel); err != nil {
		return false, fmt.Errorf("failed to check manual block: %w", err)
	}
	return exists, nil
}

func (r *blockRepository) Create(ctx context.Context, b *model.ManualBlock) error {
	// ON CONFLICT keeps the toggle idempotent under concurrent taps.
	query := `
		INSERT INTO busy_times (specialist_id, date, time, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (specialist_id, date, time) DO NOTHING
	`
	b.CreatedAt = time.Now()
	if _, err := r.db.ExecContext(ctx, query, b.SpecialistID, b.Date, b.Time, b.CreatedAt); err != nil {
		return fmt.Errorf("failed to create manual block: %w", err)
	}
	return nil
}

func (r *blockRepository) Delete(ctx context.Context, specialistID uuid.UUID, date, timeLabel string) error {
	query := `
		DELETE FROM busy_times
		WHERE specialist_id = $1 AND date = $2 AND time = $3
	`
	result, err := r.db.ExecContext(ctx, query, specialistID, date, timeLabel)
	if err != nil {
		return fmt.Errorf("failed to delete manual block: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("manual block: %w", repository.ErrNotFound)
	}
	return nil
}
