package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/altynbek8/ServiceApp/internal/model"
)

func (r *favoriteRepository) Exists(ctx context.Context, userID, targetID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM favorites WHERE user_id = $1 AND target_id = $2)`
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, userID, targetID); err != nil {
		return false, fmt.Errorf("failed to check favorite: %w", err)
	}
	return exists, nil
}

func (r *favoriteRepository) Create(ctx context.Context, f *model.Favorite) error {
	query := `
		INSERT INTO favorites (id, user_id, target_id, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, target_id) DO NOTHING
	`
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	f.CreatedAt = time.Now()
	if _, err := r.db.ExecContext(ctx, query, f.ID, f.UserID, f.TargetID, f.CreatedAt); err != nil {
		return fmt.Errorf("failed to create favorite: %w", err)
	}
	return nil
}

func (r *favoriteRepository) Delete(ctx context.Context, userID, targetID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM favorites WHERE user_id = $1 AND target_id = $2`, userID, targetID)
	if err != nil {
		return fmt.Errorf("failed to delete favorite: %w", err)
	}
	return requireRow(result, "favorite")
}

func (r *favoriteRepository) ListTargets(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	query := `SELECT target_id FROM favorites WHERE user_id = $1 ORDER BY created_at DESC`
	var ids []uuid.UUID
	if err := r.db.SelectContext(ctx, &ids, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	return ids, nil
}
