package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/altynbek8/ServiceApp/internal/model"
)

func (r *reviewRepository) Create(ctx context.Context, rev *model.Review) error {
	query := `
		INSERT INTO reviews (id, client_id, target_id, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	if rev.ID == uuid.Nil {
		rev.ID = uuid.New()
	}
	rev.CreatedAt = time.Now()
	_, err := r.db.ExecContext(ctx, query,
		rev.ID, rev.ClientID, rev.TargetID, rev.Rating, rev.Comment, rev.CreatedAt)
	if err != nil {
		if isUniqueViolation(err, "") {
			return fmt.Errorf("review already exists: %w", err)
		}
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

func (r *reviewRepository) ListByTarget(ctx context.Context, targetID uuid.UUID, limit int) ([]*model.Review, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `
		SELECT rv.id, rv.client_id, rv.target_id, rv.rating, rv.comment, rv.created_at,
		       p.full_name AS client_name, p.avatar_url AS client_avatar
		FROM reviews rv
		JOIN profiles p ON p.id = rv.client_id
		WHERE rv.target_id = $1
		ORDER BY rv.created_at DESC
		LIMIT $2
	`
	var reviews []*model.Review
	if err := r.db.SelectContext(ctx, &reviews, query, targetID, limit); err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, nil
}

func (r *reviewRepository) AverageRating(ctx context.Context, targetID uuid.UUID) (float64, int, error) {
	query := `
		SELECT COALESCE(AVG(rating), 0)::float8 AS avg, COUNT(*) AS count
		FROM reviews
		WHERE target_id = $1
	`
	var row struct {
		Avg   float64 `db:"avg"`
		Count int     `db:"count"`
	}
	if err := r.db.GetContext(ctx, &row, query, targetID); err != nil {
		return 0, 0, fmt.Errorf("failed to aggregate reviews: %w", err)
	}
	return row.Avg, row.Count, nil
}
