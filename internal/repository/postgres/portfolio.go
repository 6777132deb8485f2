package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/altynbek8/ServiceApp/internal/model"
)

const portfolioColumns = `id, specialist_id, file_url, file_type, thumbnail_url, is_hero, is_pinned, in_feed, created_at`

func (r *portfolioRepository) Create(ctx context.Context, item *model.PortfolioItem) error {
	query := `
		INSERT INTO portfolio (id, specialist_id, file_url, file_type, thumbnail_url, is_hero, is_pinned, in_feed, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	item.CreatedAt = time.Now()
	_, err := r.db.ExecContext(ctx, query,
		item.ID, item.SpecialistID, item.FileURL, item.FileType, item.ThumbnailURL,
		item.IsHero, item.IsPinned, item.InFeed, item.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create portfolio item: %w", err)
	}
	return nil
}

func (r *portfolioRepository) Get(ctx context.Context, id uuid.UUID) (*model.PortfolioItem, error) {
	query := `SELECT ` + portfolioColumns + ` FROM portfolio WHERE id = $1`
	var item model.PortfolioItem
	if err := r.db.GetContext(ctx, &item, query, id); err != nil {
		return nil, fmt.Errorf("failed to get portfolio item: %w", notFound(err))
	}
	return &item, nil
}

func (r *portfolioRepository) ListBySpecialist(ctx context.Context, specialistID uuid.UUID, limit int) ([]*model.PortfolioItem, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `
		SELECT ` + portfolioColumns + `
		FROM portfolio
		WHERE specialist_id = $1
		ORDER BY is_hero DESC, is_pinned DESC, created_at DESC
		LIMIT $2
	`
	var items []*model.PortfolioItem
	if err := r.db.SelectContext(ctx, &items, query, specialistID, limit); err != nil {
		return nil, fmt.Errorf("failed to list portfolio: %w", err)
	}
	return items, nil
}

func (r *portfolioRepository) UpdateFlags(ctx context.Context, item *model.PortfolioItem) error {
	query := `
		UPDATE portfolio
		SET is_hero = $1, is_pinned = $2, in_feed = $3
		WHERE id = $4
	`
	result, err := r.db.ExecContext(ctx, query, item.IsHero, item.IsPinned, item.InFeed, item.ID)
	if err != nil {
		return fmt.Errorf("failed to update portfolio flags: %w", err)
	}
	return requireRow(result, "portfolio item")
}

// ClearHero drops the hero flag on all of a specialist's items so a new
// hero can be set.
func (r *portfolioRepository) ClearHero(ctx context.Context, specialistID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE portfolio SET is_hero = false WHERE specialist_id = $1 AND is_hero = true`, specialistID)
	if err != nil {
		return fmt.Errorf("failed to clear hero flag: %w", err)
	}
	return nil
}

func (r *portfolioRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM portfolio WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete portfolio item: %w", err)
	}
	return requireRow(result, "portfolio item")
}
