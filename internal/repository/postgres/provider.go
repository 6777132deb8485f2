package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/altynbek8/ServiceApp/internal/model"
)

// providerSearchView joins profiles with their specialist or venue
// extension, category name and review aggregates. It mirrors the
// search view the clients consume.
const providerSearchView = `
	SELECT p.id, p.role, p.full_name, p.avatar_url, p.city,
	       c.name AS category_name,
	       COALESCE(sp.bio, vp.description) AS description,
	       sp.price_start,
	       r.avg_rating,
	       COALESCE(r.review_count, 0) AS review_count
	FROM profiles p
	LEFT JOIN specialist_profiles sp ON sp.id = p.id
	LEFT JOIN venue_profiles vp ON vp.id = p.id
	LEFT JOIN categories c ON c.id = COALESCE(sp.category_id, vp.category_id)
	LEFT JOIN (
		SELECT target_id, AVG(rating)::float8 AS avg_rating, COUNT(*) AS review_count
		FROM reviews GROUP BY target_id
	) r ON r.target_id = p.id
	WHERE p.role IN ('specialist', 'venue')
	AND p.is_banned = false
`

func (r *providerRepository) UpsertSpecialist(ctx context.Context, sp *model.SpecialistProfile) error {
	query := `
		INSERT INTO specialist_profiles (id, bio, experience_years, price_start, category_id, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			bio = EXCLUDED.bio,
			experience_years = EXCLUDED.experience_years,
			price_start = EXCLUDED.price_start,
			category_id = EXCLUDED.category_id,
			updated_at = EXCLUDED.updated_at
	`
	sp.UpdatedAt = time.Now()
	_, err := r.db.ExecContext(ctx, query,
		sp.ID, sp.Bio, sp.ExperienceYears, sp.PriceStart, sp.CategoryID, sp.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert specialist profile: %w", err)
	}
	return nil
}

func (r *providerRepository) GetSpecialist(ctx context.Context, id uuid.UUID) (*model.SpecialistProfile, error) {
	query := `
		SELECT id, bio, experience_years, price_start, category_id, updated_at
		FROM specialist_profiles
		WHERE id = $1
	`
	var sp model.SpecialistProfile
	if err := r.db.GetContext(ctx, &sp, query, id); err != nil {
		return nil, fmt.Errorf("failed to get specialist profile: %w", notFound(err))
	}
	return &sp, nil
}

func (r *providerRepository) ReplaceSpecialistTags(ctx context.Context, specialistID uuid.UUID, subcategoryIDs []int64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin tags transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM specialist_subcategories WHERE specialist_id = $1`, specialistID); err != nil {
		return fmt.Errorf("failed to clear specialist tags: %w", err)
	}

	for _, subID := range subcategoryIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO specialist_subcategories (specialist_id, subcategory_id) VALUES ($1, $2)`,
			specialistID, subID); err != nil {
			return fmt.Errorf("failed to insert specialist tag: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit tags: %w", err)
	}
	return nil
}

func (r *providerRepository) GetSpecialistTags(ctx context.Context, specialistID uuid.UUID) ([]*model.Subcategory, error) {
	query := `
		SELECT s.id, s.category_id, s.name
		FROM specialist_subcategories st
		JOIN subcategories s ON s.id = st.subcategory_id
		WHERE st.specialist_id = $1
		ORDER BY s.name ASC
	`
	var tags []*model.Subcategory
	if err := r.db.SelectContext(ctx, &tags, query, specialistID); err != nil {
		return nil, fmt.Errorf("failed to get specialist tags: %w", err)
	}
	return tags, nil
}

func (r *providerRepository) UpsertVenue(ctx context.Context, v *model.VenueProfile) error {
	query := `
		INSERT INTO venue_profiles (id, description, address, capacity, latitude, longitude, category_id, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			description = EXCLUDED.description,
			address = EXCLUDED.address,
			capacity = EXCLUDED.capacity,
			latitude = EXCLUDED.latitude,
			longitude = EXCLUDED.longitude,
			category_id = EXCLUDED.category_id,
			updated_at = EXCLUDED.updated_at
	`
	v.UpdatedAt = time.Now()
	_, err := r.db.ExecContext(ctx, query,
		v.ID, v.Description, v.Address, v.Capacity, v.Latitude, v.Longitude, v.CategoryID, v.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert venue profile: %w", err)
	}
	return nil
}

func (r *providerRepository) GetVenue(ctx context.Context, id uuid.UUID) (*model.VenueProfile, error) {
	query := `
		SELECT id, description, address, capacity, latitude, longitude, category_id, updated_at
		FROM venue_profiles
		WHERE id = $1
	`
	var v model.VenueProfile
	if err := r.db.GetContext(ctx, &v, query, id); err != nil {
		return nil, fmt.Errorf("failed to get venue profile: %w", notFound(err))
	}
	return &v, nil
}

func (r *providerRepository) GetSummary(ctx context.Context, id uuid.UUID) (*model.ProviderSummary, error) {
	query := providerSearchView + ` AND p.id = $1`
	var s model.ProviderSummary
	if err := r.db.GetContext(ctx, &s, query, id); err != nil {
		return nil, fmt.Errorf("failed to get provider summary: %w", notFound(err))
	}
	return &s, nil
}

func (r *providerRepository) Search(ctx context.Context, filters *model.ProviderSearchFilters) ([]*model.ProviderSummary, error) {
	query := providerSearchView
	args := []interface{}{}
	argCount := 1

	if filters.Role != nil {
		query += fmt.Sprintf(" AND p.role = $%d", argCount)
		args = append(args, *filters.Role)
		argCount++
	}
	if filters.CategoryLike != "" {
		query += fmt.Sprintf(" AND c.name ILIKE $%d", argCount)
		args = append(args, "%"+filters.CategoryLike+"%")
		argCount++
	}
	if filters.CityLike != "" {
		query += fmt.Sprintf(" AND p.city ILIKE $%d", argCount)
		args = append(args, "%"+filters.CityLike+"%")
		argCount++
	}
	if filters.MaxPrice != nil {
		query += fmt.Sprintf(" AND sp.price_start <= $%d", argCount)
		args = append(args, *filters.MaxPrice)
		argCount++
	}
	if filters.TextQuery != "" {
		query += fmt.Sprintf(" AND (p.full_name ILIKE $%d OR COALESCE(sp.bio, vp.description) ILIKE $%d)", argCount, argCount)
		args = append(args, "%"+filters.TextQuery+"%")
		argCount++
	}

	limit := filters.Limit
	if limit <= 0 || limit > 50 {
		limit = 20
	}
	query += fmt.Sprintf(" ORDER BY r.avg_rating DESC NULLS LAST LIMIT $%d", argCount)
	args = append(args, limit)

	var results []*model.ProviderSummary
	if err := r.db.SelectContext(ctx, &results, query, args...); err != nil {
		return nil, fmt.Errorf("failed to search providers: %w", err)
	}
	return results, nil
}
