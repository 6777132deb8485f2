package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/altynbek8/ServiceApp/internal/model"
	"github.com/altynbek8/ServiceApp/internal/repository"
)

func (r *profileRepository) Create(ctx context.Context, p *model.Profile) error {
	query := `
		INSERT INTO profiles (
			id, email, password_hash, full_name, avatar_url, role, city,
			phone, push_token, is_admin, is_banned, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt

	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.Email,
		p.PasswordHash,
		p.FullName,
		p.AvatarURL,
		p.Role,
		p.City,
		p.Phone,
		p.PushToken,
		p.IsAdmin,
		p.IsBanned,
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err, "") {
			return fmt.Errorf("email already registered: %w", repository.ErrDuplicate)
		}
		return fmt.Errorf("failed to create profile: %w", err)
	}
	return nil
}

const profileColumns = `
	id, email, password_hash, full_name, avatar_url, role, city, phone,
	push_token, is_admin, is_banned, created_at, updated_at
`

func (r *profileRepository) Get(ctx context.Context, id uuid.UUID) (*model.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1`
	var p model.Profile
	if err := r.db.GetContext(ctx, &p, query, id); err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", notFound(err))
	}
	return &p, nil
}

func (r *profileRepository) GetByEmail(ctx context.Context, email string) (*model.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE lower(email) = lower($1)`
	var p model.Profile
	if err := r.db.GetContext(ctx, &p, query, email); err != nil {
		return nil, fmt.Errorf("failed to get profile by email: %w", notFound(err))
	}
	return &p, nil
}

func (r *profileRepository) Update(ctx context.Context, p *model.Profile) error {
	query := `
		UPDATE profiles
		SET full_name = $1, avatar_url = $2, city = $3, phone = $4, updated_at = $5
		WHERE id = $6
	`
	p.UpdatedAt = time.Now()
	result, err := r.db.ExecContext(ctx, query,
		p.FullName, p.AvatarURL, p.City, p.Phone, p.UpdatedAt, p.ID)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	return requireRow(result, "profile")
}

func (r *profileRepository) UpdateRole(ctx context.Context, id uuid.UUID, role model.UserRole) error {
	query := `UPDATE profiles SET role = $1, updated_at = $2 WHERE id = $3`
	result, err := r.db.ExecContext(ctx, query, role, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update role: %w", err)
	}
	return requireRow(result, "profile")
}

func (r *profileRepository) UpdatePushToken(ctx context.Context, id uuid.UUID, token string) error {
	query := `UPDATE profiles SET push_token = $1, updated_at = $2 WHERE id = $3`
	result, err := r.db.ExecContext(ctx, query, token, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update push token: %w", err)
	}
	return requireRow(result, "profile")
}

func (r *profileRepository) SetBanned(ctx context.Context, id uuid.UUID, banned bool) error {
	query := `UPDATE profiles SET is_banned = $1, updated_at = $2 WHERE id = $3`
	result, err := r.db.ExecContext(ctx, query, banned, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update ban flag: %w", err)
	}
	return requireRow(result, "profile")
}

func (r *profileRepository) Delete(ctx context.Context, id uuid.UUID) error {
	// Provider extensions, portfolio, favorites and blocks cascade via
	// foreign keys; bookings and reviews are kept for the other party.
	query := `DELETE FROM profiles WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	return requireRow(result, "profile")
}

func (r *profileRepository) List(ctx context.Context, filters *model.ProfileFilters) ([]*model.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE 1=1`
	args := []interface{}{}
	argCount := 1

	if filters.Role != nil {
		query += fmt.Sprintf(" AND role = $%d", argCount)
		args = append(args, *filters.Role)
		argCount++
	}
	if filters.Banned != nil {
		query += fmt.Sprintf(" AND is_banned = $%d", argCount)
		args = append(args, *filters.Banned)
		argCount++
	}
	if filters.Search != "" {
		query += fmt.Sprintf(" AND (full_name ILIKE $%d OR email ILIKE $%d)", argCount, argCount)
		args = append(args, "%"+filters.Search+"%")
		argCount++
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argCount, argCount+1)
	args = append(args, filters.Limit(), filters.Offset())

	var profiles []*model.Profile
	if err := r.db.SelectContext(ctx, &profiles, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	return profiles, nil
}
