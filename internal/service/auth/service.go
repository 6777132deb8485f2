package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/altynbek8/ServiceApp/internal/email"
	"github.com/altynbek8/ServiceApp/internal/model"
	"github.com/altynbek8/ServiceApp/internal/repository"
	"github.com/altynbek8/ServiceApp/pkg/auth"
	apperrors "github.com/altynbek8/ServiceApp/pkg/errors"
	"github.com/altynbek8/ServiceApp/pkg/logger"
)

type Service struct {
	repo         repository.ProfileRepository
	providerRepo repository.ProviderRepository
	jwtSvc       auth.JWTService
	sender       email.Sender
	logger       *logger.Logger
}

func NewService(repo repository.ProfileRepository, providerRepo repository.ProviderRepository, jwtSvc auth.JWTService, sender email.Sender, logger *logger.Logger) *Service {
	return &Service{
		repo:         repo,
		providerRepo: providerRepo,
		jwtSvc:       jwtSvc,
		sender:       sender,
		logger:       logger,
	}
}

func (s *Service) Register(ctx context.Context, req *model.RegisterRequest) (*model.TokenResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	profile := &model.Profile{
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: string(hash),
		FullName:     &req.FullName,
	}
	if err := s.repo.Create(ctx, profile); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.Conflict("email already registered", err)
		}
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	if err := s.sender.SendWelcome(profile.Email, req.FullName); err != nil {
		s.logger.Error(err, "failed to send welcome email", map[string]interface{}{
			"user_id": profile.ID,
		})
	}

	return s.issueTokens(profile)
}

func (s *Service) Login(ctx context.Context, req *model.LoginRequest) (*model.TokenResponse, error) {
	profile, err := s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.Unauthorized(errors.New("invalid credentials"))
		}
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	if profile.IsBanned {
		return nil, apperrors.Forbidden("account is banned", nil)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperrors.Unauthorized(errors.New("invalid credentials"))
	}

	return s.issueTokens(profile)
}

func (s *Service) Refresh(ctx context.Context, refreshToken string) (*model.TokenResponse, error) {
	claims, err := s.jwtSvc.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperrors.Unauthorized(err)
	}

	profile, err := s.repo.Get(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.Unauthorized(err)
		}
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	if profile.IsBanned {
		return nil, apperrors.Forbidden("account is banned", nil)
	}

	return s.issueTokens(profile)
}

// SelectRole fixes the account role once. The choice is permanent;
// changing role later means a new account.
func (s *Service) SelectRole(ctx context.Context, userID uuid.UUID, role model.UserRole) (*model.Profile, error) {
	profile, err := s.repo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("profile", err)
		}
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	if profile.Role != nil {
		return nil, apperrors.Conflict("role already selected", nil)
	}
	if role == model.RoleAdmin || !role.Valid() {
		return nil, apperrors.BadRequest("invalid role", nil)
	}

	if err := s.repo.UpdateRole(ctx, userID, role); err != nil {
		return nil, fmt.Errorf("failed to set role: %w", err)
	}

	// Providers get their extension row up front so the profile screens
	// have something to render before the first edit.
	switch role {
	case model.RoleSpecialist:
		if err := s.providerRepo.UpsertSpecialist(ctx, &model.SpecialistProfile{ID: userID}); err != nil {
			return nil, fmt.Errorf("failed to seed specialist profile: %w", err)
		}
	case model.RoleVenue:
		if err := s.providerRepo.UpsertVenue(ctx, &model.VenueProfile{ID: userID}); err != nil {
			return nil, fmt.Errorf("failed to seed venue profile: %w", err)
		}
	}

	profile.Role = &role
	return profile, nil
}

// DeleteAccount removes the profile row; dependent rows cascade.
func (s *Service) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	if err := s.repo.Delete(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound("profile", err)
		}
		return fmt.Errorf("failed to delete account: %w", err)
	}
	return nil
}

func (s *Service) issueTokens(profile *model.Profile) (*model.TokenResponse, error) {
	role := ""
	if profile.Role != nil {
		role = string(*profile.Role)
	}

	access, err := s.jwtSvc.GenerateAccessToken(profile.ID, profile.Email, role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	refresh, err := s.jwtSvc.GenerateRefreshToken(profile.ID, profile.Email, role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &model.TokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    24 * 3600,
		User:         profile,
	}, nil
}
