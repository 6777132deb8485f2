package profile

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/altynbek8/ServiceApp/internal/model"
	"github.com/altynbek8/ServiceApp/internal/repository"
	apperrors "github.com/altynbek8/ServiceApp/pkg/errors"
)

type Service struct {
	repo repository.ProfileRepository
}

func NewService(repo repository.ProfileRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Profile, error) {
	profile, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("profile", err)
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return profile, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req *model.UpdateProfileRequest) (*model.Profile, error) {
	profile, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FullName != nil {
		profile.FullName = req.FullName
	}
	if req.AvatarURL != nil {
		profile.AvatarURL = req.AvatarURL
	}
	if req.City != nil {
		profile.City = req.City
	}
	if req.Phone != nil {
		profile.Phone = req.Phone
	}

	if err := s.repo.Update(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return profile, nil
}

// RegisterPushToken stores the device token used by the push worker.
func (s *Service) RegisterPushToken(ctx context.Context, id uuid.UUID, token string) error {
	if err := s.repo.UpdatePushToken(ctx, id, token); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound("profile", err)
		}
		return fmt.Errorf("failed to register push token: %w", err)
	}
	return nil
}

// SetBanned is the admin moderation switch.
func (s *Service) SetBanned(ctx context.Context, id uuid.UUID, banned bool) error {
	if err := s.repo.SetBanned(ctx, id, banned); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound("profile", err)
		}
		return fmt.Errorf("failed to update ban state: %w", err)
	}
	return nil
}

func (s *Service) List(ctx context.Context, filters *model.ProfileFilters) ([]*model.Profile, error) {
	profiles, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	return profiles, nil
}
