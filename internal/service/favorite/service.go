package favorite

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/altynbek8/ServiceApp/internal/model"
	"github.com/altynbek8/ServiceApp/internal/repository"
	apperrors "github.com/altynbek8/ServiceApp/pkg/errors"
)

type Service struct {
	repo         repository.FavoriteRepository
	providerRepo repository.ProviderRepository
}

func NewService(repo repository.FavoriteRepository, providerRepo repository.ProviderRepository) *Service {
	return &Service{repo: repo, providerRepo: providerRepo}
}

// Toggle adds or removes a favorite and reports the resulting state.
func (s *Service) Toggle(ctx context.Context, userID, targetID uuid.UUID) (bool, error) {
	if userID == targetID {
		return false, apperrors.BadRequest("cannot favorite yourself", nil)
	}

	exists, err := s.repo.Exists(ctx, userID, targetID)
	if err != nil {
		return false, fmt.Errorf("failed to check favorite: %w", err)
	}

	if exists {
		if err := s.repo.Delete(ctx, userID, targetID); err != nil {
			return false, fmt.Errorf("failed to remove favorite: %w", err)
		}
		return false, nil
	}

	if err := s.repo.Create(ctx, &model.Favorite{UserID: userID, TargetID: targetID}); err != nil {
		return false, fmt.Errorf("failed to add favorite: %w", err)
	}
	return true, nil
}

// List returns the user's favorited providers as search-view summaries.
func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]*model.ProviderSummary, error) {
	ids, err := s.repo.ListTargets(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}

	summaries := make([]*model.ProviderSummary, 0, len(ids))
	for _, id := range ids {
		summary, err := s.providerRepo.GetSummary(ctx, id)
		if err != nil {
			// A favorited profile may have been deleted since.
			continue
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}
