package portfolio

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
	repo repository.PortfolioRepository
}

func NewService(repo repository.PortfolioRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, req *model.CreatePortfolioItemRequest) (*model.PortfolioItem, error) {
	item := &model.PortfolioItem{
		SpecialistID: ownerID,
		FileURL:      req.FileURL,
		FileType:     req.FileType,
		ThumbnailURL: req.ThumbnailURL,
		InFeed:       true,
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *Service) List(ctx context.Context, ownerID uuid.UUID) ([]*model.PortfolioItem, error) {
	return s.repo.ListBySpecialist(ctx, ownerID, 0)
}

// UpdateFlags patches display flags on an owned item. Promoting an item
// to hero first demotes the owner's current hero; one hero per
// provider.
func (s *Service) UpdateFlags(ctx context.Context, ownerID, itemID uuid.UUID, req *model.UpdatePortfolioItemRequest) (*model.PortfolioItem, error) {
	item, err := s.getOwned(ctx, ownerID, itemID)
	if err != nil {
		return nil, err
	}

	if req.IsHero != nil && *req.IsHero && !item.IsHero {
		if err := s.repo.ClearHero(ctx, ownerID); err != nil {
			return nil, err
		}
	}
	if req.IsHero != nil {
		item.IsHero = *req.IsHero
	}
	if req.IsPinned != nil {
		item.IsPinned = *req.IsPinned
	}
	if req.InFeed != nil {
		item.InFeed = *req.InFeed
	}

	if err := s.repo.UpdateFlags(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *Service) Delete(ctx context.Context, ownerID, itemID uuid.UUID) error {
	if _, err := s.getOwned(ctx, ownerID, itemID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, itemID); err != nil {
		return fmt.Errorf("failed to delete portfolio item: %w", err)
	}
	return nil
}

func (s *Service) getOwned(ctx context.Context, ownerID, itemID uuid.UUID) (*model.PortfolioItem, error) {
	item, err := s.repo.Get(ctx, itemID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("portfolio item", err)
		}
		return nil, err
	}
	if item.SpecialistID != ownerID {
		return nil, apperrors.Forbidden("portfolio item belongs to another profile", nil)
	}
	return item, nil
}
