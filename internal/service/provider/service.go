package provider

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/altynbek8/ServiceApp/internal/model"
	"github.com/altynbek8/ServiceApp/internal/repository"
	apperrors "github.com/altynbek8/ServiceApp/pkg/errors"
)

// The category catalog changes by migration only; ten minutes keeps the
// hot taxonomy endpoints off the database.
const categoryCacheTTL = 10 * time.Minute

// Service manages specialist and venue profile extensions and the
// public provider pages.
type Service struct {
	repo          repository.ProviderRepository
	profileRepo   repository.ProfileRepository
	categoryRepo  repository.CategoryRepository
	portfolioRepo repository.PortfolioRepository
	reviewRepo    repository.ReviewRepository
	bookingRepo   repository.BookingRepository
	categories    *cache.Cache
}

func NewService(
	repo repository.ProviderRepository,
	profileRepo repository.ProfileRepository,
	categoryRepo repository.CategoryRepository,
	portfolioRepo repository.PortfolioRepository,
	reviewRepo repository.ReviewRepository,
	bookingRepo repository.BookingRepository,
) *Service {
	return &Service{
		repo:          repo,
		profileRepo:   profileRepo,
		categoryRepo:  categoryRepo,
		portfolioRepo: portfolioRepo,
		reviewRepo:    reviewRepo,
		bookingRepo:   bookingRepo,
		categories:    cache.New(categoryCacheTTL, 2*categoryCacheTTL),
	}
}

func (s *Service) requireRole(ctx context.Context, id uuid.UUID, role model.UserRole) error {
	profile, err := s.profileRepo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound("profile", err)
		}
		return fmt.Errorf("failed to load profile: %w", err)
	}
	if profile.Role == nil || *profile.Role != role {
		return apperrors.Forbidden(fmt.Sprintf("profile is not a %s", role), nil)
	}
	return nil
}

func (s *Service) UpsertSpecialist(ctx context.Context, userID uuid.UUID, req *model.UpsertSpecialistRequest) (*model.SpecialistProfile, error) {
	if err := s.requireRole(ctx, userID, model.RoleSpecialist); err != nil {
		return nil, err
	}

	sp := &model.SpecialistProfile{
		ID:              userID,
		Bio:             req.Bio,
		ExperienceYears: req.ExperienceYears,
		PriceStart:      req.PriceStart,
		CategoryID:      req.CategoryID,
	}
	if err := s.repo.UpsertSpecialist(ctx, sp); err != nil {
		return nil, err
	}

	if req.SubcategoryIDs != nil {
		if err := s.repo.ReplaceSpecialistTags(ctx, userID, req.SubcategoryIDs); err != nil {
			return nil, err
		}
	}
	return sp, nil
}

func (s *Service) UpsertVenue(ctx context.Context, userID uuid.UUID, req *model.UpsertVenueRequest) (*model.VenueProfile, error) {
	if err := s.requireRole(ctx, userID, model.RoleVenue); err != nil {
		return nil, err
	}

	v := &model.VenueProfile{
		ID:          userID,
		Description: req.Description,
		Address:     req.Address,
		Capacity:    req.Capacity,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		CategoryID:  req.CategoryID,
	}
	if err := s.repo.UpsertVenue(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

// GetDetails assembles the full public provider page.
func (s *Service) GetDetails(ctx context.Context, id uuid.UUID) (*model.ProviderDetails, error) {
	summary, err := s.repo.GetSummary(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("provider", err)
		}
		return nil, err
	}

	details := &model.ProviderDetails{Summary: *summary}

	switch summary.Role {
	case model.RoleSpecialist:
		sp, err := s.repo.GetSpecialist(ctx, id)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		details.Specialist = sp

		tags, err := s.repo.GetSpecialistTags(ctx, id)
		if err != nil {
			return nil, err
		}
		for _, t := range tags {
			details.Tags = append(details.Tags, *t)
		}
	case model.RoleVenue:
		v, err := s.repo.GetVenue(ctx, id)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		details.Venue = v
	}

	portfolio, err := s.portfolioRepo.ListBySpecialist(ctx, id, 0)
	if err != nil {
		return nil, err
	}
	details.Portfolio = portfolio

	reviews, err := s.reviewRepo.ListByTarget(ctx, id, 20)
	if err != nil {
		return nil, err
	}
	details.Reviews = reviews

	busy, err := s.bookingRepo.FullyBusyDates(ctx, id, len(model.WorkHours))
	if err != nil {
		return nil, err
	}
	details.BusyDates = busy

	return details, nil
}

func (s *Service) Search(ctx context.Context, filters *model.ProviderSearchFilters) ([]*model.ProviderSummary, error) {
	return s.repo.Search(ctx, filters)
}

func (s *Service) ListCategories(ctx context.Context, categoryType *model.CategoryType) ([]*model.Category, error) {
	key := "categories:all"
	if categoryType != nil {
		key = "categories:" + string(*categoryType)
	}
	if cached, ok := s.categories.Get(key); ok {
		return cached.([]*model.Category), nil
	}

	categories, err := s.categoryRepo.List(ctx, categoryType)
	if err != nil {
		return nil, err
	}
	s.categories.Set(key, categories, cache.DefaultExpiration)
	return categories, nil
}

func (s *Service) ListSubcategories(ctx context.Context, categoryID int64) ([]*model.Subcategory, error) {
	key := fmt.Sprintf("subcategories:%d", categoryID)
	if cached, ok := s.categories.Get(key); ok {
		return cached.([]*model.Subcategory), nil
	}

	subcategories, err := s.categoryRepo.ListSubcategories(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	s.categories.Set(key, subcategories, cache.DefaultExpiration)
	return subcategories, nil
}
