package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/altynbek8/ServiceApp/internal/model"
)

// Sentinel errors shared by all storage backends.
var (
	ErrNotFound = errors.New("not found")
	// ErrSlotTaken maps the partial unique index on active bookings:
	// a second active booking for the same (provider, date_time) key.
	ErrSlotTaken = errors.New("slot already booked")
	// ErrDuplicate marks an idempotent insert that found an existing
	// row (client-generated message IDs).
	ErrDuplicate = errors.New("duplicate row")
)

// All repository interfaces in one file
type (
	ProfileRepository interface {
		Create(ctx context.Context, p *model.Profile) error
		Get(ctx context.Context, id uuid.UUID) (*model.Profile, error)
		GetByEmail(ctx context.Context, email string) (*model.Profile, error)
		Update(ctx context.Context, p *model.Profile) error
		UpdateRole(ctx context.Context, id uuid.UUID, role model.UserRole) error
		UpdatePushToken(ctx context.Context, id uuid.UUID, token string) error
		SetBanned(ctx context.Context, id uuid.UUID, banned bool) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context, filters *model.ProfileFilters) ([]*model.Profile, error)
	}

	CategoryRepository interface {
		List(ctx context.Context, categoryType *model.CategoryType) ([]*model.Category, error)
		ListSubcategories(ctx context.Context, categoryID int64) ([]*model.Subcategory, error)
	}

	ProviderRepository interface {
		UpsertSpecialist(ctx context.Context, sp *model.SpecialistProfile) error
		GetSpecialist(ctx context.Context, id uuid.UUID) (*model.SpecialistProfile, error)
		ReplaceSpecialistTags(ctx context.Context, specialistID uuid.UUID, subcategoryIDs []int64) error
		GetSpecialistTags(ctx context.Context, specialistID uuid.UUID) ([]*model.Subcategory, error)
		UpsertVenue(ctx context.Context, v *model.VenueProfile) error
		GetVenue(ctx context.Context, id uuid.UUID) (*model.VenueProfile, error)
		GetSummary(ctx context.Context, id uuid.UUID) (*model.ProviderSummary, error)
		Search(ctx context.Context, filters *model.ProviderSearchFilters) ([]*model.ProviderSummary, error)
	}

	BookingRepository interface {
		Create(ctx context.Context, b *model.Booking) error
		Get(ctx context.Context, id uuid.UUID) (*model.Booking, error)
		UpdateStatus(ctx context.Context, id uuid.UUID, status model.BookingStatus) error
		List(ctx context.Context, filters *model.BookingFilters) ([]*model.Booking, error)
		// ListActiveForDay returns non-rejected bookings whose
		// date_time starts with the given date.
		ListActiveForDay(ctx context.Context, specialistID uuid.UUID, date string) ([]*model.Booking, error)
		// FullyBusyDates returns dates from today onward on which
		// every grid slot is consumed by an active booking or block.
		FullyBusyDates(ctx context.Context, specialistID uuid.UUID, gridSize int) ([]string, error)
	}

	BlockRepository interface {
		ListForDay(ctx context.Context, specialistID uuid.UUID, date string) ([]*model.ManualBlock, error)
		Exists(ctx context.Context, specialistID uuid.UUID, date, timeLabel string) (bool, error)
		Create(ctx context.Context, b *model.ManualBlock) error
		Delete(ctx context.Context, specialistID uuid.UUID, date, timeLabel string) error
	}

	FavoriteRepository interface {
		Exists(ctx context.Context, userID, targetID uuid.UUID) (bool, error)
		Create(ctx context.Context, f *model.Favorite) error
		Delete(ctx context.Context, userID, targetID uuid.UUID) error
		ListTargets(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	}

	PortfolioRepository interface {
		Create(ctx context.Context, item *model.PortfolioItem) error
		Get(ctx context.Context, id uuid.UUID) (*model.PortfolioItem, error)
		ListBySpecialist(ctx context.Context, specialistID uuid.UUID, limit int) ([]*model.PortfolioItem, error)
		UpdateFlags(ctx context.Context, item *model.PortfolioItem) error
		ClearHero(ctx context.Context, specialistID uuid.UUID) error
		Delete(ctx context.Context, id uuid.UUID) error
	}

	ReviewRepository interface {
		Create(ctx context.Context, r *model.Review) error
		ListByTarget(ctx context.Context, targetID uuid.UUID, limit int) ([]*model.Review, error)
		AverageRating(ctx context.Context, targetID uuid.UUID) (float64, int, error)
	}

	MessageRepository interface {
		Create(ctx context.Context, m *model.Message) error
		ListBetween(ctx context.Context, a, b uuid.UUID, limit int) ([]*model.Message, error)
		MarkRead(ctx context.Context, receiverID, senderID uuid.UUID) error
		ListConversations(ctx context.Context, userID uuid.UUID) ([]*model.Conversation, error)
		CreateCategoryMessage(ctx context.Context, m *model.CategoryMessage) error
		ListCategoryMessages(ctx context.Context, categoryID int64, limit int) ([]*model.CategoryMessage, error)
	}

	NotificationRepository interface {
		Create(ctx context.Context, n *model.Notification) error
		ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*model.Notification, error)
		MarkRead(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) error
	}

	OutboxRepository interface {
		Create(ctx context.Context, event *model.OutboxEvent) error
		GetPendingEventsWithLock(ctx context.Context, limit int) ([]*model.OutboxEvent, error)
		UpdateStatus(ctx context.Context, id uuid.UUID, status model.OutboxStatus, errMsg *string) error
	}
)
