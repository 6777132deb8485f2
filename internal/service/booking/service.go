package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/altynbek8/ServiceApp/internal/model"
	"github.com/altynbek8/ServiceApp/internal/repository"
	"github.com/altynbek8/ServiceApp/internal/service/notification"
	apperrors "github.com/altynbek8/ServiceApp/pkg/errors"
	"github.com/altynbek8/ServiceApp/pkg/metrics"
)

// Service owns the slot calendar: availability resolution, the booking
// lifecycle and manual blocks.
type Service struct {
	repo        repository.BookingRepository
	blockRepo   repository.BlockRepository
	profileRepo repository.ProfileRepository
	notifSvc    *notification.Service
	metrics     *metrics.Metrics
}

func NewService(repo repository.BookingRepository, blockRepo repository.BlockRepository, profileRepo repository.ProfileRepository, notifSvc *notification.Service, m *metrics.Metrics) *Service {
	return &Service{
		repo:        repo,
		blockRepo:   blockRepo,
		profileRepo: profileRepo,
		notifSvc:    notifSvc,
		metrics:     m,
	}
}

// Resolve computes the day schedule for one (provider, date) pair:
// every grid slot tagged free, booked or blocked. A booking takes
// precedence over a block on the same slot. Storage errors surface;
// a failed read never renders as a free day.
func (s *Service) Resolve(ctx context.Context, providerID uuid.UUID, date string) (*model.DaySchedule, error) {
	if _, err := model.ParseDate(date); err != nil {
		return nil, apperrors.BadRequest("invalid date", err)
	}

	bookings, err := s.repo.ListActiveForDay(ctx, providerID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load bookings: %w", err)
	}
	blocks, err := s.blockRepo.ListForDay(ctx, providerID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load blocks: %w", err)
	}

	booked := make(map[string]*model.Booking, len(bookings))
	for _, b := range bookings {
		if slot := b.Slot(); slot != "" {
			booked[slot] = b
		}
	}
	blocked := make(map[string]bool, len(blocks))
	for _, bl := range blocks {
		blocked[bl.Time] = true
	}

	schedule := &model.DaySchedule{
		ProviderID: providerID.String(),
		Date:       date,
		Slots:      make([]model.ResolvedSlot, 0, len(model.WorkHours)),
	}
	for _, hour := range model.WorkHours {
		slot := model.ResolvedSlot{Time: hour, State: model.SlotFree}
		if b, ok := booked[hour]; ok {
			slot.State = model.SlotBooked
			slot.Booking = &model.SlotBooking{
				BookingID:  b.ID.String(),
				Status:     b.Status,
				ClientID:   b.ClientID.String(),
				ClientName: b.ClientName,
			}
		} else if blocked[hour] {
			slot.State = model.SlotBlocked
		}
		schedule.Slots = append(schedule.Slots, slot)
	}
	return schedule, nil
}

// Create books a slot for a client. The slot must be free at resolve
// time; the partial unique index on active bookings closes the race
// between the check and the insert.
func (s *Service) Create(ctx context.Context, clientID uuid.UUID, req *model.CreateBookingRequest) (*model.Booking, error) {
	if clientID == req.SpecialistID {
		return nil, apperrors.BadRequest("cannot book yourself", nil)
	}
	if _, err := model.ParseDate(req.Date); err != nil {
		return nil, apperrors.BadRequest("invalid date", err)
	}
	if !model.IsWorkHour(req.Time) {
		return nil, apperrors.BadRequest("time is outside working hours", nil)
	}
	// The calendar renders past days, but writes to them are refused.
	if slotTime, err := time.ParseInLocation(model.DateTimeLayout, model.MakeDateTime(req.Date, req.Time), time.Local); err == nil && slotTime.Before(time.Now()) {
		return nil, apperrors.BadRequest("slot is in the past", nil)
	}

	provider, err := s.profileRepo.Get(ctx, req.SpecialistID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("provider", err)
		}
		return nil, fmt.Errorf("failed to load provider: %w", err)
	}
	if provider.Role == nil || !provider.Role.IsProvider() {
		return nil, apperrors.BadRequest("profile does not accept bookings", nil)
	}

	schedule, err := s.Resolve(ctx, req.SpecialistID, req.Date)
	if err != nil {
		return nil, err
	}
	if slot := schedule.Slot(req.Time); slot == nil || slot.State != model.SlotFree {
		s.metrics.BookingConflicts.Inc()
		return nil, apperrors.Conflict("slot is not available", repository.ErrSlotTaken)
	}

	b := &model.Booking{
		ClientID:     clientID,
		SpecialistID: req.SpecialistID,
		DateTime:     model.MakeDateTime(req.Date, req.Time),
		Status:       model.BookingStatusPending,
		Message:      req.Message,
	}
	if err := s.repo.Create(ctx, b); err != nil {
		if errors.Is(err, repository.ErrSlotTaken) {
			s.metrics.BookingConflicts.Inc()
			return nil, apperrors.Conflict("slot is not available", err)
		}
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}
	s.metrics.BookingsCreated.Inc()

	s.notifSvc.Notify(ctx, req.SpecialistID,
		"Новая заявка",
		fmt.Sprintf("Новая заявка на %s в %s", req.Date, req.Time))

	return b, nil
}

// UpdateStatus applies a provider decision. Only the booked provider
// may act, and only along the machine: pending to confirmed or
// rejected, confirmed to completed.
func (s *Service) UpdateStatus(ctx context.Context, providerID, bookingID uuid.UUID, status model.BookingStatus) (*model.Booking, error) {
	b, err := s.repo.Get(ctx, bookingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("booking", err)
		}
		return nil, fmt.Errorf("failed to load booking: %w", err)
	}
	if b.SpecialistID != providerID {
		return nil, apperrors.Forbidden("booking belongs to another provider", nil)
	}
	if !b.Status.CanTransition(status) {
		return nil, apperrors.Conflict(
			fmt.Sprintf("cannot change status from %s to %s", b.Status, status), nil)
	}

	if err := s.repo.UpdateStatus(ctx, bookingID, status); err != nil {
		return nil, fmt.Errorf("failed to update booking status: %w", err)
	}
	b.Status = status

	date, slot, _ := model.SplitDateTime(b.DateTime)
	switch status {
	case model.BookingStatusConfirmed:
		s.notifSvc.Notify(ctx, b.ClientID,
			"Запись подтверждена",
			fmt.Sprintf("Ваша запись на %s в %s подтверждена", date, slot))
	case model.BookingStatusRejected:
		s.notifSvc.Notify(ctx, b.ClientID,
			"Запись отклонена",
			fmt.Sprintf("Ваша запись на %s в %s отклонена", date, slot))
	case model.BookingStatusCompleted:
		s.notifSvc.Notify(ctx, b.ClientID,
			"Запись завершена",
			"Оставьте отзыв о визите")
	}

	return b, nil
}

func (s *Service) List(ctx context.Context, filters *model.BookingFilters) ([]*model.Booking, error) {
	bookings, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}

// ToggleBlock flips the manual block on one slot. Blocking a slot an
// active booking occupies is refused; unblocking a slot with no block
// reports not found.
func (s *Service) ToggleBlock(ctx context.Context, providerID uuid.UUID, req *model.ToggleBlockRequest) (*model.ToggleResult, error) {
	if _, err := model.ParseDate(req.Date); err != nil {
		return nil, apperrors.BadRequest("invalid date", err)
	}
	if !model.IsWorkHour(req.Time) {
		return nil, apperrors.BadRequest("time is outside working hours", nil)
	}

	exists, err := s.blockRepo.Exists(ctx, providerID, req.Date, req.Time)
	if err != nil {
		return nil, fmt.Errorf("failed to check block: %w", err)
	}

	if exists {
		if err := s.blockRepo.Delete(ctx, providerID, req.Date, req.Time); err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("failed to remove block: %w", err)
		}
		return &model.ToggleResult{Date: req.Date, Time: req.Time, Blocked: false}, nil
	}

	schedule, err := s.Resolve(ctx, providerID, req.Date)
	if err != nil {
		return nil, err
	}
	if slot := schedule.Slot(req.Time); slot != nil && slot.State == model.SlotBooked {
		return nil, apperrors.Conflict("slot has an active booking", nil)
	}

	block := &model.ManualBlock{
		SpecialistID: providerID,
		Date:         req.Date,
		Time:         req.Time,
	}
	if err := s.blockRepo.Create(ctx, block); err != nil {
		return nil, fmt.Errorf("failed to create block: %w", err)
	}
	return &model.ToggleResult{Date: req.Date, Time: req.Time, Blocked: true}, nil
}

// FullyBusyDates lists the upcoming days on which every grid slot is
// taken, for calendar shading.
func (s *Service) FullyBusyDates(ctx context.Context, providerID uuid.UUID) ([]string, error) {
	dates, err := s.repo.FullyBusyDates(ctx, providerID, len(model.WorkHours))
	if err != nil {
		return nil, fmt.Errorf("failed to compute busy dates: %w", err)
	}
	return dates, nil
}
