package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/altynbek8/ServiceApp/internal/model"
	"github.com/altynbek8/ServiceApp/internal/repository"
	"github.com/altynbek8/ServiceApp/pkg/logger"
)

// Service is the notification sink. Callers hand off a recipient,
// title and body; the sink persists the in-app row and enqueues an
// outbox event for push delivery. A sink failure never propagates to
// the triggering operation.
type Service struct {
	repo        repository.NotificationRepository
	profileRepo repository.ProfileRepository
	outboxRepo  repository.OutboxRepository
	logger      *logger.Logger
}

func NewService(repo repository.NotificationRepository, profileRepo repository.ProfileRepository, outboxRepo repository.OutboxRepository, logger *logger.Logger) *Service {
	return &Service{
		repo:        repo,
		profileRepo: profileRepo,
		outboxRepo:  outboxRepo,
		logger:      logger,
	}
}

// Notify stores the notification and enqueues its push. Errors are
// logged and swallowed so booking and chat flows are never blocked by
// notification trouble.
func (s *Service) Notify(ctx context.Context, recipientID uuid.UUID, title, body string) {
	n := &model.Notification{
		UserID: recipientID,
		Title:  title,
		Body:   body,
	}
	if err := s.repo.Create(ctx, n); err != nil {
		s.logger.Error(err, "failed to store notification", map[string]interface{}{
			"recipient_id": recipientID,
		})
		return
	}

	payload := model.PushPayload{
		RecipientID: recipientID,
		Title:       title,
		Body:        body,
	}
	if profile, err := s.profileRepo.Get(ctx, recipientID); err == nil {
		payload.PushToken = profile.PushToken
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		s.logger.Error(err, "failed to marshal push payload")
		return
	}
	event := &model.OutboxEvent{
		EventType: model.EventTypePush,
		Payload:   raw,
	}
	if err := s.outboxRepo.Create(ctx, event); err != nil {
		s.logger.Error(err, "failed to enqueue push event", map[string]interface{}{
			"recipient_id": recipientID,
		})
	}
}

func (s *Service) List(ctx context.Context, userID uuid.UUID, limit int) ([]*model.Notification, error) {
	notifications, err := s.repo.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, nil
}

func (s *Service) MarkRead(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) error {
	if err := s.repo.MarkRead(ctx, userID, ids); err != nil {
		return fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return nil
}
