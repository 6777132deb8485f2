package chat

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/altynbek8/ServiceApp/internal/model"
	"github.com/altynbek8/ServiceApp/internal/repository"
	"github.com/altynbek8/ServiceApp/internal/service/notification"
	apperrors "github.com/altynbek8/ServiceApp/pkg/errors"
	"github.com/altynbek8/ServiceApp/pkg/logger"
	"github.com/altynbek8/ServiceApp/pkg/messaging"
	"github.com/altynbek8/ServiceApp/pkg/metrics"
)

// Service stores chat messages and fans them out over the broker.
// Each user listens on one channel; category rooms have their own.
type Service struct {
	repo     repository.MessageRepository
	broker   messaging.Broker
	notifSvc *notification.Service
	logger   *logger.Logger
	metrics  *metrics.Metrics
}

func NewService(repo repository.MessageRepository, broker messaging.Broker, notifSvc *notification.Service, logger *logger.Logger, m *metrics.Metrics) *Service {
	return &Service{
		repo:     repo,
		broker:   broker,
		notifSvc: notifSvc,
		logger:   logger,
		metrics:  m,
	}
}

// UserChannel is the broker channel carrying a user's incoming chat
// events.
func UserChannel(userID uuid.UUID) string {
	return "chat:user:" + userID.String()
}

// CategoryChannel carries a public category room.
func CategoryChannel(categoryID int64) string {
	return fmt.Sprintf("chat:category:%d", categoryID)
}

// Send persists a direct message and publishes it to both
// participants. A replayed client-generated ID is acknowledged without
// a second store or broadcast, so retries cannot duplicate messages.
func (s *Service) Send(ctx context.Context, senderID, receiverID uuid.UUID, req *model.SendMessageRequest) (*model.Message, error) {
	if senderID == receiverID {
		return nil, apperrors.BadRequest("cannot message yourself", nil)
	}

	m := &model.Message{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    req.Content,
	}
	if req.ID != nil {
		m.ID = *req.ID
	}

	if err := s.repo.Create(ctx, m); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return m, nil
		}
		return nil, fmt.Errorf("failed to store message: %w", err)
	}
	s.metrics.MessagesSent.Inc()

	event := model.ChatEvent{Type: model.ChatEventMessage, Message: m}
	for _, channel := range []string{UserChannel(receiverID), UserChannel(senderID)} {
		if err := s.broker.Publish(ctx, channel, event); err != nil {
			s.logger.Error(err, "failed to publish chat event", map[string]interface{}{
				"channel": channel,
			})
		}
	}

	preview := req.Content
	if len(preview) > 80 {
		preview = preview[:80]
	}
	s.notifSvc.Notify(ctx, receiverID, "Новое сообщение", preview)

	return m, nil
}

// History returns the thread between the caller and a peer, oldest
// first, and marks the peer's messages read.
func (s *Service) History(ctx context.Context, userID, peerID uuid.UUID, limit int) ([]*model.Message, error) {
	messages, err := s.repo.ListBetween(ctx, userID, peerID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	if err := s.repo.MarkRead(ctx, userID, peerID); err != nil {
		s.logger.Error(err, "failed to mark thread read", map[string]interface{}{
			"user_id": userID, "peer_id": peerID,
		})
	}
	return messages, nil
}

func (s *Service) Conversations(ctx context.Context, userID uuid.UUID) ([]*model.Conversation, error) {
	return s.repo.ListConversations(ctx, userID)
}

// SendCategory posts to a public category room and broadcasts it.
func (s *Service) SendCategory(ctx context.Context, senderID uuid.UUID, categoryID int64, content string) (*model.CategoryMessage, error) {
	m := &model.CategoryMessage{
		CategoryID: categoryID,
		SenderID:   senderID,
		Content:    content,
	}
	if err := s.repo.CreateCategoryMessage(ctx, m); err != nil {
		return nil, fmt.Errorf("failed to store category message: %w", err)
	}
	s.metrics.MessagesSent.Inc()

	event := model.ChatEvent{Type: model.ChatEventCategoryMessage, CategoryMessage: m}
	if err := s.broker.Publish(ctx, CategoryChannel(categoryID), event); err != nil {
		s.logger.Error(err, "failed to publish category event", map[string]interface{}{
			"category_id": categoryID,
		})
	}
	return m, nil
}

func (s *Service) CategoryHistory(ctx context.Context, categoryID int64, limit int) ([]*model.CategoryMessage, error) {
	return s.repo.ListCategoryMessages(ctx, categoryID, limit)
}

// Subscribe opens the caller's realtime stream. The subscription ends
// with ctx.
func (s *Service) Subscribe(ctx context.Context, userID uuid.UUID) (<-chan []byte, error) {
	return s.broker.Subscribe(ctx, UserChannel(userID))
}

// SubscribeCategory opens a category room stream.
func (s *Service) SubscribeCategory(ctx context.Context, categoryID int64) (<-chan []byte, error) {
	return s.broker.Subscribe(ctx, CategoryChannel(categoryID))
}
