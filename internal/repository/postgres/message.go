package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/altynbek8/ServiceApp/internal/model"
	"github.com/altynbek8/ServiceApp/internal/repository"
)

// Create inserts a direct message. The ID may be client-generated for
// optimistic sends; a replayed ID is reported as ErrDuplicate so the
// caller can skip the realtime echo.
func (r *messageRepository) Create(ctx context.Context, m *model.Message) error {
	query := `
		INSERT INTO messages (id, sender_id, receiver_id, content, is_read, created_at)
		VALUES ($1, $2, $3, $4, false, $5)
		ON CONFLICT (id) DO NOTHING
	`
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	m.CreatedAt = time.Now()
	result, err := r.db.ExecContext(ctx, query,
		m.ID, m.SenderID, m.ReceiverID, m.Content, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return repository.ErrDuplicate
	}
	return nil
}

func (r *messageRepository) ListBetween(ctx context.Context, a, b uuid.UUID, limit int) ([]*model.Message, error) {
	if limit <= 0 {
		limit = 100
	}
	query := `
		SELECT id, sender_id, receiver_id, content, is_read, created_at
		FROM messages
		WHERE (sender_id = $1 AND receiver_id = $2)
		   OR (sender_id = $2 AND receiver_id = $1)
		ORDER BY created_at ASC
		LIMIT $3
	`
	var messages []*model.Message
	if err := r.db.SelectContext(ctx, &messages, query, a, b, limit); err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return messages, nil
}

func (r *messageRepository) MarkRead(ctx context.Context, receiverID, senderID uuid.UUID) error {
	query := `
		UPDATE messages
		SET is_read = true
		WHERE receiver_id = $1 AND sender_id = $2 AND is_read = false
	`
	if _, err := r.db.ExecContext(ctx, query, receiverID, senderID); err != nil {
		return fmt.Errorf("failed to mark messages read: %w", err)
	}
	return nil
}

// ListConversations collapses the message table into one row per peer:
// latest message, its timestamp and the unread count.
func (r *messageRepository) ListConversations(ctx context.Context, userID uuid.UUID) ([]*model.Conversation, error) {
	query := `
		SELECT DISTINCT ON (peer_id)
		       peer_id, p.full_name AS peer_name, p.avatar_url AS peer_avatar,
		       m.content AS last_message, m.created_at AS last_sent_at,
		       u.unread_count
		FROM (
			SELECT *,
			       CASE WHEN sender_id = $1 THEN receiver_id ELSE sender_id END AS peer_id
			FROM messages
			WHERE sender_id = $1 OR receiver_id = $1
		) m
		JOIN profiles p ON p.id = m.peer_id
		JOIN LATERAL (
			SELECT COUNT(*) AS unread_count
			FROM messages
			WHERE receiver_id = $1 AND sender_id = m.peer_id AND is_read = false
		) u ON true
		ORDER BY peer_id, m.created_at DESC
	`
	var conversations []*model.Conversation
	if err := r.db.SelectContext(ctx, &conversations, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}
	return conversations, nil
}

func (r *messageRepository) CreateCategoryMessage(ctx context.Context, m *model.CategoryMessage) error {
	query := `
		INSERT INTO category_messages (category_id, sender_id, content, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	m.CreatedAt = time.Now()
	if err := r.db.GetContext(ctx, &m.ID, query, m.CategoryID, m.SenderID, m.Content, m.CreatedAt); err != nil {
		return fmt.Errorf("failed to create category message: %w", err)
	}
	return nil
}

func (r *messageRepository) ListCategoryMessages(ctx context.Context, categoryID int64, limit int) ([]*model.CategoryMessage, error) {
	if limit <= 0 {
		limit = 100
	}
	query := `
		SELECT cm.id, cm.category_id, cm.sender_id, cm.content, cm.created_at,
		       p.full_name AS sender_name, p.avatar_url AS sender_avatar
		FROM category_messages cm
		JOIN profiles p ON p.id = cm.sender_id
		WHERE cm.category_id = $1
		ORDER BY cm.created_at DESC
		LIMIT $2
	`
	var messages []*model.CategoryMessage
	if err := r.db.SelectContext(ctx, &messages, query, categoryID, limit); err != nil {
		return nil, fmt.Errorf("failed to list category messages: %w", err)
	}
	return messages, nil
}
