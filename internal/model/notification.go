package model

import (
	"time"

	"github.com/google/uuid"
)

// Notification is an in-app notification row. Push delivery happens
// separately through the outbox.
type Notification struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	Title     string    `json:"title" db:"title"`
	Body      string    `json:"body" db:"body"`
	IsRead    bool      `json:"is_read" db:"is_read"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// PushPayload is the notification-sink contract: recipient, title,
// body. The sink owns persistence and delivery; we only hand off.
type PushPayload struct {
	RecipientID uuid.UUID `json:"recipient_id"`
	PushToken   *string   `json:"push_token,omitempty"`
	Title       string    `json:"title"`
	Body        string    `json:"body"`
}

type MarkNotificationsReadRequest struct {
	IDs []uuid.UUID `json:"ids" binding:"required,min=1"`
}
