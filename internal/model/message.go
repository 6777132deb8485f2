package model

import (
	"time"

	"github.com/google/uuid"
)

// Message is one direct chat message between two profiles.
type Message struct {
	ID         uuid.UUID `json:"id" db:"id"`
	SenderID   uuid.UUID `json:"sender_id" db:"sender_id"`
	ReceiverID uuid.UUID `json:"receiver_id" db:"receiver_id"`
	Content    string    `json:"content" db:"content"`
	IsRead     bool      `json:"is_read" db:"is_read"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// SendMessageRequest optionally carries a client-generated ID so the
// sender can reconcile its optimistic copy against the realtime echo.
type SendMessageRequest struct {
	ID      *uuid.UUID `json:"id"`
	Content string     `json:"content" binding:"required,max=4000"`
}

// Conversation is one row of the chat list: the peer plus the latest
// message and unread count.
type Conversation struct {
	PeerID      uuid.UUID `json:"peer_id" db:"peer_id"`
	PeerName    *string   `json:"peer_name" db:"peer_name"`
	PeerAvatar  *string   `json:"peer_avatar" db:"peer_avatar"`
	LastMessage string    `json:"last_message" db:"last_message"`
	LastSentAt  time.Time `json:"last_sent_at" db:"last_sent_at"`
	UnreadCount int       `json:"unread_count" db:"unread_count"`
}

// CategoryMessage is one message in a public per-category room.
type CategoryMessage struct {
	ID         int64     `json:"id" db:"id"`
	CategoryID int64     `json:"category_id" db:"category_id"`
	SenderID   uuid.UUID `json:"sender_id" db:"sender_id"`
	Content    string    `json:"content" db:"content"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`

	SenderName   *string `json:"sender_name,omitempty" db:"sender_name"`
	SenderAvatar *string `json:"sender_avatar,omitempty" db:"sender_avatar"`
}

// Chat event types pushed over the realtime broker.
const (
	ChatEventMessage         = "message"
	ChatEventCategoryMessage = "category_message"
)

// ChatEvent is the typed envelope delivered to chat subscribers.
type ChatEvent struct {
	Type            string           `json:"type"`
	Message         *Message         `json:"message,omitempty"`
	CategoryMessage *CategoryMessage `json:"category_message,omitempty"`
}
