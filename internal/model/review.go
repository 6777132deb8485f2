package model

import (
	"time"

	"github.com/google/uuid"
)

type Review struct {
	ID        uuid.UUID `json:"id" db:"id"`
	ClientID  uuid.UUID `json:"client_id" db:"client_id"`
	TargetID  uuid.UUID `json:"target_id" db:"target_id"`
	Rating    int       `json:"rating" db:"rating"`
	Comment   *string   `json:"comment" db:"comment"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	ClientName   *string `json:"client_name,omitempty" db:"client_name"`
	ClientAvatar *string `json:"client_avatar,omitempty" db:"client_avatar"`
}

type CreateReviewRequest struct {
	TargetID uuid.UUID `json:"target_id" binding:"required"`
	Rating   int       `json:"rating" binding:"required,min=1,max=5"`
	Comment  *string   `json:"comment" binding:"omitempty,max=2000"`
}

type Favorite struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	TargetID  uuid.UUID `json:"target_id" db:"target_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
