package model

import (
	"time"

	"github.com/google/uuid"
)

type FileType string

const (
	FileTypeImage FileType = "image"
	FileTypeVideo FileType = "video"
)

type PortfolioItem struct {
	ID           uuid.UUID `json:"id" db:"id"`
	SpecialistID uuid.UUID `json:"specialist_id" db:"specialist_id"`
	FileURL      string    `json:"file_url" db:"file_url"`
	FileType     FileType  `json:"file_type" db:"file_type"`
	ThumbnailURL *string   `json:"thumbnail_url" db:"thumbnail_url"`
	IsHero       bool      `json:"is_hero" db:"is_hero"`
	IsPinned     bool      `json:"is_pinned" db:"is_pinned"`
	InFeed       bool      `json:"in_feed" db:"in_feed"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

type CreatePortfolioItemRequest struct {
	FileURL      string   `json:"file_url" binding:"required,url"`
	FileType     FileType `json:"file_type" binding:"required,oneof=image video"`
	ThumbnailURL *string  `json:"thumbnail_url" binding:"omitempty,url"`
}

// UpdatePortfolioItemRequest patches display flags. Setting IsHero true
// clears the flag on the owner's other items first (one hero per
// provider).
type UpdatePortfolioItemRequest struct {
	IsHero   *bool `json:"is_hero"`
	IsPinned *bool `json:"is_pinned"`
	InFeed   *bool `json:"in_feed"`
}
