package model

import (
	"time"

	"github.com/google/uuid"
)

// SpecialistProfile extends a Profile with specialist-specific fields.
// The row shares its primary key with the owning profile.
type SpecialistProfile struct {
	ID              uuid.UUID `json:"id" db:"id"`
	Bio             *string   `json:"bio" db:"bio"`
	ExperienceYears int       `json:"experience_years" db:"experience_years"`
	PriceStart      int64     `json:"price_start" db:"price_start"`
	CategoryID      *int64    `json:"category_id" db:"category_id"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}

type VenueProfile struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Description *string   `json:"description" db:"description"`
	Address     *string   `json:"address" db:"address"`
	Capacity    int       `json:"capacity" db:"capacity"`
	Latitude    *float64  `json:"latitude" db:"latitude"`
	Longitude   *float64  `json:"longitude" db:"longitude"`
	CategoryID  *int64    `json:"category_id" db:"category_id"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

type UpsertSpecialistRequest struct {
	Bio             *string `json:"bio" binding:"omitempty,max=2000"`
	ExperienceYears int     `json:"experience_years" binding:"min=0,max=80"`
	PriceStart      int64   `json:"price_start" binding:"min=0"`
	CategoryID      *int64  `json:"category_id"`
	SubcategoryIDs  []int64 `json:"subcategory_ids" binding:"omitempty,max=20"`
}

type UpsertVenueRequest struct {
	Description *string  `json:"description" binding:"omitempty,max=2000"`
	Address     *string  `json:"address" binding:"omitempty,max=300"`
	Capacity    int      `json:"capacity" binding:"min=0"`
	Latitude    *float64 `json:"latitude" binding:"omitempty,latitude"`
	Longitude   *float64 `json:"longitude" binding:"omitempty,longitude"`
	CategoryID  *int64   `json:"category_id"`
}

// ProviderSummary is one row of the provider search view: a profile
// joined with its specialist or venue extension and category.
type ProviderSummary struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Role         UserRole  `json:"role" db:"role"`
	FullName     *string   `json:"full_name" db:"full_name"`
	AvatarURL    *string   `json:"avatar_url" db:"avatar_url"`
	City         *string   `json:"city" db:"city"`
	CategoryName *string   `json:"category_name" db:"category_name"`
	Description  *string   `json:"description" db:"description"`
	PriceStart   *int64    `json:"price_start" db:"price_start"`
	AvgRating    *float64  `json:"avg_rating" db:"avg_rating"`
	ReviewCount  int       `json:"review_count" db:"review_count"`
}

// ProviderDetails is the full provider page: summary plus portfolio,
// recent reviews and fully-busy dates for the booking calendar.
type ProviderDetails struct {
	Summary    ProviderSummary    `json:"summary"`
	Specialist *SpecialistProfile `json:"specialist,omitempty"`
	Venue      *VenueProfile      `json:"venue,omitempty"`
	Tags       []Subcategory      `json:"tags,omitempty"`
	Portfolio  []*PortfolioItem   `json:"portfolio"`
	Reviews    []*Review          `json:"reviews"`
	BusyDates  []string           `json:"busy_dates"`
}

// ProviderSearchFilters narrows the search view.
type ProviderSearchFilters struct {
	Role         *UserRole
	CategoryLike string
	CityLike     string
	MaxPrice     *int64
	TextQuery    string
	Limit        int
}
