package model

type CategoryType string

const (
	CategoryTypeSpecialist CategoryType = "specialist"
	CategoryTypeVenue      CategoryType = "venue"
)

type Category struct {
	ID       int64        `json:"id" db:"id"`
	Name     string       `json:"name" db:"name"`
	Type     CategoryType `json:"type" db:"type"`
	ImageURL *string      `json:"image_url" db:"image_url"`
	BgColor  *string      `json:"bg_color" db:"bg_color"`
}

type Subcategory struct {
	ID         int64  `json:"id" db:"id"`
	CategoryID int64  `json:"category_id" db:"category_id"`
	Name       string `json:"name" db:"name"`
}
