package model

import (
	"time"

	"github.com/google/uuid"
)

// ManualBlock is a provider's explicit closure of one slot absent any
// client booking. Identity is the (specialist_id, date, time) key;
// existence is the whole state.
type ManualBlock struct {
	SpecialistID uuid.UUID `json:"specialist_id" db:"specialist_id"`
	Date         string    `json:"date" db:"date"`
	Time         string    `json:"time" db:"time"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

type ToggleBlockRequest struct {
	Date string `json:"date" binding:"required,calendardate"`
	Time string `json:"time" binding:"required,slot"`
}

// ToggleResult reports which way the toggle went.
type ToggleResult struct {
	Date    string `json:"date"`
	Time    string `json:"time"`
	Blocked bool   `json:"blocked"`
}
