package model

import (
	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusRejected  BookingStatus = "rejected"
	BookingStatusCompleted BookingStatus = "completed"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusRejected, BookingStatusCompleted:
		return true
	}
	return false
}

// Active reports whether the booking still occupies its slot.
// Rejected bookings free the slot; completed ones keep it (history).
func (s BookingStatus) Active() bool {
	return s != BookingStatusRejected
}

// CanTransition encodes the provider-side status machine:
// pending -> confirmed | rejected, confirmed -> completed.
// rejected and completed are terminal.
func (s BookingStatus) CanTransition(to BookingStatus) bool {
	switch s {
	case BookingStatusPending:
		return to == BookingStatusConfirmed || to == BookingStatusRejected
	case BookingStatusConfirmed:
		return to == BookingStatusCompleted
	}
	return false
}

// Booking is a client's reservation of one provider slot. DateTime is
// stored as "YYYY-MM-DD HH:MM" text; the lexical date prefix is the
// day-scoping key.
type Booking struct {
	Base
	ClientID     uuid.UUID     `json:"client_id" db:"client_id"`
	SpecialistID uuid.UUID     `json:"specialist_id" db:"specialist_id"`
	DateTime     string        `json:"date_time" db:"date_time"`
	Status       BookingStatus `json:"status" db:"status"`
	Message      *string       `json:"message" db:"message"`

	// Joined client identity for provider-facing listings.
	ClientName   *string `json:"client_name,omitempty" db:"client_name"`
	ClientAvatar *string `json:"client_avatar,omitempty" db:"client_avatar"`
	ClientPhone  *string `json:"client_phone,omitempty" db:"client_phone"`

	// Joined provider identity for client-facing listings.
	SpecialistName   *string `json:"specialist_name,omitempty" db:"specialist_name"`
	SpecialistAvatar *string `json:"specialist_avatar,omitempty" db:"specialist_avatar"`
}

// Date returns the lexical date prefix of DateTime.
func (b *Booking) Date() string {
	if len(b.DateTime) < len(DateLayout) {
		return b.DateTime
	}
	return b.DateTime[:len(DateLayout)]
}

// Slot returns the time label component of DateTime, or "" when the
// stored value is malformed.
func (b *Booking) Slot() string {
	_, slot, err := SplitDateTime(b.DateTime)
	if err != nil {
		return ""
	}
	return slot
}

type CreateBookingRequest struct {
	SpecialistID uuid.UUID `json:"specialist_id" binding:"required"`
	Date         string    `json:"date" binding:"required,calendardate"`
	Time         string    `json:"time" binding:"required,slot"`
	Message      *string   `json:"message" binding:"omitempty,max=1000"`
}

type UpdateBookingStatusRequest struct {
	Status BookingStatus `json:"status" binding:"required,oneof=confirmed rejected completed"`
}

type BookingFilters struct {
	ClientID     *uuid.UUID
	SpecialistID *uuid.UUID
	Status       *BookingStatus
	Pagination
}
