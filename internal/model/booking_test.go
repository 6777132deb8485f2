package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBookingStatusTransitions(t *testing.T) {
	cases := []struct {
		from    BookingStatus
		to      BookingStatus
		allowed bool
	}{
		{BookingStatusPending, BookingStatusConfirmed, true},
		{BookingStatusPending, BookingStatusRejected, true},
		{BookingStatusPending, BookingStatusCompleted, false},
		{BookingStatusConfirmed, BookingStatusCompleted, true},
		{BookingStatusConfirmed, BookingStatusRejected, false},
		{BookingStatusConfirmed, BookingStatusPending, false},
		{BookingStatusRejected, BookingStatusConfirmed, false},
		{BookingStatusRejected, BookingStatusPending, false},
		{BookingStatusCompleted, BookingStatusConfirmed, false},
		{BookingStatusCompleted, BookingStatusPending, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanTransition(tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestBookingStatusActive(t *testing.T) {
	// Only rejection frees the slot; completed bookings stay in history.
	assert.True(t, BookingStatusPending.Active())
	assert.True(t, BookingStatusConfirmed.Active())
	assert.True(t, BookingStatusCompleted.Active())
	assert.False(t, BookingStatusRejected.Active())
}

func TestBookingDateAndSlot(t *testing.T) {
	b := &Booking{DateTime: "2026-03-15 10:00"}
	assert.Equal(t, "2026-03-15", b.Date())
	assert.Equal(t, "10:00", b.Slot())

	malformed := &Booking{DateTime: "garbage"}
	assert.Equal(t, "", malformed.Slot())
}

func TestUserRoleIsProvider(t *testing.T) {
	assert.True(t, RoleSpecialist.IsProvider())
	assert.True(t, RoleVenue.IsProvider())
	assert.False(t, RoleClient.IsProvider())
	assert.False(t, RoleAdmin.IsProvider())
}
