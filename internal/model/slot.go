package model

import (
	"fmt"
	"time"
)

// WorkHours is the canonical ordered grid of bookable slot labels.
// Every provider shares the same business day; there is no per-provider
// working-hours configuration.
var WorkHours = []string{
	"09:00", "10:00", "11:00", "12:00", "13:00", "14:00",
	"15:00", "16:00", "17:00", "18:00", "19:00", "20:00", "21:00",
}

const (
	// DateLayout is the wire format for calendar dates.
	DateLayout = "2006-01-02"
	// DateTimeLayout matches the stored bookings.date_time text; day
	// scoping relies on its lexical date prefix.
	DateTimeLayout = "2006-01-02 15:04"
)

// IsWorkHour reports whether label is one of the grid slots.
func IsWorkHour(label string) bool {
	for _, h := range WorkHours {
		if h == label {
			return true
		}
	}
	return false
}

// ParseDate validates a calendar date. Past dates are accepted; the
// grid is rendered for any syntactically valid day.
func ParseDate(date string) (time.Time, error) {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", date, err)
	}
	return t, nil
}

// MakeDateTime combines a date and a slot label into the stored
// "YYYY-MM-DD HH:MM" form.
func MakeDateTime(date, slot string) string {
	return date + " " + slot
}

// SplitDateTime splits a stored date_time back into date and slot label.
func SplitDateTime(dateTime string) (date, slot string, err error) {
	t, err := time.Parse(DateTimeLayout, dateTime)
	if err != nil {
		return "", "", fmt.Errorf("invalid date_time %q: %w", dateTime, err)
	}
	return t.Format(DateLayout), t.Format("15:04"), nil
}

type SlotState string

const (
	SlotFree    SlotState = "free"
	SlotBooked  SlotState = "booked"
	SlotBlocked SlotState = "blocked"
)

// SlotBooking is the display payload attached to a booked slot.
type SlotBooking struct {
	BookingID  string        `json:"booking_id"`
	Status     BookingStatus `json:"status"`
	ClientID   string        `json:"client_id"`
	ClientName *string       `json:"client_name,omitempty"`
}

// ResolvedSlot is the computed status of one grid slot for one
// (provider, date) pair. Ephemeral; never persisted.
type ResolvedSlot struct {
	Time    string       `json:"time"`
	State   SlotState    `json:"state"`
	Booking *SlotBooking `json:"booking,omitempty"`
}

// DaySchedule is the resolver result. Date echoes the request so
// clients can discard responses for a date they have navigated away
// from.
type DaySchedule struct {
	ProviderID string         `json:"provider_id"`
	Date       string         `json:"date"`
	Slots      []ResolvedSlot `json:"slots"`
}

// FreeSlots returns the labels still bookable in the schedule.
func (d *DaySchedule) FreeSlots() []string {
	var free []string
	for _, s := range d.Slots {
		if s.State == SlotFree {
			free = append(free, s.Time)
		}
	}
	return free
}

// Slot returns the resolved entry for a label, or nil if the label is
// not part of the grid.
func (d *DaySchedule) Slot(label string) *ResolvedSlot {
	for i := range d.Slots {
		if d.Slots[i].Time == label {
			return &d.Slots[i]
		}
	}
	return nil
}
