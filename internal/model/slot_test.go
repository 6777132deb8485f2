package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkHoursGrid(t *testing.T) {
	require.Len(t, WorkHours, 13)
	assert.Equal(t, "09:00", WorkHours[0])
	assert.Equal(t, "21:00", WorkHours[len(WorkHours)-1])

	// The grid is strictly ascending.
	for i := 1; i < len(WorkHours); i++ {
		assert.Less(t, WorkHours[i-1], WorkHours[i])
	}
}

func TestIsWorkHour(t *testing.T) {
	assert.True(t, IsWorkHour("09:00"))
	assert.True(t, IsWorkHour("21:00"))
	assert.False(t, IsWorkHour("08:00"))
	assert.False(t, IsWorkHour("22:00"))
	assert.False(t, IsWorkHour("09:30"))
	assert.False(t, IsWorkHour(""))
}

func TestParseDate(t *testing.T) {
	_, err := ParseDate("2026-03-15")
	assert.NoError(t, err)

	// Past dates are valid, the grid renders for any day.
	_, err = ParseDate("2020-01-01")
	assert.NoError(t, err)

	for _, bad := range []string{"2026-3-15", "15-03-2026", "2026-03-15 10:00", "tomorrow", ""} {
		_, err := ParseDate(bad)
		assert.Error(t, err, "expected %q to be rejected", bad)
	}
}

func TestMakeAndSplitDateTime(t *testing.T) {
	dt := MakeDateTime("2026-03-15", "10:00")
	assert.Equal(t, "2026-03-15 10:00", dt)

	date, slot, err := SplitDateTime(dt)
	require.NoError(t, err)
	assert.Equal(t, "2026-03-15", date)
	assert.Equal(t, "10:00", slot)

	_, _, err = SplitDateTime("2026-03-15T10:00")
	assert.Error(t, err)
}

func TestDayScheduleHelpers(t *testing.T) {
	schedule := &DaySchedule{
		Date: "2026-03-15",
		Slots: []ResolvedSlot{
			{Time: "09:00", State: SlotFree},
			{Time: "10:00", State: SlotBooked},
			{Time: "11:00", State: SlotBlocked},
			{Time: "12:00", State: SlotFree},
		},
	}

	assert.Equal(t, []string{"09:00", "12:00"}, schedule.FreeSlots())

	slot := schedule.Slot("10:00")
	require.NotNil(t, slot)
	assert.Equal(t, SlotBooked, slot.State)

	assert.Nil(t, schedule.Slot("23:00"))
}
