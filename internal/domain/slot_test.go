package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAvailabilitySlot_IsOpen(t *testing.T) {
	slot := AvailabilitySlot{
		Date:      date(t, "2025-03-10"),
		StartTime: ts(t, "10:00"),
		EndTime:   ts(t, "11:00"),
	}

	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{name: "day before", now: time.Date(2025, 3, 9, 23, 0, 0, 0, time.UTC), want: true},
		{name: "same day before start", now: time.Date(2025, 3, 10, 9, 59, 0, 0, time.UTC), want: true},
		{name: "same day at start", now: time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC), want: false},
		{name: "same day after start", now: time.Date(2025, 3, 10, 10, 30, 0, 0, time.UTC), want: false},
		{name: "day after", now: time.Date(2025, 3, 11, 8, 0, 0, 0, time.UTC), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, slot.IsOpen(tt.now))
			assert.Equal(t, !tt.want, slot.HasStarted(tt.now))
		})
	}

	booked := slot
	booked.IsBooked = true
	assert.False(t, booked.IsOpen(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)))
}

func TestAvailabilitySlot_OverlapsEndOfDay(t *testing.T) {
	last := AvailabilitySlot{Date: date(t, "2025-03-10"), StartTime: ts(t, "23:00"), EndTime: ts(t, "24:00")}
	inside := AvailabilitySlot{Date: date(t, "2025-03-10"), StartTime: ts(t, "23:30"), EndTime: ts(t, "24:00")}
	before := AvailabilitySlot{Date: date(t, "2025-03-10"), StartTime: ts(t, "22:00"), EndTime: ts(t, "23:00")}

	assert.True(t, last.Overlaps(&inside))
	assert.False(t, last.Overlaps(&before))
}
