package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ConsultationService/pkg/types"
)

// AvailabilitySlot is one indivisible bookable unit of a counselor's time.
// Date is a calendar date normalized to midnight UTC.
type AvailabilitySlot struct {
	ID          int64
	CounselorID uuid.UUID
	Date        time.Time
	StartTime   types.TimeString
	EndTime     types.TimeString
	IsBooked    bool
	CreatedAt   time.Time
}

// Overlaps reports whether both slots belong to the same counselor and date
// and their [start, end) intervals intersect.
func (s *AvailabilitySlot) Overlaps(other *AvailabilitySlot) bool {
	if s.CounselorID != other.CounselorID || !SameDate(s.Date, other.Date) {
		return false
	}
	return s.StartTime.Minutes() < other.EndTime.Minutes() &&
		other.StartTime.Minutes() < s.EndTime.Minutes()
}

// HasStarted reports whether the slot start is not after now.
// now is wall-clock time in the service location.
func (s *AvailabilitySlot) HasStarted(now time.Time) bool {
	day, today := NormalizeDate(s.Date), NormalizeDate(now)
	if !day.Equal(today) {
		return day.Before(today)
	}
	return s.StartTime.Minutes() <= now.Hour()*60+now.Minute()
}

// IsOpen returns true if the slot is unbooked and has not started at now
func (s *AvailabilitySlot) IsOpen(now time.Time) bool {
	return !s.IsBooked && !s.HasStarted(now)
}

// NormalizeDate drops the clock part and location, keeping the calendar date
func NormalizeDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SameDate compares calendar dates
func SameDate(a, b time.Time) bool {
	return NormalizeDate(a).Equal(NormalizeDate(b))
}

// Today returns the current calendar date in loc
func Today(now time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return NormalizeDate(now.In(loc))
}

// ParseDate parses YYYY-MM-DD into a normalized date
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return time.Time{}, err
	}
	return NormalizeDate(t), nil
}

// SlotFilter selects slots for listing. Nil fields do not filter.
type SlotFilter struct {
	CounselorID *uuid.UUID
	Date        *time.Time
	FromDate    *time.Time
	OnlyOpen    bool
}
