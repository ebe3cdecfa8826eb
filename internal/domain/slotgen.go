package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ConsultationService/pkg/types"
)

// GenerateSlots expands [start, end) on date into contiguous units of unitMinutes.
//
// A trailing remainder shorter than unitMinutes is dropped, so no slot is ever
// shorter than the unit. A range shorter than one unit yields no slots.
// start >= end or a unit outside [MinSlotDurationMinutes, MaxSlotDurationMinutes]
// fails with ErrInvalidRange.
func GenerateSlots(counselorID uuid.UUID, date time.Time, start, end types.TimeString, unitMinutes int) ([]AvailabilitySlot, error) {
	if err := start.Validate(); err != nil {
		return nil, fmt.Errorf("%w: start time: %v", ErrInvalidRange, err)
	}
	if err := end.Validate(); err != nil {
		return nil, fmt.Errorf("%w: end time: %v", ErrInvalidRange, err)
	}
	if !start.IsBefore(end) {
		return nil, fmt.Errorf("%w: start %s must be before end %s", ErrInvalidRange, start, end)
	}
	if unitMinutes < MinSlotDurationMinutes || unitMinutes > MaxSlotDurationMinutes {
		return nil, fmt.Errorf("%w: unit %d minutes is outside [%d, %d]",
			ErrInvalidRange, unitMinutes, MinSlotDurationMinutes, MaxSlotDurationMinutes)
	}

	day := NormalizeDate(date)
	count := end.Sub(start) / unitMinutes
	slots := make([]AvailabilitySlot, 0, count)

	from := start
	for i := 0; i < count; i++ {
		to, err := from.AddMinutes(unitMinutes)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidRange, err)
		}
		slots = append(slots, AvailabilitySlot{
			CounselorID: counselorID,
			Date:        day,
			StartTime:   from,
			EndTime:     to,
		})
		from = to
	}

	return slots, nil
}

// ExpandWeekly returns the dates of weeks consecutive occurrences of dayOfWeek,
// starting with the first one on or after fromDate.
func ExpandWeekly(dayOfWeek time.Weekday, fromDate time.Time, weeks int) ([]time.Time, error) {
	if dayOfWeek < time.Sunday || dayOfWeek > time.Saturday {
		return nil, fmt.Errorf("%w: unknown day of week %d", ErrInvalidRange, dayOfWeek)
	}
	if weeks < 1 || weeks > MaxRecurrenceWeeks {
		return nil, fmt.Errorf("%w: weeks %d is outside [1, %d]", ErrInvalidRange, weeks, MaxRecurrenceWeeks)
	}

	first := NormalizeDate(fromDate)
	shift := (int(dayOfWeek) - int(first.Weekday()) + 7) % 7
	first = first.AddDate(0, 0, shift)

	dates := make([]time.Time, 0, weeks)
	for i := 0; i < weeks; i++ {
		dates = append(dates, first.AddDate(0, 0, 7*i))
	}
	return dates, nil
}

// FilterNewSlots drops candidates that start at the same time as, or overlap,
// an existing slot. Candidates are assumed non-overlapping among themselves.
func FilterNewSlots(candidates, existing []AvailabilitySlot) []AvailabilitySlot {
	fresh := make([]AvailabilitySlot, 0, len(candidates))
	for i := range candidates {
		conflict := false
		for j := range existing {
			if candidates[i].Overlaps(&existing[j]) {
				conflict = true
				break
			}
		}
		if !conflict {
			fresh = append(fresh, candidates[i])
		}
	}
	return fresh
}
