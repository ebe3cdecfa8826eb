package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ConsultationService/pkg/types"
)

// AvailabilityDeclaration is the raw input a counselor submits.
// Exactly one of Date or DayOfWeek is set. It is never stored: day-of-week
// declarations are expanded into dated ones by Dates.
type AvailabilityDeclaration struct {
	CounselorID uuid.UUID
	Date        *time.Time
	DayOfWeek   *time.Weekday
	FromDate    time.Time
	Weeks       int
	StartTime   types.TimeString
	EndTime     types.TimeString
	UnitMinutes int
}

// Dates returns the calendar dates this declaration covers
func (d *AvailabilityDeclaration) Dates() ([]time.Time, error) {
	switch {
	case d.Date != nil && d.DayOfWeek != nil:
		return nil, fmt.Errorf("%w: date and dayOfWeek are mutually exclusive", ErrInvalidInput)
	case d.Date != nil:
		return []time.Time{NormalizeDate(*d.Date)}, nil
	case d.DayOfWeek != nil:
		return ExpandWeekly(*d.DayOfWeek, d.FromDate, d.Weeks)
	default:
		return nil, fmt.Errorf("%w: either date or dayOfWeek is required", ErrInvalidInput)
	}
}

// Slots generates candidates for every covered date
func (d *AvailabilityDeclaration) Slots() ([]AvailabilitySlot, error) {
	dates, err := d.Dates()
	if err != nil {
		return nil, err
	}

	unit := d.UnitMinutes
	if unit == 0 {
		unit = DefaultSlotDurationMinutes
	}

	var slots []AvailabilitySlot
	for _, date := range dates {
		daySlots, err := GenerateSlots(d.CounselorID, date, d.StartTime, d.EndTime, unit)
		if err != nil {
			return nil, err
		}
		slots = append(slots, daySlots...)
	}
	return slots, nil
}
