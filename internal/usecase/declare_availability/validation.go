package declare_availability

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-ConsultationService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.Date == nil && req.DayOfWeek == nil {
		return fmt.Errorf("%w: either date or dayOfWeek is required", ErrInvalidInput)
	}
	if req.Date != nil && req.DayOfWeek != nil {
		return fmt.Errorf("%w: date and dayOfWeek are mutually exclusive", ErrInvalidInput)
	}

	if req.StartTime.IsZero() || req.EndTime.IsZero() {
		return fmt.Errorf("%w: startTime and endTime are required", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}
	if err := req.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid endTime format: %v", ErrInvalidInput, err)
	}

	if !req.StartTime.IsBefore(req.EndTime) {
		return fmt.Errorf("%w: startTime %s must be before endTime %s", ErrInvalidRange, req.StartTime, req.EndTime)
	}

	if req.UnitMinutes != 0 &&
		(req.UnitMinutes < domain.MinSlotDurationMinutes || req.UnitMinutes > domain.MaxSlotDurationMinutes) {
		return fmt.Errorf("%w: unitMinutes must be between %d and %d",
			ErrInvalidRange, domain.MinSlotDurationMinutes, domain.MaxSlotDurationMinutes)
	}

	return nil
}

// validateDates проверяет, что все даты в окне [today, today+advanceDays]
func validateDates(dates []time.Time, today time.Time, advanceDays int) error {
	last := today.AddDate(0, 0, advanceDays)
	for _, d := range dates {
		if d.Before(today) {
			return fmt.Errorf("%w: date %s is in the past", ErrInvalidRange, d.Format(domain.DateFormat))
		}
		if d.After(last) {
			return fmt.Errorf("%w: date %s is more than %d days ahead",
				ErrInvalidRange, d.Format(domain.DateFormat), advanceDays)
		}
	}
	return nil
}
