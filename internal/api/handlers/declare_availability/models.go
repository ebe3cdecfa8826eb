package declare_availability

import (
	"errors"
	"strings"
	"time"

	"github.com/m04kA/SMC-ConsultationService/internal/domain"
	declareAvailability "github.com/m04kA/SMC-ConsultationService/internal/usecase/declare_availability"
	"github.com/m04kA/SMC-ConsultationService/pkg/types"
)

var (
	errInvalidDate      = errors.New("invalid date")
	errInvalidDayOfWeek = errors.New("invalid day of week")
	errInvalidTime      = errors.New("invalid time")
)

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// DeclareAvailabilityRequest HTTP request model.
// Указывается либо date (разовое объявление), либо dayOfWeek (еженедельное на weeks недель).
type DeclareAvailabilityRequest struct {
	Date        *string `json:"date,omitempty"`      // "2025-03-10"
	DayOfWeek   *string `json:"dayOfWeek,omitempty"` // "monday"
	FromDate    *string `json:"fromDate,omitempty"`
	Weeks       int     `json:"weeks,omitempty"`
	StartTime   string  `json:"startTime"` // "09:00"
	EndTime     string  `json:"endTime"`   // "12:00"
	UnitMinutes int     `json:"unitMinutes,omitempty"`
}

// DeclareAvailabilityResponse HTTP response model
type DeclareAvailabilityResponse struct {
	Dates     []string `json:"dates"`
	Generated int      `json:"generated"`
	Inserted  int      `json:"inserted"`
	Skipped   int      `json:"skipped"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *DeclareAvailabilityRequest) ToUseCaseRequest(session domain.SessionContext) (*declareAvailability.Request, error) {
	req := &declareAvailability.Request{
		Session:     session,
		Weeks:       r.Weeks,
		UnitMinutes: r.UnitMinutes,
	}

	if r.Date != nil {
		d, err := domain.ParseDate(*r.Date)
		if err != nil {
			return nil, errInvalidDate
		}
		req.Date = &d
	}

	if r.DayOfWeek != nil {
		dow, ok := weekdays[strings.ToLower(strings.TrimSpace(*r.DayOfWeek))]
		if !ok {
			return nil, errInvalidDayOfWeek
		}
		req.DayOfWeek = &dow
	}

	if r.FromDate != nil {
		d, err := domain.ParseDate(*r.FromDate)
		if err != nil {
			return nil, errInvalidDate
		}
		req.FromDate = &d
	}

	start, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, errInvalidTime
	}
	end, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, errInvalidTime
	}
	req.StartTime = start
	req.EndTime = end

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *declareAvailability.Response) *DeclareAvailabilityResponse {
	dates := make([]string, 0, len(resp.Dates))
	for _, d := range resp.Dates {
		dates = append(dates, d.Format(domain.DateFormat))
	}
	return &DeclareAvailabilityResponse{
		Dates:     dates,
		Generated: resp.Generated,
		Inserted:  resp.Inserted,
		Skipped:   resp.Skipped,
	}
}
