package search_by_counselor

import (
	"github.com/m04kA/SMC-ConsultationService/internal/domain"
	searchSlots "github.com/m04kA/SMC-ConsultationService/internal/usecase/search_slots"
)

// SlotResponse свободный слот
type SlotResponse struct {
	ID        int64  `json:"id"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// DayResponse слоты консультанта на одну дату
type DayResponse struct {
	Date  string         `json:"date"`
	Slots []SlotResponse `json:"slots"`
}

// SearchResponse HTTP ответ поиска по консультанту
type SearchResponse struct {
	CounselorID   string        `json:"counselorId"`
	CounselorName string        `json:"counselorName"`
	Days          []DayResponse `json:"days"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *searchSlots.ByCounselorResponse) *SearchResponse {
	out := &SearchResponse{
		CounselorID:   resp.Counselor.ID.String(),
		CounselorName: resp.Counselor.Name,
		Days:          make([]DayResponse, 0, len(resp.Days)),
	}
	for _, d := range resp.Days {
		day := DayResponse{
			Date:  d.Date.Format(domain.DateFormat),
			Slots: make([]SlotResponse, 0, len(d.Slots)),
		}
		for _, s := range d.Slots {
			day.Slots = append(day.Slots, SlotResponse{
				ID:        s.ID,
				StartTime: s.StartTime.String(),
				EndTime:   s.EndTime.String(),
			})
		}
		out.Days = append(out.Days, day)
	}
	return out
}
