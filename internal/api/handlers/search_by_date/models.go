package search_by_date

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

// CounselorSlotsResponse слоты одного консультанта на дату
type CounselorSlotsResponse struct {
	CounselorID   string         `json:"counselorId"`
	CounselorName string         `json:"counselorName"`
	Slots         []SlotResponse `json:"slots"`
}

// SearchResponse HTTP ответ поиска по дате
type SearchResponse struct {
	Date       string                   `json:"date"`
	Counselors []CounselorSlotsResponse `json:"counselors"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *searchSlots.ByDateResponse) *SearchResponse {
	out := &SearchResponse{
		Date:       resp.Date.Format(domain.DateFormat),
		Counselors: make([]CounselorSlotsResponse, 0, len(resp.Counselors)),
	}
	for _, cs := range resp.Counselors {
		item := CounselorSlotsResponse{
			CounselorID:   cs.Counselor.ID.String(),
			CounselorName: cs.Counselor.Name,
			Slots:         make([]SlotResponse, 0, len(cs.Slots)),
		}
		for _, s := range cs.Slots {
			item.Slots = append(item.Slots, SlotResponse{
				ID:        s.ID,
				StartTime: s.StartTime.String(),
				EndTime:   s.EndTime.String(),
			})
		}
		out.Counselors = append(out.Counselors, item)
	}
	return out
}
