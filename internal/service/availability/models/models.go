package models

import (
	"github.com/m04kA/SMC-ConsultationService/internal/domain"
)

// SlotResponse слот консультанта
type SlotResponse struct {
	ID        int64  `json:"id"`
	Date      string `json:"date"`      // YYYY-MM-DD
	StartTime string `json:"startTime"` // HH:MM
	EndTime   string `json:"endTime"`   // HH:MM
	IsBooked  bool   `json:"isBooked"`
}

// SlotListResponse список слотов консультанта
type SlotListResponse struct {
	Slots  []SlotResponse `json:"slots"`
	Total  int            `json:"total"`
	Booked int            `json:"booked"`
}

// FromDomainSlot конвертирует domain.AvailabilitySlot в ответ
func FromDomainSlot(s *domain.AvailabilitySlot) SlotResponse {
	return SlotResponse{
		ID:        s.ID,
		Date:      s.Date.Format(domain.DateFormat),
		StartTime: s.StartTime.String(),
		EndTime:   s.EndTime.String(),
		IsBooked:  s.IsBooked,
	}
}

// FromDomainSlotList конвертирует список слотов
func FromDomainSlotList(slots []domain.AvailabilitySlot) *SlotListResponse {
	resp := &SlotListResponse{
		Slots: make([]SlotResponse, 0, len(slots)),
		Total: len(slots),
	}
	for i := range slots {
		resp.Slots = append(resp.Slots, FromDomainSlot(&slots[i]))
		if slots[i].IsBooked {
			resp.Booked++
		}
	}
	return resp
}
