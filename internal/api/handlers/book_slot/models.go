package book_slot

import (
	"time"

	"github.com/m04kA/SMC-ConsultationService/internal/domain"
	bookSlot "github.com/m04kA/SMC-ConsultationService/internal/usecase/book_slot"
)

// BookSlotRequest HTTP request model
type BookSlotRequest struct {
	SlotID int64 `json:"slotId"`
}

// ConsultationResponse HTTP response model
type ConsultationResponse struct {
	ID           int64  `json:"id"`
	StudentID    string `json:"studentId"`
	CounselorID  string `json:"counselorId"`
	Date         string `json:"date"`
	StartTime    string `json:"startTime"`
	EndTime      string `json:"endTime"`
	Status       string `json:"status"`
	SourceSlotID int64  `json:"sourceSlotId"`
	CreatedAt    string `json:"createdAt"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *bookSlot.Response) *ConsultationResponse {
	return &ConsultationResponse{
		ID:           resp.ID,
		StudentID:    resp.StudentID.String(),
		CounselorID:  resp.CounselorID.String(),
		Date:         resp.Date.Format(domain.DateFormat),
		StartTime:    resp.StartTime.String(),
		EndTime:      resp.EndTime.String(),
		Status:       resp.Status,
		SourceSlotID: resp.SourceSlotID,
		CreatedAt:    resp.CreatedAt.Format(time.RFC3339),
	}
}
