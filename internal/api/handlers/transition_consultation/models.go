package transition_consultation

import (
	"time"

	"github.com/m04kA/SMC-ConsultationService/internal/domain"
	transitionConsultation "github.com/m04kA/SMC-ConsultationService/internal/usecase/transition_consultation"
)

// TransitionRequest HTTP request model
type TransitionRequest struct {
	Status string `json:"status"` // accepted | rejected
}

// ConsultationResponse HTTP response model
type ConsultationResponse struct {
	ID           int64   `json:"id"`
	StudentID    string  `json:"studentId"`
	CounselorID  string  `json:"counselorId"`
	Date         string  `json:"date"`
	StartTime    string  `json:"startTime"`
	EndTime      string  `json:"endTime"`
	Status       string  `json:"status"`
	VideoToken   *string `json:"videoToken,omitempty"`
	VideoURL     *string `json:"videoUrl,omitempty"`
	SourceSlotID int64   `json:"sourceSlotId"`
	UpdatedAt    string  `json:"updatedAt"`
	ResolvedAt   string  `json:"resolvedAt,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *transitionConsultation.Response) *ConsultationResponse {
	out := &ConsultationResponse{
		ID:           resp.ID,
		StudentID:    resp.StudentID.String(),
		CounselorID:  resp.CounselorID.String(),
		Date:         resp.Date.Format(domain.DateFormat),
		StartTime:    resp.StartTime.String(),
		EndTime:      resp.EndTime.String(),
		Status:       resp.Status,
		VideoToken:   resp.VideoToken,
		VideoURL:     resp.VideoURL,
		SourceSlotID: resp.SourceSlotID,
		UpdatedAt:    resp.UpdatedAt.Format(time.RFC3339),
	}
	if resp.ResolvedAt != nil {
		out.ResolvedAt = resp.ResolvedAt.Format(time.RFC3339)
	}
	return out
}
