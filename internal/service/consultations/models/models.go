package models

import (
	"time"

	"github.com/m04kA/SMC-ConsultationService/internal/domain"
	"github.com/m04kA/SMC-ConsultationService/pkg/ptr"
)

// ConsultationResponse консультация в ответе API
type ConsultationResponse struct {
	ID            int64      `json:"id"`
	StudentID     string     `json:"studentId"`
	StudentName   string     `json:"studentName,omitempty"`
	CounselorID   string     `json:"counselorId"`
	CounselorName string     `json:"counselorName,omitempty"`
	Date          string     `json:"date"`      // YYYY-MM-DD
	StartTime     string     `json:"startTime"` // HH:MM
	EndTime       string     `json:"endTime"`   // HH:MM
	Status        string     `json:"status"`
	VideoToken    *string    `json:"videoToken,omitempty"`
	VideoURL      *string    `json:"videoUrl,omitempty"`
	SourceSlotID  int64      `json:"sourceSlotId"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
	ResolvedAt    *time.Time `json:"resolvedAt,omitempty"`
}

// ConsultationListResponse список консультаций
type ConsultationListResponse struct {
	Consultations []ConsultationResponse `json:"consultations"`
	Total         int                    `json:"total"`
}

// FromDomainConsultation конвертирует domain.Consultation в ответ.
// videoBaseURL пустой - videoUrl не заполняется.
func FromDomainConsultation(c *domain.Consultation, videoBaseURL string) ConsultationResponse {
	resp := ConsultationResponse{
		ID:           c.ID,
		StudentID:    c.StudentID.String(),
		CounselorID:  c.CounselorID.String(),
		Date:         c.Date.Format(domain.DateFormat),
		StartTime:    c.StartTime.String(),
		EndTime:      c.EndTime.String(),
		Status:       string(c.Status),
		VideoToken:   c.VideoToken,
		SourceSlotID: c.SourceSlotID,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
		ResolvedAt:   c.ResolvedAt,
	}
	if c.VideoToken != nil && videoBaseURL != "" {
		resp.VideoURL = ptr.Ptr(videoBaseURL + "/" + *c.VideoToken)
	}
	return resp
}
