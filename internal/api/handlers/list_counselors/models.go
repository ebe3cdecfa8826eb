package list_counselors

import (
	searchSlots "github.com/m04kA/SMC-ConsultationService/internal/usecase/search_slots"
)

// CounselorResponse элемент справочника консультантов
type CounselorResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// CounselorListResponse справочник консультантов
type CounselorListResponse struct {
	Counselors []CounselorResponse `json:"counselors"`
	Total      int                 `json:"total"`
}

// FromUseCaseResponse конвертирует список консультантов в HTTP ответ
func FromUseCaseResponse(list []searchSlots.Counselor) *CounselorListResponse {
	resp := &CounselorListResponse{
		Counselors: make([]CounselorResponse, 0, len(list)),
		Total:      len(list),
	}
	for _, c := range list {
		resp.Counselors = append(resp.Counselors, CounselorResponse{
			ID:    c.ID.String(),
			Name:  c.Name,
			Email: c.Email,
		})
	}
	return resp
}
