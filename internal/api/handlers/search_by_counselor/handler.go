package search_by_counselor

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ConsultationService/internal/api/handlers"
	"github.com/m04kA/SMC-ConsultationService/internal/api/middleware"
	searchSlots "github.com/m04kA/SMC-ConsultationService/internal/usecase/search_slots"
)

const (
	msgInvalidCounselorID = "некорректный ID консультанта"
	msgCounselorNotFound  = "консультант не найден"
)

type Handler struct {
	search SlotSearch
	logger Logger
}

func NewHandler(search SlotSearch, logger Logger) *Handler {
	return &Handler{
		search: search,
		logger: logger,
	}
}

// Handle GET /api/v1/counselors/{counselorId}/slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	counselorIDStr := mux.Vars(r)["counselorId"]
	counselorID, err := uuid.Parse(counselorIDStr)
	if err != nil {
		h.logger.Warn("GET /counselors/{id}/slots - Invalid counselor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCounselorID)
		return
	}

	session := middleware.GetSession(r.Context())

	result, err := h.search.SearchByCounselor(r.Context(), session, counselorID)
	if err != nil {
		switch {
		case errors.Is(err, searchSlots.ErrInvalidInput):
			h.logger.Warn("GET /counselors/{id}/slots - Invalid input: counselor_id=%s, error=%v", counselorID, err)
			handlers.RespondBadRequest(w, msgInvalidCounselorID)

		case errors.Is(err, searchSlots.ErrStoreUnavailable):
			h.logger.Error("GET /counselors/{id}/slots - Store unavailable: counselor_id=%s, error=%v", counselorID, err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("GET /counselors/{id}/slots - Failed to search slots: counselor_id=%s, error=%v", counselorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	if result.Counselor == nil {
		h.logger.Warn("GET /counselors/{id}/slots - Counselor not found: counselor_id=%s", counselorID)
		handlers.RespondNotFound(w, msgCounselorNotFound)
		return
	}

	h.logger.Info("GET /counselors/{id}/slots - Slots found: counselor_id=%s, days=%d", counselorID, len(result.Days))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
