package search_by_date

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ConsultationService/internal/api/handlers"
	"github.com/m04kA/SMC-ConsultationService/internal/api/middleware"
	"github.com/m04kA/SMC-ConsultationService/internal/domain"
	searchSlots "github.com/m04kA/SMC-ConsultationService/internal/usecase/search_slots"
)

const (
	msgMissingDate = "не указана дата, ожидается параметр date=YYYY-MM-DD"
	msgInvalidDate = "некорректный формат даты, ожидается YYYY-MM-DD"
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

// Handle GET /api/v1/slots?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	date, err := domain.ParseDate(dateStr)
	if err != nil {
		h.logger.Warn("GET /slots - Invalid date: date=%s, error=%v", dateStr, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	session := middleware.GetSession(r.Context())

	result, err := h.search.SearchByDate(r.Context(), session, date)
	if err != nil {
		switch {
		case errors.Is(err, searchSlots.ErrInvalidInput):
			h.logger.Warn("GET /slots - Invalid input: date=%s, error=%v", dateStr, err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, searchSlots.ErrStoreUnavailable):
			h.logger.Error("GET /slots - Store unavailable: date=%s, error=%v", dateStr, err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("GET /slots - Failed to search slots: date=%s, error=%v", dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /slots - Slots found: date=%s, counselors=%d", dateStr, len(result.Counselors))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
