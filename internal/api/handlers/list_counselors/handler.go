package list_counselors

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ConsultationService/internal/api/handlers"
	searchSlots "github.com/m04kA/SMC-ConsultationService/internal/usecase/search_slots"
)

type Handler struct {
	directory CounselorDirectory
	logger    Logger
}

func NewHandler(directory CounselorDirectory, logger Logger) *Handler {
	return &Handler{
		directory: directory,
		logger:    logger,
	}
}

// Handle GET /api/v1/counselors
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	counselors, err := h.directory.ListCounselors(r.Context())
	if err != nil {
		if errors.Is(err, searchSlots.ErrStoreUnavailable) {
			h.logger.Error("GET /counselors - Store unavailable: %v", err)
			handlers.RespondServiceUnavailable(w)
			return
		}
		h.logger.Error("GET /counselors - Failed to list counselors: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /counselors - Counselors listed: count=%d", len(counselors))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(counselors))
}
