package get_my_consultations

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ConsultationService/internal/api/handlers"
	"github.com/m04kA/SMC-ConsultationService/internal/api/middleware"
	"github.com/m04kA/SMC-ConsultationService/internal/service/consultations"
)

const (
	msgLoginRequired = "необходимо войти в систему"
	msgForbidden     = "консультации доступны только студентам и консультантам"
)

type Handler struct {
	service ConsultationService
	logger  Logger
}

func NewHandler(service ConsultationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/me/consultations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSession(r.Context())
	if session.IsGuest() {
		h.logger.Warn("GET /me/consultations - Guest request")
		handlers.RespondUnauthorized(w, msgLoginRequired)
		return
	}

	list, err := h.service.ListMine(r.Context(), session)
	if err != nil {
		switch {
		case errors.Is(err, consultations.ErrAccessDenied):
			h.logger.Warn("GET /me/consultations - Access denied: user_id=%s, role=%s", session.UserID, session.Role)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, consultations.ErrStoreUnavailable):
			h.logger.Error("GET /me/consultations - Store unavailable: user_id=%s, error=%v", session.UserID, err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("GET /me/consultations - Failed to list consultations: user_id=%s, error=%v", session.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /me/consultations - Consultations retrieved: user_id=%s, count=%d", session.UserID, list.Total)
	handlers.RespondJSON(w, http.StatusOK, list)
}
