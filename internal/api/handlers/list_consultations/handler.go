package list_consultations

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ConsultationService/internal/api/handlers"
	"github.com/m04kA/SMC-ConsultationService/internal/api/middleware"
	"github.com/m04kA/SMC-ConsultationService/internal/service/consultations"
)

const (
	msgLoginRequired = "необходимо войти в систему"
	msgForbidden     = "обзор консультаций доступен только администратору"
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

// Handle GET /api/v1/admin/consultations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSession(r.Context())
	if session.IsGuest() {
		h.logger.Warn("GET /admin/consultations - Guest request")
		handlers.RespondUnauthorized(w, msgLoginRequired)
		return
	}

	list, err := h.service.ListAll(r.Context(), session)
	if err != nil {
		switch {
		case errors.Is(err, consultations.ErrAccessDenied):
			h.logger.Warn("GET /admin/consultations - Access denied: user_id=%s, role=%s", session.UserID, session.Role)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, consultations.ErrStoreUnavailable):
			h.logger.Error("GET /admin/consultations - Store unavailable: error=%v", err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("GET /admin/consultations - Failed to list consultations: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /admin/consultations - Consultations retrieved: admin_id=%s, count=%d", session.UserID, list.Total)
	handlers.RespondJSON(w, http.StatusOK, list)
}
