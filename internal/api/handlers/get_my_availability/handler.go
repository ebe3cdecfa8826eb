package get_my_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ConsultationService/internal/api/handlers"
	"github.com/m04kA/SMC-ConsultationService/internal/api/middleware"
	"github.com/m04kA/SMC-ConsultationService/internal/service/availability"
)

const (
	msgLoginRequired = "необходимо войти в систему"
	msgForbidden     = "слоты доступны только консультантам"
)

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/me/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSession(r.Context())
	if session.IsGuest() {
		h.logger.Warn("GET /me/availability - Guest request")
		handlers.RespondUnauthorized(w, msgLoginRequired)
		return
	}

	slots, err := h.service.ListOwn(r.Context(), session)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrAccessDenied):
			h.logger.Warn("GET /me/availability - Access denied: user_id=%s, role=%s", session.UserID, session.Role)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, availability.ErrStoreUnavailable):
			h.logger.Error("GET /me/availability - Store unavailable: user_id=%s, error=%v", session.UserID, err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("GET /me/availability - Failed to list slots: user_id=%s, error=%v", session.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /me/availability - Slots retrieved: counselor_id=%s, total=%d, booked=%d",
		session.UserID, slots.Total, slots.Booked)
	handlers.RespondJSON(w, http.StatusOK, slots)
}
