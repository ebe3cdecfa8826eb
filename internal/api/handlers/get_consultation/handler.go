package get_consultation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ConsultationService/internal/api/handlers"
	"github.com/m04kA/SMC-ConsultationService/internal/api/middleware"
	"github.com/m04kA/SMC-ConsultationService/internal/service/consultations"
)

const (
	msgInvalidConsultationID = "некорректный ID консультации"
	msgNotFound              = "консультация не найдена"
	msgLoginRequired         = "необходимо войти в систему"
	msgForbidden             = "доступ запрещен"
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

// Handle GET /api/v1/consultations/{consultationId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	consultationID, err := strconv.ParseInt(mux.Vars(r)["consultationId"], 10, 64)
	if err != nil || consultationID <= 0 {
		h.logger.Warn("GET /consultations/{id} - Invalid consultation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidConsultationID)
		return
	}

	session := middleware.GetSession(r.Context())
	if session.IsGuest() {
		h.logger.Warn("GET /consultations/{id} - Guest request: consultation_id=%d", consultationID)
		handlers.RespondUnauthorized(w, msgLoginRequired)
		return
	}

	consultation, err := h.service.GetByID(r.Context(), session, consultationID)
	if err != nil {
		switch {
		case errors.Is(err, consultations.ErrConsultationNotFound):
			h.logger.Warn("GET /consultations/{id} - Consultation not found: consultation_id=%d", consultationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, consultations.ErrAccessDenied):
			h.logger.Warn("GET /consultations/{id} - Access denied: consultation_id=%d, user_id=%s", consultationID, session.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, consultations.ErrStoreUnavailable):
			h.logger.Error("GET /consultations/{id} - Store unavailable: consultation_id=%d, error=%v", consultationID, err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("GET /consultations/{id} - Failed to get consultation: consultation_id=%d, error=%v", consultationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /consultations/{id} - Consultation retrieved: consultation_id=%d, user_id=%s", consultationID, session.UserID)
	handlers.RespondJSON(w, http.StatusOK, consultation)
}
