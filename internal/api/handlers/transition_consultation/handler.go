package transition_consultation

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ConsultationService/internal/api/handlers"
	"github.com/m04kA/SMC-ConsultationService/internal/api/middleware"
	"github.com/m04kA/SMC-ConsultationService/internal/domain"
	transitionConsultation "github.com/m04kA/SMC-ConsultationService/internal/usecase/transition_consultation"
)

const (
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgInvalidConsultationID = "некорректный ID консультации"
	msgInvalidStatus         = "некорректный статус, ожидается accepted или rejected"
	msgLoginRequired         = "необходимо войти в систему"
	msgForbidden             = "изменять статус может только консультант этой консультации"
	msgNotFound              = "консультация не найдена"
	msgAlreadyDecided        = "по консультации уже принято решение"
)

type Handler struct {
	useCase TransitionUseCase
	logger  Logger
}

func NewHandler(useCase TransitionUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/consultations/{consultationId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	consultationID, err := strconv.ParseInt(mux.Vars(r)["consultationId"], 10, 64)
	if err != nil || consultationID <= 0 {
		h.logger.Warn("PATCH /consultations/{id}/status - Invalid consultation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidConsultationID)
		return
	}

	var req TransitionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /consultations/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	target := domain.ConsultationStatus(strings.ToLower(strings.TrimSpace(req.Status)))
	if !target.IsTerminal() {
		h.logger.Warn("PATCH /consultations/{id}/status - Invalid status: consultation_id=%d, status=%s", consultationID, req.Status)
		handlers.RespondBadRequest(w, msgInvalidStatus)
		return
	}

	session := middleware.GetSession(r.Context())

	result, err := h.useCase.Execute(r.Context(), &transitionConsultation.Request{
		Session:        session,
		ConsultationID: consultationID,
		Target:         target,
	})
	if err != nil {
		switch {
		case errors.Is(err, transitionConsultation.ErrAuthorization):
			if session.IsGuest() {
				h.logger.Warn("PATCH /consultations/{id}/status - Guest request: consultation_id=%d", consultationID)
				handlers.RespondUnauthorized(w, msgLoginRequired)
				return
			}
			h.logger.Warn("PATCH /consultations/{id}/status - Access denied: consultation_id=%d, user_id=%s, role=%s",
				consultationID, session.UserID, session.Role)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, transitionConsultation.ErrInvalidInput):
			h.logger.Warn("PATCH /consultations/{id}/status - Invalid input: consultation_id=%d, error=%v", consultationID, err)
			handlers.RespondBadRequest(w, msgInvalidConsultationID)

		case errors.Is(err, transitionConsultation.ErrConsultationNotFound):
			h.logger.Warn("PATCH /consultations/{id}/status - Consultation not found: consultation_id=%d", consultationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, transitionConsultation.ErrInvalidStateTransition):
			h.logger.Warn("PATCH /consultations/{id}/status - Invalid transition: consultation_id=%d, target=%s", consultationID, target)
			handlers.RespondConflict(w, msgAlreadyDecided)

		case errors.Is(err, transitionConsultation.ErrStoreUnavailable):
			h.logger.Error("PATCH /consultations/{id}/status - Store unavailable: consultation_id=%d, error=%v", consultationID, err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("PATCH /consultations/{id}/status - Failed to transition: consultation_id=%d, error=%v", consultationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /consultations/{id}/status - Consultation %s: consultation_id=%d, counselor_id=%s",
		result.Status, consultationID, session.UserID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
