package declare_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ConsultationService/internal/api/handlers"
	"github.com/m04kA/SMC-ConsultationService/internal/api/middleware"
	declareAvailability "github.com/m04kA/SMC-ConsultationService/internal/usecase/declare_availability"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidDayOfWeek   = "некорректный день недели, ожидается monday..sunday"
	msgInvalidTime        = "некорректный формат времени, ожидается HH:MM"
	msgInvalidRange       = "некорректный интервал доступности"
	msgLoginRequired      = "необходимо войти в систему"
	msgOnlyCounselors     = "объявлять доступность могут только консультанты"
)

type Handler struct {
	useCase DeclareAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase DeclareAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req DeclareAvailabilityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /availability - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	session := middleware.GetSession(r.Context())

	useCaseReq, err := req.ToUseCaseRequest(session)
	if err != nil {
		h.logger.Warn("POST /availability - Failed to parse request: %v", err)
		switch {
		case errors.Is(err, errInvalidTime):
			handlers.RespondBadRequest(w, msgInvalidTime)
		case errors.Is(err, errInvalidDayOfWeek):
			handlers.RespondBadRequest(w, msgInvalidDayOfWeek)
		default:
			handlers.RespondBadRequest(w, msgInvalidDate)
		}
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, declareAvailability.ErrAuthorization):
			if session.IsGuest() {
				h.logger.Warn("POST /availability - Guest request")
				handlers.RespondUnauthorized(w, msgLoginRequired)
				return
			}
			h.logger.Warn("POST /availability - Role not allowed: user_id=%s, role=%s", session.UserID, session.Role)
			handlers.RespondForbidden(w, msgOnlyCounselors)

		case errors.Is(err, declareAvailability.ErrInvalidRange):
			h.logger.Warn("POST /availability - Invalid range: counselor_id=%s, error=%v", session.UserID, err)
			handlers.RespondBadRequest(w, msgInvalidRange+": "+err.Error())

		case errors.Is(err, declareAvailability.ErrInvalidInput):
			h.logger.Warn("POST /availability - Invalid input: counselor_id=%s, error=%v", session.UserID, err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, declareAvailability.ErrStoreUnavailable):
			h.logger.Error("POST /availability - Store unavailable: counselor_id=%s, error=%v", session.UserID, err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("POST /availability - Failed to declare availability: counselor_id=%s, error=%v", session.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /availability - Availability declared: counselor_id=%s, inserted=%d, skipped=%d",
		session.UserID, result.Inserted, result.Skipped)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
