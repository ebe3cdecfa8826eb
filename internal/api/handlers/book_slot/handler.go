package book_slot

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ConsultationService/internal/api/handlers"
	"github.com/m04kA/SMC-ConsultationService/internal/api/middleware"
	bookSlot "github.com/m04kA/SMC-ConsultationService/internal/usecase/book_slot"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidSlotID      = "некорректный ID слота"
	msgLoginRequired      = "для бронирования необходимо войти в систему"
	msgOnlyStudents       = "бронировать консультации могут только студенты"
	msgSlotNotFound       = "слот не найден"
	msgSlotAlreadyBooked  = "слот уже забронирован, выберите другой"
)

type Handler struct {
	useCase BookSlotUseCase
	logger  Logger
}

func NewHandler(useCase BookSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req BookSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	session := middleware.GetSession(r.Context())

	result, err := h.useCase.Execute(r.Context(), &bookSlot.Request{
		Session: session,
		SlotID:  req.SlotID,
	})
	if err != nil {
		switch {
		case errors.Is(err, bookSlot.ErrAuthorization):
			if session.IsGuest() {
				h.logger.Warn("POST /bookings - Guest tried to book: slot_id=%d", req.SlotID)
				handlers.RespondUnauthorized(w, msgLoginRequired)
				return
			}
			h.logger.Warn("POST /bookings - Role not allowed to book: user_id=%s, role=%s", session.UserID, session.Role)
			handlers.RespondForbidden(w, msgOnlyStudents)

		case errors.Is(err, bookSlot.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid slot ID: slot_id=%d", req.SlotID)
			handlers.RespondBadRequest(w, msgInvalidSlotID)

		case errors.Is(err, bookSlot.ErrSlotNotFound):
			h.logger.Warn("POST /bookings - Slot not found: slot_id=%d", req.SlotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, bookSlot.ErrSlotAlreadyBooked):
			h.logger.Warn("POST /bookings - Slot already booked: slot_id=%d, user_id=%s", req.SlotID, session.UserID)
			handlers.RespondConflict(w, msgSlotAlreadyBooked)

		case errors.Is(err, bookSlot.ErrStoreUnavailable):
			h.logger.Error("POST /bookings - Store unavailable: slot_id=%d, error=%v", req.SlotID, err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("POST /bookings - Failed to book slot: slot_id=%d, user_id=%s, error=%v",
				req.SlotID, session.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Slot booked: consultation_id=%d, slot_id=%d, student_id=%s",
		result.ID, req.SlotID, session.UserID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
