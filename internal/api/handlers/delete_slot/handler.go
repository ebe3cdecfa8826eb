package delete_slot

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ConsultationService/internal/api/handlers"
	"github.com/m04kA/SMC-ConsultationService/internal/api/middleware"
	"github.com/m04kA/SMC-ConsultationService/internal/service/availability"
)

const (
	msgInvalidSlotID = "некорректный ID слота"
	msgLoginRequired = "необходимо войти в систему"
	msgForbidden     = "удалять можно только свои слоты"
	msgSlotNotFound  = "слот не найден"
	msgSlotBooked    = "слот уже забронирован и не может быть удален"
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

// Handle DELETE /api/v1/availability/{slotId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	slotID, err := strconv.ParseInt(mux.Vars(r)["slotId"], 10, 64)
	if err != nil || slotID <= 0 {
		h.logger.Warn("DELETE /availability/{id} - Invalid slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	session := middleware.GetSession(r.Context())
	if session.IsGuest() {
		h.logger.Warn("DELETE /availability/{id} - Guest request: slot_id=%d", slotID)
		handlers.RespondUnauthorized(w, msgLoginRequired)
		return
	}

	if err := h.service.Delete(r.Context(), session, slotID); err != nil {
		switch {
		case errors.Is(err, availability.ErrAccessDenied):
			h.logger.Warn("DELETE /availability/{id} - Access denied: slot_id=%d, user_id=%s", slotID, session.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, availability.ErrSlotNotFound):
			h.logger.Warn("DELETE /availability/{id} - Slot not found: slot_id=%d", slotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, availability.ErrSlotBooked):
			h.logger.Warn("DELETE /availability/{id} - Slot booked: slot_id=%d", slotID)
			handlers.RespondConflict(w, msgSlotBooked)

		case errors.Is(err, availability.ErrStoreUnavailable):
			h.logger.Error("DELETE /availability/{id} - Store unavailable: slot_id=%d, error=%v", slotID, err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("DELETE /availability/{id} - Failed to delete slot: slot_id=%d, error=%v", slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /availability/{id} - Slot deleted: slot_id=%d, counselor_id=%s", slotID, session.UserID)
	w.WriteHeader(http.StatusNoContent)
}
