package update_user_role

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ConsultationService/internal/api/handlers"
	"github.com/m04kA/SMC-ConsultationService/internal/api/middleware"
	"github.com/m04kA/SMC-ConsultationService/internal/service/identity"
	"github.com/m04kA/SMC-ConsultationService/internal/service/identity/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidUserID      = "некорректный ID пользователя"
	msgLoginRequired      = "необходимо войти в систему"
	msgForbidden          = "доступно только администраторам"
	msgUserNotFound       = "пользователь не найден"
)

type Handler struct {
	service IdentityService
	logger  Logger
}

func NewHandler(service IdentityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/admin/users/{userId}/role
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(mux.Vars(r)["userId"])
	if err != nil {
		h.logger.Warn("PUT /admin/users/{id}/role - Invalid user ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	var req models.UpdateRoleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/users/{id}/role - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	session := middleware.GetSession(r.Context())
	if session.IsGuest() {
		h.logger.Warn("PUT /admin/users/{id}/role - Guest request")
		handlers.RespondUnauthorized(w, msgLoginRequired)
		return
	}

	user, err := h.service.UpdateRole(r.Context(), session, userID, req.Role)
	if err != nil {
		switch {
		case errors.Is(err, identity.ErrAccessDenied):
			h.logger.Warn("PUT /admin/users/{id}/role - Access denied: user_id=%s, role=%s", session.UserID, session.Role)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, identity.ErrInvalidInput):
			h.logger.Warn("PUT /admin/users/{id}/role - Invalid input: target=%s, error=%v", userID, err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, identity.ErrUserNotFound):
			h.logger.Warn("PUT /admin/users/{id}/role - User not found: target=%s", userID)
			handlers.RespondNotFound(w, msgUserNotFound)

		case errors.Is(err, identity.ErrStoreUnavailable):
			h.logger.Error("PUT /admin/users/{id}/role - Store unavailable: %v", err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("PUT /admin/users/{id}/role - Failed to update role: target=%s, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /admin/users/{id}/role - Role updated: admin_id=%s, target=%s, role=%s",
		session.UserID, userID, user.Role)
	handlers.RespondJSON(w, http.StatusOK, user)
}
