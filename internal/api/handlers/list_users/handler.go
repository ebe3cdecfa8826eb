package list_users

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ConsultationService/internal/api/handlers"
	"github.com/m04kA/SMC-ConsultationService/internal/api/middleware"
	"github.com/m04kA/SMC-ConsultationService/internal/service/identity"
	"github.com/m04kA/SMC-ConsultationService/pkg/ptr"
)

const (
	msgInvalidRole   = "некорректная роль, ожидается student, counselor или admin"
	msgLoginRequired = "необходимо войти в систему"
	msgForbidden     = "доступно только администраторам"
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

// Handle GET /api/v1/admin/users?role=counselor
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSession(r.Context())
	if session.IsGuest() {
		h.logger.Warn("GET /admin/users - Guest request")
		handlers.RespondUnauthorized(w, msgLoginRequired)
		return
	}

	var role *string
	if v := r.URL.Query().Get("role"); v != "" {
		role = ptr.Ptr(v)
	}

	users, err := h.service.ListUsers(r.Context(), session, role)
	if err != nil {
		switch {
		case errors.Is(err, identity.ErrAccessDenied):
			h.logger.Warn("GET /admin/users - Access denied: user_id=%s, role=%s", session.UserID, session.Role)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, identity.ErrInvalidInput):
			h.logger.Warn("GET /admin/users - Invalid role filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRole)

		case errors.Is(err, identity.ErrStoreUnavailable):
			h.logger.Error("GET /admin/users - Store unavailable: %v", err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("GET /admin/users - Failed to list users: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /admin/users - Users listed: admin_id=%s, count=%d", session.UserID, users.Total)
	handlers.RespondJSON(w, http.StatusOK, users)
}
