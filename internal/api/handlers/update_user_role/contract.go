package update_user_role

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ConsultationService/internal/domain"
	"github.com/m04kA/SMC-ConsultationService/internal/service/identity/models"
)

type IdentityService interface {
	UpdateRole(ctx context.Context, session domain.SessionContext, userID uuid.UUID, role string) (*models.UserResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
