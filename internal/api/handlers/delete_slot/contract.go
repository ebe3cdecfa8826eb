package delete_slot

import (
	"context"

	"github.com/m04kA/SMC-ConsultationService/internal/domain"
)

type AvailabilityService interface {
	Delete(ctx context.Context, session domain.SessionContext, slotID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
