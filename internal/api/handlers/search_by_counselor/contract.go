package search_by_counselor

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ConsultationService/internal/domain"
	searchSlots "github.com/m04kA/SMC-ConsultationService/internal/usecase/search_slots"
)

type SlotSearch interface {
	SearchByCounselor(ctx context.Context, session domain.SessionContext, counselorID uuid.UUID) (*searchSlots.ByCounselorResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
