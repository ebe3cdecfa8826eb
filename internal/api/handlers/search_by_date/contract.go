package search_by_date

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ConsultationService/internal/domain"
	searchSlots "github.com/m04kA/SMC-ConsultationService/internal/usecase/search_slots"
)

type SlotSearch interface {
	SearchByDate(ctx context.Context, session domain.SessionContext, date time.Time) (*searchSlots.ByDateResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
