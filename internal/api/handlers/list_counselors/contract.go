package list_counselors

import (
	"context"

	searchSlots "github.com/m04kA/SMC-ConsultationService/internal/usecase/search_slots"
)

type CounselorDirectory interface {
	ListCounselors(ctx context.Context) ([]searchSlots.Counselor, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
