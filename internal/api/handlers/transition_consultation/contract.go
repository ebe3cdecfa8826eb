package transition_consultation

import (
	"context"

	transitionConsultation "github.com/m04kA/SMC-ConsultationService/internal/usecase/transition_consultation"
)

type TransitionUseCase interface {
	Execute(ctx context.Context, req *transitionConsultation.Request) (*transitionConsultation.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
