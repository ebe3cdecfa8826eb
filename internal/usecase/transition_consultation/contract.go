package transition_consultation

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ConsultationService/internal/domain"
	"github.com/m04kA/SMC-ConsultationService/internal/integrations/videorooms"
)

// ConsultationRepository интерфейс репозитория консультаций
type ConsultationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Consultation, error)
	TransitionFromPending(ctx context.Context, id int64, target domain.ConsultationStatus, videoToken *string) (*domain.Consultation, error)
}

// Metrics доменные метрики
type Metrics interface {
	IncTransition(status string)
}

// TokenGenerator генерирует непрозрачный токен видеосессии
type TokenGenerator interface {
	NewToken() string
}

// RoomProvisioner создает комнату видеосвязи у внешнего провайдера
type RoomProvisioner interface {
	CreateRoom(ctx context.Context, name string, expiresAt time.Time) (*videorooms.Room, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
