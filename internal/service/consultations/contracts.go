package consultations

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ConsultationService/internal/domain"
)

// ConsultationRepository интерфейс репозитория консультаций
type ConsultationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Consultation, error)
	ListByStudent(ctx context.Context, studentID uuid.UUID) ([]*domain.Consultation, error)
	ListByCounselor(ctx context.Context, counselorID uuid.UUID) ([]*domain.Consultation, error)
	ListAll(ctx context.Context) ([]*domain.Consultation, error)
}

// UserRepository интерфейс репозитория пользователей (для имен участников)
type UserRepository interface {
	GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*domain.User, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
