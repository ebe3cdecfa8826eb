package book_slot

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ConsultationService/internal/domain"
	"github.com/m04kA/SMC-ConsultationService/pkg/types"
)

// Request модель запроса на бронирование слота
type Request struct {
	Session domain.SessionContext
	SlotID  int64
}

// Response созданная консультация
type Response struct {
	ID           int64
	StudentID    uuid.UUID
	CounselorID  uuid.UUID
	Date         time.Time
	StartTime    types.TimeString
	EndTime      types.TimeString
	Status       string
	SourceSlotID int64
	CreatedAt    time.Time
}
