package transition_consultation

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ConsultationService/internal/domain"
	"github.com/m04kA/SMC-ConsultationService/pkg/types"
)

// Request модель запроса на смену статуса консультации
type Request struct {
	Session        domain.SessionContext
	ConsultationID int64
	Target         domain.ConsultationStatus
}

// Response консультация после перехода
type Response struct {
	ID           int64
	StudentID    uuid.UUID
	CounselorID  uuid.UUID
	Date         time.Time
	StartTime    types.TimeString
	EndTime      types.TimeString
	Status       string
	VideoToken   *string
	VideoURL     *string
	SourceSlotID int64
	UpdatedAt    time.Time
	ResolvedAt   *time.Time
}
