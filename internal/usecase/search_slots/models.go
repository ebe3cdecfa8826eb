package search_slots

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ConsultationService/pkg/types"
)

// Counselor краткая карточка консультанта
type Counselor struct {
	ID    uuid.UUID
	Name  string
	Email string
}

// Slot открытый слот в результатах поиска
type Slot struct {
	ID          int64
	CounselorID uuid.UUID
	Date        time.Time
	StartTime   types.TimeString
	EndTime     types.TimeString
}

// CounselorSlots слоты одного консультанта (поиск по дате)
type CounselorSlots struct {
	Counselor Counselor
	Slots     []Slot
}

// DaySlots слоты одного дня (поиск по консультанту)
type DaySlots struct {
	Date  time.Time
	Slots []Slot
}

// ByDateResponse результат поиска по дате: консультанты по имени, слоты по времени начала
type ByDateResponse struct {
	Date       time.Time
	Counselors []CounselorSlots
}

// ByCounselorResponse результат поиска по консультанту: даты по возрастанию.
// Counselor == nil, если консультант не найден или больше не консультант.
type ByCounselorResponse struct {
	Counselor *Counselor
	Days      []DaySlots
}
