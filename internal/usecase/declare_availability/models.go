package declare_availability

import (
	"time"

	"github.com/m04kA/SMC-ConsultationService/internal/domain"
	"github.com/m04kA/SMC-ConsultationService/pkg/types"
)

// Request модель запроса на объявление доступности.
// Указывается либо Date, либо DayOfWeek (+ FromDate, Weeks).
type Request struct {
	Session     domain.SessionContext
	Date        *time.Time
	DayOfWeek   *time.Weekday
	FromDate    *time.Time // по умолчанию сегодня
	Weeks       int
	StartTime   types.TimeString
	EndTime     types.TimeString
	UnitMinutes int // 0 = domain.DefaultSlotDurationMinutes
}

// Response результат объявления доступности
type Response struct {
	Dates     []time.Time // даты, на которые генерировались слоты
	Generated int         // количество слотов-кандидатов
	Inserted  int         // реально вставлено
	Skipped   int         // пропущено как дубли/пересечения
}
