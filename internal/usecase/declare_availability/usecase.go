package declare_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ConsultationService/internal/domain"
)

// Settings параметры объявления доступности из конфигурации
type Settings struct {
	AdvanceDays int
	Location    *time.Location
}

// UseCase use case объявления доступности консультантом
type UseCase struct {
	slotRepo     SlotRepository
	txManager    TransactionManager
	metrics      Metrics
	settings     Settings
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotRepo SlotRepository,
	txManager TransactionManager,
	metrics Metrics,
	settings Settings,
	logger Logger,
) *UseCase {
	if settings.AdvanceDays <= 0 {
		settings.AdvanceDays = domain.DefaultAdvanceDays
	}
	if settings.Location == nil {
		settings.Location = time.UTC
	}
	return &UseCase{
		slotRepo:     slotRepo,
		txManager:    txManager,
		metrics:      metrics,
		settings:     settings,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute разворачивает объявление в слоты и вставляет те, которых еще нет.
// Повторное объявление того же диапазона ничего не добавляет.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Объявлять доступность может только консультант
	if !req.Session.IsCounselor() {
		uc.logger.Warn("DeclareAvailability: role=%s is not allowed", req.Session.Role)
		return nil, ErrAuthorization
	}

	uc.logger.Info("DeclareAvailability: counselor=%s, start=%s, end=%s, unit=%d",
		req.Session.UserID, req.StartTime, req.EndTime, req.UnitMinutes)

	// 2. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("DeclareAvailability: validation failed: %v", err)
		return nil, err
	}

	today := domain.Today(uc.timeProvider.Now(), uc.settings.Location)

	// 3. Строим объявление и разворачиваем его в даты
	decl := domain.AvailabilityDeclaration{
		CounselorID: req.Session.UserID,
		Date:        req.Date,
		DayOfWeek:   req.DayOfWeek,
		FromDate:    today,
		Weeks:       req.Weeks,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		UnitMinutes: req.UnitMinutes,
	}
	if req.FromDate != nil {
		decl.FromDate = domain.NormalizeDate(*req.FromDate)
	}

	dates, err := decl.Dates()
	if err != nil {
		uc.logger.Warn("DeclareAvailability: failed to expand dates: %v", err)
		return nil, uc.mapDomainError(err)
	}

	if err := validateDates(dates, today, uc.settings.AdvanceDays); err != nil {
		uc.logger.Warn("DeclareAvailability: date validation failed: %v", err)
		return nil, err
	}

	// 4. Генерируем кандидатов
	candidates, err := decl.Slots()
	if err != nil {
		uc.logger.Warn("DeclareAvailability: failed to generate slots: %v", err)
		return nil, uc.mapDomainError(err)
	}

	// 5. Отсеиваем существующие и вставляем остальные в сериализуемой транзакции
	inserted := 0
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		inserted = 0
		for _, date := range dates {
			existing, err := uc.slotRepo.ListByCounselorAndDate(txCtx, decl.CounselorID, date)
			if err != nil {
				return fmt.Errorf("%w: list existing slots for %s: %v", ErrStoreUnavailable, date.Format(domain.DateFormat), err)
			}

			fresh := domain.FilterNewSlots(candidatesFor(candidates, date), existing)
			if len(fresh) == 0 {
				continue
			}

			n, err := uc.slotRepo.InsertSlots(txCtx, fresh)
			if err != nil {
				return fmt.Errorf("%w: insert slots for %s: %v", ErrStoreUnavailable, date.Format(domain.DateFormat), err)
			}
			inserted += n
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrStoreUnavailable) {
			err = fmt.Errorf("%w: transaction: %v", ErrStoreUnavailable, err)
		}
		uc.logger.Error("DeclareAvailability: counselor=%s failed: %v", decl.CounselorID, err)
		return nil, err
	}

	uc.metrics.AddSlotsGenerated(inserted)

	uc.logger.Info("DeclareAvailability: counselor=%s, generated=%d, inserted=%d",
		decl.CounselorID, len(candidates), inserted)

	return &Response{
		Dates:     dates,
		Generated: len(candidates),
		Inserted:  inserted,
		Skipped:   len(candidates) - inserted,
	}, nil
}

func (uc *UseCase) mapDomainError(err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidRange):
		return fmt.Errorf("%w: %v", ErrInvalidRange, err)
	case errors.Is(err, domain.ErrInvalidInput):
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	default:
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
}

func candidatesFor(slots []domain.AvailabilitySlot, date time.Time) []domain.AvailabilitySlot {
	out := make([]domain.AvailabilitySlot, 0)
	for _, s := range slots {
		if domain.SameDate(s.Date, date) {
			out = append(out, s)
		}
	}
	return out
}
