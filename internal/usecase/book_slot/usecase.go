package book_slot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ConsultationService/internal/domain"
	availabilityRepo "github.com/m04kA/SMC-ConsultationService/internal/infra/storage/availability"
	consultationRepo "github.com/m04kA/SMC-ConsultationService/internal/infra/storage/consultation"
)

// UseCase use case бронирования слота студентом
type UseCase struct {
	slotRepo         SlotRepository
	consultationRepo ConsultationRepository
	txManager        TransactionManager
	metrics          Metrics
	location         *time.Location
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotRepo SlotRepository,
	consultationRepo ConsultationRepository,
	txManager TransactionManager,
	metrics Metrics,
	location *time.Location,
	logger Logger,
) *UseCase {
	if location == nil {
		location = time.UTC
	}
	return &UseCase{
		slotRepo:         slotRepo,
		consultationRepo: consultationRepo,
		txManager:        txManager,
		metrics:          metrics,
		location:         location,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute бронирует слот и создает консультацию в статусе pending.
//
// Чтение слота, условное закрытие и вставка консультации идут в одной транзакции:
// ошибка после закрытия слота откатывает транзакцию, и слот снова открыт.
// Из конкурентных бронирований одного слота успешно ровно одно.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 0. Гости и не-студенты отсекаются до любых чтений
	if req.Session.IsGuest() {
		uc.logger.Warn("BookSlot: guest attempted to book slot=%d", req.SlotID)
		uc.metrics.IncBooking(resultUnauthorized)
		return nil, fmt.Errorf("%w: guests cannot book consultations", ErrAuthorization)
	}
	if !req.Session.IsStudent() {
		uc.logger.Warn("BookSlot: user=%s with role=%s attempted to book slot=%d",
			req.Session.UserID, req.Session.Role, req.SlotID)
		uc.metrics.IncBooking(resultUnauthorized)
		return nil, fmt.Errorf("%w: only students can book consultations", ErrAuthorization)
	}

	if req.SlotID <= 0 {
		return nil, fmt.Errorf("%w: slotId must be positive", ErrInvalidInput)
	}

	uc.logger.Info("BookSlot: student=%s, slot=%d", req.Session.UserID, req.SlotID)

	now := uc.timeProvider.Now().In(uc.location)

	var result *domain.Consultation
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 1. Получаем слот
		slot, err := uc.slotRepo.GetByID(txCtx, req.SlotID)
		if err != nil {
			if errors.Is(err, availabilityRepo.ErrSlotNotFound) {
				return ErrSlotNotFound
			}
			return fmt.Errorf("%w: BookSlot - get slot: %v", ErrStoreUnavailable, err)
		}
		if slot.HasStarted(now) {
			return fmt.Errorf("%w: slot %s %s has already started",
				ErrSlotNotFound, slot.Date.Format(domain.DateFormat), slot.StartTime)
		}

		// 2. Условно закрываем слот, проигравший гонку получает ErrSlotAlreadyBooked
		booked, err := uc.slotRepo.MarkBooked(txCtx, slot.ID)
		if err != nil {
			return fmt.Errorf("%w: BookSlot - mark booked: %v", ErrStoreUnavailable, err)
		}
		if !booked {
			return ErrSlotAlreadyBooked
		}

		// 3. Создаем консультацию
		created, err := uc.consultationRepo.Create(txCtx, domain.NewPendingConsultation(slot, req.Session.UserID))
		if err != nil {
			if errors.Is(err, consultationRepo.ErrSlotAlreadyUsed) {
				return ErrSlotAlreadyBooked
			}
			return fmt.Errorf("%w: BookSlot - create consultation: %v", ErrStoreUnavailable, err)
		}

		result = created
		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrSlotAlreadyBooked):
			uc.logger.Warn("BookSlot: slot=%d already booked", req.SlotID)
			uc.metrics.IncBooking(resultAlreadyBooked)
		case errors.Is(err, ErrSlotNotFound):
			uc.logger.Warn("BookSlot: slot=%d not found: %v", req.SlotID, err)
			uc.metrics.IncBooking(resultNotFound)
		default:
			if !errors.Is(err, ErrStoreUnavailable) {
				err = fmt.Errorf("%w: BookSlot - transaction: %v", ErrStoreUnavailable, err)
			}
			uc.logger.Error("BookSlot: slot=%d failed: %v", req.SlotID, err)
			uc.metrics.IncBooking(resultError)
		}
		return nil, err
	}

	uc.metrics.IncBooking(resultSuccess)
	uc.logger.Info("BookSlot: consultation id=%d created for slot=%d", result.ID, req.SlotID)

	return &Response{
		ID:           result.ID,
		StudentID:    result.StudentID,
		CounselorID:  result.CounselorID,
		Date:         result.Date,
		StartTime:    result.StartTime,
		EndTime:      result.EndTime,
		Status:       string(result.Status),
		SourceSlotID: result.SourceSlotID,
		CreatedAt:    result.CreatedAt,
	}, nil
}
