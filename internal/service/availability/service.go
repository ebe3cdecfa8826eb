package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ConsultationService/internal/domain"
	availabilityRepo "github.com/m04kA/SMC-ConsultationService/internal/infra/storage/availability"
	"github.com/m04kA/SMC-ConsultationService/internal/service/availability/models"
)

// Service сервис управления собственными слотами консультанта
type Service struct {
	slotRepo     SlotRepository
	location     *time.Location
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса
func NewService(slotRepo SlotRepository, location *time.Location, logger Logger) *Service {
	if location == nil {
		location = time.UTC
	}
	return &Service{
		slotRepo:     slotRepo,
		location:     location,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// ListOwn слоты консультанта начиная с сегодняшнего дня, включая забронированные
func (s *Service) ListOwn(ctx context.Context, session domain.SessionContext) (*models.SlotListResponse, error) {
	if !session.IsCounselor() {
		s.logger.Warn("ListOwn: role=%s is not allowed", session.Role)
		return nil, ErrAccessDenied
	}

	today := domain.Today(s.timeProvider.Now(), s.location)
	slots, err := s.slotRepo.ListByCounselor(ctx, session.UserID, today)
	if err != nil {
		s.logger.Error("ListOwn: repository error for counselor=%s: %v", session.UserID, err)
		return nil, fmt.Errorf("%w: ListOwn - repository error: %v", ErrStoreUnavailable, err)
	}

	s.logger.Info("ListOwn: counselor=%s, slots=%d", session.UserID, len(slots))
	return models.FromDomainSlotList(slots), nil
}

// Delete удаляет незабронированный слот консультанта
func (s *Service) Delete(ctx context.Context, session domain.SessionContext, slotID int64) error {
	if !session.IsCounselor() {
		s.logger.Warn("Delete: role=%s is not allowed, slot=%d", session.Role, slotID)
		return ErrAccessDenied
	}

	slot, err := s.slotRepo.GetByID(ctx, slotID)
	if err != nil {
		if errors.Is(err, availabilityRepo.ErrSlotNotFound) {
			s.logger.Warn("Delete: slot=%d not found", slotID)
			return ErrSlotNotFound
		}
		s.logger.Error("Delete: repository error for slot=%d: %v", slotID, err)
		return fmt.Errorf("%w: Delete - get slot: %v", ErrStoreUnavailable, err)
	}

	if slot.CounselorID != session.UserID {
		s.logger.Warn("Delete: counselor=%s does not own slot=%d", session.UserID, slotID)
		return ErrAccessDenied
	}

	if err := s.slotRepo.DeleteSlot(ctx, slotID); err != nil {
		switch {
		case errors.Is(err, availabilityRepo.ErrSlotBooked):
			s.logger.Warn("Delete: slot=%d is booked", slotID)
			return ErrSlotBooked
		case errors.Is(err, availabilityRepo.ErrSlotNotFound):
			return ErrSlotNotFound
		default:
			s.logger.Error("Delete: repository error for slot=%d: %v", slotID, err)
			return fmt.Errorf("%w: Delete - delete slot: %v", ErrStoreUnavailable, err)
		}
	}

	s.logger.Info("Delete: counselor=%s deleted slot=%d", session.UserID, slotID)
	return nil
}
