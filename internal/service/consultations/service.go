package consultations

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ConsultationService/internal/domain"
	consultationRepo "github.com/m04kA/SMC-ConsultationService/internal/infra/storage/consultation"
	"github.com/m04kA/SMC-ConsultationService/internal/service/consultations/models"
)

// Service сервис чтения консультаций участниками
type Service struct {
	consultationRepo ConsultationRepository
	userRepo         UserRepository
	videoBaseURL     string
	logger           Logger
}

// NewService создает новый экземпляр сервиса консультаций
func NewService(
	consultationRepo ConsultationRepository,
	userRepo UserRepository,
	videoBaseURL string,
	logger Logger,
) *Service {
	return &Service{
		consultationRepo: consultationRepo,
		userRepo:         userRepo,
		videoBaseURL:     strings.TrimRight(videoBaseURL, "/"),
		logger:           logger,
	}
}

// ListMine консультации текущего пользователя: студент видит свои заявки,
// консультант - заявки к нему. Админ и гость доступа не имеют.
func (s *Service) ListMine(ctx context.Context, session domain.SessionContext) (*models.ConsultationListResponse, error) {
	var (
		list []*domain.Consultation
		err  error
	)

	switch {
	case session.IsStudent():
		list, err = s.consultationRepo.ListByStudent(ctx, session.UserID)
	case session.IsCounselor():
		list, err = s.consultationRepo.ListByCounselor(ctx, session.UserID)
	default:
		s.logger.Warn("ListMine: role=%s has no consultations", session.Role)
		return nil, ErrAccessDenied
	}
	if err != nil {
		s.logger.Error("ListMine: repository error for user=%s: %v", session.UserID, err)
		return nil, fmt.Errorf("%w: ListMine - repository error: %v", ErrStoreUnavailable, err)
	}

	resp, err := s.toList(ctx, list)
	if err != nil {
		return nil, err
	}

	s.logger.Info("ListMine: user=%s, role=%s, count=%d", session.UserID, session.Role, resp.Total)
	return resp, nil
}

// ListAll все консультации с именами участников, новые сверху. Только для админа.
func (s *Service) ListAll(ctx context.Context, session domain.SessionContext) (*models.ConsultationListResponse, error) {
	if !session.IsAdmin() {
		s.logger.Warn("ListAll: role=%s is not allowed", session.Role)
		return nil, ErrAccessDenied
	}

	list, err := s.consultationRepo.ListAll(ctx)
	if err != nil {
		s.logger.Error("ListAll: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListAll - repository error: %v", ErrStoreUnavailable, err)
	}

	resp, err := s.toList(ctx, list)
	if err != nil {
		return nil, err
	}

	s.logger.Info("ListAll: admin=%s, count=%d", session.UserID, resp.Total)
	return resp, nil
}

// GetByID консультация по ID. Доступна только участникам и админу.
func (s *Service) GetByID(ctx context.Context, session domain.SessionContext, id int64) (*models.ConsultationResponse, error) {
	if session.IsGuest() {
		return nil, ErrAccessDenied
	}

	c, err := s.consultationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, consultationRepo.ErrConsultationNotFound) {
			s.logger.Warn("GetByID: consultation id=%d not found", id)
			return nil, ErrConsultationNotFound
		}
		s.logger.Error("GetByID: repository error for consultation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrStoreUnavailable, err)
	}

	if !session.IsAdmin() && !c.IsParticipant(session.UserID) {
		s.logger.Warn("GetByID: access denied for user=%s to consultation id=%d", session.UserID, id)
		return nil, ErrAccessDenied
	}

	list, err := s.toList(ctx, []*domain.Consultation{c})
	if err != nil {
		return nil, err
	}
	return &list.Consultations[0], nil
}

func (s *Service) toList(ctx context.Context, list []*domain.Consultation) (*models.ConsultationListResponse, error) {
	ids := make([]uuid.UUID, 0, len(list)*2)
	for _, c := range list {
		ids = append(ids, c.StudentID, c.CounselorID)
	}

	users, err := s.userRepo.GetByIDs(ctx, ids)
	if err != nil {
		s.logger.Error("consultations: failed to load participants: %v", err)
		return nil, fmt.Errorf("%w: load participants: %v", ErrStoreUnavailable, err)
	}

	resp := &models.ConsultationListResponse{
		Consultations: make([]models.ConsultationResponse, 0, len(list)),
		Total:         len(list),
	}
	for _, c := range list {
		item := models.FromDomainConsultation(c, s.videoBaseURL)
		if u, ok := users[c.StudentID]; ok {
			item.StudentName = u.DisplayName()
		}
		if u, ok := users[c.CounselorID]; ok {
			item.CounselorName = u.DisplayName()
		}
		resp.Consultations = append(resp.Consultations, item)
	}
	return resp, nil
}
