package transition_consultation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ConsultationService/internal/domain"
	consultationRepo "github.com/m04kA/SMC-ConsultationService/internal/infra/storage/consultation"
	"github.com/m04kA/SMC-ConsultationService/internal/integrations/videorooms"
	"github.com/m04kA/SMC-ConsultationService/pkg/ptr"
)

// roomGracePeriod сколько комната живет после окончания консультации
const roomGracePeriod = 24 * time.Hour

// UUIDTokenGenerator выдает UUIDv4 в качестве токена видеосессии
type UUIDTokenGenerator struct{}

// NewToken возвращает новый токен
func (UUIDTokenGenerator) NewToken() string {
	return uuid.NewString()
}

// UseCase use case перехода консультации pending -> accepted | rejected
type UseCase struct {
	consultationRepo ConsultationRepository
	tokens           TokenGenerator
	rooms            RoomProvisioner
	metrics          Metrics
	videoBaseURL     string
	logger           Logger
}

// NewUseCase создает новый экземпляр use case.
// videoBaseURL может быть пустым, тогда в ответе нет VideoURL.
// rooms может быть nil, тогда комнаты у провайдера не создаются.
func NewUseCase(
	consultationRepo ConsultationRepository,
	tokens TokenGenerator,
	rooms RoomProvisioner,
	metrics Metrics,
	videoBaseURL string,
	logger Logger,
) *UseCase {
	if tokens == nil {
		tokens = UUIDTokenGenerator{}
	}
	return &UseCase{
		consultationRepo: consultationRepo,
		tokens:           tokens,
		rooms:            rooms,
		metrics:          metrics,
		videoBaseURL:     strings.TrimRight(videoBaseURL, "/"),
		logger:           logger,
	}
}

// Execute переводит консультацию в целевой статус.
// Слот, из которого создана консультация, не переоткрывается ни при каком исходе.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Переход доступен только консультантам
	if !req.Session.IsCounselor() {
		uc.logger.Warn("TransitionConsultation: role=%s is not allowed, consultation=%d",
			req.Session.Role, req.ConsultationID)
		return nil, ErrAuthorization
	}

	if req.ConsultationID <= 0 {
		return nil, fmt.Errorf("%w: consultationId must be positive", ErrInvalidInput)
	}

	if !req.Target.IsTerminal() {
		uc.logger.Warn("TransitionConsultation: unsupported target status=%q", req.Target)
		return nil, fmt.Errorf("%w: target status must be accepted or rejected", ErrInvalidStateTransition)
	}

	uc.logger.Info("TransitionConsultation: counselor=%s, consultation=%d, target=%s",
		req.Session.UserID, req.ConsultationID, req.Target)

	// 2. Получаем консультацию и проверяем владельца
	current, err := uc.consultationRepo.GetByID(ctx, req.ConsultationID)
	if err != nil {
		if errors.Is(err, consultationRepo.ErrConsultationNotFound) {
			uc.logger.Warn("TransitionConsultation: consultation=%d not found", req.ConsultationID)
			return nil, ErrConsultationNotFound
		}
		uc.logger.Error("TransitionConsultation: failed to get consultation=%d: %v", req.ConsultationID, err)
		return nil, fmt.Errorf("%w: TransitionConsultation - get consultation: %v", ErrStoreUnavailable, err)
	}

	if !current.IsOwnedByCounselor(req.Session.UserID) {
		uc.logger.Warn("TransitionConsultation: counselor=%s does not own consultation=%d",
			req.Session.UserID, req.ConsultationID)
		return nil, ErrAuthorization
	}

	// 3. Проверяем переход по текущему статусу
	if err := current.ValidateTransition(req.Target); err != nil {
		uc.logger.Warn("TransitionConsultation: consultation=%d is %s, cannot move to %s",
			req.ConsultationID, current.Status, req.Target)
		return nil, fmt.Errorf("%w: consultation is %s", ErrInvalidStateTransition, current.Status)
	}

	var token *string
	if req.Target == domain.StatusAccepted {
		t := uc.tokens.NewToken()
		if err := uc.provisionRoom(ctx, current, t); err != nil {
			return nil, err
		}
		token = &t
	}

	// 4. Условное обновление: параллельный переход получит ErrNotPending
	updated, err := uc.consultationRepo.TransitionFromPending(ctx, req.ConsultationID, req.Target, token)
	if err != nil {
		if errors.Is(err, consultationRepo.ErrNotPending) {
			uc.logger.Warn("TransitionConsultation: consultation=%d was resolved concurrently", req.ConsultationID)
			return nil, fmt.Errorf("%w: consultation is no longer pending", ErrInvalidStateTransition)
		}
		uc.logger.Error("TransitionConsultation: failed to update consultation=%d: %v", req.ConsultationID, err)
		return nil, fmt.Errorf("%w: TransitionConsultation - update status: %v", ErrStoreUnavailable, err)
	}

	uc.metrics.IncTransition(string(updated.Status))
	uc.logger.Info("TransitionConsultation: consultation=%d is %s", updated.ID, updated.Status)

	return uc.toResponse(updated), nil
}

// provisionRoom создает комнату до фиксации статуса. Уже существующая комната не ошибка.
func (uc *UseCase) provisionRoom(ctx context.Context, c *domain.Consultation, token string) error {
	if uc.rooms == nil {
		return nil
	}

	expiresAt := c.Date.Add(time.Duration(c.EndTime.Minutes())*time.Minute + roomGracePeriod)
	if _, err := uc.rooms.CreateRoom(ctx, token, expiresAt); err != nil {
		if errors.Is(err, videorooms.ErrRoomExists) {
			return nil
		}
		uc.logger.Error("TransitionConsultation: failed to create video room for consultation=%d: %v", c.ID, err)
		return fmt.Errorf("%w: %v", ErrVideoUnavailable, err)
	}
	return nil
}

func (uc *UseCase) toResponse(c *domain.Consultation) *Response {
	resp := &Response{
		ID:           c.ID,
		StudentID:    c.StudentID,
		CounselorID:  c.CounselorID,
		Date:         c.Date,
		StartTime:    c.StartTime,
		EndTime:      c.EndTime,
		Status:       string(c.Status),
		VideoToken:   c.VideoToken,
		SourceSlotID: c.SourceSlotID,
		UpdatedAt:    c.UpdatedAt,
		ResolvedAt:   c.ResolvedAt,
	}
	if c.VideoToken != nil && uc.videoBaseURL != "" {
		resp.VideoURL = ptr.Ptr(uc.videoBaseURL + "/" + *c.VideoToken)
	}
	return resp
}
