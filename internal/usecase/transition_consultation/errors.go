package transition_consultation

import (
	"fmt"

	"github.com/m04kA/SMC-ConsultationService/internal/domain"
)

var (
	// ErrAuthorization возвращается, когда переход выполняет не консультант-владелец
	ErrAuthorization = fmt.Errorf("transition_consultation: %w", domain.ErrAuthorization)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("transition_consultation: %w", domain.ErrInvalidInput)

	// ErrConsultationNotFound возвращается, когда консультация не найдена
	ErrConsultationNotFound = fmt.Errorf("transition_consultation: %w", domain.ErrConsultationNotFound)

	// ErrInvalidStateTransition возвращается при недопустимом переходе
	ErrInvalidStateTransition = fmt.Errorf("transition_consultation: %w", domain.ErrInvalidStateTransition)

	// ErrVideoUnavailable возвращается, если не удалось создать комнату видеосвязи
	ErrVideoUnavailable = fmt.Errorf("transition_consultation: video rooms: %w", domain.ErrStoreUnavailable)

	// ErrStoreUnavailable возвращается при ошибках хранилища
	ErrStoreUnavailable = fmt.Errorf("transition_consultation: %w", domain.ErrStoreUnavailable)
)
