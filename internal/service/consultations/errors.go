package consultations

import (
	"fmt"

	"github.com/m04kA/SMC-ConsultationService/internal/domain"
)

var (
	// ErrConsultationNotFound возвращается, когда консультация не найдена
	ErrConsultationNotFound = fmt.Errorf("consultations: %w", domain.ErrConsultationNotFound)

	// ErrAccessDenied возвращается, когда пользователь не участник консультации
	ErrAccessDenied = fmt.Errorf("consultations: %w", domain.ErrAuthorization)

	// ErrStoreUnavailable возвращается при ошибках хранилища
	ErrStoreUnavailable = fmt.Errorf("consultations: %w", domain.ErrStoreUnavailable)
)
