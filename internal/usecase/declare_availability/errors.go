package declare_availability

import (
	"fmt"

	"github.com/m04kA/SMC-ConsultationService/internal/domain"
)

var (
	// ErrAuthorization возвращается, когда доступность объявляет не консультант
	ErrAuthorization = fmt.Errorf("declare_availability: %w", domain.ErrAuthorization)

	// ErrInvalidRange возвращается при некорректном диапазоне, длительности или дате
	ErrInvalidRange = fmt.Errorf("declare_availability: %w", domain.ErrInvalidRange)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("declare_availability: %w", domain.ErrInvalidInput)

	// ErrStoreUnavailable возвращается при ошибках хранилища
	ErrStoreUnavailable = fmt.Errorf("declare_availability: %w", domain.ErrStoreUnavailable)
)
