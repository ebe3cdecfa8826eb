package identity

import (
	"fmt"

	"github.com/m04kA/SMC-ConsultationService/internal/domain"
)

var (
	// ErrInvalidIdentity возвращается при некорректных заголовках идентичности
	ErrInvalidIdentity = fmt.Errorf("identity: %w", domain.ErrInvalidInput)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("identity: %w", domain.ErrInvalidInput)

	// ErrAccessDenied возвращается, когда операцию выполняет не админ
	ErrAccessDenied = fmt.Errorf("identity: %w", domain.ErrAuthorization)

	// ErrUserNotFound возвращается, когда пользователь не найден
	ErrUserNotFound = fmt.Errorf("identity: %w", domain.ErrUserNotFound)

	// ErrStoreUnavailable возвращается при ошибках хранилища
	ErrStoreUnavailable = fmt.Errorf("identity: %w", domain.ErrStoreUnavailable)
)
