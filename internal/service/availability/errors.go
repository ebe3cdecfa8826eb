package availability

import (
	"fmt"

	"github.com/m04kA/SMC-ConsultationService/internal/domain"
)

var (
	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = fmt.Errorf("availability: %w", domain.ErrSlotNotFound)

	// ErrSlotBooked возвращается при попытке удалить забронированный слот
	ErrSlotBooked = fmt.Errorf("availability: %w", domain.ErrSlotAlreadyBooked)

	// ErrAccessDenied возвращается, когда слотом управляет не его владелец
	ErrAccessDenied = fmt.Errorf("availability: %w", domain.ErrAuthorization)

	// ErrStoreUnavailable возвращается при ошибках хранилища
	ErrStoreUnavailable = fmt.Errorf("availability: %w", domain.ErrStoreUnavailable)
)
