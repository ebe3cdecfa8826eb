package book_slot

import (
	"fmt"

	"github.com/m04kA/SMC-ConsultationService/internal/domain"
)

var (
	// ErrAuthorization возвращается для гостей и ролей, которым бронирование недоступно
	ErrAuthorization = fmt.Errorf("book_slot: %w", domain.ErrAuthorization)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("book_slot: %w", domain.ErrInvalidInput)

	// ErrSlotNotFound возвращается, когда слота нет или он в прошлом
	ErrSlotNotFound = fmt.Errorf("book_slot: %w", domain.ErrSlotNotFound)

	// ErrSlotAlreadyBooked возвращается, когда слот уже занят (можно выбрать другой)
	ErrSlotAlreadyBooked = fmt.Errorf("book_slot: %w", domain.ErrSlotAlreadyBooked)

	// ErrStoreUnavailable возвращается при ошибках хранилища
	ErrStoreUnavailable = fmt.Errorf("book_slot: %w", domain.ErrStoreUnavailable)
)

// Значения label result для метрики бронирований
const (
	resultSuccess       = "success"
	resultAlreadyBooked = "already_booked"
	resultNotFound      = "not_found"
	resultUnauthorized  = "unauthorized"
	resultError         = "error"
)
