package domain

import "errors"

// Engine error taxonomy. Every layer wraps its failures into one of these
// so handlers can map them with errors.Is.
var (
	ErrInvalidRange           = errors.New("invalid time range")
	ErrInvalidInput           = errors.New("invalid input")
	ErrSlotNotFound           = errors.New("slot not found")
	ErrSlotAlreadyBooked      = errors.New("slot already booked, pick another slot")
	ErrAuthorization          = errors.New("not authorized")
	ErrInvalidStateTransition = errors.New("invalid consultation state transition")
	ErrConsultationNotFound   = errors.New("consultation not found")
	ErrUserNotFound           = errors.New("user not found")
	ErrStoreUnavailable       = errors.New("store unavailable")
)
