package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ConsultationService/pkg/types"
)

// ConsultationStatus represents the status of a consultation
type ConsultationStatus string

const (
	StatusPending  ConsultationStatus = "pending"
	StatusAccepted ConsultationStatus = "accepted"
	StatusRejected ConsultationStatus = "rejected"
)

// IsValid returns true for known statuses
func (s ConsultationStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusRejected:
		return true
	}
	return false
}

// IsTerminal returns true if no further transitions are allowed
func (s ConsultationStatus) IsTerminal() bool {
	return s == StatusAccepted || s == StatusRejected
}

// Consultation is a booking of one slot by a student.
// It is created pending and resolved once by the owning counselor.
type Consultation struct {
	ID           int64
	StudentID    uuid.UUID
	CounselorID  uuid.UUID
	Date         time.Time
	StartTime    types.TimeString
	EndTime      types.TimeString
	Status       ConsultationStatus
	VideoToken   *string
	SourceSlotID int64

	CreatedAt  time.Time
	UpdatedAt  time.Time
	ResolvedAt *time.Time
}

// NewPendingConsultation builds the consultation produced by booking slot
func NewPendingConsultation(slot *AvailabilitySlot, studentID uuid.UUID) *Consultation {
	return &Consultation{
		StudentID:    studentID,
		CounselorID:  slot.CounselorID,
		Date:         NormalizeDate(slot.Date),
		StartTime:    slot.StartTime,
		EndTime:      slot.EndTime,
		Status:       StatusPending,
		SourceSlotID: slot.ID,
	}
}

// IsOwnedByCounselor returns true if the counselor drives this consultation's lifecycle
func (c *Consultation) IsOwnedByCounselor(counselorID uuid.UUID) bool {
	return c.CounselorID == counselorID
}

// IsParticipant returns true if the user is the student or the counselor
func (c *Consultation) IsParticipant(userID uuid.UUID) bool {
	return c.StudentID == userID || c.CounselorID == userID
}

// ValidateTransition checks that target is a terminal status reachable from the current one
func (c *Consultation) ValidateTransition(target ConsultationStatus) error {
	if !target.IsTerminal() {
		return ErrInvalidStateTransition
	}
	if c.Status != StatusPending {
		return ErrInvalidStateTransition
	}
	return nil
}
