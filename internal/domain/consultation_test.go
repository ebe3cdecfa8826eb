package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPending(t *testing.T) *Consultation {
	t.Helper()
	slot := &AvailabilitySlot{
		ID:          7,
		CounselorID: uuid.New(),
		Date:        date(t, "2025-03-10"),
		StartTime:   ts(t, "10:00"),
		EndTime:     ts(t, "11:00"),
	}
	return NewPendingConsultation(slot, uuid.New())
}

func TestNewPendingConsultation_CopiesSlot(t *testing.T) {
	c := newPending(t)

	assert.Equal(t, StatusPending, c.Status)
	assert.Equal(t, int64(7), c.SourceSlotID)
	assert.Equal(t, "10:00", c.StartTime.String())
	assert.Nil(t, c.VideoToken)
}

func TestConsultation_ValidateTransition(t *testing.T) {
	tests := []struct {
		name    string
		current ConsultationStatus
		target  ConsultationStatus
		wantErr bool
	}{
		{name: "pending to accepted", current: StatusPending, target: StatusAccepted},
		{name: "pending to rejected", current: StatusPending, target: StatusRejected},
		{name: "pending to pending", current: StatusPending, target: StatusPending, wantErr: true},
		{name: "unknown target", current: StatusPending, target: "cancelled", wantErr: true},
		{name: "accepted is final", current: StatusAccepted, target: StatusRejected, wantErr: true},
		{name: "rejected is final", current: StatusRejected, target: StatusAccepted, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newPending(t)
			c.Status = tt.current

			err := c.ValidateTransition(tt.target)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidStateTransition)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.current, c.Status)
		})
	}
}

func TestConsultation_Participants(t *testing.T) {
	c := newPending(t)

	assert.True(t, c.IsOwnedByCounselor(c.CounselorID))
	assert.False(t, c.IsOwnedByCounselor(c.StudentID))
	assert.True(t, c.IsParticipant(c.StudentID))
	assert.True(t, c.IsParticipant(c.CounselorID))
	assert.False(t, c.IsParticipant(uuid.New()))
}

func TestSessionContext_Roles(t *testing.T) {
	assert.True(t, GuestSession().IsGuest())
	assert.True(t, SessionContext{Role: RoleStudent}.IsGuest())

	s := SessionContext{UserID: uuid.New(), Role: RoleCounselor}
	assert.False(t, s.IsGuest())
	assert.True(t, s.IsCounselor())
	assert.False(t, s.IsStudent())

	_, err := ParseRole("guest")
	assert.ErrorIs(t, err, ErrInvalidInput)
	r, err := ParseRole(" Admin ")
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, r)
}
