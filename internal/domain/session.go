package domain

import (
	"strings"

	"github.com/google/uuid"
)

// Role of the caller
type Role string

const (
	RoleStudent   Role = "student"
	RoleCounselor Role = "counselor"
	RoleAdmin     Role = "admin"
	RoleGuest     Role = "guest"
)

// IsValid returns true for roles that may be stored for a user (guest is never stored)
func (r Role) IsValid() bool {
	switch r {
	case RoleStudent, RoleCounselor, RoleAdmin:
		return true
	}
	return false
}

// ParseRole parses a stored role name
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.IsValid() {
		return "", ErrInvalidInput
	}
	return r, nil
}

// SessionContext is the resolved identity of a caller.
// It is passed explicitly into every engine operation.
type SessionContext struct {
	UserID uuid.UUID
	Role   Role
	Email  string
}

// GuestSession returns the session of an unauthenticated caller
func GuestSession() SessionContext {
	return SessionContext{Role: RoleGuest}
}

// IsGuest returns true for anonymous callers
func (s SessionContext) IsGuest() bool {
	return s.Role == RoleGuest || s.Role == "" || s.UserID == uuid.Nil
}

func (s SessionContext) IsStudent() bool {
	return !s.IsGuest() && s.Role == RoleStudent
}

func (s SessionContext) IsCounselor() bool {
	return !s.IsGuest() && s.Role == RoleCounselor
}

func (s SessionContext) IsAdmin() bool {
	return !s.IsGuest() && s.Role == RoleAdmin
}
