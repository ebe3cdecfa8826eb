package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is a stored profile with its role
type User struct {
	ID        uuid.UUID
	Email     string
	Name      string
	Role      Role
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsCounselor returns true if the user currently holds the counselor role
func (u *User) IsCounselor() bool {
	return u != nil && u.Role == RoleCounselor
}

// DisplayName returns the name, falling back to email
func (u *User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}
