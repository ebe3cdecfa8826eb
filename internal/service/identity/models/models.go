package models

import (
	"time"

	"github.com/m04kA/SMC-ConsultationService/internal/domain"
)

// UserResponse профиль пользователя
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// UserListResponse список пользователей
type UserListResponse struct {
	Users []UserResponse `json:"users"`
	Total int            `json:"total"`
}

// UpdateRoleRequest запрос на смену роли
type UpdateRoleRequest struct {
	Role string `json:"role"`
}

// FromDomainUser конвертирует domain.User в ответ
func FromDomainUser(u *domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID.String(),
		Email:     u.Email,
		Name:      u.Name,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
}

// FromDomainUserList конвертирует список пользователей
func FromDomainUserList(users []*domain.User) *UserListResponse {
	resp := &UserListResponse{
		Users: make([]UserResponse, 0, len(users)),
		Total: len(users),
	}
	for _, u := range users {
		resp.Users = append(resp.Users, FromDomainUser(u))
	}
	return resp
}
