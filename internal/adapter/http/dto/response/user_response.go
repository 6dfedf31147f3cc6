package response

import (
	"time"

	"tallerpro/internal/domain/entities"
)

// UserResponse mirrors entities.User and keeps "name" for clients of the
// minimal user shape.
type UserResponse struct {
	ID           string          `json:"id"`
	FullName     string          `json:"full_name"`
	Name         string          `json:"name"`
	Email        string          `json:"email"`
	Role         string          `json:"role"`
	EmployeeCode string          `json:"employee_code,omitempty"`
	Active       bool            `json:"active"`
	Permissions  map[string]bool `json:"permissions"`
	HourlyRate   float64         `json:"hourly_rate"`
	CreatedAt    time.Time       `json:"created_at"`
}

func FromUser(u entities.User) UserResponse {
	return UserResponse{
		ID:           u.ID,
		FullName:     u.FullName,
		Name:         u.FullName,
		Email:        u.Email,
		Role:         string(u.Role),
		EmployeeCode: u.EmployeeCode,
		Active:       u.Active,
		Permissions:  u.Permissions,
		HourlyRate:   u.HourlyRate,
		CreatedAt:    u.CreatedAt,
	}
}

type UserEnvelope struct {
	OK   bool         `json:"ok"`
	User UserResponse `json:"user"`
}

type UserListResponse struct {
	OK    bool           `json:"ok"`
	Users []UserResponse `json:"users"`
}

func FromUsers(users []entities.User) UserListResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, FromUser(u))
	}
	return UserListResponse{OK: true, Users: out}
}

type LoginResponse struct {
	OK      bool             `json:"ok"`
	User    UserResponse     `json:"user"`
	Session entities.Session `json:"session"`
}

type SessionResponse struct {
	OK      bool             `json:"ok"`
	Session entities.Session `json:"session"`
}
