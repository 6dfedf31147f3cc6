package request

import (
	"strings"

	"tallerpro/internal/usecase"
)

// CreateUserRequest accepts "name" as an alias of "full_name" for older
// clients.
type CreateUserRequest struct {
	FullName     string          `json:"full_name"`
	Name         string          `json:"name"`
	Email        string          `json:"email"`
	Role         string          `json:"role"`
	EmployeeCode string          `json:"employee_code"`
	PIN          string          `json:"pin"`
	Permissions  map[string]bool `json:"permissions"`
	HourlyRate   float64         `json:"hourly_rate"`
}

func (r CreateUserRequest) ToInput() usecase.CreateUserInput {
	return usecase.CreateUserInput{
		FullName:     firstNonBlank(r.FullName, r.Name),
		Email:        strings.TrimSpace(r.Email),
		Role:         r.Role,
		EmployeeCode: r.EmployeeCode,
		PIN:          r.PIN,
		Permissions:  r.Permissions,
		HourlyRate:   r.HourlyRate,
	}
}

type SetUserActiveRequest struct {
	Active *bool `json:"active"`
}
