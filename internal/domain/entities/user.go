package entities

import "time"

// Role is the staff role of a user.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleManager    Role = "manager"
	RoleTechnician Role = "technician"
	RoleCashier    Role = "cashier"
	RoleService    Role = "service"
)

// ParseRole validates a role string.
func ParseRole(raw string) (Role, bool) {
	switch r := Role(raw); r {
	case RoleAdmin, RoleManager, RoleTechnician, RoleCashier, RoleService:
		return r, true
	}
	return "", false
}

// CanManageUsers reports whether the role may create or deactivate staff.
func (r Role) CanManageUsers() bool {
	return r == RoleAdmin || r == RoleManager
}

// DefaultPermissions returns the permission set a new user of the role starts
// with. Permissions are stored per user and can diverge afterwards.
func DefaultPermissions(r Role) map[string]bool {
	p := map[string]bool{
		"view_orders":      true,
		"create_orders":    false,
		"change_status":    false,
		"record_payments":  false,
		"manage_inventory": false,
		"manage_users":     false,
		"view_reports":     false,
	}
	switch r {
	case RoleAdmin:
		for k := range p {
			p[k] = true
		}
	case RoleManager:
		for k := range p {
			p[k] = true
		}
		p["manage_users"] = false
	case RoleTechnician:
		p["create_orders"] = true
		p["change_status"] = true
	case RoleCashier:
		p["create_orders"] = true
		p["record_payments"] = true
	case RoleService:
		p["create_orders"] = true
		p["change_status"] = true
		p["record_payments"] = true
	}
	return p
}

// User is a staff member. PINHash holds a bcrypt hash of the 4-digit PIN and
// PINIndex a keyed digest used to find the user before comparing it. Neither
// is serialized.
type User struct {
	ID           string          `json:"id"`
	FullName     string          `json:"full_name"`
	Email        string          `json:"email"`
	Role         Role            `json:"role"`
	EmployeeCode string          `json:"employee_code,omitempty"`
	PINHash      string          `json:"-"`
	PINIndex     string          `json:"-"`
	Active       bool            `json:"active"`
	Permissions  map[string]bool `json:"permissions"`
	HourlyRate   float64         `json:"hourly_rate"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// Session asserts that a client is logged in as a user until ExpiresAt.
// LoginTime is kept for clients that read the legacy session record.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	LoginTime time.Time `json:"loginTime"`
	ExpiresAt time.Time `json:"expires_at"`
	Token     string    `json:"token,omitempty"`
}

// Expired reports whether the session is past its expiry at now.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}
