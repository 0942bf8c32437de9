package model

import "time"

// Role gates access to mutation endpoints.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleStaff    Role = "staff"
	RoleAdmin    Role = "admin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleStaff, RoleAdmin:
		return true
	}
	return false
}

// IsStaff is true for staff and admin accounts.
func (r Role) IsStaff() bool {
	return r == RoleStaff || r == RoleAdmin
}

// User is an account able to log in. PasswordHash and reset fields never leave the API.
type User struct {
	ID                 string     `json:"id"`
	Username           string     `json:"username"`
	Email              string     `json:"email"`
	PasswordHash       string     `json:"-"`
	Role               Role       `json:"role"`
	ResetTokenHash     string     `json:"-"`
	ResetTokenExpireAt *time.Time `json:"-"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}
