package entity

import "time"

type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RoleProvider UserRole = "provider"
)

func (r UserRole) Valid() bool {
	return r == RoleCustomer || r == RoleProvider
}

// ApprovalStatus gates provider logins. Customers keep the default and it is never consulted.
type ApprovalStatus string

const (
	StatusPending  ApprovalStatus = "pending"
	StatusApproved ApprovalStatus = "approved"
	StatusRejected ApprovalStatus = "rejected"
)

func (s ApprovalStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

type AuthProvider string

const (
	AuthProviderEmail    AuthProvider = "email"
	AuthProviderGoogle   AuthProvider = "google"
	AuthProviderFacebook AuthProvider = "facebook"
)

type User struct {
	Base
	Email        string         `db:"email"`
	Username     *string        `db:"username"`
	PasswordHash string         `db:"password"`
	Role         UserRole       `db:"role"`
	IsVerified   bool           `db:"is_verified"`
	Status       ApprovalStatus `db:"status"`
	IsActive     bool           `db:"is_active"`
	IsStaff      bool           `db:"is_staff"`
	AuthProvider AuthProvider   `db:"auth_provider"`
	LastLoginAt  *time.Time     `db:"last_login_at"`
}

// CanLogin reports whether the account passed its verification and approval gates.
func (u *User) CanLogin() bool {
	if !u.IsVerified {
		return false
	}
	if u.Role == RoleProvider {
		return u.Status == StatusApproved
	}
	return true
}
