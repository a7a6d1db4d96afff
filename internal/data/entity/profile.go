package entity

import (
	"time"

	"github.com/google/uuid"
)

type CustomerProfile struct {
	BaseNoDelete
	UserID     uuid.UUID `db:"user_id"`
	Phone      *string   `db:"phone"`
	Location   *string   `db:"location"`
	IsComplete bool      `db:"is_complete"`
}

type ProviderProfile struct {
	BaseNoDelete
	UserID      uuid.UUID `db:"user_id"`
	Skills      *string   `db:"skills"`
	ServiceArea *string   `db:"service_area"`
	HourlyRate  *float64  `db:"hourly_rate"`
	Location    *string   `db:"location"`
	IsComplete  bool      `db:"is_complete"`
}

type ProfileKind int

const (
	NoProfile ProfileKind = iota
	CustomerKind
	ProviderKind
)

func (k ProfileKind) String() string {
	switch k {
	case CustomerKind:
		return "customer"
	case ProviderKind:
		return "provider"
	}
	return "none"
}

// Profile is the role profile of an account. Exactly one of Customer and
// Provider is set, matching Kind.
type Profile struct {
	Kind     ProfileKind
	Customer *CustomerProfile
	Provider *ProviderProfile
}

func NewCustomerProfile(p *CustomerProfile) Profile {
	return Profile{Kind: CustomerKind, Customer: p}
}

func NewProviderProfile(p *ProviderProfile) Profile {
	return Profile{Kind: ProviderKind, Provider: p}
}

func (p Profile) IsComplete() bool {
	switch p.Kind {
	case CustomerKind:
		return p.Customer.IsComplete
	case ProviderKind:
		return p.Provider.IsComplete
	}
	return false
}

// Matches reports whether the profile variant belongs to role.
func (p Profile) Matches(role UserRole) bool {
	return (p.Kind == CustomerKind && role == RoleCustomer) ||
		(p.Kind == ProviderKind && role == RoleProvider)
}

// EmptyProfileFor builds the incomplete profile created alongside a new account.
func EmptyProfileFor(userID uuid.UUID, role UserRole, now time.Time) Profile {
	base := BaseNoDelete{ID: uuid.New(), CreatedAt: now, UpdatedAt: now}
	switch role {
	case RoleCustomer:
		return NewCustomerProfile(&CustomerProfile{BaseNoDelete: base, UserID: userID})
	case RoleProvider:
		return NewProviderProfile(&ProviderProfile{BaseNoDelete: base, UserID: userID})
	}
	return Profile{}
}
