package models

import (
	"time"
)

// Profile roles
const (
	RoleMember = "member"
	RoleAdmin  = "admin"
)

// Membership statuses. Rejected is a valid terminal state an operator may
// set directly in the store; no transition in this codebase produces it.
const (
	StatusPending  = "pending"
	StatusActive   = "active"
	StatusRejected = "rejected"
)

// Profile is the persisted account record, distinct from raw credentials.
// It shares its ID with the credential row that authenticates it.
type Profile struct {
	ID        string
	Name      string
	Email     string
	Role      string // "member" or "admin"
	Status    string // "pending", "active", "rejected"
	Favorites []string
	Alerts    []PropertyAlert
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Credential is an email/password record held by the credential store.
type Credential struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// PropertyAlert is a saved search criterion owned by exactly one profile.
// IDs are unique within the owning profile's alert list, not globally.
type PropertyAlert struct {
	ID       string  `json:"id"`
	Type     string  `json:"type,omitempty"`
	Location string  `json:"location,omitempty"`
	MaxPrice float64 `json:"max_price,omitempty"`
	MinBeds  int     `json:"min_beds,omitempty"`
}

// ValidRole reports whether role is one of the known profile roles.
func ValidRole(role string) bool {
	return role == RoleMember || role == RoleAdmin
}

// IsFavorite reports whether propertyID is in the profile's favorite set.
func (p *Profile) IsFavorite(propertyID string) bool {
	for _, id := range p.Favorites {
		if id == propertyID {
			return true
		}
	}
	return false
}
