package domain

import "time"

const (
	RoleAdmin  = "admin"
	RoleAgent  = "agent"
	RoleClient = "client"
)

// ValidRole reports whether role belongs to the fixed role set.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleAgent, RoleClient:
		return true
	}
	return false
}

// Account models an identity that can sign in to the site or the backoffice.
// Accounts are never hard-deleted; visibility is controlled by IsActive.
type Account struct {
	ID            int64
	FullName      string
	Email         string
	PasswordHash  string
	Role          string
	IsActive      int
	Phone         string
	PersonType    string
	PreferredLang string
	CreatedAt     time.Time
	UpdatedAt     time.Time
	LastLoginAt   time.Time
}

// Active reports whether the account may authenticate.
func (a *Account) Active() bool {
	return a != nil && a.IsActive == 1
}

// IsAdmin reports whether the account may enter the backoffice.
func (a *Account) IsAdmin() bool {
	return a != nil && a.Role == RoleAdmin
}
