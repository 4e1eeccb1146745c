package types

import "time"

// Role is the authorization level of a user account.
type Role string

const (
	// RoleStudent can browse approved jobs and apply to them.
	RoleStudent Role = "STUDENT"
	// RoleEmployer can post jobs and manage their own postings.
	RoleEmployer Role = "EMPLOYER"
	// RoleAdmin can approve/reject jobs and manage user accounts.
	RoleAdmin Role = "ADMIN"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleEmployer, RoleAdmin:
		return true
	default:
		return false
	}
}

// UserStatus is the activation state of a user account.
type UserStatus string

const (
	// UserActive accounts can log in.
	UserActive UserStatus = "ACTIVE"
	// UserInactive accounts are disabled and cannot log in.
	UserInactive UserStatus = "INACTIVE"
)

// User represents an account in the system.
// It contains identity, role, and audit metadata.
type User struct {
	// ID is the unique identifier of the user.
	ID int `json:"id" db:"user_id"`

	// FullName is the user's display name.
	FullName string `json:"full_name" db:"full_name"`

	// Email is the user's email address. Unique across all accounts and
	// used as the login identifier.
	Email string `json:"email" db:"email"`

	// Role indicates the user's authorization level within the system.
	Role Role `json:"role" db:"role"`

	// Status controls whether the account may authenticate.
	// Mutated only by admins.
	Status UserStatus `json:"status" db:"status"`

	// PasswordHash stores the bcrypt hash of the user's password.
	// This field is never exposed in API responses.
	PasswordHash string `json:"-" db:"password_hash"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
