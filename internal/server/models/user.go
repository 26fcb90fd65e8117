// Package models holds the records the server persists.
package models

import "time"

// Role is the access level of a user.
type Role string

const (
	RoleUser  Role = "User"
	RoleAdmin Role = "Admin"
)

// User is an account. PasswordHash and RefreshToken never leave the server.
// RefreshToken is empty when no session is active.
type User struct {
	ID           string    `json:"id"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	RefreshToken string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// HasRole reports whether the user's role is one of roles.
func (u *User) HasRole(roles ...Role) bool {
	for _, r := range roles {
		if u.Role == r {
			return true
		}
	}
	return false
}
