package models

import "github.com/golang-jwt/jwt/v5"

// Roles carried in token claims.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// UserClaims is the typed principal embedded in access and refresh tokens.
type UserClaims struct {
	jwt.RegisteredClaims
	UserID       uint   `json:"user_id"`
	Email        string `json:"email,omitempty"`
	Role         string `json:"role"`
	IsVerified   bool   `json:"is_verified"`
	TokenVersion int    `json:"token_version"`
}

// IsAdmin reports whether the principal carries the admin role.
func (c *UserClaims) IsAdmin() bool {
	return c.Role == RoleAdmin
}

// RoleFor maps a user record to its token role.
func RoleFor(u *User) string {
	if u.IsAdmin {
		return RoleAdmin
	}
	return RoleUser
}
