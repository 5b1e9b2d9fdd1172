// Package middleware provides the HTTP middleware stack: JWT auth, role
// gates, request identification, locale negotiation and rate limiting.
package middleware

import (
	"strings"

	"paylink/internal/models"
	"paylink/internal/repositories"
	"paylink/internal/repositories/cache"
	"paylink/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// AuthMiddleware validates bearer tokens and loads the claims into the
// request context under "claims".
type AuthMiddleware struct {
	users    repositories.UserRepository
	cacheSvc *cache.CacheService
}

// NewAuthMiddleware creates the auth middleware. cacheSvc may be nil, in
// which case every request hits the database for the user row.
func NewAuthMiddleware(users repositories.UserRepository, cacheSvc *cache.CacheService) *AuthMiddleware {
	if users == nil {
		panic("user repo is required")
	}
	return &AuthMiddleware{users: users, cacheSvc: cacheSvc}
}

// Handler checks the Authorization header, the token signature and
// expiry, and that the token version still matches the user row. A
// version mismatch means the user logged out or changed their password
// after this token was issued.
func (m *AuthMiddleware) Handler(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return utils.Unauthorized(c, "Not authenticated")
	}
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return utils.Unauthorized(c, "Invalid authorization format")
	}

	claims, err := utils.ParseToken(strings.TrimPrefix(authHeader, "Bearer "))
	if err != nil {
		return utils.Unauthorized(c, "Could not validate credentials")
	}

	snap, err := m.userSnapshot(c, claims.UserID)
	if err != nil {
		return utils.Unauthorized(c, "Could not validate credentials")
	}
	if snap.TokenVersion != claims.TokenVersion {
		return utils.Unauthorized(c, "Token has been revoked")
	}
	if !snap.IsActive {
		return utils.BadRequest(c, "Inactive user")
	}

	c.Locals("claims", claims)
	return c.Next()
}

// userSnapshot loads the auth-relevant user fields, serving from the
// cache when possible. Mutations invalidate the entry at the repository,
// so a hit is never stale past a logout or status change.
func (m *AuthMiddleware) userSnapshot(c *fiber.Ctx, userID uint) (*cache.UserSnapshot, error) {
	if m.cacheSvc != nil {
		if snap, err := m.cacheSvc.GetUser(c.Context(), userID); err == nil {
			return snap, nil
		}
	}

	user, err := m.users.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if m.cacheSvc != nil {
		_ = m.cacheSvc.CacheUser(c.Context(), user)
	}
	return cache.SnapshotUser(user), nil
}

// AdminRequired allows only admin principals. Must run after Handler.
func AdminRequired(c *fiber.Ctx) error {
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "Not authenticated")
	}
	if !claims.IsAdmin() {
		return utils.Forbidden(c, "The user doesn't have enough privileges")
	}
	return c.Next()
}

// VerifiedRequired allows only verified users. Must run after Handler.
func VerifiedRequired(c *fiber.Ctx) error {
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "Not authenticated")
	}
	if !claims.IsVerified && claims.Role != models.RoleAdmin {
		return utils.Forbidden(c, "Account verification required")
	}
	return c.Next()
}
