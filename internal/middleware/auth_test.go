package middleware

import (
	"net/http/httptest"
	"testing"

	"paylink/internal/models"
	"paylink/internal/repositories"
	"paylink/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	users map[uint]*models.User
}

func (f *fakeUserRepo) Create(*models.User) error           { return nil }
func (f *fakeUserRepo) CreateWithWallet(*models.User) error { return nil }
func (f *fakeUserRepo) GetByID(id uint) (*models.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, repositories.ErrUserNotFound
}
func (f *fakeUserRepo) GetByEmail(string) (*models.User, error) { return nil, repositories.ErrUserNotFound }
func (f *fakeUserRepo) GetByPhone(string) (*models.User, error) { return nil, repositories.ErrUserNotFound }
func (f *fakeUserRepo) Update(*models.User) error               { return nil }
func (f *fakeUserRepo) IncrementTokenVersion(uint) error        { return nil }
func (f *fakeUserRepo) List(int, int) ([]models.User, error)    { return nil, nil }
func (f *fakeUserRepo) CountAll() (int64, error)                { return 0, nil }
func (f *fakeUserRepo) CountVerified() (int64, error)           { return 0, nil }

func newAuthApp(t *testing.T, user *models.User) *fiber.App {
	t.Setenv("JWT_SECRET", "test-secret")
	repo := &fakeUserRepo{users: map[uint]*models.User{user.ID: user}}
	m := NewAuthMiddleware(repo, nil)

	app := fiber.New()
	app.Get("/protected", m.Handler, func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func tokenFor(t *testing.T, user *models.User) string {
	t.Helper()
	access, _, err := utils.GenerateTokens(&models.UserClaims{
		UserID:       user.ID,
		Role:         models.RoleFor(user),
		IsVerified:   user.IsVerified,
		TokenVersion: user.TokenVersion,
	})
	require.NoError(t, err)
	return access
}

func TestAuthMiddlewareAcceptsValidToken(t *testing.T) {
	user := &models.User{ID: 1, IsActive: true, TokenVersion: 1}
	app := newAuthApp(t, user)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, user))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAuthMiddlewareRejectsStaleTokenVersion(t *testing.T) {
	user := &models.User{ID: 1, IsActive: true, TokenVersion: 1}
	app := newAuthApp(t, user)
	token := tokenFor(t, user)

	// Logout or a password change bumps the version after issuance.
	user.TokenVersion = 2

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddlewareRejectsInactiveUser(t *testing.T) {
	user := &models.User{ID: 1, IsActive: false, TokenVersion: 1}
	app := newAuthApp(t, user)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, user))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestAuthMiddlewareRejectsMissingHeader(t *testing.T) {
	user := &models.User{ID: 1, IsActive: true, TokenVersion: 1}
	app := newAuthApp(t, user)

	resp, err := app.Test(httptest.NewRequest("GET", "/protected", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
