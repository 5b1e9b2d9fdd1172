// Package handlers contains the HTTP layer: request parsing, status
// mapping and response shaping. Business rules live in the services.
package handlers

import (
	"errors"

	"paylink/internal/logger"
	"paylink/internal/models"
	"paylink/internal/repositories"
	"paylink/internal/services/auth"
	"paylink/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService auth.Service
}

func NewAuthHandler(authService auth.Service) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input models.CreateUserInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}

	user, err := h.authService.Register(c.Context(), &input)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrDuplicateEmail):
			return utils.BadRequest(c, "A user with this email already exists")
		case errors.Is(err, repositories.ErrDuplicatePhone):
			return utils.BadRequest(c, "A user with this phone already exists")
		default:
			return utils.BadRequest(c, err.Error())
		}
	}

	return utils.Created(c, user)
}

// Login accepts a form-encoded body with username (email or phone) and
// password fields.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	username := c.FormValue("username")
	password := c.FormValue("password")
	if username == "" || password == "" {
		return utils.BadRequest(c, "Username and password are required")
	}

	user, pair, err := h.authService.Login(username, password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInactiveUser):
			return utils.BadRequest(c, "Inactive user")
		case errors.Is(err, auth.ErrInvalidCredentials):
			return utils.Unauthorized(c, "Incorrect username or password")
		default:
			logger.Errorf("login failed: %v", err)
			return utils.InternalError(c)
		}
	}

	return utils.Success(c, fiber.Map{
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
		"token_type":    pair.TokenType,
		"user":          user,
	})
}

func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var input struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := c.BodyParser(&input); err != nil || input.RefreshToken == "" {
		return utils.BadRequest(c, "Refresh token is required")
	}

	pair, err := h.authService.RefreshTokens(input.RefreshToken)
	if err != nil {
		if errors.Is(err, auth.ErrInactiveUser) {
			return utils.BadRequest(c, "Inactive user")
		}
		return utils.Unauthorized(c, "Could not validate credentials")
	}
	return utils.Success(c, pair)
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "Not authenticated")
	}
	if err := h.authService.Logout(claims.UserID); err != nil {
		logger.Errorf("logout failed for user %d: %v", claims.UserID, err)
		return utils.InternalError(c)
	}
	return utils.Success(c, fiber.Map{"message": "Logged out successfully"})
}

// Verify redeems a verification code. The :type path parameter selects
// email or phone; password reset codes are redeemed via ResetPassword.
func (h *AuthHandler) Verify(c *fiber.Ctx) error {
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "Not authenticated")
	}

	codeType := c.Params("type")
	if !validCodeType(codeType) {
		return utils.BadRequest(c, "Invalid verification type")
	}

	var input struct {
		Code string `json:"code"`
	}
	if err := c.BodyParser(&input); err != nil || input.Code == "" {
		return utils.BadRequest(c, "Verification code is required")
	}

	if err := h.authService.Verify(claims.UserID, codeType, input.Code); err != nil {
		switch {
		case errors.Is(err, auth.ErrNoValidCode):
			return utils.BadRequest(c, "No valid verification code found")
		case errors.Is(err, auth.ErrInvalidCode):
			return utils.BadRequest(c, "Invalid verification code")
		default:
			logger.Errorf("verification failed for user %d: %v", claims.UserID, err)
			return utils.InternalError(c)
		}
	}
	return utils.Success(c, fiber.Map{"message": "Verification successful"})
}

func (h *AuthHandler) ResendVerification(c *fiber.Ctx) error {
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "Not authenticated")
	}

	codeType := c.Params("type")
	if !validCodeType(codeType) {
		return utils.BadRequest(c, "Invalid verification type")
	}

	if err := h.authService.ResendVerification(c.Context(), claims.UserID, codeType); err != nil {
		switch {
		case errors.Is(err, auth.ErrNoEmail):
			return utils.BadRequest(c, "User has no email address")
		case errors.Is(err, auth.ErrNoPhone):
			return utils.BadRequest(c, "User has no phone number")
		default:
			logger.Errorf("code resend failed for user %d: %v", claims.UserID, err)
			return utils.InternalError(c)
		}
	}
	return utils.Success(c, fiber.Map{"message": "Verification code sent"})
}

func validCodeType(codeType string) bool {
	return codeType == models.VerificationTypeEmail || codeType == models.VerificationTypePhone
}

// ForgotPassword issues a password reset code. The response is the same
// whether or not the identifier matches an account.
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var input struct {
		Identifier string `json:"identifier"`
	}
	if err := c.BodyParser(&input); err != nil || input.Identifier == "" {
		return utils.BadRequest(c, "Identifier is required")
	}

	if err := h.authService.ForgotPassword(c.Context(), input.Identifier); err != nil {
		if !errors.Is(err, repositories.ErrUserNotFound) {
			logger.Errorf("failed to issue reset code for %q: %v", input.Identifier, err)
		}
	}
	return utils.Success(c, fiber.Map{"message": "If the account exists, a reset code has been sent"})
}

func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var input struct {
		Identifier  string `json:"identifier"`
		Code        string `json:"code"`
		NewPassword string `json:"new_password"`
	}
	if err := c.BodyParser(&input); err != nil || input.Identifier == "" || input.Code == "" {
		return utils.BadRequest(c, "Identifier and code are required")
	}

	if err := h.authService.ResetPassword(input.Identifier, input.Code, input.NewPassword); err != nil {
		switch {
		case errors.Is(err, auth.ErrWeakPassword):
			return utils.BadRequest(c, auth.ErrWeakPassword.Error())
		case errors.Is(err, repositories.ErrUserNotFound), errors.Is(err, auth.ErrNoValidCode):
			return utils.BadRequest(c, "No valid verification code found")
		case errors.Is(err, auth.ErrInvalidCode):
			return utils.BadRequest(c, "Invalid verification code")
		default:
			logger.Errorf("password reset failed for %q: %v", input.Identifier, err)
			return utils.InternalError(c)
		}
	}
	return utils.Success(c, fiber.Map{"message": "Password has been reset"})
}
