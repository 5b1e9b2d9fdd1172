package handlers

import (
	"errors"

	"paylink/internal/logger"
	"paylink/internal/services/user"
	"paylink/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type ProfileHandler struct {
	userService user.Service
}

func NewProfileHandler(userService user.Service) *ProfileHandler {
	return &ProfileHandler{userService: userService}
}

func (h *ProfileHandler) Get(c *fiber.Ctx) error {
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "Not authenticated")
	}

	profile, err := h.userService.GetProfile(claims.UserID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return utils.NotFound(c, "User not found")
		}
		logger.Errorf("failed to load profile for user %d: %v", claims.UserID, err)
		return utils.InternalError(c)
	}
	return utils.Success(c, profile)
}

func (h *ProfileHandler) UpdatePhone(c *fiber.Ctx) error {
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "Not authenticated")
	}

	var input struct {
		Phone string `json:"phone"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}

	result, err := h.userService.UpdatePhone(c.Context(), claims.UserID, input.Phone)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrPhoneRequired):
			return utils.BadRequest(c, "Phone number cannot be empty")
		case errors.Is(err, user.ErrInvalidPhone):
			return utils.BadRequest(c, "Invalid phone number format")
		case errors.Is(err, user.ErrPhoneInUse):
			return utils.BadRequest(c, "This phone number is already in use. Please try a different one.")
		default:
			logger.Errorf("phone update failed for user %d: %v", claims.UserID, err)
			return utils.InternalError(c)
		}
	}

	return utils.Success(c, fiber.Map{
		"message":     "Phone number updated successfully. A verification code has been sent to your phone.",
		"is_verified": result.IsVerified,
	})
}

func (h *ProfileHandler) UpdatePassword(c *fiber.Ctx) error {
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "Not authenticated")
	}

	var input struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}

	if err := h.userService.UpdatePassword(claims.UserID, input.CurrentPassword, input.NewPassword); err != nil {
		switch {
		case errors.Is(err, user.ErrWrongPassword):
			return utils.BadRequest(c, "Current password is incorrect. Please try again.")
		case errors.Is(err, user.ErrWeakPassword):
			return utils.BadRequest(c, err.Error())
		default:
			logger.Errorf("password update failed for user %d: %v", claims.UserID, err)
			return utils.InternalError(c)
		}
	}
	return utils.Success(c, fiber.Map{"message": "Password updated successfully"})
}
