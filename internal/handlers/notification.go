package handlers

import (
	"errors"
	"strconv"

	"paylink/internal/i18n"
	"paylink/internal/logger"
	"paylink/internal/middleware"
	"paylink/internal/repositories"
	"paylink/internal/services/notification"
	"paylink/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type NotificationHandler struct {
	notificationService notification.Service
}

func NewNotificationHandler(notificationService notification.Service) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

func (h *NotificationHandler) List(c *fiber.Ctx) error {
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "Not authenticated")
	}

	notifications, err := h.notificationService.List(claims.UserID)
	if err != nil {
		logger.Errorf("failed to list notifications for user %d: %v", claims.UserID, err)
		return utils.InternalError(c)
	}
	return utils.Success(c, notifications)
}

func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "Not authenticated")
	}

	id, err := parseID(c, "id")
	if err != nil {
		return utils.BadRequest(c, "Invalid notification id")
	}

	n, err := h.notificationService.MarkRead(id, claims.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotificationNotFound) {
			return utils.NotFound(c, "Notification not found")
		}
		logger.Errorf("failed to mark notification %d read: %v", id, err)
		return utils.InternalError(c)
	}
	return utils.Success(c, n)
}

func (h *NotificationHandler) MarkAllRead(c *fiber.Ctx) error {
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "Not authenticated")
	}

	count, err := h.notificationService.MarkAllRead(claims.UserID)
	if err != nil {
		logger.Errorf("failed to mark notifications read for user %d: %v", claims.UserID, err)
		return utils.InternalError(c)
	}
	return utils.Success(c, fiber.Map{"marked_read": count})
}

func (h *NotificationHandler) Delete(c *fiber.Ctx) error {
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "Not authenticated")
	}

	id, err := parseID(c, "id")
	if err != nil {
		return utils.BadRequest(c, "Invalid notification id")
	}

	if err := h.notificationService.Delete(id, claims.UserID); err != nil {
		if errors.Is(err, repositories.ErrNotificationNotFound) {
			return utils.NotFound(c, "Notification not found")
		}
		logger.Errorf("failed to delete notification %d: %v", id, err)
		return utils.InternalError(c)
	}
	message := i18n.Translate("RecordDeleted", middleware.Lang(c), map[string]string{"record": "notification"})
	return utils.Success(c, fiber.Map{"message": message})
}

func parseID(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}
