package handlers

import (
	"paylink/internal/repositories"

	"github.com/gofiber/fiber/v2"
)

// HealthCheck reports liveness plus the state of the two backing stores.
func HealthCheck(c *fiber.Ctx) error {
	dbStatus := "ok"
	if sqlDB, err := repositories.DB.DB(); err != nil || sqlDB.Ping() != nil {
		dbStatus = "unavailable"
	}

	redisStatus := "ok"
	if repositories.CacheService == nil || repositories.CacheService.Ping(c.Context()) != nil {
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	if dbStatus != "ok" {
		status = fiber.StatusServiceUnavailable
	}

	return c.Status(status).JSON(fiber.Map{
		"status":   "up",
		"database": dbStatus,
		"redis":    redisStatus,
	})
}
