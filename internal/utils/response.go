package utils

import "github.com/gofiber/fiber/v2"

// Respond sends a JSON response with the specified status code.
func Respond(c *fiber.Ctx, status int, data interface{}) error {
	return c.Status(status).JSON(data)
}

// Success sends a successful JSON response.
func Success(c *fiber.Ctx, data interface{}) error {
	return Respond(c, fiber.StatusOK, data)
}

// Created sends a 201 JSON response.
func Created(c *fiber.Ctx, data interface{}) error {
	return Respond(c, fiber.StatusCreated, data)
}

// Error sends a JSON error body with a detail field.
func Error(c *fiber.Ctx, status int, detail string) error {
	return Respond(c, status, fiber.Map{"detail": detail})
}

// BadRequest sends a JSON error response with status 400.
func BadRequest(c *fiber.Ctx, detail string) error {
	return Error(c, fiber.StatusBadRequest, detail)
}

// Unauthorized sends a JSON error response with status 401.
func Unauthorized(c *fiber.Ctx, detail string) error {
	return Error(c, fiber.StatusUnauthorized, detail)
}

// Forbidden sends a JSON error response with status 403.
func Forbidden(c *fiber.Ctx, detail string) error {
	return Error(c, fiber.StatusForbidden, detail)
}

// NotFound sends a JSON error response with status 404.
func NotFound(c *fiber.Ctx, detail string) error {
	return Error(c, fiber.StatusNotFound, detail)
}

// Conflict sends a JSON error response with status 409.
func Conflict(c *fiber.Ctx, detail string) error {
	return Error(c, fiber.StatusConflict, detail)
}

// InternalError sends a JSON error response with status 500. The detail
// is always a generic message; the cause belongs in the log, not the body.
func InternalError(c *fiber.Ctx) error {
	return Error(c, fiber.StatusInternalServerError, "Internal server error")
}
