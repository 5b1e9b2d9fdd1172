package middleware

import (
	"paylink/internal/i18n"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// RequestContext tags every request with an ID and the negotiated
// locale. The ID is echoed back in X-Request-ID for log correlation.
func RequestContext(c *fiber.Ctx) error {
	requestID := c.Get("X-Request-ID")
	if requestID == "" {
		requestID = uuid.NewString()
	}
	c.Locals("request_id", requestID)
	c.Set("X-Request-ID", requestID)

	lang := i18n.ParseAcceptLanguage(c.Get("Accept-Language"))
	c.Locals("lang", lang)

	return c.Next()
}

// Lang returns the locale negotiated for the request.
func Lang(c *fiber.Ctx) i18n.Language {
	if lang, ok := c.Locals("lang").(i18n.Language); ok {
		return lang
	}
	return i18n.Default
}
