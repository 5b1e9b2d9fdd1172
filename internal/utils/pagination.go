package utils

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// Pagination holds limit/offset query parameters with sane bounds.
type Pagination struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// GetPagination extracts limit and offset from the query string, falling
// back to defaults and clamping limit to maxLimit.
func GetPagination(c *fiber.Ctx, defaultLimit, maxLimit int) Pagination {
	limit, err := strconv.Atoi(c.Query("limit", strconv.Itoa(defaultLimit)))
	if err != nil || limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	offset, err := strconv.Atoi(c.Query("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}

	return Pagination{Limit: limit, Offset: offset}
}
