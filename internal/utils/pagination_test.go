package utils

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paginate(t *testing.T, target string) Pagination {
	t.Helper()
	app := fiber.New()
	app.Get("/items", func(c *fiber.Ctx) error {
		return c.JSON(GetPagination(c, 50, 100))
	})

	resp, err := app.Test(httptest.NewRequest("GET", target, nil))
	require.NoError(t, err)

	var p Pagination
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&p))
	return p
}

func TestGetPagination(t *testing.T) {
	tests := []struct {
		name   string
		target string
		limit  int
		offset int
	}{
		{"defaults", "/items", 50, 0},
		{"explicit", "/items?limit=10&offset=30", 10, 30},
		{"clamped to max", "/items?limit=500", 100, 0},
		{"garbage falls back", "/items?limit=abc&offset=-3", 50, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := paginate(t, tt.target)
			assert.Equal(t, tt.limit, p.Limit)
			assert.Equal(t, tt.offset, p.Offset)
		})
	}
}
