package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"edims-backend/utils"
)

const dateLayout = "2006-01-02"

// parseDate accepts the UI's plain date format or a full RFC3339 timestamp.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// idParam parses the numeric :id path parameter.
func idParam(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, utils.Validation("invalid id in path")
	}
	return uint(id), nil
}
