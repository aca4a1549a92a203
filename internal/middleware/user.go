package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const userIDHeader = "X-User-ID"

// UserID reads the caller's user ID from the X-User-ID header. Identity is
// asserted by the gateway in front of this service, not verified here.
func UserID(c *fiber.Ctx) (uuid.UUID, error) {
	raw := c.Get(userIDHeader)
	if raw == "" {
		return uuid.Nil, BadRequest("Missing X-User-ID header")
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, BadRequest("Invalid X-User-ID header")
	}

	return id, nil
}
