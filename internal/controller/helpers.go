package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// currentUserID extracts the authenticated user from the JWT locals.
func currentUserID(ctx *fiber.Ctx) (uuid.UUID, error) {
	switch v := ctx.Locals("user_id").(type) {
	case string:
		id, err := uuid.Parse(v)
		if err != nil {
			return uuid.Nil, fiber.ErrUnauthorized
		}
		return id, nil
	case uuid.UUID:
		return v, nil
	default:
		return uuid.Nil, fiber.ErrUnauthorized
	}
}
