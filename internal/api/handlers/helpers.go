package handlers

import (
	"strconv"

	apperrors "github.com/ddoongjamba/autosns-api/pkg/errors"
	"github.com/gofiber/fiber/v2"
)

func GetUserID(c *fiber.Ctx) int64 {
	userID, _ := strconv.Atoi(c.Locals("user_id").(string))
	return int64(userID)
}

// respondError maps the service error taxonomy onto HTTP statuses: missing
// or foreign entities are 404, invalid state transitions 409, quota denials
// 429 with rate-limit headers.
func respondError(c *fiber.Ctx, err error) error {
	if qe, ok := apperrors.AsQuotaExceeded(err); ok {
		c.Set("X-RateLimit-Limit", strconv.Itoa(qe.Limit))
		c.Set("X-RateLimit-Remaining", strconv.Itoa(qe.Remaining))
		return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
			"error":     err.Error(),
			"limit":     qe.Limit,
			"remaining": qe.Remaining,
		})
	}

	switch {
	case apperrors.IsNotFound(err):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	case apperrors.IsConflict(err):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": err.Error(),
	})
}
