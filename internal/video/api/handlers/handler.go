package handlers

import (
	"github.com/gofiber/fiber/v2"

	errprocess "video_share_service/pkg/err"
	"video_share_service/pkg/logger"
	"video_share_service/pkg/middlewares"
)

// ConnectCheck liveness probe.
func ConnectCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "ok"})
}

// DebugLogFlag flips runtime debug logging on or off.
func DebugLogFlag(c *fiber.Ctx) error {
	var req struct {
		Enable bool `json:"enable"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, errprocess.Validation("Invalid request body"))
	}
	logger.Log.SetDebugMode(req.Enable)
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"debug": req.Enable})
}

// currentUser pulls the authenticated user ID set by the JWT
// middleware.
func currentUser(c *fiber.Ctx) string {
	if id, ok := c.Locals(middlewares.TokenUserID).(string); ok {
		return id
	}
	return ""
}

// respondError maps a service error onto its HTTP shape. Validation
// errors carry per-field details.
func respondError(c *fiber.Ctx, err error) error {
	body := fiber.Map{"error": err.Error()}
	if fields := errprocess.FieldsOf(err); len(fields) > 0 {
		body["details"] = fields
	}
	return c.Status(errprocess.StatusCode(err)).JSON(body)
}
