package router

import (
	"github.com/gofiber/fiber/v2"

	"video_share_service/internal/identity/api/handlers"
)

// RegisterRoutes wires the identity endpoints. The webhook route is
// authenticated by signature, not by session token.
func RegisterRoutes(app *fiber.App, webhook *handlers.WebhookHandler) {
	api := app.Group("/api")
	api.Post("/webhooks/identity", webhook.Receive)
}
