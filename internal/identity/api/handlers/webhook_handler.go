package handlers

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"

	"video_share_service/internal/identity/app"
	"video_share_service/internal/identity/domain"
	errprocess "video_share_service/pkg/err"
)

// WebhookHandler receives identity-provider webhooks.
type WebhookHandler struct {
	verifier *app.SignatureVerifier
	webhooks app.WebhookUseCase
}

func NewWebhookHandler(verifier *app.SignatureVerifier, webhooks app.WebhookUseCase) *WebhookHandler {
	return &WebhookHandler{verifier: verifier, webhooks: webhooks}
}

// Receive verifies the signature over the raw body, then applies the
// event. Always answers 200 for events it chooses to ignore so the
// provider stops retrying.
func (h *WebhookHandler) Receive(c *fiber.Ctx) error {
	msgID := c.Get(app.HeaderWebhookID)
	body := c.Body()

	err := h.verifier.Verify(
		msgID,
		c.Get(app.HeaderWebhookTimestamp),
		c.Get(app.HeaderWebhookSignature),
		body,
	)
	if err != nil {
		return respondError(c, err)
	}

	var evt domain.WebhookEvent
	if err := json.Unmarshal(body, &evt); err != nil {
		return respondError(c, errprocess.Validation("Invalid webhook payload"))
	}

	if err := h.webhooks.Process(c.Context(), msgID, evt); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusOK)
}

func respondError(c *fiber.Ctx, err error) error {
	return c.Status(errprocess.StatusCode(err)).JSON(fiber.Map{"error": err.Error()})
}
