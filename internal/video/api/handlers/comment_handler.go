package handlers

import (
	"github.com/gofiber/fiber/v2"

	"video_share_service/internal/video/app"
	errprocess "video_share_service/pkg/err"
	"video_share_service/pkg/schema"
)

// CommentHandler serves the comment thread endpoints.
type CommentHandler struct {
	comments app.CommentUseCase
}

func NewCommentHandler(comments app.CommentUseCase) *CommentHandler {
	return &CommentHandler{comments: comments}
}

// List returns a video's comment thread: top-level comments newest
// first, each with a short oldest-first reply preview.
func (h *CommentHandler) List(c *fiber.Ctx) error {
	comments, err := h.comments.List(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"comments": comments})
}

// Add posts a comment or a reply.
func (h *CommentHandler) Add(c *fiber.Ctx) error {
	var req schema.CommentCreate
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, errprocess.Validation("Invalid request body"))
	}

	comment, err := h.comments.Add(c.Context(), currentUser(c), c.Params("id"), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}
