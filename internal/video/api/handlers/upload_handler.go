package handlers

import (
	"github.com/gofiber/fiber/v2"

	"video_share_service/internal/video/app"
	errprocess "video_share_service/pkg/err"
	"video_share_service/pkg/schema"
)

// UploadHandler serves the presigned upload endpoints.
type UploadHandler struct {
	uploads app.UploadUseCase
}

func NewUploadHandler(uploads app.UploadUseCase) *UploadHandler {
	return &UploadHandler{uploads: uploads}
}

// PresignVideo issues a direct-to-storage upload URL for a video file.
func (h *UploadHandler) PresignVideo(c *fiber.Ctx) error {
	var req schema.VideoFile
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, errprocess.Validation("Invalid request body"))
	}

	res, err := h.uploads.PresignVideo(c.Context(), currentUser(c), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(res)
}

// PresignThumbnail issues a direct-to-storage upload URL for a custom
// thumbnail.
func (h *UploadHandler) PresignThumbnail(c *fiber.Ctx) error {
	var req schema.ThumbnailFile
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, errprocess.Validation("Invalid request body"))
	}

	res, err := h.uploads.PresignThumbnail(c.Context(), currentUser(c), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(res)
}
