package handlers

import (
	"github.com/gofiber/fiber/v2"

	"video_share_service/internal/video/app"
	errprocess "video_share_service/pkg/err"
	"video_share_service/pkg/schema"
)

// VideoHandler serves the feed, watch and owner-maintenance endpoints.
type VideoHandler struct {
	videos   app.VideoUseCase
	likes    app.LikeUseCase
	comments app.CommentUseCase
}

func NewVideoHandler(videos app.VideoUseCase, likes app.LikeUseCase, comments app.CommentUseCase) *VideoHandler {
	return &VideoHandler{videos: videos, likes: likes, comments: comments}
}

// Create persists video metadata after the storage uploads finished.
func (h *VideoHandler) Create(c *fiber.Ctx) error {
	var req schema.CreateVideo
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, errprocess.Validation("Invalid request body"))
	}

	video, err := h.videos.Create(c.Context(), currentUser(c), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(video)
}

// List returns one feed page.
func (h *VideoHandler) List(c *fiber.Ctx) error {
	var q schema.VideoQuery
	if err := c.QueryParser(&q); err != nil {
		return respondError(c, errprocess.Validation("Invalid query parameters"))
	}

	page, err := h.videos.List(c.Context(), q)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(page)
}

// Watch returns one video with its comment thread. The returned view
// count already includes this request.
func (h *VideoHandler) Watch(c *fiber.Ctx) error {
	videoID := c.Params("id")

	video, err := h.videos.Watch(c.Context(), videoID)
	if err != nil {
		return respondError(c, err)
	}
	comments, err := h.comments.List(c.Context(), videoID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"video":    video,
		"comments": comments,
	})
}

// Update edits title, description or visibility. Owner only.
func (h *VideoHandler) Update(c *fiber.Ctx) error {
	var req schema.UpdateVideo
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, errprocess.Validation("Invalid request body"))
	}

	video, err := h.videos.Update(c.Context(), currentUser(c), c.Params("id"), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(video)
}

// Delete removes a video and its dependents. Owner only.
func (h *VideoHandler) Delete(c *fiber.Ctx) error {
	if err := h.videos.Delete(c.Context(), currentUser(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Video deleted"})
}

// ToggleLike applies one like/dislike toggle step.
func (h *VideoHandler) ToggleLike(c *fiber.Ctx) error {
	var req schema.LikeRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, errprocess.Validation("Invalid request body"))
	}

	res, err := h.likes.Toggle(c.Context(), currentUser(c), c.Params("id"), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(res)
}

// LikeStatus returns the caller's current reaction on a video.
func (h *VideoHandler) LikeStatus(c *fiber.Ctx) error {
	res, err := h.likes.Status(c.Context(), currentUser(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(res)
}
