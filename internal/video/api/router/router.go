package router

import (
	"github.com/gofiber/fiber/v2"

	"video_share_service/internal/video/api/handlers"
	"video_share_service/pkg/middlewares"
)

// RegisterRoutes wires the video service endpoints. Reads are public;
// everything that writes requires a session token.
func RegisterRoutes(app *fiber.App, upload *handlers.UploadHandler, video *handlers.VideoHandler, comment *handlers.CommentHandler) {
	app.Get("/health", handlers.ConnectCheck)
	app.Post("/debug/log", handlers.DebugLogFlag)

	api := app.Group("/api")
	auth := middlewares.JWTMiddleware()

	up := api.Group("/upload", auth)
	up.Post("/presigned-url", upload.PresignVideo)
	up.Post("/thumbnail", upload.PresignThumbnail)

	videos := api.Group("/videos")
	videos.Get("/", video.List)
	videos.Post("/", auth, video.Create)
	videos.Get("/:id", video.Watch)
	videos.Patch("/:id", auth, video.Update)
	videos.Delete("/:id", auth, video.Delete)

	videos.Post("/:id/like", auth, video.ToggleLike)
	videos.Get("/:id/like", auth, video.LikeStatus)

	videos.Get("/:id/comments", comment.List)
	videos.Post("/:id/comments", auth, comment.Add)
}
