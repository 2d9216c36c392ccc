package schema

import (
	"regexp"

	"video_share_service/pkg"
	errprocess "video_share_service/pkg/err"

	"github.com/go-playground/validator/v10"
)

// Single source of truth for the limits enforced on both the server
// handlers and the upload client. Keeping them here avoids the two
// sides drifting apart.
const (
	// MaxVideoSize is the upload ceiling for raw video files.
	MaxVideoSize = 100 * 1024 * 1024
	// MaxThumbnailSize is the upload ceiling for thumbnail images.
	MaxThumbnailSize = 5 * 1024 * 1024

	MaxFileNameLen    = 255
	MaxTitleLen       = 200
	MaxDescriptionLen = 5000
	MaxCommentLen     = 2000

	// PresignExpirySeconds is the lifetime of every presigned upload URL.
	PresignExpirySeconds = 600

	DefaultPageLimit = 12
	MaxPageLimit     = 50

	// CommentRepliesPreview is how many replies are eagerly returned
	// per top-level comment.
	CommentRepliesPreview = 3
)

// AllowedVideoTypes lists the accepted video MIME types.
var AllowedVideoTypes = []string{
	"video/mp4", "video/webm", "video/ogg", "video/avi", "video/mov", "video/quicktime",
}

// AllowedImageTypes lists the accepted thumbnail MIME types.
var AllowedImageTypes = []string{
	"image/jpeg", "image/jpg", "image/png", "image/webp",
}

var fileNameRe = regexp.MustCompile(`^[^<>:"/\\|?*]+$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterValidation("filename", func(fl validator.FieldLevel) bool {
		return fileNameRe.MatchString(fl.Field().String())
	})
	v.RegisterValidation("videotype", func(fl validator.FieldLevel) bool {
		return pkg.Contains(AllowedVideoTypes, fl.Field().String())
	})
	v.RegisterValidation("imagetype", func(fl validator.FieldLevel) bool {
		return pkg.Contains(AllowedImageTypes, fl.Field().String())
	})
	return v
}

// VideoFile is a video upload candidate {fileName, fileType, fileSize}.
type VideoFile struct {
	FileName string `json:"fileName" validate:"required,max=255,filename"`
	FileType string `json:"fileType" validate:"required,videotype"`
	FileSize int64  `json:"fileSize" validate:"required,min=1,max=104857600"`
}

// Validate reports per-field violations for a video upload request.
func (f VideoFile) Validate() error {
	return translate(validate.Struct(f), map[string]string{
		"FileName.required": "File name is required",
		"FileName.max":      "File name must be less than 255 characters",
		"FileName.filename": "File name contains invalid characters",
		"FileType.required": "File type is required",
		"FileType.videotype": "File must be a video",
		"FileSize.required": "File size is required",
		"FileSize.min":      "File size is required",
		"FileSize.max":      "File size must be less than 100MB",
	})
}

// ThumbnailFile is a thumbnail upload candidate keyed to its video.
type ThumbnailFile struct {
	VideoID  string `json:"videoId" validate:"required"`
	FileName string `json:"fileName" validate:"required,max=255"`
	FileType string `json:"fileType" validate:"required,imagetype"`
	FileSize int64  `json:"fileSize" validate:"required,min=1,max=5242880"`
}

// Validate reports per-field violations for a thumbnail upload request.
func (f ThumbnailFile) Validate() error {
	return translate(validate.Struct(f), map[string]string{
		"VideoID.required":  "Video ID is required",
		"FileName.required": "File name is required",
		"FileName.max":      "File name must be less than 255 characters",
		"FileType.required": "File type is required",
		"FileType.imagetype": "File must be an image",
		"FileSize.required": "File size is required",
		"FileSize.min":      "File size is required",
		"FileSize.max":      "Thumbnail must be less than 5MB",
	})
}

// CreateVideo is the metadata payload persisted after both storage
// uploads succeed.
type CreateVideo struct {
	VideoID      string `json:"videoId" validate:"required"`
	Title        string `json:"title" validate:"required,max=200"`
	Description  string `json:"description" validate:"omitempty,max=5000"`
	VideoURL     string `json:"videoUrl" validate:"required,url"`
	ThumbnailURL string `json:"thumbnailUrl" validate:"omitempty,url"`
}

// Validate reports per-field violations for a create-video request.
func (c CreateVideo) Validate() error {
	return translate(validate.Struct(c), map[string]string{
		"VideoID.required":  "Video ID is required",
		"Title.required":    "Title is required",
		"Title.max":         "Title too long",
		"Description.max":   "Description too long",
		"VideoURL.required": "Video URL is required",
		"VideoURL.url":      "Invalid video URL",
		"ThumbnailURL.url":  "Invalid thumbnail URL",
	})
}

// UpdateVideo is the owner-only edit payload.
type UpdateVideo struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description" validate:"omitempty,max=5000"`
	IsPublic    *bool   `json:"isPublic"`
}

// Validate reports per-field violations for an update-video request.
func (u UpdateVideo) Validate() error {
	return translate(validate.Struct(u), map[string]string{
		"Title.min":       "Title is required",
		"Title.max":       "Title too long",
		"Description.max": "Description too long",
	})
}

// CommentCreate is the comment/reply payload.
type CommentCreate struct {
	Content  string `json:"content" validate:"required,max=2000"`
	ParentID string `json:"parentId"`
}

// Validate reports per-field violations for a comment.
func (c CommentCreate) Validate() error {
	return translate(validate.Struct(c), map[string]string{
		"Content.required": "Comment cannot be empty",
		"Content.max":      "Comment cannot exceed 2000 characters",
	})
}

// LikeRequest is the like/dislike toggle payload.
type LikeRequest struct {
	Type string `json:"type" validate:"required,oneof=LIKE DISLIKE"`
}

// Validate reports per-field violations for a like toggle.
func (l LikeRequest) Validate() error {
	return translate(validate.Struct(l), map[string]string{
		"Type.required": "Type is required",
		"Type.oneof":    "Type must be LIKE or DISLIKE",
	})
}

// VideoQuery bounds the feed listing parameters.
type VideoQuery struct {
	UserID   string `query:"userId"`
	Limit    int    `query:"limit" validate:"omitempty,min=1,max=50"`
	Offset   int    `query:"offset" validate:"omitempty,min=0"`
	IsPublic *bool  `query:"isPublic"`
}

// Normalize applies defaults and reports violations.
func (q *VideoQuery) Normalize() error {
	if q.Limit == 0 {
		q.Limit = DefaultPageLimit
	}
	if q.IsPublic == nil {
		pub := true
		q.IsPublic = &pub
	}
	return translate(validate.Struct(q), map[string]string{
		"Limit.min":  "Limit must be at least 1",
		"Limit.max":  "Limit cannot exceed 50",
		"Offset.min": "Offset cannot be negative",
	})
}

// translate converts validator failures into the service validation
// error, picking the message registered for "Field.tag".
func translate(err error, msgs map[string]string) error {
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return errprocess.Server(err.Error())
	}

	fields := make([]errprocess.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		msg, ok := msgs[fe.Field()+"."+fe.Tag()]
		if !ok {
			msg = "Invalid value"
		}
		fields = append(fields, errprocess.FieldError{Field: fe.Field(), Message: msg})
	}

	top := "Validation failed"
	if len(fields) > 0 {
		top = fields[0].Message
	}
	return errprocess.Validation(top, fields...)
}
