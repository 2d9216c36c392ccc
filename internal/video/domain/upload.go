package domain

import "time"

// Upload ledger states. A row starts pending when a presigned URL is
// issued and is promoted to committed when the metadata arrives; rows
// that never commit are reaped together with their objects.
const (
	UploadStatusPending   = "pending"
	UploadStatusCommitted = "committed"
)

// Object key prefixes inside the video bucket.
const (
	RawVideoPrefix  = "videos/raw/"
	ThumbnailPrefix = "videos/thumbnails/"
)

// ThumbnailQueue is the job queue thumbnail requests are published to.
const ThumbnailQueue = "thumbnail_jobs"

// UploadRecord tracks one issued upload slot.
type UploadRecord struct {
	VideoID   string    `gorm:"primaryKey;size:64" json:"videoId"`
	UserID    string    `gorm:"index;size:64;not null" json:"userId"`
	ObjectKey string    `gorm:"not null" json:"objectKey"`
	Status    string    `gorm:"size:16;not null;default:pending" json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// PresignVideoRes is returned for a video upload request. VideoURL is
// where the object will be readable once the client PUTs it.
type PresignVideoRes struct {
	UploadURL string `json:"uploadUrl"`
	VideoURL  string `json:"videoUrl"`
	VideoID   string `json:"videoId"`
	ObjectKey string `json:"s3Key"`
	ExpiresIn int    `json:"expiresIn"`
}

// PresignThumbnailRes is returned for a custom thumbnail upload.
type PresignThumbnailRes struct {
	UploadURL    string `json:"uploadUrl"`
	ThumbnailURL string `json:"thumbnailUrl"`
	ObjectKey    string `json:"s3Key"`
	ExpiresIn    int    `json:"expiresIn"`
}

// ThumbnailJob asks the worker to produce a thumbnail for a video
// that was published without one.
type ThumbnailJob struct {
	VideoID   string `json:"videoId"`
	ObjectKey string `json:"objectKey"`
}
