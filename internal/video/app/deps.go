package app

import (
	"context"
	"time"

	"video_share_service/internal/video/domain"
)

// ObjectStore is the slice of the object storage client the usecases
// need. Satisfied by database.MinIOClient.
type ObjectStore interface {
	PresignPutURL(ctx context.Context, objectName string, expiry time.Duration) (string, error)
	PublicURL(objectName string) string
	RemoveObject(ctx context.Context, objectName string) error
}

// UserDirectory resolves channel owners synced in from the identity
// provider.
type UserDirectory interface {
	Exists(ctx context.Context, userID string) (bool, error)
	Owner(ctx context.Context, userID string) (*domain.Owner, error)
}

// JobQueue hands work to the background worker.
type JobQueue interface {
	EnqueueThumbnail(ctx context.Context, job domain.ThumbnailJob) error
}
