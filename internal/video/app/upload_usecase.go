package app

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"video_share_service/internal/video/domain"
	"video_share_service/internal/video/repository"
	errprocess "video_share_service/pkg/err"
	"video_share_service/pkg/logger"
	"video_share_service/pkg/schema"
)

// UploadUseCase issues presigned upload slots. Validation always runs
// before any storage call, so a rejected request never touches the
// object store.
type UploadUseCase interface {
	PresignVideo(ctx context.Context, userID string, req schema.VideoFile) (*domain.PresignVideoRes, error)
	PresignThumbnail(ctx context.Context, userID string, req schema.ThumbnailFile) (*domain.PresignThumbnailRes, error)
}

type uploadUseCase struct {
	store   ObjectStore
	uploads repository.UploadRepository
}

func NewUploadUseCase(store ObjectStore, uploads repository.UploadRepository) UploadUseCase {
	return &uploadUseCase{store: store, uploads: uploads}
}

func (u *uploadUseCase) PresignVideo(ctx context.Context, userID string, req schema.VideoFile) (*domain.PresignVideoRes, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	videoID := uuid.New().String()
	objectKey := domain.RawVideoPrefix + videoID + fileExt(req.FileName)

	uploadURL, err := u.store.PresignPutURL(ctx, objectKey, schema.PresignExpirySeconds*time.Second)
	if err != nil {
		return nil, errprocess.Server(fmt.Sprintf("presign video upload failed: %v", err))
	}

	rec := &domain.UploadRecord{
		VideoID:   videoID,
		UserID:    userID,
		ObjectKey: objectKey,
	}
	if err := u.uploads.CreatePending(ctx, rec); err != nil {
		return nil, errprocess.Server(fmt.Sprintf("record pending upload failed: %v", err))
	}

	logger.Log.Info("issued video upload slot [" + videoID + "] for user [" + userID + "]")
	return &domain.PresignVideoRes{
		UploadURL: uploadURL,
		VideoURL:  u.store.PublicURL(objectKey),
		VideoID:   videoID,
		ObjectKey: objectKey,
		ExpiresIn: schema.PresignExpirySeconds,
	}, nil
}

func (u *uploadUseCase) PresignThumbnail(ctx context.Context, userID string, req schema.ThumbnailFile) (*domain.PresignThumbnailRes, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	objectKey := domain.ThumbnailPrefix + req.VideoID + fileExt(req.FileName)

	uploadURL, err := u.store.PresignPutURL(ctx, objectKey, schema.PresignExpirySeconds*time.Second)
	if err != nil {
		return nil, errprocess.Server(fmt.Sprintf("presign thumbnail upload failed: %v", err))
	}

	logger.Log.Info("issued thumbnail upload slot for video [" + req.VideoID + "] user [" + userID + "]")
	return &domain.PresignThumbnailRes{
		UploadURL:    uploadURL,
		ThumbnailURL: u.store.PublicURL(objectKey),
		ObjectKey:    objectKey,
		ExpiresIn:    schema.PresignExpirySeconds,
	}, nil
}

// fileExt returns the lowercased extension including the dot, or ""
// when the name has none.
func fileExt(fileName string) string {
	return strings.ToLower(path.Ext(fileName))
}
