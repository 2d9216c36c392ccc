package app

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"video_share_service/internal/video/domain"
	"video_share_service/internal/video/repository"
	errprocess "video_share_service/pkg/err"
	"video_share_service/pkg/logger"
	"video_share_service/pkg/schema"
)

// VideoUseCase covers the feed, the watch page and owner maintenance.
type VideoUseCase interface {
	Create(ctx context.Context, userID string, req schema.CreateVideo) (*domain.Video, error)
	List(ctx context.Context, q schema.VideoQuery) (*domain.VideoPage, error)
	Watch(ctx context.Context, videoID string) (*domain.WatchVideo, error)
	Update(ctx context.Context, userID, videoID string, req schema.UpdateVideo) (*domain.Video, error)
	Delete(ctx context.Context, userID, videoID string) error
}

type videoUseCase struct {
	videos   repository.VideoRepository
	likes    repository.LikeRepository
	comments repository.CommentRepository
	uploads  repository.UploadRepository
	users    UserDirectory
	store    ObjectStore
	events   EventPublisher
	jobs     JobQueue
}

type VideoUseCaseDeps struct {
	Videos   repository.VideoRepository
	Likes    repository.LikeRepository
	Comments repository.CommentRepository
	Uploads  repository.UploadRepository
	Users    UserDirectory
	Store    ObjectStore
	Events   EventPublisher
	Jobs     JobQueue
}

func NewVideoUseCase(d VideoUseCaseDeps) VideoUseCase {
	return &videoUseCase{
		videos:   d.Videos,
		likes:    d.Likes,
		comments: d.Comments,
		uploads:  d.Uploads,
		users:    d.Users,
		store:    d.Store,
		events:   d.Events,
		jobs:     d.Jobs,
	}
}

func (uc *videoUseCase) Create(ctx context.Context, userID string, req schema.CreateVideo) (*domain.Video, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	ok, err := uc.users.Exists(ctx, userID)
	if err != nil {
		return nil, errprocess.Server(fmt.Sprintf("lookup user failed: %v", err))
	}
	if !ok {
		return nil, errprocess.NotFound("User not found")
	}

	exists, err := uc.videos.Exists(ctx, req.VideoID)
	if err != nil {
		return nil, errprocess.Server(fmt.Sprintf("lookup video failed: %v", err))
	}
	if exists {
		return nil, errprocess.Conflict("Video already exists")
	}

	video := &domain.Video{
		ID:           req.VideoID,
		Title:        req.Title,
		Description:  req.Description,
		VideoURL:     req.VideoURL,
		ThumbnailURL: req.ThumbnailURL,
		UserID:       userID,
		IsPublic:     true,
	}
	if err := uc.videos.Create(ctx, video); err != nil {
		return nil, errprocess.Server(fmt.Sprintf("create video failed: %v", err))
	}

	// Promote the upload ledger row so the reaper leaves the object alone.
	if err := uc.uploads.Commit(ctx, video.ID); err != nil {
		logger.Log.Warn("commit upload record [" + video.ID + "] failed: " + err.Error())
	}

	publishAsync(uc.events, Event{Type: EventVideoCreated, VideoID: video.ID, UserID: userID})

	if video.ThumbnailURL == "" {
		uc.requestThumbnail(ctx, video.ID)
	}

	logger.Log.Info("video [" + video.ID + "] created by user [" + userID + "]")
	return video, nil
}

// requestThumbnail queues background thumbnail generation for a video
// published without one. Failures are logged; the video stays usable.
func (uc *videoUseCase) requestThumbnail(ctx context.Context, videoID string) {
	rec, err := uc.uploads.Get(ctx, videoID)
	if err != nil {
		logger.Log.Warn("no upload record for video [" + videoID + "], skip thumbnail job: " + err.Error())
		return
	}
	job := domain.ThumbnailJob{VideoID: videoID, ObjectKey: rec.ObjectKey}
	if err := uc.jobs.EnqueueThumbnail(ctx, job); err != nil {
		logger.Log.Warn("enqueue thumbnail job for video [" + videoID + "] failed: " + err.Error())
	}
}

func (uc *videoUseCase) List(ctx context.Context, q schema.VideoQuery) (*domain.VideoPage, error) {
	if err := q.Normalize(); err != nil {
		return nil, err
	}

	videos, total, err := uc.videos.List(ctx, domain.VideoFilter{
		UserID:   q.UserID,
		IsPublic: q.IsPublic,
		Limit:    q.Limit,
		Offset:   q.Offset,
	})
	if err != nil {
		return nil, errprocess.Server(fmt.Sprintf("list videos failed: %v", err))
	}

	owners := make(map[string]*domain.Owner)
	summaries := make([]domain.VideoSummary, 0, len(videos))
	for _, v := range videos {
		likeCount, err := uc.likes.CountByVideo(ctx, v.ID, domain.LikeTypeLike)
		if err != nil {
			return nil, errprocess.Server(fmt.Sprintf("count likes failed: %v", err))
		}
		commentCount, err := uc.comments.CountByVideo(ctx, v.ID)
		if err != nil {
			return nil, errprocess.Server(fmt.Sprintf("count comments failed: %v", err))
		}
		summaries = append(summaries, domain.VideoSummary{
			ID:           v.ID,
			Title:        v.Title,
			Description:  v.Description,
			VideoURL:     v.VideoURL,
			ThumbnailURL: v.ThumbnailURL,
			Duration:     v.Duration,
			Views:        v.Views,
			CreatedAt:    v.CreatedAt,
			User:         uc.ownerOf(ctx, owners, v.UserID),
			CommentCount: commentCount,
			LikeCount:    likeCount,
		})
	}

	return &domain.VideoPage{
		Videos: summaries,
		Pagination: domain.Pagination{
			Total:   total,
			Limit:   q.Limit,
			Offset:  q.Offset,
			HasMore: int64(q.Offset+len(videos)) < total,
		},
	}, nil
}

func (uc *videoUseCase) Watch(ctx context.Context, videoID string) (*domain.WatchVideo, error) {
	video, err := uc.videos.GetByID(ctx, videoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errprocess.NotFound("Video not found")
		}
		return nil, errprocess.Server(fmt.Sprintf("get video failed: %v", err))
	}

	if err := uc.videos.IncrementViews(ctx, videoID); err != nil {
		return nil, errprocess.Server(fmt.Sprintf("increment views failed: %v", err))
	}

	likeCount, err := uc.likes.CountByVideo(ctx, videoID, domain.LikeTypeLike)
	if err != nil {
		return nil, errprocess.Server(fmt.Sprintf("count likes failed: %v", err))
	}

	publishAsync(uc.events, Event{Type: EventVideoViewed, VideoID: videoID})

	owners := make(map[string]*domain.Owner)
	return &domain.WatchVideo{
		ID:           video.ID,
		Title:        video.Title,
		Description:  video.Description,
		VideoURL:     video.VideoURL,
		ThumbnailURL: video.ThumbnailURL,
		Duration:     video.Duration,
		Views:        video.Views + 1,
		LikeCount:    likeCount,
		IsPublic:     video.IsPublic,
		CreatedAt:    video.CreatedAt,
		User:         uc.ownerOf(ctx, owners, video.UserID),
	}, nil
}

func (uc *videoUseCase) Update(ctx context.Context, userID, videoID string, req schema.UpdateVideo) (*domain.Video, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	video, err := uc.videos.GetByID(ctx, videoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errprocess.NotFound("Video not found")
		}
		return nil, errprocess.Server(fmt.Sprintf("get video failed: %v", err))
	}
	if video.UserID != userID {
		return nil, errprocess.Unauthorized("Not allowed to modify this video")
	}

	if req.Title != nil {
		video.Title = *req.Title
	}
	if req.Description != nil {
		video.Description = *req.Description
	}
	if req.IsPublic != nil {
		video.IsPublic = *req.IsPublic
	}
	if err := uc.videos.Update(ctx, video); err != nil {
		return nil, errprocess.Server(fmt.Sprintf("update video failed: %v", err))
	}
	return video, nil
}

func (uc *videoUseCase) Delete(ctx context.Context, userID, videoID string) error {
	video, err := uc.videos.GetByID(ctx, videoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errprocess.NotFound("Video not found")
		}
		return errprocess.Server(fmt.Sprintf("get video failed: %v", err))
	}
	if video.UserID != userID {
		return errprocess.Unauthorized("Not allowed to modify this video")
	}

	if err := uc.videos.Delete(ctx, videoID); err != nil {
		return errprocess.Server(fmt.Sprintf("delete video failed: %v", err))
	}

	// Best-effort cleanup of dependents; the record of truth is gone.
	if err := uc.comments.DeleteByVideo(ctx, videoID); err != nil {
		logger.Log.Warn("delete comments for video [" + videoID + "] failed: " + err.Error())
	}
	if rec, err := uc.uploads.Get(ctx, videoID); err == nil {
		if err := uc.store.RemoveObject(ctx, rec.ObjectKey); err != nil {
			logger.Log.Warn("remove object [" + rec.ObjectKey + "] failed: " + err.Error())
		}
		if err := uc.uploads.Delete(ctx, videoID); err != nil {
			logger.Log.Warn("delete upload record [" + videoID + "] failed: " + err.Error())
		}
	}

	logger.Log.Info("video [" + videoID + "] deleted by user [" + userID + "]")
	return nil
}

// ownerOf resolves a channel owner once per listing, falling back to a
// bare ID when the directory has no record.
func (uc *videoUseCase) ownerOf(ctx context.Context, cache map[string]*domain.Owner, userID string) *domain.Owner {
	if o, ok := cache[userID]; ok {
		return o
	}
	owner, err := uc.users.Owner(ctx, userID)
	if err != nil {
		logger.Log.Warn("resolve owner [" + userID + "] failed: " + err.Error())
		owner = &domain.Owner{ID: userID, DisplayName: "Anonymous"}
	}
	cache[userID] = owner
	return owner
}
