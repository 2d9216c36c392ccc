package app

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"video_share_service/internal/video/domain"
	"video_share_service/internal/video/repository"
	errprocess "video_share_service/pkg/err"
	"video_share_service/pkg/schema"
)

// LikeUseCase implements the like/dislike toggle.
//
// Toggle truth table per (existing row, requested type):
//
//	none     -> create row        (action "created")
//	same     -> delete row        (action "removed")
//	opposite -> flip row's type   (action "updated")
type LikeUseCase interface {
	Toggle(ctx context.Context, userID, videoID string, req schema.LikeRequest) (*domain.LikeToggleRes, error)
	Status(ctx context.Context, userID, videoID string) (*domain.LikeStatus, error)
}

type likeUseCase struct {
	likes  repository.LikeRepository
	videos repository.VideoRepository
	events EventPublisher
}

func NewLikeUseCase(likes repository.LikeRepository, videos repository.VideoRepository, events EventPublisher) LikeUseCase {
	return &likeUseCase{likes: likes, videos: videos, events: events}
}

func (uc *likeUseCase) Toggle(ctx context.Context, userID, videoID string, req schema.LikeRequest) (*domain.LikeToggleRes, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	exists, err := uc.videos.Exists(ctx, videoID)
	if err != nil {
		return nil, errprocess.Server(fmt.Sprintf("lookup video failed: %v", err))
	}
	if !exists {
		return nil, errprocess.NotFound("Video not found")
	}

	existing, err := uc.likes.Find(ctx, userID, videoID)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		l := &domain.Like{UserID: userID, VideoID: videoID, Type: req.Type}
		if err := uc.likes.Create(ctx, l); err != nil {
			return nil, errprocess.Server(fmt.Sprintf("create like failed: %v", err))
		}
		uc.emit(videoID, userID, domain.LikeActionCreated)
		return &domain.LikeToggleRes{
			Action:  domain.LikeActionCreated,
			Type:    req.Type,
			Message: req.Type + " added",
		}, nil

	case err != nil:
		return nil, errprocess.Server(fmt.Sprintf("lookup like failed: %v", err))

	case existing.Type == req.Type:
		if err := uc.likes.Delete(ctx, existing.ID); err != nil {
			return nil, errprocess.Server(fmt.Sprintf("remove like failed: %v", err))
		}
		uc.emit(videoID, userID, domain.LikeActionRemoved)
		return &domain.LikeToggleRes{
			Action:  domain.LikeActionRemoved,
			Message: req.Type + " removed",
		}, nil

	default:
		if err := uc.likes.UpdateType(ctx, existing.ID, req.Type); err != nil {
			return nil, errprocess.Server(fmt.Sprintf("update like failed: %v", err))
		}
		uc.emit(videoID, userID, domain.LikeActionUpdated)
		return &domain.LikeToggleRes{
			Action:  domain.LikeActionUpdated,
			Type:    req.Type,
			Message: "Changed to " + req.Type,
		}, nil
	}
}

func (uc *likeUseCase) Status(ctx context.Context, userID, videoID string) (*domain.LikeStatus, error) {
	existing, err := uc.likes.Find(ctx, userID, videoID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &domain.LikeStatus{}, nil
	}
	if err != nil {
		return nil, errprocess.Server(fmt.Sprintf("lookup like failed: %v", err))
	}
	return &domain.LikeStatus{
		IsLiked:    existing.Type == domain.LikeTypeLike,
		IsDisliked: existing.Type == domain.LikeTypeDislike,
	}, nil
}

func (uc *likeUseCase) emit(videoID, userID, action string) {
	publishAsync(uc.events, Event{
		Type:    EventLikeToggled,
		VideoID: videoID,
		UserID:  userID,
		Detail:  action,
	})
}
