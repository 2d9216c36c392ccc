package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"

	"video_share_service/internal/video/domain"
	"video_share_service/internal/video/repository"
	errprocess "video_share_service/pkg/err"
	"video_share_service/pkg/schema"
)

// CommentUseCase manages the two-level comment tree: top-level
// comments and one layer of replies, never deeper.
type CommentUseCase interface {
	Add(ctx context.Context, userID, videoID string, req schema.CommentCreate) (*domain.CommentView, error)
	List(ctx context.Context, videoID string) ([]domain.CommentView, error)
}

type commentUseCase struct {
	comments repository.CommentRepository
	videos   repository.VideoRepository
	users    UserDirectory
}

func NewCommentUseCase(comments repository.CommentRepository, videos repository.VideoRepository, users UserDirectory) CommentUseCase {
	return &commentUseCase{comments: comments, videos: videos, users: users}
}

func (uc *commentUseCase) Add(ctx context.Context, userID, videoID string, req schema.CommentCreate) (*domain.CommentView, error) {
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

	if req.ParentID != "" {
		parent, err := uc.comments.FindByID(ctx, req.ParentID)
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errprocess.Validation("Parent comment not found")
		}
		if err != nil {
			return nil, errprocess.Server(fmt.Sprintf("lookup parent comment failed: %v", err))
		}
		if parent.VideoID != videoID {
			return nil, errprocess.Validation("Parent comment does not belong to this video")
		}
		if parent.ParentID != "" {
			return nil, errprocess.Validation("Replies cannot be nested")
		}
	}

	comment := &domain.Comment{
		ID:        uuid.New().String(),
		VideoID:   videoID,
		UserID:    userID,
		ParentID:  req.ParentID,
		Content:   req.Content,
		CreatedAt: time.Now().UTC(),
	}
	if err := uc.comments.Insert(ctx, comment); err != nil {
		return nil, errprocess.Server(fmt.Sprintf("insert comment failed: %v", err))
	}

	owners := make(map[string]*domain.Owner)
	view := uc.view(ctx, owners, *comment)
	return &view, nil
}

func (uc *commentUseCase) List(ctx context.Context, videoID string) ([]domain.CommentView, error) {
	topLevel, err := uc.comments.FindTopLevel(ctx, videoID)
	if err != nil {
		return nil, errprocess.Server(fmt.Sprintf("list comments failed: %v", err))
	}

	owners := make(map[string]*domain.Owner)
	views := make([]domain.CommentView, 0, len(topLevel))
	for _, c := range topLevel {
		v := uc.view(ctx, owners, c)

		replies, err := uc.comments.FindReplies(ctx, c.ID, schema.CommentRepliesPreview)
		if err != nil {
			return nil, errprocess.Server(fmt.Sprintf("list replies failed: %v", err))
		}
		for _, r := range replies {
			v.Replies = append(v.Replies, uc.view(ctx, owners, r))
		}

		v.ReplyCount, err = uc.comments.CountReplies(ctx, c.ID)
		if err != nil {
			return nil, errprocess.Server(fmt.Sprintf("count replies failed: %v", err))
		}
		views = append(views, v)
	}
	return views, nil
}

func (uc *commentUseCase) view(ctx context.Context, cache map[string]*domain.Owner, c domain.Comment) domain.CommentView {
	owner, ok := cache[c.UserID]
	if !ok {
		var err error
		owner, err = uc.users.Owner(ctx, c.UserID)
		if err != nil {
			owner = &domain.Owner{ID: c.UserID, DisplayName: "Anonymous"}
		}
		cache[c.UserID] = owner
	}
	return domain.CommentView{
		ID:        c.ID,
		VideoID:   c.VideoID,
		ParentID:  c.ParentID,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
		User:      owner,
	}
}
