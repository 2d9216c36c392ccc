package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"video_share_service/internal/video/domain"
	errprocess "video_share_service/pkg/err"
	"video_share_service/pkg/schema"
)

func newLikeUC() (LikeUseCase, *mockLikeRepo, *mockVideoRepo) {
	likes := new(mockLikeRepo)
	videos := new(mockVideoRepo)
	return NewLikeUseCase(likes, videos, NopPublisher{}), likes, videos
}

func TestToggleCreatesReaction(t *testing.T) {
	uc, likes, videos := newLikeUC()

	videos.On("Exists", mock.Anything, "vid_1").Return(true, nil)
	likes.On("Find", mock.Anything, "user_1", "vid_1").Return(nil, gorm.ErrRecordNotFound)
	likes.On("Create", mock.Anything, mock.MatchedBy(func(l *domain.Like) bool {
		return l.UserID == "user_1" && l.VideoID == "vid_1" && l.Type == domain.LikeTypeLike
	})).Return(nil)

	res, err := uc.Toggle(context.Background(), "user_1", "vid_1", schema.LikeRequest{Type: domain.LikeTypeLike})
	assert.NoError(t, err)
	assert.Equal(t, domain.LikeActionCreated, res.Action)
	assert.Equal(t, domain.LikeTypeLike, res.Type)
}

func TestToggleSameTypeRemoves(t *testing.T) {
	uc, likes, videos := newLikeUC()

	videos.On("Exists", mock.Anything, "vid_1").Return(true, nil)
	likes.On("Find", mock.Anything, "user_1", "vid_1").
		Return(&domain.Like{ID: 9, UserID: "user_1", VideoID: "vid_1", Type: domain.LikeTypeLike}, nil)
	likes.On("Delete", mock.Anything, uint(9)).Return(nil)

	res, err := uc.Toggle(context.Background(), "user_1", "vid_1", schema.LikeRequest{Type: domain.LikeTypeLike})
	assert.NoError(t, err)
	assert.Equal(t, domain.LikeActionRemoved, res.Action)
	assert.Empty(t, res.Type)
}

func TestToggleOppositeTypeFlips(t *testing.T) {
	uc, likes, videos := newLikeUC()

	videos.On("Exists", mock.Anything, "vid_1").Return(true, nil)
	likes.On("Find", mock.Anything, "user_1", "vid_1").
		Return(&domain.Like{ID: 9, UserID: "user_1", VideoID: "vid_1", Type: domain.LikeTypeLike}, nil)
	likes.On("UpdateType", mock.Anything, uint(9), domain.LikeTypeDislike).Return(nil)

	res, err := uc.Toggle(context.Background(), "user_1", "vid_1", schema.LikeRequest{Type: domain.LikeTypeDislike})
	assert.NoError(t, err)
	assert.Equal(t, domain.LikeActionUpdated, res.Action)
	assert.Equal(t, domain.LikeTypeDislike, res.Type)
	likes.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	likes.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestToggleUnknownVideo(t *testing.T) {
	uc, likes, videos := newLikeUC()
	videos.On("Exists", mock.Anything, "nope").Return(false, nil)

	_, err := uc.Toggle(context.Background(), "user_1", "nope", schema.LikeRequest{Type: domain.LikeTypeLike})
	assert.Equal(t, errprocess.KindNotFound, errprocess.KindOf(err))
	likes.AssertNotCalled(t, "Find", mock.Anything, mock.Anything, mock.Anything)
}

func TestToggleRejectsBadType(t *testing.T) {
	uc, _, videos := newLikeUC()

	_, err := uc.Toggle(context.Background(), "user_1", "vid_1", schema.LikeRequest{Type: "LOVE"})
	assert.Equal(t, errprocess.KindValidation, errprocess.KindOf(err))
	videos.AssertNotCalled(t, "Exists", mock.Anything, mock.Anything)
}

func TestLikeStatus(t *testing.T) {
	uc, likes, _ := newLikeUC()

	likes.On("Find", mock.Anything, "user_1", "vid_1").
		Return(&domain.Like{Type: domain.LikeTypeDislike}, nil)

	status, err := uc.Status(context.Background(), "user_1", "vid_1")
	assert.NoError(t, err)
	assert.False(t, status.IsLiked)
	assert.True(t, status.IsDisliked)
}

func TestLikeStatusNoReaction(t *testing.T) {
	uc, likes, _ := newLikeUC()
	likes.On("Find", mock.Anything, "user_1", "vid_1").Return(nil, gorm.ErrRecordNotFound)

	status, err := uc.Status(context.Background(), "user_1", "vid_1")
	assert.NoError(t, err)
	assert.False(t, status.IsLiked)
	assert.False(t, status.IsDisliked)
}
