package app

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"video_share_service/internal/video/domain"
	"video_share_service/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.SetNewNop()
	os.Exit(m.Run())
}

type mockVideoRepo struct{ mock.Mock }

func (m *mockVideoRepo) AutoMigrate() error { return m.Called().Error(0) }

func (m *mockVideoRepo) Create(ctx context.Context, v *domain.Video) error {
	return m.Called(ctx, v).Error(0)
}

func (m *mockVideoRepo) GetByID(ctx context.Context, id string) (*domain.Video, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*domain.Video), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockVideoRepo) Exists(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockVideoRepo) List(ctx context.Context, f domain.VideoFilter) ([]domain.Video, int64, error) {
	args := m.Called(ctx, f)
	var videos []domain.Video
	if v := args.Get(0); v != nil {
		videos = v.([]domain.Video)
	}
	return videos, args.Get(1).(int64), args.Error(2)
}

func (m *mockVideoRepo) IncrementViews(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockVideoRepo) Update(ctx context.Context, v *domain.Video) error {
	return m.Called(ctx, v).Error(0)
}

func (m *mockVideoRepo) SetThumbnailURL(ctx context.Context, id, url string) error {
	return m.Called(ctx, id, url).Error(0)
}

func (m *mockVideoRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockLikeRepo struct{ mock.Mock }

func (m *mockLikeRepo) Find(ctx context.Context, userID, videoID string) (*domain.Like, error) {
	args := m.Called(ctx, userID, videoID)
	if l := args.Get(0); l != nil {
		return l.(*domain.Like), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockLikeRepo) Create(ctx context.Context, l *domain.Like) error {
	return m.Called(ctx, l).Error(0)
}

func (m *mockLikeRepo) UpdateType(ctx context.Context, id uint, likeType string) error {
	return m.Called(ctx, id, likeType).Error(0)
}

func (m *mockLikeRepo) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockLikeRepo) CountByVideo(ctx context.Context, videoID, likeType string) (int64, error) {
	args := m.Called(ctx, videoID, likeType)
	return args.Get(0).(int64), args.Error(1)
}

type mockCommentRepo struct{ mock.Mock }

func (m *mockCommentRepo) Insert(ctx context.Context, c *domain.Comment) error {
	return m.Called(ctx, c).Error(0)
}

func (m *mockCommentRepo) FindByID(ctx context.Context, id string) (*domain.Comment, error) {
	args := m.Called(ctx, id)
	if c := args.Get(0); c != nil {
		return c.(*domain.Comment), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCommentRepo) FindTopLevel(ctx context.Context, videoID string) ([]domain.Comment, error) {
	args := m.Called(ctx, videoID)
	var comments []domain.Comment
	if c := args.Get(0); c != nil {
		comments = c.([]domain.Comment)
	}
	return comments, args.Error(1)
}

func (m *mockCommentRepo) FindReplies(ctx context.Context, parentID string, limit int64) ([]domain.Comment, error) {
	args := m.Called(ctx, parentID, limit)
	var replies []domain.Comment
	if r := args.Get(0); r != nil {
		replies = r.([]domain.Comment)
	}
	return replies, args.Error(1)
}

func (m *mockCommentRepo) CountReplies(ctx context.Context, parentID string) (int64, error) {
	args := m.Called(ctx, parentID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockCommentRepo) CountByVideo(ctx context.Context, videoID string) (int64, error) {
	args := m.Called(ctx, videoID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockCommentRepo) DeleteByVideo(ctx context.Context, videoID string) error {
	return m.Called(ctx, videoID).Error(0)
}

type mockUploadRepo struct{ mock.Mock }

func (m *mockUploadRepo) CreatePending(ctx context.Context, rec *domain.UploadRecord) error {
	return m.Called(ctx, rec).Error(0)
}

func (m *mockUploadRepo) Get(ctx context.Context, videoID string) (*domain.UploadRecord, error) {
	args := m.Called(ctx, videoID)
	if r := args.Get(0); r != nil {
		return r.(*domain.UploadRecord), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUploadRepo) Commit(ctx context.Context, videoID string) error {
	return m.Called(ctx, videoID).Error(0)
}

func (m *mockUploadRepo) ListExpired(ctx context.Context, cutoff time.Time) ([]domain.UploadRecord, error) {
	args := m.Called(ctx, cutoff)
	var recs []domain.UploadRecord
	if r := args.Get(0); r != nil {
		recs = r.([]domain.UploadRecord)
	}
	return recs, args.Error(1)
}

func (m *mockUploadRepo) Delete(ctx context.Context, videoID string) error {
	return m.Called(ctx, videoID).Error(0)
}

type mockUserDirectory struct{ mock.Mock }

func (m *mockUserDirectory) Exists(ctx context.Context, userID string) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserDirectory) Owner(ctx context.Context, userID string) (*domain.Owner, error) {
	args := m.Called(ctx, userID)
	if o := args.Get(0); o != nil {
		return o.(*domain.Owner), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockObjectStore struct{ mock.Mock }

func (m *mockObjectStore) PresignPutURL(ctx context.Context, objectName string, expiry time.Duration) (string, error) {
	args := m.Called(ctx, objectName, expiry)
	return args.String(0), args.Error(1)
}

func (m *mockObjectStore) PublicURL(objectName string) string {
	return m.Called(objectName).String(0)
}

func (m *mockObjectStore) RemoveObject(ctx context.Context, objectName string) error {
	return m.Called(ctx, objectName).Error(0)
}

type mockEventPublisher struct{ mock.Mock }

func (m *mockEventPublisher) Publish(ctx context.Context, e Event) error {
	return m.Called(ctx, e).Error(0)
}

type mockJobQueue struct{ mock.Mock }

func (m *mockJobQueue) EnqueueThumbnail(ctx context.Context, job domain.ThumbnailJob) error {
	return m.Called(ctx, job).Error(0)
}
