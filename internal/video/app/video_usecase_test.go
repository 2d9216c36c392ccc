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

type videoUCMocks struct {
	videos   *mockVideoRepo
	likes    *mockLikeRepo
	comments *mockCommentRepo
	uploads  *mockUploadRepo
	users    *mockUserDirectory
	store    *mockObjectStore
	jobs     *mockJobQueue
}

func newVideoUC() (VideoUseCase, videoUCMocks) {
	m := videoUCMocks{
		videos:   new(mockVideoRepo),
		likes:    new(mockLikeRepo),
		comments: new(mockCommentRepo),
		uploads:  new(mockUploadRepo),
		users:    new(mockUserDirectory),
		store:    new(mockObjectStore),
		jobs:     new(mockJobQueue),
	}
	uc := NewVideoUseCase(VideoUseCaseDeps{
		Videos:   m.videos,
		Likes:    m.likes,
		Comments: m.comments,
		Uploads:  m.uploads,
		Users:    m.users,
		Store:    m.store,
		Events:   NopPublisher{},
		Jobs:     m.jobs,
	})
	return uc, m
}

func publicOnly() *bool {
	pub := true
	return &pub
}

func validCreate() schema.CreateVideo {
	return schema.CreateVideo{
		VideoID:      "vid_1",
		Title:        "First upload",
		VideoURL:     "http://storage/videos/raw/vid_1.mp4",
		ThumbnailURL: "http://storage/videos/thumbnails/vid_1.png",
	}
}

func TestCreateVideo(t *testing.T) {
	uc, m := newVideoUC()

	m.users.On("Exists", mock.Anything, "user_1").Return(true, nil)
	m.videos.On("Exists", mock.Anything, "vid_1").Return(false, nil)
	m.videos.On("Create", mock.Anything, mock.Anything).Return(nil)
	m.uploads.On("Commit", mock.Anything, "vid_1").Return(nil)

	video, err := uc.Create(context.Background(), "user_1", validCreate())
	assert.NoError(t, err)
	assert.Equal(t, "vid_1", video.ID)
	assert.Equal(t, "user_1", video.UserID)
	assert.True(t, video.IsPublic)

	m.uploads.AssertCalled(t, "Commit", mock.Anything, "vid_1")
	// Thumbnail provided, so no background job.
	m.jobs.AssertNotCalled(t, "EnqueueThumbnail", mock.Anything, mock.Anything)
}

func TestCreateVideoWithoutThumbnailQueuesJob(t *testing.T) {
	uc, m := newVideoUC()

	req := validCreate()
	req.ThumbnailURL = ""

	m.users.On("Exists", mock.Anything, "user_1").Return(true, nil)
	m.videos.On("Exists", mock.Anything, "vid_1").Return(false, nil)
	m.videos.On("Create", mock.Anything, mock.Anything).Return(nil)
	m.uploads.On("Commit", mock.Anything, "vid_1").Return(nil)
	m.uploads.On("Get", mock.Anything, "vid_1").
		Return(&domain.UploadRecord{VideoID: "vid_1", ObjectKey: "videos/raw/vid_1.mp4"}, nil)
	m.jobs.On("EnqueueThumbnail", mock.Anything,
		domain.ThumbnailJob{VideoID: "vid_1", ObjectKey: "videos/raw/vid_1.mp4"}).Return(nil)

	_, err := uc.Create(context.Background(), "user_1", req)
	assert.NoError(t, err)
	m.jobs.AssertExpectations(t)
}

func TestCreateVideoUnknownUser(t *testing.T) {
	uc, m := newVideoUC()
	m.users.On("Exists", mock.Anything, "ghost").Return(false, nil)

	_, err := uc.Create(context.Background(), "ghost", validCreate())
	assert.Equal(t, errprocess.KindNotFound, errprocess.KindOf(err))
	assert.EqualError(t, err, "User not found")
	m.videos.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateVideoDuplicate(t *testing.T) {
	uc, m := newVideoUC()
	m.users.On("Exists", mock.Anything, "user_1").Return(true, nil)
	m.videos.On("Exists", mock.Anything, "vid_1").Return(true, nil)

	_, err := uc.Create(context.Background(), "user_1", validCreate())
	assert.Equal(t, errprocess.KindConflict, errprocess.KindOf(err))
	m.videos.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateVideoTitleTooLong(t *testing.T) {
	uc, _ := newVideoUC()

	req := validCreate()
	for len(req.Title) <= schema.MaxTitleLen {
		req.Title += "aaaaaaaaaa"
	}

	_, err := uc.Create(context.Background(), "user_1", req)
	assert.Equal(t, errprocess.KindValidation, errprocess.KindOf(err))

	found := false
	for _, f := range errprocess.FieldsOf(err) {
		if f.Message == "Title too long" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestWatchVideoCountsThisView(t *testing.T) {
	uc, m := newVideoUC()

	m.videos.On("GetByID", mock.Anything, "vid_1").
		Return(&domain.Video{ID: "vid_1", UserID: "user_1", Views: 41}, nil)
	m.videos.On("IncrementViews", mock.Anything, "vid_1").Return(nil)
	m.likes.On("CountByVideo", mock.Anything, "vid_1", domain.LikeTypeLike).Return(int64(7), nil)
	m.users.On("Owner", mock.Anything, "user_1").
		Return(&domain.Owner{ID: "user_1", DisplayName: "Ann"}, nil)

	res, err := uc.Watch(context.Background(), "vid_1")
	assert.NoError(t, err)
	assert.Equal(t, uint(42), res.Views)
	assert.Equal(t, int64(7), res.LikeCount)
	assert.Equal(t, "Ann", res.User.DisplayName)

	m.videos.AssertNumberOfCalls(t, "IncrementViews", 1)
}

func TestWatchVideoNotFound(t *testing.T) {
	uc, m := newVideoUC()
	m.videos.On("GetByID", mock.Anything, "nope").Return(nil, gorm.ErrRecordNotFound)

	_, err := uc.Watch(context.Background(), "nope")
	assert.Equal(t, errprocess.KindNotFound, errprocess.KindOf(err))
	assert.EqualError(t, err, "Video not found")
	m.videos.AssertNotCalled(t, "IncrementViews", mock.Anything, mock.Anything)
}

func TestListVideosPagination(t *testing.T) {
	uc, m := newVideoUC()

	videos := []domain.Video{
		{ID: "v3", UserID: "user_1"},
		{ID: "v2", UserID: "user_1"},
	}
	m.videos.On("List", mock.Anything, domain.VideoFilter{Limit: 2, Offset: 0, IsPublic: publicOnly()}).
		Return(videos, int64(5), nil)
	m.likes.On("CountByVideo", mock.Anything, mock.Anything, domain.LikeTypeLike).Return(int64(0), nil)
	m.comments.On("CountByVideo", mock.Anything, mock.Anything).Return(int64(0), nil)
	m.users.On("Owner", mock.Anything, "user_1").
		Return(&domain.Owner{ID: "user_1"}, nil)

	page, err := uc.List(context.Background(), schema.VideoQuery{Limit: 2})
	assert.NoError(t, err)
	assert.Len(t, page.Videos, 2)
	assert.Equal(t, int64(5), page.Pagination.Total)
	assert.True(t, page.Pagination.HasMore)

	// Owner resolved once despite two videos from the same channel.
	m.users.AssertNumberOfCalls(t, "Owner", 1)
}

func TestListVideosDefaultsLimit(t *testing.T) {
	uc, m := newVideoUC()

	m.videos.On("List", mock.Anything, domain.VideoFilter{Limit: schema.DefaultPageLimit, Offset: 0, IsPublic: publicOnly()}).
		Return([]domain.Video{}, int64(0), nil)

	page, err := uc.List(context.Background(), schema.VideoQuery{})
	assert.NoError(t, err)
	assert.Equal(t, schema.DefaultPageLimit, page.Pagination.Limit)
	assert.False(t, page.Pagination.HasMore)
}

func TestListVideosDefaultsToPublic(t *testing.T) {
	uc, m := newVideoUC()

	var captured domain.VideoFilter
	m.videos.On("List", mock.Anything, mock.MatchedBy(func(f domain.VideoFilter) bool {
		captured = f
		return true
	})).Return([]domain.Video{}, int64(0), nil)

	_, err := uc.List(context.Background(), schema.VideoQuery{})
	assert.NoError(t, err)
	if assert.NotNil(t, captured.IsPublic) {
		assert.True(t, *captured.IsPublic)
	}
}

func TestListVideosPrivateWhenAsked(t *testing.T) {
	uc, m := newVideoUC()

	private := false
	m.videos.On("List", mock.Anything, domain.VideoFilter{Limit: schema.DefaultPageLimit, IsPublic: &private}).
		Return([]domain.Video{}, int64(0), nil)

	_, err := uc.List(context.Background(), schema.VideoQuery{IsPublic: &private})
	assert.NoError(t, err)
	m.videos.AssertExpectations(t)
}

func TestListVideosLimitTooLarge(t *testing.T) {
	uc, _ := newVideoUC()
	_, err := uc.List(context.Background(), schema.VideoQuery{Limit: 51})
	assert.Equal(t, errprocess.KindValidation, errprocess.KindOf(err))
}

func TestUpdateVideoOwnerOnly(t *testing.T) {
	uc, m := newVideoUC()

	m.videos.On("GetByID", mock.Anything, "vid_1").
		Return(&domain.Video{ID: "vid_1", UserID: "user_1", Title: "old"}, nil)

	title := "new title"
	_, err := uc.Update(context.Background(), "intruder", "vid_1", schema.UpdateVideo{Title: &title})
	assert.Equal(t, errprocess.KindUnauthorized, errprocess.KindOf(err))
	m.videos.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdateVideoPartial(t *testing.T) {
	uc, m := newVideoUC()

	m.videos.On("GetByID", mock.Anything, "vid_1").
		Return(&domain.Video{ID: "vid_1", UserID: "user_1", Title: "old", Description: "desc"}, nil)
	m.videos.On("Update", mock.Anything, mock.Anything).Return(nil)

	hidden := false
	video, err := uc.Update(context.Background(), "user_1", "vid_1", schema.UpdateVideo{IsPublic: &hidden})
	assert.NoError(t, err)
	assert.Equal(t, "old", video.Title)
	assert.False(t, video.IsPublic)
}

func TestDeleteVideoCleansUp(t *testing.T) {
	uc, m := newVideoUC()

	m.videos.On("GetByID", mock.Anything, "vid_1").
		Return(&domain.Video{ID: "vid_1", UserID: "user_1"}, nil)
	m.videos.On("Delete", mock.Anything, "vid_1").Return(nil)
	m.comments.On("DeleteByVideo", mock.Anything, "vid_1").Return(nil)
	m.uploads.On("Get", mock.Anything, "vid_1").
		Return(&domain.UploadRecord{VideoID: "vid_1", ObjectKey: "videos/raw/vid_1.mp4"}, nil)
	m.store.On("RemoveObject", mock.Anything, "videos/raw/vid_1.mp4").Return(nil)
	m.uploads.On("Delete", mock.Anything, "vid_1").Return(nil)

	err := uc.Delete(context.Background(), "user_1", "vid_1")
	assert.NoError(t, err)
	m.store.AssertExpectations(t)
	m.comments.AssertExpectations(t)
}
