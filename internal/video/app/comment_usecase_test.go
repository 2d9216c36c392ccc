package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/mongo"

	"video_share_service/internal/video/domain"
	errprocess "video_share_service/pkg/err"
	"video_share_service/pkg/schema"
)

func newCommentUC() (CommentUseCase, *mockCommentRepo, *mockVideoRepo, *mockUserDirectory) {
	comments := new(mockCommentRepo)
	videos := new(mockVideoRepo)
	users := new(mockUserDirectory)
	return NewCommentUseCase(comments, videos, users), comments, videos, users
}

func TestAddTopLevelComment(t *testing.T) {
	uc, comments, videos, users := newCommentUC()

	videos.On("Exists", mock.Anything, "vid_1").Return(true, nil)
	comments.On("Insert", mock.Anything, mock.MatchedBy(func(c *domain.Comment) bool {
		return c.VideoID == "vid_1" && c.UserID == "user_1" && c.ParentID == "" && c.ID != ""
	})).Return(nil)
	users.On("Owner", mock.Anything, "user_1").
		Return(&domain.Owner{ID: "user_1", DisplayName: "Ann"}, nil)

	view, err := uc.Add(context.Background(), "user_1", "vid_1", schema.CommentCreate{Content: "nice"})
	assert.NoError(t, err)
	assert.Equal(t, "nice", view.Content)
	assert.Equal(t, "Ann", view.User.DisplayName)
}

func TestAddReplyChecksParent(t *testing.T) {
	uc, comments, videos, users := newCommentUC()
	videos.On("Exists", mock.Anything, "vid_1").Return(true, nil)
	users.On("Owner", mock.Anything, mock.Anything).
		Return(&domain.Owner{ID: "user_1"}, nil)

	t.Run("parent missing", func(t *testing.T) {
		comments.On("FindByID", mock.Anything, "gone").Return(nil, mongo.ErrNoDocuments).Once()
		_, err := uc.Add(context.Background(), "user_1", "vid_1",
			schema.CommentCreate{Content: "re", ParentID: "gone"})
		assert.Equal(t, errprocess.KindValidation, errprocess.KindOf(err))
	})

	t.Run("parent on another video", func(t *testing.T) {
		comments.On("FindByID", mock.Anything, "c_other").
			Return(&domain.Comment{ID: "c_other", VideoID: "vid_2"}, nil).Once()
		_, err := uc.Add(context.Background(), "user_1", "vid_1",
			schema.CommentCreate{Content: "re", ParentID: "c_other"})
		assert.EqualError(t, err, "Parent comment does not belong to this video")
	})

	t.Run("parent is itself a reply", func(t *testing.T) {
		comments.On("FindByID", mock.Anything, "c_reply").
			Return(&domain.Comment{ID: "c_reply", VideoID: "vid_1", ParentID: "c_top"}, nil).Once()
		_, err := uc.Add(context.Background(), "user_1", "vid_1",
			schema.CommentCreate{Content: "re", ParentID: "c_reply"})
		assert.EqualError(t, err, "Replies cannot be nested")
	})

	t.Run("valid reply", func(t *testing.T) {
		comments.On("FindByID", mock.Anything, "c_top").
			Return(&domain.Comment{ID: "c_top", VideoID: "vid_1"}, nil).Once()
		comments.On("Insert", mock.Anything, mock.MatchedBy(func(c *domain.Comment) bool {
			return c.ParentID == "c_top"
		})).Return(nil).Once()

		view, err := uc.Add(context.Background(), "user_1", "vid_1",
			schema.CommentCreate{Content: "re", ParentID: "c_top"})
		assert.NoError(t, err)
		assert.Equal(t, "c_top", view.ParentID)
	})
}

func TestAddCommentRejectsContent(t *testing.T) {
	uc, _, videos, _ := newCommentUC()

	_, err := uc.Add(context.Background(), "user_1", "vid_1", schema.CommentCreate{})
	assert.Equal(t, errprocess.KindValidation, errprocess.KindOf(err))

	long := make([]byte, schema.MaxCommentLen+1)
	for i := range long {
		long[i] = 'x'
	}
	_, err = uc.Add(context.Background(), "user_1", "vid_1", schema.CommentCreate{Content: string(long)})
	assert.Equal(t, errprocess.KindValidation, errprocess.KindOf(err))

	videos.AssertNotCalled(t, "Exists", mock.Anything, mock.Anything)
}

func TestListCommentsAssemblesThread(t *testing.T) {
	uc, comments, _, users := newCommentUC()

	now := time.Now()
	topLevel := []domain.Comment{
		{ID: "c2", VideoID: "vid_1", UserID: "user_2", Content: "second", CreatedAt: now},
		{ID: "c1", VideoID: "vid_1", UserID: "user_1", Content: "first", CreatedAt: now.Add(-time.Hour)},
	}
	comments.On("FindTopLevel", mock.Anything, "vid_1").Return(topLevel, nil)
	comments.On("FindReplies", mock.Anything, "c2", int64(schema.CommentRepliesPreview)).
		Return([]domain.Comment{}, nil)
	comments.On("FindReplies", mock.Anything, "c1", int64(schema.CommentRepliesPreview)).
		Return([]domain.Comment{
			{ID: "r1", VideoID: "vid_1", UserID: "user_2", ParentID: "c1", Content: "re"},
		}, nil)
	comments.On("CountReplies", mock.Anything, "c2").Return(int64(0), nil)
	comments.On("CountReplies", mock.Anything, "c1").Return(int64(5), nil)
	users.On("Owner", mock.Anything, "user_1").Return(&domain.Owner{ID: "user_1"}, nil)
	users.On("Owner", mock.Anything, "user_2").Return(&domain.Owner{ID: "user_2"}, nil)

	views, err := uc.List(context.Background(), "vid_1")
	assert.NoError(t, err)
	assert.Len(t, views, 2)
	assert.Equal(t, "c2", views[0].ID)
	assert.Empty(t, views[0].Replies)
	assert.Len(t, views[1].Replies, 1)
	assert.Equal(t, int64(5), views[1].ReplyCount)

	// Each author resolved once across the whole thread.
	users.AssertNumberOfCalls(t, "Owner", 2)
}
