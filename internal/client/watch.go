package client

import (
	"context"

	"video_share_service/internal/video/domain"
	"video_share_service/pkg/schema"
)

// WatchSession mirrors one watch page: like state and the comment
// thread, updated optimistically. Each mutation applies its local
// change first, calls the service, and rolls the change back if the
// call fails, so the local state always converges on the server's.
type WatchSession struct {
	API     *Client
	VideoID string

	Liked      bool
	Disliked   bool
	LikeCount  int64
	Comments   []domain.CommentView
	ErrMessage string
}

func NewWatchSession(api *Client, video *domain.WatchVideo, comments []domain.CommentView) *WatchSession {
	return &WatchSession{
		API:       api,
		VideoID:   video.ID,
		LikeCount: video.LikeCount,
		Comments:  comments,
	}
}

// Like toggles the like reaction.
func (s *WatchSession) Like(ctx context.Context) error {
	return s.toggle(ctx, domain.LikeTypeLike)
}

// Dislike toggles the dislike reaction.
func (s *WatchSession) Dislike(ctx context.Context) error {
	return s.toggle(ctx, domain.LikeTypeDislike)
}

func (s *WatchSession) toggle(ctx context.Context, likeType string) error {
	prevLiked, prevDisliked, prevCount := s.Liked, s.Disliked, s.LikeCount

	// Optimistic local transition, mirroring the server's toggle rules.
	if likeType == domain.LikeTypeLike {
		switch {
		case s.Liked:
			s.Liked = false
			s.LikeCount--
		default:
			if !s.Liked {
				s.LikeCount++
			}
			s.Liked = true
			s.Disliked = false
		}
	} else {
		switch {
		case s.Disliked:
			s.Disliked = false
		default:
			if s.Liked {
				s.LikeCount--
			}
			s.Disliked = true
			s.Liked = false
		}
	}

	if _, err := s.API.ToggleLike(ctx, s.VideoID, likeType); err != nil {
		s.Liked, s.Disliked, s.LikeCount = prevLiked, prevDisliked, prevCount
		s.ErrMessage = err.Error()
		return err
	}
	s.ErrMessage = ""
	return nil
}

// AddComment posts a top-level comment and prepends it to the thread.
func (s *WatchSession) AddComment(ctx context.Context, content string) error {
	view, err := s.API.PostComment(ctx, s.VideoID, schema.CommentCreate{Content: content})
	if err != nil {
		s.ErrMessage = err.Error()
		return err
	}
	s.Comments = append([]domain.CommentView{*view}, s.Comments...)
	s.ErrMessage = ""
	return nil
}

// AddReply posts a reply under a top-level comment and bumps its
// reply count. The reply joins the preview only while there is room.
func (s *WatchSession) AddReply(ctx context.Context, parentID, content string) error {
	view, err := s.API.PostComment(ctx, s.VideoID, schema.CommentCreate{
		Content:  content,
		ParentID: parentID,
	})
	if err != nil {
		s.ErrMessage = err.Error()
		return err
	}
	for i := range s.Comments {
		if s.Comments[i].ID != parentID {
			continue
		}
		s.Comments[i].ReplyCount++
		if len(s.Comments[i].Replies) < schema.CommentRepliesPreview {
			s.Comments[i].Replies = append(s.Comments[i].Replies, *view)
		}
		break
	}
	s.ErrMessage = ""
	return nil
}
