package domain

import "time"

// Comment is the stored comment document. ParentID is empty for
// top-level comments; replies always point at a top-level comment,
// nesting stops at one level.
type Comment struct {
	ID        string    `bson:"_id" json:"id"`
	VideoID   string    `bson:"video_id" json:"videoId"`
	UserID    string    `bson:"user_id" json:"userId"`
	ParentID  string    `bson:"parent_id,omitempty" json:"parentId,omitempty"`
	Content   string    `bson:"content" json:"content"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}

// CommentView is one comment as returned to callers, with author info
// resolved and (for top-level comments) a preview of its replies.
type CommentView struct {
	ID         string        `json:"id"`
	VideoID    string        `json:"videoId"`
	ParentID   string        `json:"parentId,omitempty"`
	Content    string        `json:"content"`
	CreatedAt  time.Time     `json:"createdAt"`
	User       *Owner        `json:"user"`
	Replies    []CommentView `json:"replies,omitempty"`
	ReplyCount int64         `json:"replyCount"`
}
