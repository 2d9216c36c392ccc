package domain

import "time"

// Like types. A user holds at most one row per video.
const (
	LikeTypeLike    = "LIKE"
	LikeTypeDislike = "DISLIKE"
)

// Toggle outcomes.
const (
	LikeActionCreated = "created"
	LikeActionUpdated = "updated"
	LikeActionRemoved = "removed"
)

// Like is one user reaction on one video. The unique index makes the
// one-row-per-user-per-video invariant a database guarantee, not just
// an application one.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"size:64;not null;uniqueIndex:idx_like_user_video" json:"userId"`
	VideoID   string    `gorm:"size:64;not null;uniqueIndex:idx_like_user_video" json:"videoId"`
	Type      string    `gorm:"size:16;not null" json:"type"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// LikeToggleRes reports what the toggle did.
type LikeToggleRes struct {
	Action  string `json:"action"`
	Type    string `json:"type,omitempty"`
	Message string `json:"message"`
}

// LikeStatus is the caller's current reaction on a video.
type LikeStatus struct {
	IsLiked    bool `json:"isLiked"`
	IsDisliked bool `json:"isDisliked"`
}
