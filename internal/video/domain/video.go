package domain

import "time"

// Video is the durable video record. The identifier is minted at
// presign time and supplied by the caller on create, so duplicate
// create attempts are rejected rather than deduplicated.
type Video struct {
	ID           string `gorm:"primaryKey;size:64" json:"id"`
	Title        string `gorm:"size:200;not null" json:"title"`
	Description  string `gorm:"size:5000" json:"description"`
	VideoURL     string `gorm:"not null" json:"videoUrl"`
	ThumbnailURL string `json:"thumbnailUrl"`
	// Duration in seconds, 0 until known.
	Duration  int       `json:"duration"`
	Views     uint      `json:"views"`
	UserID    string    `gorm:"index;size:64;not null" json:"userId"`
	IsPublic  bool      `json:"isPublic"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Owner is the denormalized channel info attached to feed and watch
// responses.
type Owner struct {
	ID               string `json:"id"`
	Username         string `json:"username"`
	DisplayName      string `json:"displayName"`
	Avatar           string `json:"avatar"`
	ChannelName      string `json:"channelName"`
	SubscribersCount int    `json:"subscribersCount"`
}

// VideoSummary is one feed entry.
type VideoSummary struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	VideoURL     string    `json:"videoUrl"`
	ThumbnailURL string    `json:"thumbnailUrl"`
	Duration     int       `json:"duration"`
	Views        uint      `json:"views"`
	CreatedAt    time.Time `json:"createdAt"`
	User         *Owner    `json:"user"`
	CommentCount int64     `json:"commentCount"`
	LikeCount    int64     `json:"likeCount"`
}

// Pagination describes one feed page.
type Pagination struct {
	Total   int64 `json:"total"`
	Limit   int   `json:"limit"`
	Offset  int   `json:"offset"`
	HasMore bool  `json:"hasMore"`
}

// VideoPage is the feed listing response.
type VideoPage struct {
	Videos     []VideoSummary `json:"videos"`
	Pagination Pagination     `json:"pagination"`
}

// WatchVideo is the single-video response. Views already includes the
// increment caused by this fetch.
type WatchVideo struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	VideoURL     string    `json:"videoUrl"`
	ThumbnailURL string    `json:"thumbnailUrl"`
	Duration     int       `json:"duration"`
	Views        uint      `json:"views"`
	LikeCount    int64     `json:"likeCount"`
	IsPublic     bool      `json:"isPublic"`
	CreatedAt    time.Time `json:"createdAt"`
	User         *Owner    `json:"user"`
}

// VideoFilter is the repository-level listing filter.
type VideoFilter struct {
	UserID   string
	IsPublic *bool
	Limit    int
	Offset   int
}
