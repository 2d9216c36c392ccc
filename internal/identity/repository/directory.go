package repository

import (
	"context"

	videodomain "video_share_service/internal/video/domain"
)

// Directory adapts the user repository into the owner lookup the video
// module depends on.
type Directory struct {
	users UserRepository
}

func NewDirectory(users UserRepository) *Directory {
	return &Directory{users: users}
}

func (d *Directory) Exists(ctx context.Context, userID string) (bool, error) {
	return d.users.Exists(ctx, userID)
}

func (d *Directory) Owner(ctx context.Context, userID string) (*videodomain.Owner, error) {
	u, err := d.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &videodomain.Owner{
		ID:               u.ID,
		Username:         u.Username,
		DisplayName:      u.DisplayName,
		Avatar:           u.Avatar,
		ChannelName:      u.ChannelName,
		SubscribersCount: u.SubscribersCount,
	}, nil
}
