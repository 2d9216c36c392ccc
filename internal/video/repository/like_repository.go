package repository

import (
	"context"

	"gorm.io/gorm"

	"video_share_service/internal/video/domain"
)

// LikeRepository persists user reactions.
type LikeRepository interface {
	Find(ctx context.Context, userID, videoID string) (*domain.Like, error)
	Create(ctx context.Context, l *domain.Like) error
	UpdateType(ctx context.Context, id uint, likeType string) error
	Delete(ctx context.Context, id uint) error
	CountByVideo(ctx context.Context, videoID, likeType string) (int64, error)
}

type likeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

func (r *likeRepository) Find(ctx context.Context, userID, videoID string) (*domain.Like, error) {
	var l domain.Like
	err := r.db.WithContext(ctx).
		First(&l, "user_id = ? AND video_id = ?", userID, videoID).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *likeRepository) Create(ctx context.Context, l *domain.Like) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *likeRepository) UpdateType(ctx context.Context, id uint, likeType string) error {
	return r.db.WithContext(ctx).
		Model(&domain.Like{}).
		Where("id = ?", id).
		Update("type", likeType).Error
}

func (r *likeRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&domain.Like{}, id).Error
}

func (r *likeRepository) CountByVideo(ctx context.Context, videoID, likeType string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Like{}).
		Where("video_id = ? AND type = ?", videoID, likeType).
		Count(&count).Error
	return count, err
}
