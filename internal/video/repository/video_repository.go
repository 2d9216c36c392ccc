package repository

import (
	"context"

	"gorm.io/gorm"

	"video_share_service/internal/video/domain"
)

// VideoRepository persists video records.
type VideoRepository interface {
	AutoMigrate() error
	Create(ctx context.Context, v *domain.Video) error
	GetByID(ctx context.Context, id string) (*domain.Video, error)
	Exists(ctx context.Context, id string) (bool, error)
	List(ctx context.Context, f domain.VideoFilter) ([]domain.Video, int64, error)
	IncrementViews(ctx context.Context, id string) error
	Update(ctx context.Context, v *domain.Video) error
	SetThumbnailURL(ctx context.Context, id, url string) error
	Delete(ctx context.Context, id string) error
}

type videoRepository struct {
	db *gorm.DB
}

func NewVideoRepository(db *gorm.DB) VideoRepository {
	return &videoRepository{db: db}
}

func (r *videoRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Video{}, &domain.Like{}, &domain.UploadRecord{})
}

func (r *videoRepository) Create(ctx context.Context, v *domain.Video) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *videoRepository) GetByID(ctx context.Context, id string) (*domain.Video, error) {
	var v domain.Video
	if err := r.db.WithContext(ctx).First(&v, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *videoRepository) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Video{}).
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}

func (r *videoRepository) List(ctx context.Context, f domain.VideoFilter) ([]domain.Video, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Video{})
	if f.UserID != "" {
		q = q.Where("user_id = ?", f.UserID)
	}
	if f.IsPublic != nil {
		q = q.Where("is_public = ?", *f.IsPublic)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var videos []domain.Video
	err := q.Order("created_at DESC").
		Limit(f.Limit).
		Offset(f.Offset).
		Find(&videos).Error
	if err != nil {
		return nil, 0, err
	}
	return videos, total, nil
}

func (r *videoRepository) IncrementViews(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Model(&domain.Video{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + ?", 1)).Error
}

func (r *videoRepository) Update(ctx context.Context, v *domain.Video) error {
	return r.db.WithContext(ctx).Save(v).Error
}

func (r *videoRepository) SetThumbnailURL(ctx context.Context, id, url string) error {
	return r.db.WithContext(ctx).
		Model(&domain.Video{}).
		Where("id = ?", id).
		Update("thumbnail_url", url).Error
}

func (r *videoRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&domain.Video{}, "id = ?", id).Error
}
