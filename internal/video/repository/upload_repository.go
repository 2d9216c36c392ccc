package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"video_share_service/internal/video/domain"
)

// UploadRepository tracks issued upload slots so that objects whose
// metadata never arrives can be reclaimed.
type UploadRepository interface {
	CreatePending(ctx context.Context, rec *domain.UploadRecord) error
	Get(ctx context.Context, videoID string) (*domain.UploadRecord, error)
	Commit(ctx context.Context, videoID string) error
	// ListExpired returns pending records older than the cutoff.
	ListExpired(ctx context.Context, cutoff time.Time) ([]domain.UploadRecord, error)
	Delete(ctx context.Context, videoID string) error
}

type uploadRepository struct {
	db *gorm.DB
}

func NewUploadRepository(db *gorm.DB) UploadRepository {
	return &uploadRepository{db: db}
}

func (r *uploadRepository) CreatePending(ctx context.Context, rec *domain.UploadRecord) error {
	rec.Status = domain.UploadStatusPending
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *uploadRepository) Get(ctx context.Context, videoID string) (*domain.UploadRecord, error) {
	var rec domain.UploadRecord
	if err := r.db.WithContext(ctx).First(&rec, "video_id = ?", videoID).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *uploadRepository) Commit(ctx context.Context, videoID string) error {
	return r.db.WithContext(ctx).
		Model(&domain.UploadRecord{}).
		Where("video_id = ?", videoID).
		Update("status", domain.UploadStatusCommitted).Error
}

func (r *uploadRepository) ListExpired(ctx context.Context, cutoff time.Time) ([]domain.UploadRecord, error) {
	var recs []domain.UploadRecord
	err := r.db.WithContext(ctx).
		Where("status = ? AND created_at < ?", domain.UploadStatusPending, cutoff).
		Find(&recs).Error
	return recs, err
}

func (r *uploadRepository) Delete(ctx context.Context, videoID string) error {
	return r.db.WithContext(ctx).Delete(&domain.UploadRecord{}, "video_id = ?", videoID).Error
}
