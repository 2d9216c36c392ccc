package app

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"video_share_service/internal/video/domain"
	"video_share_service/internal/video/repository"
	"video_share_service/pkg/database"
	"video_share_service/pkg/logger"
)

// ThumbnailWorker consumes thumbnail jobs and sweeps abandoned
// uploads. It runs in its own process, sharing the repositories and
// object store with the API service.
type ThumbnailWorker struct {
	rabbit  database.RabbitRepo
	store   *database.MinIOClient
	videos  repository.VideoRepository
	uploads repository.UploadRepository

	// PendingTTL is how long an issued upload slot may stay pending
	// before the reaper reclaims it.
	PendingTTL   time.Duration
	ReapInterval time.Duration
}

func NewThumbnailWorker(rabbit database.RabbitRepo, store *database.MinIOClient,
	videos repository.VideoRepository, uploads repository.UploadRepository,
	pendingTTL, reapInterval time.Duration) *ThumbnailWorker {
	return &ThumbnailWorker{
		rabbit:       rabbit,
		store:        store,
		videos:       videos,
		uploads:      uploads,
		PendingTTL:   pendingTTL,
		ReapInterval: reapInterval,
	}
}

// Run blocks consuming jobs and reaping until ctx is canceled.
func (w *ThumbnailWorker) Run(ctx context.Context) error {
	ch := w.rabbit.GetRabbit()
	if _, err := ch.QueueDeclare(domain.ThumbnailQueue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare queue failed: %v", err)
	}

	deliveries, err := ch.Consume(domain.ThumbnailQueue, "thumbnail_worker", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume failed: %v", err)
	}

	ticker := time.NewTicker(w.ReapInterval)
	defer ticker.Stop()

	logger.Log.Info("thumbnail worker started")
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-ticker.C:
			w.reap(ctx)

		case d, ok := <-deliveries:
			if !ok {
				return fmt.Errorf("delivery channel closed")
			}
			var job domain.ThumbnailJob
			if err := json.Unmarshal(d.Body, &job); err != nil {
				logger.Log.Error("bad thumbnail job payload: " + err.Error())
				d.Nack(false, false)
				continue
			}
			if err := w.process(ctx, job); err != nil {
				logger.Log.Error("thumbnail job for video [" + job.VideoID + "] failed: " + err.Error())
				// Requeue once via the broker; a poisoned job gets dropped.
				d.Nack(false, !d.Redelivered)
				continue
			}
			d.Ack(false)
		}
	}
}

// process downloads the raw video, grabs a frame one second in and
// publishes it as the video's thumbnail.
func (w *ThumbnailWorker) process(ctx context.Context, job domain.ThumbnailJob) error {
	tmpDir, err := os.MkdirTemp("", "thumbnail_"+job.VideoID)
	if err != nil {
		return fmt.Errorf("make temp dir failed: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	videoPath := filepath.Join(tmpDir, "source"+filepath.Ext(job.ObjectKey))
	if err := w.store.DownloadFile(ctx, job.ObjectKey, videoPath); err != nil {
		return fmt.Errorf("download video failed: %v", err)
	}

	framePath := filepath.Join(tmpDir, "frame.jpg")
	if err := ExtractFrame(ctx, videoPath, "00:00:01", framePath); err != nil {
		return err
	}

	objectKey := domain.ThumbnailPrefix + job.VideoID + ".jpg"
	if err := w.store.UploadFile(ctx, objectKey, framePath, "image/jpeg"); err != nil {
		return fmt.Errorf("upload thumbnail failed: %v", err)
	}

	if err := w.videos.SetThumbnailURL(ctx, job.VideoID, w.store.PublicURL(objectKey)); err != nil {
		return fmt.Errorf("set thumbnail url failed: %v", err)
	}

	if duration, err := ProbeDuration(ctx, videoPath); err == nil {
		if v, err := w.videos.GetByID(ctx, job.VideoID); err == nil && v.Duration == 0 {
			v.Duration = duration
			if err := w.videos.Update(ctx, v); err != nil {
				logger.Log.Warn("store duration for video [" + job.VideoID + "] failed: " + err.Error())
			}
		}
	}

	logger.Log.Info("thumbnail generated for video [" + job.VideoID + "]")
	return nil
}

// reap removes objects whose upload slot expired without the metadata
// ever arriving.
func (w *ThumbnailWorker) reap(ctx context.Context) {
	cutoff := time.Now().Add(-w.PendingTTL)
	expired, err := w.uploads.ListExpired(ctx, cutoff)
	if err != nil {
		logger.Log.Error("list expired uploads failed: " + err.Error())
		return
	}

	for _, rec := range expired {
		if err := w.store.RemoveObject(ctx, rec.ObjectKey); err != nil {
			logger.Log.Warn("remove abandoned object [" + rec.ObjectKey + "] failed: " + err.Error())
			continue
		}
		if err := w.uploads.Delete(ctx, rec.VideoID); err != nil {
			logger.Log.Warn("delete upload record [" + rec.VideoID + "] failed: " + err.Error())
			continue
		}
		logger.Log.Info("reaped abandoned upload [" + rec.VideoID + "]")
	}
}
