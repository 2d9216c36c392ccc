package client

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"video_share_service/internal/video/domain"
	"video_share_service/pkg/schema"
)

// Upload progress stages, reported in order.
const (
	StageValidating = "validating"
	StageUploading  = "uploading"
	StageThumbnail  = "thumbnail"
	StagePublishing = "publishing"
	StageDone       = "done"
)

// UploadInput describes one video to publish. Thumbnail is optional;
// without it the service generates one in the background.
type UploadInput struct {
	FilePath    string
	FileType    string
	Title       string
	Description string
	Thumbnail   *ThumbnailOption
}

// Uploader runs the full publish flow: request a slot, PUT the video,
// optionally PUT the chosen thumbnail, then persist the metadata. The
// steps are strictly sequential; a failure at any stage aborts the
// rest and no metadata is written.
type Uploader struct {
	API *Client
	// Progress, when set, is called as each stage begins.
	Progress func(stage string)
}

func NewUploader(api *Client) *Uploader {
	return &Uploader{API: api}
}

func (u *Uploader) report(stage string) {
	if u.Progress != nil {
		u.Progress(stage)
	}
}

// Upload publishes one video and returns the created record.
func (u *Uploader) Upload(ctx context.Context, in UploadInput) (*domain.Video, error) {
	u.report(StageValidating)

	info, err := os.Stat(in.FilePath)
	if err != nil {
		return nil, fmt.Errorf("stat video file failed: %v", err)
	}
	videoReq := schema.VideoFile{
		FileName: filepath.Base(in.FilePath),
		FileType: in.FileType,
		FileSize: info.Size(),
	}
	// Reject locally before any network round-trip.
	if err := videoReq.Validate(); err != nil {
		return nil, err
	}
	meta := schema.CreateVideo{Title: in.Title, Description: in.Description}

	u.report(StageUploading)
	slot, err := u.API.RequestVideoUploadURL(ctx, videoReq)
	if err != nil {
		return nil, err
	}
	if err := u.putFile(ctx, slot.UploadURL, in.FilePath, in.FileType, info.Size()); err != nil {
		return nil, fmt.Errorf("upload video failed: %v", err)
	}
	meta.VideoID = slot.VideoID
	meta.VideoURL = slot.VideoURL

	if in.Thumbnail != nil {
		u.report(StageThumbnail)
		url, err := u.uploadThumbnail(ctx, slot.VideoID, in.Thumbnail)
		if err != nil {
			return nil, err
		}
		meta.ThumbnailURL = url
	}

	u.report(StagePublishing)
	video, err := u.API.PublishVideo(ctx, meta)
	if err != nil {
		return nil, err
	}

	u.report(StageDone)
	return video, nil
}

func (u *Uploader) uploadThumbnail(ctx context.Context, videoID string, t *ThumbnailOption) (string, error) {
	info, err := os.Stat(t.FilePath)
	if err != nil {
		return "", fmt.Errorf("stat thumbnail failed: %v", err)
	}
	req := schema.ThumbnailFile{
		VideoID:  videoID,
		FileName: filepath.Base(t.FilePath),
		FileType: t.FileType,
		FileSize: info.Size(),
	}
	if err := req.Validate(); err != nil {
		return "", err
	}

	slot, err := u.API.RequestThumbnailUploadURL(ctx, req)
	if err != nil {
		return "", err
	}
	if err := u.putFile(ctx, slot.UploadURL, t.FilePath, t.FileType, info.Size()); err != nil {
		return "", fmt.Errorf("upload thumbnail failed: %v", err)
	}
	return slot.ThumbnailURL, nil
}

func (u *Uploader) putFile(ctx context.Context, uploadURL, path, contentType string, size int64) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return u.API.PutFile(ctx, uploadURL, io.Reader(f), size, contentType)
}
