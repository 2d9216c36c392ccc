package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"video_share_service/internal/video/domain"
	errprocess "video_share_service/pkg/err"
	"video_share_service/pkg/schema"
)

func writeTempFile(t *testing.T, name string, size int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, make([]byte, size), 0o644))
	return path
}

// uploadServer fakes the API and the object store in one listener and
// records the order of calls.
func uploadServer(t *testing.T, calls *[]string) *httptest.Server {
	t.Helper()
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*calls = append(*calls, r.Method+" "+r.URL.Path)
		switch r.URL.Path {
		case "/api/upload/presigned-url":
			var req schema.VideoFile
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			json.NewEncoder(w).Encode(domain.PresignVideoRes{
				UploadURL: srv.URL + "/storage/video",
				VideoURL:  "http://cdn/videos/raw/vid_1.mp4",
				VideoID:   "vid_1",
				ObjectKey: "videos/raw/vid_1.mp4",
				ExpiresIn: schema.PresignExpirySeconds,
			})
		case "/api/upload/thumbnail":
			json.NewEncoder(w).Encode(domain.PresignThumbnailRes{
				UploadURL:    srv.URL + "/storage/thumb",
				ThumbnailURL: "http://cdn/videos/thumbnails/vid_1.png",
				ObjectKey:    "videos/thumbnails/vid_1.png",
				ExpiresIn:    schema.PresignExpirySeconds,
			})
		case "/storage/video", "/storage/thumb":
			require.Equal(t, http.MethodPut, r.Method)
			body, err := io.ReadAll(r.Body)
			require.NoError(t, err)
			require.NotEmpty(t, body)
			w.WriteHeader(http.StatusOK)
		case "/api/videos":
			var req schema.CreateVideo
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			require.Equal(t, "vid_1", req.VideoID)
			require.Equal(t, "http://cdn/videos/raw/vid_1.mp4", req.VideoURL)
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(domain.Video{ID: req.VideoID, Title: req.Title})
		default:
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
	}))
	return srv
}

func TestUploadFlowSequence(t *testing.T) {
	var calls []string
	srv := uploadServer(t, &calls)
	defer srv.Close()

	var stages []string
	up := NewUploader(New(srv.URL, "token"))
	up.Progress = func(stage string) { stages = append(stages, stage) }

	video, err := up.Upload(context.Background(), UploadInput{
		FilePath: writeTempFile(t, "clip.mp4", 2048),
		FileType: "video/mp4",
		Title:    "My clip",
		Thumbnail: &ThumbnailOption{
			FilePath: writeTempFile(t, "cover.png", 512),
			FileType: "image/png",
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "vid_1", video.ID)

	assert.Equal(t, []string{
		"POST /api/upload/presigned-url",
		"PUT /storage/video",
		"POST /api/upload/thumbnail",
		"PUT /storage/thumb",
		"POST /api/videos",
	}, calls)
	assert.Equal(t, []string{
		StageValidating, StageUploading, StageThumbnail, StagePublishing, StageDone,
	}, stages)
}

func TestUploadWithoutThumbnailSkipsThumbnailStage(t *testing.T) {
	var calls []string
	srv := uploadServer(t, &calls)
	defer srv.Close()

	up := NewUploader(New(srv.URL, "token"))
	_, err := up.Upload(context.Background(), UploadInput{
		FilePath: writeTempFile(t, "clip.mp4", 2048),
		FileType: "video/mp4",
		Title:    "My clip",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"POST /api/upload/presigned-url",
		"PUT /storage/video",
		"POST /api/videos",
	}, calls)
}

func TestUploadRejectsLocallyBeforeAnyRequest(t *testing.T) {
	var calls []string
	srv := uploadServer(t, &calls)
	defer srv.Close()

	up := NewUploader(New(srv.URL, "token"))
	_, err := up.Upload(context.Background(), UploadInput{
		FilePath: writeTempFile(t, "page.pdf", 1024),
		FileType: "application/pdf",
		Title:    "Not a video",
	})
	assert.Equal(t, errprocess.KindValidation, errprocess.KindOf(err))
	assert.Empty(t, calls)
}

func TestUploadAbortsOnStorageFailure(t *testing.T) {
	var srv *httptest.Server
	published := false
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/upload/presigned-url":
			json.NewEncoder(w).Encode(domain.PresignVideoRes{
				UploadURL: srv.URL + "/storage/video",
				VideoID:   "vid_1",
			})
		case "/storage/video":
			w.WriteHeader(http.StatusServiceUnavailable)
		case "/api/videos":
			published = true
		}
	}))
	defer srv.Close()

	up := NewUploader(New(srv.URL, "token"))
	_, err := up.Upload(context.Background(), UploadInput{
		FilePath: writeTempFile(t, "clip.mp4", 2048),
		FileType: "video/mp4",
		Title:    "My clip",
	})
	assert.Error(t, err)
	assert.False(t, published, "metadata must not be written after a failed upload")
}
