// Package client is a Go consumer of the video service API: it drives
// the presign-upload-publish flow, thumbnail selection and the watch
// page interactions the way a frontend would.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"video_share_service/internal/video/domain"
	"video_share_service/pkg/schema"
)

// Client calls the video service.
type Client struct {
	BaseURL string
	Token   string
	HTTP    *http.Client
}

func New(baseURL, token string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Token:   token,
		HTTP:    &http.Client{Timeout: 30 * time.Second},
	}
}

// APIError is a non-2xx response from the service.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	res, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode >= 300 {
		var errBody struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(res.Body).Decode(&errBody)
		return &APIError{Status: res.StatusCode, Message: errBody.Error}
	}
	if out != nil {
		return json.NewDecoder(res.Body).Decode(out)
	}
	return nil
}

// RequestVideoUploadURL asks for a presigned video upload slot.
func (c *Client) RequestVideoUploadURL(ctx context.Context, req schema.VideoFile) (*domain.PresignVideoRes, error) {
	var res domain.PresignVideoRes
	if err := c.do(ctx, http.MethodPost, "/api/upload/presigned-url", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// RequestThumbnailUploadURL asks for a presigned thumbnail upload slot.
func (c *Client) RequestThumbnailUploadURL(ctx context.Context, req schema.ThumbnailFile) (*domain.PresignThumbnailRes, error) {
	var res domain.PresignThumbnailRes
	if err := c.do(ctx, http.MethodPost, "/api/upload/thumbnail", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// PutFile streams size bytes straight to storage via the presigned URL.
func (c *Client) PutFile(ctx context.Context, uploadURL string, r io.Reader, size int64, contentType string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, uploadURL, r)
	if err != nil {
		return err
	}
	req.ContentLength = size
	req.Header.Set("Content-Type", contentType)

	res, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode >= 300 {
		return &APIError{Status: res.StatusCode, Message: "storage upload failed"}
	}
	return nil
}

// PublishVideo persists the metadata once the uploads are done.
func (c *Client) PublishVideo(ctx context.Context, req schema.CreateVideo) (*domain.Video, error) {
	var res domain.Video
	if err := c.do(ctx, http.MethodPost, "/api/videos", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// ToggleLike applies one like/dislike toggle step.
func (c *Client) ToggleLike(ctx context.Context, videoID, likeType string) (*domain.LikeToggleRes, error) {
	var res domain.LikeToggleRes
	err := c.do(ctx, http.MethodPost, "/api/videos/"+videoID+"/like",
		schema.LikeRequest{Type: likeType}, &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// PostComment posts a comment or a reply.
func (c *Client) PostComment(ctx context.Context, videoID string, req schema.CommentCreate) (*domain.CommentView, error) {
	var res domain.CommentView
	if err := c.do(ctx, http.MethodPost, "/api/videos/"+videoID+"/comments", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}
