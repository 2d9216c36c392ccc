package database

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	errprocess "video_share_service/pkg/err"
)

// MinIOClient definition minio client
type MinIOClient struct {
	Client     *minio.Client
	BucketName string

	// publicBaseURL prefixes the durable object URLs handed to clients,
	// e.g. "https://cdn.example.com/videos".
	publicBaseURL string
}

// NewMinIOConnection create a new minio connection have retry
func NewMinIOConnection(d MinIOConnection) (*MinIOClient, error) {
	var mc *MinIOClient
	var err error

	for i := 1; i <= d.RetryCount; i++ {
		mc, err = NewMinioClient(d.Endpoint, d.User, d.Password, d.BucketName, d.UseSSL)
		if err == nil {
			mc.publicBaseURL = strings.TrimRight(d.PublicBaseURL, "/")
			log.Printf("minIO[%s] connected (attempt %d)", d.Endpoint, i)
			return mc, nil
		}

		log.Printf("minIO[%s] connect failed (attempt %d/%d): %v", d.Endpoint, i, d.RetryCount, err)
		time.Sleep(d.RetryInterval * time.Second)
	}

	return nil, errprocess.Set(fmt.Sprintf("minIO[%s] unavailable after %d attempts: %v", d.Endpoint, d.RetryCount, err))
}

// NewMinioClient create a new minio client and ensure the bucket exists
func NewMinioClient(endpoint, accessKey, secretKey, bucketName string, useSSL bool) (*MinIOClient, error) {
	minioClient, err := minio.New(endpoint,
		&minio.Options{
			Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
			Secure: useSSL,
		})
	if err != nil {
		return nil, fmt.Errorf("init MinIO failed: %v", err)
	}

	ctx := context.Background()
	exists, err := minioClient.BucketExists(ctx, bucketName)
	if err != nil {
		return nil, fmt.Errorf("check bucket [%s] failed: %v", bucketName, err)
	}

	if !exists {
		if err = minioClient.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("make bucket [%s] failed: %v", bucketName, err)
		}
		log.Printf("Bucket [%s] created", bucketName)
	}

	return &MinIOClient{
		Client:     minioClient,
		BucketName: bucketName,
	}, nil
}

// UploadFile minio upload file func
func (m *MinIOClient) UploadFile(ctx context.Context, objectName, filePath, contentType string) error {
	file, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("open file failed: %v", err)
	}
	defer file.Close()

	_, err = m.Client.PutObject(ctx, m.BucketName, objectName, file, -1, minio.PutObjectOptions{
		ContentType: contentType,
	})
	return err
}

// UploadStream uploads size bytes from r under objectName.
func (m *MinIOClient) UploadStream(ctx context.Context, objectName string, r io.Reader, size int64, contentType string) error {
	_, err := m.Client.PutObject(ctx, m.BucketName, objectName, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	return err
}

// DownloadFile minio download file func
func (m *MinIOClient) DownloadFile(ctx context.Context, objectName, destPath string) error {
	obj, err := m.Client.GetObject(ctx, m.BucketName, objectName, minio.GetObjectOptions{})
	if err != nil {
		return fmt.Errorf("get object failed: %v", err)
	}
	defer obj.Close()

	destFile, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("create file failed: %v", err)
	}
	defer destFile.Close()

	_, err = io.Copy(destFile, obj)
	return err
}

// PresignPutURL generates a time-limited URL permitting one direct PUT
// of objectName, without routing the bytes through this process.
func (m *MinIOClient) PresignPutURL(ctx context.Context, objectName string, expiry time.Duration) (string, error) {
	presignedURL, err := m.Client.PresignedPutObject(ctx, m.BucketName, objectName, expiry)
	if err != nil {
		return "", fmt.Errorf("presign PUT URL failed: %w", err)
	}
	return presignedURL.String(), nil
}

// PresignGetURL generates a time-limited URL for reading objectName.
func (m *MinIOClient) PresignGetURL(ctx context.Context, objectName string, expiry time.Duration) (string, error) {
	reqParams := make(url.Values)
	presignedURL, err := m.Client.PresignedGetObject(ctx, m.BucketName, objectName, expiry, reqParams)
	if err != nil {
		return "", fmt.Errorf("presign GET URL failed: %w", err)
	}
	return presignedURL.String(), nil
}

// RemoveObject deletes objectName from the bucket.
func (m *MinIOClient) RemoveObject(ctx context.Context, objectName string) error {
	return m.Client.RemoveObject(ctx, m.BucketName, objectName, minio.RemoveObjectOptions{})
}

// PublicURL builds the durable read URL for objectName.
func (m *MinIOClient) PublicURL(objectName string) string {
	if m.publicBaseURL != "" {
		return fmt.Sprintf("%s/%s", m.publicBaseURL, objectName)
	}
	return fmt.Sprintf("%s/%s/%s", m.Client.EndpointURL().String(), m.BucketName, objectName)
}
