package database

import (
	"time"
)

// Connection definition sql setting
type Connection struct {
	ConnectStr string

	RetryCount    int
	RetryInterval time.Duration
}

// MinIOConnection definition minio
type MinIOConnection struct {
	Endpoint      string
	User          string
	Password      string
	BucketName    string
	UseSSL        bool
	PublicBaseURL string

	RetryCount    int
	RetryInterval time.Duration
}

// KafkaConnection definition kafka
type KafkaConnection struct {
	Brokers       []string
	Topic         string
	RetryCount    int
	RetryInterval time.Duration
}
