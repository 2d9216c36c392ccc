package config

import "time"

// VideoService definition video_service YAML structure
type VideoService struct {
	Port string `mapstructure:"port"`
	IP   string `mapstructure:"ip"`

	SessionTTL time.Duration `mapstructure:"session_ttl"`

	PostgreSQL DatabaseConfig `mapstructure:"pg"`
	Mongo      DatabaseConfig `mapstructure:"mongo"`
	Redis      RedisConfig    `mapstructure:"redis"`
	MinIO      MinIOConfig    `mapstructure:"minio"`
	Kafka      KafkaConfig    `mapstructure:"kafka"`
	RabbitMQ   RabbitConfig   `mapstructure:"rabbitmq"`
	Webhook    WebhookConfig  `mapstructure:"webhook"`
}

// ThumbnailWorker definition thumbnail_worker YAML structure
type ThumbnailWorker struct {
	PostgreSQL DatabaseConfig `mapstructure:"pg"`
	MinIO      MinIOConfig    `mapstructure:"minio"`
	RabbitMQ   RabbitConfig   `mapstructure:"rabbitmq"`

	// PendingUploadTTL is how long an upload ledger row may stay
	// pending before the reaper removes it.
	PendingUploadTTL time.Duration `mapstructure:"pending_upload_ttl"`
	ReapInterval     time.Duration `mapstructure:"reap_interval"`
}

// WebhookConfig definition identity webhook verification setting
type WebhookConfig struct {
	// Secret is the shared signing secret from the identity provider,
	// "whsec_" prefixed base64.
	Secret string `mapstructure:"secret"`
	// Tolerance bounds the accepted timestamp skew, in seconds.
	Tolerance int `mapstructure:"tolerance"`
}

// RedisConfig definition redis setting
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	RedisDB  int    `mapstructure:"redis_db"`
}

// MinIOConfig definition minio setting
type MinIOConfig struct {
	Host       string `mapstructure:"host"`
	Port       int    `mapstructure:"port"`
	User       string `mapstructure:"user"`
	Password   string `mapstructure:"password"`
	BucketName string `mapstructure:"bucket_name"`
	UseSSL     bool   `mapstructure:"use_ssl"`
	// PublicBaseURL is the externally reachable URL prefix used to
	// build the durable object URLs returned to clients.
	PublicBaseURL string `mapstructure:"public_base_url"`

	RetryInterval int `mapstructure:"retry_interval"`
	RetryCount    int `mapstructure:"retry_count"`
}

// KafkaConfig definition kafka setting
type KafkaConfig struct {
	Brokers       []string `mapstructure:"brokers"`
	Topic         string   `mapstructure:"topic"`
	RetryInterval int      `mapstructure:"retry_interval"`
	RetryCount    int      `mapstructure:"retry_count"`
}

// RabbitConfig definition rabbitmq setting
type RabbitConfig struct {
	IP            string `mapstructure:"ip"`
	Port          string `mapstructure:"port"`
	User          string `mapstructure:"user"`
	Password      string `mapstructure:"password"`
	RetryInterval int    `mapstructure:"retry_interval"`
	RetryCount    int    `mapstructure:"retry_count"`
}

// DatabaseConfig definition db setting
type DatabaseConfig struct {
	Host          string `mapstructure:"host"`
	Port          int    `mapstructure:"port"`
	User          string `mapstructure:"user"`
	Password      string `mapstructure:"password"`
	Database      string `mapstructure:"database"`
	RetryInterval int    `mapstructure:"retry_interval"`
	RetryCount    int    `mapstructure:"retry_count"`
}
