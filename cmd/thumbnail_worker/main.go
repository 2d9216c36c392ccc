package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	videoapp "video_share_service/internal/video/app"
	videorepo "video_share_service/internal/video/repository"
	"video_share_service/pkg/config"
	"video_share_service/pkg/database"
	"video_share_service/pkg/logger"
)

func main() {
	serviceName := config.EnvConfig.ThumbnailWorker
	logger.Initialize(serviceName, config.EnvConfig.ThumbnailWorkerLogPath)
	defer logger.Log.Sync()

	cfg := config.LoadConfig[config.ThumbnailWorker](serviceName, config.EnvConfig.ThumbnailWorkerYAMLPath)

	gormDB, err := database.NewPGConnection(database.Connection{
		ConnectStr: fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
			cfg.PostgreSQL.Host, cfg.PostgreSQL.Port, cfg.PostgreSQL.User,
			cfg.PostgreSQL.Password, cfg.PostgreSQL.Database),
		RetryCount:    cfg.PostgreSQL.RetryCount,
		RetryInterval: time.Duration(cfg.PostgreSQL.RetryInterval),
	})
	if err != nil {
		log.Fatalf("connect postgres failed: %v", err)
	}

	minioClient, err := database.NewMinIOConnection(database.MinIOConnection{
		Endpoint:      fmt.Sprintf("%s:%d", cfg.MinIO.Host, cfg.MinIO.Port),
		User:          cfg.MinIO.User,
		Password:      cfg.MinIO.Password,
		BucketName:    cfg.MinIO.BucketName,
		UseSSL:        cfg.MinIO.UseSSL,
		PublicBaseURL: cfg.MinIO.PublicBaseURL,
		RetryCount:    cfg.MinIO.RetryCount,
		RetryInterval: time.Duration(cfg.MinIO.RetryInterval),
	})
	if err != nil {
		log.Fatalf("connect minio failed: %v", err)
	}

	rabbitConn, err := database.ConnectRabbitMQWithRetry(database.Connection{
		ConnectStr: fmt.Sprintf("amqp://%s:%s@%s:%s/",
			cfg.RabbitMQ.User, cfg.RabbitMQ.Password, cfg.RabbitMQ.IP, cfg.RabbitMQ.Port),
		RetryCount:    cfg.RabbitMQ.RetryCount,
		RetryInterval: time.Duration(cfg.RabbitMQ.RetryInterval),
	})
	if err != nil {
		log.Fatalf("connect rabbitmq failed: %v", err)
	}
	defer rabbitConn.Close()

	rabbitCh, err := database.GetRabbitMQChannelWithRetry(rabbitConn, cfg.RabbitMQ.RetryCount,
		time.Duration(cfg.RabbitMQ.RetryInterval))
	if err != nil {
		log.Fatalf("open rabbitmq channel failed: %v", err)
	}

	worker := videoapp.NewThumbnailWorker(
		database.NewRabbitRepository(rabbitCh),
		minioClient,
		videorepo.NewVideoRepository(gormDB),
		videorepo.NewUploadRepository(gormDB),
		cfg.PendingUploadTTL,
		cfg.ReapInterval,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := worker.Run(ctx); err != nil && ctx.Err() == nil {
		logger.Log.Fatal("worker stopped: " + err.Error())
	}
	logger.Log.Info("worker shut down")
}
