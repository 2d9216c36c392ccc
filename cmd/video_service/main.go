package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	identityapp "video_share_service/internal/identity/app"
	identityhandlers "video_share_service/internal/identity/api/handlers"
	identityrouter "video_share_service/internal/identity/api/router"
	identityrepo "video_share_service/internal/identity/repository"
	videohandlers "video_share_service/internal/video/api/handlers"
	videorouter "video_share_service/internal/video/api/router"
	videoapp "video_share_service/internal/video/app"
	videorepo "video_share_service/internal/video/repository"
	"video_share_service/pkg/config"
	"video_share_service/pkg/database"
	"video_share_service/pkg/logger"
)

func main() {
	serviceName := config.EnvConfig.VideoService
	logger.Initialize(serviceName, config.EnvConfig.VideoServiceLogPath)
	defer logger.Log.Sync()

	cfg := config.LoadConfig[config.VideoService](serviceName, config.EnvConfig.VideoServiceYAMLPath)

	// PostgreSQL via gorm for the video tables.
	gormDB, err := database.NewPGConnection(database.Connection{
		ConnectStr: fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
			cfg.PostgreSQL.Host, cfg.PostgreSQL.Port, cfg.PostgreSQL.User,
			cfg.PostgreSQL.Password, cfg.PostgreSQL.Database),
		RetryCount:    cfg.PostgreSQL.RetryCount,
		RetryInterval: time.Duration(cfg.PostgreSQL.RetryInterval),
	})
	if err != nil {
		log.Fatalf("connect postgres (gorm) failed: %v", err)
	}

	// Same database through pgxpool for the identity mirror.
	pool, err := database.NewDatabaseConnection(database.Connection{
		ConnectStr: fmt.Sprintf("postgres://%s:%s@%s:%d/%s",
			cfg.PostgreSQL.User, cfg.PostgreSQL.Password, cfg.PostgreSQL.Host,
			cfg.PostgreSQL.Port, cfg.PostgreSQL.Database),
		RetryCount:    cfg.PostgreSQL.RetryCount,
		RetryInterval: time.Duration(cfg.PostgreSQL.RetryInterval),
	})
	if err != nil {
		log.Fatalf("connect postgres (pgx) failed: %v", err)
	}
	defer pool.Close()

	ctx := context.Background()

	mongoDB, err := database.NewMongoDB(ctx, database.Connection{
		ConnectStr: fmt.Sprintf("mongodb://%s:%s@%s:%d",
			cfg.Mongo.User, cfg.Mongo.Password, cfg.Mongo.Host, cfg.Mongo.Port),
		RetryCount:    cfg.Mongo.RetryCount,
		RetryInterval: time.Duration(cfg.Mongo.RetryInterval),
	}, cfg.Mongo.Database)
	if err != nil {
		log.Fatalf("connect mongo failed: %v", err)
	}
	defer mongoDB.Close(ctx)

	redisClient, err := database.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.RedisDB)
	if err != nil {
		log.Fatalf("connect redis failed: %v", err)
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

	kafkaWriter, err := database.NewKafkaWriterWithRetry(database.KafkaConnection{
		Brokers:       cfg.Kafka.Brokers,
		Topic:         cfg.Kafka.Topic,
		RetryCount:    cfg.Kafka.RetryCount,
		RetryInterval: time.Duration(cfg.Kafka.RetryInterval),
	})
	if err != nil {
		log.Fatalf("connect kafka failed: %v", err)
	}
	defer kafkaWriter.Close()

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

	// Repositories.
	videoRepo := videorepo.NewVideoRepository(gormDB)
	if err := videoRepo.AutoMigrate(); err != nil {
		log.Fatalf("migrate video tables failed: %v", err)
	}
	likeRepo := videorepo.NewLikeRepository(gormDB)
	uploadRepo := videorepo.NewUploadRepository(gormDB)
	commentRepo := videorepo.NewCommentRepository(mongoDB.Database)

	userRepo := identityrepo.NewUserRepository(pool)
	if err := userRepo.Migrate(ctx); err != nil {
		log.Fatalf("migrate users table failed: %v", err)
	}
	directory := identityrepo.NewDirectory(userRepo)

	// Usecases.
	events := videoapp.NewKafkaEventPublisher(kafkaWriter)
	jobs, err := videoapp.NewRabbitJobQueue(database.NewRabbitRepository(rabbitCh))
	if err != nil {
		log.Fatalf("declare thumbnail queue failed: %v", err)
	}

	uploadUC := videoapp.NewUploadUseCase(minioClient, uploadRepo)
	videoUC := videoapp.NewVideoUseCase(videoapp.VideoUseCaseDeps{
		Videos:   videoRepo,
		Likes:    likeRepo,
		Comments: commentRepo,
		Uploads:  uploadRepo,
		Users:    directory,
		Store:    minioClient,
		Events:   events,
		Jobs:     jobs,
	})
	likeUC := videoapp.NewLikeUseCase(likeRepo, videoRepo, events)
	commentUC := videoapp.NewCommentUseCase(commentRepo, videoRepo, directory)

	verifier, err := identityapp.NewSignatureVerifier(cfg.Webhook.Secret,
		time.Duration(cfg.Webhook.Tolerance)*time.Second)
	if err != nil {
		log.Fatalf("init webhook verifier failed: %v", err)
	}
	dedupe := database.NewRedisRepositoryWithClient[string](redisClient)
	webhookUC := identityapp.NewWebhookUseCase(userRepo, dedupe)

	// HTTP surface.
	app := fiber.New(fiber.Config{
		AppName:   serviceName,
		BodyLimit: 1 * 1024 * 1024,
	})
	app.Use(recover.New())
	app.Use(fiberlogger.New())

	videorouter.RegisterRoutes(app,
		videohandlers.NewUploadHandler(uploadUC),
		videohandlers.NewVideoHandler(videoUC, likeUC, commentUC),
		videohandlers.NewCommentHandler(commentUC),
	)
	identityrouter.RegisterRoutes(app, identityhandlers.NewWebhookHandler(verifier, webhookUC))

	addr := cfg.IP + ":" + cfg.Port
	logger.Log.Info("video service listening on " + addr)
	if err := app.Listen(addr); err != nil {
		logger.Log.Fatal("server stopped: " + err.Error())
	}
}
