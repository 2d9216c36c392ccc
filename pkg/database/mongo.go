package database

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	errprocess "video_share_service/pkg/err"
)

// MongoDB definition mongo db
type MongoDB struct {
	Client   *mongo.Client
	Database *mongo.Database
}

// NewMongoDB create a new MongoDB connection
func NewMongoDB(ctx context.Context, c Connection, dbName string) (*MongoDB, error) {
	clientOpts := options.Client().ApplyURI(c.ConnectStr)

	var client *mongo.Client
	var err error

	for i := 0; i <= c.RetryCount; i++ {
		client, err = mongo.Connect(ctx, clientOpts)
		if err == nil {
			pingErr := client.Ping(ctx, readpref.Primary())
			if pingErr == nil {
				db := client.Database(dbName)
				return &MongoDB{
					Client:   client,
					Database: db,
				}, nil
			}
			err = pingErr
		}

		if i < c.RetryCount {
			time.Sleep(c.RetryInterval * time.Second)
		}
	}

	return nil, errprocess.Set("failed to connect to MongoDB after retries: " + err.Error())
}

// Close disenable mongoDB connection
func (m *MongoDB) Close(ctx context.Context) error {
	return m.Client.Disconnect(ctx)
}
