package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"video_share_service/internal/video/domain"
)

const commentCollection = "comments"

// CommentRepository persists comment documents.
type CommentRepository interface {
	Insert(ctx context.Context, c *domain.Comment) error
	FindByID(ctx context.Context, id string) (*domain.Comment, error)
	// FindTopLevel returns a video's top-level comments, newest first.
	FindTopLevel(ctx context.Context, videoID string) ([]domain.Comment, error)
	// FindReplies returns up to limit replies of one comment, oldest first.
	FindReplies(ctx context.Context, parentID string, limit int64) ([]domain.Comment, error)
	CountReplies(ctx context.Context, parentID string) (int64, error)
	CountByVideo(ctx context.Context, videoID string) (int64, error)
	DeleteByVideo(ctx context.Context, videoID string) error
}

type commentRepository struct {
	col *mongo.Collection
}

func NewCommentRepository(db *mongo.Database) CommentRepository {
	return &commentRepository{col: db.Collection(commentCollection)}
}

func (r *commentRepository) Insert(ctx context.Context, c *domain.Comment) error {
	_, err := r.col.InsertOne(ctx, c)
	return err
}

func (r *commentRepository) FindByID(ctx context.Context, id string) (*domain.Comment, error) {
	var c domain.Comment
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *commentRepository) FindTopLevel(ctx context.Context, videoID string) ([]domain.Comment, error) {
	filter := bson.M{"video_id": videoID, "parent_id": bson.M{"$exists": false}}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var comments []domain.Comment
	if err := cur.All(ctx, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *commentRepository) FindReplies(ctx context.Context, parentID string, limit int64) ([]domain.Comment, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}}).
		SetLimit(limit)
	cur, err := r.col.Find(ctx, bson.M{"parent_id": parentID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var replies []domain.Comment
	if err := cur.All(ctx, &replies); err != nil {
		return nil, err
	}
	return replies, nil
}

func (r *commentRepository) CountReplies(ctx context.Context, parentID string) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{"parent_id": parentID})
}

func (r *commentRepository) CountByVideo(ctx context.Context, videoID string) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{"video_id": videoID})
}

func (r *commentRepository) DeleteByVideo(ctx context.Context, videoID string) error {
	_, err := r.col.DeleteMany(ctx, bson.M{"video_id": videoID})
	return err
}
