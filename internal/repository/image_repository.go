package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"blog-cms/internal/domain"
	"blog-cms/internal/infrastructure/database"
)

// MongoImageRepository implements ImageRepository using MongoDB.
type MongoImageRepository struct {
	images *mongo.Collection
}

// NewMongoImageRepository creates a new MongoImageRepository.
func NewMongoImageRepository(db *mongo.Database) *MongoImageRepository {
	return &MongoImageRepository{images: db.Collection(database.ImagesCollection)}
}

// Create inserts a new image record.
func (r *MongoImageRepository) Create(ctx context.Context, image *domain.Image) error {
	if _, err := r.images.InsertOne(ctx, image); err != nil {
		return fmt.Errorf("insert image: %w", err)
	}
	return nil
}

// ListByPost returns a post's images ordered by position ascending.
// Positions are not required to be unique; created_at keeps the sort stable.
func (r *MongoImageRepository) ListByPost(ctx context.Context, postID string) ([]domain.Image, error) {
	opts := options.Find().SetSort(bson.D{{Key: "position", Value: 1}, {Key: "created_at", Value: 1}})
	cursor, err := r.images.Find(ctx, bson.M{"post_id": postID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find images: %w", err)
	}
	defer cursor.Close(ctx)

	images := []domain.Image{}
	if err := cursor.All(ctx, &images); err != nil {
		return nil, fmt.Errorf("decode images: %w", err)
	}
	return images, nil
}

// NextPosition returns one past the highest current position for the post,
// or 0 when the post has no images yet.
func (r *MongoImageRepository) NextPosition(ctx context.Context, postID string) (int, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "position", Value: -1}})

	var last domain.Image
	err := r.images.FindOne(ctx, bson.M{"post_id": postID}, opts).Decode(&last)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, nil
		}
		return 0, fmt.Errorf("find last image: %w", err)
	}
	return last.Position + 1, nil
}

// Delete removes an image by id.
func (r *MongoImageRepository) Delete(ctx context.Context, id string) error {
	res, err := r.images.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete image: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteByPost removes every image belonging to the post.
func (r *MongoImageRepository) DeleteByPost(ctx context.Context, postID string) (int64, error) {
	res, err := r.images.DeleteMany(ctx, bson.M{"post_id": postID})
	if err != nil {
		return 0, fmt.Errorf("delete images for post: %w", err)
	}
	return res.DeletedCount, nil
}
