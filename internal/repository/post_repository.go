package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"blog-cms/internal/domain"
	"blog-cms/internal/infrastructure/database"
	"blog-cms/internal/query"
)

// MongoPostRepository implements PostRepository using MongoDB.
type MongoPostRepository struct {
	posts *mongo.Collection
}

// NewMongoPostRepository creates a new MongoPostRepository.
func NewMongoPostRepository(db *mongo.Database) *MongoPostRepository {
	return &MongoPostRepository{posts: db.Collection(database.PostsCollection)}
}

// Create inserts a new post. A slug collision surfaces as
// domain.ErrSlugConflict; the unique index is the arbiter, so two
// concurrent creates with the same slug cannot both succeed.
func (r *MongoPostRepository) Create(ctx context.Context, post *domain.Post) error {
	_, err := r.posts.InsertOne(ctx, post)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrSlugConflict
		}
		return fmt.Errorf("insert post: %w", err)
	}
	return nil
}

// GetByID fetches a post by its id.
func (r *MongoPostRepository) GetByID(ctx context.Context, id string) (*domain.Post, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

// GetBySlug fetches a post by its slug.
func (r *MongoPostRepository) GetBySlug(ctx context.Context, slug string) (*domain.Post, error) {
	return r.findOne(ctx, bson.M{"slug": slug})
}

func (r *MongoPostRepository) findOne(ctx context.Context, filter bson.M) (*domain.Post, error) {
	var post domain.Post
	err := r.posts.FindOne(ctx, filter).Decode(&post)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find post: %w", err)
	}
	return &post, nil
}

// Update replaces the stored post document. Slug collisions with another
// post surface as domain.ErrSlugConflict.
func (r *MongoPostRepository) Update(ctx context.Context, post *domain.Post) error {
	res, err := r.posts.ReplaceOne(ctx, bson.M{"_id": post.ID}, post)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrSlugConflict
		}
		return fmt.Errorf("update post: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes a post by id.
func (r *MongoPostRepository) Delete(ctx context.Context, id string) error {
	res, err := r.posts.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Query counts all posts matching the params and returns the requested
// page, ordered by published_at descending (unset last) with created_at
// descending as tie-break.
func (r *MongoPostRepository) Query(ctx context.Context, params query.Params) ([]domain.Post, int, error) {
	filter := params.Filter()

	total, err := r.posts.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count posts: %w", err)
	}

	cursor, err := r.posts.Find(ctx, filter, params.FindOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("find posts: %w", err)
	}
	defer cursor.Close(ctx)

	posts := []domain.Post{}
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, 0, fmt.Errorf("decode posts: %w", err)
	}

	return posts, int(total), nil
}
