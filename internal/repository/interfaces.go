package repository

import (
	"context"

	"blog-cms/internal/domain"
	"blog-cms/internal/query"
)

// PostRepository defines methods for post data access.
type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) error
	GetByID(ctx context.Context, id string) (*domain.Post, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Post, error)
	Update(ctx context.Context, post *domain.Post) error
	Delete(ctx context.Context, id string) error
	// Query returns one page of posts matching the params along with the
	// total match count irrespective of pagination. Params must be
	// normalized by the caller.
	Query(ctx context.Context, params query.Params) ([]domain.Post, int, error)
}

// ImageRepository defines methods for image data access.
type ImageRepository interface {
	Create(ctx context.Context, image *domain.Image) error
	ListByPost(ctx context.Context, postID string) ([]domain.Image, error)
	// NextPosition returns the append-at-end position for a post's next image.
	NextPosition(ctx context.Context, postID string) (int, error)
	Delete(ctx context.Context, id string) error
	// DeleteByPost removes all images belonging to a post and returns how
	// many were removed.
	DeleteByPost(ctx context.Context, postID string) (int64, error)
}
