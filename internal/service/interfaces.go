package service

import (
	"context"
	"io"

	"blog-cms/internal/domain"
	"blog-cms/internal/query"
)

// PostServiceInterface defines the interface for post operations.
// Used for dependency injection and handler tests.
type PostServiceInterface interface {
	// List runs the content query engine and returns one page of posts.
	List(ctx context.Context, params query.Params) (*query.Result, error)
	// Get retrieves a post by ID.
	Get(ctx context.Context, id string) (*domain.Post, error)
	// GetBySlug retrieves a post by slug.
	GetBySlug(ctx context.Context, slug string) (*domain.Post, error)
	// Create validates and stores a new post, deriving its slug.
	Create(ctx context.Context, input CreatePostInput) (*domain.Post, error)
	// Update applies a partial update to a post.
	Update(ctx context.Context, id string, update domain.PostUpdate) (*domain.Post, error)
	// Delete removes a post and cascades deletion of its images.
	Delete(ctx context.Context, id string) error
	// RenderHTML converts a post's Markdown content to HTML.
	RenderHTML(post *domain.Post) (string, error)
}

// ImageServiceInterface defines the interface for image operations.
type ImageServiceInterface interface {
	// Process validates, resizes, re-encodes, and persists an uploaded
	// image, returning its relative URL.
	Process(ctx context.Context, reader io.Reader, size int64) (string, error)
	// Attach processes an upload and records it against an existing post.
	Attach(ctx context.Context, postID string, reader io.Reader, size int64, opts AttachOptions) (*domain.Image, error)
	// ListByPost returns a post's images ordered by position.
	ListByPost(ctx context.Context, postID string) ([]domain.Image, error)
	// Delete removes a single image record.
	Delete(ctx context.Context, id string) error
	// DeleteByPost removes all image records and files for a post.
	DeleteByPost(ctx context.Context, postID string) error
}
