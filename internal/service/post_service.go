package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"blog-cms/internal/domain"
	"blog-cms/internal/logger"
	"blog-cms/internal/metrics"
	"blog-cms/internal/query"
	"blog-cms/internal/render"
	"blog-cms/internal/repository"
	"blog-cms/internal/slug"
	"blog-cms/internal/validator"
)

// ValidationError wraps an input validation failure so handlers can map it
// to a client error instead of an internal one.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string { return e.Err.Error() }

func (e *ValidationError) Unwrap() error { return e.Err }

// CreatePostInput carries the fields accepted when authoring a post.
type CreatePostInput struct {
	Title         string
	Content       string
	Excerpt       *string
	FeaturedImage *string
	Tags          []string
	Published     bool
}

// PostService implements post authoring and querying on top of the post
// store and the query engine.
type PostService struct {
	postRepo  repository.PostRepository
	imageSvc  ImageServiceInterface
	validator *validator.Validator
	renderer  *render.Renderer
}

// NewPostService creates a new PostService.
func NewPostService(
	postRepo repository.PostRepository,
	imageSvc ImageServiceInterface,
	v *validator.Validator,
	renderer *render.Renderer,
) *PostService {
	return &PostService{
		postRepo:  postRepo,
		imageSvc:  imageSvc,
		validator: v,
		renderer:  renderer,
	}
}

// List runs the query engine against the store: normalize bounds, count
// matches, fetch the ordered page, attach pagination metadata.
func (s *PostService) List(ctx context.Context, params query.Params) (*query.Result, error) {
	params = params.Normalize()

	posts, total, err := s.postRepo.Query(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("query posts: %w", err)
	}

	filtered := params.Search != "" || len(params.Tags) > 0 || params.Published != nil
	metrics.ObservePostQuery(filtered)

	return &query.Result{
		Items:      posts,
		Total:      total,
		Page:       params.Page,
		PageSize:   params.PageSize,
		TotalPages: query.Pages(total, params.PageSize),
	}, nil
}

// Get retrieves a post by ID.
func (s *PostService) Get(ctx context.Context, id string) (*domain.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

// GetBySlug retrieves a post by slug.
func (s *PostService) GetBySlug(ctx context.Context, slugText string) (*domain.Post, error) {
	return s.postRepo.GetBySlug(ctx, slugText)
}

// Create validates the input, derives the slug, stamps timestamps, and
// stores the post. A slug collision surfaces as domain.ErrSlugConflict.
func (s *PostService) Create(ctx context.Context, input CreatePostInput) (*domain.Post, error) {
	now := time.Now().UTC()

	post := &domain.Post{
		ID:            uuid.New().String(),
		Title:         input.Title,
		Slug:          slug.Make(input.Title),
		Content:       input.Content,
		Excerpt:       input.Excerpt,
		FeaturedImage: input.FeaturedImage,
		Tags:          input.Tags,
		Published:     input.Published,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if post.Published {
		post.PublishedAt = &now
	}

	if err := s.validator.ValidatePost(post); err != nil {
		return nil, &ValidationError{Err: err}
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	metrics.PostsCreated.Inc()
	if post.Published {
		metrics.PostsPublished.Inc()
	}

	logger.InfoContext(ctx, "post created",
		slog.String("post_id", post.ID),
		slog.String("slug", post.Slug))
	return post, nil
}

// Update applies a partial update: only supplied fields change, the slug is
// re-derived when the title changes, and published_at is stamped on the
// first publish transition. Unpublishing never clears published_at.
func (s *PostService) Update(ctx context.Context, id string, update domain.PostUpdate) (*domain.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	firstPublish := false

	if update.Title != nil && *update.Title != post.Title {
		post.Title = *update.Title
		post.Slug = slug.Make(post.Title)
	}
	if update.Content != nil {
		post.Content = *update.Content
	}
	if update.Excerpt != nil {
		post.Excerpt = update.Excerpt
	}
	if update.FeaturedImage != nil {
		post.FeaturedImage = update.FeaturedImage
	}
	if update.Tags != nil {
		post.Tags = update.Tags
	}
	if update.Published != nil {
		if *update.Published && !post.Published && post.PublishedAt == nil {
			now := time.Now().UTC()
			post.PublishedAt = &now
			firstPublish = true
		}
		post.Published = *update.Published
	}
	post.UpdatedAt = time.Now().UTC()

	if err := s.validator.ValidatePost(post); err != nil {
		return nil, &ValidationError{Err: err}
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}

	if firstPublish {
		metrics.PostsPublished.Inc()
	}

	logger.InfoContext(ctx, "post updated", slog.String("post_id", post.ID))
	return post, nil
}

// Delete removes the post and cascades deletion of its images.
func (s *PostService) Delete(ctx context.Context, id string) error {
	if err := s.postRepo.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.imageSvc.DeleteByPost(ctx, id); err != nil {
		// The post itself is gone; orphaned image records are logged,
		// not surfaced to the caller.
		logger.ErrorContext(ctx, "cascade image deletion failed",
			slog.String("post_id", id),
			slog.String("error", err.Error()))
	}

	metrics.PostsDeleted.Inc()
	logger.InfoContext(ctx, "post deleted", slog.String("post_id", id))
	return nil
}

// RenderHTML converts the post's Markdown content to HTML.
func (s *PostService) RenderHTML(post *domain.Post) (string, error) {
	return s.renderer.HTML(post.Content)
}
