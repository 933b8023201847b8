package handler

import (
	"context"
	"errors"
	"io"

	"blog-cms/internal/domain"
	"blog-cms/internal/query"
	"blog-cms/internal/render"
	"blog-cms/internal/service"
)

var errStubNotConfigured = errors.New("stub not configured")

// stubPostService implements service.PostServiceInterface with overridable
// function fields.
type stubPostService struct {
	listFn      func(ctx context.Context, params query.Params) (*query.Result, error)
	getFn       func(ctx context.Context, id string) (*domain.Post, error)
	getBySlugFn func(ctx context.Context, slug string) (*domain.Post, error)
	createFn    func(ctx context.Context, input service.CreatePostInput) (*domain.Post, error)
	updateFn    func(ctx context.Context, id string, update domain.PostUpdate) (*domain.Post, error)
	deleteFn    func(ctx context.Context, id string) error
}

func (s *stubPostService) List(ctx context.Context, params query.Params) (*query.Result, error) {
	if s.listFn == nil {
		return nil, errStubNotConfigured
	}
	return s.listFn(ctx, params)
}

func (s *stubPostService) Get(ctx context.Context, id string) (*domain.Post, error) {
	if s.getFn == nil {
		return nil, errStubNotConfigured
	}
	return s.getFn(ctx, id)
}

func (s *stubPostService) GetBySlug(ctx context.Context, slug string) (*domain.Post, error) {
	if s.getBySlugFn == nil {
		return nil, errStubNotConfigured
	}
	return s.getBySlugFn(ctx, slug)
}

func (s *stubPostService) Create(ctx context.Context, input service.CreatePostInput) (*domain.Post, error) {
	if s.createFn == nil {
		return nil, errStubNotConfigured
	}
	return s.createFn(ctx, input)
}

func (s *stubPostService) Update(ctx context.Context, id string, update domain.PostUpdate) (*domain.Post, error) {
	if s.updateFn == nil {
		return nil, errStubNotConfigured
	}
	return s.updateFn(ctx, id, update)
}

func (s *stubPostService) Delete(ctx context.Context, id string) error {
	if s.deleteFn == nil {
		return errStubNotConfigured
	}
	return s.deleteFn(ctx, id)
}

func (s *stubPostService) RenderHTML(post *domain.Post) (string, error) {
	return render.NewRenderer().HTML(post.Content)
}

// stubImageService implements service.ImageServiceInterface.
type stubImageService struct {
	processFn    func(ctx context.Context, reader io.Reader, size int64) (string, error)
	attachFn     func(ctx context.Context, postID string, reader io.Reader, size int64, opts service.AttachOptions) (*domain.Image, error)
	listByPostFn func(ctx context.Context, postID string) ([]domain.Image, error)
	deleteFn     func(ctx context.Context, id string) error
}

func (s *stubImageService) Process(ctx context.Context, reader io.Reader, size int64) (string, error) {
	if s.processFn == nil {
		return "", errStubNotConfigured
	}
	return s.processFn(ctx, reader, size)
}

func (s *stubImageService) Attach(ctx context.Context, postID string, reader io.Reader, size int64, opts service.AttachOptions) (*domain.Image, error) {
	if s.attachFn == nil {
		return nil, errStubNotConfigured
	}
	return s.attachFn(ctx, postID, reader, size, opts)
}

func (s *stubImageService) ListByPost(ctx context.Context, postID string) ([]domain.Image, error) {
	if s.listByPostFn == nil {
		return nil, errStubNotConfigured
	}
	return s.listByPostFn(ctx, postID)
}

func (s *stubImageService) Delete(ctx context.Context, id string) error {
	if s.deleteFn == nil {
		return errStubNotConfigured
	}
	return s.deleteFn(ctx, id)
}

func (s *stubImageService) DeleteByPost(context.Context, string) error {
	return nil
}
