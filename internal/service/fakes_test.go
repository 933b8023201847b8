package service

import (
	"context"
	"io"
	"sync"

	"blog-cms/internal/domain"
	"blog-cms/internal/query"
)

// fakePostRepo is an in-memory PostRepository backed by the pure query
// engine, enforcing the same slug uniqueness the Mongo index does.
type fakePostRepo struct {
	mu    sync.Mutex
	posts map[string]domain.Post
	err   error
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{posts: make(map[string]domain.Post)}
}

func (r *fakePostRepo) Create(_ context.Context, post *domain.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	for _, existing := range r.posts {
		if existing.Slug == post.Slug {
			return domain.ErrSlugConflict
		}
	}
	r.posts[post.ID] = *post
	return nil
}

func (r *fakePostRepo) GetByID(_ context.Context, id string) (*domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	post, ok := r.posts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &post, nil
}

func (r *fakePostRepo) GetBySlug(_ context.Context, slug string) (*domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	for _, post := range r.posts {
		if post.Slug == slug {
			p := post
			return &p, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakePostRepo) Update(_ context.Context, post *domain.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	if _, ok := r.posts[post.ID]; !ok {
		return domain.ErrNotFound
	}
	for id, existing := range r.posts {
		if id != post.ID && existing.Slug == post.Slug {
			return domain.ErrSlugConflict
		}
	}
	r.posts[post.ID] = *post
	return nil
}

func (r *fakePostRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	if _, ok := r.posts[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.posts, id)
	return nil
}

func (r *fakePostRepo) Query(_ context.Context, params query.Params) ([]domain.Post, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, 0, r.err
	}
	all := make([]domain.Post, 0, len(r.posts))
	for _, post := range r.posts {
		all = append(all, post)
	}
	res := query.Run(all, params)
	return res.Items, res.Total, nil
}

// fakeImageRepo is an in-memory ImageRepository.
type fakeImageRepo struct {
	mu     sync.Mutex
	images []domain.Image
	err    error
}

func (r *fakeImageRepo) Create(_ context.Context, image *domain.Image) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.images = append(r.images, *image)
	return nil
}

func (r *fakeImageRepo) ListByPost(_ context.Context, postID string) ([]domain.Image, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	images := []domain.Image{}
	for _, img := range r.images {
		if img.PostID == postID {
			images = append(images, img)
		}
	}
	for i := 1; i < len(images); i++ {
		for j := i; j > 0 && images[j].Position < images[j-1].Position; j-- {
			images[j], images[j-1] = images[j-1], images[j]
		}
	}
	return images, nil
}

func (r *fakeImageRepo) NextPosition(_ context.Context, postID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return 0, r.err
	}
	next := 0
	for _, img := range r.images {
		if img.PostID == postID && img.Position >= next {
			next = img.Position + 1
		}
	}
	return next, nil
}

func (r *fakeImageRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	for i, img := range r.images {
		if img.ID == id {
			r.images = append(r.images[:i], r.images[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *fakeImageRepo) DeleteByPost(_ context.Context, postID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return 0, r.err
	}
	kept := r.images[:0]
	var removed int64
	for _, img := range r.images {
		if img.PostID == postID {
			removed++
			continue
		}
		kept = append(kept, img)
	}
	r.images = kept
	return removed, nil
}

// fakeImageService records cascade calls for PostService tests.
type fakeImageService struct {
	deletedPosts []string
	err          error
}

func (s *fakeImageService) Process(context.Context, io.Reader, int64) (string, error) {
	return "/uploads/fake.jpg", s.err
}

func (s *fakeImageService) Attach(context.Context, string, io.Reader, int64, AttachOptions) (*domain.Image, error) {
	return nil, s.err
}

func (s *fakeImageService) ListByPost(context.Context, string) ([]domain.Image, error) {
	return nil, s.err
}

func (s *fakeImageService) Delete(context.Context, string) error {
	return s.err
}

func (s *fakeImageService) DeleteByPost(_ context.Context, postID string) error {
	s.deletedPosts = append(s.deletedPosts, postID)
	return s.err
}
