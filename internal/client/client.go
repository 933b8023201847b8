// Package client is a Go client for the blog API, mirroring the HTTP
// facade. Read operations can optionally fall back to a local fixture
// dataset when the backend is unreachable; the fallback is opt-in so that
// failures stay visible by default.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"blog-cms/internal/domain"
	"blog-cms/internal/query"
)

// APIError is a non-2xx response from the backend.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: status %d: %s", e.StatusCode, e.Message)
}

// Client is a blog API client.
type Client struct {
	baseURL    string
	httpClient *http.Client
	fixtures   []domain.Post
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithFixtureFallback enables degraded mode: read operations serve results
// from the given fixture set when the backend is unreachable or fails with
// a server error. The fixtures are filtered and paginated with the same
// query engine the backend uses.
func WithFixtureFallback(posts []domain.Post) Option {
	return func(c *Client) {
		c.fixtures = posts
	}
}

// New creates a new blog API client.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListResponse is the paginated post listing.
type ListResponse struct {
	Posts      []domain.Post `json:"posts"`
	Total      int           `json:"total"`
	Page       int           `json:"page"`
	PageSize   int           `json:"pageSize"`
	TotalPages int           `json:"totalPages"`
}

// ListPosts runs a content query against the backend.
func (c *Client) ListPosts(ctx context.Context, params query.Params) (*ListResponse, error) {
	q := url.Values{}
	if params.Search != "" {
		q.Set("search", params.Search)
	}
	if len(params.Tags) > 0 {
		q.Set("tags", strings.Join(params.Tags, ","))
	}
	if params.Published != nil {
		q.Set("published", strconv.FormatBool(*params.Published))
	}
	if params.Page > 0 {
		q.Set("page", strconv.Itoa(params.Page))
	}
	if params.PageSize > 0 {
		q.Set("pageSize", strconv.Itoa(params.PageSize))
	}

	path := "/posts"
	if encoded := q.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var result ListResponse
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &result); err != nil {
		if c.canFallBack(err) {
			return c.listFromFixtures(params), nil
		}
		return nil, err
	}
	return &result, nil
}

// GetPost fetches a post by id.
func (c *Client) GetPost(ctx context.Context, id string) (*domain.Post, error) {
	var post domain.Post
	if err := c.doJSON(ctx, http.MethodGet, "/posts/"+url.PathEscape(id), nil, &post); err != nil {
		if c.canFallBack(err) {
			return c.fixtureByID(id)
		}
		return nil, mapNotFound(err)
	}
	return &post, nil
}

// GetPostBySlug fetches a post by slug.
func (c *Client) GetPostBySlug(ctx context.Context, slug string) (*domain.Post, error) {
	var post domain.Post
	if err := c.doJSON(ctx, http.MethodGet, "/posts/slug/"+url.PathEscape(slug), nil, &post); err != nil {
		if c.canFallBack(err) {
			return c.fixtureBySlug(slug)
		}
		return nil, mapNotFound(err)
	}
	return &post, nil
}

// CreatePostRequest carries the fields for CreatePost.
type CreatePostRequest struct {
	Title         string   `json:"title"`
	Content       string   `json:"content"`
	Excerpt       *string  `json:"excerpt,omitempty"`
	FeaturedImage *string  `json:"featured_image,omitempty"`
	Tags          []string `json:"tags,omitempty"`
	Published     bool     `json:"published"`
}

// CreatePost creates a new post. Writes never fall back to fixtures.
func (c *Client) CreatePost(ctx context.Context, req CreatePostRequest) (*domain.Post, error) {
	var post domain.Post
	if err := c.doJSON(ctx, http.MethodPost, "/posts", req, &post); err != nil {
		return nil, mapConflict(err)
	}
	return &post, nil
}

// UpdatePostRequest carries the fields for UpdatePost; nil fields are left
// unchanged by the backend.
type UpdatePostRequest struct {
	Title         *string  `json:"title,omitempty"`
	Content       *string  `json:"content,omitempty"`
	Excerpt       *string  `json:"excerpt,omitempty"`
	FeaturedImage *string  `json:"featured_image,omitempty"`
	Tags          []string `json:"tags,omitempty"`
	Published     *bool    `json:"published,omitempty"`
}

// UpdatePost applies a partial update.
func (c *Client) UpdatePost(ctx context.Context, id string, req UpdatePostRequest) (*domain.Post, error) {
	var post domain.Post
	if err := c.doJSON(ctx, http.MethodPut, "/posts/"+url.PathEscape(id), req, &post); err != nil {
		return nil, mapConflict(mapNotFound(err))
	}
	return &post, nil
}

// DeletePost removes a post and its images.
func (c *Client) DeletePost(ctx context.Context, id string) error {
	if err := c.doJSON(ctx, http.MethodDelete, "/posts/"+url.PathEscape(id), nil, nil); err != nil {
		return mapNotFound(err)
	}
	return nil
}

// ListImages returns a post's images ordered by position.
func (c *Client) ListImages(ctx context.Context, postID string) ([]domain.Image, error) {
	var images []domain.Image
	if err := c.doJSON(ctx, http.MethodGet, "/posts/"+url.PathEscape(postID)+"/images", nil, &images); err != nil {
		return nil, err
	}
	return images, nil
}

// Health reports whether the backend is up.
func (c *Client) Health(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodGet, "/health", nil, nil)
}

// doJSON performs a request with an optional JSON body, decoding a JSON
// response into result when result is non-nil.
func (c *Client) doJSON(ctx context.Context, method, path string, body, result interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		return &APIError{StatusCode: resp.StatusCode, Message: apiErr.Error}
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// canFallBack reports whether degraded mode applies: fixtures are enabled
// and the failure is a transport error or a server-side one. Client errors
// (4xx) always surface.
func (c *Client) canFallBack(err error) bool {
	if c.fixtures == nil {
		return false
	}
	if apiErr, ok := err.(*APIError); ok {
		return apiErr.StatusCode >= 500
	}
	return true
}

func (c *Client) listFromFixtures(params query.Params) *ListResponse {
	res := query.Run(c.fixtures, params)
	return &ListResponse{
		Posts:      res.Items,
		Total:      res.Total,
		Page:       res.Page,
		PageSize:   res.PageSize,
		TotalPages: res.TotalPages,
	}
}

func (c *Client) fixtureByID(id string) (*domain.Post, error) {
	for i := range c.fixtures {
		if c.fixtures[i].ID == id {
			post := c.fixtures[i]
			return &post, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (c *Client) fixtureBySlug(slug string) (*domain.Post, error) {
	for i := range c.fixtures {
		if c.fixtures[i].Slug == slug {
			post := c.fixtures[i]
			return &post, nil
		}
	}
	return nil, domain.ErrNotFound
}

func mapNotFound(err error) error {
	if apiErr, ok := err.(*APIError); ok && apiErr.StatusCode == http.StatusNotFound {
		return domain.ErrNotFound
	}
	return err
}

func mapConflict(err error) error {
	if apiErr, ok := err.(*APIError); ok && apiErr.StatusCode == http.StatusConflict {
		return domain.ErrSlugConflict
	}
	return err
}
