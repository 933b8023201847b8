package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"blog-cms/internal/domain"
	"blog-cms/internal/logger"
	"blog-cms/internal/middleware"
	"blog-cms/internal/query"
	"blog-cms/internal/service"
)

// PostHandler handles post-related HTTP requests.
type PostHandler struct {
	postService service.PostServiceInterface
}

// NewPostHandler creates a new PostHandler.
func NewPostHandler(postService service.PostServiceInterface) *PostHandler {
	return &PostHandler{postService: postService}
}

// PostResponse represents a post in the API response.
type PostResponse struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Slug          string   `json:"slug"`
	Content       string   `json:"content"`
	ContentHTML   string   `json:"content_html,omitempty"`
	Excerpt       *string  `json:"excerpt,omitempty"`
	FeaturedImage *string  `json:"featured_image,omitempty"`
	Tags          []string `json:"tags,omitempty"`
	Published     bool     `json:"published"`
	PublishedAt   *string  `json:"published_at,omitempty"`
	CreatedAt     string   `json:"created_at"`
	UpdatedAt     string   `json:"updated_at"`
}

// ListPostsResponse is the paginated envelope for GET /posts.
type ListPostsResponse struct {
	Posts      []PostResponse `json:"posts"`
	Total      int            `json:"total"`
	Page       int            `json:"page"`
	PageSize   int            `json:"pageSize"`
	TotalPages int            `json:"totalPages"`
}

// CreatePostRequest is the payload for POST /posts.
type CreatePostRequest struct {
	Title         string   `json:"title"`
	Content       string   `json:"content"`
	Excerpt       *string  `json:"excerpt"`
	FeaturedImage *string  `json:"featured_image"`
	Tags          []string `json:"tags"`
	Published     bool     `json:"published"`
}

// UpdatePostRequest is the payload for PUT /posts/:id. Absent fields are
// left unchanged.
type UpdatePostRequest struct {
	Title         *string  `json:"title"`
	Content       *string  `json:"content"`
	Excerpt       *string  `json:"excerpt"`
	FeaturedImage *string  `json:"featured_image"`
	Tags          []string `json:"tags"`
	Published     *bool    `json:"published"`
}

// toPostResponse converts a domain.Post to a PostResponse.
func toPostResponse(post *domain.Post, contentHTML string) PostResponse {
	response := PostResponse{
		ID:            post.ID,
		Title:         post.Title,
		Slug:          post.Slug,
		Content:       post.Content,
		ContentHTML:   contentHTML,
		Excerpt:       post.Excerpt,
		FeaturedImage: post.FeaturedImage,
		Tags:          post.Tags,
		Published:     post.Published,
		CreatedAt:     post.CreatedAt.Format(TimeFormat),
		UpdatedAt:     post.UpdatedAt.Format(TimeFormat),
	}
	if post.PublishedAt != nil {
		publishedAt := post.PublishedAt.Format(TimeFormat)
		response.PublishedAt = &publishedAt
	}
	return response
}

// parseListParams reads the query engine params from the request. Bounds
// are normalized downstream; filters default to unconstrained.
func parseListParams(c *gin.Context) query.Params {
	params := query.Params{
		Search: strings.TrimSpace(c.Query("search")),
	}

	if raw := c.Query("tags"); raw != "" {
		for _, tag := range strings.Split(raw, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				params.Tags = append(params.Tags, tag)
			}
		}
	}

	if raw := c.Query("published"); raw != "" {
		if published, err := strconv.ParseBool(raw); err == nil {
			params.Published = &published
		}
	}

	params.Page, _ = strconv.Atoi(c.Query("page"))
	params.PageSize, _ = strconv.Atoi(c.Query("pageSize"))

	return params
}

// ListPosts handles GET /posts
func (h *PostHandler) ListPosts(c *gin.Context) {
	params := parseListParams(c)

	result, err := h.postService.List(c.Request.Context(), params)
	if err != nil {
		logger.Error("failed to list posts",
			slog.String("request_id", middleware.GetRequestID(c)),
			slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve posts"})
		return
	}

	posts := make([]PostResponse, 0, len(result.Items))
	for i := range result.Items {
		// List responses stay raw Markdown; HTML is rendered on single reads.
		posts = append(posts, toPostResponse(&result.Items[i], ""))
	}

	c.JSON(http.StatusOK, ListPostsResponse{
		Posts:      posts,
		Total:      result.Total,
		Page:       result.Page,
		PageSize:   result.PageSize,
		TotalPages: result.TotalPages,
	})
}

// GetPost handles GET /posts/:id
func (h *PostHandler) GetPost(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be a valid UUID"})
		return
	}

	post, err := h.postService.Get(c.Request.Context(), id)
	if err != nil {
		h.respondPostError(c, err, "failed to retrieve post")
		return
	}

	h.respondPost(c, http.StatusOK, post)
}

// GetPostBySlug handles GET /posts/slug/:slug
func (h *PostHandler) GetPostBySlug(c *gin.Context) {
	post, err := h.postService.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.respondPostError(c, err, "failed to retrieve post")
		return
	}

	h.respondPost(c, http.StatusOK, post)
}

// CreatePost handles POST /posts
func (h *PostHandler) CreatePost(c *gin.Context) {
	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	post, err := h.postService.Create(c.Request.Context(), service.CreatePostInput{
		Title:         req.Title,
		Content:       req.Content,
		Excerpt:       req.Excerpt,
		FeaturedImage: req.FeaturedImage,
		Tags:          req.Tags,
		Published:     req.Published,
	})
	if err != nil {
		h.respondPostError(c, err, "failed to create post")
		return
	}

	h.respondPost(c, http.StatusCreated, post)
}

// UpdatePost handles PUT /posts/:id
func (h *PostHandler) UpdatePost(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be a valid UUID"})
		return
	}

	var req UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	post, err := h.postService.Update(c.Request.Context(), id, domain.PostUpdate{
		Title:         req.Title,
		Content:       req.Content,
		Excerpt:       req.Excerpt,
		FeaturedImage: req.FeaturedImage,
		Tags:          req.Tags,
		Published:     req.Published,
	})
	if err != nil {
		h.respondPostError(c, err, "failed to update post")
		return
	}

	h.respondPost(c, http.StatusOK, post)
}

// DeletePost handles DELETE /posts/:id
func (h *PostHandler) DeletePost(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be a valid UUID"})
		return
	}

	if err := h.postService.Delete(c.Request.Context(), id); err != nil {
		h.respondPostError(c, err, "failed to delete post")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *PostHandler) respondPost(c *gin.Context, status int, post *domain.Post) {
	contentHTML, err := h.postService.RenderHTML(post)
	if err != nil {
		logger.Error("failed to render post content",
			slog.String("post_id", post.ID),
			slog.String("error", err.Error()))
		contentHTML = ""
	}
	c.JSON(status, toPostResponse(post, contentHTML))
}

func (h *PostHandler) respondPostError(c *gin.Context, err error, internalMsg string) {
	var validationErr *service.ValidationError

	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
	case errors.Is(err, domain.ErrSlugConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "a post with this slug already exists"})
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
	default:
		logger.Error(internalMsg,
			slog.String("request_id", middleware.GetRequestID(c)),
			slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": internalMsg})
	}
}
