package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"blog-cms/internal/domain"
	"blog-cms/internal/logger"
	"blog-cms/internal/middleware"
	"blog-cms/internal/service"
)

// ImageHandler handles upload and post-image HTTP requests.
type ImageHandler struct {
	imageService service.ImageServiceInterface
}

// NewImageHandler creates a new ImageHandler.
func NewImageHandler(imageService service.ImageServiceInterface) *ImageHandler {
	return &ImageHandler{imageService: imageService}
}

// ImageResponse represents an image in the API response.
type ImageResponse struct {
	ID        string  `json:"id"`
	PostID    string  `json:"post_id"`
	ImageURL  string  `json:"image_url"`
	AltText   *string `json:"alt_text,omitempty"`
	Caption   *string `json:"caption,omitempty"`
	Position  int     `json:"position"`
	CreatedAt string  `json:"created_at"`
}

// toImageResponse converts a domain.Image to an ImageResponse.
func toImageResponse(img *domain.Image) ImageResponse {
	return ImageResponse{
		ID:        img.ID,
		PostID:    img.PostID,
		ImageURL:  img.ImageURL,
		AltText:   img.AltText,
		Caption:   img.Caption,
		Position:  img.Position,
		CreatedAt: img.CreatedAt.Format(TimeFormat),
	}
}

// Upload handles POST /upload - process a standalone image.
func (h *ImageHandler) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}
	defer file.Close()

	imageURL, err := h.imageService.Process(c.Request.Context(), file, header.Size)
	if err != nil {
		h.respondImageError(c, err, "failed to process upload")
		return
	}

	c.JSON(http.StatusOK, gin.H{"imageUrl": imageURL})
}

// AttachImage handles POST /posts/:id/images - attach an image to a post.
func (h *ImageHandler) AttachImage(c *gin.Context) {
	postID := c.Param("id")
	if _, err := uuid.Parse(postID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be a valid UUID"})
		return
	}

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}
	defer file.Close()

	opts := service.AttachOptions{}
	if altText := c.PostForm("alt_text"); altText != "" {
		opts.AltText = &altText
	}
	if caption := c.PostForm("caption"); caption != "" {
		opts.Caption = &caption
	}
	if raw := c.PostForm("position"); raw != "" {
		position, err := strconv.Atoi(raw)
		if err != nil || position < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "position must be a non-negative integer"})
			return
		}
		opts.Position = &position
	}

	image, err := h.imageService.Attach(c.Request.Context(), postID, file, header.Size, opts)
	if err != nil {
		h.respondImageError(c, err, "failed to attach image")
		return
	}

	c.JSON(http.StatusCreated, toImageResponse(image))
}

// ListImages handles GET /posts/:id/images - list a post's images by position.
func (h *ImageHandler) ListImages(c *gin.Context) {
	postID := c.Param("id")
	if _, err := uuid.Parse(postID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be a valid UUID"})
		return
	}

	images, err := h.imageService.ListByPost(c.Request.Context(), postID)
	if err != nil {
		h.respondImageError(c, err, "failed to list images")
		return
	}

	response := make([]ImageResponse, 0, len(images))
	for i := range images {
		response = append(response, toImageResponse(&images[i]))
	}

	c.JSON(http.StatusOK, response)
}

// DeleteImage handles DELETE /images/:id - remove a single image record.
func (h *ImageHandler) DeleteImage(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be a valid UUID"})
		return
	}

	if err := h.imageService.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "image not found"})
			return
		}
		h.respondImageError(c, err, "failed to delete image")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *ImageHandler) respondImageError(c *gin.Context, err error, internalMsg string) {
	switch {
	case errors.Is(err, domain.ErrPostNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
	case errors.Is(err, service.ErrFileTooLarge):
		c.JSON(http.StatusBadRequest, gin.H{"error": "uploaded file is too large"})
	case errors.Is(err, service.ErrNotAnImage):
		c.JSON(http.StatusBadRequest, gin.H{"error": "uploaded file is not a valid image"})
	default:
		logger.Error(internalMsg,
			slog.String("request_id", middleware.GetRequestID(c)),
			slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": internalMsg})
	}
}
