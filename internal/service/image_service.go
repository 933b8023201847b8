package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"blog-cms/internal/domain"
	"blog-cms/internal/logger"
	"blog-cms/internal/metrics"
	"blog-cms/internal/repository"
	"blog-cms/internal/validator"
)

const (
	// MaxImageWidth and MaxImageHeight bound processed images; uploads are
	// shrunk to fit, never enlarged.
	MaxImageWidth  = 1200
	MaxImageHeight = 800

	// JPEGQuality is the re-encode quality for processed images.
	JPEGQuality = 85
)

// Upload pipeline errors, mapped to client errors at the handler boundary.
var (
	ErrFileTooLarge = errors.New("uploaded file exceeds the size limit")
	ErrNotAnImage   = errors.New("uploaded file is not a decodable image")
)

// AttachOptions carries the optional metadata for an attached image.
type AttachOptions struct {
	AltText  *string
	Caption  *string
	Position *int
}

// ImageService processes uploads and manages per-post image records.
type ImageService struct {
	imageRepo repository.ImageRepository
	postRepo  repository.PostRepository
	validator *validator.Validator
	uploadDir string
	maxBytes  int64
}

// NewImageService creates an ImageService and ensures the upload directory
// exists.
func NewImageService(
	imageRepo repository.ImageRepository,
	postRepo repository.PostRepository,
	v *validator.Validator,
	uploadDir string,
	maxBytes int64,
) (*ImageService, error) {
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload directory: %w", err)
	}
	return &ImageService{
		imageRepo: imageRepo,
		postRepo:  postRepo,
		validator: v,
		uploadDir: uploadDir,
		maxBytes:  maxBytes,
	}, nil
}

// Process validates, decodes, resizes, and re-encodes an upload, persisting
// the result under a generated filename. Oversized and non-image payloads
// are rejected before any transform runs. Returns the relative URL of the
// stored file.
func (s *ImageService) Process(ctx context.Context, reader io.Reader, size int64) (string, error) {
	start := time.Now()

	if size > s.maxBytes {
		metrics.ObserveImageProcessed("rejected", 0)
		return "", ErrFileTooLarge
	}

	// The declared size is client-supplied; cap the actual read too.
	img, err := imaging.Decode(io.LimitReader(reader, s.maxBytes+1), imaging.AutoOrientation(true))
	if err != nil {
		metrics.ObserveImageProcessed("rejected", 0)
		return "", ErrNotAnImage
	}

	// Fit shrinks to the bounding box preserving aspect ratio and leaves
	// smaller images untouched.
	img = imaging.Fit(img, MaxImageWidth, MaxImageHeight, imaging.Lanczos)

	filename := uuid.New().String() + ".jpg"
	path := filepath.Join(s.uploadDir, filename)

	f, err := os.Create(path)
	if err != nil {
		metrics.ObserveImageProcessed("error", 0)
		return "", fmt.Errorf("create image file: %w", err)
	}
	defer f.Close()

	if err := imaging.Encode(f, img, imaging.JPEG, imaging.JPEGQuality(JPEGQuality)); err != nil {
		_ = os.Remove(path)
		metrics.ObserveImageProcessed("error", 0)
		return "", fmt.Errorf("encode image: %w", err)
	}

	metrics.ObserveImageProcessed("success", time.Since(start).Seconds())
	logger.InfoContext(ctx, "image processed", slog.String("file", filename))
	return "/uploads/" + filename, nil
}

// Attach processes an upload and records it as a child of an existing post.
// Position defaults to append-at-end when not supplied.
func (s *ImageService) Attach(ctx context.Context, postID string, reader io.Reader, size int64, opts AttachOptions) (*domain.Image, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrPostNotFound
		}
		return nil, err
	}

	imageURL, err := s.Process(ctx, reader, size)
	if err != nil {
		return nil, err
	}

	position := 0
	if opts.Position != nil {
		position = *opts.Position
	} else {
		position, err = s.imageRepo.NextPosition(ctx, postID)
		if err != nil {
			return nil, err
		}
	}

	image := &domain.Image{
		ID:        uuid.New().String(),
		PostID:    postID,
		ImageURL:  imageURL,
		AltText:   opts.AltText,
		Caption:   opts.Caption,
		Position:  position,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.validator.ValidateImage(image); err != nil {
		return nil, &ValidationError{Err: err}
	}

	if err := s.imageRepo.Create(ctx, image); err != nil {
		return nil, err
	}

	return image, nil
}

// ListByPost returns a post's images ordered by position ascending.
func (s *ImageService) ListByPost(ctx context.Context, postID string) ([]domain.Image, error) {
	return s.imageRepo.ListByPost(ctx, postID)
}

// Delete removes a single image record.
func (s *ImageService) Delete(ctx context.Context, id string) error {
	return s.imageRepo.Delete(ctx, id)
}

// DeleteByPost removes all image records for a post and best-effort removes
// their files from disk.
func (s *ImageService) DeleteByPost(ctx context.Context, postID string) error {
	images, err := s.imageRepo.ListByPost(ctx, postID)
	if err != nil {
		return err
	}

	if _, err := s.imageRepo.DeleteByPost(ctx, postID); err != nil {
		return err
	}

	for _, img := range images {
		path := filepath.Join(s.uploadDir, filepath.Base(img.ImageURL))
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			logger.Warn("failed to remove image file",
				slog.String("path", path),
				slog.String("error", err.Error()))
		}
	}

	return nil
}
