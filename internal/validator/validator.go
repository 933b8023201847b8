package validator

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"blog-cms/internal/domain"
)

var slugRegex = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// Validator provides validation methods for domain entities.
type Validator struct{}

// NewValidator creates a new Validator instance.
func NewValidator() *Validator {
	return &Validator{}
}

// ValidatePost validates a Post entity before it is written to the store.
func (v *Validator) ValidatePost(p *domain.Post) error {
	err := validation.ValidateStruct(p,
		validation.Field(&p.Title,
			validation.Required.Error("title_required"),
			validation.Length(1, 200).Error("title_too_long"),
		),
		validation.Field(&p.Content,
			validation.Required.Error("content_required"),
		),
		validation.Field(&p.Slug,
			validation.Required.Error("slug_required"),
			validation.Match(slugRegex).Error("invalid_slug_format"),
		),
	)
	if err != nil {
		return err
	}

	// Custom rule: a published post must carry its publication timestamp.
	if p.Published && p.PublishedAt == nil {
		return validation.Errors{
			"published_at": validation.NewError("published_requires_published_at", "published posts must have published_at"),
		}
	}

	return nil
}

// ValidateImage validates an Image entity before it is attached to a post.
func (v *Validator) ValidateImage(img *domain.Image) error {
	return validation.ValidateStruct(img,
		validation.Field(&img.PostID,
			validation.Required.Error("post_id_required"),
		),
		validation.Field(&img.ImageURL,
			validation.Required.Error("image_url_required"),
		),
		validation.Field(&img.Position,
			validation.Min(0).Error("position_negative"),
		),
	)
}
