package domain

import "time"

// Post represents a blog post entity in the system.
type Post struct {
	ID            string     `json:"id" bson:"_id"`
	Title         string     `json:"title" bson:"title"`
	Slug          string     `json:"slug" bson:"slug"`
	Content       string     `json:"content" bson:"content"`
	Excerpt       *string    `json:"excerpt,omitempty" bson:"excerpt,omitempty"`
	FeaturedImage *string    `json:"featured_image,omitempty" bson:"featured_image,omitempty"`
	Tags          []string   `json:"tags,omitempty" bson:"tags,omitempty"`
	Published     bool       `json:"published" bson:"published"`
	PublishedAt   *time.Time `json:"published_at,omitempty" bson:"published_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at" bson:"updated_at"`
}

// HasTag reports whether the post carries the given tag.
func (p *Post) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// PostUpdate describes a partial update to a post. Nil fields are left
// untouched; a non-nil Tags replaces the whole tag list.
type PostUpdate struct {
	Title         *string
	Content       *string
	Excerpt       *string
	FeaturedImage *string
	Tags          []string
	Published     *bool
}

// Empty reports whether the update carries no changes.
func (u *PostUpdate) Empty() bool {
	return u.Title == nil && u.Content == nil && u.Excerpt == nil &&
		u.FeaturedImage == nil && u.Tags == nil && u.Published == nil
}
