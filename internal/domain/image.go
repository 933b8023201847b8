package domain

import "time"

// Image represents an image attached to a post. Images are created only as
// children of an existing post and are removed when the post is deleted.
type Image struct {
	ID        string    `json:"id" bson:"_id"`
	PostID    string    `json:"post_id" bson:"post_id"`
	ImageURL  string    `json:"image_url" bson:"image_url"`
	AltText   *string   `json:"alt_text,omitempty" bson:"alt_text,omitempty"`
	Caption   *string   `json:"caption,omitempty" bson:"caption,omitempty"`
	Position  int       `json:"position" bson:"position"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}
