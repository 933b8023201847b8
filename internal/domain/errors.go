package domain

import "errors"

// Sentinel errors returned by stores and services. Handlers map these to
// HTTP status codes; everything else is treated as an internal failure.
var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrSlugConflict indicates a create or update would collide with
	// another post's slug.
	ErrSlugConflict = errors.New("slug already in use")

	// ErrPostNotFound indicates the owning post for an image operation
	// does not exist.
	ErrPostNotFound = errors.New("post not found")
)
