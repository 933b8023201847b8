// Package query implements the content query and pagination engine: it turns
// a search/tags/published/page/pageSize request into a deterministic, bounded
// result set. The same semantics are exposed twice: as pure in-memory
// predicate/sort/slice logic, and as a filter pushed down to the document
// store (see filter.go). Both faces must agree.
package query

import (
	"sort"
	"strings"

	"blog-cms/internal/domain"
)

const (
	// DefaultPageSize is used when the caller supplies a non-positive page size.
	DefaultPageSize = 10

	// MaxPageSize caps the number of items a single page may return.
	MaxPageSize = 100
)

// Params describes a content query. The zero value matches every post and
// must be normalized before use.
type Params struct {
	Search    string
	Tags      []string
	Published *bool
	Page      int
	PageSize  int
}

// Normalize clamps pagination bounds: page below 1 becomes 1, a
// non-positive page size becomes DefaultPageSize, and page size is capped
// at MaxPageSize. Filter fields are left untouched.
func (p Params) Normalize() Params {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
	return p
}

// Offset returns the number of records to skip for the current page.
// Params must be normalized first.
func (p Params) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// Result is an ordered page of posts plus pagination metadata.
type Result struct {
	Items      []domain.Post
	Total      int
	Page       int
	PageSize   int
	TotalPages int
}

// Pages computes the total page count: ceil(total/pageSize), with zero
// matches yielding zero pages.
func Pages(total, pageSize int) int {
	if total <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}

// Matches reports whether a post satisfies the filter part of the params.
// The three constraints combine with AND; an absent constraint matches
// everything.
func Matches(p *domain.Post, params Params) bool {
	if params.Published != nil && p.Published != *params.Published {
		return false
	}

	if len(params.Tags) > 0 {
		found := false
		for _, tag := range params.Tags {
			if p.HasTag(tag) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if search := strings.ToLower(strings.TrimSpace(params.Search)); search != "" {
		excerpt := ""
		if p.Excerpt != nil {
			excerpt = *p.Excerpt
		}
		if !strings.Contains(strings.ToLower(p.Title), search) &&
			!strings.Contains(strings.ToLower(p.Content), search) &&
			!strings.Contains(strings.ToLower(excerpt), search) {
			return false
		}
	}

	return true
}

// Sort orders posts by published_at descending with unset values last,
// breaking ties by created_at descending. The sort is stable.
func Sort(posts []domain.Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		a, b := posts[i], posts[j]
		switch {
		case a.PublishedAt != nil && b.PublishedAt == nil:
			return true
		case a.PublishedAt == nil && b.PublishedAt != nil:
			return false
		case a.PublishedAt != nil && b.PublishedAt != nil:
			if !a.PublishedAt.Equal(*b.PublishedAt) {
				return a.PublishedAt.After(*b.PublishedAt)
			}
		}
		return a.CreatedAt.After(b.CreatedAt)
	})
}

// Run executes the full pipeline in memory: normalize, filter, sort, slice.
// A page past the end yields empty Items with Total unchanged.
func Run(posts []domain.Post, params Params) Result {
	params = params.Normalize()

	matched := make([]domain.Post, 0, len(posts))
	for i := range posts {
		if Matches(&posts[i], params) {
			matched = append(matched, posts[i])
		}
	}
	Sort(matched)

	total := len(matched)
	offset := params.Offset()

	items := []domain.Post{}
	if offset < total {
		end := offset + params.PageSize
		if end > total {
			end = total
		}
		items = matched[offset:end]
	}

	return Result{
		Items:      items,
		Total:      total,
		Page:       params.Page,
		PageSize:   params.PageSize,
		TotalPages: Pages(total, params.PageSize),
	}
}
