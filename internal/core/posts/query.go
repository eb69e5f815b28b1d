package posts

import (
	"slices"
	"strings"
)

// SortMode is the user-facing ordering requested for a post listing
type SortMode string

const (
	SortNewest SortMode = "newest"
	SortOldest SortMode = "oldest"
	SortTitle  SortMode = "title"
)

// SortField names the post attribute a listing is ordered by
type SortField string

const (
	SortByCreatedAt SortField = "createdAt"
	SortByTitle     SortField = "title"
)

// SortKey is the storage-level ordering. Ties are broken on the post id in the
// same direction so every backend returns the same sequence.
type SortKey struct {
	Field      SortField
	Descending bool
}

// Query is the composed filter and ordering for listing posts.
// The zero value matches every post, newest first.
type Query struct {
	// Search is matched case-insensitively as a literal substring of title or content
	Search string
	// AuthorID, when set, restricts results to that author's posts
	AuthorID string
	Sort     SortKey
}

// ParseSortMode maps a raw sort parameter to a SortMode, falling back to newest
func ParseSortMode(raw string) SortMode {
	switch SortMode(raw) {
	case SortOldest:
		return SortOldest
	case SortTitle:
		return SortTitle
	default:
		return SortNewest
	}
}

// Key returns the storage ordering for the mode
func (m SortMode) Key() SortKey {
	switch m {
	case SortOldest:
		return SortKey{Field: SortByCreatedAt}
	case SortTitle:
		return SortKey{Field: SortByTitle}
	default:
		return SortKey{Field: SortByCreatedAt, Descending: true}
	}
}

// ComposeQuery builds the listing query from raw request parameters.
// Empty parameters impose no constraint.
func ComposeQuery(search, sort, author string) Query {
	return Query{
		Search:   search,
		AuthorID: author,
		Sort:     ParseSortMode(sort).Key(),
	}
}

// AuthorQuery lists a single author's posts, newest first
func AuthorQuery(authorID string) Query {
	return Query{
		AuthorID: authorID,
		Sort:     SortNewest.Key(),
	}
}

// Matches reports whether p satisfies the query's filter
func (q Query) Matches(p *Post) bool {
	if q.AuthorID != "" && p.AuthorID != q.AuthorID {
		return false
	}
	if q.Search == "" {
		return true
	}
	needle := strings.ToLower(q.Search)
	return strings.Contains(strings.ToLower(p.Title), needle) ||
		strings.Contains(strings.ToLower(p.Content), needle)
}

// Compare orders a before b (negative), after b (positive), or equal (zero)
// according to the query's sort key
func (q Query) Compare(a, b *Post) int {
	var c int
	switch q.Sort.Field {
	case SortByTitle:
		c = strings.Compare(a.Title, b.Title)
	default:
		c = a.CreatedAt.Compare(b.CreatedAt)
	}
	if c == 0 {
		c = strings.Compare(a.ID, b.ID)
	}
	if q.Sort.Descending {
		return -c
	}
	return c
}

// Apply filters and orders posts in memory, returning a new slice
func (q Query) Apply(all []*Post) []*Post {
	matched := make([]*Post, 0, len(all))
	for _, p := range all {
		if q.Matches(p) {
			matched = append(matched, p)
		}
	}
	slices.SortStableFunc(matched, q.Compare)
	return matched
}
