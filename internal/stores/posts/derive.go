package posts

import (
	"slices"
	"strings"

	"github.com/avoronov/blogkeeper/internal/models"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// PageSize is the number of posts revealed per page of the visible slice.
const PageSize = 9

// View is the list view state: what the visible slice is derived from,
// together with the full collection. Screens never mutate it directly.
type View struct {
	Query  string
	SortBy models.SortOrder
	Page   int
}

// deriveVisible computes the visible slice from the full collection and the
// view state: filter, stable sort, then cut to the first Page*PageSize
// items. It returns the slice, the total number of matching posts, and
// whether more matching posts exist beyond the slice.
//
// The function is pure: the input collection is never reordered in place.
func deriveVisible(collection []models.Post, view View) ([]models.Post, int, bool) {
	filtered := make([]models.Post, 0, len(collection))
	for _, p := range collection {
		if matchesQuery(p, view.Query) {
			filtered = append(filtered, p)
		}
	}

	sortPosts(filtered, view.SortBy)

	page := view.Page
	if page < 1 {
		page = 1
	}
	limit := page * PageSize
	if limit > len(filtered) {
		limit = len(filtered)
	}

	return filtered[:limit], len(filtered), limit < len(filtered)
}

// matchesQuery reports whether q is a case-insensitive substring of the
// post's title, content, excerpt, or any tag. An empty query matches
// everything.
func matchesQuery(p models.Post, q string) bool {
	if q == "" {
		return true
	}
	q = strings.ToLower(q)
	if strings.Contains(strings.ToLower(p.Title), q) ||
		strings.Contains(strings.ToLower(p.Content), q) ||
		strings.Contains(strings.ToLower(p.Excerpt), q) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

// sortPosts orders posts in place. Sorting is stable: equal keys keep their
// prior relative order. Title order is locale-aware.
func sortPosts(posts []models.Post, order models.SortOrder) {
	switch order {
	case models.SortOldest:
		slices.SortStableFunc(posts, func(a, b models.Post) int {
			return a.CreatedAt.Compare(b.CreatedAt)
		})
	case models.SortTitle:
		coll := collate.New(language.English)
		slices.SortStableFunc(posts, func(a, b models.Post) int {
			return coll.CompareString(a.Title, b.Title)
		})
	default: // newest
		slices.SortStableFunc(posts, func(a, b models.Post) int {
			return b.CreatedAt.Compare(a.CreatedAt)
		})
	}
}
