// Package models defines the data types shared by the blogkeeper stores
// and the CLI.
package models

import "time"

// SortOrder selects how the visible post list is ordered.
type SortOrder string

const (
	SortNewest SortOrder = "newest"
	SortOldest SortOrder = "oldest"
	SortTitle  SortOrder = "title"
)

// ValidSortOrder reports whether s is one of the supported sort orders.
func ValidSortOrder(s SortOrder) bool {
	switch s {
	case SortNewest, SortOldest, SortTitle:
		return true
	}
	return false
}

// Post is one blog article. The id is assigned once at creation and never
// changes; UpdatedAt is always >= CreatedAt.
type Post struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Excerpt   string    `json:"excerpt"`
	Author    string    `json:"author"`
	AuthorID  string    `json:"authorId"`
	Category  string    `json:"category"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PostDraft carries the fields of a post that has not been created yet.
// The store assigns the id and both timestamps.
type PostDraft struct {
	Title    string
	Content  string
	Excerpt  string
	Author   string
	AuthorID string
	Category string
	Tags     []string
}

// PostPatch is a partial update. Nil fields are left untouched by
// UpdatePost; non-nil fields replace the stored value.
type PostPatch struct {
	Title    *string
	Content  *string
	Excerpt  *string
	Category *string
	Tags     *[]string
}
