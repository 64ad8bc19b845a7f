package cli

import (
	"context"
	"fmt"

	"github.com/avoronov/blogkeeper/internal/models"
	"github.com/avoronov/blogkeeper/internal/stores/posts"
)

// List prints the currently visible page(s) of the post collection.
func (a *App) List(ctx context.Context) error {
	a.render(a.posts.Snapshot())
	return nil
}

// Search updates the search query and prints the re-derived first page.
// An empty query clears the filter.
func (a *App) Search(ctx context.Context, query string) error {
	a.posts.SetSearchQuery(query)
	a.render(a.posts.Snapshot())
	return nil
}

// Sort changes the sort order and prints the re-derived first page.
func (a *App) Sort(ctx context.Context, order string) error {
	if err := a.posts.SetSortBy(models.SortOrder(order)); err != nil {
		printlnFn("Usage: sort newest|oldest|title")
		return err
	}
	a.render(a.posts.Snapshot())
	return nil
}

// More reveals the next page of the filtered collection.
func (a *App) More(ctx context.Context) error {
	before := a.posts.Snapshot()
	if !before.HasMore {
		printlnFn("No more posts")
		return nil
	}
	a.posts.LoadMore(ctx)
	a.render(a.posts.Snapshot())
	return nil
}

// Refresh retries the initial fetch. Once the collection is loaded this is
// a no-op; the local collection stays authoritative.
func (a *App) Refresh(ctx context.Context) error {
	if err := a.posts.Fetch(ctx); err != nil {
		printlnFn("Fetch failed:", err.Error())
		return err
	}
	a.render(a.posts.Snapshot())
	return nil
}

// render prints one line per visible post plus a footer with the match
// count and paging state.
func (a *App) render(s posts.Snapshot) {
	if !s.Initialized {
		printlnFn("Collection not loaded yet, use 'refresh'")
		if s.LastError != "" {
			printlnFn("Last error:", s.LastError)
		}
		return
	}

	for _, p := range s.Visible {
		printlnFn(fmt.Sprintf("%s  [%s] %s by %s (%s)",
			p.ID, p.Category, p.Title, p.Author, p.CreatedAt.Format("2006-01-02")))
	}

	footer := fmt.Sprintf("%d of %d matching post(s), sorted by %s", len(s.Visible), s.Matching, s.SortBy)
	if s.Query != "" {
		footer += fmt.Sprintf(", query %q", s.Query)
	}
	if s.HasMore {
		footer += ", 'more' for the next page"
	}
	printlnFn(footer)
}
