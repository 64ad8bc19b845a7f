// Package posts implements the post collection store: it fetches the
// remote collection once, caches it, and derives the visible slice
// (search + sort + pagination) entirely on the client.
//
// After the first successful fetch the local collection is the source of
// truth; remote writes are best-effort against a non-persistent endpoint.
// Concurrent writes to the same id are last-write-wins in call order.
package posts

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/avoronov/blogkeeper/internal/client"
	"github.com/avoronov/blogkeeper/internal/common"
	"github.com/avoronov/blogkeeper/internal/logging"
	"github.com/avoronov/blogkeeper/internal/models"
	"github.com/avoronov/blogkeeper/internal/repositories/kv"
	"github.com/google/uuid"
)

const (
	cacheKey = "posts_cache"

	defaultAuthor   = "Unknown Author"
	defaultCategory = "General"
)

// cachedCollection is the blob persisted under cacheKey so a restarted
// process does not refetch.
type cachedCollection struct {
	Posts       []models.Post `json:"posts"`
	Initialized bool          `json:"initialized"`
}

// Snapshot is a point-in-time copy of everything a screen renders.
type Snapshot struct {
	Visible     []models.Post
	Matching    int
	Total       int
	Query       string
	SortBy      models.SortOrder
	Page        int
	HasMore     bool
	Loading     bool
	LoadingMore bool
	Initialized bool
	LastError   string
}

// Store owns the full fetched post collection and its derived view.
type Store struct {
	api     client.Client
	cache   kv.Repository // may be nil: persistence becomes a no-op
	log     logging.Logger
	latency time.Duration

	mu          sync.Mutex
	collection  []models.Post
	view        View
	visible     []models.Post
	matching    int
	hasMore     bool
	initialized bool
	loading     bool
	loadingMore bool
	lastError   string
}

// NewStore constructs the store and rehydrates the collection from the
// cache key when one is present. latency is the simulated network delay
// applied to fetch/create/load-more, mirroring the original app's fake
// round trips; pass 0 to disable.
func NewStore(api client.Client, cache kv.Repository, log logging.Logger, latency time.Duration) *Store {
	s := &Store{
		api:     api,
		cache:   cache,
		log:     log,
		latency: latency,
		view:    View{SortBy: models.SortNewest, Page: 1},
	}
	s.rehydrate(context.Background())
	s.rederive()
	return s
}

// Fetch retrieves the full remote collection. It is an idempotent no-op
// once the store is initialized with a non-empty collection. On transport
// failure the prior collection is left untouched.
func (s *Store) Fetch(ctx context.Context) error {
	s.mu.Lock()
	if (s.initialized && len(s.collection) > 0) || s.loading {
		s.mu.Unlock()
		return nil
	}
	s.loading = true
	s.lastError = ""
	s.mu.Unlock()

	s.simulateLatency(ctx)
	remote, err := s.api.FetchPosts(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.lastError = err.Error()
		return fmt.Errorf("fetch posts: %w", err)
	}

	s.collection = mapRemote(remote, time.Now())
	s.initialized = true
	s.rederive()
	s.persistCache(ctx)
	return nil
}

// SetSearchQuery updates the search query, resets pagination, and
// re-derives the visible slice.
func (s *Store) SetSearchQuery(q string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view.Query = q
	s.view.Page = 1
	s.rederive()
}

// SetSortBy updates the sort order, resets pagination, and re-derives the
// visible slice. Unknown orders are rejected.
func (s *Store) SetSortBy(order models.SortOrder) error {
	if !models.ValidSortOrder(order) {
		return fmt.Errorf("unsupported sort order %q", order)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view.SortBy = order
	s.view.Page = 1
	s.rederive()
	return nil
}

// LoadMore reveals the next page of the filtered collection. It is a no-op
// when no more posts exist or another LoadMore is still in flight, so
// concurrent invocations advance by exactly one page. No data is fetched;
// everything was retrieved by Fetch.
func (s *Store) LoadMore(ctx context.Context) {
	s.mu.Lock()
	if !s.hasMore || s.loadingMore {
		s.mu.Unlock()
		return
	}
	s.loadingMore = true
	s.mu.Unlock()

	s.simulateLatency(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.view.Page++
	s.rederive()
	s.loadingMore = false
}

// CreatePost writes the draft to the remote endpoint (failure aborts),
// assigns a fresh id and timestamps, and prepends the post to the
// collection.
func (s *Store) CreatePost(ctx context.Context, draft models.PostDraft) (models.Post, error) {
	s.simulateLatency(ctx)
	if err := s.api.CreatePost(ctx, draft.Title, draft.Content); err != nil {
		s.setError(err)
		return models.Post{}, fmt.Errorf("create post: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	post := models.Post{
		ID:        uuid.NewString(),
		Title:     draft.Title,
		Content:   draft.Content,
		Excerpt:   draft.Excerpt,
		Author:    draft.Author,
		AuthorID:  draft.AuthorID,
		Category:  draft.Category,
		Tags:      append([]string(nil), draft.Tags...),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if post.Excerpt == "" {
		post.Excerpt = makeExcerpt(post.Content)
	}
	if post.Category == "" {
		post.Category = defaultCategory
	}

	s.collection = append([]models.Post{post}, s.collection...)
	s.lastError = ""
	s.rederive()
	s.persistCache(ctx)
	return post, nil
}

// UpdatePost merges the patch over the stored post, refreshes updatedAt,
// and replaces the record in place; its position in the collection does not
// change. Returns common.ErrNotFound when the id is absent. The remote
// write is best-effort: the endpoint does not persist anyway.
func (s *Store) UpdatePost(ctx context.Context, id string, patch models.PostPatch) (models.Post, error) {
	s.mu.Lock()
	idx := s.indexOf(id)
	if idx < 0 {
		s.mu.Unlock()
		return models.Post{}, fmt.Errorf("update post %s: %w", id, common.ErrNotFound)
	}
	updated := applyPatch(s.collection[idx], patch)
	updated.UpdatedAt = time.Now()
	s.mu.Unlock()

	s.simulateLatency(ctx)
	if err := s.api.UpdatePost(ctx, id, updated.Title, updated.Content); err != nil {
		s.log.Warn(ctx, "remote update failed, keeping local change", "id", id, "error", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	idx = s.indexOf(id)
	if idx < 0 {
		// deleted while the remote write was in flight
		return models.Post{}, fmt.Errorf("update post %s: %w", id, common.ErrNotFound)
	}
	s.collection[idx] = updated
	s.rederive()
	s.persistCache(ctx)
	return updated, nil
}

// DeletePost removes the post by id. Deleting a missing id is a no-op, so
// double-delete is safe. The remote delete is best-effort.
func (s *Store) DeletePost(ctx context.Context, id string) error {
	s.simulateLatency(ctx)
	if err := s.api.DeletePost(ctx, id); err != nil {
		s.log.Warn(ctx, "remote delete failed, removing locally", "id", id, "error", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexOf(id)
	if idx < 0 {
		return nil
	}
	s.collection = append(s.collection[:idx], s.collection[idx+1:]...)
	s.rederive()
	s.persistCache(ctx)
	return nil
}

// GetPostByID is a pure lookup against the authoritative collection.
func (s *Store) GetPostByID(id string) (models.Post, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexOf(id)
	if idx < 0 {
		return models.Post{}, false
	}
	return s.collection[idx], true
}

// Snapshot returns a copy of the derived view and flags for rendering.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Visible:     append([]models.Post(nil), s.visible...),
		Matching:    s.matching,
		Total:       len(s.collection),
		Query:       s.view.Query,
		SortBy:      s.view.SortBy,
		Page:        s.view.Page,
		HasMore:     s.hasMore,
		Loading:     s.loading,
		LoadingMore: s.loadingMore,
		Initialized: s.initialized,
		LastError:   s.lastError,
	}
}

// rederive recomputes the visible slice. Callers must hold s.mu.
func (s *Store) rederive() {
	s.visible, s.matching, s.hasMore = deriveVisible(s.collection, s.view)
}

// indexOf returns the position of id in the collection, or -1. Callers
// must hold s.mu.
func (s *Store) indexOf(id string) int {
	for i, p := range s.collection {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) setError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastError = err.Error()
}

// persistCache writes the collection and initialized flag to the cache key.
// Callers must hold s.mu. A nil cache makes this a no-op.
func (s *Store) persistCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(cachedCollection{Posts: s.collection, Initialized: s.initialized})
	if err != nil {
		s.log.Warn(ctx, "failed to encode post cache", "error", err)
		return
	}
	if err := s.cache.Set(ctx, cacheKey, raw); err != nil {
		s.log.Warn(ctx, "failed to persist post cache", "error", err)
	}
}

// rehydrate restores the collection from the cache key, reconciling a
// restarted process with its previous state.
func (s *Store) rehydrate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	raw, err := s.cache.Get(ctx, cacheKey)
	if err != nil {
		s.log.Warn(ctx, "failed to read post cache", "error", err)
		return
	}
	if raw == nil {
		return
	}
	var cached cachedCollection
	if err := json.Unmarshal(raw, &cached); err != nil {
		s.log.Warn(ctx, "failed to decode post cache", "error", err)
		return
	}
	s.collection = cached.Posts
	s.initialized = cached.Initialized
}

func (s *Store) simulateLatency(ctx context.Context) {
	if s.latency <= 0 {
		return
	}
	select {
	case <-time.After(s.latency):
	case <-ctx.Done():
	}
}

// applyPatch merges non-nil patch fields over p.
func applyPatch(p models.Post, patch models.PostPatch) models.Post {
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Content != nil {
		p.Content = *patch.Content
	}
	if patch.Excerpt != nil {
		p.Excerpt = *patch.Excerpt
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.Tags != nil {
		p.Tags = append([]string(nil), (*patch.Tags)...)
	}
	return p
}

// mapRemote converts remote records into Posts. The placeholder endpoint
// carries no timestamps or metadata, so creation times are synthesized an
// hour apart (newest first, matching listing order) and author/category
// fall back to defaults.
func mapRemote(remote []client.RemotePost, now time.Time) []models.Post {
	posts := make([]models.Post, 0, len(remote))
	for i, r := range remote {
		created := now.Add(-time.Duration(i) * time.Hour)
		posts = append(posts, models.Post{
			ID:        strconv.Itoa(r.ID),
			Title:     r.Title,
			Content:   r.Body,
			Excerpt:   makeExcerpt(r.Body),
			Author:    defaultAuthor,
			AuthorID:  "user_" + strconv.Itoa(r.UserID),
			Category:  defaultCategory,
			Tags:      []string{},
			CreatedAt: created,
			UpdatedAt: created,
		})
	}
	return posts
}

const excerptRunes = 120

// makeExcerpt derives a short summary from body text: whitespace collapsed
// and cut at a word boundary.
func makeExcerpt(body string) string {
	body = strings.Join(strings.Fields(body), " ")
	runes := []rune(body)
	if len(runes) <= excerptRunes {
		return body
	}
	cut := string(runes[:excerptRunes])
	if i := strings.LastIndex(cut, " "); i > 0 {
		cut = cut[:i]
	}
	return cut + "…"
}
