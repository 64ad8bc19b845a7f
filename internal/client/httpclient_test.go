package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/avoronov/blogkeeper/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPClient_FetchPosts(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/posts", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":1,"title":"A","body":"b","userId":7}]`))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, 5*time.Second, func() string { return "tok" })
	posts, err := c.FetchPosts(context.Background())
	require.NoError(t, err)

	require.Len(t, posts, 1)
	assert.Equal(t, RemotePost{ID: 1, Title: "A", Body: "b", UserID: 7}, posts[0])
	assert.Equal(t, "Bearer tok", gotAuth)
}

func TestHTTPClient_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, 5*time.Second, nil)
	_, err := c.FetchPosts(context.Background())
	assert.ErrorIs(t, err, common.ErrTransport)
}

func TestHTTPClient_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listening anymore

	c := NewHTTPClient(srv.URL, time.Second, nil)
	_, err := c.FetchPosts(context.Background())
	assert.ErrorIs(t, err, common.ErrTransport)
}

func TestHTTPClient_Writes(t *testing.T) {
	type call struct{ method, path string }
	var calls []call
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, call{r.Method, r.URL.Path})
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, 5*time.Second, nil)
	ctx := context.Background()

	require.NoError(t, c.CreatePost(ctx, "t", "b"))
	require.NoError(t, c.UpdatePost(ctx, "5", "t2", "b2"))
	require.NoError(t, c.DeletePost(ctx, "5"))
	require.NoError(t, c.Close())

	assert.Equal(t, []call{
		{http.MethodPost, "/posts"},
		{http.MethodPatch, "/posts/5"},
		{http.MethodDelete, "/posts/5"},
	}, calls)
}
