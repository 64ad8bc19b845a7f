package client

import "context"

// RemotePost is the wire shape of one record in the remote collection.
type RemotePost struct {
	ID     int    `json:"id"`
	Title  string `json:"title"`
	Body   string `json:"body"`
	UserID int    `json:"userId"`
}

// Client is the transport-agnostic contract for the remote post collection
// endpoint. The endpoint is a non-persistent placeholder: create/update/
// delete are best-effort and their echoed bodies are never depended on.
type Client interface {
	FetchPosts(ctx context.Context) ([]RemotePost, error)
	CreatePost(ctx context.Context, title, body string) error
	UpdatePost(ctx context.Context, id, title, body string) error
	DeletePost(ctx context.Context, id string) error
	Close() error
}
