package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/avoronov/blogkeeper/internal/common"
)

// HTTPClient talks to a JSONPlaceholder-shaped REST endpoint.
//
// When tokenFn is set, the current session token is attached to every
// request as a bearer header, the way the original app's interceptor did.
// All failures, network or HTTP-status, wrap common.ErrTransport.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	tokenFn func() string
}

// NewHTTPClient returns an HTTPClient for the given base URL. tokenFn may
// be nil for unauthenticated access.
func NewHTTPClient(baseURL string, timeout time.Duration, tokenFn func() string) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		tokenFn: tokenFn,
	}
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body any, out any) error {
	var payload *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		payload = bytes.NewReader(data)
	} else {
		payload = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokenFn != nil {
		if token := c.tokenFn(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("%w: %s %s: status %d", common.ErrTransport, method, path, resp.StatusCode)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%w: decode response: %v", common.ErrTransport, err)
		}
	}
	return nil
}

// FetchPosts retrieves the full remote collection.
func (c *HTTPClient) FetchPosts(ctx context.Context) ([]RemotePost, error) {
	var posts []RemotePost
	if err := c.do(ctx, http.MethodGet, "/posts", nil, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// CreatePost submits a new record. The echoed body is discarded.
func (c *HTTPClient) CreatePost(ctx context.Context, title, body string) error {
	payload := map[string]string{"title": title, "body": body}
	return c.do(ctx, http.MethodPost, "/posts", payload, nil)
}

// UpdatePost submits changed fields for a record. The echoed body is
// discarded.
func (c *HTTPClient) UpdatePost(ctx context.Context, id, title, body string) error {
	payload := map[string]string{"title": title, "body": body}
	return c.do(ctx, http.MethodPatch, "/posts/"+id, payload, nil)
}

// DeletePost removes a record.
func (c *HTTPClient) DeletePost(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/posts/"+id, nil, nil)
}

// Close releases transport resources.
func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}
