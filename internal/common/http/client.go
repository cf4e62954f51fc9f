// internal/common/http/client.go
package http

import (
	"context"
	"net/http"
	"time"
)

// Client is a timeout-bounded HTTP client shared by outbound API callers.
type Client struct {
	httpClient *http.Client
}

func NewClient(timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        20,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

func (c *Client) DoWithContext(ctx context.Context, req *http.Request) (*http.Response, error) {
	return c.httpClient.Do(req.WithContext(ctx))
}

func (c *Client) Timeout() time.Duration {
	return c.httpClient.Timeout
}
