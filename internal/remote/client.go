package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"time"

	"bakeshop/internal/storage"
)

// APIError is a non-2xx response from the remote API. Message carries the
// server-supplied message when present, or a per-operation fallback.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// Client is the shared HTTP plumbing for all remote API clients. It attaches
// the bearer credential read from the token store at call time and keeps a
// cookie jar so the anonymous session cookie survives across calls.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  storage.TokenStore
}

// NewClient creates a Client for the API at baseURL. A zero timeout means
// requests never time out.
func NewClient(baseURL string, timeout time.Duration, tokens storage.TokenStore) *Client {
	jar, _ := cookiejar.New(nil)
	return &Client{
		baseURL: baseURL,
		http: &http.Client{
			Timeout: timeout,
			Jar:     jar,
		},
		tokens: tokens,
	}
}

// do performs one JSON round trip. On a 2xx response the body is decoded
// into out (when non-nil). On any other status it returns an *APIError with
// the server's message, or fallback when the body carries none. There is no
// retry and no distinction between transient and permanent failures.
func (c *Client) do(ctx context.Context, method, path string, body, out any, fallback string) error {
	var reqBody *bytes.Buffer
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewBuffer(encoded)
	} else {
		reqBody = &bytes.Buffer{}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	// Token is read from persistent storage at call time; absence simply
	// means the request goes out unauthenticated.
	if token, tokenErr := c.tokens.Token(); tokenErr == nil {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", fallback, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var failure struct {
			Message string `json:"message"`
		}
		message := fallback
		if decodeErr := json.NewDecoder(resp.Body).Decode(&failure); decodeErr == nil && failure.Message != "" {
			message = failure.Message
		}
		return &APIError{Status: resp.StatusCode, Message: message}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}
