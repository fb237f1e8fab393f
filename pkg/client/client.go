// Package client calls the censorship service over HTTP.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"wordfilter/pkg/models"
)

const defaultTimeout = 5 * time.Second

type ctxKeyRequestID struct{}

// ErrStatus is returned when the service answers with an unexpected status code.
type ErrStatus struct {
	Code int
	msg  string
}

func (e *ErrStatus) Error() string {
	return fmt.Sprintf("censorship service returned %d: %s", e.Code, e.msg)
}

type Client struct {
	baseURL string
	hc      *http.Client
}

// New returns a client for the service at baseURL. A zero timeout means 5s.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{Timeout: timeout},
	}
}

// WithRequestID makes calls made with ctx carry id in X-Request-Id.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKeyRequestID{}, id)
}

// Check reports whether the comment text contains forbidden words.
func (c *Client) Check(ctx context.Context, comment models.Comment) (bool, error) {
	resp, err := c.do(ctx, http.MethodPost, "check", comment)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return false, nil
	case http.StatusUnprocessableEntity:
		return true, nil
	}
	return false, statusError(resp)
}

// Replace returns the comment with forbidden words masked.
func (c *Client) Replace(ctx context.Context, comment models.Comment) (models.Comment, error) {
	return c.transform(ctx, "replace", comment)
}

// Fix returns the comment with disguised spellings rewritten.
func (c *Client) Fix(ctx context.Context, comment models.Comment) (models.Comment, error) {
	return c.transform(ctx, "fix", comment)
}

func (c *Client) transform(ctx context.Context, path string, comment models.Comment) (models.Comment, error) {
	resp, err := c.do(ctx, http.MethodPost, path, comment)
	if err != nil {
		return models.Comment{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.Comment{}, statusError(resp)
	}

	var out models.Comment
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return models.Comment{}, fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, method, path string, body any) (*http.Response, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	target, err := url.JoinPath(c.baseURL, path)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, target, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if id, ok := ctx.Value(ctxKeyRequestID{}).(string); ok && id != "" {
		req.Header.Set("X-Request-Id", id)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("censorship service unavailable: %w", err)
	}
	return resp, nil
}

func statusError(resp *http.Response) error {
	msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return &ErrStatus{Code: resp.StatusCode, msg: strings.TrimSpace(string(msg))}
}
