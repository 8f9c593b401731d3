package preview

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
)

const jsonPath = "/preview/json"

// maxBody bounds how much of a response is read.
const maxBody = 4 << 20

var ErrNotJSON = errors.New("response is not JSON")

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
}

// Client talks to the preview endpoints of a CMS.
type Client struct {
	baseURL string
	cookie  string
	client  *http.Client
	logger  *log.Logger
}

// NewClient creates a client rooted at baseURL. A nil http client uses
// http.DefaultClient and a nil logger discards output.
func NewClient(baseURL string, client *http.Client, logger *log.Logger) *Client {
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		logger:  logger,
	}
}

// SetCookie sends a raw Cookie header with every request, for sessions
// copied out of a browser.
func (c *Client) SetCookie(cookie string) { c.cookie = cookie }

func (c *Client) BaseURL() string { return c.baseURL }

// Fetch reads the JSON data behind a target.
func (c *Client) Fetch(ctx context.Context, t Target) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, t.Endpoint(), nil)
}

// Submit posts body to the target and returns the server's JSON reply.
func (c *Client) Submit(ctx context.Context, t Target, body json.RawMessage) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPost, t.Endpoint(), body)
}

// FetchJSON reads the whole preview document.
func (c *Client) FetchJSON(ctx context.Context) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, jsonPath, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body []byte) (json.RawMessage, error) {
	var r io.Reader
	if body != nil {
		r = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, r)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.cookie != "" {
		req.Header.Set("Cookie", c.cookie)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	c.logger.Printf("%s %s -> %d (%d bytes)", method, path, resp.StatusCode, len(data))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(data)),
		}
	}
	if !json.Valid(data) {
		return nil, fmt.Errorf("%s %s: %w", method, path, ErrNotJSON)
	}
	return json.RawMessage(data), nil
}
