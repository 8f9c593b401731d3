package walletauth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

const (
	requestPath  = "/auth/request"
	callbackPath = "/auth/callback"

	StatusAccepted = "accepted"
)

// StatusError is a non-2xx response that carried no verdict.
type StatusError struct {
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: status %d: %s", e.Path, e.StatusCode, e.Body)
}

// Callback is the signed answer to a challenge.
type Callback struct {
	Address   string `json:"address"`
	Challenge string `json:"challenge"`
	Signature string `json:"signature"`
}

// Verdict is the server's answer to a Callback. Rejections arrive with a
// 401 status and are still decoded.
type Verdict struct {
	Status  string `json:"status"`
	Address string `json:"address,omitempty"`
	Error   string `json:"error,omitempty"`
}

func (v Verdict) Accepted() bool { return v.Status == StatusAccepted }

// Client speaks the challenge/response endpoints. The challenge is bound to
// the server session cookie, so the client keeps a cookie jar.
type Client struct {
	baseURL string
	client  *http.Client
	logger  *log.Logger
}

// NewClient creates a client with its own cookie jar. A nil logger discards
// output.
func NewClient(baseURL string, logger *log.Logger) (*Client, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Jar: jar},
		logger:  logger,
	}, nil
}

// Cookies returns the session cookies collected for the base URL.
func (c *Client) Cookies() []*http.Cookie {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil
	}
	return c.client.Jar.Cookies(u)
}

// Challenge asks the server for a challenge bound to address.
func (c *Client) Challenge(ctx context.Context, address string) (string, error) {
	u := c.baseURL + requestPath + "?address=" + url.QueryEscape(address)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", fmt.Errorf("build challenge request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("challenge request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read challenge: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", &StatusError{Path: requestPath, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var out struct {
		Challenge string `json:"challenge"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("decode challenge: %w", err)
	}
	if out.Challenge == "" {
		return "", fmt.Errorf("empty challenge")
	}
	return out.Challenge, nil
}

// Submit posts the signed challenge and returns the verdict.
func (c *Client) Submit(ctx context.Context, cb Callback) (Verdict, error) {
	payload, err := json.Marshal(cb)
	if err != nil {
		return Verdict{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+callbackPath, bytes.NewReader(payload))
	if err != nil {
		return Verdict{}, fmt.Errorf("build callback request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return Verdict{}, fmt.Errorf("callback request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Verdict{}, fmt.Errorf("read verdict: %w", err)
	}
	c.logger.Printf("auth callback -> %d %s", resp.StatusCode, bytes.TrimSpace(body))

	var v Verdict
	if err := json.Unmarshal(body, &v); err != nil {
		if resp.StatusCode != http.StatusOK {
			return Verdict{}, &StatusError{Path: callbackPath, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
		}
		return Verdict{}, fmt.Errorf("decode verdict: %w", err)
	}
	return v, nil
}
