// Package api provides a client for the SpendGenie backend REST API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/spendgenie/genie/internal/common"
)

// Config holds backend connection settings.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Validate ensures all required fields are present.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("backend base URL is required: %w", common.ErrMissingConfig)
	}
	if !strings.HasPrefix(c.BaseURL, "http://") && !strings.HasPrefix(c.BaseURL, "https://") {
		return fmt.Errorf("invalid backend base URL %s: %w", c.BaseURL, common.ErrInvalidConfig)
	}
	return nil
}

// Client implements the Backend interface over HTTP. Session
// credentials ride on a cookie jar; the client never manages tokens
// directly.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a new backend client with the given configuration.
func NewClient(cfg Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			Jar:     jar,
		},
	}, nil
}

// AuthStatus queries whether the ambient session cookie is valid.
func (c *Client) AuthStatus(ctx context.Context) (AuthStatus, error) {
	var status AuthStatus
	if err := c.getJSON(ctx, "/api/auth/status", nil, &status); err != nil {
		return AuthStatus{}, err
	}
	return status, nil
}

// Login exchanges credentials for a session cookie and returns the
// authenticated username.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var reply struct {
		Message  string `json:"message"`
		Username string `json:"username"`
	}
	body := map[string]string{"email": email, "password": password}
	if err := c.postJSON(ctx, "/api/auth/login", body, &reply); err != nil {
		return "", err
	}
	return reply.Username, nil
}

// Register creates an account and returns the authenticated username.
func (c *Client) Register(ctx context.Context, username, email, password string) (string, error) {
	var reply struct {
		Message  string `json:"message"`
		Username string `json:"username"`
	}
	body := map[string]string{"username": username, "email": email, "password": password}
	if err := c.postJSON(ctx, "/api/auth/register", body, &reply); err != nil {
		return "", err
	}
	return reply.Username, nil
}

// Logout invalidates the session cookie server-side.
func (c *Client) Logout(ctx context.Context) error {
	return c.postJSON(ctx, "/api/auth/logout", nil, nil)
}

// Analytics fetches aggregated spending data. Absent filter fields are
// omitted from the query string entirely.
func (c *Client) Analytics(ctx context.Context, filter Filter) (*AnalyticsResult, error) {
	var result AnalyticsResult
	if err := c.getJSON(ctx, "/api/analytics", filter.Values(), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Summary fetches the AI-generated text summary for the same filter.
func (c *Client) Summary(ctx context.Context, filter Filter) (string, error) {
	var reply struct {
		Summary string `json:"summary"`
	}
	if err := c.getJSON(ctx, "/api/summary", filter.Values(), &reply); err != nil {
		return "", err
	}
	return reply.Summary, nil
}

// Upload submits a transaction CSV as a multipart body with a single
// "file" field.
func (c *Client) Upload(ctx context.Context, filename string, data io.Reader) (*UploadResult, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, data); err != nil {
		return nil, fmt.Errorf("failed to write file data: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/upload", &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	slog.Debug("Uploading CSV", "filename", filename, "bytes", buf.Len())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to upload file: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, errorFromResponse(resp)
	}

	var result UploadResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &result, nil
}

// Chat sends one user turn to the assistant and returns its reply.
func (c *Client) Chat(ctx context.Context, message string) (string, error) {
	var reply struct {
		Reply string `json:"reply"`
	}
	body := map[string]string{"message": message}
	if err := c.postJSON(ctx, "/api/chat", body, &reply); err != nil {
		return "", err
	}
	return reply.Reply, nil
}

// getJSON performs a GET request and decodes the JSON response into out.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	slog.Debug("Backend GET", "path", path, "query", query.Encode())

	return c.doJSON(req, out)
}

// postJSON performs a POST request with an optional JSON body and
// decodes the JSON response into out when out is non-nil.
func (c *Client) postJSON(ctx context.Context, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	slog.Debug("Backend POST", "path", path)

	return c.doJSON(req, out)
}

func (c *Client) doJSON(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach backend: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errorFromResponse(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
