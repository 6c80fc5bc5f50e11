// Package slack is a minimal client for the Slack Web API covering the
// methods the tool catalog needs. Every call is a form-encoded POST with
// Bearer auth; the Slack "ok"/"error" response convention is decoded into
// an *APIError.
package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultBaseURL is the production Slack Web API endpoint (no trailing
// slash).
const DefaultBaseURL = "https://slack.com/api"

// maxResponseSize caps how much of a Web API response is read (4MB).
const maxResponseSize = 4 << 20

// APIError is a Slack Web API level failure: the HTTP exchange succeeded
// but the response carried ok=false. Code is Slack's machine-readable
// error string (e.g. "channel_not_found").
type APIError struct {
	Method string
	Code   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("slack: %s: %s", e.Method, e.Code)
}

// apiResponse is the envelope every Web API response shares. Embed it in
// concrete response types.
type apiResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

func (r *apiResponse) apiOK() bool      { return r.OK }
func (r *apiResponse) apiError() string { return r.Error }

// response is satisfied by any type embedding apiResponse.
type response interface {
	apiOK() bool
	apiError() string
}

// responseMetadata carries Slack's pagination cursor.
type responseMetadata struct {
	NextCursor string `json:"next_cursor"`
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint (no trailing slash). Used by tests
// and Slack-compatible gateways.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) { c.baseURL = strings.TrimSuffix(baseURL, "/") }
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) { c.client = client }
}

// Client calls the Slack Web API with a bot token.
type Client struct {
	token   string
	baseURL string
	client  *http.Client
}

// New creates a Client authenticated with the given bot token.
func New(token string, opts ...Option) *Client {
	c := &Client{
		token:   token,
		baseURL: DefaultBaseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// call posts form-encoded params to the named Web API method and decodes
// the JSON response into out. An ok=false response becomes an *APIError.
func (c *Client) call(ctx context.Context, method string, params url.Values, out response) error {
	endpoint := c.baseURL + "/" + method

	var body io.Reader
	if len(params) > 0 {
		body = strings.NewReader(params.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return fmt.Errorf("slack: %s: create request: %w", method, err)
	}

	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("slack: %s: %w", method, err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close on read

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("slack: %s: read response: %w", method, err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("slack: %s: unexpected status %d", method, resp.StatusCode)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("slack: %s: decode response: %w", method, err)
	}

	if !out.apiOK() {
		code := out.apiError()
		if code == "" {
			code = "unknown_error"
		}

		return &APIError{Method: method, Code: code}
	}

	return nil
}
