// Package client is a Go client for the movie-review API. It attaches a bearer
// token when one is available and turns every non-2xx response into an *APIError.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

const DefaultBaseURL = "http://localhost:4000"

// Session is the signed-in state of the local user.
type Session interface {
	// IDToken returns "" when nobody is signed in.
	IDToken(ctx context.Context) (string, error)
	// CurrentUser returns nil when nobody is signed in.
	CurrentUser() *User
}

type User struct {
	UID         string
	Email       string
	DisplayName string
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	session    Session
	names      NameStore
	log        *zap.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithSession(s Session) Option {
	return func(c *Client) { c.session = s }
}

func WithNameStore(n NameStore) Option {
	return func(c *Client) { c.names = n }
}

func WithLogger(log *zap.Logger) Option {
	return func(c *Client) { c.log = log }
}

func New(baseURL string, opts ...Option) *Client {
	baseURL = strings.TrimRight(baseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		names:      NewMemoryNameStore(),
		log:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.With(zap.String("client", "movie-review"))
	return c
}

// CallOption adjusts a single request.
type CallOption func(*callOptions)

type callOptions struct {
	token string
}

// WithToken sends token instead of asking the session for one.
func WithToken(token string) CallOption {
	return func(o *callOptions) { o.token = token }
}

// resolveToken prefers an explicit token, then the session. A session failure
// means the request goes out unauthenticated and the server decides.
func (c *Client) resolveToken(ctx context.Context, opts []CallOption) string {
	var o callOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.token != "" {
		return o.token
	}
	if c.session == nil {
		return ""
	}

	token, err := c.session.IDToken(ctx)
	if err != nil {
		c.log.Warn("Failed to get ID token", zap.Error(err))
		return ""
	}
	return token
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, out any, opts ...CallOption) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s body: %w", method, path, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.resolveToken(ctx, opts); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s %s response: %w", method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := newAPIError(resp.StatusCode, raw)
		c.log.Debug("API request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("message", apiErr.Message),
		)
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

func pagination(page int) url.Values {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	return q
}
