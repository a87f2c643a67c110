// Package tmdb proxies read requests to The Movie Database API, holding the
// API key server-side.
package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"movie-review/pkg/utils"

	"go.uber.org/zap"
)

const (
	DefaultBaseURL = "https://api.themoviedb.org/3"
	maxBodyBytes   = 4 << 20
)

// Client forwards catalog calls without caching or retries.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	log        *zap.Logger
}

func NewClient(cfg utils.TMDBConfig, log *zap.Logger) *Client {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		baseURL:    baseURL,
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: timeout},
		log:        log.With(zap.String("client", "tmdb")),
	}
}

// SearchMovies calls /search/movie with adult results excluded.
func (c *Client) SearchMovies(ctx context.Context, query string, page int) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("include_adult", "false")
	params.Set("page", strconv.Itoa(page))

	return c.get(ctx, "/search/movie", params)
}

// MovieDetails calls /movie/{id}.
func (c *Client) MovieDetails(ctx context.Context, id string) (json.RawMessage, error) {
	return c.get(ctx, "/movie/"+url.PathEscape(id), url.Values{})
}

func (c *Client) get(ctx context.Context, path string, params url.Values) (json.RawMessage, error) {
	params.Set("api_key", c.apiKey)
	endpoint := c.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		redacted := c.redactErr(err)
		return nil, &utils.UpstreamError{Body: redacted.Error(), Err: redacted}
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Transport errors embed the request URL, api_key included.
		redacted := c.redactErr(err)
		c.log.Error("TMDb request failed", zap.String("path", path), zap.Error(redacted))
		return nil, &utils.UpstreamError{Body: redacted.Error(), Err: redacted}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &utils.UpstreamError{Status: resp.StatusCode, Body: err.Error(), Err: err}
	}

	c.log.Debug("TMDb response",
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.log.Warn("TMDb returned error status",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", body),
		)
		return nil, &utils.UpstreamError{Status: resp.StatusCode, Body: decodeBody(body)}
	}

	if !json.Valid(body) {
		return nil, &utils.UpstreamError{
			Status: resp.StatusCode,
			Body:   string(body),
			Err:    fmt.Errorf("invalid JSON from %s", path),
		}
	}

	return json.RawMessage(body), nil
}

// decodeBody returns the parsed JSON body when possible, otherwise the raw text.
func decodeBody(body []byte) any {
	var parsed any
	if err := json.Unmarshal(body, &parsed); err == nil {
		return parsed
	}
	return string(body)
}

func (c *Client) redactErr(err error) error {
	return errors.New(redact(err.Error(), c.apiKey))
}

// redact keeps the API key out of transport error messages, which embed the URL.
func redact(msg, secret string) string {
	if secret == "" {
		return msg
	}
	return strings.ReplaceAll(msg, secret, "REDACTED")
}
