package tmdb

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"movie-review/pkg/utils"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

const testBaseURL = "https://api.themoviedb.org/3"

func setupHTTPMock(t *testing.T) {
	t.Helper()
	httpmock.Activate()
	t.Cleanup(httpmock.DeactivateAndReset)
}

func newTestClient(t *testing.T) *Client {
	t.Helper()
	return NewClient(utils.TMDBConfig{APIKey: "test-key", BaseURL: testBaseURL + "/"}, zap.NewNop())
}

func TestClient_SearchMovies_ForwardsParameters(t *testing.T) {
	setupHTTPMock(t)

	httpmock.RegisterResponderWithQuery(http.MethodGet, testBaseURL+"/search/movie",
		map[string]string{
			"api_key":       "test-key",
			"query":         "alien",
			"include_adult": "false",
			"page":          "2",
		},
		httpmock.NewStringResponder(http.StatusOK, `{"page":2,"results":[{"id":348,"title":"Alien"}]}`))

	body, err := newTestClient(t).SearchMovies(context.Background(), "alien", 2)

	require.NoError(t, err)
	assert.JSONEq(t, `{"page":2,"results":[{"id":348,"title":"Alien"}]}`, string(body))
	assert.Equal(t, 1, httpmock.GetTotalCallCount())
}

func TestClient_MovieDetails(t *testing.T) {
	setupHTTPMock(t)

	httpmock.RegisterResponderWithQuery(http.MethodGet, testBaseURL+"/movie/550",
		map[string]string{"api_key": "test-key"},
		httpmock.NewStringResponder(http.StatusOK, `{"id":550,"title":"Fight Club"}`))

	body, err := newTestClient(t).MovieDetails(context.Background(), "550")

	require.NoError(t, err)
	assert.JSONEq(t, `{"id":550,"title":"Fight Club"}`, string(body))
}

func TestClient_UpstreamErrorStatus(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		body       string
		wantBody   any
	}{
		{
			name:       "json_body",
			statusCode: http.StatusUnauthorized,
			body:       `{"status_code":7,"status_message":"Invalid API key"}`,
			wantBody:   map[string]any{"status_code": float64(7), "status_message": "Invalid API key"},
		},
		{
			name:       "text_body",
			statusCode: http.StatusServiceUnavailable,
			body:       "maintenance",
			wantBody:   "maintenance",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupHTTPMock(t)
			httpmock.RegisterResponder(http.MethodGet, testBaseURL+"/movie/1",
				httpmock.NewStringResponder(tt.statusCode, tt.body))

			body, err := newTestClient(t).MovieDetails(context.Background(), "1")

			require.Error(t, err)
			assert.Nil(t, body)

			var upstream *utils.UpstreamError
			require.True(t, errors.As(err, &upstream))
			assert.Equal(t, tt.statusCode, upstream.Status)
			assert.Equal(t, tt.wantBody, upstream.Body)
		})
	}
}

func TestClient_TransportErrorIsRedacted(t *testing.T) {
	setupHTTPMock(t)
	httpmock.RegisterResponder(http.MethodGet, testBaseURL+"/movie/1",
		httpmock.NewErrorResponder(errors.New("connection refused")))

	core, logs := observer.New(zap.DebugLevel)
	client := NewClient(utils.TMDBConfig{APIKey: "test-key", BaseURL: testBaseURL}, zap.New(core))

	_, err := client.MovieDetails(context.Background(), "1")

	var upstream *utils.UpstreamError
	require.True(t, errors.As(err, &upstream))
	assert.Equal(t, 0, upstream.Status)
	assert.NotContains(t, upstream.Body, "test-key")
	assert.Contains(t, upstream.Body, "connection refused")
	assert.NotContains(t, err.Error(), "test-key")
	assert.Contains(t, err.Error(), "api_key=REDACTED")

	entries := logs.FilterMessage("TMDb request failed").All()
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].ContextMap()["error"], "REDACTED")
	for _, entry := range logs.All() {
		for key, value := range entry.ContextMap() {
			assert.NotContains(t, fmt.Sprint(value), "test-key", "log field %q", key)
		}
	}
}

func TestClient_InvalidJSON(t *testing.T) {
	setupHTTPMock(t)
	httpmock.RegisterResponder(http.MethodGet, testBaseURL+"/movie/1",
		httpmock.NewStringResponder(http.StatusOK, `{invalid json`))

	_, err := newTestClient(t).MovieDetails(context.Background(), "1")

	var upstream *utils.UpstreamError
	require.True(t, errors.As(err, &upstream))
	assert.Equal(t, http.StatusOK, upstream.Status)
}
