package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"movie-review/internal/dto/request"
	"movie-review/internal/dto/response"
)

// SearchMovies returns the catalog's search page as received.
func (c *Client) SearchMovies(ctx context.Context, query string, page int) (json.RawMessage, error) {
	q := pagination(page)
	q.Set("query", query)

	var out json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/tmdb/search", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) MovieDetails(ctx context.Context, id string) (json.RawMessage, error) {
	var out json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/tmdb/movie/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) MovieReviews(ctx context.Context, movieID string) ([]response.ReviewResponse, error) {
	var out []response.ReviewResponse
	if err := c.do(ctx, http.MethodGet, "/api/reviews/movie/"+url.PathEscape(movieID), nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) MyReviews(ctx context.Context, opts ...CallOption) ([]response.ReviewResponse, error) {
	var out []response.ReviewResponse
	if err := c.do(ctx, http.MethodGet, "/api/my-reviews", nil, nil, &out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateReview(ctx context.Context, review request.CreateReviewRequest, opts ...CallOption) (*response.ReviewResponse, error) {
	var out response.ReviewResponse
	if err := c.do(ctx, http.MethodPost, "/api/reviews", nil, review, &out, opts...); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateReview sends only the non-nil fields of update.
func (c *Client) UpdateReview(ctx context.Context, reviewID string, update request.UpdateReviewRequest, opts ...CallOption) (*response.ReviewResponse, error) {
	var out response.ReviewResponse
	if err := c.do(ctx, http.MethodPut, "/api/reviews/"+url.PathEscape(reviewID), nil, update, &out, opts...); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteReview(ctx context.Context, reviewID string, opts ...CallOption) error {
	return c.do(ctx, http.MethodDelete, "/api/reviews/"+url.PathEscape(reviewID), nil, nil, nil, opts...)
}

// Posts lists the newest posts; limit <= 0 uses the server default.
func (c *Client) Posts(ctx context.Context, limit int) ([]response.PostResponse, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	var out []response.PostResponse
	if err := c.do(ctx, http.MethodGet, "/api/posts", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Post(ctx context.Context, postID string) (*response.PostResponse, error) {
	var out response.PostResponse
	if err := c.do(ctx, http.MethodGet, "/api/posts/"+url.PathEscape(postID), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreatePost(ctx context.Context, post request.CreatePostRequest, opts ...CallOption) (*response.PostResponse, error) {
	var out response.PostResponse
	if err := c.do(ctx, http.MethodPost, "/api/posts", nil, post, &out, opts...); err != nil {
		return nil, err
	}
	return &out, nil
}
