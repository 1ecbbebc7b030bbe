package upstream

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/w3lalitsaini/anti-movies/model"
)

// Reviews returns all reviews for a movie, newest first per the upstream.
func (c *Client) Reviews(ctx context.Context, movieID string) ([]model.Review, error) {
	var reviews []model.Review
	err := c.doJSON(ctx, http.MethodGet, "/reviews/"+url.PathEscape(movieID), nil, nil, &reviews)
	return reviews, err
}

// PostReview submits the caller's star rating and comment for a movie.
// The upstream keeps one review per (user, movie) pair — posting again
// replaces the previous one. Rating must be a 1–5 integer; that is checked
// here so an out-of-range value never leaves the client.
func (c *Client) PostReview(ctx context.Context, movieID string, rating int, comment string) (model.Review, error) {
	if rating < 1 || rating > 5 {
		return model.Review{}, fmt.Errorf("upstream: rating must be between 1 and 5, got %d", rating)
	}

	var review model.Review
	err := c.doJSON(ctx, http.MethodPost, "/reviews/"+url.PathEscape(movieID), nil, map[string]any{
		"rating":  rating,
		"comment": comment,
	}, &review)
	return review, err
}
