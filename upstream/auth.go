package upstream

import (
	"context"
	"net/http"
	"net/url"

	"github.com/w3lalitsaini/anti-movies/model"
	"github.com/w3lalitsaini/anti-movies/session"
)

// Login exchanges credentials for a session payload. The returned payload is
// not validated here — handing it to the session store is the caller's job,
// and the store rejects anything partial.
func (c *Client) Login(ctx context.Context, email, password string) (session.Session, error) {
	var s session.Session
	err := c.doJSON(ctx, http.MethodPost, "/auth/login", nil, map[string]string{
		"email":    email,
		"password": password,
	}, &s)
	return s, err
}

// Register creates an account and returns the same session payload shape as
// Login — registration logs the new user in.
func (c *Client) Register(ctx context.Context, username, email, password string) (session.Session, error) {
	var s session.Session
	err := c.doJSON(ctx, http.MethodPost, "/auth/register", nil, map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	}, &s)
	return s, err
}

// Profile returns the authenticated user with embedded favorites and
// watchlist snapshots.
func (c *Client) Profile(ctx context.Context) (model.User, error) {
	var u model.User
	err := c.doJSON(ctx, http.MethodGet, "/auth/profile", nil, nil, &u)
	return u, err
}

// Favorites returns the user's current favorites snapshot.
func (c *Client) Favorites(ctx context.Context) ([]model.Movie, error) {
	var movies []model.Movie
	err := c.doJSON(ctx, http.MethodGet, "/auth/favorites", nil, nil, &movies)
	return movies, err
}

// ToggleFavorite flips the movie's membership in the user's favorites:
// added when absent, removed when present. The upstream defines no
// idempotency contract for the toggle, so two rapid identical calls may
// land as add+remove; the gateway does not de-duplicate — membership
// reconciles on the next snapshot fetch.
func (c *Client) ToggleFavorite(ctx context.Context, movieID string) error {
	return c.doJSON(ctx, http.MethodPost, "/auth/favorites/"+url.PathEscape(movieID), nil, nil, nil)
}

// Watchlist returns the user's current watchlist snapshot.
func (c *Client) Watchlist(ctx context.Context) ([]model.Movie, error) {
	var movies []model.Movie
	err := c.doJSON(ctx, http.MethodGet, "/auth/watchlist", nil, nil, &movies)
	return movies, err
}

// ToggleWatchlist flips the movie's membership in the user's watchlist.
// Same toggle semantics and caveats as ToggleFavorite.
func (c *Client) ToggleWatchlist(ctx context.Context, movieID string) error {
	return c.doJSON(ctx, http.MethodPost, "/auth/watchlist/"+url.PathEscape(movieID), nil, nil, nil)
}
