package upstream

import (
	"context"
	"net/http"
	"net/url"

	"github.com/w3lalitsaini/anti-movies/model"
)

// Stats returns the admin dashboard summary: catalog and user totals plus
// the genre distribution.
func (c *Client) Stats(ctx context.Context) (model.Stats, error) {
	var stats model.Stats
	err := c.doJSON(ctx, http.MethodGet, "/admin/stats", nil, nil, &stats)
	return stats, err
}

// ListUsers returns every account known to the upstream. Admin token required.
func (c *Client) ListUsers(ctx context.Context) ([]model.User, error) {
	var users []model.User
	err := c.doJSON(ctx, http.MethodGet, "/admin/users", nil, nil, &users)
	return users, err
}

// DeleteUser removes an account. Admin token required.
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/admin/users/"+url.PathEscape(id), nil, nil, nil)
}
