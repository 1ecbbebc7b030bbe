package upstream

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/w3lalitsaini/anti-movies/model"
)

// ListParams are the catalog query knobs. Zero values are omitted from the
// query string.
type ListParams struct {
	Page   int
	Limit  int
	Genre  string
	Sort   string
	Search string
}

func (p ListParams) values() url.Values {
	q := url.Values{}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Genre != "" {
		q.Set("genre", p.Genre)
	}
	if p.Sort != "" {
		q.Set("sort", p.Sort)
	}
	if p.Search != "" {
		q.Set("search", p.Search)
	}
	return q
}

// Movies returns one page of the catalog, filtered and sorted per params.
func (c *Client) Movies(ctx context.Context, p ListParams) (model.MoviePage, error) {
	key := "movies?" + p.values().Encode()
	if hit, ok := c.cache.get(key); ok {
		return hit.(model.MoviePage), nil
	}

	var page model.MoviePage
	if err := c.doJSON(ctx, http.MethodGet, "/movies", p.values(), nil, &page); err != nil {
		return model.MoviePage{}, err
	}
	c.cache.set(key, page)
	return page, nil
}

// Movie returns the full detail document for one catalog entry by slug.
func (c *Client) Movie(ctx context.Context, slug string) (model.Movie, error) {
	key := "movie/" + slug
	if hit, ok := c.cache.get(key); ok {
		return hit.(model.Movie), nil
	}

	var m model.Movie
	if err := c.doJSON(ctx, http.MethodGet, "/movies/"+url.PathEscape(slug), nil, nil, &m); err != nil {
		return model.Movie{}, err
	}
	c.cache.set(key, m)
	return m, nil
}

// Trending returns the movies the upstream currently flags as trending.
func (c *Client) Trending(ctx context.Context) ([]model.Movie, error) {
	if hit, ok := c.cache.get("trending"); ok {
		return hit.([]model.Movie), nil
	}

	var movies []model.Movie
	if err := c.doJSON(ctx, http.MethodGet, "/movies/trending", nil, nil, &movies); err != nil {
		return nil, err
	}
	c.cache.set("trending", movies)
	return movies, nil
}

// Recommendations returns similar movies for the given slug.
func (c *Client) Recommendations(ctx context.Context, slug string) ([]model.Movie, error) {
	var movies []model.Movie
	err := c.doJSON(ctx, http.MethodGet, "/movies/"+url.PathEscape(slug)+"/recommendations", nil, nil, &movies)
	return movies, err
}

// CreateMovie submits a new catalog document. Admin token required.
func (c *Client) CreateMovie(ctx context.Context, m model.Movie) (model.Movie, error) {
	var created model.Movie
	if err := c.doJSON(ctx, http.MethodPost, "/movies", nil, m, &created); err != nil {
		return model.Movie{}, err
	}
	c.cache.flush()
	return created, nil
}

// UpdateMovie replaces the catalog document with the given ID. Admin token
// required; the upstream expects the full document, not a patch.
func (c *Client) UpdateMovie(ctx context.Context, id string, m model.Movie) (model.Movie, error) {
	var updated model.Movie
	if err := c.doJSON(ctx, http.MethodPut, "/movies/"+url.PathEscape(id), nil, m, &updated); err != nil {
		return model.Movie{}, err
	}
	c.cache.flush()
	return updated, nil
}

// DeleteMovie removes a catalog document. Admin token required.
func (c *Client) DeleteMovie(ctx context.Context, id string) error {
	if err := c.doJSON(ctx, http.MethodDelete, "/movies/"+url.PathEscape(id), nil, nil, nil); err != nil {
		return err
	}
	c.cache.flush()
	return nil
}
