package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/w3lalitsaini/anti-movies/upstream"
)

// defaultPageSize matches the home page's grid size.
const defaultPageSize = 12

// CatalogHandler serves the public browse/search/detail surface. All of it
// is readable without a session; requests are forwarded with whatever
// credentials the store currently holds.
type CatalogHandler struct {
	client *upstream.Client
}

func NewCatalogHandler(client *upstream.Client) *CatalogHandler {
	return &CatalogHandler{client: client}
}

// List handles GET /api/movies with page/limit/genre/sort/search.
func (h *CatalogHandler) List(c *gin.Context) {
	params := upstream.ListParams{
		Page:   intQuery(c, "page", 1),
		Limit:  intQuery(c, "limit", defaultPageSize),
		Genre:  c.Query("genre"),
		Sort:   c.Query("sort"),
		Search: c.Query("search"),
	}

	page, err := h.client.Movies(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// Trending handles GET /api/movies/trending.
func (h *CatalogHandler) Trending(c *gin.Context) {
	movies, err := h.client.Trending(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, movies)
}

// Detail handles GET /api/movies/:slug — the full document with cast,
// screenshots, FAQs and affiliate links.
func (h *CatalogHandler) Detail(c *gin.Context) {
	movie, err := h.client.Movie(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, movie)
}

// Recommendations handles GET /api/movies/:slug/recommendations.
func (h *CatalogHandler) Recommendations(c *gin.Context) {
	movies, err := h.client.Recommendations(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, movies)
}

func intQuery(c *gin.Context, key string, def int) int {
	raw := c.Query(key)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return def
	}
	return n
}
