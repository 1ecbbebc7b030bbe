package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/w3lalitsaini/anti-movies/authz"
	"github.com/w3lalitsaini/anti-movies/model"
	"github.com/w3lalitsaini/anti-movies/upstream"
)

// CollectionsHandler serves the per-user views: profile, favorites and
// watchlist. The gateway keeps no authoritative copy of either collection —
// every page load reflects the upstream's snapshot, and a toggle response
// tells the UI only which way it may optimistically flip.
type CollectionsHandler struct {
	client *upstream.Client
}

func NewCollectionsHandler(client *upstream.Client) *CollectionsHandler {
	return &CollectionsHandler{client: client}
}

// Profile handles GET /api/profile.
func (h *CollectionsHandler) Profile(c *gin.Context) {
	user, err := h.client.Profile(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// Favorites handles GET /api/favorites.
func (h *CollectionsHandler) Favorites(c *gin.Context) {
	movies, err := h.client.Favorites(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, movies)
}

// ToggleFavorite handles POST /api/favorites/:id. The response reports the
// membership state the toggle produced, computed against the pre-toggle
// snapshot, so the UI can flip its button without a refetch.
func (h *CollectionsHandler) ToggleFavorite(c *gin.Context) {
	h.toggle(c, h.client.Favorites, h.client.ToggleFavorite, "favorited")
}

// Watchlist handles GET /api/watchlist.
func (h *CollectionsHandler) Watchlist(c *gin.Context) {
	movies, err := h.client.Watchlist(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, movies)
}

// ToggleWatchlist handles POST /api/watchlist/:id.
func (h *CollectionsHandler) ToggleWatchlist(c *gin.Context) {
	h.toggle(c, h.client.Watchlist, h.client.ToggleWatchlist, "inWatchlist")
}

func (h *CollectionsHandler) toggle(
	c *gin.Context,
	snapshot func(context.Context) ([]model.Movie, error),
	flip func(context.Context, string) error,
	field string,
) {
	movieID := c.Param("id")
	ctx := c.Request.Context()

	// Pre-toggle membership decides what the flip produced. The upstream's
	// toggle has no idempotency contract; rapid double calls can still race
	// (documented), and the next page load reconciles.
	before, err := snapshot(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	wasMember := authz.IsFavorited(movieID, before)

	if err := flip(ctx, movieID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{field: !wasMember})
}
