package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/w3lalitsaini/anti-movies/session"
	"github.com/w3lalitsaini/anti-movies/upstream"
	"github.com/w3lalitsaini/anti-movies/web/middleware"
)

// respondError maps the upstream error taxonomy onto one response shape so
// every call site surfaces feedback the same way — nothing is swallowed.
//
//   - Unauthorized: the session store is already Anonymous; the body carries
//     the login redirect hint for the UI.
//   - APIError: the upstream's own status and message pass through.
//   - NetworkUnavailable: 502 flagged retryable so the UI offers "retry"
//     rather than "fix your input".
//   - context.Canceled: the browser navigated away mid-request; the result
//     has no destination, so the handler just stops.
func respondError(c *gin.Context, err error) {
	var apiErr *upstream.APIError

	switch {
	case errors.Is(err, context.Canceled):
		c.Abort()
	case errors.Is(err, upstream.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":    "Session expired, please log in again",
			"redirect": middleware.LoginPath,
		})
	case errors.As(err, &apiErr):
		c.JSON(apiErr.StatusCode, gin.H{"error": apiErr.Message})
	case errors.Is(err, upstream.ErrNetworkUnavailable):
		c.JSON(http.StatusBadGateway, gin.H{
			"error":     "Movie service is unreachable",
			"retryable": true,
		})
	case errors.Is(err, session.ErrInvalidPayload):
		c.JSON(http.StatusBadGateway, gin.H{
			"error": "Movie service returned an invalid login response",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
	}
}
