package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/w3lalitsaini/anti-movies/session"
	"github.com/w3lalitsaini/anti-movies/web/middleware"
)

// sessionFromCtx extracts the session placed in the gin context by the
// RequireSession middleware. Nil on public routes.
func sessionFromCtx(c *gin.Context) *session.Session {
	raw, _ := c.Get(middleware.ContextKeySession)
	s, _ := raw.(*session.Session)
	return s
}
