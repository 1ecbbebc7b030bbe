package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/w3lalitsaini/anti-movies/authz"
	"github.com/w3lalitsaini/anti-movies/session"
)

const (
	// ContextKeySession is the gin context key holding the *session.Session.
	ContextKeySession = "session"
	// LoginPath is where the UI sends the user when a gate rejects them.
	LoginPath = "/login"
)

// RequireSession rejects requests while the session store is Anonymous.
// The gate runs BEFORE any upstream call so a protected view never issues a
// request just to throw the result away; the client's logout-on-401 path
// remains the fallback for tokens that expire mid-session.
//
// The 401 body carries a redirect hint for the UI; the gateway itself never
// forces navigation.
func RequireSession(store *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		s := store.Current()
		if !authz.CanAccessProtectedPage(s) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":    "Login required",
				"redirect": LoginPath,
			})
			return
		}
		c.Set(ContextKeySession, s)
		c.Next()
	}
}

// AdminOnly rejects requests from non-admin sessions with an explicit
// forbidden — never a silent no-op.
// Must be placed after RequireSession in the chain.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, exists := c.Get(ContextKeySession)
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Login required", "redirect": LoginPath})
			return
		}
		s, ok := raw.(*session.Session)
		if !ok || !authz.CanAccessAdminPage(s) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		c.Next()
	}
}
