// Package web is the gateway's HTTP surface: the JSON routes the browser UI
// talks to, the session gates in front of them, and the websocket channel
// that keeps open tabs in sync with the session store.
package web

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/w3lalitsaini/anti-movies/config"
	"github.com/w3lalitsaini/anti-movies/session"
	"github.com/w3lalitsaini/anti-movies/static"
	"github.com/w3lalitsaini/anti-movies/upstream"
	"github.com/w3lalitsaini/anti-movies/web/handler"
	"github.com/w3lalitsaini/anti-movies/web/middleware"
)

// corsMiddleware returns a gin-contrib/cors middleware for the configured
// origins. The gateway normally serves the UI itself (same origin); the
// origin list exists for development servers and split deployments.
func corsMiddleware(cfg config.Config) gin.HandlerFunc {
	allowed := make(map[string]bool, len(cfg.CORSOrigins))
	for _, o := range cfg.CORSOrigins {
		allowed[strings.ToLower(o)] = true
	}

	return cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			return allowed[strings.ToLower(origin)]
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Content-Length", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	})
}

// NewRouter builds the gateway's http.Handler and returns it along with a
// stop function for the login limiter's background goroutine.
func NewRouter(cfg config.Config, store *session.Store, client *upstream.Client, monitor *upstream.Monitor, wsHub *handler.WSHub) (http.Handler, func()) {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID())
	if len(cfg.CORSOrigins) > 0 {
		r.Use(corsMiddleware(cfg))
	}

	loginMW, onFail, onSuccess, stopLimiter := middleware.LoginRateLimiter(cfg)

	sessionH := handler.NewSessionHandler(store, client, onFail, onSuccess)
	catalogH := handler.NewCatalogHandler(client)
	collectionsH := handler.NewCollectionsHandler(client)
	reviewH := handler.NewReviewHandler(client)
	adminH := handler.NewAdminHandler(client)

	api := r.Group("/api")

	// --- Session lifecycle ---
	api.POST("/session/login", loginMW, sessionH.Login)
	api.POST("/session/register", sessionH.Register)
	api.POST("/session/logout", sessionH.Logout)
	api.GET("/session", sessionH.Current)

	// --- Public catalog (readable without a session) ---
	api.GET("/movies", catalogH.List)
	api.GET("/movies/trending", catalogH.Trending)
	api.GET("/movies/:slug", catalogH.Detail)
	api.GET("/movies/:slug/recommendations", catalogH.Recommendations)
	api.GET("/reviews/:id", reviewH.List)

	// --- Protected (gated before any upstream call is issued) ---
	priv := api.Group("")
	priv.Use(middleware.RequireSession(store))
	{
		priv.GET("/profile", collectionsH.Profile)
		priv.GET("/favorites", collectionsH.Favorites)
		priv.POST("/favorites/:id", collectionsH.ToggleFavorite)
		priv.GET("/watchlist", collectionsH.Watchlist)
		priv.POST("/watchlist/:id", collectionsH.ToggleWatchlist)
		priv.POST("/reviews/:id", reviewH.Post)
	}

	// --- Admin console ---
	admin := api.Group("/admin")
	admin.Use(middleware.RequireSession(store), middleware.AdminOnly())
	{
		admin.POST("/movies", adminH.CreateMovie)
		admin.PUT("/movies/:id", adminH.UpdateMovie)
		admin.DELETE("/movies/:id", adminH.DeleteMovie)

		admin.POST("/upload/image", adminH.UploadImage)
		admin.POST("/upload/images", adminH.UploadImages)

		admin.GET("/stats", adminH.Stats)
		admin.GET("/users", adminH.ListUsers)
		admin.DELETE("/users/:id", adminH.DeleteUser)
	}

	// WebSocket — session transitions pushed to every open tab.
	r.GET("/ws", handler.WebSocketHandler(wsHub))

	// Health probes — liveness is unconditional, readiness reflects the
	// upstream monitor so orchestrators see API outages.
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/readyz", func(c *gin.Context) {
		status := monitor.Status()
		code := http.StatusOK
		if !status.Available {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, status)
	})

	// Anything else is the app shell: unknown API routes get JSON, deep
	// links into the SPA get the shell so client-side routing can resolve.
	r.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.JSON(http.StatusNotFound, gin.H{"error": "endpoint not found"})
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(static.AppShell))
	})

	return r, stopLimiter
}
