package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/w3lalitsaini/anti-movies/session"
	"github.com/w3lalitsaini/anti-movies/upstream"
)

// SessionHandler drives the session store: it exchanges credentials with
// the upstream, commits the resulting payload into the store, and tears the
// session down on logout. All auth state flows through the store — the
// handler itself keeps nothing.
type SessionHandler struct {
	store          *session.Store
	client         *upstream.Client
	onLoginFail    func(string)
	onLoginSuccess func(string)
}

func NewSessionHandler(store *session.Store, client *upstream.Client, onFail, onSuccess func(string)) *SessionHandler {
	return &SessionHandler{
		store:          store,
		client:         client,
		onLoginFail:    onFail,
		onLoginSuccess: onSuccess,
	}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type registerRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// sessionBody is what the UI sees of a session: identity claims only.
// The bearer token stays inside the gateway.
func sessionBody(s *session.Session) gin.H {
	return gin.H{
		"userId":   s.UserID,
		"username": s.Username,
		"role":     s.Role,
	}
}

// Login handles POST /api/session/login.
// A 401 from the upstream means bad credentials here, not an expired token —
// the store was Anonymous to begin with, so the generic redirect body would
// mislead; it is translated to a credentials message instead.
func (h *SessionHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ip := c.ClientIP()

	payload, err := h.client.Login(c.Request.Context(), req.Email, req.Password)
	if errors.Is(err, upstream.ErrUnauthorized) {
		h.onLoginFail(ip)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}
	if err != nil {
		h.onLoginFail(ip)
		respondError(c, err)
		return
	}

	if err := h.store.Login(payload); err != nil {
		// Upstream answered 200 with a partial payload — locally fatal to
		// this login attempt, never silently ignored.
		h.onLoginFail(ip)
		respondError(c, err)
		return
	}

	h.onLoginSuccess(ip)
	c.JSON(http.StatusOK, sessionBody(&payload))
}

// Register handles POST /api/session/register. A successful registration
// logs the new user in, same as the original flow.
func (h *SessionHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	payload, err := h.client.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.store.Login(payload); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, sessionBody(&payload))
}

// Logout handles POST /api/session/logout. Idempotent — logging out while
// Anonymous is still a 204.
func (h *SessionHandler) Logout(c *gin.Context) {
	h.store.Logout()
	c.Status(http.StatusNoContent)
}

// Current handles GET /api/session. The UI calls this once at startup to
// restore nav state from the persisted session.
func (h *SessionHandler) Current(c *gin.Context) {
	s := h.store.Current()
	if s == nil {
		c.JSON(http.StatusOK, gin.H{"authenticated": false})
		return
	}
	body := sessionBody(s)
	body["authenticated"] = true
	c.JSON(http.StatusOK, body)
}
