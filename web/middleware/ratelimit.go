package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/w3lalitsaini/anti-movies/config"
)

// failureState tracks failed login attempts from a single IP.
type failureState struct {
	count        int
	windowEnd    time.Time
	blockedUntil time.Time
}

// loginThrottle blocks an IP after too many failed logins inside a sliding
// window. Only failures count — the gateway never throttles a user who
// types their password right.
type loginThrottle struct {
	mu       sync.Mutex
	failures map[string]*failureState
	cfg      config.Config
	stop     chan struct{}
}

func newLoginThrottle(cfg config.Config) *loginThrottle {
	t := &loginThrottle{
		failures: make(map[string]*failureState),
		cfg:      cfg,
		stop:     make(chan struct{}),
	}
	go t.sweep()
	return t
}

// sweep drops expired entries so the map does not grow with every IP that
// ever mistyped a password.
func (t *loginThrottle) sweep() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-t.stop:
			return
		case <-ticker.C:
			now := time.Now()
			t.mu.Lock()
			for ip, st := range t.failures {
				if now.After(st.blockedUntil) && now.After(st.windowEnd) {
					delete(t.failures, ip)
				}
			}
			t.mu.Unlock()
		}
	}
}

func (t *loginThrottle) blocked(ip string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	st, ok := t.failures[ip]
	return ok && time.Now().Before(st.blockedUntil)
}

func (t *loginThrottle) failure(ip string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := time.Now()
	st, ok := t.failures[ip]
	if !ok || now.After(st.windowEnd) {
		t.failures[ip] = &failureState{count: 1, windowEnd: now.Add(t.cfg.LoginWindow)}
		return
	}

	st.count++
	if st.count >= t.cfg.LoginMaxAttempts {
		st.blockedUntil = now.Add(t.cfg.LoginBanDuration)
	}
}

func (t *loginThrottle) success(ip string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.failures, ip)
}

// LoginRateLimiter returns the middleware guarding the login route plus an
// onFailure/onSuccess pair for the session handler to report outcomes, and
// a stop function for the sweep goroutine. LOGIN_MAX_ATTEMPTS <= 0 disables
// throttling entirely.
func LoginRateLimiter(cfg config.Config) (gin.HandlerFunc, func(string), func(string), func()) {
	throttle := newLoginThrottle(cfg)

	mw := func(c *gin.Context) {
		if cfg.LoginMaxAttempts <= 0 {
			c.Next()
			return
		}
		if throttle.blocked(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Too many failed login attempts. Please try again later.",
			})
			return
		}
		c.Next()
	}

	return mw, throttle.failure, throttle.success, func() { close(throttle.stop) }
}
