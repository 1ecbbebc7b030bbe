package upstream

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/w3lalitsaini/anti-movies/config"
)

const (
	// Default interval between health checks.
	defaultHealthInterval = 30 * time.Second
	// Timeout for a single health-check ping.
	healthCheckTimeout = 5 * time.Second
	// healthCheckPath is a cheap public read used as the reachability probe.
	healthCheckPath = "/movies/trending"
)

// Status is a snapshot of the upstream's availability for the readiness probe.
type Status struct {
	Available    bool      `json:"available"`
	LastChecked  time.Time `json:"last_checked"`
	LastError    string    `json:"last_error,omitempty"`
	FailureCount int       `json:"failure_count"`
}

// Monitor periodically pings the upstream and keeps an in-memory
// availability flag. The gateway's readiness probe consults it so container
// orchestrators (and the UI's offline banner) see upstream outages without
// issuing real catalog traffic.
type Monitor struct {
	baseURL  string
	interval time.Duration
	http     *http.Client

	mu           sync.RWMutex
	available    bool
	lastChecked  time.Time
	lastErr      string
	failureCount int

	cancel context.CancelFunc
	done   chan struct{}
}

// NewMonitor creates a monitor for cfg.APIBaseURL. Call Start to begin
// background checking.
func NewMonitor(cfg config.Config) *Monitor {
	interval := cfg.HealthCheckInterval
	if interval <= 0 {
		interval = defaultHealthInterval
	}
	return &Monitor{
		baseURL:   cfg.APIBaseURL,
		interval:  interval,
		http:      &http.Client{Timeout: healthCheckTimeout},
		available: true, // assume reachable until the first check says otherwise
		done:      make(chan struct{}),
	}
}

// Start begins the background check loop. It runs an immediate check on
// startup, then repeats at the configured interval. Safe to call once.
func (m *Monitor) Start(ctx context.Context) {
	ctx, m.cancel = context.WithCancel(ctx)

	go func() {
		defer close(m.done)

		m.check(ctx)

		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.check(ctx)
			}
		}
	}()
}

// Stop signals the check loop to stop and waits for it to finish.
func (m *Monitor) Stop() {
	if m.cancel != nil {
		m.cancel()
	}
	<-m.done
}

// Available reports whether the upstream is currently considered reachable.
func (m *Monitor) Available() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.available
}

// Status returns a snapshot for the readiness endpoint.
func (m *Monitor) Status() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return Status{
		Available:    m.available,
		LastChecked:  m.lastChecked,
		LastError:    m.lastErr,
		FailureCount: m.failureCount,
	}
}

func (m *Monitor) check(ctx context.Context) {
	reqCtx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, m.baseURL+healthCheckPath, nil)
	if err != nil {
		m.record(fmt.Errorf("bad url: %w", err))
		return
	}

	resp, err := m.http.Do(req)
	if err != nil {
		m.record(err)
		return
	}
	_ = resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 400 {
		m.record(nil)
	} else {
		m.record(fmt.Errorf("status %d", resp.StatusCode))
	}
}

// record updates the availability state. The upstream is marked unavailable
// after 2 consecutive failures and available again on the first success, so
// a single dropped packet doesn't flap the readiness probe.
func (m *Monitor) record(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lastChecked = time.Now()

	if err == nil {
		if !m.available {
			slog.Info("upstream came back online", "url", m.baseURL)
		}
		m.available = true
		m.failureCount = 0
		m.lastErr = ""
		return
	}

	m.failureCount++
	m.lastErr = err.Error()

	if m.failureCount >= 2 && m.available {
		slog.Warn("upstream marked unavailable",
			"url", m.baseURL, "failures", m.failureCount, "error", err)
		m.available = false
	}
}
