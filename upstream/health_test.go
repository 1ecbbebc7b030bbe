package upstream_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/w3lalitsaini/anti-movies/config"
	"github.com/w3lalitsaini/anti-movies/upstream"
)

var _ = Describe("Monitor", func() {
	var (
		status  atomic.Int32
		srv     *httptest.Server
		monitor *upstream.Monitor
	)

	BeforeEach(func() {
		status.Store(http.StatusOK)
		srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(int(status.Load()))
		}))
		monitor = upstream.NewMonitor(config.Config{
			APIBaseURL:          srv.URL,
			HealthCheckInterval: 10 * time.Millisecond,
		})
	})

	AfterEach(func() {
		monitor.Stop()
		srv.Close()
	})

	It("stays available while the upstream answers", func() {
		monitor.Start(context.Background())

		Consistently(monitor.Available, 100*time.Millisecond).Should(BeTrue())
		Eventually(func() time.Time { return monitor.Status().LastChecked }).ShouldNot(BeZero())
	})

	It("trips only after two consecutive failures", func() {
		status.Store(http.StatusBadGateway)
		monitor.Start(context.Background())

		Eventually(func() int { return monitor.Status().FailureCount }).Should(BeNumerically(">=", 1))
		Eventually(monitor.Available).Should(BeFalse())
		Expect(monitor.Status().FailureCount).To(BeNumerically(">=", 2))
		Expect(monitor.Status().LastError).To(ContainSubstring("status 502"))
	})

	It("recovers on the first success", func() {
		status.Store(http.StatusBadGateway)
		monitor.Start(context.Background())
		Eventually(monitor.Available).Should(BeFalse())

		status.Store(http.StatusOK)
		Eventually(monitor.Available).Should(BeTrue())
		Expect(monitor.Status().FailureCount).To(BeZero())
		Expect(monitor.Status().LastError).To(BeEmpty())
	})
})
