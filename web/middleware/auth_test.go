package middleware_test

import (
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/w3lalitsaini/anti-movies/session"
	"github.com/w3lalitsaini/anti-movies/web/middleware"
)

var _ = Describe("session gates", func() {
	var (
		store *session.Store
		hits  int
	)

	newRouter := func(handlers ...gin.HandlerFunc) *gin.Engine {
		r := gin.New()
		chain := append(handlers, func(c *gin.Context) {
			hits++
			c.Status(http.StatusOK)
		})
		r.GET("/probe", chain...)
		return r
	}

	get := func(r *gin.Engine) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		r.ServeHTTP(w, req)
		return w
	}

	BeforeEach(func() {
		storage, err := session.NewFileStorage(GinkgoT().TempDir())
		Expect(err).NotTo(HaveOccurred())
		store = session.NewStore(storage)
		hits = 0
	})

	Describe("RequireSession", func() {
		It("rejects anonymous requests before the handler runs", func() {
			r := newRouter(middleware.RequireSession(store))

			w := get(r)
			Expect(w.Code).To(Equal(http.StatusUnauthorized))
			Expect(w.Body.String()).To(ContainSubstring(`"redirect":"/login"`))
			Expect(hits).To(BeZero())
		})

		It("passes authenticated requests through with the session in context", func() {
			Expect(store.Login(session.Session{
				Token: "t", UserID: "u1", Username: "alice", Role: session.RoleMember,
			})).To(Succeed())

			var seen *session.Session
			r := newRouter(middleware.RequireSession(store), func(c *gin.Context) {
				raw, _ := c.Get(middleware.ContextKeySession)
				seen, _ = raw.(*session.Session)
			})

			w := get(r)
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(hits).To(Equal(1))
			Expect(seen).NotTo(BeNil())
			Expect(seen.Username).To(Equal("alice"))
		})
	})

	Describe("AdminOnly", func() {
		It("forbids members explicitly", func() {
			Expect(store.Login(session.Session{
				Token: "t", UserID: "u1", Username: "alice", Role: session.RoleMember,
			})).To(Succeed())

			r := newRouter(middleware.RequireSession(store), middleware.AdminOnly())

			w := get(r)
			Expect(w.Code).To(Equal(http.StatusForbidden))
			Expect(w.Body.String()).To(ContainSubstring("Admin access required"))
			Expect(hits).To(BeZero())
		})

		It("admits admins", func() {
			Expect(store.Login(session.Session{
				Token: "t", UserID: "u1", Username: "root", Role: session.RoleAdmin,
			})).To(Succeed())

			r := newRouter(middleware.RequireSession(store), middleware.AdminOnly())

			Expect(get(r).Code).To(Equal(http.StatusOK))
			Expect(hits).To(Equal(1))
		})

		It("treats a missing session as unauthenticated, not forbidden", func() {
			r := newRouter(middleware.AdminOnly())

			Expect(get(r).Code).To(Equal(http.StatusUnauthorized))
		})
	})
})
