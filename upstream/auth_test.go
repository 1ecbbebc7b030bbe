package upstream_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/w3lalitsaini/anti-movies/model"
	"github.com/w3lalitsaini/anti-movies/session"
)

var _ = Describe("auth endpoints", func() {
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
	})

	Describe("Login", func() {
		It("posts the credentials and decodes the session payload", func() {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				Expect(r.Method).To(Equal(http.MethodPost))
				Expect(r.URL.Path).To(Equal("/auth/login"))
				Expect(r.Header.Get("Authorization")).To(BeEmpty())

				var body map[string]string
				Expect(json.NewDecoder(r.Body).Decode(&body)).To(Succeed())
				Expect(body).To(Equal(map[string]string{
					"email":    "alice@example.com",
					"password": "hunter2",
				}))

				_ = json.NewEncoder(w).Encode(session.Session{
					Token: "tok-9", UserID: "u9", Username: "alice", Role: session.RoleMember,
				})
			}))
			defer srv.Close()

			client, _ := newTestClient(srv.URL, 0)

			s, err := client.Login(ctx, "alice@example.com", "hunter2")
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Token).To(Equal("tok-9"))
			Expect(s.Username).To(Equal("alice"))
		})

		It("returns a partial payload untouched for the store to reject", func() {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				_ = json.NewEncoder(w).Encode(map[string]string{"token": "tok-9"})
			}))
			defer srv.Close()

			client, _ := newTestClient(srv.URL, 0)

			s, err := client.Login(ctx, "alice@example.com", "hunter2")
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Validate()).To(MatchError(session.ErrInvalidPayload))
		})
	})

	Describe("Register", func() {
		It("posts username, email and password", func() {
			var body map[string]string
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				Expect(r.URL.Path).To(Equal("/auth/register"))
				Expect(json.NewDecoder(r.Body).Decode(&body)).To(Succeed())
				_ = json.NewEncoder(w).Encode(session.Session{
					Token: "tok-9", UserID: "u9", Username: "bob", Role: session.RoleMember,
				})
			}))
			defer srv.Close()

			client, _ := newTestClient(srv.URL, 0)

			_, err := client.Register(ctx, "bob", "bob@example.com", "hunter2")
			Expect(err).NotTo(HaveOccurred())
			Expect(body).To(HaveKeyWithValue("username", "bob"))
			Expect(body).To(HaveKeyWithValue("email", "bob@example.com"))
		})
	})

	Describe("Profile", func() {
		It("decodes the embedded favorites and watchlist snapshots", func() {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				Expect(r.URL.Path).To(Equal("/auth/profile"))
				Expect(r.Header.Get("Authorization")).To(Equal("Bearer tok-1"))
				_ = json.NewEncoder(w).Encode(model.User{
					ID: "u1", Username: "alice",
					Favorites: []model.Movie{{ID: "m1"}},
					Watchlist: []model.Movie{{ID: "m2"}, {ID: "m3"}},
				})
			}))
			defer srv.Close()

			client, store := newTestClient(srv.URL, 0)
			loginAs(store, session.RoleMember)

			u, err := client.Profile(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(u.Favorites).To(HaveLen(1))
			Expect(u.Watchlist).To(HaveLen(2))
		})
	})

	Describe("collection toggles", func() {
		It("posts to the per-movie toggle paths", func() {
			var paths []string
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				Expect(r.Method).To(Equal(http.MethodPost))
				paths = append(paths, r.URL.Path)
				w.WriteHeader(http.StatusOK)
				_, _ = w.Write([]byte(`{}`))
			}))
			defer srv.Close()

			client, store := newTestClient(srv.URL, 0)
			loginAs(store, session.RoleMember)

			Expect(client.ToggleFavorite(ctx, "m1")).To(Succeed())
			Expect(client.ToggleWatchlist(ctx, "m2")).To(Succeed())
			Expect(paths).To(Equal([]string{"/auth/favorites/m1", "/auth/watchlist/m2"}))
		})
	})
})
