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

var _ = Describe("review endpoints", func() {
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
	})

	It("lists reviews for a movie", func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			Expect(r.URL.Path).To(Equal("/reviews/m1"))
			_ = json.NewEncoder(w).Encode([]model.Review{
				{ID: "r2", Rating: 4}, {ID: "r1", Rating: 5},
			})
		}))
		defer srv.Close()

		client, _ := newTestClient(srv.URL, 0)

		reviews, err := client.Reviews(ctx, "m1")
		Expect(err).NotTo(HaveOccurred())
		Expect(reviews).To(HaveLen(2))
		Expect(reviews[0].ID).To(Equal("r2"))
	})

	It("posts rating and comment under the movie path", func() {
		var body map[string]any
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			Expect(r.Method).To(Equal(http.MethodPost))
			Expect(r.URL.Path).To(Equal("/reviews/m1"))
			Expect(json.NewDecoder(r.Body).Decode(&body)).To(Succeed())
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(model.Review{ID: "r1", Rating: 4, Comment: "solid"})
		}))
		defer srv.Close()

		client, store := newTestClient(srv.URL, 0)
		loginAs(store, session.RoleMember)

		review, err := client.PostReview(ctx, "m1", 4, "solid")
		Expect(err).NotTo(HaveOccurred())
		Expect(review.ID).To(Equal("r1"))
		Expect(body).To(HaveKeyWithValue("rating", BeNumerically("==", 4)))
		Expect(body).To(HaveKeyWithValue("comment", "solid"))
	})

	DescribeTable("rejects out-of-range ratings without a request",
		func(rating int) {
			srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
				Fail("no request expected")
			}))
			defer srv.Close()

			client, _ := newTestClient(srv.URL, 0)

			_, err := client.PostReview(ctx, "m1", rating, "nope")
			Expect(err).To(MatchError(ContainSubstring("between 1 and 5")))
		},
		Entry("zero", 0),
		Entry("negative", -1),
		Entry("six", 6),
	)
})
