package upstream_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/w3lalitsaini/anti-movies/session"
	"github.com/w3lalitsaini/anti-movies/upstream"
)

// pngBytes is a minimal valid PNG: signature plus an empty IHDR-less body is
// enough for content sniffing.
var pngBytes = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0}

var _ = Describe("upload endpoints", func() {
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
	})

	It("uploads one image as multipart form data and returns the hosted URL", func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			Expect(r.URL.Path).To(Equal("/upload/image"))
			Expect(r.Header.Get("Content-Type")).To(HavePrefix("multipart/form-data"))

			Expect(r.ParseMultipartForm(1 << 20)).To(Succeed())
			files := r.MultipartForm.File["image"]
			Expect(files).To(HaveLen(1))
			Expect(files[0].Filename).To(Equal("poster.png"))
			Expect(files[0].Header.Get("Content-Type")).To(Equal("image/png"))

			_ = json.NewEncoder(w).Encode(map[string]string{"url": "https://cdn.example.com/poster.png"})
		}))
		defer srv.Close()

		client, store := newTestClient(srv.URL, 0)
		loginAs(store, session.RoleAdmin)

		url, err := client.UploadImage(ctx, upstream.ImageFile{Name: "poster.png", Data: pngBytes})
		Expect(err).NotTo(HaveOccurred())
		Expect(url).To(Equal("https://cdn.example.com/poster.png"))
	})

	It("uploads several images under one field and returns URLs in order", func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			Expect(r.URL.Path).To(Equal("/upload/images"))
			Expect(r.ParseMultipartForm(1 << 20)).To(Succeed())
			Expect(r.MultipartForm.File["images"]).To(HaveLen(2))
			_ = json.NewEncoder(w).Encode(map[string][]string{
				"urls": {"https://cdn.example.com/a.png", "https://cdn.example.com/b.png"},
			})
		}))
		defer srv.Close()

		client, store := newTestClient(srv.URL, 0)
		loginAs(store, session.RoleAdmin)

		urls, err := client.UploadImages(ctx, []upstream.ImageFile{
			{Name: "a.png", Data: pngBytes},
			{Name: "b.png", Data: pngBytes},
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(urls).To(HaveLen(2))
	})

	It("rejects non-image bytes before dispatching", func() {
		srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			Fail("no request expected")
		}))
		defer srv.Close()

		client, store := newTestClient(srv.URL, 0)
		loginAs(store, session.RoleAdmin)

		_, err := client.UploadImage(ctx, upstream.ImageFile{
			Name: "notes.txt",
			Data: []byte("just some text"),
		})
		Expect(err).To(MatchError(ContainSubstring("not an image")))
	})

	It("rejects empty and oversized files", func() {
		client, _ := newTestClient("http://127.0.0.1:0", 0)

		_, err := client.UploadImage(ctx, upstream.ImageFile{Name: "empty.png"})
		Expect(err).To(MatchError(ContainSubstring("is empty")))

		big := append(append([]byte{}, pngBytes...), strings.Repeat("x", 10<<20)...)
		_, err = client.UploadImage(ctx, upstream.ImageFile{Name: "big.png", Data: big})
		Expect(err).To(MatchError(ContainSubstring("exceeds")))
	})
})
