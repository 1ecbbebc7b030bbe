package handler

import (
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/w3lalitsaini/anti-movies/model"
	"github.com/w3lalitsaini/anti-movies/upstream"
)

// AdminHandler serves the admin console: catalog CRUD, image uploads, and
// user management. Every route sits behind RequireSession + AdminOnly; the
// upstream additionally enforces the admin role on its side.
type AdminHandler struct {
	client *upstream.Client
}

func NewAdminHandler(client *upstream.Client) *AdminHandler {
	return &AdminHandler{client: client}
}

// CreateMovie handles POST /api/admin/movies with a full catalog document.
func (h *AdminHandler) CreateMovie(c *gin.Context) {
	var m model.Movie
	if err := c.ShouldBindJSON(&m); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if m.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
		return
	}

	created, err := h.client.CreateMovie(c.Request.Context(), m)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateMovie handles PUT /api/admin/movies/:id. Full-document replacement,
// matching the upstream's contract.
func (h *AdminHandler) UpdateMovie(c *gin.Context) {
	var m model.Movie
	if err := c.ShouldBindJSON(&m); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.client.UpdateMovie(c.Request.Context(), c.Param("id"), m)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteMovie handles DELETE /api/admin/movies/:id.
func (h *AdminHandler) DeleteMovie(c *gin.Context) {
	if err := h.client.DeleteMovie(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UploadImage handles POST /api/admin/upload/image (single file, field
// "image") and responds with the hosted URL.
func (h *AdminHandler) UploadImage(c *gin.Context) {
	fh, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}

	file, err := readUpload(fh)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	uploadedURL, err := h.client.UploadImage(c.Request.Context(), file)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": uploadedURL})
}

// UploadImages handles POST /api/admin/upload/images (field "images",
// repeated) and responds with the hosted URLs in upload order.
func (h *AdminHandler) UploadImages(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil || len(form.File["images"]) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "at least one image file is required"})
		return
	}

	files := make([]upstream.ImageFile, 0, len(form.File["images"]))
	for _, fh := range form.File["images"] {
		file, err := readUpload(fh)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		files = append(files, file)
	}

	urls, err := h.client.UploadImages(c.Request.Context(), files)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"urls": urls})
}

// Stats handles GET /api/admin/stats.
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.client.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// ListUsers handles GET /api/admin/users.
func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.client.ListUsers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// DeleteUser handles DELETE /api/admin/users/:id. The upstream refuses to
// delete the caller's own admin account; that error passes through as-is.
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	if err := h.client.DeleteUser(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func readUpload(fh *multipart.FileHeader) (upstream.ImageFile, error) {
	f, err := fh.Open()
	if err != nil {
		return upstream.ImageFile{}, err
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(f)
	if err != nil {
		return upstream.ImageFile{}, err
	}
	return upstream.ImageFile{Name: fh.Filename, Data: data}, nil
}
