package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/w3lalitsaini/anti-movies/upstream"
)

// ReviewHandler serves movie reviews: reading is public, posting requires a
// session. One review per (user, movie) pair is enforced upstream.
type ReviewHandler struct {
	client *upstream.Client
}

func NewReviewHandler(client *upstream.Client) *ReviewHandler {
	return &ReviewHandler{client: client}
}

// List handles GET /api/reviews/:id (movie ID, matching the upstream key).
func (h *ReviewHandler) List(c *gin.Context) {
	reviews, err := h.client.Reviews(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}

type postReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

// Post handles POST /api/reviews/:id.
func (h *ReviewHandler) Post(c *gin.Context) {
	var req postReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "rating must be an integer between 1 and 5"})
		return
	}

	review, err := h.client.PostReview(c.Request.Context(), c.Param("id"), req.Rating, req.Comment)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, review)
}
