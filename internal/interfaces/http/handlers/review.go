// internal/interfaces/http/handlers/review.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/your-org/artstore-backend/internal/config"
	"github.com/your-org/artstore-backend/internal/domain/product"
	"github.com/your-org/artstore-backend/internal/interfaces/http/middleware"
	"github.com/your-org/artstore-backend/internal/pkg/apperr"
	"gorm.io/gorm"
)

// ReviewHandler handles product review endpoints
type ReviewHandler struct {
	reviewService *product.ReviewService
	config        *config.Config
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(db *gorm.DB, cfg *config.Config) *ReviewHandler {
	return &ReviewHandler{
		reviewService: product.NewReviewService(db, cfg),
		config:        cfg,
	}
}

// ListReviews handles GET /products/:id/reviews
func (h *ReviewHandler) ListReviews(c *gin.Context) {
	productID, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	reviews, err := h.reviewService.ListReviews(c.Request.Context(), productID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, "Reviews retrieved successfully", reviews)
}

// SubmitReview handles POST /products/:id/reviews
func (h *ReviewHandler) SubmitReview(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondError(c, apperr.Validation("authentication required"))
		return
	}

	productID, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	var req product.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	review, err := h.reviewService.SubmitReview(c.Request.Context(), userID, productID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondCreated(c, "Review submitted successfully", review)
}
