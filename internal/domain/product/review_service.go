// internal/domain/product/review_service.go
package product

import (
	"context"
	"errors"

	"github.com/your-org/artstore-backend/internal/config"
	"github.com/your-org/artstore-backend/internal/pkg/apperr"
	"gorm.io/gorm"
)

// ReviewService handles product reviews and the rating aggregate
type ReviewService struct {
	db     *gorm.DB
	config *config.Config
}

// NewReviewService creates a new review service
func NewReviewService(db *gorm.DB, cfg *config.Config) *ReviewService {
	return &ReviewService{
		db:     db,
		config: cfg,
	}
}

// ReviewRequest represents review submission data
type ReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Title   string `json:"title"`
	Comment string `json:"comment"`
}

// SubmitReview creates or replaces the user's review for a product and
// recomputes the product's rating aggregate in the same transaction.
func (s *ReviewService) SubmitReview(ctx context.Context, userID, productID uint, req *ReviewRequest) (*Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, apperr.Validation("rating must be between 1 and 5")
	}

	var review Review

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var product Product
		if err := tx.Where("id = ?", productID).First(&product).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("product not found")
			}
			return apperr.Upstream(err, "failed to find product")
		}

		err := tx.Where("product_id = ? AND user_id = ?", productID, userID).First(&review).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			review = Review{
				ProductID: productID,
				UserID:    userID,
				Rating:    req.Rating,
				Title:     req.Title,
				Comment:   req.Comment,
			}
			if err := tx.Create(&review).Error; err != nil {
				return apperr.Upstream(err, "failed to create review")
			}
		case err != nil:
			return apperr.Upstream(err, "failed to find review")
		default:
			review.Rating = req.Rating
			review.Title = req.Title
			review.Comment = req.Comment
			if err := tx.Save(&review).Error; err != nil {
				return apperr.Upstream(err, "failed to update review")
			}
		}

		return s.recomputeAggregate(tx, productID)
	})
	if err != nil {
		return nil, err
	}

	return &review, nil
}

// ListReviews returns all reviews for a product, newest first.
func (s *ReviewService) ListReviews(ctx context.Context, productID uint) ([]Review, error) {
	var reviews []Review
	err := s.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at DESC, id ASC").
		Find(&reviews).Error
	if err != nil {
		return nil, apperr.Upstream(err, "failed to retrieve reviews")
	}
	return reviews, nil
}

// recomputeAggregate refreshes rating and num_reviews from the review rows.
func (s *ReviewService) recomputeAggregate(tx *gorm.DB, productID uint) error {
	var agg struct {
		Avg   float64
		Count int64
	}
	err := tx.Model(&Review{}).
		Select("COALESCE(AVG(rating), 0) AS avg, COUNT(*) AS count").
		Where("product_id = ?", productID).
		Scan(&agg).Error
	if err != nil {
		return apperr.Upstream(err, "failed to aggregate reviews")
	}

	err = tx.Model(&Product{}).
		Where("id = ?", productID).
		Updates(map[string]interface{}{
			"rating":      agg.Avg,
			"num_reviews": agg.Count,
		}).Error
	if err != nil {
		return apperr.Upstream(err, "failed to update rating aggregate")
	}
	return nil
}
