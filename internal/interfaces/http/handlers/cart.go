// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/your-org/artstore-backend/internal/config"
	"github.com/your-org/artstore-backend/internal/domain/cart"
	"github.com/your-org/artstore-backend/internal/interfaces/http/middleware"
	"github.com/your-org/artstore-backend/internal/pkg/apperr"
	"gorm.io/gorm"
)

// CartHandler handles cart endpoints for both guests and signed-in users
type CartHandler struct {
	cartService *cart.Service
	config      *config.Config
}

// NewCartHandler creates a new cart handler
func NewCartHandler(db *gorm.DB, redisClient *redis.Client, cfg *config.Config) *CartHandler {
	return &CartHandler{
		cartService: cart.NewService(db, redisClient, cfg),
		config:      cfg,
	}
}

// GetCart handles GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	owner := h.cartOwner(c)

	cartResponse, err := h.cartService.GetCart(c.Request.Context(), owner)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, "Cart retrieved successfully", cartResponse)
}

// AddToCart handles POST /cart/items
func (h *CartHandler) AddToCart(c *gin.Context) {
	owner := h.cartOwner(c)

	var req cart.AddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	cartResponse, err := h.cartService.AddItem(c.Request.Context(), owner, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, "Item added to cart successfully", cartResponse)
}

// RemoveFromCart handles DELETE /cart/items/:id. One unit of the product
// is removed per call; the line disappears when its quantity hits zero.
func (h *CartHandler) RemoveFromCart(c *gin.Context) {
	owner := h.cartOwner(c)

	productID, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	cartResponse, err := h.cartService.RemoveItem(c.Request.Context(), owner, productID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, "Item removed from cart successfully", cartResponse)
}

// ClearCart handles DELETE /cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	owner := h.cartOwner(c)

	if err := h.cartService.ClearCart(c.Request.Context(), owner); err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, "Cart cleared successfully", nil)
}

// GetCartCount handles GET /cart/count
func (h *CartHandler) GetCartCount(c *gin.Context) {
	owner := h.cartOwner(c)

	count, err := h.cartService.ItemCount(c.Request.Context(), owner)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, "Cart count retrieved successfully", gin.H{"count": count})
}

// MergeGuestCart handles POST /cart/merge - called after login so the
// guest session cart folds into the user's cart
func (h *CartHandler) MergeGuestCart(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondError(c, apperr.Validation("authentication required"))
		return
	}

	sessionID := h.getOrCreateSessionID(c)

	cartResponse, err := h.cartService.MergeGuestCart(c.Request.Context(), userID, sessionID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, "Guest cart merged successfully", cartResponse)
}

// cartOwner resolves the cart owner for this request: the signed-in user
// when present, the session cookie otherwise
func (h *CartHandler) cartOwner(c *gin.Context) cart.Owner {
	if userID, ok := middleware.GetUserIDFromContext(c); ok {
		return cart.UserOwner(userID)
	}
	return cart.SessionOwner(h.getOrCreateSessionID(c))
}

// getOrCreateSessionID gets session ID from cookie or creates a new one
func (h *CartHandler) getOrCreateSessionID(c *gin.Context) string {
	sessionID, err := c.Cookie("session_id")
	if err != nil || sessionID == "" {
		sessionID = uuid.New().String()

		// Set session cookie (24 hours)
		c.SetCookie("session_id", sessionID, 86400, "/", "", false, true)
	}

	return sessionID
}
