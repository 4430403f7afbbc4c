// internal/interfaces/http/handlers/order.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/your-org/artstore-backend/internal/config"
	"github.com/your-org/artstore-backend/internal/domain/order"
	"github.com/your-org/artstore-backend/internal/interfaces/http/middleware"
	"github.com/your-org/artstore-backend/internal/pkg/apperr"
	"gorm.io/gorm"
)

// OrderHandler handles checkout and order endpoints
type OrderHandler struct {
	orderService *order.Service
	config       *config.Config
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(db *gorm.DB, cfg *config.Config) *OrderHandler {
	return &OrderHandler{
		orderService: order.NewService(db, cfg),
		config:       cfg,
	}
}

// Checkout handles POST /orders. The user's cart becomes an order and is
// emptied on success.
func (h *OrderHandler) Checkout(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondError(c, apperr.Validation("authentication required"))
		return
	}

	var req order.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	created, err := h.orderService.CreateOrder(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondCreated(c, "Order placed successfully", created)
}

// ListMyOrders handles GET /orders
func (h *OrderHandler) ListMyOrders(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondError(c, apperr.Validation("authentication required"))
		return
	}

	var req order.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondBindError(c, err)
		return
	}
	req.UserID = userID

	result, err := h.orderService.ListOrders(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, "Orders retrieved successfully", result)
}

// GetOrder handles GET /orders/:id. Owners see their own orders; admins
// see any order.
func (h *OrderHandler) GetOrder(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondError(c, apperr.Validation("authentication required"))
		return
	}

	orderID, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	o, err := h.orderService.GetOrder(c.Request.Context(), orderID)
	if err != nil {
		respondError(c, err)
		return
	}

	if o.UserID != userID && !middleware.IsAdminFromContext(c) {
		respondError(c, apperr.NotFound("order not found"))
		return
	}

	respondOK(c, "Order retrieved successfully", o)
}

// AdminListOrders handles GET /admin/orders
func (h *OrderHandler) AdminListOrders(c *gin.Context) {
	var req order.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.orderService.ListOrders(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, "Orders retrieved successfully", result)
}

// AdminMarkDelivered handles PUT /admin/orders/:id/deliver
func (h *OrderHandler) AdminMarkDelivered(c *gin.Context) {
	orderID, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	o, err := h.orderService.MarkDelivered(c.Request.Context(), orderID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, "Order marked as delivered", o)
}
