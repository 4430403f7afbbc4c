// internal/interfaces/http/handlers/payment.go
package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/artstore-backend/internal/config"
	"github.com/your-org/artstore-backend/internal/domain/order"
	"github.com/your-org/artstore-backend/internal/domain/payment"
	"github.com/your-org/artstore-backend/internal/interfaces/http/middleware"
	"github.com/your-org/artstore-backend/internal/pkg/apperr"
	"gorm.io/gorm"
)

// Stripe recommends capping webhook payloads
const maxWebhookBytes = int64(65536)

// PaymentHandler handles payment confirmation endpoints
type PaymentHandler struct {
	paymentService *payment.Service
	config         *config.Config
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(db *gorm.DB, cfg *config.Config, log *logrus.Logger) *PaymentHandler {
	orderService := order.NewService(db, cfg)
	return &PaymentHandler{
		paymentService: payment.NewService(orderService, cfg, log),
		config:         cfg,
	}
}

// StripeWebhook handles POST /webhooks/stripe
func (h *PaymentHandler) StripeWebhook(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxWebhookBytes)

	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		respondError(c, apperr.Validation("failed to read webhook payload"))
		return
	}

	sigHeader := c.GetHeader("Stripe-Signature")
	if err := h.paymentService.HandleStripeEvent(c.Request.Context(), payload, sigHeader); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusOK)
}

// CapturePayPal handles POST /orders/:id/paypal-capture
func (h *PaymentHandler) CapturePayPal(c *gin.Context) {
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

	var req payment.PayPalCaptureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	o, err := h.paymentService.RecordPayPalCapture(c.Request.Context(), userID, orderID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, "Payment recorded successfully", o)
}

// AdminMarkPaid handles PUT /admin/orders/:id/pay for cash on delivery
// settlements
func (h *PaymentHandler) AdminMarkPaid(c *gin.Context) {
	orderID, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	o, err := h.paymentService.MarkCashOnDeliveryPaid(c.Request.Context(), orderID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, "Order marked as paid", o)
}
