// internal/interfaces/http/handlers/invoice.go
package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/artstore-backend/internal/config"
	"github.com/your-org/artstore-backend/internal/domain/order"
	"github.com/your-org/artstore-backend/internal/interfaces/http/middleware"
	"github.com/your-org/artstore-backend/internal/pkg/apperr"
	"github.com/your-org/artstore-backend/internal/pkg/pdf"
	"gorm.io/gorm"
)

// InvoiceHandler handles order invoice downloads
type InvoiceHandler struct {
	orderService *order.Service
	pdfService   *pdf.Service
	config       *config.Config
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(db *gorm.DB, cfg *config.Config) *InvoiceHandler {
	return &InvoiceHandler{
		orderService: order.NewService(db, cfg),
		pdfService:   pdf.NewService(cfg),
		config:       cfg,
	}
}

// DownloadInvoice handles GET /orders/:id/invoice. The invoice is only
// available once the order is paid.
func (h *InvoiceHandler) DownloadInvoice(c *gin.Context) {
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

	if !o.IsPaid {
		respondError(c, apperr.Conflict("invoice is available after payment"))
		return
	}

	buf, err := h.pdfService.GenerateInvoice(o)
	if err != nil {
		respondError(c, apperr.Upstream(err, "failed to generate invoice"))
		return
	}

	filename := fmt.Sprintf("invoice-%s.pdf", o.OrderNumber)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
