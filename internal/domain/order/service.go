// internal/domain/order/service.go
package order

import (
	"context"
	"errors"
	"time"

	"github.com/your-org/artstore-backend/internal/config"
	"github.com/your-org/artstore-backend/internal/domain/cart"
	"github.com/your-org/artstore-backend/internal/domain/product"
	"github.com/your-org/artstore-backend/internal/pkg/apperr"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Service handles checkout and order business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new order service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// CreateRequest represents checkout data
type CreateRequest struct {
	ShippingAddress ShippingAddress `json:"shipping_address" binding:"required"`
	PaymentMethod   string          `json:"payment_method" binding:"required"`
}

// ListRequest represents order list query parameters
type ListRequest struct {
	Page   int    `form:"page,default=1"`
	Limit  int    `form:"limit,default=20"`
	UserID uint   `form:"user_id"`
	Paid   *bool  `form:"paid"`
	Sort   string `form:"sort,default=newest"`
}

// ListResponse represents order listing with pagination
type ListResponse struct {
	Orders     []Order    `json:"orders"`
	Pagination Pagination `json:"pagination"`
}

// Pagination represents pagination information
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

// CreateOrder converts the user's cart into an order in one transaction:
// the cart row and every product row are locked, stock is re-validated and
// decremented, the snapshot is written, and the cart is cleared. Any
// failure rolls the whole thing back.
func (s *Service) CreateOrder(ctx context.Context, userID uint, req *CreateRequest) (*Order, error) {
	if err := req.ShippingAddress.Validate(); err != nil {
		return nil, apperr.Validation("%s", err.Error())
	}
	if !s.isKnownPaymentMethod(req.PaymentMethod) {
		return nil, apperr.Validation("unknown payment method %q", req.PaymentMethod)
	}

	var created Order

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var c cart.Cart
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ?", userID).
			First(&c).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.Validation("cart is empty")
		}
		if err != nil {
			return apperr.Upstream(err, "failed to lock cart")
		}

		var items []cart.Item
		if err := tx.Where("cart_id = ?", c.ID).Order("id ASC").Find(&items).Error; err != nil {
			return apperr.Upstream(err, "failed to load cart items")
		}
		if len(items) == 0 {
			return apperr.Validation("cart is empty")
		}

		// Re-validate stock under product row locks and decrement it
		for _, item := range items {
			var prod product.Product
			err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("id = ?", item.ProductID).
				First(&prod).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("product %q is no longer available", item.Name)
			}
			if err != nil {
				return apperr.Upstream(err, "failed to lock product")
			}

			if item.Quantity > prod.Stock {
				return apperr.OutOfStock("not enough stock for %q: requested %d, available %d", item.Name, item.Quantity, prod.Stock)
			}

			err = tx.Model(&product.Product{}).
				Where("id = ?", prod.ID).
				Update("stock", gorm.Expr("stock - ?", item.Quantity)).Error
			if err != nil {
				return apperr.Upstream(err, "failed to decrement stock")
			}
		}

		created = Order{
			OrderNumber:     NewOrderNumber(time.Now().UTC()),
			UserID:          userID,
			PaymentMethod:   req.PaymentMethod,
			ItemsCents:      c.ItemsCents,
			TaxCents:        c.TaxCents,
			ShippingCents:   c.ShippingCents,
			TotalCents:      c.TotalCents,
			ShippingAddress: req.ShippingAddress,
		}
		if err := tx.Create(&created).Error; err != nil {
			return apperr.Upstream(err, "failed to create order")
		}

		for _, item := range items {
			orderItem := Item{
				OrderID:        created.ID,
				ProductID:      item.ProductID,
				Name:           item.Name,
				Slug:           item.Slug,
				Image:          item.Image,
				UnitPriceCents: item.UnitPriceCents,
				Quantity:       item.Quantity,
				TotalCents:     item.UnitPriceCents * int64(item.Quantity),
			}
			if err := tx.Create(&orderItem).Error; err != nil {
				return apperr.Upstream(err, "failed to create order item")
			}
			created.Items = append(created.Items, orderItem)
		}

		// Clear the cart; the empty row is kept
		if err := tx.Where("cart_id = ?", c.ID).Delete(&cart.Item{}).Error; err != nil {
			return apperr.Upstream(err, "failed to clear cart")
		}
		err = tx.Model(&c).Updates(map[string]interface{}{
			"items_cents":    0,
			"tax_cents":      0,
			"shipping_cents": 0,
			"total_cents":    0,
		}).Error
		if err != nil {
			return apperr.Upstream(err, "failed to reset cart totals")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &created, nil
}

// GetOrder retrieves a single order by id.
func (s *Service) GetOrder(ctx context.Context, id uint) (*Order, error) {
	var o Order
	err := s.db.WithContext(ctx).
		Preload("Items").
		Where("id = ?", id).
		First(&o).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("order not found")
		}
		return nil, apperr.Upstream(err, "failed to retrieve order")
	}
	return &o, nil
}

// ListOrders retrieves orders with filtering and pagination.
func (s *Service) ListOrders(ctx context.Context, req *ListRequest) (*ListResponse, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 || req.Limit > 100 {
		req.Limit = 20
	}

	query := s.db.WithContext(ctx).Model(&Order{}).Preload("Items")

	if req.UserID > 0 {
		query = query.Where("user_id = ?", req.UserID)
	}
	if req.Paid != nil {
		query = query.Where("is_paid = ?", *req.Paid)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, apperr.Upstream(err, "failed to count orders")
	}

	var orders []Order
	offset := (req.Page - 1) * req.Limit
	err := query.Order("created_at DESC, id ASC").
		Offset(offset).
		Limit(req.Limit).
		Find(&orders).Error
	if err != nil {
		return nil, apperr.Upstream(err, "failed to retrieve orders")
	}

	totalPages := int((total + int64(req.Limit) - 1) / int64(req.Limit))
	return &ListResponse{
		Orders: orders,
		Pagination: Pagination{
			Page:       req.Page,
			Limit:      req.Limit,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    req.Page < totalPages,
			HasPrev:    req.Page > 1,
		},
	}, nil
}

// RecordPaymentResult stores a provider confirmation and marks the order
// paid. A repeat of the same provider transaction is an idempotent success;
// a different transaction against a paid order is a conflict.
func (s *Service) RecordPaymentResult(ctx context.Context, orderID uint, result PaymentResult) (*Order, error) {
	var o Order

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Preload("Items").
			Where("id = ?", orderID).
			First(&o).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("order not found")
		}
		if err != nil {
			return apperr.Upstream(err, "failed to lock order")
		}

		if o.IsPaid {
			if o.PaymentResult.TransactionID == result.TransactionID {
				return nil // duplicate confirmation, nothing to do
			}
			return apperr.Conflict("order %s is already paid", o.OrderNumber)
		}

		now := time.Now().UTC()
		result.RecordedAt = &now

		updates := map[string]interface{}{
			"payment_provider":       result.Provider,
			"payment_transaction_id": result.TransactionID,
			"payment_status":         result.Status,
			"payment_payer_email":    result.PayerEmail,
			"payment_recorded_at":    result.RecordedAt,
		}
		if result.Status == "COMPLETED" || result.Status == "succeeded" || result.Status == "paid" {
			updates["is_paid"] = true
			updates["paid_at"] = now
			o.IsPaid = true
			o.PaidAt = &now
		}

		if err := tx.Model(&o).Updates(updates).Error; err != nil {
			return apperr.Upstream(err, "failed to record payment result")
		}
		o.PaymentResult = result
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &o, nil
}

// MarkDelivered sets the delivered flag on a paid order. Admin only; the
// route layer enforces role.
func (s *Service) MarkDelivered(ctx context.Context, orderID uint) (*Order, error) {
	var o Order

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Preload("Items").
			Where("id = ?", orderID).
			First(&o).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("order not found")
		}
		if err != nil {
			return apperr.Upstream(err, "failed to lock order")
		}

		if !o.IsPaid {
			return apperr.Conflict("order %s is not paid", o.OrderNumber)
		}
		if o.IsDelivered {
			return nil // already delivered, idempotent
		}

		now := time.Now().UTC()
		err = tx.Model(&o).Updates(map[string]interface{}{
			"is_delivered": true,
			"delivered_at": now,
		}).Error
		if err != nil {
			return apperr.Upstream(err, "failed to mark order delivered")
		}
		o.IsDelivered = true
		o.DeliveredAt = &now
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &o, nil
}

func (s *Service) isKnownPaymentMethod(method string) bool {
	for _, m := range s.config.Payment.Methods {
		if m == method {
			return true
		}
	}
	return false
}
