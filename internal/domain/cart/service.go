// internal/domain/cart/service.go
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"hash/fnv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/your-org/artstore-backend/internal/config"
	"github.com/your-org/artstore-backend/internal/domain/pricing"
	"github.com/your-org/artstore-backend/internal/domain/product"
	"github.com/your-org/artstore-backend/internal/pkg/apperr"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Guest cart mirrors expire with the session cookie.
const sessionCartTTL = 24 * time.Hour

// Service handles cart business logic. Every mutation runs as a single
// transaction with the cart row locked, so concurrent requests for the same
// cart serialize instead of losing updates.
type Service struct {
	db          *gorm.DB
	redisClient *redis.Client
	config      *config.Config
	policy      pricing.Policy
}

// NewService creates a new cart service
func NewService(db *gorm.DB, redisClient *redis.Client, cfg *config.Config) *Service {
	return &Service{
		db:          db,
		redisClient: redisClient,
		config:      cfg,
		policy:      pricing.NewFlatRate(cfg),
	}
}

// AddRequest represents add-to-cart request data
type AddRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity"`
}

// GetCart returns the owner's cart. A missing cart reads as an empty one.
// Guest carts are served from the Redis mirror when it is warm.
func (s *Service) GetCart(ctx context.Context, owner Owner) (*Cart, error) {
	if !owner.IsValid() {
		return nil, apperr.Validation("cart owner identity required")
	}

	if owner.SessionID != "" {
		if cached := s.readMirror(ctx, owner.SessionID); cached != nil {
			return cached, nil
		}
	}

	var c Cart
	err := s.ownerScope(s.db.WithContext(ctx), owner).Preload("Items").First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		empty := &Cart{UserID: owner.UserID, SessionID: owner.SessionID, Items: []Item{}}
		return empty, nil
	}
	if err != nil {
		return nil, apperr.Upstream(err, "failed to retrieve cart")
	}

	if owner.SessionID != "" {
		s.writeMirror(ctx, owner.SessionID, &c)
	}
	return &c, nil
}

// AddItem adds quantity units of a product to the owner's cart, creating the
// cart lazily. Lines for the same product merge; exceeding stock fails with
// an out-of-stock error and leaves the cart unchanged.
func (s *Service) AddItem(ctx context.Context, owner Owner, req *AddRequest) (*Cart, error) {
	if !owner.IsValid() {
		return nil, apperr.Validation("cart owner identity required")
	}

	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}
	if quantity < 1 {
		return nil, apperr.Validation("quantity must be at least 1")
	}

	var result *Cart
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var prod product.Product
		err := tx.Preload("Images").Where("id = ?", req.ProductID).First(&prod).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("product not found")
		}
		if err != nil {
			return apperr.Upstream(err, "failed to find product")
		}

		c, err := s.lockOrCreateCart(tx, owner)
		if err != nil {
			return err
		}

		snapshot := Item{
			CartID:         c.ID,
			ProductID:      prod.ID,
			Name:           prod.Name,
			Slug:           prod.Slug,
			Image:          prod.PrimaryImage(),
			UnitPriceCents: prod.PriceCents,
		}

		items, err := reconcileAdd(c.Items, snapshot, quantity, prod.Stock)
		if err != nil {
			return err
		}

		if err := s.replaceItems(tx, c, items); err != nil {
			return err
		}
		result = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.refreshMirror(ctx, owner, result)
	return result, nil
}

// RemoveItem decrements a product's line by one unit, deleting the line at
// quantity one. The cart row is kept even when it empties. Removing from an
// absent cart or an absent line is a no-op success.
func (s *Service) RemoveItem(ctx context.Context, owner Owner, productID uint) (*Cart, error) {
	if !owner.IsValid() {
		return nil, apperr.Validation("cart owner identity required")
	}

	var result *Cart
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		c, err := s.lockCart(tx, owner)
		if err != nil {
			return err
		}
		if c == nil {
			result = &Cart{UserID: owner.UserID, SessionID: owner.SessionID, Items: []Item{}}
			return nil
		}

		items, changed := reconcileRemove(c.Items, productID)
		if !changed {
			result = c
			return nil
		}

		if err := s.replaceItems(tx, c, items); err != nil {
			return err
		}
		result = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.refreshMirror(ctx, owner, result)
	return result, nil
}

// ClearCart removes every line and zeroes the totals. The cart row survives.
func (s *Service) ClearCart(ctx context.Context, owner Owner) error {
	if !owner.IsValid() {
		return apperr.Validation("cart owner identity required")
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		c, err := s.lockCart(tx, owner)
		if err != nil || c == nil {
			return err
		}
		return s.replaceItems(tx, c, nil)
	})
	if err != nil {
		return err
	}

	if owner.SessionID != "" {
		s.dropMirror(ctx, owner.SessionID)
	}
	return nil
}

// MergeGuestCart folds a guest session cart into the user's cart on login.
// Lines merge per product and quantities are clamped to current stock; the
// guest cart is deleted afterwards.
func (s *Service) MergeGuestCart(ctx context.Context, userID uint, sessionID string) (*Cart, error) {
	if sessionID == "" {
		return s.GetCart(ctx, UserOwner(userID))
	}

	var result *Cart
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		guest, err := s.lockCart(tx, SessionOwner(sessionID))
		if err != nil {
			return err
		}

		c, err := s.lockOrCreateCart(tx, UserOwner(userID))
		if err != nil {
			return err
		}

		if guest == nil || len(guest.Items) == 0 {
			result = c
			return nil
		}

		items := c.Items
		for _, guestItem := range guest.Items {
			var prod product.Product
			if err := tx.Where("id = ?", guestItem.ProductID).First(&prod).Error; err != nil {
				continue // product gone since the guest added it
			}

			quantity := clampMergeQuantity(items, guestItem.ProductID, guestItem.Quantity, prod.Stock)
			if quantity == 0 {
				continue
			}

			guestItem.ID = 0
			guestItem.CartID = c.ID
			items, err = reconcileAdd(items, guestItem, quantity, prod.Stock)
			if err != nil {
				return err
			}
		}

		if err := s.replaceItems(tx, c, items); err != nil {
			return err
		}

		if err := tx.Where("cart_id = ?", guest.ID).Delete(&Item{}).Error; err != nil {
			return apperr.Upstream(err, "failed to delete guest cart items")
		}
		if err := tx.Delete(&Cart{}, guest.ID).Error; err != nil {
			return apperr.Upstream(err, "failed to delete guest cart")
		}

		result = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.dropMirror(ctx, sessionID)
	return result, nil
}

// ItemCount returns the total unit count across the owner's cart.
func (s *Service) ItemCount(ctx context.Context, owner Owner) (int, error) {
	c, err := s.GetCart(ctx, owner)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count, nil
}

// clampMergeQuantity caps a merged guest quantity so the combined line
// never exceeds stock.
func clampMergeQuantity(items []Item, productID uint, requested, stock int) int {
	existing := 0
	for _, item := range items {
		if item.ProductID == productID {
			existing = item.Quantity
			break
		}
	}
	if existing+requested <= stock {
		return requested
	}
	if stock > existing {
		return stock - existing
	}
	return 0
}

// lockCart loads and row-locks the owner's cart, or returns nil when absent.
func (s *Service) lockCart(tx *gorm.DB, owner Owner) (*Cart, error) {
	var c Cart
	err := s.ownerScope(tx, owner).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.Upstream(err, "failed to lock cart")
	}

	if err := tx.Where("cart_id = ?", c.ID).Order("id ASC").Find(&c.Items).Error; err != nil {
		return nil, apperr.Upstream(err, "failed to load cart items")
	}
	return &c, nil
}

// lockOrCreateCart is lockCart with lazy creation on first add-to-cart.
// FOR UPDATE locks nothing when the cart row does not exist yet, so two
// concurrent first adds for the same owner would each insert their own cart.
// A per-owner advisory lock, held to transaction end, serializes creation:
// the loser acquires it after the winner commits and finds the committed
// row on the second lookup.
func (s *Service) lockOrCreateCart(tx *gorm.DB, owner Owner) (*Cart, error) {
	c, err := s.lockCart(tx, owner)
	if err != nil || c != nil {
		return c, err
	}

	if err := tx.Exec("SELECT pg_advisory_xact_lock(?)", owner.advisoryLockKey()).Error; err != nil {
		return nil, apperr.Upstream(err, "failed to serialize cart creation")
	}

	c, err = s.lockCart(tx, owner)
	if err != nil || c != nil {
		return c, err
	}

	c = &Cart{UserID: owner.UserID, SessionID: owner.SessionID}
	if err := tx.Create(c).Error; err != nil {
		return nil, apperr.Upstream(err, "failed to create cart")
	}
	return c, nil
}

// advisoryLockKey maps the owner identity into the advisory lock keyspace.
// User and session identities hash into disjoint inputs so a numeric user id
// can never collide with a session token's key by construction of the input.
func (o Owner) advisoryLockKey() int64 {
	h := fnv.New64a()
	if o.UserID != nil {
		fmt.Fprintf(h, "cart:user:%d", *o.UserID)
	} else {
		fmt.Fprintf(h, "cart:session:%s", o.SessionID)
	}
	return int64(h.Sum64())
}

// replaceItems persists the reconciled line set and recomputes the cached
// totals through the pricing policy, all inside the caller's transaction.
func (s *Service) replaceItems(tx *gorm.DB, c *Cart, items []Item) error {
	if err := tx.Where("cart_id = ?", c.ID).Delete(&Item{}).Error; err != nil {
		return apperr.Upstream(err, "failed to update cart items")
	}

	for i := range items {
		items[i].ID = 0
		items[i].CartID = c.ID
		if err := tx.Create(&items[i]).Error; err != nil {
			return apperr.Upstream(err, "failed to update cart items")
		}
	}

	breakdown := pricing.Compute(s.policy, ItemsSubtotal(items))
	c.Items = items
	c.ItemsCents = breakdown.ItemsCents
	c.TaxCents = breakdown.TaxCents
	c.ShippingCents = breakdown.ShippingCents
	c.TotalCents = breakdown.TotalCents

	err := tx.Model(c).Updates(map[string]interface{}{
		"items_cents":    c.ItemsCents,
		"tax_cents":      c.TaxCents,
		"shipping_cents": c.ShippingCents,
		"total_cents":    c.TotalCents,
	}).Error
	if err != nil {
		return apperr.Upstream(err, "failed to update cart totals")
	}
	return nil
}

func (s *Service) ownerScope(query *gorm.DB, owner Owner) *gorm.DB {
	if owner.UserID != nil {
		return query.Where("user_id = ?", *owner.UserID)
	}
	return query.Where("session_id = ?", owner.SessionID)
}

// Redis mirror for guest carts. Best-effort: the database stays the source
// of truth and mirror failures never fail the request.

func sessionCartKey(sessionID string) string {
	return fmt.Sprintf("cart:session:%s", sessionID)
}

func (s *Service) readMirror(ctx context.Context, sessionID string) *Cart {
	data, err := s.redisClient.Get(ctx, sessionCartKey(sessionID)).Result()
	if err != nil {
		return nil
	}

	var c Cart
	if err := json.Unmarshal([]byte(data), &c); err != nil {
		return nil
	}
	return &c
}

func (s *Service) writeMirror(ctx context.Context, sessionID string, c *Cart) {
	data, err := json.Marshal(c)
	if err != nil {
		return
	}
	s.redisClient.Set(ctx, sessionCartKey(sessionID), data, sessionCartTTL)
}

func (s *Service) dropMirror(ctx context.Context, sessionID string) {
	s.redisClient.Del(ctx, sessionCartKey(sessionID))
}

func (s *Service) refreshMirror(ctx context.Context, owner Owner, c *Cart) {
	if owner.SessionID == "" || c == nil {
		return
	}
	s.writeMirror(ctx, owner.SessionID, c)
}
