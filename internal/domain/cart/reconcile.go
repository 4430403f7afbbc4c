// internal/domain/cart/reconcile.go
package cart

import (
	"github.com/your-org/artstore-backend/internal/pkg/apperr"
)

// reconcileAdd merges a requested quantity of a product into the line items,
// subject to the product's current stock. Lines for the same product are
// merged, never duplicated. On an out-of-stock condition the input slice is
// returned untouched along with the error.
func reconcileAdd(items []Item, add Item, quantity, stock int) ([]Item, error) {
	if quantity < 1 {
		return items, apperr.Validation("quantity must be at least 1")
	}

	for i := range items {
		if items[i].ProductID != add.ProductID {
			continue
		}
		newQuantity := items[i].Quantity + quantity
		if newQuantity > stock {
			return items, apperr.OutOfStock("not enough stock for %q: requested %d, available %d", add.Name, newQuantity, stock)
		}
		items[i].Quantity = newQuantity
		return items, nil
	}

	if quantity > stock {
		return items, apperr.OutOfStock("not enough stock for %q: requested %d, available %d", add.Name, quantity, stock)
	}

	add.Quantity = quantity
	return append(items, add), nil
}

// reconcileRemove decrements the line for a product by one, deleting the
// line at quantity 1. Removing an absent product is a no-op; the second
// return reports whether anything changed.
func reconcileRemove(items []Item, productID uint) ([]Item, bool) {
	for i := range items {
		if items[i].ProductID != productID {
			continue
		}
		if items[i].Quantity > 1 {
			items[i].Quantity--
			return items, true
		}
		return append(items[:i], items[i+1:]...), true
	}
	return items, false
}
