// internal/domain/cart/reconcile_test.go
package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/artstore-backend/internal/pkg/apperr"
)

func lineItem(productID uint, quantity int, unitCents int64) Item {
	return Item{ProductID: productID, Name: "test product", Quantity: quantity, UnitPriceCents: unitCents}
}

func TestReconcileAddNewLine(t *testing.T) {
	items, err := reconcileAdd(nil, lineItem(1, 0, 2500), 2, 5)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, uint(1), items[0].ProductID)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestReconcileAddMergesExistingLine(t *testing.T) {
	items := []Item{lineItem(1, 2, 2500), lineItem(2, 1, 900)}
	items, err := reconcileAdd(items, lineItem(1, 0, 2500), 3, 5)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, 5, items[0].Quantity)
	assert.Equal(t, 1, items[1].Quantity)
}

func TestReconcileAddOutOfStockLeavesItemsUntouched(t *testing.T) {
	items := []Item{lineItem(1, 4, 2500)}
	result, err := reconcileAdd(items, lineItem(1, 0, 2500), 2, 5)
	require.Error(t, err)
	assert.Equal(t, apperr.KindOutOfStock, apperr.KindOf(err))
	require.Len(t, result, 1)
	assert.Equal(t, 4, result[0].Quantity)
}

func TestReconcileAddNewLineExceedingStock(t *testing.T) {
	items, err := reconcileAdd(nil, lineItem(1, 0, 2500), 6, 5)
	require.Error(t, err)
	assert.Equal(t, apperr.KindOutOfStock, apperr.KindOf(err))
	assert.Empty(t, items)
}

func TestReconcileAddRejectsNonPositiveQuantity(t *testing.T) {
	_, err := reconcileAdd(nil, lineItem(1, 0, 2500), 0, 5)
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestReconcileAddFillsStockExactly(t *testing.T) {
	items := []Item{lineItem(1, 3, 2500)}
	items, err := reconcileAdd(items, lineItem(1, 0, 2500), 2, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, items[0].Quantity)

	_, err = reconcileAdd(items, lineItem(1, 0, 2500), 1, 5)
	require.Error(t, err)
	assert.Equal(t, apperr.KindOutOfStock, apperr.KindOf(err))
}

func TestReconcileRemoveDecrements(t *testing.T) {
	items := []Item{lineItem(1, 3, 2500)}
	items, changed := reconcileRemove(items, 1)
	assert.True(t, changed)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestReconcileRemoveDeletesAtQuantityOne(t *testing.T) {
	items := []Item{lineItem(1, 1, 2500), lineItem(2, 2, 900)}
	items, changed := reconcileRemove(items, 1)
	assert.True(t, changed)
	require.Len(t, items, 1)
	assert.Equal(t, uint(2), items[0].ProductID)
}

func TestReconcileRemoveAbsentIsNoop(t *testing.T) {
	items := []Item{lineItem(1, 1, 2500)}
	result, changed := reconcileRemove(items, 99)
	assert.False(t, changed)
	require.Len(t, result, 1)
	assert.Equal(t, uint(1), result[0].ProductID)
}

func TestClampMergeQuantity(t *testing.T) {
	// No existing line: clamp against stock alone.
	assert.Equal(t, 2, clampMergeQuantity(nil, 1, 2, 5))
	assert.Equal(t, 5, clampMergeQuantity(nil, 1, 9, 5))

	items := []Item{lineItem(1, 3, 2500)}
	assert.Equal(t, 2, clampMergeQuantity(items, 1, 2, 5))
	assert.Equal(t, 2, clampMergeQuantity(items, 1, 4, 5))
	assert.Equal(t, 0, clampMergeQuantity(items, 1, 4, 3))
	assert.Equal(t, 0, clampMergeQuantity(items, 1, 4, 2))
}

func TestAdvisoryLockKeyIsStablePerOwner(t *testing.T) {
	userID := uint(42)
	owner := UserOwner(userID)
	assert.Equal(t, owner.advisoryLockKey(), UserOwner(userID).advisoryLockKey())

	session := SessionOwner("d3b07384d113edec")
	assert.Equal(t, session.advisoryLockKey(), SessionOwner("d3b07384d113edec").advisoryLockKey())
}

func TestAdvisoryLockKeyDistinguishesOwners(t *testing.T) {
	owners := []Owner{
		UserOwner(1),
		UserOwner(2),
		SessionOwner("1"),
		SessionOwner("d3b07384"),
		SessionOwner("d3b07384d113"),
	}
	keys := map[int64]bool{}
	for _, owner := range owners {
		keys[owner.advisoryLockKey()] = true
	}
	assert.Len(t, keys, len(owners))
}

func TestItemsSubtotal(t *testing.T) {
	assert.Equal(t, int64(0), ItemsSubtotal(nil))

	items := []Item{lineItem(1, 2, 2500), lineItem(2, 3, 900)}
	assert.Equal(t, int64(7700), ItemsSubtotal(items))
}
