package service

import (
	"context"
	"testing"

	"github.com/Comprehensive-Wall28/layered-dining-sub000/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCartService() (CartService, *fakeCartStore, *fakeMenuStore) {
	menu := testMenu()
	carts := newFakeCartStore()
	svc := CartService{
		Carts:   carts,
		Menu:    menu,
		Pricing: PricingEngine{Menu: menu},
	}
	return svc, carts, menu
}

// expectedTotal recomputes the invariant from current catalog prices.
func expectedTotal(menu *fakeMenuStore, items []domain.CartItem) int64 {
	var total int64
	for _, it := range items {
		total += menu.items[it.MenuItemID].Price * int64(it.Quantity)
	}
	return total
}

func TestCartService_TotalInvariantAcrossMutations(t *testing.T) {
	t.Parallel()

	svc, _, menu := newTestCartService()
	ctx := context.Background()

	cart, err := svc.Create(ctx, nil)
	require.NoError(t, err)
	assert.Zero(t, cart.TotalPrice)

	steps := []func() (*domain.Cart, error){
		func() (*domain.Cart, error) { return svc.AddItem(ctx, cart.ID, 1, 2) },
		func() (*domain.Cart, error) { return svc.AddItem(ctx, cart.ID, 2, 1) },
		func() (*domain.Cart, error) { return svc.AddItem(ctx, cart.ID, 1, 1) },
		func() (*domain.Cart, error) { return svc.UpdateItemQuantity(ctx, cart.ID, 2, 4) },
		func() (*domain.Cart, error) { return svc.RemoveItem(ctx, cart.ID, 1) },
	}
	for _, step := range steps {
		got, err := step()
		require.NoError(t, err)
		assert.Equal(t, expectedTotal(menu, got.Items), got.TotalPrice)
	}
}

func TestCartService_AddItemIncrementsExistingLine(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestCartService()
	ctx := context.Background()

	cart, err := svc.Create(ctx, nil)
	require.NoError(t, err)

	_, err = svc.AddItem(ctx, cart.ID, 1, 2)
	require.NoError(t, err)
	got, err := svc.AddItem(ctx, cart.ID, 1, 3)
	require.NoError(t, err)

	require.Len(t, got.Items, 1)
	assert.Equal(t, 5, got.Items[0].Quantity)
	assert.Equal(t, int64(5000), got.TotalPrice)
}

func TestCartService_AddItemDefaultsQuantityToOne(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestCartService()
	ctx := context.Background()

	cart, err := svc.Create(ctx, nil)
	require.NoError(t, err)

	got, err := svc.AddItem(ctx, cart.ID, 3, 0)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, 1, got.Items[0].Quantity)
}

func TestCartService_AddItemUnknownMenuItem(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestCartService()
	ctx := context.Background()

	cart, err := svc.Create(ctx, nil)
	require.NoError(t, err)

	_, err = svc.AddItem(ctx, cart.ID, 99, 1)
	require.Error(t, err)
	assert.Equal(t, domain.CodeNotFound, domain.CodeOf(err))
}

func TestCartService_AddItemMissingCart(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestCartService()

	_, err := svc.AddItem(context.Background(), 42, 1, 1)
	require.Error(t, err)
	assert.Equal(t, domain.CodeNotFound, domain.CodeOf(err))
}

func TestCartService_RemoveAbsentItemIsIdempotent(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestCartService()
	ctx := context.Background()

	cart, err := svc.Create(ctx, nil)
	require.NoError(t, err)
	before, err := svc.AddItem(ctx, cart.ID, 1, 2)
	require.NoError(t, err)

	after, err := svc.RemoveItem(ctx, cart.ID, 99)
	require.NoError(t, err)
	assert.Equal(t, before.Items, after.Items)
	assert.Equal(t, before.TotalPrice, after.TotalPrice)
}

func TestCartService_QuantityFloorRemovesLine(t *testing.T) {
	t.Parallel()

	svc, carts, _ := newTestCartService()
	ctx := context.Background()

	cart, err := svc.Create(ctx, nil)
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, cart.ID, 1, 2)
	require.NoError(t, err)

	for _, qty := range []int{0, -1} {
		_, err = svc.AddItem(ctx, cart.ID, 1, 1)
		require.NoError(t, err)
		got, err := svc.UpdateItemQuantity(ctx, cart.ID, 1, qty)
		require.NoError(t, err)
		assert.Empty(t, got.Items)
		assert.Zero(t, got.TotalPrice)
	}

	// The persisted cart never holds a non-positive quantity.
	stored, err := carts.GetByID(ctx, cart.ID)
	require.NoError(t, err)
	for _, it := range stored.Items {
		assert.Positive(t, it.Quantity)
	}
}

func TestCartService_UpdateQuantityMissingLine(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestCartService()
	ctx := context.Background()

	cart, err := svc.Create(ctx, nil)
	require.NoError(t, err)

	_, err = svc.UpdateItemQuantity(ctx, cart.ID, 1, 3)
	require.Error(t, err)
	assert.Equal(t, domain.CodeNotFound, domain.CodeOf(err))
}

func TestCartService_EmptyClearsItemsAndTotal(t *testing.T) {
	t.Parallel()

	svc, carts, _ := newTestCartService()
	ctx := context.Background()

	cart, err := svc.Create(ctx, nil)
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, cart.ID, 1, 2)
	require.NoError(t, err)

	got, err := svc.Empty(ctx, cart.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Items)
	assert.Zero(t, got.TotalPrice)

	stored, err := carts.GetByID(ctx, cart.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.Items)

	_, err = svc.Empty(ctx, 99)
	require.Error(t, err)
	assert.Equal(t, domain.CodeNotFound, domain.CodeOf(err))
}

func TestCartService_TotalFollowsCatalogPriceChanges(t *testing.T) {
	t.Parallel()

	svc, _, menu := newTestCartService()
	ctx := context.Background()

	cart, err := svc.Create(ctx, nil)
	require.NoError(t, err)
	got, err := svc.AddItem(ctx, cart.ID, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(2000), got.TotalPrice)

	// Unlike orders, carts reprice on every mutation.
	item := menu.items[1]
	item.Price = 2000
	menu.items[1] = item

	got, err = svc.AddItem(ctx, cart.ID, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(5500), got.TotalPrice)
}

func TestCartService_DeletedMenuItemPricedAtZero(t *testing.T) {
	t.Parallel()

	svc, _, menu := newTestCartService()
	ctx := context.Background()

	cart, err := svc.Create(ctx, nil)
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, cart.ID, 1, 2)
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, cart.ID, 2, 1)
	require.NoError(t, err)

	delete(menu.items, 1)

	// Lenient pricing keeps the cart usable after a catalog delete.
	got, err := svc.UpdateItemQuantity(ctx, cart.ID, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3000), got.TotalPrice)
	assert.Len(t, got.Items, 2)
}
