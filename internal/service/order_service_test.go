package service

import (
	"context"
	"testing"

	"github.com/Comprehensive-Wall28/layered-dining-sub000/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrderService() (OrderService, *fakeOrderStore, *fakeCartStore, *fakeMenuStore) {
	menu := testMenu()
	orders := newFakeOrderStore()
	carts := newFakeCartStore()
	users := &fakeUserStore{users: map[int64]domain.User{
		100: {ID: 100, Name: "Dana", Role: domain.RoleCustomer},
	}}
	svc := OrderService{
		Orders:  orders,
		Carts:   carts,
		Users:   users,
		Pricing: PricingEngine{Menu: menu, Strict: true},
		Audit:   &fakeAuditSink{},
	}
	return svc, orders, carts, menu
}

func TestCreateOrder_FromExplicitItems(t *testing.T) {
	t.Parallel()

	svc, _, _, _ := newTestOrderService()

	order, err := svc.CreateOrder(context.Background(), CreateOrderInput{
		CustomerID: 100,
		Items: []PriceLine{
			{MenuItemID: 1, Quantity: 2},
			{MenuItemID: 2, Quantity: 1},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(3500), order.TotalPrice)
	assert.Equal(t, domain.OrderPending, order.Status)
	assert.Equal(t, domain.PaymentUnpaid, order.PaymentStatus)
	assert.Equal(t, domain.OrderTypeDineIn, order.OrderType)
	assert.Equal(t, "Dana", order.CustomerName)
	require.Len(t, order.Items, 2)
	assert.Equal(t, int64(1000), order.Items[0].UnitPrice)
	assert.Equal(t, "Margherita", order.Items[0].Name)
}

func TestCreateOrder_TotalImmutableAfterPriceChange(t *testing.T) {
	t.Parallel()

	svc, orders, _, menu := newTestOrderService()

	order, err := svc.CreateOrder(context.Background(), CreateOrderInput{
		CustomerID: 100,
		Items: []PriceLine{
			{MenuItemID: 1, Quantity: 2},
			{MenuItemID: 2, Quantity: 1},
		},
	})
	require.NoError(t, err)
	require.Equal(t, int64(3500), order.TotalPrice)

	item := menu.items[1]
	item.Price = 2000
	menu.items[1] = item

	stored, err := orders.GetByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3500), stored.TotalPrice)
	assert.Equal(t, int64(1000), stored.Items[0].UnitPrice)
}

func TestCreateOrder_DrainsCart(t *testing.T) {
	t.Parallel()

	svc, _, carts, _ := newTestOrderService()
	ctx := context.Background()

	customerID := int64(100)
	cart, err := carts.Create(ctx, &customerID)
	require.NoError(t, err)
	require.NoError(t, carts.SaveItems(ctx, cart.ID, []domain.CartItem{
		{MenuItemID: 1, Quantity: 2},
		{MenuItemID: 2, Quantity: 1},
	}, 3500))

	order, err := svc.CreateOrder(ctx, CreateOrderInput{CustomerID: 100})
	require.NoError(t, err)
	assert.Equal(t, int64(3500), order.TotalPrice)

	drained, err := carts.GetByID(ctx, cart.ID)
	require.NoError(t, err)
	assert.Empty(t, drained.Items)
	assert.Zero(t, drained.TotalPrice)
}

func TestCreateOrder_CartEmptyFailureKeepsOrder(t *testing.T) {
	t.Parallel()

	svc, orders, carts, _ := newTestOrderService()
	ctx := context.Background()

	customerID := int64(100)
	cart, err := carts.Create(ctx, &customerID)
	require.NoError(t, err)
	require.NoError(t, carts.SaveItems(ctx, cart.ID, []domain.CartItem{{MenuItemID: 1, Quantity: 1}}, 1000))
	carts.saveErr[cart.ID] = errStoreDown

	order, err := svc.CreateOrder(ctx, CreateOrderInput{CustomerID: 100})
	require.NoError(t, err)

	stored, err := orders.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderPending, stored.Status)
	assert.Equal(t, int64(1000), stored.TotalPrice)
}

func TestCreateOrder_BadRequests(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("missing customer", func(t *testing.T) {
		svc, _, _, _ := newTestOrderService()
		_, err := svc.CreateOrder(ctx, CreateOrderInput{})
		require.Error(t, err)
		assert.Equal(t, domain.CodeBadRequest, domain.CodeOf(err))
	})

	t.Run("no cart", func(t *testing.T) {
		svc, _, _, _ := newTestOrderService()
		_, err := svc.CreateOrder(ctx, CreateOrderInput{CustomerID: 100})
		require.Error(t, err)
		assert.Equal(t, domain.CodeBadRequest, domain.CodeOf(err))
	})

	t.Run("empty cart", func(t *testing.T) {
		svc, _, carts, _ := newTestOrderService()
		customerID := int64(100)
		_, err := carts.Create(ctx, &customerID)
		require.NoError(t, err)
		_, err = svc.CreateOrder(ctx, CreateOrderInput{CustomerID: 100})
		require.Error(t, err)
		assert.Equal(t, domain.CodeBadRequest, domain.CodeOf(err))
	})

	t.Run("invalid order type", func(t *testing.T) {
		svc, _, _, _ := newTestOrderService()
		_, err := svc.CreateOrder(ctx, CreateOrderInput{
			CustomerID: 100,
			Items:      []PriceLine{{MenuItemID: 1, Quantity: 1}},
			OrderType:  "Drive-Through",
		})
		require.Error(t, err)
		assert.Equal(t, domain.CodeBadRequest, domain.CodeOf(err))
	})
}

func TestCreateOrder_UnknownItemRejected(t *testing.T) {
	t.Parallel()

	svc, _, _, _ := newTestOrderService()

	// Orders price strictly; a vanished menu item aborts the order instead
	// of committing a total with silently dropped lines.
	_, err := svc.CreateOrder(context.Background(), CreateOrderInput{
		CustomerID: 100,
		Items:      []PriceLine{{MenuItemID: 99, Quantity: 1}},
	})
	require.Error(t, err)
	assert.Equal(t, domain.CodeNotFound, domain.CodeOf(err))
}

func TestUpdateOrderStatus(t *testing.T) {
	t.Parallel()

	manager := domain.Principal{ID: 2, Role: domain.RoleManager}
	customer := domain.Principal{ID: 100, Role: domain.RoleCustomer}
	ctx := context.Background()

	createOrder := func(t *testing.T, svc OrderService) *domain.Order {
		t.Helper()
		order, err := svc.CreateOrder(ctx, CreateOrderInput{
			CustomerID: 100,
			Items:      []PriceLine{{MenuItemID: 1, Quantity: 1}},
		})
		require.NoError(t, err)
		return order
	}

	t.Run("customer forbidden", func(t *testing.T) {
		svc, _, _, _ := newTestOrderService()
		order := createOrder(t, svc)
		status := domain.OrderCompleted
		_, err := svc.UpdateStatus(ctx, order.ID, &status, nil, customer)
		require.Error(t, err)
		assert.Equal(t, domain.CodeForbidden, domain.CodeOf(err))
	})

	t.Run("neither field provided", func(t *testing.T) {
		svc, _, _, _ := newTestOrderService()
		order := createOrder(t, svc)
		_, err := svc.UpdateStatus(ctx, order.ID, nil, nil, manager)
		require.Error(t, err)
		assert.Equal(t, domain.CodeBadRequest, domain.CodeOf(err))
	})

	t.Run("permissive direct jump", func(t *testing.T) {
		svc, _, _, _ := newTestOrderService()
		order := createOrder(t, svc)
		status := domain.OrderCompleted
		got, err := svc.UpdateStatus(ctx, order.ID, &status, nil, manager)
		require.NoError(t, err)
		assert.Equal(t, domain.OrderCompleted, got.Status)
	})

	t.Run("payment axis independent", func(t *testing.T) {
		svc, _, _, _ := newTestOrderService()
		order := createOrder(t, svc)
		payment := domain.PaymentPaid
		got, err := svc.UpdateStatus(ctx, order.ID, nil, &payment, manager)
		require.NoError(t, err)
		assert.Equal(t, domain.PaymentPaid, got.PaymentStatus)
		assert.Equal(t, domain.OrderPending, got.Status)
	})

	t.Run("strict transitions reject completed to pending", func(t *testing.T) {
		svc, _, _, _ := newTestOrderService()
		svc.StrictTransitions = true
		order := createOrder(t, svc)

		status := domain.OrderInProgress
		_, err := svc.UpdateStatus(ctx, order.ID, &status, nil, manager)
		require.NoError(t, err)

		status = domain.OrderCompleted
		_, err = svc.UpdateStatus(ctx, order.ID, &status, nil, manager)
		require.NoError(t, err)

		status = domain.OrderPending
		_, err = svc.UpdateStatus(ctx, order.ID, &status, nil, manager)
		require.Error(t, err)
		assert.Equal(t, domain.CodeConflict, domain.CodeOf(err))
	})

	t.Run("missing order", func(t *testing.T) {
		svc, _, _, _ := newTestOrderService()
		status := domain.OrderAccepted
		_, err := svc.UpdateStatus(ctx, 404, &status, nil, manager)
		require.Error(t, err)
		assert.Equal(t, domain.CodeNotFound, domain.CodeOf(err))
	})
}

func TestAuditFailureNeverFailsOrder(t *testing.T) {
	t.Parallel()

	svc, _, _, _ := newTestOrderService()
	svc.Audit = &fakeAuditSink{err: errStoreDown}

	order, err := svc.CreateOrder(context.Background(), CreateOrderInput{
		CustomerID: 100,
		Items:      []PriceLine{{MenuItemID: 1, Quantity: 1}},
	})
	require.NoError(t, err)
	assert.NotZero(t, order.ID)
}
