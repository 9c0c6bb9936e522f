package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Comprehensive-Wall28/layered-dining-sub000/internal/domain"
)

// OrderService creates orders and drives their status lifecycle. The order
// total is fixed at creation from current catalog prices and never
// recomputed.
type OrderService struct {
	Orders  OrderStore
	Carts   CartStore
	Users   UserStore
	Pricing PricingEngine
	Audit   AuditSink
	Logger  *slog.Logger
	// StrictTransitions enforces the status allow-list below instead of the
	// historical any-status-settable behavior.
	StrictTransitions bool
}

type CreateOrderInput struct {
	CustomerID    int64
	CustomerName  string
	Items         []PriceLine
	OrderType     domain.OrderType
	PaymentStatus domain.PaymentStatus
	CustomerNotes string
}

// orderTransitions is the optional allow-list. Payment status moves on an
// independent axis and is never gated by it.
var orderTransitions = map[domain.OrderStatus][]domain.OrderStatus{
	domain.OrderPending:    {domain.OrderAccepted, domain.OrderInProgress, domain.OrderCancelled},
	domain.OrderAccepted:   {domain.OrderInProgress, domain.OrderCompleted, domain.OrderCancelled},
	domain.OrderInProgress: {domain.OrderCompleted, domain.OrderCancelled},
	domain.OrderCompleted:  {},
	domain.OrderCancelled:  {},
}

// CreateOrder builds an order from explicit items, or drains the customer's
// cart when no items are given. Phase one (pricing + insert) must succeed;
// phase two (emptying the drained cart) is best-effort and never rolls the
// order back.
func (s OrderService) CreateOrder(ctx context.Context, in CreateOrderInput) (*domain.Order, error) {
	if in.CustomerID == 0 {
		return nil, domain.BadRequest("customerId is required")
	}

	items := in.Items
	var drainedCart *domain.Cart
	if len(items) == 0 {
		cart, err := s.Carts.GetByCustomer(ctx, in.CustomerID)
		if err != nil {
			if domain.IsCode(err, domain.CodeNotFound) {
				return nil, domain.BadRequest("customer has no cart")
			}
			return nil, err
		}
		if len(cart.Items) == 0 {
			return nil, domain.BadRequest("cart is empty")
		}
		items = priceLines(cart.Items)
		drainedCart = cart
	}
	if len(items) == 0 {
		return nil, domain.BadRequest("order has no items")
	}

	// Price snapshot point: the resolved unit prices and total are stored
	// on the order and stay fixed through later catalog edits.
	priced, total, err := s.Pricing.ResolveLines(ctx, items)
	if err != nil {
		return nil, err
	}

	name := in.CustomerName
	if name == "" && s.Users != nil {
		if u, err := s.Users.GetByID(ctx, in.CustomerID); err == nil {
			name = u.Name
		}
	}

	orderType := in.OrderType
	if orderType == "" {
		orderType = domain.OrderTypeDineIn
	}
	if !orderType.Valid() {
		return nil, domain.BadRequestf("invalid order type %q", orderType)
	}
	payment := in.PaymentStatus
	if payment == "" {
		payment = domain.PaymentUnpaid
	}
	if !payment.Valid() {
		return nil, domain.BadRequestf("invalid payment status %q", payment)
	}

	order := &domain.Order{
		CustomerID:    in.CustomerID,
		CustomerName:  name,
		Items:         orderItems(priced),
		OrderType:     orderType,
		Status:        domain.OrderPending,
		PaymentStatus: payment,
		TotalPrice:    total,
		CustomerNotes: in.CustomerNotes,
	}
	created, err := s.Orders.Create(ctx, order)
	if err != nil {
		return nil, err
	}

	s.audit(ctx, in.CustomerID, "order.create",
		fmt.Sprintf("order of %d items, total %d", len(created.Items), created.TotalPrice),
		created.ID, domain.SeverityInfo)

	if drainedCart != nil {
		if err := s.Carts.SaveItems(ctx, drainedCart.ID, nil, 0); err != nil {
			// The order already exists; leaving a stale cart beats losing it.
			s.log().Error("failed to empty cart after order", "cart", drainedCart.ID, "order", created.ID, "err", err)
			s.audit(ctx, in.CustomerID, "order.cart_empty_failed",
				fmt.Sprintf("cart %d left stale after order %d", drainedCart.ID, created.ID),
				created.ID, domain.SeverityWarning)
		}
	}

	return created, nil
}

func (s OrderService) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	return s.Orders.GetByID(ctx, id)
}

func (s OrderService) ListByCustomer(ctx context.Context, customerID int64) ([]domain.Order, error) {
	return s.Orders.ListByCustomer(ctx, customerID)
}

func (s OrderService) ListAll(ctx context.Context, limit int) ([]domain.Order, error) {
	return s.Orders.ListAll(ctx, limit)
}

// UpdateStatus changes the order status, the payment status, or both. At
// least one must be provided.
func (s OrderService) UpdateStatus(ctx context.Context, id int64, status *domain.OrderStatus, payment *domain.PaymentStatus, actor domain.Principal) (*domain.Order, error) {
	if err := RequireRole(actor, domain.RoleAdmin, domain.RoleManager); err != nil {
		return nil, err
	}
	if status == nil && payment == nil {
		return nil, domain.BadRequest("status or paymentStatus is required")
	}
	if status != nil && !status.Valid() {
		return nil, domain.BadRequestf("invalid order status %q", *status)
	}
	if payment != nil && !payment.Valid() {
		return nil, domain.BadRequestf("invalid payment status %q", *payment)
	}

	order, err := s.Orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if status != nil && s.StrictTransitions && *status != order.Status {
		allowed := false
		for _, next := range orderTransitions[order.Status] {
			if next == *status {
				allowed = true
				break
			}
		}
		if !allowed {
			return nil, domain.Conflict(fmt.Sprintf("cannot move order from %s to %s", order.Status, *status))
		}
	}

	if err := s.Orders.UpdateStatus(ctx, id, status, payment); err != nil {
		return nil, err
	}
	if status != nil {
		order.Status = *status
	}
	if payment != nil {
		order.PaymentStatus = *payment
	}

	s.audit(ctx, actor.ID, "order.status",
		fmt.Sprintf("order %d set to status=%s payment=%s", id, order.Status, order.PaymentStatus),
		id, domain.SeverityInfo)
	return order, nil
}

func orderItems(priced []PricedLine) []domain.OrderItem {
	items := make([]domain.OrderItem, 0, len(priced))
	for _, l := range priced {
		id := l.MenuItemID
		items = append(items, domain.OrderItem{
			MenuItemID: &id,
			Name:       l.Name,
			Quantity:   l.Quantity,
			UnitPrice:  l.UnitPrice,
		})
	}
	return items
}

func (s OrderService) audit(ctx context.Context, userID int64, action, description string, affectedID int64, severity domain.LogSeverity) {
	if s.Audit == nil {
		return
	}
	err := s.Audit.Record(ctx, domain.AuditEntry{
		Action:        action,
		Description:   description,
		Severity:      severity,
		Type:          "order",
		UserID:        userID,
		AffectedID:    &affectedID,
		AffectedModel: "orders",
	})
	if err != nil {
		s.log().Warn("audit write failed", "action", action, "err", err)
	}
}

func (s OrderService) log() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}
