package service

import (
	"context"

	"github.com/Comprehensive-Wall28/layered-dining-sub000/internal/domain"
)

// CartService owns a cart's item list and its derived total. The total is
// recomputed from current catalog prices on every mutation, in the same
// write that changes the items.
//
// Mutations are last-writer-wins: concurrent writes to the same cart can
// lose updates. Acceptable for a single-user basket; do not rely on it for
// shared carts.
type CartService struct {
	Carts   CartStore
	Menu    MenuStore
	Pricing PricingEngine
}

// Create makes an empty cart, optionally attached to a user.
func (s CartService) Create(ctx context.Context, customerID *int64) (*domain.Cart, error) {
	return s.Carts.Create(ctx, customerID)
}

func (s CartService) Get(ctx context.Context, cartID int64) (*domain.Cart, error) {
	return s.Carts.GetByID(ctx, cartID)
}

func (s CartService) GetByCustomer(ctx context.Context, customerID int64) (*domain.Cart, error) {
	return s.Carts.GetByCustomer(ctx, customerID)
}

// AddItem increments the quantity if the menu item is already in the cart,
// otherwise appends a new line.
func (s CartService) AddItem(ctx context.Context, cartID, menuItemID int64, quantity int) (*domain.Cart, error) {
	if quantity < 1 {
		quantity = 1
	}

	cart, err := s.Carts.GetByID(ctx, cartID)
	if err != nil {
		return nil, err
	}

	found, err := s.Menu.GetByIDs(ctx, []int64{menuItemID})
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, domain.NotFoundf("menu item %d not found", menuItemID)
	}

	if line := cart.Item(menuItemID); line != nil {
		line.Quantity += quantity
	} else {
		cart.Items = append(cart.Items, domain.CartItem{MenuItemID: menuItemID, Quantity: quantity})
	}

	return s.persist(ctx, cart)
}

// RemoveItem filters the menu item out. Removing an absent item is not an
// error.
func (s CartService) RemoveItem(ctx context.Context, cartID, menuItemID int64) (*domain.Cart, error) {
	cart, err := s.Carts.GetByID(ctx, cartID)
	if err != nil {
		return nil, err
	}

	kept := cart.Items[:0]
	for _, line := range cart.Items {
		if line.MenuItemID != menuItemID {
			kept = append(kept, line)
		}
	}
	cart.Items = kept

	return s.persist(ctx, cart)
}

// UpdateItemQuantity sets the quantity for an existing line. A quantity of
// zero or below removes the line; the cart never stores a non-positive
// quantity.
func (s CartService) UpdateItemQuantity(ctx context.Context, cartID, menuItemID int64, quantity int) (*domain.Cart, error) {
	cart, err := s.Carts.GetByID(ctx, cartID)
	if err != nil {
		return nil, err
	}

	line := cart.Item(menuItemID)
	if line == nil {
		return nil, domain.NotFoundf("menu item %d not in cart", menuItemID)
	}

	if quantity <= 0 {
		return s.RemoveItem(ctx, cartID, menuItemID)
	}
	line.Quantity = quantity

	return s.persist(ctx, cart)
}

// Empty clears the items and zeroes the total. The cart itself survives.
func (s CartService) Empty(ctx context.Context, cartID int64) (*domain.Cart, error) {
	cart, err := s.Carts.GetByID(ctx, cartID)
	if err != nil {
		return nil, err
	}
	cart.Items = nil
	cart.TotalPrice = 0
	if err := s.Carts.SaveItems(ctx, cart.ID, nil, 0); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s CartService) persist(ctx context.Context, cart *domain.Cart) (*domain.Cart, error) {
	total, err := s.Pricing.ResolveTotal(ctx, priceLines(cart.Items))
	if err != nil {
		return nil, err
	}
	cart.TotalPrice = total
	if err := s.Carts.SaveItems(ctx, cart.ID, cart.Items, total); err != nil {
		return nil, err
	}
	return cart, nil
}

func priceLines(items []domain.CartItem) []PriceLine {
	lines := make([]PriceLine, 0, len(items))
	for _, it := range items {
		lines = append(lines, PriceLine{MenuItemID: it.MenuItemID, Quantity: it.Quantity})
	}
	return lines
}
