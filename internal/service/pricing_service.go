package service

import (
	"context"

	"github.com/Comprehensive-Wall28/layered-dining-sub000/internal/domain"
)

// PricingEngine resolves current catalog prices for a set of menu item
// lines. It has no side effects.
type PricingEngine struct {
	Menu MenuStore
	// Strict rejects lines whose menu item no longer exists. Lenient mode
	// prices them at zero, matching the historical behavior of skipping
	// unknown ids. Carts run lenient so a deleted catalog item cannot brick
	// a cart; orders run strict so a committed total never silently drops
	// lines.
	Strict bool
}

// PriceLine is one requested (menu item, quantity) pair. Quantities below 1
// are coerced to 1.
type PriceLine struct {
	MenuItemID int64
	Quantity   int
}

// PricedLine is a line with its resolved unit price and snapshot name.
type PricedLine struct {
	MenuItemID int64
	Name       string
	Quantity   int
	UnitPrice  int64
}

// ResolveLines resolves unit prices for every line in one batched read and
// returns the priced lines together with the total in cents.
func (e PricingEngine) ResolveLines(ctx context.Context, lines []PriceLine) ([]PricedLine, int64, error) {
	if len(lines) == 0 {
		return nil, 0, nil
	}

	ids := make([]int64, 0, len(lines))
	seen := make(map[int64]struct{}, len(lines))
	for _, l := range lines {
		if _, ok := seen[l.MenuItemID]; ok {
			continue
		}
		seen[l.MenuItemID] = struct{}{}
		ids = append(ids, l.MenuItemID)
	}

	items, err := e.Menu.GetByIDs(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	byID := make(map[int64]domain.MenuItem, len(items))
	for _, it := range items {
		byID[it.ID] = it
	}

	priced := make([]PricedLine, 0, len(lines))
	var total int64
	for _, l := range lines {
		qty := l.Quantity
		if qty < 1 {
			qty = 1
		}
		item, ok := byID[l.MenuItemID]
		if !ok && e.Strict {
			return nil, 0, domain.NotFoundf("menu item %d not found", l.MenuItemID)
		}
		priced = append(priced, PricedLine{
			MenuItemID: l.MenuItemID,
			Name:       item.Name,
			Quantity:   qty,
			UnitPrice:  item.Price,
		})
		total += item.Price * int64(qty)
	}
	return priced, total, nil
}

// ResolveTotal computes the summed total for the lines.
func (e PricingEngine) ResolveTotal(ctx context.Context, lines []PriceLine) (int64, error) {
	_, total, err := e.ResolveLines(ctx, lines)
	return total, err
}
