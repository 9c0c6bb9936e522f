package service

import (
	"context"
	"testing"

	"github.com/Comprehensive-Wall28/layered-dining-sub000/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMenu() *fakeMenuStore {
	return &fakeMenuStore{items: map[int64]domain.MenuItem{
		1: {ID: 1, Name: "Margherita", Price: 1000, Category: domain.CategoryMain, IsAvailable: true},
		2: {ID: 2, Name: "Tiramisu", Price: 1500, Category: domain.CategoryDessert, IsAvailable: true},
		3: {ID: 3, Name: "Espresso", Price: 300, Category: domain.CategoryBeverage, IsAvailable: true},
	}}
}

func TestPricingEngine_ResolveTotal(t *testing.T) {
	t.Parallel()

	engine := PricingEngine{Menu: testMenu()}

	tests := []struct {
		name  string
		lines []PriceLine
		want  int64
	}{
		{"empty list", nil, 0},
		{"single line", []PriceLine{{MenuItemID: 1, Quantity: 2}}, 2000},
		{"mixed lines", []PriceLine{{MenuItemID: 1, Quantity: 2}, {MenuItemID: 2, Quantity: 1}}, 3500},
		{"zero quantity coerced to one", []PriceLine{{MenuItemID: 3, Quantity: 0}}, 300},
		{"negative quantity coerced to one", []PriceLine{{MenuItemID: 3, Quantity: -4}}, 300},
		{"unknown id priced at zero", []PriceLine{{MenuItemID: 99, Quantity: 3}, {MenuItemID: 1, Quantity: 1}}, 1000},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			total, err := engine.ResolveTotal(context.Background(), tc.lines)
			require.NoError(t, err)
			assert.Equal(t, tc.want, total)
		})
	}
}

func TestPricingEngine_StrictRejectsUnknownItems(t *testing.T) {
	t.Parallel()

	engine := PricingEngine{Menu: testMenu(), Strict: true}

	_, err := engine.ResolveTotal(context.Background(), []PriceLine{{MenuItemID: 99, Quantity: 1}})
	require.Error(t, err)
	assert.Equal(t, domain.CodeNotFound, domain.CodeOf(err))
}

func TestPricingEngine_ResolveLinesSnapshotsNames(t *testing.T) {
	t.Parallel()

	engine := PricingEngine{Menu: testMenu(), Strict: true}

	lines, total, err := engine.ResolveLines(context.Background(), []PriceLine{
		{MenuItemID: 2, Quantity: 2},
		{MenuItemID: 1, Quantity: 1},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(4000), total)
	require.Len(t, lines, 2)
	assert.Equal(t, "Tiramisu", lines[0].Name)
	assert.Equal(t, int64(1500), lines[0].UnitPrice)
	assert.Equal(t, "Margherita", lines[1].Name)
}

func TestPricingEngine_StoreErrorPropagates(t *testing.T) {
	t.Parallel()

	engine := PricingEngine{Menu: &fakeMenuStore{err: errStoreDown}}

	_, err := engine.ResolveTotal(context.Background(), []PriceLine{{MenuItemID: 1, Quantity: 1}})
	require.ErrorIs(t, err, errStoreDown)
}
