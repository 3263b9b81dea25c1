package tests

import (
	"testing"
	"time"

	"overcooked-menusync/sync-svc/internal/domain"
	"overcooked-menusync/sync-svc/internal/service"

	"github.com/stretchr/testify/assert"
)

func TestDeriveProjection(t *testing.T) {
	syncedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		item          domain.MenuItem
		wantEmoji     string
		wantAvailable bool
	}{
		{
			name:          "explicit emoji wins",
			item:          domain.MenuItem{ID: "m1", Name: "Margherita", Category: "Pizza", Emoji: "🔥", Status: domain.StatusActive},
			wantEmoji:     "🔥",
			wantAvailable: true,
		},
		{
			name:          "category fallback",
			item:          domain.MenuItem{ID: "m2", Name: "Margherita", Category: " Pizza ", Status: domain.StatusActive},
			wantEmoji:     "🍕",
			wantAvailable: true,
		},
		{
			name:          "default emoji for unknown category",
			item:          domain.MenuItem{ID: "m3", Name: "Mystery", Category: "Specials"},
			wantEmoji:     "🍽️",
			wantAvailable: true,
		},
		{
			name:          "inactive item is unavailable",
			item:          domain.MenuItem{ID: "m4", Name: "Old", Category: "Soup", Status: domain.StatusInactive},
			wantEmoji:     "🍲",
			wantAvailable: false,
		},
		{
			name:          "out of stock item is unavailable",
			item:          domain.MenuItem{ID: "m5", Name: "Latte", Category: "Coffee", Status: domain.StatusOutOfStock},
			wantEmoji:     "☕",
			wantAvailable: false,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			projection := service.DeriveProjection(testCase.item, syncedAt)

			assert.Equal(t, testCase.item.ID, projection.ID)
			assert.Equal(t, testCase.item.Name, projection.Name)
			assert.Equal(t, testCase.wantEmoji, projection.Emoji)
			assert.Equal(t, testCase.wantAvailable, projection.Available)
			assert.Equal(t, syncedAt, projection.SyncedAt)
		})
	}
}

func TestDeriveProjection_Deterministic(t *testing.T) {
	item := menuItem("m1", "Burger", 12.5)
	item.Cost = 4.333

	first := service.DeriveProjection(item, time.Unix(100, 0))
	second := service.DeriveProjection(item, time.Unix(200, 0))

	assert.True(t, first.SameProjection(second))
	assert.Equal(t, 4.33, first.Cost)
	assert.Equal(t, 12.5, first.Price)
}

func TestComputeCost(t *testing.T) {
	index := service.NewInventoryIndex([]domain.InventoryItem{
		inventoryItem("flour", 1.25),
		inventoryItem("cheese", 7.00),
		inventoryItem("A", 3.00),
		inventoryItem("B", 5.00),
	})

	tests := []struct {
		name        string
		ingredients []domain.Ingredient
		wantTotal   float64
		wantCosts   []float64
	}{
		{
			name: "all resolvable",
			ingredients: []domain.Ingredient{
				{InventoryItemID: "flour", Quantity: 0.3},
				{InventoryItemID: "cheese", Quantity: 0.2, Cost: 1.0},
			},
			wantTotal: 1.78,
			wantCosts: []float64{0.38, 1.4},
		},
		{
			name: "two ingredients sum",
			ingredients: []domain.Ingredient{
				{InventoryItemID: "A", Quantity: 2, Unit: "kg"},
				{InventoryItemID: "B", Quantity: 1, Unit: "kg"},
			},
			wantTotal: 11.00,
			wantCosts: []float64{6, 5},
		},
		{
			name: "missing inventory keeps last cost",
			ingredients: []domain.Ingredient{
				{InventoryItemID: "cheese", Quantity: 2},
				{InventoryItemID: "basil", Quantity: 1, Cost: 0.5},
			},
			wantTotal: 14.5,
			wantCosts: []float64{14, 0.5},
		},
		{
			name:        "no ingredients",
			ingredients: nil,
			wantTotal:   0,
			wantCosts:   []float64{},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			total, out := service.ComputeCost(testCase.ingredients, index)

			assert.Equal(t, testCase.wantTotal, total)
			costs := make([]float64, len(out))
			for i, ing := range out {
				costs[i] = ing.Cost
			}
			assert.Equal(t, testCase.wantCosts, costs)
		})
	}
}

func TestComputeCost_RefreshesCachedFields(t *testing.T) {
	index := service.NewInventoryIndex([]domain.InventoryItem{inventoryItem("cheese", 7)})
	ingredients := []domain.Ingredient{{InventoryItemID: "cheese", Quantity: 1, Cost: 3}}

	_, out := service.ComputeCost(ingredients, index)

	assert.Equal(t, "inv-cheese", out[0].InventoryItemName)
	assert.Equal(t, "kg", out[0].Unit)
	assert.Equal(t, 7.0, out[0].CostPerUnit)
	assert.Equal(t, 3.0, ingredients[0].Cost, "input must not be modified")
}

func TestCostChanged(t *testing.T) {
	assert.False(t, service.CostChanged(8.0, 8.0))
	assert.False(t, service.CostChanged(8.0, 8.0005))
	assert.True(t, service.CostChanged(8.0, 8.01))
	assert.True(t, service.CostChanged(8.0, 14.0))
}
