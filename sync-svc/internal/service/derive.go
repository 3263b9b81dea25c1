package service

import (
	"strings"
	"time"

	"overcooked-menusync/sync-svc/internal/domain"

	"github.com/shopspring/decimal"
)

// CostEpsilon is the smallest cost difference treated as a real change.
const CostEpsilon = 0.001

const defaultEmoji = "🍽️"

var categoryEmoji = map[string]string{
	"pizza":     "🍕",
	"burger":    "🍔",
	"burgers":   "🍔",
	"salad":     "🥗",
	"salads":    "🥗",
	"soup":      "🍲",
	"pasta":     "🍝",
	"dessert":   "🍰",
	"desserts":  "🍰",
	"coffee":    "☕",
	"tea":       "🍵",
	"drink":     "🥤",
	"drinks":    "🥤",
	"beverages": "🥤",
	"breakfast": "🍳",
	"sandwich":  "🥪",
	"seafood":   "🦐",
	"sushi":     "🍣",
}

// EmojiFor resolves the display emoji: explicit value, then category table, then default.
func EmojiFor(item domain.MenuItem) string {
	if item.Emoji != "" {
		return item.Emoji
	}
	if emoji, ok := categoryEmoji[strings.ToLower(strings.TrimSpace(item.Category))]; ok {
		return emoji
	}
	return defaultEmoji
}

// DeriveProjection maps a menu item onto its POS projection. syncedAt is passed in
// so the mapping stays deterministic.
func DeriveProjection(item domain.MenuItem, syncedAt time.Time) domain.POSItem {
	return domain.POSItem{
		ID:         item.ID,
		TenantID:   item.TenantID,
		LocationID: item.LocationID,
		Name:       item.Name,
		Category:   item.Category,
		Emoji:      EmojiFor(item),
		Price:      RoundMoney(item.Price),
		Cost:       RoundMoney(item.Cost),
		Available:  item.Status == domain.StatusActive || item.Status == "",
		SyncedAt:   syncedAt,
	}
}

// InventoryIndex maps inventory ids to their current record.
type InventoryIndex map[string]domain.InventoryItem

func NewInventoryIndex(items []domain.InventoryItem) InventoryIndex {
	index := make(InventoryIndex, len(items))
	for _, item := range items {
		index[item.ID] = item
	}
	return index
}

// ComputeCost recomputes per-ingredient and total cost against the index.
// Unresolvable ingredients keep their last known cost. The input slice is not modified.
func ComputeCost(ingredients []domain.Ingredient, index InventoryIndex) (float64, []domain.Ingredient) {
	total := decimal.Zero
	out := make([]domain.Ingredient, len(ingredients))
	for i, ing := range ingredients {
		out[i] = ing
		inv, ok := index[ing.InventoryItemID]
		if !ok || ing.InventoryItemID == "" {
			total = total.Add(decimal.NewFromFloat(ing.Cost))
			continue
		}
		cost := decimal.NewFromFloat(inv.CostPerUnit).
			Mul(decimal.NewFromFloat(ing.Quantity)).
			Round(2)
		out[i].Cost = cost.InexactFloat64()
		out[i].CostPerUnit = RoundMoney(inv.CostPerUnit)
		if inv.Name != "" {
			out[i].InventoryItemName = inv.Name
		}
		if out[i].Unit == "" {
			out[i].Unit = inv.Unit
		}
		total = total.Add(cost)
	}
	return total.Round(2).InexactFloat64(), out
}

func RoundMoney(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

func CostChanged(previous, next float64) bool {
	return decimal.NewFromFloat(previous).Sub(decimal.NewFromFloat(next)).Abs().
		GreaterThan(decimal.NewFromFloat(CostEpsilon))
}
