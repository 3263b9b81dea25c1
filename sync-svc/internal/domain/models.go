package domain

import (
	"fmt"
	"strings"
	"time"
)

// Scope is the (tenant, location) partition every collection and engine is keyed by.
type Scope struct {
	TenantID   string `json:"tenant_id" yaml:"tenantId"`
	LocationID string `json:"location_id" yaml:"locationId"`
}

func (s Scope) String() string {
	return s.TenantID + "/" + s.LocationID
}

func (s Scope) Valid() bool {
	return strings.TrimSpace(s.TenantID) != "" && strings.TrimSpace(s.LocationID) != ""
}

// ParseScope accepts the "tenant/location" form used in config and confirmations.
func ParseScope(raw string) (Scope, error) {
	parts := strings.Split(strings.TrimSpace(raw), "/")
	if len(parts) != 2 {
		return Scope{}, fmt.Errorf("scope %q: expected tenant/location", raw)
	}
	scope := Scope{TenantID: strings.TrimSpace(parts[0]), LocationID: strings.TrimSpace(parts[1])}
	if !scope.Valid() {
		return Scope{}, fmt.Errorf("scope %q: empty tenant or location", raw)
	}
	return scope, nil
}

type MenuItemStatus string

const (
	StatusActive     MenuItemStatus = "active"
	StatusInactive   MenuItemStatus = "inactive"
	StatusOutOfStock MenuItemStatus = "out_of_stock"
)

// Ingredient is embedded in a MenuItem. InventoryItemID is a weak reference:
// when it does not resolve, the cached Cost and CostPerUnit are kept as-is.
// Unit and InventoryItemName are caches and may be empty on legacy records;
// a recompute fills them from the inventory item.
type Ingredient struct {
	InventoryItemID   string  `json:"inventory_item_id"`
	InventoryItemName string  `json:"inventory_item_name,omitempty"`
	Quantity          float64 `json:"quantity"`
	Unit              string  `json:"unit,omitempty"`
	Cost              float64 `json:"cost"`
	CostPerUnit       float64 `json:"cost_per_unit"`
}

// CostAudit is stamped on a MenuItem each time the propagation engine rewrites its cost.
type CostAudit struct {
	PreviousCost       float64   `json:"previous_cost"`
	NewCost            float64   `json:"new_cost"`
	UpdatedAt          time.Time `json:"updated_at"`
	ChangedIngredients []string  `json:"changed_ingredients"`
}

type MenuItem struct {
	ID          string         `json:"id"`
	TenantID    string         `json:"tenant_id"`
	LocationID  string         `json:"location_id"`
	Name        string         `json:"name"`
	Category    string         `json:"category"`
	Emoji       string         `json:"emoji,omitempty"`
	Price       float64        `json:"price"`
	Cost        float64        `json:"cost"`
	Ingredients []Ingredient   `json:"ingredients"`
	Status      MenuItemStatus `json:"status"`
	CostAudit   *CostAudit     `json:"cost_audit,omitempty"`
}

func (m MenuItem) Scope() Scope {
	return Scope{TenantID: m.TenantID, LocationID: m.LocationID}
}

// References reports whether any ingredient points at one of the given inventory ids.
func (m MenuItem) References(ids map[string]struct{}) bool {
	for _, ing := range m.Ingredients {
		if _, ok := ids[ing.InventoryItemID]; ok {
			return true
		}
	}
	return false
}

// POSItem is the materialized projection of a MenuItem; it shares the menu item's id.
type POSItem struct {
	ID         string    `json:"id"`
	TenantID   string    `json:"tenant_id"`
	LocationID string    `json:"location_id"`
	Name       string    `json:"name"`
	Category   string    `json:"category"`
	Emoji      string    `json:"emoji"`
	Price      float64   `json:"price"`
	Cost       float64   `json:"cost"`
	Available  bool      `json:"available"`
	SyncedAt   time.Time `json:"synced_at"`
}

func (p POSItem) Scope() Scope {
	return Scope{TenantID: p.TenantID, LocationID: p.LocationID}
}

// SameProjection compares every projected field, ignoring SyncedAt.
func (p POSItem) SameProjection(other POSItem) bool {
	return p.ID == other.ID &&
		p.TenantID == other.TenantID &&
		p.LocationID == other.LocationID &&
		p.Name == other.Name &&
		p.Category == other.Category &&
		p.Emoji == other.Emoji &&
		p.Price == other.Price &&
		p.Cost == other.Cost &&
		p.Available == other.Available
}

type InventoryItem struct {
	ID          string  `json:"id"`
	TenantID    string  `json:"tenant_id"`
	LocationID  string  `json:"location_id"`
	Name        string  `json:"name"`
	Unit        string  `json:"unit"`
	CostPerUnit float64 `json:"cost_per_unit"`
}

type SyncStats struct {
	MenuItems     int `json:"menu_items"`
	POSItems      int `json:"pos_items"`
	LinkedItems   int `json:"linked_items"`
	OrphanedItems int `json:"orphaned_items"`
}

type SyncReport struct {
	Valid  bool      `json:"valid"`
	Issues []string  `json:"issues"`
	Stats  SyncStats `json:"stats"`

	Orphans  []string `json:"orphans,omitempty"`
	Unlinked []string `json:"unlinked,omitempty"`
}

// SyncResult summarizes one full sync pass.
type SyncResult struct {
	Total     int `json:"total"`
	Upserted  int `json:"upserted"`
	Unchanged int `json:"unchanged"`
	Failed    int `json:"failed"`
}

// CostUpdate is one staged entry of an atomic cost batch. Only the cost-owned
// fields of the menu item are rewritten.
type CostUpdate struct {
	MenuItemID  string       `json:"menu_item_id"`
	Cost        float64      `json:"cost"`
	Ingredients []Ingredient `json:"ingredients"`
	Audit       CostAudit    `json:"audit"`
}

type CostsUpdatedEvent struct {
	ID           string    `json:"id"`
	Type         string    `json:"type"`
	TenantID     string    `json:"tenant_id"`
	LocationID   string    `json:"location_id"`
	UpdatedCount int       `json:"updated_count"`
	MenuItemIDs  []string  `json:"menu_item_ids"`
	Timestamp    time.Time `json:"timestamp"`
}

func (e CostsUpdatedEvent) Scope() Scope {
	return Scope{TenantID: e.TenantID, LocationID: e.LocationID}
}

type EngineStatus struct {
	Active             bool       `json:"active"`
	State              string     `json:"state"`
	MenuItemCount      int        `json:"menu_item_count"`
	InventoryItemCount int        `json:"inventory_item_count"`
	LastCycleAt        *time.Time `json:"last_cycle_at,omitempty"`
	LastUpdatedCount   int        `json:"last_updated_count"`
	LastError          string     `json:"last_error,omitempty"`
}

// ForceSyncResult summarizes one forceSyncAll pass.
type ForceSyncResult struct {
	Checked int `json:"checked"`
	Updated int `json:"updated"`
}
