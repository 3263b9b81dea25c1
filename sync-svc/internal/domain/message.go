package domain

import "time"

// InventoryChangeMessage is the notification the inventory service publishes
// whenever an item of a location changes.
type InventoryChangeMessage struct {
	Type            string    `json:"type"`
	TenantID        string    `json:"tenant_id"`
	LocationID      string    `json:"location_id"`
	InventoryItemID string    `json:"inventory_item_id"`
	Timestamp       time.Time `json:"timestamp"`
}

func (m InventoryChangeMessage) Scope() Scope {
	return Scope{TenantID: m.TenantID, LocationID: m.LocationID}
}
