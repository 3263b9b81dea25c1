package service

import (
	"context"

	"overcooked-menusync/sync-svc/internal/domain"
)

type MenuRepository interface {
	ListMenuItems(ctx context.Context, scope domain.Scope) ([]domain.MenuItem, error)
	GetMenuItem(ctx context.Context, scope domain.Scope, id string) (*domain.MenuItem, error)
	ApplyCostUpdates(ctx context.Context, scope domain.Scope, updates []domain.CostUpdate) error
}

type POSRepository interface {
	ListPOSItems(ctx context.Context, scope domain.Scope) ([]domain.POSItem, error)
	UpsertPOSItem(ctx context.Context, item domain.POSItem) error
	DeletePOSItem(ctx context.Context, scope domain.Scope, id string) error
	DeleteAllPOSItems(ctx context.Context, scope domain.Scope) (int, error)
}

type InventoryRepository interface {
	ListInventory(ctx context.Context, scope domain.Scope) ([]domain.InventoryItem, error)
}

// InventoryFeed delivers the full current inventory of a scope on every change.
// The returned channel is closed once ctx is done.
type InventoryFeed interface {
	Subscribe(ctx context.Context, scope domain.Scope) (<-chan []domain.InventoryItem, error)
}

type Emitter interface {
	CostsUpdated(ctx context.Context, event domain.CostsUpdatedEvent) error
}

// MenuObserver is told about menu edits so running engines keep their cache current.
type MenuObserver interface {
	MenuItemChanged(item domain.MenuItem)
	MenuItemRemoved(scope domain.Scope, id string)
}

// Projector writes a single POS projection; the reconciler implements it.
type Projector interface {
	Upsert(ctx context.Context, item domain.MenuItem) error
}

type ReconcilerInterface interface {
	Upsert(ctx context.Context, item domain.MenuItem) error
	Remove(ctx context.Context, scope domain.Scope, id string) error
	FullSync(ctx context.Context, scope domain.Scope) (domain.SyncResult, error)
	CleanupOrphans(ctx context.Context, scope domain.Scope) (int, error)
	EmergencyReset(ctx context.Context, scope domain.Scope) (domain.SyncResult, error)
	ResyncItem(ctx context.Context, scope domain.Scope, id string) error
	OnMenuItemCreated(ctx context.Context, item domain.MenuItem) error
	OnMenuItemUpdated(ctx context.Context, item domain.MenuItem) error
	OnMenuItemDeleted(ctx context.Context, scope domain.Scope, id string) error
}

type ValidatorInterface interface {
	Validate(ctx context.Context, scope domain.Scope) (domain.SyncReport, error)
}

type EngineRegistryInterface interface {
	Start(ctx context.Context, scope domain.Scope) error
	Stop(scope domain.Scope) error
	Status(scope domain.Scope) domain.EngineStatus
	ForceSync(ctx context.Context, scope domain.Scope) (domain.ForceSyncResult, error)
}

var (
	_ ReconcilerInterface     = (*Reconciler)(nil)
	_ ValidatorInterface      = (*Validator)(nil)
	_ EngineRegistryInterface = (*Registry)(nil)
	_ MenuObserver            = (*Registry)(nil)
	_ Projector               = (*Reconciler)(nil)
	_ Emitter                 = (*MultiEmitter)(nil)
)
