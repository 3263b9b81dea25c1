package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"overcooked-menusync/sync-svc/internal/domain"
	"overcooked-menusync/sync-svc/internal/metrics"
)

// Reconciler keeps the POS catalog a projection of the menu catalog.
type Reconciler struct {
	menus     MenuRepository
	pos       POSRepository
	validator ValidatorInterface
	observer  MenuObserver
	metrics   *metrics.Collector
	retry     RetryPolicy
	now       func() time.Time
}

func NewReconciler(menus MenuRepository, pos POSRepository, validator ValidatorInterface, collector *metrics.Collector) *Reconciler {
	return &Reconciler{
		menus:     menus,
		pos:       pos,
		validator: validator,
		metrics:   collector,
		retry:     DefaultRetryPolicy,
		now:       time.Now,
	}
}

// SetObserver attaches the engine registry after construction; the registry
// itself needs the reconciler as its projector.
func (r *Reconciler) SetObserver(observer MenuObserver) {
	r.observer = observer
}

func (r *Reconciler) Upsert(ctx context.Context, item domain.MenuItem) error {
	projection := DeriveProjection(item, r.now())
	err := r.retry.Do(ctx, "upsert pos item", func(ctx context.Context) error {
		return r.pos.UpsertPOSItem(ctx, projection)
	})
	r.metrics.POSWrite(item.Scope(), "upsert", err)
	if err != nil {
		return fmt.Errorf("upsert pos item %s: %w", item.ID, err)
	}
	return nil
}

func (r *Reconciler) Remove(ctx context.Context, scope domain.Scope, id string) error {
	err := r.retry.Do(ctx, "delete pos item", func(ctx context.Context) error {
		return r.pos.DeletePOSItem(ctx, scope, id)
	})
	if errors.Is(err, domain.ErrNotFound) {
		err = nil
	}
	r.metrics.POSWrite(scope, "delete", err)
	if err != nil {
		return fmt.Errorf("delete pos item %s: %w", id, err)
	}
	return nil
}

// FullSync projects every menu item of the scope. Items whose POS projection is
// already current are skipped; per-item failures are logged and counted.
func (r *Reconciler) FullSync(ctx context.Context, scope domain.Scope) (domain.SyncResult, error) {
	var menuItems []domain.MenuItem
	if err := r.retry.Do(ctx, "list menu items", func(ctx context.Context) error {
		var err error
		menuItems, err = r.menus.ListMenuItems(ctx, scope)
		return err
	}); err != nil {
		return domain.SyncResult{}, fmt.Errorf("list menu items: %w", err)
	}

	existing := make(map[string]domain.POSItem)
	posItems, err := r.pos.ListPOSItems(ctx, scope)
	if err != nil {
		log.Printf("Full sync %s: listing POS items failed, rewriting all: %v", scope, err)
	}
	for _, item := range posItems {
		existing[item.ID] = item
	}

	result := domain.SyncResult{Total: len(menuItems)}
	for _, item := range menuItems {
		if ctx.Err() != nil {
			return result, ctx.Err()
		}
		if current, ok := existing[item.ID]; ok && current.SameProjection(DeriveProjection(item, current.SyncedAt)) {
			result.Unchanged++
			continue
		}
		if err := r.Upsert(ctx, item); err != nil {
			log.Printf("Full sync %s: skipping menu item %s: %v", scope, item.ID, err)
			result.Failed++
			continue
		}
		result.Upserted++
	}

	log.Printf("Full sync %s: %d items, %d upserted, %d unchanged, %d failed",
		scope, result.Total, result.Upserted, result.Unchanged, result.Failed)
	return result, nil
}

func (r *Reconciler) CleanupOrphans(ctx context.Context, scope domain.Scope) (int, error) {
	report, err := r.validator.Validate(ctx, scope)
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, id := range report.Orphans {
		if err := r.Remove(ctx, scope, id); err != nil {
			log.Printf("Cleanup %s: failed to remove orphan %s: %v", scope, id, err)
			continue
		}
		removed++
	}
	r.metrics.OrphansRemoved(scope, removed)
	log.Printf("Cleanup %s: removed %d of %d orphans", scope, removed, len(report.Orphans))
	return removed, nil
}

// EmergencyReset wipes the POS catalog of the scope and rebuilds it. Between the
// two phases the catalog is empty; callers must gate this behind confirmation.
// Cancelling ctx stops the reset only before the delete.
func (r *Reconciler) EmergencyReset(ctx context.Context, scope domain.Scope) (domain.SyncResult, error) {
	log.Printf("EMERGENCY RESET %s: deleting POS catalog", scope)
	r.metrics.EmergencyReset(scope)

	var deleted int
	if err := r.retry.Do(ctx, "delete pos catalog", func(ctx context.Context) error {
		var err error
		deleted, err = r.pos.DeleteAllPOSItems(ctx, scope)
		return err
	}); err != nil {
		return domain.SyncResult{}, fmt.Errorf("delete pos catalog: %w", err)
	}
	log.Printf("EMERGENCY RESET %s: deleted %d POS items, rebuilding", scope, deleted)

	// The catalog is empty now; the rebuild must finish even if the caller goes away.
	result, err := r.FullSync(context.WithoutCancel(ctx), scope)
	if err != nil {
		return result, fmt.Errorf("rebuild pos catalog: %w", err)
	}
	return result, nil
}

// ResyncItem re-reads one menu item and repairs its projection.
func (r *Reconciler) ResyncItem(ctx context.Context, scope domain.Scope, id string) error {
	item, err := r.menus.GetMenuItem(ctx, scope, id)
	if errors.Is(err, domain.ErrNotFound) {
		return r.Remove(ctx, scope, id)
	}
	if err != nil {
		return fmt.Errorf("get menu item %s: %w", id, err)
	}
	return r.Upsert(ctx, *item)
}

func (r *Reconciler) OnMenuItemCreated(ctx context.Context, item domain.MenuItem) error {
	return r.onMenuItemWritten(ctx, "created", item)
}

func (r *Reconciler) OnMenuItemUpdated(ctx context.Context, item domain.MenuItem) error {
	return r.onMenuItemWritten(ctx, "updated", item)
}

func (r *Reconciler) onMenuItemWritten(ctx context.Context, event string, item domain.MenuItem) error {
	if r.observer != nil {
		r.observer.MenuItemChanged(item)
	}
	if err := r.Upsert(ctx, item); err != nil {
		log.Printf("Menu item %s %s in %s: POS sync failed, left for next full sync: %v",
			item.ID, event, item.Scope(), err)
		return err
	}
	return nil
}

func (r *Reconciler) OnMenuItemDeleted(ctx context.Context, scope domain.Scope, id string) error {
	if r.observer != nil {
		r.observer.MenuItemRemoved(scope, id)
	}
	if err := r.Remove(ctx, scope, id); err != nil {
		log.Printf("Menu item %s deleted in %s: POS delete failed, left for cleanup: %v", id, scope, err)
		return err
	}
	return nil
}
