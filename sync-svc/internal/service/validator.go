package service

import (
	"context"
	"fmt"
	"sort"

	"overcooked-menusync/sync-svc/internal/domain"
)

// Validator compares the menu catalog and the POS catalog of a scope. It never writes.
type Validator struct {
	menus MenuRepository
	pos   POSRepository
	retry RetryPolicy
}

func NewValidator(menus MenuRepository, pos POSRepository) *Validator {
	return &Validator{menus: menus, pos: pos, retry: DefaultRetryPolicy}
}

func (v *Validator) Validate(ctx context.Context, scope domain.Scope) (domain.SyncReport, error) {
	// POS first: an item created between the reads then shows as unlinked,
	// never as an orphan that cleanup would delete.
	var posItems []domain.POSItem
	if err := v.retry.Do(ctx, "list pos items", func(ctx context.Context) error {
		var err error
		posItems, err = v.pos.ListPOSItems(ctx, scope)
		return err
	}); err != nil {
		return domain.SyncReport{}, fmt.Errorf("list pos items: %w", err)
	}

	var menuItems []domain.MenuItem
	if err := v.retry.Do(ctx, "list menu items", func(ctx context.Context) error {
		var err error
		menuItems, err = v.menus.ListMenuItems(ctx, scope)
		return err
	}); err != nil {
		return domain.SyncReport{}, fmt.Errorf("list menu items: %w", err)
	}

	return BuildReport(menuItems, posItems), nil
}

// BuildReport diffs the two id sets. Issue order is stable: orphans, unlinked, summary.
func BuildReport(menuItems []domain.MenuItem, posItems []domain.POSItem) domain.SyncReport {
	menuIDs := make(map[string]struct{}, len(menuItems))
	names := make(map[string]string, len(menuItems))
	for _, item := range menuItems {
		menuIDs[item.ID] = struct{}{}
		names[item.ID] = item.Name
	}
	posIDs := make(map[string]struct{}, len(posItems))
	posNames := make(map[string]string, len(posItems))
	for _, item := range posItems {
		posIDs[item.ID] = struct{}{}
		posNames[item.ID] = item.Name
	}

	var orphans, unlinked []string
	linked := 0
	for id := range posIDs {
		if _, ok := menuIDs[id]; ok {
			linked++
		} else {
			orphans = append(orphans, id)
		}
	}
	for id := range menuIDs {
		if _, ok := posIDs[id]; !ok {
			unlinked = append(unlinked, id)
		}
	}
	sort.Strings(orphans)
	sort.Strings(unlinked)

	issues := make([]string, 0, len(orphans)+len(unlinked)+1)
	for _, id := range orphans {
		issues = append(issues, fmt.Sprintf("orphaned POS item %s (%q) has no menu item", id, posNames[id]))
	}
	for _, id := range unlinked {
		issues = append(issues, fmt.Sprintf("menu item %s (%q) has no POS item", id, names[id]))
	}
	if len(menuIDs) != len(posIDs) {
		issues = append(issues, fmt.Sprintf("count mismatch: %d menu items, %d POS items", len(menuIDs), len(posIDs)))
	}

	return domain.SyncReport{
		Valid:  len(issues) == 0,
		Issues: issues,
		Stats: domain.SyncStats{
			MenuItems:     len(menuIDs),
			POSItems:      len(posIDs),
			LinkedItems:   linked,
			OrphanedItems: len(orphans),
		},
		Orphans:  orphans,
		Unlinked: unlinked,
	}
}
