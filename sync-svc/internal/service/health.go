package service

import (
	"context"
	"fmt"
	"log"

	"overcooked-menusync/sync-svc/internal/domain"
)

// HealthCheck validates scope and, when repair is set and drift was found,
// removes orphans and re-projects the whole menu. The returned report is the
// one taken before any repair.
func HealthCheck(ctx context.Context, scope domain.Scope, validator ValidatorInterface, reconciler ReconcilerInterface, repair bool) (domain.SyncReport, error) {
	report, err := validator.Validate(ctx, scope)
	if err != nil {
		return report, fmt.Errorf("validate %s: %w", scope, err)
	}
	if report.Valid {
		log.Printf("Health check %s: %d menu items, %d POS items, consistent",
			scope, report.Stats.MenuItems, report.Stats.POSItems)
		return report, nil
	}

	for _, issue := range report.Issues {
		log.Printf("Health check %s: %s", scope, issue)
	}
	if !repair {
		return report, nil
	}

	removed, err := reconciler.CleanupOrphans(ctx, scope)
	if err != nil {
		return report, fmt.Errorf("repair %s: %w", scope, err)
	}
	result, err := reconciler.FullSync(ctx, scope)
	if err != nil {
		return report, fmt.Errorf("repair %s: %w", scope, err)
	}
	log.Printf("Health check %s: repaired, %d orphans removed, %d upserted, %d failed",
		scope, removed, result.Upserted, result.Failed)
	return report, nil
}
