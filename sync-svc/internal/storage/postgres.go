package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"overcooked-menusync/sync-svc/internal/domain"

	"github.com/lib/pq"
)

// PostgresRepository stores each collection as JSONB documents keyed by
// (tenant_id, location_id, id).
type PostgresRepository struct {
	DB *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	for _, table := range []string{"menu_items", "pos_items", "inventory_items"} {
		stmt := fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				tenant_id   TEXT NOT NULL,
				location_id TEXT NOT NULL,
				id          TEXT NOT NULL,
				doc         JSONB NOT NULL,
				updated_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
				PRIMARY KEY (tenant_id, location_id, id)
			)`, table)
		if _, err := r.DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema `%s`: %w", table, err)
		}
	}
	return nil
}

func (r *PostgresRepository) ListMenuItems(ctx context.Context, scope domain.Scope) ([]domain.MenuItem, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, doc FROM menu_items
		WHERE tenant_id = $1 AND location_id = $2
		ORDER BY id`, scope.TenantID, scope.LocationID)
	if err != nil {
		return nil, classify("list menu items", err)
	}
	defer rows.Close()

	var items []domain.MenuItem
	for rows.Next() {
		var item domain.MenuItem
		if err := scanDoc(rows, &item.ID, &item); err != nil {
			return nil, err
		}
		item.TenantID, item.LocationID = scope.TenantID, scope.LocationID
		items = append(items, item)
	}
	return items, classify("list menu items", rows.Err())
}

func (r *PostgresRepository) GetMenuItem(ctx context.Context, scope domain.Scope, id string) (*domain.MenuItem, error) {
	var raw []byte
	err := r.DB.QueryRowContext(ctx, `
		SELECT doc FROM menu_items
		WHERE tenant_id = $1 AND location_id = $2 AND id = $3`,
		scope.TenantID, scope.LocationID, id).Scan(&raw)
	if err != nil {
		return nil, classify("get menu item", err)
	}
	var item domain.MenuItem
	if err := json.Unmarshal(raw, &item); err != nil {
		return nil, fmt.Errorf("decode menu item %s: %w", id, err)
	}
	item.ID, item.TenantID, item.LocationID = id, scope.TenantID, scope.LocationID
	return &item, nil
}

// ApplyCostUpdates merges the cost-owned fields into each document inside one
// transaction. A missing row or failed statement rolls back the whole batch.
func (r *PostgresRepository) ApplyCostUpdates(ctx context.Context, scope domain.Scope, updates []domain.CostUpdate) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return classify("begin cost batch", err)
	}
	defer tx.Rollback()

	for _, update := range updates {
		ingredients, err := json.Marshal(update.Ingredients)
		if err != nil {
			return fmt.Errorf("encode ingredients of %s: %w", update.MenuItemID, err)
		}
		audit, err := json.Marshal(update.Audit)
		if err != nil {
			return fmt.Errorf("encode audit of %s: %w", update.MenuItemID, err)
		}

		result, err := tx.ExecContext(ctx, `
			UPDATE menu_items
			SET doc = doc || jsonb_build_object('cost', $4::numeric, 'ingredients', $5::jsonb, 'cost_audit', $6::jsonb),
			    updated_at = now()
			WHERE tenant_id = $1 AND location_id = $2 AND id = $3`,
			scope.TenantID, scope.LocationID, update.MenuItemID, update.Cost, string(ingredients), string(audit))
		if err != nil {
			return classify("apply cost update", err)
		}
		if n, err := result.RowsAffected(); err == nil && n == 0 {
			return fmt.Errorf("menu item %s: %w", update.MenuItemID, domain.ErrNotFound)
		}
	}

	return classify("commit cost batch", tx.Commit())
}

func (r *PostgresRepository) ListPOSItems(ctx context.Context, scope domain.Scope) ([]domain.POSItem, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, doc FROM pos_items
		WHERE tenant_id = $1 AND location_id = $2
		ORDER BY id`, scope.TenantID, scope.LocationID)
	if err != nil {
		return nil, classify("list pos items", err)
	}
	defer rows.Close()

	var items []domain.POSItem
	for rows.Next() {
		var item domain.POSItem
		if err := scanDoc(rows, &item.ID, &item); err != nil {
			return nil, err
		}
		item.TenantID, item.LocationID = scope.TenantID, scope.LocationID
		items = append(items, item)
	}
	return items, classify("list pos items", rows.Err())
}

func (r *PostgresRepository) UpsertPOSItem(ctx context.Context, item domain.POSItem) error {
	doc, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("encode pos item %s: %w", item.ID, err)
	}
	_, err = r.DB.ExecContext(ctx, `
		INSERT INTO pos_items (tenant_id, location_id, id, doc, updated_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (tenant_id, location_id, id)
		DO UPDATE SET doc = EXCLUDED.doc, updated_at = now()`,
		item.TenantID, item.LocationID, item.ID, string(doc))
	return classify("upsert pos item", err)
}

func (r *PostgresRepository) DeletePOSItem(ctx context.Context, scope domain.Scope, id string) error {
	result, err := r.DB.ExecContext(ctx,
		"DELETE FROM pos_items WHERE tenant_id = $1 AND location_id = $2 AND id = $3",
		scope.TenantID, scope.LocationID, id)
	if err != nil {
		return classify("delete pos item", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) DeleteAllPOSItems(ctx context.Context, scope domain.Scope) (int, error) {
	result, err := r.DB.ExecContext(ctx,
		"DELETE FROM pos_items WHERE tenant_id = $1 AND location_id = $2",
		scope.TenantID, scope.LocationID)
	if err != nil {
		return 0, classify("delete pos catalog", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, classify("delete pos catalog", err)
	}
	return int(n), nil
}

func (r *PostgresRepository) ListInventory(ctx context.Context, scope domain.Scope) ([]domain.InventoryItem, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, doc FROM inventory_items
		WHERE tenant_id = $1 AND location_id = $2
		ORDER BY id`, scope.TenantID, scope.LocationID)
	if err != nil {
		return nil, classify("list inventory", err)
	}
	defer rows.Close()

	var items []domain.InventoryItem
	for rows.Next() {
		var item domain.InventoryItem
		if err := scanDoc(rows, &item.ID, &item); err != nil {
			return nil, err
		}
		item.TenantID, item.LocationID = scope.TenantID, scope.LocationID
		items = append(items, item)
	}
	return items, classify("list inventory", rows.Err())
}

func scanDoc(rows *sql.Rows, id *string, dest any) error {
	var (
		rowID string
		raw   []byte
	)
	if err := rows.Scan(&rowID, &raw); err != nil {
		return classify("scan document", err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("decode document %s: %w", rowID, err)
	}
	*id = rowID
	return nil
}

// classify maps driver errors onto the store error taxonomy. Postgres errors in
// the connection, rollback, resource and operator classes are transient; other
// server errors are permanent; anything below the protocol (network, timeouts,
// bad connections) is transient.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code.Class() {
		case "08", "40", "53", "57":
			return &domain.TransientError{Op: op, Err: err}
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	return &domain.TransientError{Op: op, Err: err}
}
