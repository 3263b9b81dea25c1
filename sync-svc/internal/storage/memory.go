package storage

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"overcooked-menusync/sync-svc/internal/domain"
)

type docKey struct {
	scope domain.Scope
	id    string
}

type subscriber struct {
	scope domain.Scope
	ch    chan []domain.InventoryItem
}

// MemoryStore is an in-process document store over the three collections. It
// backs STORE_DRIVER=memory and the test suites, and implements the inventory
// change feed natively.
type MemoryStore struct {
	mu        sync.Mutex
	menus     map[docKey]domain.MenuItem
	pos       map[docKey]domain.POSItem
	inventory map[docKey]domain.InventoryItem

	subscribers map[int]subscriber
	nextSubID   int

	failBatch   error
	failUpserts map[string]error
	writes      WriteCounts
}

// WriteCounts tracks writes per collection.
type WriteCounts struct {
	POSUpserts  int
	POSDeletes  int
	CostBatches int
	CostItems   int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		menus:       make(map[docKey]domain.MenuItem),
		pos:         make(map[docKey]domain.POSItem),
		inventory:   make(map[docKey]domain.InventoryItem),
		subscribers: make(map[int]subscriber),
		failUpserts: make(map[string]error),
	}
}

func (s *MemoryStore) PutMenuItem(item domain.MenuItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.menus[docKey{item.Scope(), item.ID}] = cloneMenuItem(item)
}

func (s *MemoryStore) DeleteMenuItem(scope domain.Scope, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.menus, docKey{scope, id})
}

func (s *MemoryStore) ListMenuItems(_ context.Context, scope domain.Scope) ([]domain.MenuItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var items []domain.MenuItem
	for key, item := range s.menus {
		if key.scope == scope {
			items = append(items, cloneMenuItem(item))
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

func (s *MemoryStore) GetMenuItem(_ context.Context, scope domain.Scope, id string) (*domain.MenuItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.menus[docKey{scope, id}]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := cloneMenuItem(item)
	return &clone, nil
}

// ApplyCostUpdates checks every target first and then applies all updates, so a
// rejected batch leaves every item untouched.
func (s *MemoryStore) ApplyCostUpdates(_ context.Context, scope domain.Scope, updates []domain.CostUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.failBatch; err != nil {
		s.failBatch = nil
		return err
	}
	for _, update := range updates {
		if _, ok := s.menus[docKey{scope, update.MenuItemID}]; !ok {
			return fmt.Errorf("menu item %s: %w", update.MenuItemID, domain.ErrNotFound)
		}
	}
	for _, update := range updates {
		key := docKey{scope, update.MenuItemID}
		item := s.menus[key]
		audit := update.Audit
		item.Cost = update.Cost
		item.Ingredients = append([]domain.Ingredient(nil), update.Ingredients...)
		item.CostAudit = &audit
		s.menus[key] = item
	}
	s.writes.CostBatches++
	s.writes.CostItems += len(updates)
	return nil
}

func (s *MemoryStore) ListPOSItems(_ context.Context, scope domain.Scope) ([]domain.POSItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var items []domain.POSItem
	for key, item := range s.pos {
		if key.scope == scope {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

func (s *MemoryStore) GetPOSItem(scope domain.Scope, id string) (domain.POSItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.pos[docKey{scope, id}]
	return item, ok
}

func (s *MemoryStore) UpsertPOSItem(_ context.Context, item domain.POSItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err, ok := s.failUpserts[item.ID]; ok {
		return err
	}
	s.pos[docKey{item.Scope(), item.ID}] = item
	s.writes.POSUpserts++
	return nil
}

func (s *MemoryStore) DeletePOSItem(_ context.Context, scope domain.Scope, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := docKey{scope, id}
	if _, ok := s.pos[key]; !ok {
		return domain.ErrNotFound
	}
	delete(s.pos, key)
	s.writes.POSDeletes++
	return nil
}

func (s *MemoryStore) DeleteAllPOSItems(_ context.Context, scope domain.Scope) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	deleted := 0
	for key := range s.pos {
		if key.scope == scope {
			delete(s.pos, key)
			deleted++
		}
	}
	s.writes.POSDeletes += deleted
	return deleted, nil
}

func (s *MemoryStore) ListInventory(_ context.Context, scope domain.Scope) ([]domain.InventoryItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inventorySnapshot(scope), nil
}

// PutInventoryItem writes an inventory item and notifies the scope's subscribers.
func (s *MemoryStore) PutInventoryItem(item domain.InventoryItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	scope := domain.Scope{TenantID: item.TenantID, LocationID: item.LocationID}
	s.inventory[docKey{scope, item.ID}] = item
	s.notify(scope)
}

func (s *MemoryStore) DeleteInventoryItem(scope domain.Scope, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inventory, docKey{scope, id})
	s.notify(scope)
}

// Subscribe delivers the current snapshot immediately and a fresh one after
// every inventory write in the scope. An undelivered snapshot is replaced by the
// newer one.
func (s *MemoryStore) Subscribe(ctx context.Context, scope domain.Scope) (<-chan []domain.InventoryItem, error) {
	if !scope.Valid() {
		return nil, errors.New("subscribe: invalid scope")
	}
	ch := make(chan []domain.InventoryItem, 1)

	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = subscriber{scope: scope, ch: ch}
	ch <- s.inventorySnapshot(scope)
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		delete(s.subscribers, id)
		close(ch)
		s.mu.Unlock()
	}()
	return ch, nil
}

// FailNextBatch makes the next ApplyCostUpdates call fail with err.
func (s *MemoryStore) FailNextBatch(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failBatch = err
}

// FailUpsert makes every upsert of the given POS id fail with err; nil clears it.
func (s *MemoryStore) FailUpsert(id string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.failUpserts, id)
		return
	}
	s.failUpserts[id] = err
}

func (s *MemoryStore) Writes() WriteCounts {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}

func (s *MemoryStore) inventorySnapshot(scope domain.Scope) []domain.InventoryItem {
	items := make([]domain.InventoryItem, 0)
	for key, item := range s.inventory {
		if key.scope == scope {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items
}

func (s *MemoryStore) notify(scope domain.Scope) {
	for _, sub := range s.subscribers {
		if sub.scope != scope {
			continue
		}
		offerLatest(sub.ch, s.inventorySnapshot(scope))
	}
}

// offerLatest places snapshot on a size-1 channel, replacing a pending one.
func offerLatest(ch chan []domain.InventoryItem, snapshot []domain.InventoryItem) {
	for {
		select {
		case ch <- snapshot:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}

func cloneMenuItem(item domain.MenuItem) domain.MenuItem {
	item.Ingredients = append([]domain.Ingredient(nil), item.Ingredients...)
	if item.CostAudit != nil {
		audit := *item.CostAudit
		item.CostAudit = &audit
	}
	return item
}
