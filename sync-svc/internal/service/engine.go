package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"overcooked-menusync/sync-svc/internal/domain"
	"overcooked-menusync/sync-svc/internal/metrics"

	"github.com/google/uuid"
)

type State int32

const (
	StateStopped State = iota
	StateStarting
	StateActive
)

func (s State) String() string {
	switch s {
	case StateStarting:
		return "starting"
	case StateActive:
		return "active"
	default:
		return "stopped"
	}
}

type EngineConfig struct {
	QueueSize      int
	EmitTimeout    time.Duration
	ResubscribeMax time.Duration
}

var DefaultEngineConfig = EngineConfig{
	QueueSize:      16,
	EmitTimeout:    5 * time.Second,
	ResubscribeMax: 30 * time.Second,
}

// EngineDeps are the collaborators shared by every engine of a registry.
type EngineDeps struct {
	Menus     MenuRepository
	Inventory InventoryRepository
	Feed      InventoryFeed
	Emitter   Emitter
	Projector Projector
	Metrics   *metrics.Collector
	Config    EngineConfig
}

type jobKind int

const (
	jobSnapshot jobKind = iota
	jobForceSync
	jobReloadMenu
)

type forceSyncReply struct {
	result domain.ForceSyncResult
	err    error
}

type job struct {
	kind     jobKind
	snapshot []domain.InventoryItem
	reply    chan forceSyncReply
}

// Engine propagates inventory cost changes into the menu items of one scope.
//
// A single worker goroutine drains a bounded queue of feed deliveries and force
// sync requests; prices and menuItems are only touched from that worker (or
// from Start/ForceSyncAll while no worker is running).
type Engine struct {
	scope domain.Scope
	deps  EngineDeps
	retry RetryPolicy
	now   func() time.Time

	lifecycle sync.Mutex

	mu     sync.Mutex
	state  State
	cancel context.CancelFunc
	queue  chan job
	done   chan struct{}
	status domain.EngineStatus

	menuStale atomic.Bool

	prices    InventoryIndex
	menuItems map[string]domain.MenuItem
}

func NewEngine(scope domain.Scope, deps EngineDeps) *Engine {
	if deps.Config.QueueSize <= 0 {
		deps.Config.QueueSize = DefaultEngineConfig.QueueSize
	}
	if deps.Config.EmitTimeout <= 0 {
		deps.Config.EmitTimeout = DefaultEngineConfig.EmitTimeout
	}
	if deps.Config.ResubscribeMax <= 0 {
		deps.Config.ResubscribeMax = DefaultEngineConfig.ResubscribeMax
	}
	return &Engine{
		scope:     scope,
		deps:      deps,
		retry:     DefaultRetryPolicy,
		now:       time.Now,
		prices:    InventoryIndex{},
		menuItems: map[string]domain.MenuItem{},
	}
}

func (e *Engine) Scope() domain.Scope {
	return e.scope
}

func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

func (e *Engine) Status() domain.EngineStatus {
	e.mu.Lock()
	defer e.mu.Unlock()
	status := e.status
	status.State = e.state.String()
	status.Active = e.state == StateActive
	return status
}

// Start runs a force sync pass, subscribes to the inventory feed and starts the worker.
func (e *Engine) Start(ctx context.Context) error {
	e.lifecycle.Lock()
	defer e.lifecycle.Unlock()

	e.mu.Lock()
	if e.state != StateStopped {
		e.mu.Unlock()
		return ErrEngineRunning
	}
	e.state = StateStarting
	e.mu.Unlock()

	if _, err := e.forceSyncAll(ctx); err != nil {
		if !errors.Is(err, domain.ErrBatchRejected) {
			e.stopped(err)
			return fmt.Errorf("start %s: %w", e.scope, err)
		}
		log.Printf("Engine %s: initial cost batch rejected, next delivery retries: %v", e.scope, err)
	}

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	deliveries, err := e.deps.Feed.Subscribe(runCtx, e.scope)
	if err != nil {
		cancel()
		e.stopped(err)
		return fmt.Errorf("subscribe inventory feed %s: %w", e.scope, err)
	}

	menuCount, inventoryCount := len(e.menuItems), len(e.prices)
	queue := make(chan job, e.deps.Config.QueueSize)
	done := make(chan struct{})

	e.mu.Lock()
	e.state = StateActive
	e.cancel = cancel
	e.queue = queue
	e.done = done
	e.mu.Unlock()

	go e.pump(runCtx, deliveries, queue)
	go e.run(runCtx, queue, done)

	e.deps.Metrics.EngineStarted()
	log.Printf("Engine %s: active (%d menu items, %d inventory items)", e.scope, menuCount, inventoryCount)
	return nil
}

// Stop cancels the subscription and waits for the worker to exit. A batch
// already sent to the store is allowed to complete. Safe on a stopped engine.
func (e *Engine) Stop() error {
	e.lifecycle.Lock()
	defer e.lifecycle.Unlock()

	e.mu.Lock()
	if e.state != StateActive {
		e.mu.Unlock()
		return nil
	}
	cancel, done := e.cancel, e.done
	e.state = StateStopped
	e.cancel, e.queue, e.done = nil, nil, nil
	e.mu.Unlock()

	cancel()
	<-done
	e.deps.Metrics.EngineStopped()
	log.Printf("Engine %s: stopped", e.scope)
	return nil
}

// ForceSyncAll recomputes every menu item against a fresh inventory read. On a
// running engine the request goes through the worker queue.
func (e *Engine) ForceSyncAll(ctx context.Context) (domain.ForceSyncResult, error) {
	e.mu.Lock()
	queue, done := e.queue, e.done
	e.mu.Unlock()

	if queue == nil {
		e.lifecycle.Lock()
		defer e.lifecycle.Unlock()
		if e.State() == StateStopped {
			return e.forceSyncAll(ctx)
		}
		return e.ForceSyncAll(ctx)
	}

	reply := make(chan forceSyncReply, 1)
	select {
	case queue <- job{kind: jobForceSync, reply: reply}:
	case <-done:
		return domain.ForceSyncResult{}, ErrEngineStopped
	case <-ctx.Done():
		return domain.ForceSyncResult{}, ctx.Err()
	}

	select {
	case r := <-reply:
		return r.result, r.err
	case <-done:
		select {
		case r := <-reply:
			return r.result, r.err
		default:
			return domain.ForceSyncResult{}, ErrEngineStopped
		}
	case <-ctx.Done():
		return domain.ForceSyncResult{}, ctx.Err()
	}
}

// MarkMenuStale queues a menu reload on a running engine. When the queue is
// full the reload happens before the next recompute instead.
func (e *Engine) MarkMenuStale() {
	e.menuStale.Store(true)

	e.mu.Lock()
	queue := e.queue
	e.mu.Unlock()
	if queue == nil {
		return
	}
	select {
	case queue <- job{kind: jobReloadMenu}:
	default:
	}
}

func (e *Engine) stopped(err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state = StateStopped
	if err != nil {
		e.status.LastError = err.Error()
	}
}

func (e *Engine) pump(ctx context.Context, deliveries <-chan []domain.InventoryItem, queue chan<- job) {
	backoff := time.Second
	for {
		select {
		case <-ctx.Done():
			return
		case snapshot, ok := <-deliveries:
			if !ok {
				if ctx.Err() != nil {
					return
				}
				log.Printf("Engine %s: inventory feed closed, resubscribing in %s", e.scope, backoff)
				select {
				case <-ctx.Done():
					return
				case <-time.After(backoff):
				}
				next, err := e.deps.Feed.Subscribe(ctx, e.scope)
				if err != nil {
					log.Printf("Engine %s: resubscribe failed: %v", e.scope, err)
					backoff *= 2
					if backoff > e.deps.Config.ResubscribeMax {
						backoff = e.deps.Config.ResubscribeMax
					}
					deliveries = closedFeed()
					continue
				}
				deliveries, backoff = next, time.Second
				continue
			}
			select {
			case queue <- job{kind: jobSnapshot, snapshot: snapshot}:
			case <-ctx.Done():
				return
			}
		}
	}
}

func closedFeed() <-chan []domain.InventoryItem {
	ch := make(chan []domain.InventoryItem)
	close(ch)
	return ch
}

func (e *Engine) run(ctx context.Context, queue <-chan job, done chan<- struct{}) {
	defer close(done)
	for {
		select {
		case <-ctx.Done():
			return
		case j := <-queue:
			if ctx.Err() != nil {
				if j.reply != nil {
					j.reply <- forceSyncReply{err: ErrEngineStopped}
				}
				return
			}
			switch j.kind {
			case jobSnapshot:
				e.handleSnapshot(ctx, j.snapshot)
			case jobForceSync:
				result, err := e.forceSyncAll(ctx)
				j.reply <- forceSyncReply{result: result, err: err}
			case jobReloadMenu:
				e.handleReload(ctx)
			}
		}
	}
}

func (e *Engine) handleSnapshot(ctx context.Context, snapshot []domain.InventoryItem) {
	index := NewInventoryIndex(snapshot)
	changed := changedPrices(e.prices, index)
	if len(changed) == 0 {
		e.prices = index
		e.recordCycle(0, nil)
		e.deps.Metrics.PropagationCycle(e.scope, metrics.OutcomeNoop)
		return
	}

	if e.menuStale.Swap(false) {
		if err := e.reloadMenu(ctx); err != nil {
			e.menuStale.Store(true)
			log.Printf("Engine %s: menu reload failed, using cached items: %v", e.scope, err)
		}
	}

	updates := e.stage(index, changed)
	if len(updates) == 0 {
		e.prices = index
		e.recordCycle(0, nil)
		e.deps.Metrics.PropagationCycle(e.scope, metrics.OutcomeUnchanged)
		return
	}

	if err := e.commit(ctx, updates); err != nil {
		log.Printf("Engine %s: %v", e.scope, err)
		e.recordCycle(0, err)
		return
	}
	e.prices = index
	e.recordCycle(len(updates), nil)
}

func (e *Engine) handleReload(ctx context.Context) {
	if !e.menuStale.Swap(false) {
		return
	}
	if err := e.reloadMenu(ctx); err != nil {
		e.menuStale.Store(true)
		log.Printf("Engine %s: menu reload failed, retrying on next delivery: %v", e.scope, err)
		return
	}
	e.mu.Lock()
	e.status.MenuItemCount = len(e.menuItems)
	e.mu.Unlock()
}

func (e *Engine) forceSyncAll(ctx context.Context) (domain.ForceSyncResult, error) {
	var inventory []domain.InventoryItem
	if err := e.retry.Do(ctx, "list inventory", func(ctx context.Context) error {
		var err error
		inventory, err = e.deps.Inventory.ListInventory(ctx, e.scope)
		return err
	}); err != nil {
		return domain.ForceSyncResult{}, fmt.Errorf("list inventory: %w", err)
	}
	e.menuStale.Store(false)
	if err := e.reloadMenu(ctx); err != nil {
		return domain.ForceSyncResult{}, err
	}

	index := NewInventoryIndex(inventory)
	result := domain.ForceSyncResult{}
	for _, item := range e.menuItems {
		if len(item.Ingredients) > 0 {
			result.Checked++
		}
	}

	updates := e.stage(index, nil)
	if len(updates) > 0 {
		if err := e.commit(ctx, updates); err != nil {
			e.recordCycle(0, err)
			return result, err
		}
	} else {
		e.deps.Metrics.PropagationCycle(e.scope, metrics.OutcomeUnchanged)
	}
	e.prices = index
	result.Updated = len(updates)
	e.recordCycle(len(updates), nil)
	log.Printf("Engine %s: force sync checked %d items, updated %d", e.scope, result.Checked, result.Updated)
	return result, nil
}

func (e *Engine) reloadMenu(ctx context.Context) error {
	var items []domain.MenuItem
	if err := e.retry.Do(ctx, "list menu items", func(ctx context.Context) error {
		var err error
		items, err = e.deps.Menus.ListMenuItems(ctx, e.scope)
		return err
	}); err != nil {
		return fmt.Errorf("list menu items: %w", err)
	}
	cache := make(map[string]domain.MenuItem, len(items))
	for _, item := range items {
		cache[item.ID] = item
	}
	e.menuItems = cache
	return nil
}

// stage computes cost updates for cached menu items. A nil changed set means
// every item with ingredients is a candidate.
func (e *Engine) stage(index InventoryIndex, changed map[string]struct{}) []domain.CostUpdate {
	ids := make([]string, 0, len(e.menuItems))
	for id := range e.menuItems {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	now := e.now()
	var updates []domain.CostUpdate
	for _, id := range ids {
		item := e.menuItems[id]
		if len(item.Ingredients) == 0 {
			continue
		}
		if changed != nil && !item.References(changed) {
			continue
		}
		total, ingredients := ComputeCost(item.Ingredients, index)
		if !CostChanged(item.Cost, total) {
			continue
		}
		updates = append(updates, domain.CostUpdate{
			MenuItemID:  item.ID,
			Cost:        total,
			Ingredients: ingredients,
			Audit: domain.CostAudit{
				PreviousCost:       item.Cost,
				NewCost:            total,
				UpdatedAt:          now,
				ChangedIngredients: changedIngredients(item.Ingredients, ingredients, changed),
			},
		})
	}
	return updates
}

func changedIngredients(before, after []domain.Ingredient, changed map[string]struct{}) []string {
	var ids []string
	for i := range after {
		id := after[i].InventoryItemID
		if changed != nil {
			if _, ok := changed[id]; ok {
				ids = append(ids, id)
			}
			continue
		}
		if CostChanged(before[i].Cost, after[i].Cost) {
			ids = append(ids, id)
		}
	}
	return ids
}

// commit writes the staged updates as one atomic batch, then refreshes the
// cache, notifies listeners and re-projects the POS items.
func (e *Engine) commit(ctx context.Context, updates []domain.CostUpdate) error {
	writeCtx := context.WithoutCancel(ctx)
	if err := e.deps.Menus.ApplyCostUpdates(writeCtx, e.scope, updates); err != nil {
		e.deps.Metrics.PropagationCycle(e.scope, metrics.OutcomeRejected)
		return fmt.Errorf("%w: %d updates: %w", domain.ErrBatchRejected, len(updates), err)
	}
	e.deps.Metrics.PropagationCycle(e.scope, metrics.OutcomeCommitted)
	e.deps.Metrics.CostItemsUpdated(e.scope, len(updates))

	ids := make([]string, 0, len(updates))
	for _, update := range updates {
		item := e.menuItems[update.MenuItemID]
		audit := update.Audit
		item.Cost = update.Cost
		item.Ingredients = update.Ingredients
		item.CostAudit = &audit
		e.menuItems[update.MenuItemID] = item
		ids = append(ids, update.MenuItemID)
	}
	log.Printf("Engine %s: committed cost batch of %d items", e.scope, len(updates))

	e.emit(writeCtx, ids)

	if e.deps.Projector != nil {
		for _, id := range ids {
			if err := e.deps.Projector.Upsert(writeCtx, e.menuItems[id]); err != nil {
				log.Printf("Engine %s: POS cost refresh for %s failed: %v", e.scope, id, err)
			}
		}
	}
	return nil
}

func (e *Engine) emit(ctx context.Context, ids []string) {
	if e.deps.Emitter == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, e.deps.Config.EmitTimeout)
	defer cancel()

	event := domain.CostsUpdatedEvent{
		ID:           uuid.NewString(),
		Type:         "costs_updated",
		TenantID:     e.scope.TenantID,
		LocationID:   e.scope.LocationID,
		UpdatedCount: len(ids),
		MenuItemIDs:  ids,
		Timestamp:    e.now(),
	}
	if err := e.deps.Emitter.CostsUpdated(ctx, event); err != nil {
		log.Printf("Engine %s: costs updated notification failed: %v", e.scope, err)
	}
}

func (e *Engine) recordCycle(updated int, err error) {
	now := e.now()
	e.mu.Lock()
	defer e.mu.Unlock()
	e.status.MenuItemCount = len(e.menuItems)
	e.status.InventoryItemCount = len(e.prices)
	e.status.LastCycleAt = &now
	e.status.LastUpdatedCount = updated
	if err != nil {
		e.status.LastError = err.Error()
	} else {
		e.status.LastError = ""
	}
}

// changedPrices returns inventory ids that are new or whose unit cost moved by more than epsilon.
func changedPrices(previous, current InventoryIndex) map[string]struct{} {
	changed := make(map[string]struct{})
	for id, item := range current {
		prev, ok := previous[id]
		if !ok || CostChanged(prev.CostPerUnit, item.CostPerUnit) {
			changed[id] = struct{}{}
		}
	}
	return changed
}
