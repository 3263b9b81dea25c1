package service

import (
	"context"
	"log"
	"sort"
	"sync"

	"overcooked-menusync/sync-svc/internal/domain"
)

// Registry owns one propagation engine per scope. It is created by main and
// handed to the HTTP layer; there is no package-level instance.
type Registry struct {
	deps EngineDeps

	mu      sync.Mutex
	engines map[domain.Scope]*Engine
}

func NewRegistry(deps EngineDeps) *Registry {
	return &Registry{
		deps:    deps,
		engines: make(map[domain.Scope]*Engine),
	}
}

// Get returns the scope's engine, creating a stopped one on first use.
func (r *Registry) Get(scope domain.Scope) *Engine {
	r.mu.Lock()
	defer r.mu.Unlock()
	engine, ok := r.engines[scope]
	if !ok {
		engine = NewEngine(scope, r.deps)
		r.engines[scope] = engine
	}
	return engine
}

func (r *Registry) Lookup(scope domain.Scope) (*Engine, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	engine, ok := r.engines[scope]
	return engine, ok
}

// Remove stops the scope's engine and forgets it.
func (r *Registry) Remove(scope domain.Scope) error {
	r.mu.Lock()
	engine, ok := r.engines[scope]
	delete(r.engines, scope)
	r.mu.Unlock()
	if !ok {
		return nil
	}
	return engine.Stop()
}

func (r *Registry) Start(ctx context.Context, scope domain.Scope) error {
	if !scope.Valid() {
		return ErrInvalidScope
	}
	return r.Get(scope).Start(ctx)
}

func (r *Registry) Stop(scope domain.Scope) error {
	engine, ok := r.Lookup(scope)
	if !ok {
		return nil
	}
	return engine.Stop()
}

func (r *Registry) Status(scope domain.Scope) domain.EngineStatus {
	engine, ok := r.Lookup(scope)
	if !ok {
		return domain.EngineStatus{State: StateStopped.String()}
	}
	return engine.Status()
}

func (r *Registry) ForceSync(ctx context.Context, scope domain.Scope) (domain.ForceSyncResult, error) {
	if !scope.Valid() {
		return domain.ForceSyncResult{}, ErrInvalidScope
	}
	return r.Get(scope).ForceSyncAll(ctx)
}

func (r *Registry) Scopes() []domain.Scope {
	r.mu.Lock()
	defer r.mu.Unlock()
	scopes := make([]domain.Scope, 0, len(r.engines))
	for scope := range r.engines {
		scopes = append(scopes, scope)
	}
	sort.Slice(scopes, func(i, j int) bool { return scopes[i].String() < scopes[j].String() })
	return scopes
}

// Shutdown stops every engine.
func (r *Registry) Shutdown() {
	for _, scope := range r.Scopes() {
		if err := r.Stop(scope); err != nil {
			log.Printf("Stopping engine %s: %v", scope, err)
		}
	}
}

func (r *Registry) MenuItemChanged(item domain.MenuItem) {
	if engine, ok := r.Lookup(item.Scope()); ok {
		engine.MarkMenuStale()
	}
}

func (r *Registry) MenuItemRemoved(scope domain.Scope, id string) {
	if engine, ok := r.Lookup(scope); ok {
		engine.MarkMenuStale()
	}
}
