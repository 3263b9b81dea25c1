package storage

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"overcooked-menusync/sync-svc/internal/domain"

	"github.com/segmentio/kafka-go"
)

type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

type inventoryLister interface {
	ListInventory(ctx context.Context, scope domain.Scope) ([]domain.InventoryItem, error)
}

// InventoryFeedHub turns inventory change notifications into full inventory
// snapshots for every subscribed scope. A periodic poll covers notifications
// that were lost or never published.
type InventoryFeedHub struct {
	Reader       MessageReader
	Inventory    inventoryLister
	PollInterval time.Duration

	mu          sync.Mutex
	subscribers map[domain.Scope]map[chan []domain.InventoryItem]struct{}
	// refreshing serializes read-then-offer per scope so an older read never
	// replaces a newer snapshot.
	refreshing map[domain.Scope]*sync.Mutex
}

func NewInventoryFeedHub(reader MessageReader, inventory inventoryLister, pollInterval time.Duration) *InventoryFeedHub {
	return &InventoryFeedHub{
		Reader:       reader,
		Inventory:    inventory,
		PollInterval: pollInterval,
		subscribers:  make(map[domain.Scope]map[chan []domain.InventoryItem]struct{}),
		refreshing:   make(map[domain.Scope]*sync.Mutex),
	}
}

// Subscribe delivers the current inventory immediately and a new snapshot on
// every change. Undelivered snapshots are replaced by newer ones. The channel
// closes when ctx is done.
func (h *InventoryFeedHub) Subscribe(ctx context.Context, scope domain.Scope) (<-chan []domain.InventoryItem, error) {
	lock := h.scopeLock(scope)
	lock.Lock()
	defer lock.Unlock()

	snapshot, err := h.Inventory.ListInventory(ctx, scope)
	if err != nil {
		return nil, err
	}

	ch := make(chan []domain.InventoryItem, 1)
	ch <- snapshot

	h.mu.Lock()
	if h.subscribers[scope] == nil {
		h.subscribers[scope] = make(map[chan []domain.InventoryItem]struct{})
	}
	h.subscribers[scope][ch] = struct{}{}
	h.mu.Unlock()

	go func() {
		<-ctx.Done()
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.subscribers[scope], ch)
		if len(h.subscribers[scope]) == 0 {
			delete(h.subscribers, scope)
		}
		close(ch)
	}()
	return ch, nil
}

// Run consumes change notifications until ctx is done. Without a reader
// only the poll ticker runs.
func (h *InventoryFeedHub) Run(ctx context.Context) {
	log.Println("Starting inventory feed consumer...")
	if h.PollInterval > 0 {
		go h.poll(ctx)
	}
	if h.Reader == nil {
		<-ctx.Done()
		return
	}
	for {
		message, err := h.Reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				return
			}
			log.Printf("Error reading inventory message: %v", err)
			select {
			case <-ctx.Done():
				return
			case <-time.After(time.Second):
			}
			continue
		}

		var msg domain.InventoryChangeMessage
		if err := json.Unmarshal(message.Value, &msg); err != nil {
			log.Printf("Error unmarshaling inventory message: %v", err)
			continue
		}
		h.ProcessChange(ctx, msg)
	}
}

// ProcessChange refreshes the snapshot of the scope named by msg.
func (h *InventoryFeedHub) ProcessChange(ctx context.Context, msg domain.InventoryChangeMessage) {
	scope := msg.Scope()
	if !scope.Valid() {
		log.Printf("Skipping inventory message without scope: %+v", msg)
		return
	}
	if !h.subscribed(scope) {
		return
	}
	h.Refresh(ctx, scope)
}

// Refresh reads the inventory of scope and offers it to every subscriber.
func (h *InventoryFeedHub) Refresh(ctx context.Context, scope domain.Scope) {
	lock := h.scopeLock(scope)
	lock.Lock()
	defer lock.Unlock()

	snapshot, err := h.Inventory.ListInventory(ctx, scope)
	if err != nil {
		log.Printf("Error refreshing inventory %s: %v", scope, err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subscribers[scope] {
		offerLatest(ch, snapshot)
	}
}

func (h *InventoryFeedHub) Close() error {
	if h.Reader == nil {
		return nil
	}
	return h.Reader.Close()
}

func (h *InventoryFeedHub) poll(ctx context.Context) {
	ticker := time.NewTicker(h.PollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for _, scope := range h.scopes() {
				h.Refresh(ctx, scope)
			}
		}
	}
}

func (h *InventoryFeedHub) scopeLock(scope domain.Scope) *sync.Mutex {
	h.mu.Lock()
	defer h.mu.Unlock()
	lock, ok := h.refreshing[scope]
	if !ok {
		lock = &sync.Mutex{}
		h.refreshing[scope] = lock
	}
	return lock
}

func (h *InventoryFeedHub) subscribed(scope domain.Scope) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subscribers[scope]) > 0
}

func (h *InventoryFeedHub) scopes() []domain.Scope {
	h.mu.Lock()
	defer h.mu.Unlock()
	scopes := make([]domain.Scope, 0, len(h.subscribers))
	for scope := range h.subscribers {
		scopes = append(scopes, scope)
	}
	return scopes
}
