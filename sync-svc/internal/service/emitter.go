package service

import (
	"context"
	"errors"
	"log"

	"overcooked-menusync/sync-svc/internal/domain"
)

// MultiEmitter fans a notification out to every configured emitter. One failing
// emitter does not stop delivery to the others.
type MultiEmitter struct {
	emitters []Emitter
}

func NewMultiEmitter(emitters ...Emitter) *MultiEmitter {
	m := &MultiEmitter{}
	for _, e := range emitters {
		m.Add(e)
	}
	return m
}

func (m *MultiEmitter) Add(e Emitter) {
	if e != nil {
		m.emitters = append(m.emitters, e)
	}
}

func (m *MultiEmitter) Len() int {
	return len(m.emitters)
}

func (m *MultiEmitter) CostsUpdated(ctx context.Context, event domain.CostsUpdatedEvent) error {
	var errs []error
	for _, e := range m.emitters {
		if err := e.CostsUpdated(ctx, event); err != nil {
			log.Printf("Emitter %T failed for %s: %v", e, event.Scope(), err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
