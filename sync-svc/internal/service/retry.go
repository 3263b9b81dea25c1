package service

import (
	"context"
	"log"
	"time"

	"overcooked-menusync/sync-svc/internal/domain"
)

// RetryPolicy retries transient store errors with exponential backoff.
type RetryPolicy struct {
	Attempts int
	Base     time.Duration
}

var DefaultRetryPolicy = RetryPolicy{Attempts: 3, Base: 100 * time.Millisecond}

func (p RetryPolicy) Do(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	attempts := p.Attempts
	if attempts < 1 {
		attempts = 1
	}
	delay := p.Base

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err = fn(ctx); err == nil || !domain.IsTransient(err) {
			return err
		}
		if attempt == attempts {
			break
		}
		log.Printf("Retrying %s after transient error (attempt %d/%d): %v", op, attempt, attempts, err)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}
	return err
}
