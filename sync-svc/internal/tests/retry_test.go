package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"overcooked-menusync/sync-svc/internal/domain"
	"overcooked-menusync/sync-svc/internal/service"

	"github.com/stretchr/testify/assert"
)

func TestRetryPolicy_Do(t *testing.T) {
	transient := &domain.TransientError{Op: "read", Err: errors.New("timeout")}
	permanent := errors.New("permission denied")

	tests := []struct {
		name      string
		errs      []error
		wantCalls int
		wantErr   error
	}{
		{name: "success first try", errs: []error{nil}, wantCalls: 1},
		{name: "transient then success", errs: []error{transient, nil}, wantCalls: 2},
		{name: "permanent is not retried", errs: []error{permanent}, wantCalls: 1, wantErr: permanent},
		{name: "gives up after attempts", errs: []error{transient, transient, transient}, wantCalls: 3, wantErr: transient},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			policy := service.RetryPolicy{Attempts: 3, Base: time.Millisecond}
			calls := 0

			err := policy.Do(context.Background(), "op", func(context.Context) error {
				err := testCase.errs[calls]
				calls++
				return err
			})

			assert.Equal(t, testCase.wantCalls, calls)
			if testCase.wantErr != nil {
				assert.ErrorIs(t, err, testCase.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRetryPolicy_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	policy := service.RetryPolicy{Attempts: 3, Base: time.Hour}

	err := policy.Do(ctx, "op", func(context.Context) error {
		return &domain.TransientError{Op: "read", Err: errors.New("timeout")}
	})

	assert.ErrorIs(t, err, context.Canceled)
}
