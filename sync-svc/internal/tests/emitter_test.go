package tests

import (
	"context"
	"errors"
	"testing"

	"overcooked-menusync/sync-svc/internal/domain"
	"overcooked-menusync/sync-svc/internal/mocks"
	"overcooked-menusync/sync-svc/internal/service"

	"github.com/stretchr/testify/assert"
)

func TestMultiEmitter_DeliversToAll(t *testing.T) {
	event := domain.CostsUpdatedEvent{ID: "e1", TenantID: "t1", LocationID: "l1", UpdatedCount: 1}
	failing := mocks.NewEmitter(t)
	healthy := mocks.NewEmitter(t)
	failing.On("CostsUpdated", context.Background(), event).Return(errors.New("broker down")).Once()
	healthy.On("CostsUpdated", context.Background(), event).Return(nil).Once()

	emitter := service.NewMultiEmitter(failing, nil, healthy)
	err := emitter.CostsUpdated(context.Background(), event)

	assert.Error(t, err)
	assert.Equal(t, 2, emitter.Len())
}

func TestMultiEmitter_Empty(t *testing.T) {
	emitter := service.NewMultiEmitter()

	assert.NoError(t, emitter.CostsUpdated(context.Background(), domain.CostsUpdatedEvent{}))
}
