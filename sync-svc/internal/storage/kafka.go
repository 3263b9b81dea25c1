package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"overcooked-menusync/sync-svc/internal/domain"

	"github.com/segmentio/kafka-go"
)

type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// KafkaPublisher publishes cost update events keyed by scope so that events of
// one location stay ordered within a partition.
type KafkaPublisher struct {
	Writer MessageWriter
}

func NewKafkaPublisher(writer MessageWriter) *KafkaPublisher {
	return &KafkaPublisher{Writer: writer}
}

func (p *KafkaPublisher) CostsUpdated(ctx context.Context, event domain.CostsUpdatedEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode event %s: %w", event.ID, err)
	}
	return p.Writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.Scope().String()),
		Value: payload,
	})
}
