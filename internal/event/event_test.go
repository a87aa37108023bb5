package event

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMemoryBus_PublishSubscribe(t *testing.T) {
	bus := NewMemoryBus()

	var received []Event
	bus.Subscribe(TaskCompleted, func(ctx context.Context, e Event) error {
		received = append(received, e)
		return nil
	})

	evt := NewTaskCompletedEvent("t1", "f1", "o1", "harvesting", 120, time.Unix(1700000000, 0))
	err := bus.Publish(context.Background(), evt)

	assert.NoError(t, err)
	assert.Len(t, received, 1)
	payload, ok := received[0].Payload.(TaskCompletedPayloadV1)
	assert.True(t, ok)
	assert.Equal(t, "harvesting", payload.TaskType)
	assert.Equal(t, 120.0, payload.KilosHarvested)
}

func TestMemoryBus_PublishMultipleHandlers(t *testing.T) {
	bus := NewMemoryBus()

	count := 0
	bus.Subscribe(FieldCreated, func(ctx context.Context, e Event) error {
		count++
		return nil
	})
	bus.Subscribe(FieldCreated, func(ctx context.Context, e Event) error {
		count++
		return nil
	})

	err := bus.Publish(context.Background(), NewFieldEvent(FieldCreated, "f1", "o1", "North Paddy", "clay"))
	assert.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestMemoryBus_PublishNoSubscribers(t *testing.T) {
	bus := NewMemoryBus()
	err := bus.Publish(context.Background(), NewFieldEvent(FieldDeleted, "f1", "o1", "North Paddy", ""))
	assert.NoError(t, err)
}

func TestMemoryBus_PublishError(t *testing.T) {
	bus := NewMemoryBus()

	bus.Subscribe(FieldArchived, func(ctx context.Context, e Event) error {
		return errors.New("webhook down")
	})

	err := bus.Publish(context.Background(), NewFieldEvent(FieldArchived, "f1", "o1", "North Paddy", ""))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "field.archived")
}
