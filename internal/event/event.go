package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jprdgz/sakahan-api/internal/metrics"
)

// Type represents the type of an event
type Type string

// Event represents a generic event in the system
type Event struct {
	Version string      `json:"version"` // Event schema version (e.g., "1.0")
	Type    Type        `json:"type"`
	Payload interface{} `json:"payload"`
}

// EventSchemaVersion is the current payload schema version.
const EventSchemaVersion = "1.0"

// Common event types
const (
	FieldCreated  Type = "field.created"
	FieldUpdated  Type = "field.updated"
	FieldDeleted  Type = "field.deleted"
	FieldArchived Type = "field.archived"
	CropSelected  Type = "field.crop_selected"
	TaskCompleted Type = "task.completed"
)

// Typed event payloads for type safety

// FieldPayloadV1 is the typed payload for field lifecycle events
type FieldPayloadV1 struct {
	FieldID   string `json:"field_id"`
	OwnerID   string `json:"owner_id"`
	FieldName string `json:"field_name"`
	SoilType  string `json:"soil_type,omitempty"`
}

// CropSelectedPayloadV1 is the typed payload for crop selection events
type CropSelectedPayloadV1 struct {
	FieldID  string `json:"field_id"`
	OwnerID  string `json:"owner_id"`
	CropName string `json:"crop_name"`
}

// TaskCompletedPayloadV1 is the typed payload for task completion events
type TaskCompletedPayloadV1 struct {
	TaskID         string  `json:"task_id"`
	FieldID        string  `json:"field_id"`
	OwnerID        string  `json:"owner_id"`
	TaskType       string  `json:"task_type"`
	KilosHarvested float64 `json:"kilos_harvested,omitempty"`
	CompletedAt    int64   `json:"completed_at"`
}

// Type-safe event constructors

// NewFieldEvent creates a field lifecycle event
func NewFieldEvent(eventType Type, fieldID, ownerID, fieldName, soilType string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    eventType,
		Payload: FieldPayloadV1{
			FieldID:   fieldID,
			OwnerID:   ownerID,
			FieldName: fieldName,
			SoilType:  soilType,
		},
	}
}

// NewCropSelectedEvent creates a crop selection event
func NewCropSelectedEvent(fieldID, ownerID, cropName string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    CropSelected,
		Payload: CropSelectedPayloadV1{
			FieldID:  fieldID,
			OwnerID:  ownerID,
			CropName: cropName,
		},
	}
}

// NewTaskCompletedEvent creates a task completion event
func NewTaskCompletedEvent(taskID, fieldID, ownerID, taskType string, kilos float64, completedAt time.Time) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    TaskCompleted,
		Payload: TaskCompletedPayloadV1{
			TaskID:         taskID,
			FieldID:        fieldID,
			OwnerID:        ownerID,
			TaskType:       taskType,
			KilosHarvested: kilos,
			CompletedAt:    completedAt.Unix(),
		},
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()

	metrics.EventsPublished.WithLabelValues(string(event.Type)).Inc()

	if !ok {
		return nil
	}

	// Handlers run synchronously; the publishers in this service are all
	// fire-and-forget and ignore the returned error.
	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			metrics.EventHandlerErrors.WithLabelValues(string(event.Type)).Inc()
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%d handler(s) failed for event %s: %v", len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
