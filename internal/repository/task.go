package repository

import (
	"context"

	"github.com/jprdgz/sakahan-api/internal/domain"
)

// Task handles task persistence. Tasks live in their own table referencing
// the owning field, so completing one task is a single-row update instead
// of a whole-field rewrite.
type Task interface {
	// CreateTask schedules a new task for a field.
	CreateTask(ctx context.Context, task *domain.Task) (*domain.Task, error)

	// GetTask retrieves a task by id.
	GetTask(ctx context.Context, taskID string) (*domain.Task, error)

	// ListByOwner returns the owner's tasks, optionally narrowed to a field.
	// Pass an empty fieldID for all of the owner's tasks.
	ListByOwner(ctx context.Context, ownerID, fieldID string) ([]domain.Task, error)

	// YieldTrend aggregates completed harvesting tasks into per-year
	// kilos-per-hectare buckets. An empty ownerID aggregates globally.
	YieldTrend(ctx context.Context, ownerID string) ([]domain.YieldPoint, error)

	// HarvestTotal sums recorded kilos over a field's completed harvesting
	// tasks.
	HarvestTotal(ctx context.Context, fieldID string) (float64, error)
}
