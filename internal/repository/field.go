package repository

import (
	"context"
	"time"

	"github.com/jprdgz/sakahan-api/internal/domain"
)

// Field handles field persistence.
type Field interface {
	// CreateField inserts a new field in the Active state.
	CreateField(ctx context.Context, field *domain.Field) (*domain.Field, error)

	// GetField retrieves a field by id, archived or not.
	GetField(ctx context.Context, fieldID string) (*domain.Field, error)

	// UpdateField persists editable attributes (name, soil, size, location,
	// watering method, last year's crop). It never touches the selection
	// lock or lifecycle columns.
	UpdateField(ctx context.Context, field *domain.Field) (*domain.Field, error)

	// DeleteField removes a field and cascades to its tasks.
	DeleteField(ctx context.Context, fieldID string) error

	// ListActiveByOwner returns the owner's non-archived fields.
	ListActiveByOwner(ctx context.Context, ownerID string) ([]domain.Field, error)

	// ListCompletedByOwner returns the owner's archived fields with their
	// locked recommendations and final yield intact.
	ListCompletedByOwner(ctx context.Context, ownerID string) ([]domain.Field, error)

	// ListAll returns every field. Administrative listings only.
	ListAll(ctx context.Context) ([]domain.Field, error)

	// BeginTx starts a transaction for lock-sensitive field mutations.
	BeginTx(ctx context.Context) (FieldTx, error)
}

// FieldTx groups the mutations that must be applied atomically per field:
// the selection lock write and the lifecycle transitions. Implementations
// take a row lock in GetFieldForUpdate/GetTaskForUpdate so concurrent
// writers serialize instead of interleaving partial updates.
type FieldTx interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	// GetFieldForUpdate retrieves a field with a FOR UPDATE lock.
	GetFieldForUpdate(ctx context.Context, fieldID string) (*domain.Field, error)

	// SaveSelection writes the selected crop and its frozen snapshot in one
	// statement; selected_crop is never set without the snapshot.
	SaveSelection(ctx context.Context, fieldID, cropName string, recs []domain.Recommendation, weather domain.WeatherSnapshot, tip string) error

	// MarkPlanted records the planted date and moves the field to Planted.
	MarkPlanted(ctx context.Context, fieldID string, at time.Time) error

	// ArchiveField performs the terminal transition: harvest date, archived
	// flag and completion timestamp in a single statement.
	ArchiveField(ctx context.Context, fieldID string, at time.Time) error

	// GetTaskForUpdate retrieves a task with a FOR UPDATE lock.
	GetTaskForUpdate(ctx context.Context, taskID string) (*domain.Task, error)

	// CompleteTask marks a task completed, recording harvested kilos for
	// harvesting tasks.
	CompleteTask(ctx context.Context, taskID string, at time.Time, kilos float64) error

	// TouchFarmer updates the owner's last-active timestamp inside the
	// same transaction as the triggering write.
	TouchFarmer(ctx context.Context, farmerID string, at time.Time) error
}
