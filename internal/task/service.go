package task

import (
	"context"
	"fmt"
	"time"

	"github.com/jprdgz/sakahan-api/internal/domain"
	"github.com/jprdgz/sakahan-api/internal/event"
	"github.com/jprdgz/sakahan-api/internal/logger"
	"github.com/jprdgz/sakahan-api/internal/metrics"
	"github.com/jprdgz/sakahan-api/internal/repository"
)

// Service manages scheduled field work. Completing a task is the only way
// a field moves through its lifecycle: planting moves it to Planted,
// harvesting archives it. Watering and fertilizing complete without
// touching the lifecycle.
type Service interface {
	CreateTask(ctx context.Context, task *domain.Task) (*domain.Task, error)
	GetTask(ctx context.Context, taskID string) (*domain.Task, error)
	ListTasks(ctx context.Context, ownerID, fieldID string) ([]domain.Task, error)

	// CompleteTask marks a task done and applies its lifecycle effect
	// atomically with the task update. Kilos is only recorded for
	// harvesting tasks.
	CompleteTask(ctx context.Context, taskID string, kilos float64) (*domain.Task, error)
}

type service struct {
	tasks  repository.Task
	fields repository.Field
	bus    event.Bus
	now    func() time.Time
}

// NewService creates the task service. A nil now defaults to time.Now.
func NewService(tasks repository.Task, fields repository.Field, bus event.Bus, now func() time.Time) Service {
	if now == nil {
		now = time.Now
	}
	return &service{tasks: tasks, fields: fields, bus: bus, now: now}
}

func (s *service) CreateTask(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	log := logger.FromContext(ctx)

	if !domain.ValidTaskType(task.Type) {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidInput, task.Type)
	}
	if task.ScheduledDate.IsZero() {
		return nil, fmt.Errorf("%w: scheduled date is required", domain.ErrInvalidInput)
	}

	field, err := s.fields.GetField(ctx, task.FieldID)
	if err != nil {
		return nil, err
	}
	if field.Archived {
		return nil, domain.ErrFieldArchived
	}
	task.OwnerID = field.OwnerID

	created, err := s.tasks.CreateTask(ctx, task)
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	log.Info("Task created", "task_id", created.ID, "field_id", created.FieldID, "type", created.Type)
	return created, nil
}

func (s *service) GetTask(ctx context.Context, taskID string) (*domain.Task, error) {
	return s.tasks.GetTask(ctx, taskID)
}

func (s *service) ListTasks(ctx context.Context, ownerID, fieldID string) ([]domain.Task, error) {
	return s.tasks.ListByOwner(ctx, ownerID, fieldID)
}

func (s *service) CompleteTask(ctx context.Context, taskID string, kilos float64) (*domain.Task, error) {
	log := logger.FromContext(ctx)

	if kilos < 0 {
		return nil, fmt.Errorf("%w: harvested kilos cannot be negative", domain.ErrInvalidInput)
	}

	tx, err := s.fields.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	task, err := tx.GetTaskForUpdate(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.Completed {
		return nil, domain.ErrTaskCompleted
	}

	field, err := tx.GetFieldForUpdate(ctx, task.FieldID)
	if err != nil {
		return nil, err
	}
	// An archived field is terminal: no task on it may complete, most
	// importantly not a second harvest.
	if field.Archived {
		return nil, domain.ErrFieldArchived
	}

	at := s.now()
	if task.Type != domain.TaskHarvesting {
		kilos = 0
	}

	if err := tx.CompleteTask(ctx, taskID, at, kilos); err != nil {
		return nil, fmt.Errorf("failed to complete task: %w", err)
	}

	archived := false
	switch task.Type {
	case domain.TaskPlanting:
		if err := tx.MarkPlanted(ctx, field.ID, at); err != nil {
			return nil, fmt.Errorf("failed to mark field planted: %w", err)
		}
	case domain.TaskHarvesting:
		if err := tx.ArchiveField(ctx, field.ID, at); err != nil {
			return nil, fmt.Errorf("failed to archive field: %w", err)
		}
		archived = true
	}

	if err := tx.TouchFarmer(ctx, field.OwnerID, at); err != nil {
		return nil, fmt.Errorf("failed to touch farmer activity: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit task completion: %w", err)
	}

	metrics.TasksCompleted.WithLabelValues(string(task.Type)).Inc()
	log.Info("Task completed", "task_id", taskID, "field_id", field.ID, "type", task.Type, "kilos", kilos)

	s.publish(ctx, event.NewTaskCompletedEvent(taskID, field.ID, field.OwnerID, string(task.Type), kilos, at))
	if archived {
		metrics.FieldsArchived.Inc()
		log.Info("Field archived after harvest", "field_id", field.ID)
		s.publish(ctx, event.NewFieldEvent(event.FieldArchived, field.ID, field.OwnerID, field.Name, field.SoilType))
	}

	return s.tasks.GetTask(ctx, taskID)
}

func (s *service) publish(ctx context.Context, e event.Event) {
	if err := s.bus.Publish(ctx, e); err != nil {
		logger.FromContext(ctx).Warn("Failed to publish task event", "type", e.Type, "error", err)
	}
}
