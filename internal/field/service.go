package field

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jprdgz/sakahan-api/internal/domain"
	"github.com/jprdgz/sakahan-api/internal/event"
	"github.com/jprdgz/sakahan-api/internal/logger"
	"github.com/jprdgz/sakahan-api/internal/repository"
)

// Service manages field records and their listings. Lifecycle transitions
// are not here: they are driven exclusively by task completion.
type Service interface {
	CreateField(ctx context.Context, field *domain.Field) (*domain.Field, error)
	GetField(ctx context.Context, fieldID string) (*domain.Field, error)
	UpdateField(ctx context.Context, field *domain.Field) (*domain.Field, error)
	DeleteField(ctx context.Context, fieldID string) error
	ListActive(ctx context.Context, ownerID string) ([]domain.Field, error)
	ListCompleted(ctx context.Context, ownerID string) ([]domain.Field, error)
	ListAll(ctx context.Context) ([]domain.Field, error)
}

type service struct {
	fields  repository.Field
	tasks   repository.Task
	farmers repository.Farmer
	bus     event.Bus
	now     func() time.Time
}

// NewService creates the field service. A nil now defaults to time.Now.
func NewService(fields repository.Field, tasks repository.Task, farmers repository.Farmer, bus event.Bus, now func() time.Time) Service {
	if now == nil {
		now = time.Now
	}
	return &service{fields: fields, tasks: tasks, farmers: farmers, bus: bus, now: now}
}

func (s *service) CreateField(ctx context.Context, field *domain.Field) (*domain.Field, error) {
	log := logger.FromContext(ctx)

	if err := validateField(field); err != nil {
		return nil, err
	}
	field.SoilType = strings.TrimSpace(field.SoilType)
	field.Name = strings.TrimSpace(field.Name)

	created, err := s.fields.CreateField(ctx, field)
	if err != nil {
		return nil, fmt.Errorf("failed to create field: %w", err)
	}

	if err := s.farmers.TouchLastActive(ctx, created.OwnerID, s.now()); err != nil {
		log.Warn("Failed to touch farmer activity", "farmer_id", created.OwnerID, "error", err)
	}

	log.Info("Field created", "field_id", created.ID, "owner_id", created.OwnerID, "soil_type", created.SoilType)
	s.publish(ctx, event.NewFieldEvent(event.FieldCreated, created.ID, created.OwnerID, created.Name, created.SoilType))

	return created, nil
}

func (s *service) GetField(ctx context.Context, fieldID string) (*domain.Field, error) {
	return s.fields.GetField(ctx, fieldID)
}

func (s *service) UpdateField(ctx context.Context, field *domain.Field) (*domain.Field, error) {
	log := logger.FromContext(ctx)

	if err := validateField(field); err != nil {
		return nil, err
	}

	existing, err := s.fields.GetField(ctx, field.ID)
	if err != nil {
		return nil, err
	}
	if existing.Archived {
		return nil, domain.ErrFieldArchived
	}

	updated, err := s.fields.UpdateField(ctx, field)
	if err != nil {
		return nil, fmt.Errorf("failed to update field: %w", err)
	}

	log.Info("Field updated", "field_id", updated.ID)
	s.publish(ctx, event.NewFieldEvent(event.FieldUpdated, updated.ID, updated.OwnerID, updated.Name, updated.SoilType))

	return updated, nil
}

func (s *service) DeleteField(ctx context.Context, fieldID string) error {
	log := logger.FromContext(ctx)

	field, err := s.fields.GetField(ctx, fieldID)
	if err != nil {
		return err
	}

	// A field with recorded harvests is history, not clutter; it stays.
	total, err := s.tasks.HarvestTotal(ctx, fieldID)
	if err != nil {
		return fmt.Errorf("failed to check harvest history: %w", err)
	}
	if total > 0 {
		return domain.ErrFieldHasYield
	}

	if err := s.fields.DeleteField(ctx, fieldID); err != nil {
		return fmt.Errorf("failed to delete field: %w", err)
	}

	log.Info("Field deleted", "field_id", fieldID, "owner_id", field.OwnerID)
	s.publish(ctx, event.NewFieldEvent(event.FieldDeleted, fieldID, field.OwnerID, field.Name, field.SoilType))

	return nil
}

func (s *service) ListActive(ctx context.Context, ownerID string) ([]domain.Field, error) {
	return s.fields.ListActiveByOwner(ctx, ownerID)
}

func (s *service) ListCompleted(ctx context.Context, ownerID string) ([]domain.Field, error) {
	return s.fields.ListCompletedByOwner(ctx, ownerID)
}

func (s *service) ListAll(ctx context.Context) ([]domain.Field, error) {
	return s.fields.ListAll(ctx)
}

func (s *service) publish(ctx context.Context, e event.Event) {
	if err := s.bus.Publish(ctx, e); err != nil {
		logger.FromContext(ctx).Warn("Failed to publish field event", "type", e.Type, "error", err)
	}
}

func validateField(field *domain.Field) error {
	if strings.TrimSpace(field.Name) == "" {
		return fmt.Errorf("%w: field name is required", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(field.SoilType) == "" {
		return fmt.Errorf("%w: soil type is required", domain.ErrInvalidInput)
	}
	if field.SizeHectares <= 0 {
		return fmt.Errorf("%w: size must be positive", domain.ErrInvalidInput)
	}
	if field.OwnerID == "" {
		return fmt.Errorf("%w: owner id is required", domain.ErrInvalidInput)
	}
	return nil
}
