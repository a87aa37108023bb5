// Package yield aggregates completed harvests into trend projections.
package yield

import (
	"context"
	"fmt"

	"github.com/jprdgz/sakahan-api/internal/domain"
	"github.com/jprdgz/sakahan-api/internal/repository"
)

// Service answers yield questions from recorded harvest history.
type Service interface {
	// Trend returns per-year kilos-per-hectare buckets for an owner, or
	// globally when ownerID is empty. Years with no completed harvest do
	// not appear.
	Trend(ctx context.Context, ownerID string) ([]domain.YieldPoint, error)

	// FieldTotal sums the kilos recorded over a field's completed
	// harvesting tasks.
	FieldTotal(ctx context.Context, fieldID string) (float64, error)
}

type service struct {
	tasks  repository.Task
	fields repository.Field
}

// NewService creates the yield service.
func NewService(tasks repository.Task, fields repository.Field) Service {
	return &service{tasks: tasks, fields: fields}
}

func (s *service) Trend(ctx context.Context, ownerID string) ([]domain.YieldPoint, error) {
	points, err := s.tasks.YieldTrend(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute yield trend: %w", err)
	}
	return points, nil
}

func (s *service) FieldTotal(ctx context.Context, fieldID string) (float64, error) {
	if _, err := s.fields.GetField(ctx, fieldID); err != nil {
		return 0, err
	}
	total, err := s.tasks.HarvestTotal(ctx, fieldID)
	if err != nil {
		return 0, fmt.Errorf("failed to sum field harvests: %w", err)
	}
	return total, nil
}
