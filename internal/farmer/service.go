// Package farmer tracks owner accounts and their activity. Liveness is a
// persisted timestamp with the cutoff computed on read, so it survives
// restarts and works across replicas.
package farmer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jprdgz/sakahan-api/internal/domain"
	"github.com/jprdgz/sakahan-api/internal/repository"
)

// Service manages farmer records and the active-farmer count.
type Service interface {
	GetFarmer(ctx context.Context, farmerID string) (*domain.Farmer, error)
	RegisterFarmer(ctx context.Context, farmer *domain.Farmer) (*domain.Farmer, error)
	TouchActivity(ctx context.Context, farmerID string) error

	// CountActive counts farmers seen within the configured window.
	CountActive(ctx context.Context) (int, error)
}

type service struct {
	farmers repository.Farmer
	window  time.Duration
	now     func() time.Time
}

// NewService creates the farmer service. The window bounds how long ago a
// farmer's last activity may be to still count as active.
func NewService(farmers repository.Farmer, window time.Duration, now func() time.Time) Service {
	if now == nil {
		now = time.Now
	}
	return &service{farmers: farmers, window: window, now: now}
}

func (s *service) GetFarmer(ctx context.Context, farmerID string) (*domain.Farmer, error) {
	return s.farmers.GetFarmer(ctx, farmerID)
}

func (s *service) RegisterFarmer(ctx context.Context, farmer *domain.Farmer) (*domain.Farmer, error) {
	if strings.TrimSpace(farmer.Username) == "" {
		return nil, fmt.Errorf("%w: username is required", domain.ErrInvalidInput)
	}
	farmer.LastActiveAt = s.now()

	registered, err := s.farmers.UpsertFarmer(ctx, farmer)
	if err != nil {
		return nil, fmt.Errorf("failed to register farmer: %w", err)
	}
	return registered, nil
}

func (s *service) TouchActivity(ctx context.Context, farmerID string) error {
	if err := s.farmers.TouchLastActive(ctx, farmerID, s.now()); err != nil {
		return fmt.Errorf("failed to touch farmer activity: %w", err)
	}
	return nil
}

func (s *service) CountActive(ctx context.Context) (int, error) {
	cutoff := s.now().Add(-s.window)
	count, err := s.farmers.CountActiveSince(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to count active farmers: %w", err)
	}
	return count, nil
}
