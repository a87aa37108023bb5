package catalog

import (
	"context"
	"fmt"

	"github.com/jprdgz/sakahan-api/internal/domain"
	"github.com/jprdgz/sakahan-api/internal/logger"
	"github.com/jprdgz/sakahan-api/internal/repository"
)

// Service exposes the crop catalog.
type Service interface {
	ListCrops(ctx context.Context) ([]domain.Crop, error)
	GetCrop(ctx context.Context, name string) (*domain.Crop, error)
	SetOversupply(ctx context.Context, names []string) error
	ListOversupplied(ctx context.Context) ([]string, error)
}

type service struct {
	repo repository.Crop
}

// NewService creates a catalog service backed by the crop repository.
func NewService(repo repository.Crop) Service {
	return &service{repo: repo}
}

func (s *service) ListCrops(ctx context.Context) ([]domain.Crop, error) {
	crops, err := s.repo.ListCrops(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list crops: %w", err)
	}
	return crops, nil
}

func (s *service) GetCrop(ctx context.Context, name string) (*domain.Crop, error) {
	crop, err := s.repo.GetCrop(ctx, name)
	if err != nil {
		return nil, err
	}
	return crop, nil
}

func (s *service) SetOversupply(ctx context.Context, names []string) error {
	log := logger.FromContext(ctx)

	for _, name := range names {
		if _, err := s.GetCrop(ctx, name); err != nil {
			return err
		}
	}

	if err := s.repo.SetOversupply(ctx, names); err != nil {
		return fmt.Errorf("failed to set oversupply flags: %w", err)
	}

	log.Info("oversupply flags updated", "crops", names)
	return nil
}

func (s *service) ListOversupplied(ctx context.Context) ([]string, error) {
	names, err := s.repo.ListOversupplied(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list oversupplied crops: %w", err)
	}
	return names, nil
}
