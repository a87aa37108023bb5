package repository

import (
	"context"

	"github.com/jprdgz/sakahan-api/internal/domain"
)

// Crop handles crop catalog persistence. The catalog is reference data:
// the engine only reads it, writes happen through the administrative path
// and the seed sync at startup.
type Crop interface {
	// ListCrops returns the whole catalog ordered by name.
	ListCrops(ctx context.Context) ([]domain.Crop, error)

	// GetCrop returns a single catalog entry by its unique name, or
	// domain.ErrCropNotFound.
	GetCrop(ctx context.Context, name string) (*domain.Crop, error)

	// UpsertCrop inserts or updates a catalog entry keyed by name.
	// Returns true when a new row was inserted.
	UpsertCrop(ctx context.Context, crop *domain.Crop) (bool, error)

	// SetOversupply flags exactly the named crops as oversupplied and
	// clears the flag everywhere else.
	SetOversupply(ctx context.Context, names []string) error

	// ListOversupplied returns the names of currently oversupplied crops.
	ListOversupplied(ctx context.Context) ([]string, error)
}
