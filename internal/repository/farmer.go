package repository

import (
	"context"
	"time"

	"github.com/jprdgz/sakahan-api/internal/domain"
)

// Farmer handles owner records. Liveness is a persisted last_active_at
// column with the cutoff computed on read, not an in-process map.
type Farmer interface {
	// GetFarmer retrieves a farmer by id.
	GetFarmer(ctx context.Context, farmerID string) (*domain.Farmer, error)

	// UpsertFarmer inserts or refreshes a farmer record.
	UpsertFarmer(ctx context.Context, farmer *domain.Farmer) (*domain.Farmer, error)

	// TouchLastActive stamps the farmer's last activity.
	TouchLastActive(ctx context.Context, farmerID string, at time.Time) error

	// CountActiveSince counts farmers active at or after the cutoff.
	CountActiveSince(ctx context.Context, cutoff time.Time) (int, error)
}
