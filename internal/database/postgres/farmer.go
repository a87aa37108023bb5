package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jprdgz/sakahan-api/internal/domain"
	"github.com/jprdgz/sakahan-api/internal/repository"
)

type farmerRepository struct {
	db *pgxpool.Pool
}

// NewFarmerRepository creates a new PostgreSQL farmer repository
func NewFarmerRepository(db *pgxpool.Pool) repository.Farmer {
	return &farmerRepository{db: db}
}

const farmerColumns = `farmer_id, username, last_active_at, created_at`

func scanFarmer(row pgx.Row) (*domain.Farmer, error) {
	var f domain.Farmer
	if err := row.Scan(&f.ID, &f.Username, &f.LastActiveAt, &f.CreatedAt); err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *farmerRepository) GetFarmer(ctx context.Context, farmerID string) (*domain.Farmer, error) {
	query := `SELECT ` + farmerColumns + ` FROM farmers WHERE farmer_id = $1`

	f, err := scanFarmer(r.db.QueryRow(ctx, query, farmerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrFarmerNotFound
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetFarmer, err)
	}
	return f, nil
}

func (r *farmerRepository) UpsertFarmer(ctx context.Context, farmer *domain.Farmer) (*domain.Farmer, error) {
	if farmer.ID == "" {
		farmer.ID = uuid.New().String()
	}
	if farmer.LastActiveAt.IsZero() {
		farmer.LastActiveAt = time.Now().UTC()
	}

	query := `
		INSERT INTO farmers (farmer_id, username, last_active_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (username) DO UPDATE SET last_active_at = EXCLUDED.last_active_at
		RETURNING ` + farmerColumns

	f, err := scanFarmer(r.db.QueryRow(ctx, query, farmer.ID, farmer.Username, farmer.LastActiveAt))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToUpsertFarmer, err)
	}
	return f, nil
}

func (r *farmerRepository) TouchLastActive(ctx context.Context, farmerID string, at time.Time) error {
	query := `UPDATE farmers SET last_active_at = GREATEST(last_active_at, $2) WHERE farmer_id = $1`

	if _, err := r.db.Exec(ctx, query, farmerID, at); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToTouchFarmer, err)
	}
	return nil
}

func (r *farmerRepository) CountActiveSince(ctx context.Context, cutoff time.Time) (int, error) {
	query := `SELECT COUNT(*) FROM farmers WHERE last_active_at >= $1`

	var count int
	if err := r.db.QueryRow(ctx, query, cutoff).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToCountFarmers, err)
	}
	return count, nil
}
