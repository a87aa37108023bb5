package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jprdgz/sakahan-api/internal/domain"
	"github.com/jprdgz/sakahan-api/internal/repository"
)

type cropRepository struct {
	db *pgxpool.Pool
}

// NewCropRepository creates a new PostgreSQL crop catalog repository
func NewCropRepository(db *pgxpool.Pool) repository.Crop {
	return &cropRepository{db: db}
}

const cropColumns = `crop_name, soil_types, ideal_season, min_temp, max_temp,
		water_requirement, seed_type, min_harvest_days, max_harvest_days, description, oversupply`

func scanCrop(row pgx.Row) (*domain.Crop, error) {
	var c domain.Crop
	err := row.Scan(&c.Name, &c.SoilTypes, &c.IdealSeason, &c.MinTemp, &c.MaxTemp,
		&c.WaterRequirement, &c.SeedType, &c.MinHarvestDays, &c.MaxHarvestDays, &c.Description, &c.Oversupply)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *cropRepository) ListCrops(ctx context.Context) ([]domain.Crop, error) {
	// Position preserves seed-file order, which is also the ranking
	// tiebreak order downstream.
	query := `SELECT ` + cropColumns + ` FROM crops ORDER BY position`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListCrops, err)
	}
	defer rows.Close()

	var crops []domain.Crop
	for rows.Next() {
		c, err := scanCrop(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToScanCrop, err)
		}
		crops = append(crops, *c)
	}
	return crops, rows.Err()
}

func (r *cropRepository) GetCrop(ctx context.Context, name string) (*domain.Crop, error) {
	query := `SELECT ` + cropColumns + ` FROM crops WHERE LOWER(crop_name) = LOWER($1)`

	c, err := scanCrop(r.db.QueryRow(ctx, query, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCropNotFound
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetCrop, err)
	}
	return c, nil
}

func (r *cropRepository) UpsertCrop(ctx context.Context, crop *domain.Crop) (bool, error) {
	query := `
		INSERT INTO crops (crop_name, soil_types, ideal_season, min_temp, max_temp,
			water_requirement, seed_type, min_harvest_days, max_harvest_days, description, oversupply)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (crop_name) DO UPDATE SET
			soil_types = EXCLUDED.soil_types,
			ideal_season = EXCLUDED.ideal_season,
			min_temp = EXCLUDED.min_temp,
			max_temp = EXCLUDED.max_temp,
			water_requirement = EXCLUDED.water_requirement,
			seed_type = EXCLUDED.seed_type,
			min_harvest_days = EXCLUDED.min_harvest_days,
			max_harvest_days = EXCLUDED.max_harvest_days,
			description = EXCLUDED.description
		RETURNING (xmax = 0)
	`

	var inserted bool
	err := r.db.QueryRow(ctx, query,
		crop.Name, crop.SoilTypes, crop.IdealSeason, crop.MinTemp, crop.MaxTemp,
		crop.WaterRequirement, crop.SeedType, crop.MinHarvestDays, crop.MaxHarvestDays,
		crop.Description, crop.Oversupply,
	).Scan(&inserted)
	if err != nil {
		return false, fmt.Errorf("%s: %w", ErrMsgFailedToUpsertCrop, err)
	}
	return inserted, nil
}

func (r *cropRepository) SetOversupply(ctx context.Context, names []string) error {
	lowered := make([]string, len(names))
	for i, n := range names {
		lowered[i] = strings.ToLower(n)
	}

	// One statement: named crops get the flag, everything else loses it.
	query := `UPDATE crops SET oversupply = (LOWER(crop_name) = ANY($1))`

	if _, err := r.db.Exec(ctx, query, lowered); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToSetOversupply, err)
	}
	return nil
}

func (r *cropRepository) ListOversupplied(ctx context.Context) ([]string, error) {
	query := `SELECT crop_name FROM crops WHERE oversupply ORDER BY position`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListCrops, err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToScanCrop, err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}
