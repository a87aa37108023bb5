package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jprdgz/sakahan-api/internal/domain"
	"github.com/jprdgz/sakahan-api/internal/repository"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx, so reads share
// one implementation inside and outside transactions.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type fieldRepository struct {
	db *pgxpool.Pool
}

// NewFieldRepository creates a new PostgreSQL field repository
func NewFieldRepository(db *pgxpool.Pool) repository.Field {
	return &fieldRepository{db: db}
}

const fieldColumns = `field_id, owner_id, field_name, soil_type, watering_method, last_year_crop,
		size_hectares, latitude, longitude, selected_crop, locked_recommendations, locked_weather,
		locked_tip, state, planted_date, harvest_date, archived, completed_at, created_at, updated_at`

func scanField(row pgx.Row) (*domain.Field, error) {
	var (
		f            domain.Field
		lat, lon     *float64
		lockedRecs   []byte
		lockedWeathr []byte
	)
	err := row.Scan(&f.ID, &f.OwnerID, &f.Name, &f.SoilType, &f.WateringMethod, &f.LastYearCrop,
		&f.SizeHectares, &lat, &lon, &f.SelectedCrop, &lockedRecs, &lockedWeathr,
		&f.LockedTip, &f.State, &f.PlantedDate, &f.HarvestDate, &f.Archived, &f.CompletedAt,
		&f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if lat != nil && lon != nil {
		f.Location = &domain.Location{Latitude: *lat, Longitude: *lon}
	}
	if len(lockedRecs) > 0 {
		if err := json.Unmarshal(lockedRecs, &f.LockedRecommendations); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToDecodeSnapshot, err)
		}
	}
	if len(lockedWeathr) > 0 {
		if err := json.Unmarshal(lockedWeathr, &f.LockedWeather); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToDecodeSnapshot, err)
		}
	}
	return &f, nil
}

func (r *fieldRepository) CreateField(ctx context.Context, field *domain.Field) (*domain.Field, error) {
	id := uuid.New().String()

	var lat, lon *float64
	if field.Location != nil {
		lat, lon = &field.Location.Latitude, &field.Location.Longitude
	}

	query := `
		INSERT INTO fields (field_id, owner_id, field_name, soil_type, watering_method,
			last_year_crop, size_hectares, latitude, longitude, state)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + fieldColumns

	created, err := scanField(r.db.QueryRow(ctx, query,
		id, field.OwnerID, field.Name, field.SoilType, field.WateringMethod,
		field.LastYearCrop, field.SizeHectares, lat, lon, domain.FieldActive))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToInsertField, err)
	}
	return created, nil
}

func getField(ctx context.Context, q querier, fieldID string, forUpdate bool) (*domain.Field, error) {
	// A malformed id cannot name an existing row.
	if _, err := uuid.Parse(fieldID); err != nil {
		return nil, domain.ErrFieldNotFound
	}

	query := `SELECT ` + fieldColumns + ` FROM fields WHERE field_id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	f, err := scanField(q.QueryRow(ctx, query, fieldID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrFieldNotFound
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetField, err)
	}
	return f, nil
}

func (r *fieldRepository) GetField(ctx context.Context, fieldID string) (*domain.Field, error) {
	return getField(ctx, r.db, fieldID, false)
}

func (r *fieldRepository) UpdateField(ctx context.Context, field *domain.Field) (*domain.Field, error) {
	var lat, lon *float64
	if field.Location != nil {
		lat, lon = &field.Location.Latitude, &field.Location.Longitude
	}

	query := `
		UPDATE fields SET
			field_name = $2,
			soil_type = $3,
			watering_method = $4,
			last_year_crop = $5,
			size_hectares = $6,
			latitude = $7,
			longitude = $8,
			updated_at = NOW()
		WHERE field_id = $1
		RETURNING ` + fieldColumns

	updated, err := scanField(r.db.QueryRow(ctx, query,
		field.ID, field.Name, field.SoilType, field.WateringMethod,
		field.LastYearCrop, field.SizeHectares, lat, lon))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrFieldNotFound
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToUpdateField, err)
	}
	return updated, nil
}

func (r *fieldRepository) DeleteField(ctx context.Context, fieldID string) error {
	if _, err := uuid.Parse(fieldID); err != nil {
		return domain.ErrFieldNotFound
	}

	// Tasks go with the field via ON DELETE CASCADE.
	tag, err := r.db.Exec(ctx, `DELETE FROM fields WHERE field_id = $1`, fieldID)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToDeleteField, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrFieldNotFound
	}
	return nil
}

func (r *fieldRepository) listFields(ctx context.Context, query string, args ...any) ([]domain.Field, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListFields, err)
	}
	defer rows.Close()

	var fields []domain.Field
	for rows.Next() {
		f, err := scanField(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToScanField, err)
		}
		fields = append(fields, *f)
	}
	return fields, rows.Err()
}

func (r *fieldRepository) ListActiveByOwner(ctx context.Context, ownerID string) ([]domain.Field, error) {
	query := `SELECT ` + fieldColumns + ` FROM fields
		WHERE owner_id = $1 AND NOT archived ORDER BY created_at`
	return r.listFields(ctx, query, ownerID)
}

func (r *fieldRepository) ListCompletedByOwner(ctx context.Context, ownerID string) ([]domain.Field, error) {
	query := `SELECT ` + fieldColumns + ` FROM fields
		WHERE owner_id = $1 AND archived ORDER BY completed_at DESC`
	return r.listFields(ctx, query, ownerID)
}

func (r *fieldRepository) ListAll(ctx context.Context) ([]domain.Field, error) {
	query := `SELECT ` + fieldColumns + ` FROM fields ORDER BY created_at`
	return r.listFields(ctx, query)
}

// fieldTx applies lock-sensitive field mutations inside one transaction.
type fieldTx struct {
	tx pgx.Tx
}

func (r *fieldRepository) BeginTx(ctx context.Context) (repository.FieldTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	return &fieldTx{tx: tx}, nil
}

func (t *fieldTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

func (t *fieldTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

func (t *fieldTx) GetFieldForUpdate(ctx context.Context, fieldID string) (*domain.Field, error) {
	return getField(ctx, t.tx, fieldID, true)
}

func (t *fieldTx) SaveSelection(ctx context.Context, fieldID, cropName string, recs []domain.Recommendation, weather domain.WeatherSnapshot, tip string) error {
	recsJSON, err := json.Marshal(recs)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToEncodeSnapshot, err)
	}
	weatherJSON, err := json.Marshal(weather)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToEncodeSnapshot, err)
	}

	// The crop and its snapshot land in one statement so a field is never
	// selected without the frozen set it was selected against.
	query := `
		UPDATE fields SET
			selected_crop = $2,
			locked_recommendations = $3,
			locked_weather = $4,
			locked_tip = $5,
			updated_at = NOW()
		WHERE field_id = $1
	`

	tag, err := t.tx.Exec(ctx, query, fieldID, cropName, recsJSON, weatherJSON, tip)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToSaveSelection, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrFieldNotFound
	}
	return nil
}

func (t *fieldTx) MarkPlanted(ctx context.Context, fieldID string, at time.Time) error {
	query := `
		UPDATE fields SET state = $2, planted_date = $3, updated_at = NOW()
		WHERE field_id = $1
	`

	tag, err := t.tx.Exec(ctx, query, fieldID, domain.FieldPlanted, at)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToMarkPlanted, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrFieldNotFound
	}
	return nil
}

func (t *fieldTx) ArchiveField(ctx context.Context, fieldID string, at time.Time) error {
	// Terminal transition: harvest date, archived flag and completion
	// timestamp move together or not at all.
	query := `
		UPDATE fields SET
			state = $2,
			harvest_date = $3,
			completed_at = $3,
			archived = TRUE,
			updated_at = NOW()
		WHERE field_id = $1
	`

	tag, err := t.tx.Exec(ctx, query, fieldID, domain.FieldHarvested, at)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToArchiveField, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrFieldNotFound
	}
	return nil
}

func (t *fieldTx) GetTaskForUpdate(ctx context.Context, taskID string) (*domain.Task, error) {
	return getTask(ctx, t.tx, taskID, true)
}

func (t *fieldTx) CompleteTask(ctx context.Context, taskID string, at time.Time, kilos float64) error {
	query := `
		UPDATE tasks SET completed = TRUE, completed_at = $2, kilos_harvested = $3
		WHERE task_id = $1
	`

	tag, err := t.tx.Exec(ctx, query, taskID, at, kilos)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToCompleteTask, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (t *fieldTx) TouchFarmer(ctx context.Context, farmerID string, at time.Time) error {
	query := `UPDATE farmers SET last_active_at = GREATEST(last_active_at, $2) WHERE farmer_id = $1`

	if _, err := t.tx.Exec(ctx, query, farmerID, at); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToTouchFarmer, err)
	}
	return nil
}
