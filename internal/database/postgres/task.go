package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jprdgz/sakahan-api/internal/domain"
	"github.com/jprdgz/sakahan-api/internal/repository"
)

type taskRepository struct {
	db *pgxpool.Pool
}

// NewTaskRepository creates a new PostgreSQL task repository
func NewTaskRepository(db *pgxpool.Pool) repository.Task {
	return &taskRepository{db: db}
}

const taskColumns = `task_id, field_id, owner_id, task_type, crop_name, scheduled_date,
		completed, kilos_harvested, completed_at, created_at`

func scanTask(row pgx.Row) (*domain.Task, error) {
	var t domain.Task
	err := row.Scan(&t.ID, &t.FieldID, &t.OwnerID, &t.Type, &t.Crop, &t.ScheduledDate,
		&t.Completed, &t.KilosHarvested, &t.CompletedAt, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *taskRepository) CreateTask(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	id := uuid.New().String()

	query := `
		INSERT INTO tasks (task_id, field_id, owner_id, task_type, crop_name, scheduled_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + taskColumns

	created, err := scanTask(r.db.QueryRow(ctx, query,
		id, task.FieldID, task.OwnerID, task.Type, task.Crop, task.ScheduledDate))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToInsertTask, err)
	}
	return created, nil
}

func getTask(ctx context.Context, q querier, taskID string, forUpdate bool) (*domain.Task, error) {
	if _, err := uuid.Parse(taskID); err != nil {
		return nil, domain.ErrTaskNotFound
	}

	query := `SELECT ` + taskColumns + ` FROM tasks WHERE task_id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	t, err := scanTask(q.QueryRow(ctx, query, taskID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetTask, err)
	}
	return t, nil
}

func (r *taskRepository) GetTask(ctx context.Context, taskID string) (*domain.Task, error) {
	return getTask(ctx, r.db, taskID, false)
}

func (r *taskRepository) ListByOwner(ctx context.Context, ownerID, fieldID string) ([]domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE owner_id = $1`
	args := []any{ownerID}

	if fieldID != "" {
		query += ` AND field_id = $2`
		args = append(args, fieldID)
	}
	query += ` ORDER BY scheduled_date, created_at`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListTasks, err)
	}
	defer rows.Close()

	var tasks []domain.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToScanTask, err)
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}

func (r *taskRepository) YieldTrend(ctx context.Context, ownerID string) ([]domain.YieldPoint, error) {
	// Hectares count each harvested field once per year, so two harvests
	// off the same plot do not double its area.
	query := `
		WITH per_field AS (
			SELECT EXTRACT(YEAR FROM t.completed_at)::int AS year,
			       t.field_id,
			       SUM(t.kilos_harvested) AS kilos,
			       MAX(f.size_hectares) AS hectares
			FROM tasks t
			JOIN fields f ON f.field_id = t.field_id
			WHERE t.task_type = 'harvesting'
			  AND t.completed
			  AND t.completed_at IS NOT NULL
			  AND ($1 = '' OR t.owner_id = $1)
			GROUP BY 1, 2
		)
		SELECT year, SUM(kilos), SUM(hectares)
		FROM per_field
		GROUP BY year
		ORDER BY year
	`

	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToComputeTrend, err)
	}
	defer rows.Close()

	var points []domain.YieldPoint
	for rows.Next() {
		var p domain.YieldPoint
		if err := rows.Scan(&p.Year, &p.TotalKilos, &p.Hectares); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToComputeTrend, err)
		}
		if p.Hectares > 0 {
			p.KilosPerHectare = p.TotalKilos / p.Hectares
		}
		points = append(points, p)
	}
	return points, rows.Err()
}

func (r *taskRepository) HarvestTotal(ctx context.Context, fieldID string) (float64, error) {
	if _, err := uuid.Parse(fieldID); err != nil {
		return 0, nil
	}

	query := `
		SELECT COALESCE(SUM(kilos_harvested), 0)
		FROM tasks
		WHERE field_id = $1 AND task_type = 'harvesting' AND completed
	`

	var total float64
	if err := r.db.QueryRow(ctx, query, fieldID).Scan(&total); err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToSumHarvests, err)
	}
	return total, nil
}
