package task

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jprdgz/sakahan-api/internal/domain"
	"github.com/jprdgz/sakahan-api/internal/event"
	"github.com/jprdgz/sakahan-api/internal/repository"
)

type fixture struct {
	svc  Service
	repo *repository.MockRepository
	bus  *event.MemoryBus
	now  time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	repo := repository.NewMockRepository()
	bus := event.NewMemoryBus()
	now := time.Date(2026, time.July, 15, 9, 0, 0, 0, time.UTC)
	return &fixture{
		svc:  NewService(repo, repo, bus, func() time.Time { return now }),
		repo: repo,
		bus:  bus,
		now:  now,
	}
}

func (f *fixture) createField(t *testing.T) *domain.Field {
	t.Helper()
	field, err := f.repo.CreateField(context.Background(), &domain.Field{
		OwnerID:      "farmer-1",
		Name:         "East Paddy",
		SoilType:     "Clay",
		SizeHectares: 2,
	})
	require.NoError(t, err)
	return field
}

func (f *fixture) createTask(t *testing.T, fieldID string, taskType domain.TaskType) *domain.Task {
	t.Helper()
	task, err := f.svc.CreateTask(context.Background(), &domain.Task{
		FieldID:       fieldID,
		Type:          taskType,
		Crop:          "Rice",
		ScheduledDate: f.now.AddDate(0, 0, 1),
	})
	require.NoError(t, err)
	return task
}

func TestCreateTask(t *testing.T) {
	f := newFixture(t)
	field := f.createField(t)

	task := f.createTask(t, field.ID, domain.TaskPlanting)

	assert.NotEmpty(t, task.ID)
	assert.Equal(t, "farmer-1", task.OwnerID)
	assert.False(t, task.Completed)
}

func TestCreateTaskInvalidType(t *testing.T) {
	f := newFixture(t)
	field := f.createField(t)

	_, err := f.svc.CreateTask(context.Background(), &domain.Task{
		FieldID:       field.ID,
		Type:          "pruning",
		ScheduledDate: f.now,
	})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateTaskMissingDate(t *testing.T) {
	f := newFixture(t)
	field := f.createField(t)

	_, err := f.svc.CreateTask(context.Background(), &domain.Task{
		FieldID: field.ID,
		Type:    domain.TaskWatering,
	})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateTaskFieldNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.CreateTask(context.Background(), &domain.Task{
		FieldID:       "missing",
		Type:          domain.TaskWatering,
		ScheduledDate: f.now,
	})

	assert.ErrorIs(t, err, domain.ErrFieldNotFound)
}

func TestCreateTaskOnArchivedField(t *testing.T) {
	f := newFixture(t)
	field := f.createField(t)
	f.archive(t, field.ID)

	_, err := f.svc.CreateTask(context.Background(), &domain.Task{
		FieldID:       field.ID,
		Type:          domain.TaskWatering,
		ScheduledDate: f.now,
	})

	assert.ErrorIs(t, err, domain.ErrFieldArchived)
}

func TestCompletePlantingMovesFieldToPlanted(t *testing.T) {
	f := newFixture(t)
	field := f.createField(t)
	task := f.createTask(t, field.ID, domain.TaskPlanting)

	done, err := f.svc.CompleteTask(context.Background(), task.ID, 0)

	require.NoError(t, err)
	assert.True(t, done.Completed)
	require.NotNil(t, done.CompletedAt)

	updated, err := f.repo.GetField(context.Background(), field.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.FieldPlanted, updated.State)
	require.NotNil(t, updated.PlantedDate)
	assert.Equal(t, f.now, *updated.PlantedDate)
	assert.False(t, updated.Archived)
}

func TestCompleteWateringLeavesLifecycleAlone(t *testing.T) {
	f := newFixture(t)
	field := f.createField(t)
	task := f.createTask(t, field.ID, domain.TaskWatering)

	_, err := f.svc.CompleteTask(context.Background(), task.ID, 0)

	require.NoError(t, err)
	updated, err := f.repo.GetField(context.Background(), field.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.FieldActive, updated.State)
	assert.Nil(t, updated.PlantedDate)
}

func TestCompleteHarvestArchivesFieldAtomically(t *testing.T) {
	f := newFixture(t)
	field := f.createField(t)
	task := f.createTask(t, field.ID, domain.TaskHarvesting)

	done, err := f.svc.CompleteTask(context.Background(), task.ID, 120)

	require.NoError(t, err)
	assert.InDelta(t, 120.0, done.KilosHarvested, 0.001)

	updated, err := f.repo.GetField(context.Background(), field.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.FieldHarvested, updated.State)
	assert.True(t, updated.Archived)
	require.NotNil(t, updated.HarvestDate)
	require.NotNil(t, updated.CompletedAt)
	assert.Equal(t, f.now, *updated.HarvestDate)
	assert.Equal(t, f.now, *updated.CompletedAt)
}

func TestCompleteTaskTwiceRejected(t *testing.T) {
	f := newFixture(t)
	field := f.createField(t)
	task := f.createTask(t, field.ID, domain.TaskWatering)

	_, err := f.svc.CompleteTask(context.Background(), task.ID, 0)
	require.NoError(t, err)

	_, err = f.svc.CompleteTask(context.Background(), task.ID, 0)
	assert.ErrorIs(t, err, domain.ErrTaskCompleted)
}

func TestReharvestArchivedFieldRejected(t *testing.T) {
	f := newFixture(t)
	field := f.createField(t)
	first := f.createTask(t, field.ID, domain.TaskHarvesting)
	second := f.createTask(t, field.ID, domain.TaskHarvesting)

	_, err := f.svc.CompleteTask(context.Background(), first.ID, 120)
	require.NoError(t, err)

	_, err = f.svc.CompleteTask(context.Background(), second.ID, 80)
	assert.ErrorIs(t, err, domain.ErrFieldArchived)

	// The rejected harvest must not touch the recorded yield.
	total, err := f.repo.HarvestTotal(context.Background(), field.ID)
	require.NoError(t, err)
	assert.InDelta(t, 120.0, total, 0.001)
}

func TestCompleteTaskNegativeKilosRejected(t *testing.T) {
	f := newFixture(t)
	field := f.createField(t)
	task := f.createTask(t, field.ID, domain.TaskHarvesting)

	_, err := f.svc.CompleteTask(context.Background(), task.ID, -5)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCompleteNonHarvestIgnoresKilos(t *testing.T) {
	f := newFixture(t)
	field := f.createField(t)
	task := f.createTask(t, field.ID, domain.TaskWatering)

	done, err := f.svc.CompleteTask(context.Background(), task.ID, 50)

	require.NoError(t, err)
	assert.Zero(t, done.KilosHarvested)
}

func TestCompleteTaskPublishesEvents(t *testing.T) {
	f := newFixture(t)
	field := f.createField(t)
	task := f.createTask(t, field.ID, domain.TaskHarvesting)

	var completed, archived []event.Event
	f.bus.Subscribe(event.TaskCompleted, func(ctx context.Context, e event.Event) error {
		completed = append(completed, e)
		return nil
	})
	f.bus.Subscribe(event.FieldArchived, func(ctx context.Context, e event.Event) error {
		archived = append(archived, e)
		return nil
	})

	_, err := f.svc.CompleteTask(context.Background(), task.ID, 120)
	require.NoError(t, err)

	require.Len(t, completed, 1)
	payload, ok := completed[0].Payload.(event.TaskCompletedPayloadV1)
	require.True(t, ok)
	assert.Equal(t, task.ID, payload.TaskID)
	assert.InDelta(t, 120.0, payload.KilosHarvested, 0.001)

	require.Len(t, archived, 1)
}

func TestCompleteTaskTouchesFarmer(t *testing.T) {
	f := newFixture(t)
	_, err := f.repo.UpsertFarmer(context.Background(), &domain.Farmer{ID: "farmer-1", Username: "mang_jose"})
	require.NoError(t, err)
	field := f.createField(t)
	task := f.createTask(t, field.ID, domain.TaskWatering)

	_, err = f.svc.CompleteTask(context.Background(), task.ID, 0)
	require.NoError(t, err)

	farmer, err := f.repo.GetFarmer(context.Background(), "farmer-1")
	require.NoError(t, err)
	assert.Equal(t, f.now, farmer.LastActiveAt)
}

func (f *fixture) archive(t *testing.T, fieldID string) {
	t.Helper()
	tx, err := f.repo.BeginTx(context.Background())
	require.NoError(t, err)
	require.NoError(t, tx.ArchiveField(context.Background(), fieldID, f.now))
	require.NoError(t, tx.Commit(context.Background()))
}
