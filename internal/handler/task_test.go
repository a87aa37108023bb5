package handler_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jprdgz/sakahan-api/internal/domain"
	"github.com/jprdgz/sakahan-api/internal/handler"
)

func TestTaskHandler_Create(t *testing.T) {
	f := newAPIFixture(t)
	fld := f.createField(t, "farmer-1", "Clay")

	rec := f.do(t, http.MethodPost, "/tasks", handler.CreateTaskRequest{
		FieldID:       fld.ID,
		Type:          "planting",
		Crop:          "Rice",
		ScheduledDate: time.Date(2026, time.July, 20, 0, 0, 0, 0, time.UTC),
	})

	require.Equal(t, http.StatusCreated, rec.Code)
	created := decodeBody[domain.Task](t, rec)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, fld.ID, created.FieldID)
	assert.Equal(t, "farmer-1", created.OwnerID)
	assert.False(t, created.Completed)
}

func TestTaskHandler_CreateInvalidType(t *testing.T) {
	f := newAPIFixture(t)
	fld := f.createField(t, "farmer-1", "Clay")

	rec := f.do(t, http.MethodPost, "/tasks", handler.CreateTaskRequest{
		FieldID:       fld.ID,
		Type:          "pruning",
		ScheduledDate: time.Date(2026, time.July, 20, 0, 0, 0, 0, time.UTC),
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeBody[handler.ValidationErrorResponse](t, rec)
	assert.Equal(t, "Invalid task type", resp.Fields["type"])
}

func TestTaskHandler_CreateFieldNotFound(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(t, http.MethodPost, "/tasks", handler.CreateTaskRequest{
		FieldID:       "missing",
		Type:          "watering",
		ScheduledDate: time.Date(2026, time.July, 20, 0, 0, 0, 0, time.UTC),
	})

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTaskHandler_CreateOnArchivedField(t *testing.T) {
	f := newAPIFixture(t)
	fld := f.createField(t, "farmer-1", "Clay")
	archiveFieldDirect(t, f, fld.ID)

	rec := f.do(t, http.MethodPost, "/tasks", handler.CreateTaskRequest{
		FieldID:       fld.ID,
		Type:          "watering",
		ScheduledDate: time.Date(2026, time.July, 20, 0, 0, 0, 0, time.UTC),
	})

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestTaskHandler_CompleteHarvestArchivesField(t *testing.T) {
	f := newAPIFixture(t)
	fld := f.createField(t, "farmer-1", "Clay")
	task := f.createTask(t, fld.ID, "farmer-1", domain.TaskHarvesting)

	rec := f.do(t, http.MethodPost, "/tasks/"+task.ID+"/complete", handler.CompleteTaskRequest{
		KilosHarvested: 120,
	})

	require.Equal(t, http.StatusOK, rec.Code)
	completed := decodeBody[domain.Task](t, rec)
	assert.True(t, completed.Completed)
	assert.InDelta(t, 120.0, completed.KilosHarvested, 0.01)

	rec = f.do(t, http.MethodGet, "/fields/"+fld.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	after := decodeBody[domain.Field](t, rec)
	assert.True(t, after.Archived)
	assert.Equal(t, domain.FieldHarvested, after.State)
	assert.NotNil(t, after.HarvestDate)
}

func TestTaskHandler_CompleteTwiceRejected(t *testing.T) {
	f := newAPIFixture(t)
	fld := f.createField(t, "farmer-1", "Clay")
	task := f.createTask(t, fld.ID, "farmer-1", domain.TaskWatering)

	rec := f.do(t, http.MethodPost, "/tasks/"+task.ID+"/complete", handler.CompleteTaskRequest{})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodPost, "/tasks/"+task.ID+"/complete", handler.CompleteTaskRequest{})
	require.Equal(t, http.StatusConflict, rec.Code)
	resp := decodeBody[handler.ErrorResponse](t, rec)
	assert.Equal(t, "This task has already been completed", resp.Error)
}

func TestTaskHandler_CompleteNegativeKilos(t *testing.T) {
	f := newAPIFixture(t)
	fld := f.createField(t, "farmer-1", "Clay")
	task := f.createTask(t, fld.ID, "farmer-1", domain.TaskHarvesting)

	rec := f.do(t, http.MethodPost, "/tasks/"+task.ID+"/complete", handler.CompleteTaskRequest{
		KilosHarvested: -5,
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTaskHandler_List(t *testing.T) {
	f := newAPIFixture(t)
	fld := f.createField(t, "farmer-1", "Clay")
	other := f.createField(t, "farmer-1", "Loam")
	f.createTask(t, fld.ID, "farmer-1", domain.TaskPlanting)
	f.createTask(t, other.ID, "farmer-1", domain.TaskWatering)

	rec := f.do(t, http.MethodGet, "/tasks?owner_id=farmer-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	tasks := decodeBody[[]domain.Task](t, rec)
	assert.Len(t, tasks, 2)

	rec = f.do(t, http.MethodGet, "/tasks?owner_id=farmer-1&field_id="+fld.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	tasks = decodeBody[[]domain.Task](t, rec)
	require.Len(t, tasks, 1)
	assert.Equal(t, fld.ID, tasks[0].FieldID)
}

func TestTaskHandler_ListRequiresOwner(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(t, http.MethodGet, "/tasks", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTaskHandler_Get(t *testing.T) {
	f := newAPIFixture(t)
	fld := f.createField(t, "farmer-1", "Clay")
	task := f.createTask(t, fld.ID, "farmer-1", domain.TaskPlanting)

	rec := f.do(t, http.MethodGet, "/tasks/"+task.ID, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	got := decodeBody[domain.Task](t, rec)
	assert.Equal(t, task.ID, got.ID)
}
