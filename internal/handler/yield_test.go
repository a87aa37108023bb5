package handler_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jprdgz/sakahan-api/internal/domain"
	"github.com/jprdgz/sakahan-api/internal/handler"
)

func TestYieldHandler_Trend(t *testing.T) {
	f := newAPIFixture(t)
	fld := f.createField(t, "farmer-1", "Clay")
	task := f.createTask(t, fld.ID, "farmer-1", domain.TaskHarvesting)
	completeHarvestDirect(t, f, task.ID, 120)

	rec := f.do(t, http.MethodGet, "/yield/trend?owner_id=farmer-1", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	points := decodeBody[[]domain.YieldPoint](t, rec)
	require.Len(t, points, 1)
	assert.InDelta(t, 120.0, points[0].TotalKilos, 0.01)
	assert.InDelta(t, 2.0, points[0].Hectares, 0.01)
	assert.InDelta(t, 60.0, points[0].KilosPerHectare, 0.01)
}

func TestYieldHandler_TrendEmpty(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(t, http.MethodGet, "/yield/trend", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	points := decodeBody[[]domain.YieldPoint](t, rec)
	assert.Empty(t, points)
}

func TestYieldHandler_FieldTotal(t *testing.T) {
	f := newAPIFixture(t)
	fld := f.createField(t, "farmer-1", "Clay")
	first := f.createTask(t, fld.ID, "farmer-1", domain.TaskHarvesting)
	second := f.createTask(t, fld.ID, "farmer-1", domain.TaskHarvesting)
	completeHarvestDirect(t, f, first.ID, 70)
	completeHarvestDirect(t, f, second.ID, 50)

	rec := f.do(t, http.MethodGet, "/fields/"+fld.ID+"/yield", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody[handler.FieldYieldResponse](t, rec)
	assert.Equal(t, fld.ID, resp.FieldID)
	assert.InDelta(t, 120.0, resp.TotalKilos, 0.01)
}

func TestYieldHandler_FieldTotalNotFound(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(t, http.MethodGet, "/fields/missing/yield", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
