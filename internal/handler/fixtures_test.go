package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"math/rand"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/jprdgz/sakahan-api/internal/catalog"
	"github.com/jprdgz/sakahan-api/internal/domain"
	"github.com/jprdgz/sakahan-api/internal/event"
	"github.com/jprdgz/sakahan-api/internal/farmer"
	"github.com/jprdgz/sakahan-api/internal/field"
	"github.com/jprdgz/sakahan-api/internal/handler"
	"github.com/jprdgz/sakahan-api/internal/recommend"
	"github.com/jprdgz/sakahan-api/internal/repository"
	"github.com/jprdgz/sakahan-api/internal/season"
	"github.com/jprdgz/sakahan-api/internal/task"
	"github.com/jprdgz/sakahan-api/internal/yield"
)

// stubReader serves a fixed weather snapshot so handler tests are
// deterministic.
type stubReader struct {
	snap domain.WeatherSnapshot
}

func (s *stubReader) Snapshot(ctx context.Context) domain.WeatherSnapshot {
	return s.snap
}

// apiFixture wires the handlers to real services over the in-memory
// repository, mirroring the route layout the server registers.
type apiFixture struct {
	repo   *repository.MockRepository
	router chi.Router
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()
	handler.InitValidator()

	repo := repository.NewMockRepository()
	bus := event.NewMemoryBus()
	now := func() time.Time { return time.Date(2026, time.July, 15, 9, 0, 0, 0, time.UTC) }
	reader := &stubReader{snap: domain.WeatherSnapshot{
		TemperatureC: 28,
		Condition:    "partly cloudy",
		Season:       domain.SeasonRainy,
		FetchedAt:    now(),
	}}

	catalogSvc := catalog.NewService(repo)
	fieldSvc := field.NewService(repo, repo, repo, bus, now)
	taskSvc := task.NewService(repo, repo, bus, now)
	recommendSvc := recommend.NewService(
		repo,
		catalogSvc,
		reader,
		recommend.NewMatcher(rand.New(rand.NewSource(1))),
		recommend.NewBuilder(season.NewPolicy()),
		bus,
		now,
	)
	yieldSvc := yield.NewService(repo, repo)
	farmerSvc := farmer.NewService(repo, 15*time.Minute, now)

	fieldH := handler.NewFieldHandler(fieldSvc)
	taskH := handler.NewTaskHandler(taskSvc)
	recommendH := handler.NewRecommendHandler(recommendSvc)
	catalogH := handler.NewCatalogHandler(catalogSvc)
	weatherH := handler.NewWeatherHandler(reader)
	yieldH := handler.NewYieldHandler(yieldSvc)
	farmerH := handler.NewFarmerHandler(farmerSvc)

	r := chi.NewRouter()
	r.Post("/fields", fieldH.Create)
	r.Get("/fields", fieldH.ListActive)
	r.Get("/fields/all", fieldH.ListAll)
	r.Get("/fields/completed", fieldH.ListCompleted)
	r.Get("/fields/{fieldID}", fieldH.Get)
	r.Put("/fields/{fieldID}", fieldH.Update)
	r.Delete("/fields/{fieldID}", fieldH.Delete)
	r.Get("/fields/{fieldID}/recommendations", recommendH.Get)
	r.Post("/fields/{fieldID}/select-crop", recommendH.SelectCrop)
	r.Get("/fields/{fieldID}/yield", yieldH.FieldTotal)
	r.Post("/tasks", taskH.Create)
	r.Get("/tasks", taskH.List)
	r.Get("/tasks/{taskID}", taskH.Get)
	r.Post("/tasks/{taskID}/complete", taskH.Complete)
	r.Get("/crops", catalogH.ListCrops)
	r.Get("/crops/{name}", catalogH.GetCrop)
	r.Get("/crops/oversupply", catalogH.ListOversupplied)
	r.Post("/crops/oversupply", catalogH.SetOversupply)
	r.Get("/weather/current", weatherH.Current)
	r.Get("/yield/trend", yieldH.Trend)
	r.Post("/farmers", farmerH.Register)
	r.Get("/farmers/active", farmerH.CountActive)
	r.Get("/farmers/{farmerID}", farmerH.Get)

	return &apiFixture{repo: repo, router: r}
}

// do performs a request against the fixture router. A nil body sends no
// payload; anything else is JSON-encoded.
func (f *apiFixture) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	return out
}

func (f *apiFixture) seedCrop(t *testing.T, crop domain.Crop) {
	t.Helper()
	_, err := f.repo.UpsertCrop(context.Background(), &crop)
	require.NoError(t, err)
}

func (f *apiFixture) seedDefaultCatalog(t *testing.T) {
	t.Helper()
	f.seedCrop(t, domain.Crop{
		Name:             "Rice",
		SoilTypes:        []string{"Clay", "Loam"},
		IdealSeason:      domain.SeasonRainy,
		MinTemp:          20,
		MaxTemp:          35,
		WaterRequirement: domain.WaterHigh,
		SeedType:         "grain",
		MinHarvestDays:   90,
		MaxHarvestDays:   120,
	})
	f.seedCrop(t, domain.Crop{
		Name:             "Corn",
		SoilTypes:        []string{"Loam", "Sandy"},
		IdealSeason:      domain.SeasonRainy,
		MinTemp:          18,
		MaxTemp:          32,
		WaterRequirement: domain.WaterModerate,
		SeedType:         "grain",
		MinHarvestDays:   60,
		MaxHarvestDays:   100,
	})
	f.seedCrop(t, domain.Crop{
		Name:             "Cabbage",
		SoilTypes:        []string{"Loam"},
		IdealSeason:      domain.SeasonDry,
		MinTemp:          15,
		MaxTemp:          25,
		WaterRequirement: domain.WaterModerate,
		SeedType:         "vegetable",
		MinHarvestDays:   70,
		MaxHarvestDays:   90,
	})
}

func (f *apiFixture) createField(t *testing.T, ownerID, soilType string) *domain.Field {
	t.Helper()
	created, err := f.repo.CreateField(context.Background(), &domain.Field{
		OwnerID:      ownerID,
		Name:         "East Paddy",
		SoilType:     soilType,
		SizeHectares: 2,
		State:        domain.FieldActive,
	})
	require.NoError(t, err)
	return created
}

func (f *apiFixture) createTask(t *testing.T, fieldID, ownerID string, taskType domain.TaskType) *domain.Task {
	t.Helper()
	created, err := f.repo.CreateTask(context.Background(), &domain.Task{
		FieldID:       fieldID,
		OwnerID:       ownerID,
		Type:          taskType,
		ScheduledDate: time.Date(2026, time.July, 20, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	return created
}
