package recommend

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jprdgz/sakahan-api/internal/catalog"
	"github.com/jprdgz/sakahan-api/internal/domain"
	"github.com/jprdgz/sakahan-api/internal/event"
	"github.com/jprdgz/sakahan-api/internal/repository"
	"github.com/jprdgz/sakahan-api/internal/season"
)

// stubReader returns whatever snapshot the test put in it, so weather can
// be changed between calls.
type stubReader struct {
	snap domain.WeatherSnapshot
}

func (s *stubReader) Snapshot(ctx context.Context) domain.WeatherSnapshot {
	return s.snap
}

type serviceFixture struct {
	svc    Service
	repo   *repository.MockRepository
	reader *stubReader
	bus    *event.MemoryBus
}

func newServiceFixture(t *testing.T, seed []domain.Crop) *serviceFixture {
	t.Helper()

	repo := repository.NewMockRepository()
	for i := range seed {
		_, err := repo.UpsertCrop(context.Background(), &seed[i])
		require.NoError(t, err)
	}

	reader := &stubReader{snap: domain.WeatherSnapshot{
		TemperatureC: 28,
		Condition:    "partly cloudy",
		Season:       domain.SeasonRainy,
		FetchedAt:    time.Date(2026, time.July, 15, 9, 0, 0, 0, time.UTC),
	}}

	bus := event.NewMemoryBus()
	now := func() time.Time { return time.Date(2026, time.July, 15, 9, 0, 0, 0, time.UTC) }

	svc := NewService(
		repo,
		catalog.NewService(repo),
		reader,
		NewMatcher(rand.New(rand.NewSource(1))),
		NewBuilder(season.NewPolicy()),
		bus,
		now,
	)

	return &serviceFixture{svc: svc, repo: repo, reader: reader, bus: bus}
}

func archiveField(t *testing.T, repo *repository.MockRepository, fieldID string) {
	t.Helper()
	tx, err := repo.BeginTx(context.Background())
	require.NoError(t, err)
	require.NoError(t, tx.ArchiveField(context.Background(), fieldID, time.Now()))
	require.NoError(t, tx.Commit(context.Background()))
}

func (f *serviceFixture) createField(t *testing.T, soilType string) *domain.Field {
	t.Helper()
	field, err := f.repo.CreateField(context.Background(), &domain.Field{
		OwnerID:      "farmer-1",
		Name:         "East Paddy",
		SoilType:     soilType,
		SizeHectares: 2,
	})
	require.NoError(t, err)
	return field
}

func TestGetRecommendationsLive(t *testing.T) {
	f := newServiceFixture(t, testCatalog())
	field := f.createField(t, "Clay")

	set, err := f.svc.GetRecommendations(context.Background(), field.ID)

	require.NoError(t, err)
	assert.False(t, set.Locked)
	assert.Equal(t, domain.TierStrict, set.TierUsed)
	require.NotEmpty(t, set.Recommendations)
	assert.Equal(t, "Rice", set.Recommendations[0].CropName)
	assert.Equal(t, TipStable, set.WeatherTip)
	assert.InDelta(t, 28.0, set.Weather.TemperatureC, 0.01)
}

func TestGetRecommendationsFieldNotFound(t *testing.T) {
	f := newServiceFixture(t, testCatalog())

	_, err := f.svc.GetRecommendations(context.Background(), "missing")

	assert.ErrorIs(t, err, domain.ErrFieldNotFound)
}

func TestGetRecommendationsEmptyCatalog(t *testing.T) {
	f := newServiceFixture(t, nil)
	field := f.createField(t, "Clay")

	_, err := f.svc.GetRecommendations(context.Background(), field.ID)

	assert.ErrorIs(t, err, domain.ErrEmptyCatalog)
}

func TestSelectCropLocksField(t *testing.T) {
	f := newServiceFixture(t, testCatalog())
	field := f.createField(t, "Clay")

	updated, err := f.svc.SelectCrop(context.Background(), field.ID, "Rice")

	require.NoError(t, err)
	assert.Equal(t, "Rice", updated.SelectedCrop)
	assert.True(t, updated.Locked())
	assert.NotEmpty(t, updated.LockedRecommendations)
	require.NotNil(t, updated.LockedWeather)
	assert.InDelta(t, 28.0, updated.LockedWeather.TemperatureC, 0.01)
	assert.Equal(t, TipStable, updated.LockedTip)
}

func TestLockedReadsAreFrozen(t *testing.T) {
	f := newServiceFixture(t, testCatalog())
	field := f.createField(t, "Clay")

	_, err := f.svc.SelectCrop(context.Background(), field.ID, "Rice")
	require.NoError(t, err)

	first, err := f.svc.GetRecommendations(context.Background(), field.ID)
	require.NoError(t, err)
	assert.True(t, first.Locked)

	// The weather moving on must not change what a locked field reads.
	f.reader.snap = domain.WeatherSnapshot{
		TemperatureC: 40,
		Condition:    "rain showers",
		Season:       domain.SeasonRainy,
	}

	second, err := f.svc.GetRecommendations(context.Background(), field.ID)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.InDelta(t, 28.0, second.Weather.TemperatureC, 0.01)
}

func TestSelectCropUnknownCrop(t *testing.T) {
	f := newServiceFixture(t, testCatalog())
	field := f.createField(t, "Clay")

	_, err := f.svc.SelectCrop(context.Background(), field.ID, "Dragonfruit")

	assert.ErrorIs(t, err, domain.ErrCropNotFound)
}

func TestSelectCropArchivedField(t *testing.T) {
	f := newServiceFixture(t, testCatalog())
	field := f.createField(t, "Clay")
	archiveField(t, f.repo, field.ID)

	_, err := f.svc.SelectCrop(context.Background(), field.ID, "Rice")

	assert.ErrorIs(t, err, domain.ErrFieldArchived)
}

func TestSelectCropReselectOverwritesSnapshot(t *testing.T) {
	f := newServiceFixture(t, testCatalog())
	field := f.createField(t, "Clay")

	_, err := f.svc.SelectCrop(context.Background(), field.ID, "Rice")
	require.NoError(t, err)

	f.reader.snap.TemperatureC = 22

	updated, err := f.svc.SelectCrop(context.Background(), field.ID, "Wheat")
	require.NoError(t, err)

	assert.Equal(t, "Wheat", updated.SelectedCrop)
	require.NotNil(t, updated.LockedWeather)
	assert.InDelta(t, 22.0, updated.LockedWeather.TemperatureC, 0.01)
}

func TestSelectCropPublishesEvent(t *testing.T) {
	f := newServiceFixture(t, testCatalog())
	field := f.createField(t, "Clay")

	var got event.Event
	f.bus.Subscribe(event.CropSelected, func(ctx context.Context, e event.Event) error {
		got = e
		return nil
	})

	_, err := f.svc.SelectCrop(context.Background(), field.ID, "Rice")
	require.NoError(t, err)

	require.Equal(t, event.CropSelected, got.Type)
	payload, ok := got.Payload.(event.CropSelectedPayloadV1)
	require.True(t, ok)
	assert.Equal(t, field.ID, payload.FieldID)
	assert.Equal(t, "farmer-1", payload.OwnerID)
	assert.Equal(t, "Rice", payload.CropName)
}

func TestSelectCropTouchesFarmerActivity(t *testing.T) {
	f := newServiceFixture(t, testCatalog())
	_, err := f.repo.UpsertFarmer(context.Background(), &domain.Farmer{ID: "farmer-1", Username: "mang_jose"})
	require.NoError(t, err)
	field := f.createField(t, "Clay")

	_, err = f.svc.SelectCrop(context.Background(), field.ID, "Rice")
	require.NoError(t, err)

	farmer, err := f.repo.GetFarmer(context.Background(), "farmer-1")
	require.NoError(t, err)
	assert.False(t, farmer.LastActiveAt.IsZero())
}
