package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jprdgz/sakahan-api/internal/domain"
	"github.com/jprdgz/sakahan-api/internal/repository"
)

func seededService(t *testing.T) (Service, *repository.MockRepository) {
	t.Helper()
	repo := repository.NewMockRepository()
	crops := []domain.Crop{
		{Name: "Rice", SoilTypes: []string{"Clay", "Loam"}, IdealSeason: domain.SeasonRainy, MinTemp: 20, MaxTemp: 35},
		{Name: "Corn", SoilTypes: []string{"Loam", "Sandy"}, IdealSeason: domain.SeasonRainy, MinTemp: 18, MaxTemp: 32},
		{Name: "Cabbage", SoilTypes: []string{"Loam"}, IdealSeason: domain.SeasonDry, MinTemp: 10, MaxTemp: 24},
	}
	for i := range crops {
		_, err := repo.UpsertCrop(context.Background(), &crops[i])
		require.NoError(t, err)
	}
	return NewService(repo), repo
}

func TestListCrops(t *testing.T) {
	svc, _ := seededService(t)

	crops, err := svc.ListCrops(context.Background())

	require.NoError(t, err)
	assert.Len(t, crops, 3)
}

func TestGetCrop(t *testing.T) {
	svc, _ := seededService(t)

	crop, err := svc.GetCrop(context.Background(), "Rice")

	require.NoError(t, err)
	assert.Equal(t, "Rice", crop.Name)
}

func TestGetCropCaseInsensitive(t *testing.T) {
	svc, _ := seededService(t)

	crop, err := svc.GetCrop(context.Background(), "rice")

	require.NoError(t, err)
	assert.Equal(t, "Rice", crop.Name)
}

func TestGetCropNotFound(t *testing.T) {
	svc, _ := seededService(t)

	_, err := svc.GetCrop(context.Background(), "Dragonfruit")

	assert.ErrorIs(t, err, domain.ErrCropNotFound)
}

func TestSetOversupply(t *testing.T) {
	svc, _ := seededService(t)

	err := svc.SetOversupply(context.Background(), []string{"Rice", "Corn"})
	require.NoError(t, err)

	names, err := svc.ListOversupplied(context.Background())
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Rice", "Corn"}, names)

	// Re-flagging replaces the previous set instead of accumulating.
	err = svc.SetOversupply(context.Background(), []string{"Cabbage"})
	require.NoError(t, err)

	names, err = svc.ListOversupplied(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Cabbage"}, names)
}

func TestSetOversupplyUnknownCrop(t *testing.T) {
	svc, _ := seededService(t)

	err := svc.SetOversupply(context.Background(), []string{"Rice", "Dragonfruit"})

	assert.ErrorIs(t, err, domain.ErrCropNotFound)
}

func TestSetOversupplyEmptyClearsAll(t *testing.T) {
	svc, _ := seededService(t)

	require.NoError(t, svc.SetOversupply(context.Background(), []string{"Rice"}))
	require.NoError(t, svc.SetOversupply(context.Background(), nil))

	names, err := svc.ListOversupplied(context.Background())
	require.NoError(t, err)
	assert.Empty(t, names)
}
