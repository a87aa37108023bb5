package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jprdgz/sakahan-api/internal/repository"
)

func writeSeedFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "crops.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const validSeed = `{
  "crops": [
    { "name": "rice", "min_temp": 20, "max_temp": 35, "min_harvest_days": 90, "max_harvest_days": 150, "soil_types": ["clay", "loam"], "ideal_season": "rainy", "seed_type": "GRAIN", "water_requirement": "high" },
    { "name": "Cabbage", "min_temp": 10, "max_temp": 24, "min_harvest_days": 60, "max_harvest_days": 120, "soil_types": ["Loam"], "ideal_season": "dry", "seed_type": "leaf", "water_requirement": "high" }
  ]
}`

func TestLoadNormalizesNamesAndSoils(t *testing.T) {
	loader := NewLoader()
	path := writeSeedFile(t, validSeed)

	cfg, err := loader.Load(path)

	require.NoError(t, err)
	require.Len(t, cfg.Crops, 2)
	assert.Equal(t, "Rice", cfg.Crops[0].Name)
	assert.Equal(t, []string{"Clay", "Loam"}, cfg.Crops[0].SoilTypes)
	assert.Equal(t, "grain", cfg.Crops[0].SeedType)
}

func TestLoadMissingFile(t *testing.T) {
	loader := NewLoader()

	_, err := loader.Load(filepath.Join(t.TempDir(), "nope.json"))

	assert.Error(t, err)
}

func TestLoadMalformedJSON(t *testing.T) {
	loader := NewLoader()
	path := writeSeedFile(t, `{"crops": [`)

	_, err := loader.Load(path)

	assert.ErrorContains(t, err, "failed to parse")
}

func TestValidate(t *testing.T) {
	loader := NewLoader()

	tests := []struct {
		name    string
		seed    string
		wantErr string
	}{
		{
			"empty catalog",
			`{"crops": []}`,
			"no crops",
		},
		{
			"duplicate name",
			`{"crops": [
				{"name": "Rice", "min_temp": 20, "max_temp": 35, "soil_types": ["Clay"], "ideal_season": "rainy"},
				{"name": "rice", "min_temp": 20, "max_temp": 35, "soil_types": ["Clay"], "ideal_season": "rainy"}
			]}`,
			"duplicate crop",
		},
		{
			"inverted temperature band",
			`{"crops": [{"name": "Rice", "min_temp": 35, "max_temp": 20, "soil_types": ["Clay"], "ideal_season": "rainy"}]}`,
			"exceeds max_temp",
		},
		{
			"no soil types",
			`{"crops": [{"name": "Rice", "min_temp": 20, "max_temp": 35, "soil_types": [], "ideal_season": "rainy"}]}`,
			"no soil types",
		},
		{
			"unknown season",
			`{"crops": [{"name": "Rice", "min_temp": 20, "max_temp": 35, "soil_types": ["Clay"], "ideal_season": "monsoon"}]}`,
			"unknown season",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := loader.Load(writeSeedFile(t, tt.seed))
			require.NoError(t, err)

			err = loader.Validate(cfg)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestValidateAcceptsGoodSeed(t *testing.T) {
	loader := NewLoader()
	cfg, err := loader.Load(writeSeedFile(t, validSeed))
	require.NoError(t, err)

	assert.NoError(t, loader.Validate(cfg))
}

func TestSyncToDatabase(t *testing.T) {
	loader := NewLoader()
	repo := repository.NewMockRepository()
	cfg, err := loader.Load(writeSeedFile(t, validSeed))
	require.NoError(t, err)

	result, err := loader.SyncToDatabase(context.Background(), cfg, repo)

	require.NoError(t, err)
	assert.Equal(t, 2, result.CropsInserted)
	assert.Equal(t, 0, result.CropsUpdated)

	// Second sync updates in place instead of inserting.
	result, err = loader.SyncToDatabase(context.Background(), cfg, repo)
	require.NoError(t, err)
	assert.Equal(t, 0, result.CropsInserted)
	assert.Equal(t, 2, result.CropsUpdated)

	crops, err := repo.ListCrops(context.Background())
	require.NoError(t, err)
	assert.Len(t, crops, 2)
}

func TestSyncShippedSeedFile(t *testing.T) {
	loader := NewLoader()

	cfg, err := loader.Load(filepath.Join("..", "..", "configs", "crops.json"))
	require.NoError(t, err)
	require.NoError(t, loader.Validate(cfg))

	assert.Len(t, cfg.Crops, 20)
	for _, c := range cfg.Crops {
		assert.NotEmpty(t, c.WaterRequirement, "crop %s missing water requirement", c.Name)
	}
}
