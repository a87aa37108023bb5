package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jprdgz/sakahan-api/internal/domain"
	"github.com/jprdgz/sakahan-api/internal/repository"
)

// SeedConfig is the on-disk shape of the crop catalog seed file.
type SeedConfig struct {
	Crops []domain.Crop `json:"crops"`
}

// SyncResult reports what the catalog sync changed.
type SyncResult struct {
	CropsInserted int
	CropsUpdated  int
}

// Loader reads the crop seed file and syncs it to the database at startup.
type Loader struct {
	titleCaser cases.Caser
}

// NewLoader creates a catalog loader.
func NewLoader() *Loader {
	return &Loader{titleCaser: cases.Title(language.English)}
}

// Load reads and parses the seed file.
func (l *Loader) Load(path string) (*SeedConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read crop seed file: %w", err)
	}

	var cfg SeedConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse crop seed file: %w", err)
	}

	for i := range cfg.Crops {
		l.normalize(&cfg.Crops[i])
	}
	return &cfg, nil
}

// Validate checks the seed entries for contradictions before they reach
// the database.
func (l *Loader) Validate(cfg *SeedConfig) error {
	if len(cfg.Crops) == 0 {
		return fmt.Errorf("crop seed file contains no crops")
	}

	seen := make(map[string]bool, len(cfg.Crops))
	for _, c := range cfg.Crops {
		if c.Name == "" {
			return fmt.Errorf("crop with empty name in seed file")
		}
		if seen[c.Name] {
			return fmt.Errorf("duplicate crop %q in seed file", c.Name)
		}
		seen[c.Name] = true

		if c.MinTemp > c.MaxTemp {
			return fmt.Errorf("crop %q: min_temp %.1f exceeds max_temp %.1f", c.Name, c.MinTemp, c.MaxTemp)
		}
		if len(c.SoilTypes) == 0 {
			return fmt.Errorf("crop %q: no soil types", c.Name)
		}
		if c.IdealSeason != domain.SeasonRainy && c.IdealSeason != domain.SeasonDry {
			return fmt.Errorf("crop %q: unknown season %q", c.Name, c.IdealSeason)
		}
	}
	return nil
}

// SyncToDatabase upserts every seed entry, keyed by crop name.
func (l *Loader) SyncToDatabase(ctx context.Context, cfg *SeedConfig, repo repository.Crop) (*SyncResult, error) {
	result := &SyncResult{}
	for i := range cfg.Crops {
		inserted, err := repo.UpsertCrop(ctx, &cfg.Crops[i])
		if err != nil {
			return nil, fmt.Errorf("failed to sync crop %q: %w", cfg.Crops[i].Name, err)
		}
		if inserted {
			result.CropsInserted++
		} else {
			result.CropsUpdated++
		}
	}
	return result, nil
}

// normalize canonicalizes names and soil tags so lookups and matching
// never depend on how the seed file was capitalized.
func (l *Loader) normalize(c *domain.Crop) {
	c.Name = l.titleCaser.String(strings.ToLower(strings.TrimSpace(c.Name)))
	for i, s := range c.SoilTypes {
		c.SoilTypes[i] = l.titleCaser.String(strings.ToLower(strings.TrimSpace(s)))
	}
	c.SeedType = strings.ToLower(strings.TrimSpace(c.SeedType))
}
