package domain

import "strings"

// Season is the coarse two-valued climate period used for crop matching.
type Season string

const (
	SeasonRainy Season = "rainy"
	SeasonDry   Season = "dry"
)

// WaterRequirement classifies how much irrigation a crop needs.
type WaterRequirement string

const (
	WaterLow      WaterRequirement = "low"
	WaterModerate WaterRequirement = "moderate"
	WaterHigh     WaterRequirement = "high"
)

// Crop is a catalog entry. Catalog rows are reference data: they are written
// only through the administrative path and are read-only to the engine.
type Crop struct {
	Name             string           `json:"name"`
	SoilTypes        []string         `json:"soil_types"`
	IdealSeason      Season           `json:"ideal_season"`
	MinTemp          float64          `json:"min_temp"`
	MaxTemp          float64          `json:"max_temp"`
	WaterRequirement WaterRequirement `json:"water_requirement"`
	SeedType         string           `json:"seed_type"`
	MinHarvestDays   int              `json:"min_harvest_days"`
	MaxHarvestDays   int              `json:"max_harvest_days"`
	Description      string           `json:"description,omitempty"`
	Oversupply       bool             `json:"oversupply"`
}

// SuitsSoil reports whether the crop tolerates the given soil type.
// Soil tags are compared case-insensitively.
func (c *Crop) SuitsSoil(soilType string) bool {
	for _, s := range c.SoilTypes {
		if strings.EqualFold(s, soilType) {
			return true
		}
	}
	return false
}

// InTempBand reports whether the temperature falls inside the crop's
// inclusive ideal band.
func (c *Crop) InTempBand(tempC float64) bool {
	return tempC >= c.MinTemp && tempC <= c.MaxTemp
}
