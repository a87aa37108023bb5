package domain

import "time"

// ColorTag drives how a recommendation card is rendered.
type ColorTag string

const (
	ColorGreen  ColorTag = "green"  // recommended
	ColorOrange ColorTag = "orange" // oversupplied / alternative
)

// MatchTier identifies which fallback level produced the candidate set.
type MatchTier int

const (
	// TierStrict matched soil, season and temperature band.
	TierStrict MatchTier = 1
	// TierSoilOnly matched soil only, ignoring season and temperature.
	TierSoilOnly MatchTier = 2
	// TierRandom is the random-sample fallback used when the soil type
	// matches nothing in the catalog at all.
	TierRandom MatchTier = 3
)

// Recommendation is one ranked, annotated crop suggestion. Recommendations
// are value objects: they appear in live responses and, verbatim, in a
// field's locked snapshot.
type Recommendation struct {
	CropName         string   `json:"crop_name"`
	SuitabilityScore int      `json:"suitability_score"`
	Title            string   `json:"title"`
	Color            ColorTag `json:"color"`
	Warning          string   `json:"warning,omitempty"`
	Details          []string `json:"details"`
}

// WeatherSnapshot is the already-fetched reading the engine consumes.
// It is transient; the core never persists it.
type WeatherSnapshot struct {
	TemperatureC float64   `json:"temperature_c"`
	Condition    string    `json:"condition"`
	Season       Season    `json:"season"`
	// Degraded marks values that came from the fixed fallback snapshot
	// because the upstream provider was unavailable.
	Degraded  bool      `json:"degraded,omitempty"`
	FetchedAt time.Time `json:"fetched_at"`
}

// RecommendationSet is the full answer to a recommendation query.
type RecommendationSet struct {
	Weather         WeatherSnapshot  `json:"weather"`
	WeatherTip      string           `json:"weather_tip"`
	Recommendations []Recommendation `json:"recommendations"`
	// Locked is true when the set came from the field's frozen snapshot
	// rather than a live computation.
	Locked bool `json:"locked"`
	// TierUsed reports the matcher fallback tier for live responses;
	// it is zero on the locked path.
	TierUsed MatchTier `json:"tier_used,omitempty"`
}
