package recommend

import (
	"fmt"
	"sort"
	"time"

	"github.com/jprdgz/sakahan-api/internal/domain"
	"github.com/jprdgz/sakahan-api/internal/season"
)

// MaxRecommendations caps how many ranked entries a response carries.
const MaxRecommendations = 3

// Recommendation card copy. Kept as constants so handlers and tests agree
// on the exact wording.
const (
	TitleGoodOptionFormat  = "%s - Good Option"
	TitleAlternativeFormat = "%s - Consider Alternative"
	OversupplyWarnFormat   = "%s is currently oversupplied. Prices may drop."
)

// Builder assembles ranked, annotated recommendation entries from matched
// candidates.
type Builder struct {
	seasons season.Policy
}

// NewBuilder creates a builder with the given season policy.
func NewBuilder(seasons season.Policy) *Builder {
	return &Builder{seasons: seasons}
}

// Build scores the candidates, ranks them and renders the top entries.
// The sort is stable and ties keep catalog order, so identical inputs
// always produce identical output.
func (b *Builder) Build(candidates []domain.Crop, field *domain.Field, weather domain.WeatherSnapshot, now time.Time) []domain.Recommendation {
	type scored struct {
		crop  domain.Crop
		score int
	}

	ranked := make([]scored, 0, len(candidates))
	for i := range candidates {
		ranked = append(ranked, scored{
			crop:  candidates[i],
			score: Score(&candidates[i], weather.TemperatureC),
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	if len(ranked) > MaxRecommendations {
		ranked = ranked[:MaxRecommendations]
	}

	goodUntil := b.seasons.GrowingWindowEnd(now).Format("January 2006")

	recs := make([]domain.Recommendation, 0, len(ranked))
	for _, entry := range ranked {
		recs = append(recs, b.render(entry.crop, entry.score, field, weather, goodUntil))
	}
	return recs
}

func (b *Builder) render(crop domain.Crop, score int, field *domain.Field, weather domain.WeatherSnapshot, goodUntil string) domain.Recommendation {
	rec := domain.Recommendation{
		CropName:         crop.Name,
		SuitabilityScore: score,
		Title:            fmt.Sprintf(TitleGoodOptionFormat, crop.Name),
		Color:            domain.ColorGreen,
	}
	if crop.Oversupply {
		rec.Title = fmt.Sprintf(TitleAlternativeFormat, crop.Name)
		rec.Color = domain.ColorOrange
		rec.Warning = fmt.Sprintf(OversupplyWarnFormat, crop.Name)
	}

	rec.Details = []string{
		fmt.Sprintf("Field: %s", field.Name),
		fmt.Sprintf("Soil: suitable for %s soil", field.SoilType),
		fmt.Sprintf("Water: %s requirement", crop.WaterRequirement),
		fmt.Sprintf("Ideal temperature: %.0f-%.0f°C (currently %.1f°C)", crop.MinTemp, crop.MaxTemp, weather.TemperatureC),
		fmt.Sprintf("Suitability score: %d/100", score),
		fmt.Sprintf("Good until %s", goodUntil),
	}
	return rec
}
