package recommend

import (
	"strings"

	"github.com/jprdgz/sakahan-api/internal/domain"
)

// Weather tip thresholds (°C).
const (
	heatStressTemp  = 33.0
	coolWeatherTemp = 20.0
)

// Weather tip copy.
const (
	TipUnseasonalRain = "Unseasonal rain during the dry season - reduce irrigation and check field drainage."
	TipHeatStress     = "High heat alert - water early in the morning and consider shade nets for seedlings."
	TipCoolWeather    = "Cooler than usual - growth may slow; delay fertilizer application until temperatures recover."
	TipStable         = "Conditions are stable - keep to your regular watering and fertilizing schedule."
)

// WeatherTip selects exactly one tip from a fixed decision table.
// Evaluation order is significant: the first matching rule wins.
func WeatherTip(s domain.Season, condition string, tempC float64) string {
	cond := strings.ToLower(condition)

	switch {
	case s == domain.SeasonDry && strings.Contains(cond, "rain"):
		return TipUnseasonalRain
	case tempC > heatStressTemp:
		return TipHeatStress
	case tempC < coolWeatherTemp:
		return TipCoolWeather
	default:
		return TipStable
	}
}
