package recommend

import (
	"math"

	"github.com/jprdgz/sakahan-api/internal/domain"
)

// Score rates how well the current temperature suits a crop, on a 0-100
// scale. The score is 100 at the center of the crop's ideal band, decays
// linearly to 50 at the band edges, and keeps decaying outside the band
// until it clamps at 0. Closeness to the ideal midpoint is rewarded over
// mere band membership.
func Score(crop *domain.Crop, tempC float64) int {
	mid := (crop.MinTemp + crop.MaxTemp) / 2
	halfRange := (crop.MaxTemp - crop.MinTemp) / 2
	deviation := math.Abs(tempC - mid)

	// Degenerate band: a single-temperature crop is either a perfect match
	// or fully out of range.
	if halfRange == 0 {
		if deviation == 0 {
			return 100
		}
		return 0
	}

	raw := 100 - (deviation/halfRange)*50
	if raw < 0 {
		raw = 0
	}
	if raw > 100 {
		raw = 100
	}
	return int(math.Round(raw))
}
