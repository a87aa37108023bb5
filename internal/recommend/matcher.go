package recommend

import (
	"math/rand"
	"sync"
	"time"

	"github.com/jprdgz/sakahan-api/internal/domain"
)

// FallbackSampleSize is how many crops the random fallback tier returns,
// so the farmer always sees some recommendation instead of an empty list.
const FallbackSampleSize = 3

// Matcher narrows the catalog to candidate crops for a field, relaxing
// the filter tier by tier until something matches:
//
//	tier 1: soil + season + temperature band
//	tier 2: soil only
//	tier 3: random sample of the whole catalog
//
// The randomness source is injected so tests can seed it.
type Matcher struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewMatcher creates a matcher. A nil rng gets a time-seeded source.
func NewMatcher(rng *rand.Rand) *Matcher {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Matcher{rng: rng}
}

// Match returns the candidate crops for the given soil, season and
// temperature, along with the tier that produced them. The result is empty
// only when the catalog itself is empty, which is reported as an error.
func (m *Matcher) Match(catalog []domain.Crop, soilType string, season domain.Season, tempC float64) ([]domain.Crop, domain.MatchTier, error) {
	if len(catalog) == 0 {
		return nil, 0, domain.ErrEmptyCatalog
	}

	var strict, soilOnly []domain.Crop
	for i := range catalog {
		c := &catalog[i]
		if !c.SuitsSoil(soilType) {
			continue
		}
		soilOnly = append(soilOnly, *c)
		if c.IdealSeason == season && c.InTempBand(tempC) {
			strict = append(strict, *c)
		}
	}

	if len(strict) > 0 {
		return strict, domain.TierStrict, nil
	}
	if len(soilOnly) > 0 {
		return soilOnly, domain.TierSoilOnly, nil
	}
	return m.sample(catalog), domain.TierRandom, nil
}

// sample picks up to FallbackSampleSize crops uniformly without replacement.
func (m *Matcher) sample(catalog []domain.Crop) []domain.Crop {
	n := FallbackSampleSize
	if len(catalog) < n {
		n = len(catalog)
	}

	m.mu.Lock()
	perm := m.rng.Perm(len(catalog))
	m.mu.Unlock()

	picked := make([]domain.Crop, 0, n)
	for _, idx := range perm[:n] {
		picked = append(picked, catalog[idx])
	}
	return picked
}
