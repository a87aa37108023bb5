// Package season derives the coarse rainy/dry climate period from the
// calendar. The boundary is a regional policy, so it sits behind an
// interface instead of being inlined at call sites.
package season

import (
	"time"

	"github.com/jprdgz/sakahan-api/internal/domain"
)

// Policy maps a point in time to a season and projects the end of the
// growing window that season implies.
type Policy interface {
	SeasonFor(t time.Time) domain.Season
	// GrowingWindowEnd returns the rough end of the current growing window:
	// a planning heuristic, not an agronomic calculation.
	GrowingWindowEnd(t time.Time) time.Time
}

// Philippine lowland boundary: June through November is the wet season.
const (
	rainyStartMonth = time.June
	rainyEndMonth   = time.November
)

// DefaultPolicy implements the hard-coded regional rule the service was
// built for.
type DefaultPolicy struct{}

// NewPolicy returns the default season policy.
func NewPolicy() DefaultPolicy {
	return DefaultPolicy{}
}

// SeasonFor returns rainy for months June..November, dry otherwise.
func (DefaultPolicy) SeasonFor(t time.Time) domain.Season {
	m := t.Month()
	if m >= rainyStartMonth && m <= rainyEndMonth {
		return domain.SeasonRainy
	}
	return domain.SeasonDry
}

// GrowingWindowEnd projects the end of the current window:
// rainy season runs out in December of the current year, the dry season
// window ends in May of the following year.
func (p DefaultPolicy) GrowingWindowEnd(t time.Time) time.Time {
	if p.SeasonFor(t) == domain.SeasonRainy {
		return time.Date(t.Year(), time.December, 31, 0, 0, 0, 0, t.Location())
	}
	year := t.Year()
	// January..May are already inside the window that ends this May.
	if t.Month() > time.May {
		year++
	}
	return time.Date(year, time.May, 31, 0, 0, 0, 0, t.Location())
}
