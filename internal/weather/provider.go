// Package weather supplies the already-fetched temperature/condition
// reading the recommendation engine consumes. The engine never calls the
// upstream API inline; it goes through a cached, fallback-wrapped Reader.
package weather

import (
	"context"
	"time"

	"github.com/jprdgz/sakahan-api/internal/domain"
	"github.com/jprdgz/sakahan-api/internal/logger"
	"github.com/jprdgz/sakahan-api/internal/metrics"
	"github.com/jprdgz/sakahan-api/internal/season"
)

// Provider fetches a raw reading for the fixed reference location.
type Provider interface {
	Current(ctx context.Context) (domain.WeatherSnapshot, error)
}

// Fallback snapshot used when the upstream provider is unavailable.
// A degraded recommendation beats a failed one.
const (
	FallbackTemperatureC = 30.0
	FallbackCondition    = "partly cloudy"
)

// Reader is what the rest of the service consumes: a snapshot with the
// season derived and upstream failures already downgraded to the fallback.
type Reader interface {
	// Snapshot never fails; a degraded result carries Degraded == true.
	Snapshot(ctx context.Context) domain.WeatherSnapshot
}

type reader struct {
	provider Provider
	seasons  season.Policy
	now      func() time.Time
}

// NewReader wraps a provider with season derivation and the fixed fallback.
func NewReader(provider Provider, seasons season.Policy, now func() time.Time) Reader {
	if now == nil {
		now = time.Now
	}
	return &reader{provider: provider, seasons: seasons, now: now}
}

func (r *reader) Snapshot(ctx context.Context) domain.WeatherSnapshot {
	log := logger.FromContext(ctx)
	at := r.now()

	snap, err := r.provider.Current(ctx)
	if err != nil {
		log.Warn("Weather provider unavailable, using fallback snapshot", "error", err)
		metrics.WeatherFallbacks.Inc()
		snap = domain.WeatherSnapshot{
			TemperatureC: FallbackTemperatureC,
			Condition:    FallbackCondition,
			Degraded:     true,
			FetchedAt:    at,
		}
	}

	snap.Season = r.seasons.SeasonFor(at)
	if snap.FetchedAt.IsZero() {
		snap.FetchedAt = at
	}
	return snap
}
