package recommend

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/jprdgz/sakahan-api/internal/catalog"
	"github.com/jprdgz/sakahan-api/internal/domain"
	"github.com/jprdgz/sakahan-api/internal/event"
	"github.com/jprdgz/sakahan-api/internal/logger"
	"github.com/jprdgz/sakahan-api/internal/metrics"
	"github.com/jprdgz/sakahan-api/internal/repository"
	"github.com/jprdgz/sakahan-api/internal/weather"
)

// Service is the recommendation engine surface.
type Service interface {
	// GetRecommendations returns the ranked suggestions for a field. For a
	// locked field the stored snapshot is returned verbatim; otherwise the
	// set is computed live from the catalog and the current weather.
	GetRecommendations(ctx context.Context, fieldID string) (*domain.RecommendationSet, error)

	// SelectCrop commits the farmer's choice and freezes the current
	// recommendation set onto the field. Selecting again overwrites the
	// previous selection with a freshly frozen snapshot.
	SelectCrop(ctx context.Context, fieldID, cropName string) (*domain.Field, error)
}

type service struct {
	fields  repository.Field
	catalog catalog.Service
	weather weather.Reader
	matcher *Matcher
	builder *Builder
	bus     event.Bus
	now     func() time.Time
}

// NewService creates the recommendation service. A nil now defaults to
// time.Now.
func NewService(fields repository.Field, cat catalog.Service, reader weather.Reader, matcher *Matcher, builder *Builder, bus event.Bus, now func() time.Time) Service {
	if now == nil {
		now = time.Now
	}
	return &service{
		fields:  fields,
		catalog: cat,
		weather: reader,
		matcher: matcher,
		builder: builder,
		bus:     bus,
		now:     now,
	}
}

func (s *service) GetRecommendations(ctx context.Context, fieldID string) (*domain.RecommendationSet, error) {
	field, err := s.fields.GetField(ctx, fieldID)
	if err != nil {
		return nil, err
	}

	if field.Locked() {
		metrics.RecommendationsServed.WithLabelValues(metrics.PathLocked, "0").Inc()
		set := &domain.RecommendationSet{
			WeatherTip:      field.LockedTip,
			Recommendations: field.LockedRecommendations,
			Locked:          true,
		}
		if field.LockedWeather != nil {
			set.Weather = *field.LockedWeather
		}
		return set, nil
	}

	if field.Archived {
		// Archived without a selection should not happen, but if it does
		// there is no live path for a finished field.
		return nil, domain.ErrFieldArchived
	}

	set, _, err := s.computeLive(ctx, field)
	if err != nil {
		return nil, err
	}
	return set, nil
}

// computeLive runs the full pipeline: weather -> match -> score -> render.
func (s *service) computeLive(ctx context.Context, field *domain.Field) (*domain.RecommendationSet, domain.MatchTier, error) {
	log := logger.FromContext(ctx)

	snap := s.weather.Snapshot(ctx)

	crops, err := s.catalog.ListCrops(ctx)
	if err != nil {
		return nil, 0, err
	}

	candidates, tier, err := s.matcher.Match(crops, field.SoilType, snap.Season, snap.TemperatureC)
	if err != nil {
		return nil, 0, err
	}
	if tier == domain.TierRandom {
		log.Warn("No catalog crop suits this soil, serving random sample",
			"field_id", field.ID, "soil_type", field.SoilType)
	}

	recs := s.builder.Build(candidates, field, snap, s.now())
	tip := WeatherTip(snap.Season, snap.Condition, snap.TemperatureC)

	metrics.RecommendationsServed.WithLabelValues(metrics.PathLive, strconv.Itoa(int(tier))).Inc()

	return &domain.RecommendationSet{
		Weather:         snap,
		WeatherTip:      tip,
		Recommendations: recs,
		TierUsed:        tier,
	}, tier, nil
}

func (s *service) SelectCrop(ctx context.Context, fieldID, cropName string) (*domain.Field, error) {
	log := logger.FromContext(ctx)

	crop, err := s.catalog.GetCrop(ctx, cropName)
	if err != nil {
		return nil, err
	}

	tx, err := s.fields.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	field, err := tx.GetFieldForUpdate(ctx, fieldID)
	if err != nil {
		return nil, err
	}
	if field.Archived {
		return nil, domain.ErrFieldArchived
	}

	// Freeze the set as computed right now. The snapshot, not the live
	// pipeline, is what every later read of this field sees.
	set, _, err := s.computeLive(ctx, field)
	if err != nil {
		return nil, err
	}

	if err := tx.SaveSelection(ctx, fieldID, crop.Name, set.Recommendations, set.Weather, set.WeatherTip); err != nil {
		return nil, fmt.Errorf("failed to save crop selection: %w", err)
	}
	if err := tx.TouchFarmer(ctx, field.OwnerID, s.now()); err != nil {
		return nil, fmt.Errorf("failed to touch farmer activity: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit crop selection: %w", err)
	}

	metrics.CropSelections.WithLabelValues(crop.Name).Inc()
	log.Info("Crop selection locked", "field_id", fieldID, "crop", crop.Name)

	if err := s.bus.Publish(ctx, event.NewCropSelectedEvent(fieldID, field.OwnerID, crop.Name)); err != nil {
		log.Warn("Failed to publish crop selection event", "error", err)
	}

	updated, err := s.fields.GetField(ctx, fieldID)
	if err != nil {
		return nil, err
	}
	return updated, nil
}
