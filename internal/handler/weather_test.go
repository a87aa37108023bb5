package handler_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jprdgz/sakahan-api/internal/domain"
)

func TestWeatherHandler_Current(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(t, http.MethodGet, "/weather/current", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	snap := decodeBody[domain.WeatherSnapshot](t, rec)
	assert.InDelta(t, 28.0, snap.TemperatureC, 0.01)
	assert.Equal(t, "partly cloudy", snap.Condition)
	assert.Equal(t, domain.SeasonRainy, snap.Season)
	assert.False(t, snap.Degraded)
}
