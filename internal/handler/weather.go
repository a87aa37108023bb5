package handler

import (
	"net/http"

	"github.com/jprdgz/sakahan-api/internal/weather"
)

// WeatherHandler handles weather HTTP requests
type WeatherHandler struct {
	reader weather.Reader
}

// NewWeatherHandler creates a new weather handler
func NewWeatherHandler(reader weather.Reader) *WeatherHandler {
	return &WeatherHandler{
		reader: reader,
	}
}

// Current handles fetching the current weather snapshot
// @Summary Get current weather
// @Description Return the current weather snapshot used for recommendations. A degraded snapshot means the upstream provider was unreachable.
// @Tags weather
// @Produce json
// @Success 200 {object} domain.WeatherSnapshot "Current weather"
// @Router /weather/current [get]
func (h *WeatherHandler) Current(w http.ResponseWriter, r *http.Request) {
	snap := h.reader.Snapshot(r.Context())
	respondJSON(w, http.StatusOK, snap)
}
