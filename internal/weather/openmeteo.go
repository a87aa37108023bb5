package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/jprdgz/sakahan-api/internal/domain"
)

const (
	openMeteoBaseURL = "https://api.open-meteo.com/v1/forecast"
	requestTimeout   = 10 * time.Second
)

// OpenMeteoClient reads the current conditions for a fixed lat/long from
// the Open-Meteo forecast API.
type OpenMeteoClient struct {
	httpClient *http.Client
	baseURL    string
	latitude   float64
	longitude  float64
}

// NewOpenMeteoClient creates a client for the given reference coordinates.
func NewOpenMeteoClient(latitude, longitude float64) *OpenMeteoClient {
	return &OpenMeteoClient{
		httpClient: &http.Client{Timeout: requestTimeout},
		baseURL:    openMeteoBaseURL,
		latitude:   latitude,
		longitude:  longitude,
	}
}

type openMeteoResponse struct {
	Current struct {
		Temperature   float64 `json:"temperature_2m"`
		Humidity      float64 `json:"relative_humidity_2m"`
		Precipitation float64 `json:"precipitation"`
	} `json:"current"`
}

// Current implements Provider.
func (c *OpenMeteoClient) Current(ctx context.Context) (domain.WeatherSnapshot, error) {
	url := fmt.Sprintf("%s?latitude=%f&longitude=%f&current=temperature_2m,relative_humidity_2m,precipitation",
		c.baseURL, c.latitude, c.longitude)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return domain.WeatherSnapshot{}, fmt.Errorf("failed to build weather request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.WeatherSnapshot{}, fmt.Errorf("%w: %v", domain.ErrWeatherUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.WeatherSnapshot{}, fmt.Errorf("%w: unexpected status %d", domain.ErrWeatherUnavailable, resp.StatusCode)
	}

	var payload openMeteoResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return domain.WeatherSnapshot{}, fmt.Errorf("%w: decoding response: %v", domain.ErrWeatherUnavailable, err)
	}

	return domain.WeatherSnapshot{
		TemperatureC: payload.Current.Temperature,
		Condition:    conditionText(payload.Current.Precipitation, payload.Current.Humidity),
		FetchedAt:    time.Now(),
	}, nil
}

// conditionText renders a coarse human-readable condition from the raw
// numbers; the tip table only cares about rain and broad humidity.
func conditionText(precipitation, humidity float64) string {
	switch {
	case precipitation > 0:
		return "rain showers"
	case humidity >= 85:
		return "humid and overcast"
	default:
		return "partly cloudy"
	}
}
