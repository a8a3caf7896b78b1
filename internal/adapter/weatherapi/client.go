// Package weatherapi fetches live observations from the WeatherAPI.com
// current-conditions endpoint and reshapes them into the engine's attribute
// map.
package weatherapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/ARUNKUMAR069/RescueX/internal/domain"
)

// Client fetches current weather conditions for a location.
type Client struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

// NewClient creates a WeatherAPI client. baseURL is overridable for tests.
func NewClient(apiKey, baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: baseURL,
		logger:  logger,
	}
}

// CurrentObservation fetches current conditions for the location and returns
// them as a raw attribute map ready for prediction. Attributes the provider
// does not report are filled with regional midpoint estimates so the risk
// functions see plausible values instead of zeros.
func (c *Client) CurrentObservation(ctx context.Context, location string) (map[string]any, error) {
	params := url.Values{
		"key": {c.apiKey},
		"q":   {location},
		"aqi": {"yes"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/current.json?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("weather request: %w", err)
	}
	defer resp.Body.Close()

	// WeatherAPI answers 400 for locations it cannot match.
	if resp.StatusCode == http.StatusBadRequest {
		return nil, domain.ErrLocationNotFound
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("weather API error: status %d: %s", resp.StatusCode, body)
	}

	var current response
	if err := json.NewDecoder(resp.Body).Decode(&current); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return current.toAttributes(), nil
}

// WeatherAPI response types, limited to the fields the engine consumes.

type response struct {
	Current struct {
		TempC      float64 `json:"temp_c"`
		Humidity   float64 `json:"humidity"`
		PrecipMM   float64 `json:"precip_mm"`
		WindKPH    float64 `json:"wind_kph"`
		PressureMB float64 `json:"pressure_mb"`
		DewPointC  float64 `json:"dewpoint_c"`
		AirQuality struct {
			USEPAIndex float64 `json:"us-epa-index"`
			PM25       float64 `json:"pm2_5"`
		} `json:"air_quality"`
	} `json:"current"`
}

func (r response) toAttributes() map[string]any {
	cur := r.Current

	attrs := map[string]any{
		domain.AttrTemperature:            cur.TempC,
		domain.AttrHumidity:               cur.Humidity,
		domain.AttrPrecipitation:          cur.PrecipMM,
		domain.AttrWindSpeed:              cur.WindKPH / 3.6, // km/h to m/s
		domain.AttrPressure:               cur.PressureMB,
		domain.AttrPrecipitationIntensity: cur.PrecipMM / 3,
		domain.AttrDewPoint:               cur.DewPointC,

		// Not reported by the provider; midpoint estimates.
		domain.AttrSoilSaturation:      50.0,
		domain.AttrRiverLevelPercent:   50.0,
		domain.AttrUrbanRunoffIndex:    50.0,
		domain.AttrUrbanDensity:        50.0,
		domain.AttrTemperatureGradient: 5.0,
	}

	// The EPA index runs 1-6; scale onto the AQI bands the engine tiers on.
	if cur.AirQuality.USEPAIndex > 0 {
		attrs[domain.AttrAirQualityIndex] = cur.AirQuality.USEPAIndex * 83
	}

	if cur.TempC > 30 {
		attrs[domain.AttrConsecutiveHotDays] = 1.0
	}

	return attrs
}
