package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/i474232898/weather-logger/internal/weather"
)

const (
	defaultForecastURL = "https://api.open-meteo.com/v1/forecast"
	defaultArchiveURL  = "https://archive-api.open-meteo.com/v1/archive"

	// First day covered by Open-Meteo's reanalysis archive that this
	// service requests history from.
	archiveStartDate = "2000-01-01"
)

// Measurement variables requested from the provider. The current and hourly
// queries ask for the same set in slightly different order; both orders are
// fixed and must stay stable because the persisted schema mirrors them.
var (
	currentVariables = []string{
		"temperature_2m",
		"relative_humidity_2m",
		"is_day",
		"precipitation",
		"rain",
		"weather_code",
		"cloud_cover",
		"surface_pressure",
		"wind_speed_10m",
		"wind_direction_10m",
	}

	hourlyVariables = []string{
		"temperature_2m",
		"relative_humidity_2m",
		"precipitation",
		"rain",
		"weather_code",
		"cloud_cover",
		"surface_pressure",
		"wind_speed_10m",
		"wind_direction_10m",
		"is_day",
	}
)

// OpenMeteoConfig fixes the query parameters for one deployment.
type OpenMeteoConfig struct {
	Latitude  float64
	Longitude float64
	Timezone  string

	// ForecastURL and ArchiveURL override the public endpoints; tests point
	// them at an httptest server.
	ForecastURL string
	ArchiveURL  string
}

// OpenMeteoProvider implements the weather.Provider interface for Open-Meteo.
type OpenMeteoProvider struct {
	name   string
	cfg    OpenMeteoConfig
	client *http.Client
}

func NewOpenMeteoProvider(client *http.Client, cfg OpenMeteoConfig) *OpenMeteoProvider {
	if cfg.ForecastURL == "" {
		cfg.ForecastURL = defaultForecastURL
	}
	if cfg.ArchiveURL == "" {
		cfg.ArchiveURL = defaultArchiveURL
	}

	return &OpenMeteoProvider{
		name:   "open-meteo",
		cfg:    cfg,
		client: client,
	}
}

func (p *OpenMeteoProvider) Name() string {
	return p.name
}

// providerContext holds the envelope fields every Open-Meteo response carries.
type providerContext struct {
	Latitude             float64 `json:"latitude"`
	Longitude            float64 `json:"longitude"`
	Elevation            float64 `json:"elevation"`
	Timezone             string  `json:"timezone"`
	TimezoneAbbreviation string  `json:"timezone_abbreviation"`
	UTCOffsetSeconds     int     `json:"utc_offset_seconds"`
}

func (c providerContext) metadata() weather.Metadata {
	return weather.Metadata{
		Coordinates: weather.Coordinates{
			Latitude:  c.Latitude,
			Longitude: c.Longitude,
		},
		Elevation:            c.Elevation,
		Timezone:             c.Timezone,
		TimezoneAbbreviation: c.TimezoneAbbreviation,
		UTCOffsetSeconds:     c.UTCOffsetSeconds,
	}
}

type currentResponse struct {
	providerContext
	Current      weather.CurrentObservation `json:"current"`
	CurrentUnits map[string]string          `json:"current_units"`
}

type hourlyResponse struct {
	providerContext
	Hourly weather.HourlySeries `json:"hourly"`
	Daily  map[string]any       `json:"daily"`
}

// Current fetches the current-conditions snapshot.
func (p *OpenMeteoProvider) Current(ctx context.Context) (weather.CurrentBundle, error) {
	values := p.baseValues()
	values.Set("current", strings.Join(currentVariables, ","))
	values.Set("forecast_days", "1")

	body, err := doRequest(ctx, p.client, p.cfg.ForecastURL+"?"+values.Encode())
	if err != nil {
		return weather.CurrentBundle{}, fmt.Errorf("open-meteo current: %w", err)
	}

	var payload currentResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return weather.CurrentBundle{}, fmt.Errorf("open-meteo current: decode: %w", err)
	}

	units := payload.CurrentUnits
	if units == nil {
		units = map[string]string{}
	}

	return weather.CurrentBundle{
		CurrentData:      payload.Current,
		CurrentDataUnits: units,
		Metadata:         payload.metadata(),
	}, nil
}

// Hourly fetches the hour-by-hour series for the current day.
func (p *OpenMeteoProvider) Hourly(ctx context.Context) (weather.HourlyBundle, error) {
	values := p.baseValues()
	values.Set("hourly", strings.Join(hourlyVariables, ","))
	values.Set("forecast_days", "1")

	body, err := doRequest(ctx, p.client, p.cfg.ForecastURL+"?"+values.Encode())
	if err != nil {
		return weather.HourlyBundle{}, fmt.Errorf("open-meteo hourly: %w", err)
	}

	var payload hourlyResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return weather.HourlyBundle{}, fmt.Errorf("open-meteo hourly: decode: %w", err)
	}

	// No daily variables are requested, so the provider omits the block;
	// the response shape keeps it as an empty object.
	daily := payload.Daily
	if daily == nil {
		daily = map[string]any{}
	}

	return weather.HourlyBundle{
		HourlyData: payload.Hourly,
		DailyData:  daily,
		Metadata:   payload.metadata(),
	}, nil
}

// Historic fetches the raw archive payload from 2000-01-01 through today.
func (p *OpenMeteoProvider) Historic(ctx context.Context) (json.RawMessage, error) {
	values := p.baseValues()
	values.Set("hourly", strings.Join(hourlyVariables, ","))
	values.Set("start_date", archiveStartDate)
	values.Set("end_date", time.Now().UTC().Format("2006-01-02"))

	body, err := doRequest(ctx, p.client, p.cfg.ArchiveURL+"?"+values.Encode())
	if err != nil {
		return nil, fmt.Errorf("open-meteo historic: %w", err)
	}

	var raw json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("open-meteo historic: decode: %w", err)
	}
	return raw, nil
}

func (p *OpenMeteoProvider) baseValues() url.Values {
	values := url.Values{}
	values.Set("latitude", strconv.FormatFloat(p.cfg.Latitude, 'f', -1, 64))
	values.Set("longitude", strconv.FormatFloat(p.cfg.Longitude, 'f', -1, 64))
	values.Set("timezone", p.cfg.Timezone)
	return values
}
