package providers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/i474232898/weather-logger/internal/weather"
)

const currentFixture = `{
	"latitude": 28.65,
	"longitude": 77.25,
	"generationtime_ms": 0.052,
	"utc_offset_seconds": 19800,
	"timezone": "Asia/Kolkata",
	"timezone_abbreviation": "IST",
	"elevation": 214.0,
	"current_units": {
		"time": "iso8601",
		"interval": "seconds",
		"temperature_2m": "°C",
		"relative_humidity_2m": "%"
	},
	"current": {
		"time": "2024-03-14T15:00",
		"interval": 900,
		"temperature_2m": 31.5,
		"relative_humidity_2m": 74,
		"is_day": 1,
		"precipitation": 0.2,
		"rain": 0.2,
		"weather_code": 3,
		"cloud_cover": 75,
		"surface_pressure": 1002.3,
		"wind_speed_10m": 12.6,
		"wind_direction_10m": 210
	}
}`

const hourlyFixture = `{
	"latitude": 28.65,
	"longitude": 77.25,
	"utc_offset_seconds": 19800,
	"timezone": "Asia/Kolkata",
	"timezone_abbreviation": "IST",
	"elevation": 214.0,
	"hourly_units": {
		"time": "iso8601",
		"temperature_2m": "°C"
	},
	"hourly": {
		"time": ["2024-03-14T00:00", "2024-03-14T01:00"],
		"temperature_2m": [22.1, 21.4],
		"relative_humidity_2m": [60, 63],
		"precipitation": [0, 0],
		"rain": [0, 0],
		"weather_code": [1, 2],
		"cloud_cover": [20, 40],
		"surface_pressure": [1004.2, 1004.0],
		"wind_speed_10m": [8.4, 7.9],
		"wind_direction_10m": [200, 195],
		"is_day": [0, 0]
	}
}`

// newStubProvider starts an httptest server serving body for every request
// and returns a provider pointed at it plus the captured query values.
func newStubProvider(t *testing.T, status int, body string) (*OpenMeteoProvider, *url.Values) {
	t.Helper()

	captured := &url.Values{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*captured = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	provider := NewOpenMeteoProvider(srv.Client(), OpenMeteoConfig{
		Latitude:    28.6519,
		Longitude:   77.2315,
		Timezone:    "Asia/Kolkata",
		ForecastURL: srv.URL,
		ArchiveURL:  srv.URL,
	})
	return provider, captured
}

func TestCurrentFetchesAndReshapes(t *testing.T) {
	provider, query := newStubProvider(t, http.StatusOK, currentFixture)

	bundle, err := provider.Current(context.Background())
	if err != nil {
		t.Fatalf("Current returned error: %v", err)
	}

	obs := bundle.CurrentData
	if obs.Time != "2024-03-14T15:00" {
		t.Errorf("time = %q", obs.Time)
	}
	if obs.Interval != 900 {
		t.Errorf("interval = %d, want 900", obs.Interval)
	}
	if obs.Temperature2m != 31.5 {
		t.Errorf("temperature = %v, want 31.5", obs.Temperature2m)
	}
	if obs.RelativeHumidity2m != 74 {
		t.Errorf("humidity = %v, want 74", obs.RelativeHumidity2m)
	}
	if obs.IsDay != 1 {
		t.Errorf("is_day = %d, want 1", obs.IsDay)
	}
	if obs.WeatherCode != 3 {
		t.Errorf("weather code = %d, want 3", obs.WeatherCode)
	}
	if obs.SurfacePressure != 1002.3 {
		t.Errorf("pressure = %v, want 1002.3", obs.SurfacePressure)
	}

	meta := bundle.Metadata
	if meta.Coordinates.Latitude != 28.65 || meta.Coordinates.Longitude != 77.25 {
		t.Errorf("coordinates = %+v", meta.Coordinates)
	}
	if meta.Elevation != 214.0 {
		t.Errorf("elevation = %v, want 214", meta.Elevation)
	}
	if meta.Timezone != "Asia/Kolkata" || meta.TimezoneAbbreviation != "IST" {
		t.Errorf("timezone = %q abbreviation %q", meta.Timezone, meta.TimezoneAbbreviation)
	}
	if meta.UTCOffsetSeconds != 19800 {
		t.Errorf("utc offset = %d, want 19800", meta.UTCOffsetSeconds)
	}

	if bundle.CurrentDataUnits["temperature_2m"] != "°C" {
		t.Errorf("temperature unit = %q", bundle.CurrentDataUnits["temperature_2m"])
	}

	// Query parameters the provider must send.
	if got := query.Get("current"); got != strings.Join(currentVariables, ",") {
		t.Errorf("current = %q", got)
	}
	if got := query.Get("forecast_days"); got != "1" {
		t.Errorf("forecast_days = %q, want 1", got)
	}
	if got := query.Get("latitude"); got != "28.6519" {
		t.Errorf("latitude = %q, want 28.6519", got)
	}
	if got := query.Get("timezone"); got != "Asia/Kolkata" {
		t.Errorf("timezone = %q", got)
	}
}

func TestCurrentServerError(t *testing.T) {
	provider, _ := newStubProvider(t, http.StatusInternalServerError, `{"error":true}`)

	bundle, err := provider.Current(context.Background())
	if err == nil {
		t.Fatal("Current succeeded against a failing upstream")
	}
	if bundle.CurrentData != (weather.CurrentObservation{}) {
		t.Errorf("failed fetch returned data: %+v", bundle.CurrentData)
	}
}

func TestCurrentMalformedPayload(t *testing.T) {
	provider, _ := newStubProvider(t, http.StatusOK, "not json")

	if _, err := provider.Current(context.Background()); err == nil {
		t.Fatal("Current accepted a malformed payload")
	}
}

func TestCurrentContextCanceled(t *testing.T) {
	provider, _ := newStubProvider(t, http.StatusOK, currentFixture)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := provider.Current(ctx); err == nil {
		t.Fatal("Current ignored a canceled context")
	}
}

func TestCurrentWithoutHTTPClient(t *testing.T) {
	provider := NewOpenMeteoProvider(nil, OpenMeteoConfig{Timezone: "UTC"})

	if _, err := provider.Current(context.Background()); err == nil {
		t.Fatal("Current succeeded without an http client")
	}
}

func TestHourlyDecodesSeriesAndDefaultsDaily(t *testing.T) {
	provider, query := newStubProvider(t, http.StatusOK, hourlyFixture)

	bundle, err := provider.Hourly(context.Background())
	if err != nil {
		t.Fatalf("Hourly returned error: %v", err)
	}

	series := bundle.HourlyData
	if len(series.Time) != 2 || series.Time[0] != "2024-03-14T00:00" {
		t.Errorf("time series = %v", series.Time)
	}
	if len(series.Temperature2m) != 2 || series.Temperature2m[1] != 21.4 {
		t.Errorf("temperature series = %v", series.Temperature2m)
	}
	if len(series.IsDay) != 2 || series.IsDay[0] != 0 {
		t.Errorf("is_day series = %v", series.IsDay)
	}

	// No daily variables are requested; the decoded block must still be a
	// non-nil empty object so it serializes as {}.
	if bundle.DailyData == nil {
		t.Error("daily data is nil")
	}
	if len(bundle.DailyData) != 0 {
		t.Errorf("daily data = %v, want empty", bundle.DailyData)
	}

	if got := query.Get("hourly"); got != strings.Join(hourlyVariables, ",") {
		t.Errorf("hourly = %q", got)
	}
	if got := query.Get("forecast_days"); got != "1" {
		t.Errorf("forecast_days = %q, want 1", got)
	}
}

func TestHistoricPassesThroughRawPayload(t *testing.T) {
	raw := `{"hourly":{"time":["2000-01-01T00:00"],"temperature_2m":[12.3]}}`
	provider, query := newStubProvider(t, http.StatusOK, raw)

	got, err := provider.Historic(context.Background())
	if err != nil {
		t.Fatalf("Historic returned error: %v", err)
	}
	if string(got) != raw {
		t.Errorf("payload = %s, want %s", got, raw)
	}

	if got := query.Get("start_date"); got != "2000-01-01" {
		t.Errorf("start_date = %q, want 2000-01-01", got)
	}
	wantEnd := time.Now().UTC().Format("2006-01-02")
	if got := query.Get("end_date"); got != wantEnd {
		t.Errorf("end_date = %q, want %q", got, wantEnd)
	}
	if got := query.Get("hourly"); got != strings.Join(hourlyVariables, ",") {
		t.Errorf("hourly = %q", got)
	}
}
