package csvlog

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/i474232898/weather-logger/internal/weather"
)

// columns is the persisted schema: fixed order, one label per measurement
// with its physical unit. Stable for the lifetime of a file.
var columns = []string{
	"time",
	"temperature_2m (°C)",
	"relative_humidity_2m (%)",
	"precipitation (mm)",
	"rain (mm)",
	"weather_code (wmo code)",
	"cloud_cover (%)",
	"surface_pressure (hPa)",
	"wind_speed_10m (km/h)",
	"wind_direction_10m (°)",
	"is_day ()",
}

// timestampLayout is the provider's minute-resolution time format, also used
// for the default timestamp of an empty snapshot.
const timestampLayout = "2006-01-02T15:04"

// Appender persists one row per weather snapshot to a CSV file. The header
// is written exactly once, when the target file is absent or empty; rows are
// only ever appended. There is no deduplication: appending the same snapshot
// twice produces two identical rows.
type Appender struct {
	mu   sync.Mutex
	path string
}

// NewAppender creates an Appender writing to path.
func NewAppender(path string) *Appender {
	return &Appender{path: path}
}

// Path returns the target file path.
func (a *Appender) Path() string {
	return a.path
}

// Append normalizes obs into the fixed column schema and appends it as one
// row. The parent directory of the target file must already exist.
func (a *Appender) Append(obs weather.CurrentObservation) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	row := formatRow(obs)
	writeHeader := !fileHasData(a.path)

	f, err := os.OpenFile(a.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open %s: %w", a.path, err)
	}

	w := csv.NewWriter(f)
	if writeHeader {
		if err := w.Write(columns); err != nil {
			f.Close()
			return fmt.Errorf("write header: %w", err)
		}
	}
	if err := w.Write(row); err != nil {
		f.Close()
		return fmt.Errorf("write row: %w", err)
	}

	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", a.path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", a.path, err)
	}
	return nil
}

// fileHasData reports whether path exists with non-zero size. Both a missing
// and an empty file need the header written.
func fileHasData(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Size() > 0
}

// formatRow flattens one observation into the column order, substituting
// defaults for missing fields: numerics become 0 (0.00 for precipitation and
// rain) and the timestamp becomes the current local time.
func formatRow(obs weather.CurrentObservation) []string {
	ts := obs.Time
	if ts == "" {
		ts = time.Now().Format(timestampLayout)
	}

	return []string{
		ts,
		formatNumber(obs.Temperature2m),
		formatNumber(obs.RelativeHumidity2m),
		formatPrecip(obs.Precipitation),
		formatPrecip(obs.Rain),
		strconv.Itoa(obs.WeatherCode),
		formatNumber(obs.CloudCover),
		formatNumber(obs.SurfacePressure),
		formatNumber(obs.WindSpeed10m),
		formatNumber(obs.WindDirection10m),
		strconv.Itoa(obs.IsDay),
	}
}

// formatNumber renders a measurement without trailing zeros ("31.5", "0").
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// formatPrecip keeps the two-decimal form used for precipitation and rain
// ("0.00", "1.20").
func formatPrecip(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
