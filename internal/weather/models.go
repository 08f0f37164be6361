package weather

// CurrentObservation is the "current" block of an Open-Meteo forecast
// response: one set of measurements for a single point in time. Fields the
// provider omits decode to their zero values, which doubles as the default
// used when the row is persisted.
type CurrentObservation struct {
	Time               string  `json:"time"`
	Interval           int     `json:"interval"`
	Temperature2m      float64 `json:"temperature_2m"`
	RelativeHumidity2m float64 `json:"relative_humidity_2m"`
	IsDay              int     `json:"is_day"`
	Precipitation      float64 `json:"precipitation"`
	Rain               float64 `json:"rain"`
	WeatherCode        int     `json:"weather_code"`
	CloudCover         float64 `json:"cloud_cover"`
	SurfacePressure    float64 `json:"surface_pressure"`
	WindSpeed10m       float64 `json:"wind_speed_10m"`
	WindDirection10m   float64 `json:"wind_direction_10m"`
}

// HourlySeries holds the parallel per-hour arrays of an Open-Meteo forecast
// response. Index i of every slice refers to the same hour.
type HourlySeries struct {
	Time               []string  `json:"time"`
	Temperature2m      []float64 `json:"temperature_2m"`
	RelativeHumidity2m []float64 `json:"relative_humidity_2m"`
	Precipitation      []float64 `json:"precipitation"`
	Rain               []float64 `json:"rain"`
	WeatherCode        []int     `json:"weather_code"`
	CloudCover         []float64 `json:"cloud_cover"`
	SurfacePressure    []float64 `json:"surface_pressure"`
	WindSpeed10m       []float64 `json:"wind_speed_10m"`
	WindDirection10m   []float64 `json:"wind_direction_10m"`
	IsDay              []int     `json:"is_day"`
}

// Coordinates is the geographic point the provider resolved the query to.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Metadata carries the provider context common to every response.
type Metadata struct {
	Coordinates          Coordinates `json:"coordinates"`
	Elevation            float64     `json:"elevation"`
	Timezone             string      `json:"timezone"`
	TimezoneAbbreviation string      `json:"timezone_abbreviation"`
	UTCOffsetSeconds     int         `json:"utc_offset_seconds"`
}

// CurrentBundle is the current-conditions view served by GET /weather:
// the observation, its units, and the provider metadata.
type CurrentBundle struct {
	CurrentData      CurrentObservation `json:"current_data"`
	CurrentDataUnits map[string]string  `json:"current_data_units"`
	Metadata         Metadata           `json:"metadata"`
}

// HourlyBundle is the current-day view served by GET /weather/hourly.
// DailyData mirrors the provider's "daily" block; no daily variables are
// requested, so it stays an empty object.
type HourlyBundle struct {
	HourlyData HourlySeries   `json:"hourly_data"`
	DailyData  map[string]any `json:"daily_data"`
	Metadata   Metadata       `json:"metadata"`
}
