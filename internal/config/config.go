package config

import (
	"fmt"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// AppConfig is the process configuration, read from the environment with an
// optional .env overlay.
type AppConfig struct {
	Port     string `envconfig:"PORT" default:"8080" validate:"required"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// Coordinates and timezone the provider is queried with.
	Latitude  float64 `envconfig:"WEATHER_LATITUDE" default:"28.6519" validate:"latitude"`
	Longitude float64 `envconfig:"WEATHER_LONGITUDE" default:"77.2315" validate:"longitude"`
	Timezone  string  `envconfig:"WEATHER_TIMEZONE" default:"Asia/Kolkata" validate:"required"`

	// CSVPath is the file hourly samples are appended to.
	CSVPath string `envconfig:"CSV_PATH" default:"./dataset/delhi_weather.csv" validate:"required"`

	// FetchInterval is the collection cadence after the first hour-aligned
	// run. Adjustable at runtime through the update-frequency endpoint.
	FetchInterval time.Duration `envconfig:"FETCH_INTERVAL" default:"1h"`

	// HTTPTimeout bounds every outbound provider call.
	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"60s"`

	// Provider endpoint overrides.
	ForecastURL string `envconfig:"OPEN_METEO_FORECAST_URL" default:"https://api.open-meteo.com/v1/forecast" validate:"url"`
	ArchiveURL  string `envconfig:"OPEN_METEO_ARCHIVE_URL" default:"https://archive-api.open-meteo.com/v1/archive" validate:"url"`
}

var validate = validator.New()

// Load reads configuration from the environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	cfg := &AppConfig{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if cfg.FetchInterval < time.Second {
		return nil, fmt.Errorf("FETCH_INTERVAL must be at least one second, got %v", cfg.FetchInterval)
	}
	if cfg.HTTPTimeout <= 0 {
		return nil, fmt.Errorf("HTTP_TIMEOUT must be positive, got %v", cfg.HTTPTimeout)
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}
