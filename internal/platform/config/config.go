// Package config loads service configuration: struct defaults, then an
// optional YAML file, then environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "EQS_"

type Config struct {
	LogLevel  string `koanf:"log_level" validate:"oneof=debug info warn error"`
	LogFormat string `koanf:"log_format" validate:"oneof=json console"`

	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	Breaker  BreakerConfig  `koanf:"breaker"`
	Quality  QualityConfig  `koanf:"quality"`
	Ingest   IngestConfig   `koanf:"ingest"`
}

type ServerConfig struct {
	Addr            string        `koanf:"addr" validate:"required"`
	ReadTimeout     time.Duration `koanf:"read_timeout" validate:"gt=0"`
	WriteTimeout    time.Duration `koanf:"write_timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"gt=0"`
	BodyLimit       int           `koanf:"body_limit" validate:"gt=0"`
}

type DatabaseConfig struct {
	DSN             string        `koanf:"dsn" validate:"required"`
	MaxOpenConns    int           `koanf:"max_open_conns" validate:"gt=0"`
	MaxIdleConns    int           `koanf:"max_idle_conns" validate:"gte=0"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
}

type BreakerConfig struct {
	MaxRequests      uint32        `koanf:"max_requests" validate:"gt=0"`
	Interval         time.Duration `koanf:"interval"`
	Timeout          time.Duration `koanf:"timeout" validate:"gt=0"`
	FailureThreshold uint32        `koanf:"failure_threshold" validate:"gt=0"`
}

type QualityConfig struct {
	QualityAttention float64 `koanf:"quality_attention" validate:"gt=0,lte=100"`
	ParamCritical    float64 `koanf:"param_critical" validate:"gt=0,lte=100"`
	ParamAttention   float64 `koanf:"param_attention" validate:"gt=0,ltefield=ParamCritical"`
	AnomalyWarning   float64 `koanf:"anomaly_warning" validate:"gt=0,ltefield=AnomalyCritical"`
	AnomalyCritical  float64 `koanf:"anomaly_critical" validate:"gt=0"`

	TopParameters    int `koanf:"top_parameters" validate:"gt=0,ltefield=MaxTopParameters"`
	MaxTopParameters int `koanf:"max_top_parameters" validate:"gt=0"`
	TopEvents        int `koanf:"top_events" validate:"gt=0"`
	TopPages         int `koanf:"top_pages" validate:"gt=0"`

	DefaultPageSize int `koanf:"default_page_size" validate:"gt=0,ltefield=MaxPageSize"`
	MaxPageSize     int `koanf:"max_page_size" validate:"gt=0"`

	FallbackLookbackDays int `koanf:"fallback_lookback_days" validate:"gt=0,ltefield=MaxRangeDays"`
	MaxRangeDays         int `koanf:"max_range_days" validate:"gt=0"`

	RealtimeTop        int    `koanf:"realtime_top" validate:"gt=0"`
	RealtimeCutoffHour int    `koanf:"realtime_cutoff_hour" validate:"gte=1,lte=24"`
	Timezone           string `koanf:"timezone" validate:"required"`
}

// Location resolves Timezone. "today" for the realtime view is read there.
func (q QualityConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(q.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", q.Timezone, err)
	}
	return loc, nil
}

type IngestConfig struct {
	MaxBatchSize int `koanf:"max_batch_size" validate:"gt=0"`
}

func Defaults() Config {
	return Config{
		LogLevel:  "info",
		LogFormat: "json",
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    60 * time.Second,
			ShutdownTimeout: 5 * time.Second,
			BodyLimit:       16 * 1024 * 1024,
		},
		Database: DatabaseConfig{
			MaxOpenConns:    20,
			MaxIdleConns:    10,
			ConnMaxLifetime: 30 * time.Minute,
		},
		Breaker: BreakerConfig{
			MaxRequests:      3,
			Interval:         time.Minute,
			Timeout:          30 * time.Second,
			FailureThreshold: 5,
		},
		Quality: QualityConfig{
			QualityAttention:     10,
			ParamCritical:        50,
			ParamAttention:       10,
			AnomalyWarning:       1.0,
			AnomalyCritical:      3.5,
			TopParameters:        5,
			MaxTopParameters:     100,
			TopEvents:            50,
			TopPages:             10,
			DefaultPageSize:      20,
			MaxPageSize:          500,
			FallbackLookbackDays: 30,
			MaxRangeDays:         366,
			RealtimeTop:          10,
			RealtimeCutoffHour:   12,
			Timezone:             "UTC",
		},
		Ingest: IngestConfig{
			MaxBatchSize: 5000,
		},
	}
}

var validate = validator.New()

// Load builds the configuration. path is an optional YAML file; an empty
// path skips it. Environment variables use the EQS_ prefix with "__" between
// levels (EQS_SERVER__ADDR). POSTGRES_DSN is accepted for the database DSN.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Defaults(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("POSTGRES_DSN", ".", func(string) string {
		return "database.dsn"
	}), nil); err != nil {
		return nil, fmt.Errorf("loading POSTGRES_DSN: %w", err)
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("loading environment variables: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return nil, fmt.Errorf("invalid config: %s failed %s", verrs[0].Namespace(), verrs[0].Tag())
		}
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if _, err := cfg.Quality.Location(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// PathFromEnv returns the config file named by CONFIG_PATH, if any.
func PathFromEnv() string {
	return os.Getenv("CONFIG_PATH")
}
