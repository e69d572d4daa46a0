package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/flexprice/pricing/internal/types"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Configuration struct {
	Deployment DeploymentConfig `validate:"required"`
	Server     ServerConfig     `validate:"required"`
	Logging    LoggingConfig    `validate:"required"`
	Pricing    PricingConfig    `validate:"required"`
	Cache      CacheConfig
	Catalog    CatalogConfig
	Sentry     SentryConfig
	Pyroscope  PyroscopeConfig
}

type DeploymentConfig struct {
	Mode types.RunMode `validate:"required"`
}

type ServerConfig struct {
	Address string `validate:"required"`
	// RateLimit is the sustained requests per second allowed on /v1.
	// Zero disables limiting.
	RateLimit float64 `mapstructure:"rate_limit" validate:"gte=0"`
	RateBurst int     `mapstructure:"rate_burst" validate:"gte=0"`
}

type LoggingConfig struct {
	Level types.LogLevel `validate:"required"`
}

// PricingConfig holds knobs that affect how quotes are computed and presented.
type PricingConfig struct {
	ProrationStrategy types.ProrationStrategy `mapstructure:"proration_strategy" validate:"required"`
	Timezone          string                  `mapstructure:"timezone" validate:"required"`
	DateFormat        string                  `mapstructure:"date_format" validate:"required"`
	DefaultCurrency   string                  `mapstructure:"default_currency" validate:"required,len=3"`
	MaxBatchSize      int                     `mapstructure:"max_batch_size" validate:"gte=1"`
	BatchConcurrency  int                     `mapstructure:"batch_concurrency" validate:"gte=1"`
}

type CacheConfig struct {
	Enabled bool
	TTL     time.Duration
}

// CatalogConfig points at the JSON file seeding tax rules and coupons.
type CatalogConfig struct {
	Path string
}

type SentryConfig struct {
	Enabled     bool
	DSN         string
	Environment string
	SampleRate  float64 `mapstructure:"sample_rate"`
}

type PyroscopeConfig struct {
	Enabled         bool
	ServerAddress   string   `mapstructure:"server_address"`
	ApplicationName string   `mapstructure:"application_name"`
	BasicAuthUser   string   `mapstructure:"basic_auth_user"`
	BasicAuthPass   string   `mapstructure:"basic_auth_pass"`
	ProfileTypes    []string `mapstructure:"profile_types"`
	SampleRate      uint32   `mapstructure:"sample_rate"`
	DisableGCRuns   bool     `mapstructure:"disable_gc_runs"`
}

func NewConfig() (*Configuration, error) {
	// .env is optional; real deployments inject the environment directly
	_ = godotenv.Load()

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./internal/config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/pricing")

	setDefaults(v)

	v.SetEnvPrefix("PRICING")
	v.SetEnvKeyReplacer(strings.NewReplacer(
		".", "_",
		"-", "_",
	))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, err
		}
		fmt.Printf("No config file found, using defaults and environment: %v\n", err)
	} else {
		fmt.Printf("Using config file: %s\n", v.ConfigFileUsed())
	}

	var config Configuration
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	def := GetDefaultConfig()
	v.SetDefault("deployment.mode", def.Deployment.Mode)
	v.SetDefault("server.address", def.Server.Address)
	v.SetDefault("server.rate_limit", def.Server.RateLimit)
	v.SetDefault("server.rate_burst", def.Server.RateBurst)
	v.SetDefault("logging.level", def.Logging.Level)
	v.SetDefault("pricing.proration_strategy", def.Pricing.ProrationStrategy)
	v.SetDefault("pricing.timezone", def.Pricing.Timezone)
	v.SetDefault("pricing.date_format", def.Pricing.DateFormat)
	v.SetDefault("pricing.default_currency", def.Pricing.DefaultCurrency)
	v.SetDefault("pricing.max_batch_size", def.Pricing.MaxBatchSize)
	v.SetDefault("pricing.batch_concurrency", def.Pricing.BatchConcurrency)
	v.SetDefault("cache.enabled", def.Cache.Enabled)
	v.SetDefault("cache.ttl", def.Cache.TTL)
	v.SetDefault("pyroscope.enabled", def.Pyroscope.Enabled)
	v.SetDefault("pyroscope.application_name", def.Pyroscope.ApplicationName)
	v.SetDefault("pyroscope.sample_rate", def.Pyroscope.SampleRate)
}

func (c Configuration) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return err
	}
	return c.Pricing.ProrationStrategy.Validate()
}

// GetDefaultConfig returns a configuration usable without any file,
// e.g. for scripts and tests.
func GetDefaultConfig() *Configuration {
	return &Configuration{
		Deployment: DeploymentConfig{Mode: types.ModeLocal},
		Server:     ServerConfig{Address: ":8080", RateLimit: 50, RateBurst: 100},
		Logging:    LoggingConfig{Level: types.LogLevelDebug},
		Pricing: PricingConfig{
			ProrationStrategy: types.ProrationStrategyDayBased,
			Timezone:          "UTC",
			DateFormat:        "Jan 2, 2006",
			DefaultCurrency:   "USD",
			MaxBatchSize:      50,
			BatchConcurrency:  8,
		},
		Cache: CacheConfig{Enabled: true, TTL: 5 * time.Minute},
		Pyroscope: PyroscopeConfig{
			ApplicationName: "pricing",
			SampleRate:      100,
		},
	}
}
