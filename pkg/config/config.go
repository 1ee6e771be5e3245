package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// AppConfiguration holds process wide settings.
type AppConfiguration struct {
	Environment string `mapstructure:"environment" validate:"required,oneof=development docker production test"`
	LogLevel    string `mapstructure:"log_level" validate:"required,oneof=trace debug info warn error"`
	Timezone    string `mapstructure:"timezone" validate:"required"`
}

// HTTPConfiguration for the api server.
type HTTPConfiguration struct {
	Address       string `mapstructure:"address" validate:"required"`
	AllowedOrigin string `mapstructure:"allowed_origin"`
}

// DatabaseConfiguration for the postgres connection.
type DatabaseConfiguration struct {
	DSN             string        `mapstructure:"dsn" validate:"required"`
	Database        string        `mapstructure:"database" validate:"required"`
	MigrationsPath  string        `mapstructure:"migrations_path" validate:"required"`
	MaxOpenConns    int           `mapstructure:"max_open_conns" validate:"gt=0"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns" validate:"gte=0"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// RedisConfiguration struct.
type RedisConfiguration struct {
	Host     string `mapstructure:"host" validate:"required"`
	Port     string `mapstructure:"port" validate:"required"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db" validate:"gte=0"`
}

// BucketConfiguration is the S3 compatible bucket used for photos, attachments and logs.
type BucketConfiguration struct {
	Endpoint     string `mapstructure:"endpoint"`
	PublicURL    string `mapstructure:"public_url"`
	Region       string `mapstructure:"region" validate:"required"`
	AccessKey    string `mapstructure:"access_key"`
	AccessSecret string `mapstructure:"access_secret"`
	PhotoBucket  string `mapstructure:"photo_bucket" validate:"required"`
	LogBucket    string `mapstructure:"log_bucket"`
}

// WeatherConfiguration for the Open-Meteo client.
type WeatherConfiguration struct {
	ForecastURL string        `mapstructure:"forecast_url" validate:"required,url"`
	ArchiveURL  string        `mapstructure:"archive_url" validate:"required,url"`
	Timeout     time.Duration `mapstructure:"timeout" validate:"gt=0"`
	MaxRetries  int           `mapstructure:"max_retries" validate:"gte=0"`
	RateLimit   float64       `mapstructure:"rate_limit" validate:"gt=0"`
	CacheTTL    time.Duration `mapstructure:"cache_ttl" validate:"gt=0"`
}

// SessionConfiguration for the admin sessions.
type SessionConfiguration struct {
	CookieName string        `mapstructure:"cookie_name" validate:"required"`
	TTL        time.Duration `mapstructure:"ttl" validate:"gt=0"`
	Secure     bool          `mapstructure:"secure"`
}

// UploadConfiguration limits the accepted images.
type UploadConfiguration struct {
	MaxBytes     int64 `mapstructure:"max_bytes" validate:"gt=0"`
	MaxDimension int   `mapstructure:"max_dimension" validate:"gt=0"`
}

// Config is the full configuration of every binary.
type Config struct {
	App      AppConfiguration      `mapstructure:"app"`
	HTTP     HTTPConfiguration     `mapstructure:"http"`
	Database DatabaseConfiguration `mapstructure:"database"`
	Redis    RedisConfiguration    `mapstructure:"redis"`
	Bucket   BucketConfiguration   `mapstructure:"bucket"`
	Weather  WeatherConfiguration  `mapstructure:"weather"`
	Session  SessionConfiguration  `mapstructure:"session"`
	Upload   UploadConfiguration   `mapstructure:"upload"`
}

// Keys read from the environment, e.g. DATABASE_DSN or REDIS_HOST.
var keys = []string{
	"app.environment", "app.log_level", "app.timezone",
	"http.address", "http.allowed_origin",
	"database.dsn", "database.database", "database.migrations_path",
	"database.max_open_conns", "database.max_idle_conns", "database.conn_max_lifetime",
	"redis.host", "redis.port", "redis.password", "redis.db",
	"bucket.endpoint", "bucket.public_url", "bucket.region", "bucket.access_key",
	"bucket.access_secret", "bucket.photo_bucket", "bucket.log_bucket",
	"weather.forecast_url", "weather.archive_url", "weather.timeout",
	"weather.max_retries", "weather.rate_limit", "weather.cache_ttl",
	"session.cookie_name", "session.ttl", "session.secure",
	"upload.max_bytes", "upload.max_dimension",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.log_level", "info")
	v.SetDefault("app.timezone", "Local")

	v.SetDefault("http.address", ":8080")

	v.SetDefault("database.database", "familykarting")
	v.SetDefault("database.migrations_path", "migrations")
	v.SetDefault("database.max_open_conns", 20)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", time.Hour)

	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", "6379")

	v.SetDefault("bucket.region", "us-east-1")
	v.SetDefault("bucket.photo_bucket", "photos")

	v.SetDefault("weather.forecast_url", "https://api.open-meteo.com/v1/forecast")
	v.SetDefault("weather.archive_url", "https://archive-api.open-meteo.com/v1/archive")
	v.SetDefault("weather.timeout", 10*time.Second)
	v.SetDefault("weather.max_retries", 3)
	v.SetDefault("weather.rate_limit", 5.0)
	v.SetDefault("weather.cache_ttl", time.Hour)

	v.SetDefault("session.cookie_name", "fk_session")
	v.SetDefault("session.ttl", 7*24*time.Hour)

	v.SetDefault("upload.max_bytes", 10<<20)
	v.SetDefault("upload.max_dimension", 1920)
}

// Load the configuration from the environment.
// A .env file is loaded first when not running on Docker.
func Load() (*Config, error) {
	if os.Getenv("APP_ENVIRONMENT") != "docker" {
		// Missing .env is fine, the environment may already be populated.
		_ = godotenv.Load()
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// AutomaticEnv only resolves keys viper already knows about.
	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("couldn't bind %s: %w", key, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the struct tags of the configuration.
func Validate(cfg *Config) error {
	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if _, err := time.LoadLocation(cfg.App.Timezone); err != nil {
		return fmt.Errorf("invalid configuration: unknown timezone %q", cfg.App.Timezone)
	}

	return nil
}

// Location returns the app timezone, used when a circuit has none.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// RedisAddr is the host:port pair for the redis client.
func (c *Config) RedisAddr() string {
	return c.Redis.Host + ":" + c.Redis.Port
}
