package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/sethvargo/go-envconfig"

	"fiofaker/pkg/fixtures"
)

const (
	// EnvKey names the deployment environment variable.
	EnvKey = "FIO_FAKER_ENV"
	// Production is the EnvKey value that enables production behaviour.
	Production = "production"

	productionGrace = 3 * time.Second
)

// Config holds runtime configuration for the faker API service.
type Config struct {
	Env            string   `env:"FIO_FAKER_ENV,default=development"`
	Port           int      `env:"FIO_FAKER_APP_PORT,default=3040"`
	JWTSecretKey   string   `env:"FIO_FAKER_JWT_SECRET_KEY"`
	RootURL        string   `env:"FIO_FAKER_ROOT_URL,default=https://example.net/projects"`
	LogLevel       string   `env:"FIO_FAKER_LOG_LEVEL,default=info"`
	MaxLimit       int      `env:"FIO_FAKER_MAX_LIMIT,default=1000"`
	AllowedOrigins []string `env:"FIO_FAKER_CORS_ALLOWED_ORIGINS,default=*"`
	RateLimit      int      `env:"FIO_FAKER_RATE_LIMIT,default=0"`
	NATSURL        string   `env:"FIO_FAKER_NATS_URL"`
	ShutdownGrace  string   `env:"FIO_FAKER_SHUTDOWN_GRACE"`
	OTLPEndpoint   string   `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	Ranges         Ranges   `env:", prefix=FIO_FAKER_RANGE_"`
}

// Ranges overrides the fixture count bounds, each as "min-max" or "n".
type Ranges struct {
	RunsPerBuild fixtures.Range `env:"RUNS_PER_BUILD,default=2-6"`
	Runs         fixtures.Range `env:"RUNS,default=0-60"`
	StatusEvents fixtures.Range `env:"STATUS_EVENTS,default=0-10"`
	Artifacts    fixtures.Range `env:"ARTIFACTS,default=0-15"`
	Tests        fixtures.Range `env:"TESTS,default=0-15"`
	TestResults  fixtures.Range `env:"TEST_RESULTS,default=0-10"`
	Tags         fixtures.Range `env:"TAGS,default=1-7"`
	TagDevices   fixtures.Range `env:"TAG_DEVICES,default=1-10"`
	Targets      fixtures.Range `env:"TARGETS,default=1-10"`
	DeviceGroups fixtures.Range `env:"DEVICE_GROUPS,default=1-7"`
	DeviceTags   fixtures.Range `env:"DEVICE_TAGS,default=1-6"`
	DockerApps   fixtures.Range `env:"DOCKER_APPS,default=1-6"`
	Sentences    fixtures.Range `env:"SENTENCES,default=1-30"`
}

// Load returns a Config populated from environment variables. Outside
// production a .env file in the working directory is read first.
func Load(ctx context.Context) (Config, error) {
	if os.Getenv(EnvKey) != Production {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load .env: %w", err)
		}
	}
	return LoadWith(ctx, envconfig.OsLookuper())
}

// LoadWith returns a validated Config read through l.
func LoadWith(ctx context.Context, l envconfig.Lookuper) (Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: l,
	}); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values envconfig cannot.
func (c Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("FIO_FAKER_APP_PORT %d out of range", c.Port)
	}
	if c.MaxLimit < 1 {
		return fmt.Errorf("FIO_FAKER_MAX_LIMIT must be positive, got %d", c.MaxLimit)
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("FIO_FAKER_RATE_LIMIT must not be negative, got %d", c.RateLimit)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("FIO_FAKER_LOG_LEVEL: %w", err)
	}
	if c.ShutdownGrace != "" {
		d, err := time.ParseDuration(c.ShutdownGrace)
		if err != nil {
			return fmt.Errorf("FIO_FAKER_SHUTDOWN_GRACE: %w", err)
		}
		if d < 0 {
			return fmt.Errorf("FIO_FAKER_SHUTDOWN_GRACE must not be negative, got %s", d)
		}
	}
	return nil
}

// IsProduction reports whether FIO_FAKER_ENV is production.
func (c Config) IsProduction() bool { return c.Env == Production }

// Addr is the listen address for Port.
func (c Config) Addr() string { return fmt.Sprintf(":%d", c.Port) }

// Level is the parsed log level, info when unset.
func (c Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil || c.LogLevel == "" {
		return zerolog.InfoLevel
	}
	return level
}

// Grace is how long the server keeps answering after a shutdown signal:
// FIO_FAKER_SHUTDOWN_GRACE when set, three seconds in production, none otherwise.
func (c Config) Grace() time.Duration {
	if c.ShutdownGrace != "" {
		if d, err := time.ParseDuration(c.ShutdownGrace); err == nil {
			return d
		}
	}
	if c.IsProduction() {
		return productionGrace
	}
	return 0
}

// Fixtures converts the configured bounds for fixtures.WithRanges.
func (r Ranges) Fixtures() fixtures.Ranges {
	return fixtures.Ranges{
		RunsPerBuild: r.RunsPerBuild,
		Runs:         r.Runs,
		StatusEvents: r.StatusEvents,
		Artifacts:    r.Artifacts,
		Tests:        r.Tests,
		TestResults:  r.TestResults,
		Tags:         r.Tags,
		TagDevices:   r.TagDevices,
		Targets:      r.Targets,
		DeviceGroups: r.DeviceGroups,
		DeviceTags:   r.DeviceTags,
		DockerApps:   r.DockerApps,
		Sentences:    r.Sentences,
	}
}
