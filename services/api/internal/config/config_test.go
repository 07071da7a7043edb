package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fiofaker/pkg/fixtures"
)

func TestLoadWithDefaults(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{}))
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Env)
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, ":3040", cfg.Addr())
	assert.Equal(t, "https://example.net/projects", cfg.RootURL)
	assert.Equal(t, 1000, cfg.MaxLimit)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.Equal(t, zerolog.InfoLevel, cfg.Level())
	assert.Equal(t, time.Duration(0), cfg.Grace())
	assert.Equal(t, fixtures.DefaultRanges(), cfg.Ranges.Fixtures())
}

func TestLoadWith(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		check   func(t *testing.T, cfg Config)
		wantErr bool
	}{
		{
			name: "production grace",
			env:  map[string]string{"FIO_FAKER_ENV": "production"},
			check: func(t *testing.T, cfg Config) {
				assert.True(t, cfg.IsProduction())
				assert.Equal(t, 3*time.Second, cfg.Grace())
			},
		},
		{
			name: "explicit grace wins",
			env:  map[string]string{"FIO_FAKER_ENV": "production", "FIO_FAKER_SHUTDOWN_GRACE": "250ms"},
			check: func(t *testing.T, cfg Config) {
				assert.Equal(t, 250*time.Millisecond, cfg.Grace())
			},
		},
		{
			name: "overrides",
			env: map[string]string{
				"FIO_FAKER_APP_PORT":             "0",
				"FIO_FAKER_JWT_SECRET_KEY":       "s3cret",
				"FIO_FAKER_LOG_LEVEL":            "debug",
				"FIO_FAKER_CORS_ALLOWED_ORIGINS": "https://a.example,https://b.example",
				"FIO_FAKER_RATE_LIMIT":           "120",
				"FIO_FAKER_RANGE_RUNS":           "5-9",
				"FIO_FAKER_RANGE_TAGS":           "3",
			},
			check: func(t *testing.T, cfg Config) {
				assert.Equal(t, ":0", cfg.Addr())
				assert.Equal(t, "s3cret", cfg.JWTSecretKey)
				assert.Equal(t, zerolog.DebugLevel, cfg.Level())
				assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
				assert.Equal(t, 120, cfg.RateLimit)
				assert.Equal(t, fixtures.R(5, 9), cfg.Ranges.Runs)
				assert.Equal(t, fixtures.R(3, 3), cfg.Ranges.Tags)
				assert.Equal(t, fixtures.R(2, 6), cfg.Ranges.RunsPerBuild)
			},
		},
		{name: "port out of range", env: map[string]string{"FIO_FAKER_APP_PORT": "70000"}, wantErr: true},
		{name: "port not a number", env: map[string]string{"FIO_FAKER_APP_PORT": "http"}, wantErr: true},
		{name: "zero max limit", env: map[string]string{"FIO_FAKER_MAX_LIMIT": "0"}, wantErr: true},
		{name: "negative rate limit", env: map[string]string{"FIO_FAKER_RATE_LIMIT": "-1"}, wantErr: true},
		{name: "bad log level", env: map[string]string{"FIO_FAKER_LOG_LEVEL": "loud"}, wantErr: true},
		{name: "bad grace", env: map[string]string{"FIO_FAKER_SHUTDOWN_GRACE": "soon"}, wantErr: true},
		{name: "reversed range", env: map[string]string{"FIO_FAKER_RANGE_RUNS": "9-5"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(tt.env))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestLoadReadsDotEnvOutsideProduction(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("FIO_FAKER_APP_PORT=4050\n"), 0o600))
	t.Chdir(dir)
	t.Setenv("FIO_FAKER_ENV", "development")
	t.Setenv("FIO_FAKER_APP_PORT", "")
	require.NoError(t, os.Unsetenv("FIO_FAKER_APP_PORT"))

	cfg, err := Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4050, cfg.Port)
}

func TestLoadSkipsDotEnvInProduction(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("FIO_FAKER_APP_PORT=4050\n"), 0o600))
	t.Chdir(dir)
	t.Setenv("FIO_FAKER_ENV", "production")
	t.Setenv("FIO_FAKER_APP_PORT", "")
	require.NoError(t, os.Unsetenv("FIO_FAKER_APP_PORT"))

	cfg, err := Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3040, cfg.Port)
}
