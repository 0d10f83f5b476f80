package config_test

import (
	"testing"

	"github.com/UnknownOlympus/heatmap/internal/config"
	"github.com/stretchr/testify/assert"
)

func Test_MustLoad(t *testing.T) {
	t.Setenv("HEATMAP_ENV", "local")
	t.Setenv("HEATMAP_POINTS_SOURCE", "file")
	t.Setenv("HEATMAP_POINTS_FILE", "/etc/heatmap/points.yaml")
	t.Setenv("HEATMAP_PREDICATE", "spherical")
	t.Setenv("HEATMAP_GEOCODER", "google")
	t.Setenv("HEATMAP_GEOCODER_KEY", "testAPIKey")
	t.Setenv("HEATMAP_MAP_CENTER", "San Francisco")
	t.Setenv("HEATMAP_GEOCODER_REGION", "ca")
	t.Setenv("DB_HOST", "testHost")
	t.Setenv("DB_PORT", "12345")
	t.Setenv("DB_USERNAME", "admin")
	t.Setenv("DB_PASSWORD", "adminpass")
	t.Setenv("DB_NAME", "testName")

	cfg := config.MustLoad()

	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "file", cfg.Points.Source)
	assert.Equal(t, "/etc/heatmap/points.yaml", cfg.Points.File)
	assert.Equal(t, 10000, cfg.Points.Limit)
	assert.Equal(t, "spherical", cfg.Predicate)
	assert.Equal(t, "google", cfg.Geocoder.Type)
	assert.Equal(t, "testAPIKey", cfg.Geocoder.APIKey)
	assert.Equal(t, "San Francisco", cfg.Geocoder.Center)
	assert.Equal(t, "ca", cfg.Geocoder.Region)
	assert.Equal(t, 10, cfg.Geocoder.RateLimit)
	assert.Equal(t, 20, cfg.RateLimit)
	assert.Equal(t, "testHost", cfg.Database.Host)
	assert.Equal(t, "12345", cfg.Database.Port)
	assert.Equal(t, "admin", cfg.Database.User)
	assert.Equal(t, "adminpass", cfg.Database.Password)
	assert.Equal(t, "testName", cfg.Database.Name)
}

func TestMustLoad_Defaults(t *testing.T) {
	t.Setenv("HEATMAP_PORT", "9090")

	cfg := config.MustLoad()

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "static", cfg.Points.Source)
	assert.Equal(t, "planar", cfg.Predicate)
	assert.Equal(t, "static", cfg.Geocoder.Type)
	assert.Equal(t, "us", cfg.Geocoder.Region)
	assert.Equal(t, "5432", cfg.Database.Port)
}

func TestMustLoad_PortError(t *testing.T) {
	t.Setenv("HEATMAP_PORT", "error_value")

	assert.PanicsWithValue(t, "failed to parse port for http server from configuration", func() {
		config.MustLoad()
	})
}

func TestMustLoad_PointsLimitError(t *testing.T) {
	t.Setenv("HEATMAP_POINTS_LIMIT", "error_value")

	assert.PanicsWithValue(t, "failed to parse points limit from configuration, must be an integer types", func() {
		config.MustLoad()
	})
}

func TestMustLoad_RateLimitError(t *testing.T) {
	t.Setenv("HEATMAP_RATE_LIMIT", "error_value")

	assert.PanicsWithValue(t, "failed to parse rate limit from configuration, must be an integer types", func() {
		config.MustLoad()
	})
}

func TestMustLoad_GeocoderRateLimitError(t *testing.T) {
	t.Setenv("HEATMAP_GEOCODER_RATE_LIMIT", "error_value")

	assert.PanicsWithValue(t, "failed to parse geocoder rate limit from configuration, must be an integer types", func() {
		config.MustLoad()
	})
}
