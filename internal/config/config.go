package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the configuration settings for the heatmap service.
//
// Fields:
// - Env: The current environment (e.g., local, development, production).
// - Port: The port for the HTTP server.
// - Points: Where the heatmap point set is loaded from.
// - Predicate: The containment test used to filter points (planar, spherical).
// - Geocoder: How the map center is resolved.
// - RateLimit: Requests per second allowed per client on the API, 0 disables limiting.
// - Database: Configuration settings for the PostgreSQL database.
type Config struct {
	Env       string         `yaml:"env"`        // Env is the current environment: local, development, production.
	Port      int            `yaml:"port"`       // Port is the HTTP server port.
	Points    PointsConfig   `yaml:"points"`     // Points selects the point set source.
	Predicate string         `yaml:"predicate"`  // Predicate is the containment test name.
	Geocoder  GeocoderConfig `yaml:"geocoder"`   // Geocoder resolves the map center.
	RateLimit int            `yaml:"rate_limit"` // RateLimit is requests per second per client.
	Database  PostgresConfig `yaml:"postgres"`   // Database holds the postgres database configuration
}

// PointsConfig selects where the point set comes from.
type PointsConfig struct {
	Source string `yaml:"source"` // Source is one of static, file, postgres.
	File   string `yaml:"file"`   // File is the point file path for the file source.
	Limit  int    `yaml:"limit"`  // Limit caps the number of rows read from postgres.
}

// GeocoderConfig holds the map center lookup settings.
type GeocoderConfig struct {
	Type      string `yaml:"type"`       // Type is the provider: static or google.
	APIKey    string `yaml:"api_key"`    // APIKey is required by the Google provider.
	Center    string `yaml:"center"`     // Center is the address the map is centered on.
	Region    string `yaml:"region"`     // Region is the ccTLD bias for center lookups.
	RateLimit int    `yaml:"rate_limit"` // RateLimit is requests per second to the provider.
}

// PostgresConfig struct holds the configuration details for connecting to a PostgreSQL database.
type PostgresConfig struct {
	Host     string `yaml:"host"`                        // Host is the database server address.
	Port     string `yaml:"port"     env-default:"5432"` // Port is the database server port.
	User     string `yaml:"user"`                        // User is the database user.
	Password string `yaml:"password"`                    // Password is the database user's password.
	Name     string `yaml:"db_name"`                     // Name is the name of the database.
}

// MustLoad reads the configuration from the environment, after loading a .env file if present.
// It panics when a numeric setting cannot be parsed.
func MustLoad() *Config {
	_ = godotenv.Load()

	port, err := strconv.Atoi(setDefaultEnv("HEATMAP_PORT", "8080"))
	if err != nil {
		panic("failed to parse port for http server from configuration")
	}

	limit, err := strconv.Atoi(setDefaultEnv("HEATMAP_POINTS_LIMIT", "10000"))
	if err != nil {
		panic("failed to parse points limit from configuration, must be an integer types")
	}

	rateLimit, err := strconv.Atoi(setDefaultEnv("HEATMAP_RATE_LIMIT", "20"))
	if err != nil {
		panic("failed to parse rate limit from configuration, must be an integer types")
	}

	geocoderRateLimit, err := strconv.Atoi(setDefaultEnv("HEATMAP_GEOCODER_RATE_LIMIT", "10"))
	if err != nil {
		panic("failed to parse geocoder rate limit from configuration, must be an integer types")
	}

	return &Config{
		Env:  setDefaultEnv("HEATMAP_ENV", "production"),
		Port: port,
		Points: PointsConfig{
			Source: setDefaultEnv("HEATMAP_POINTS_SOURCE", "static"),
			File:   os.Getenv("HEATMAP_POINTS_FILE"),
			Limit:  limit,
		},
		Predicate: setDefaultEnv("HEATMAP_PREDICATE", "planar"),
		Geocoder: GeocoderConfig{
			Type:      setDefaultEnv("HEATMAP_GEOCODER", "static"),
			APIKey:    os.Getenv("HEATMAP_GEOCODER_KEY"),
			Center:    os.Getenv("HEATMAP_MAP_CENTER"),
			Region:    setDefaultEnv("HEATMAP_GEOCODER_REGION", "us"),
			RateLimit: geocoderRateLimit,
		},
		RateLimit: rateLimit,
		Database: PostgresConfig{
			Host:     os.Getenv("DB_HOST"),
			Port:     setDefaultEnv("DB_PORT", "5432"),
			User:     os.Getenv("DB_USERNAME"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     os.Getenv("DB_NAME"),
		},
	}
}

func setDefaultEnv(key, override string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		value = override
	}

	return value
}
