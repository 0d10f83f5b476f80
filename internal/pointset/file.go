package pointset

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/UnknownOlympus/heatmap/internal/models"
	"github.com/spf13/viper"
)

// ErrNoPoints is returned when a point file has no "points" key.
var ErrNoPoints = errors.New("point file has no points")

type pointRecord struct {
	Lat *float64 `mapstructure:"lat"`
	Lng *float64 `mapstructure:"lng"`
}

// LoadFile reads a point set from a YAML, JSON or TOML file shaped as
//
//	points:
//	  - {lat: 37.782551, lng: -122.445368}
//
// The format follows the file extension; files without one are read as YAML.
func LoadFile(path string) (*Set, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if filepath.Ext(path) == "" {
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read point file %s: %w", path, err)
	}

	if !v.IsSet("points") {
		return nil, fmt.Errorf("%w: %s", ErrNoPoints, path)
	}

	var records []pointRecord
	if err := v.UnmarshalKey("points", &records); err != nil {
		return nil, fmt.Errorf("failed to decode points from %s: %w", path, err)
	}

	points := make([]models.Point, 0, len(records))
	for idx, rec := range records {
		if rec.Lat == nil || rec.Lng == nil {
			return nil, fmt.Errorf("point %d in %s: lat and lng are required", idx, path)
		}
		points = append(points, models.Point{Latitude: *rec.Lat, Longitude: *rec.Lng})
	}

	return &Set{points: points}, nil
}

// Source names where the point set is loaded from.
type Source string

const (
	// SourceStatic selects the built-in dataset.
	SourceStatic Source = "static"
	// SourceFile selects a point file.
	SourceFile Source = "file"
	// SourcePostgres selects the heatmap_points table.
	SourcePostgres Source = "postgres"
)

// ParseSource normalises a configured source name.
func ParseSource(name string) (Source, error) {
	switch src := Source(strings.ToLower(strings.TrimSpace(name))); src {
	case SourceStatic, SourceFile, SourcePostgres:
		return src, nil
	case "":
		return SourceStatic, nil
	default:
		return "", fmt.Errorf("unsupported point source: %s", name)
	}
}
