package pointset

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/UnknownOlympus/heatmap/internal/models"
)

// Fetcher reads points from a database.
type Fetcher interface {
	FetchPoints(ctx context.Context, limit int) ([]models.Point, error)
}

// LoaderConfig selects and parameterises a point source.
type LoaderConfig struct {
	Source  Source       // Source to load from.
	Path    string       // Path of the point file, used by SourceFile.
	Limit   int          // Maximum number of rows, used by SourcePostgres.
	Fetcher Fetcher      // Database reader, used by SourcePostgres.
	Logger  *slog.Logger // Logger for load events.
}

// Load builds the point set from the configured source.
func Load(ctx context.Context, cfg LoaderConfig) (*Set, error) {
	var (
		set *Set
		err error
	)

	switch cfg.Source {
	case SourceStatic, "":
		set = Default()
	case SourceFile:
		if cfg.Path == "" {
			return nil, fmt.Errorf("point file path is required for source %q", cfg.Source)
		}
		set, err = LoadFile(cfg.Path)
	case SourcePostgres:
		if cfg.Fetcher == nil {
			return nil, fmt.Errorf("database is required for source %q", cfg.Source)
		}
		var points []models.Point
		points, err = cfg.Fetcher.FetchPoints(ctx, cfg.Limit)
		set = &Set{points: points}
	default:
		return nil, fmt.Errorf("unsupported point source: %s", cfg.Source)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load point set: %w", err)
	}

	if cfg.Logger != nil {
		cfg.Logger.InfoContext(ctx, "Point set loaded", "source", cfg.Source, "points", set.Len())
	}

	return set, nil
}
