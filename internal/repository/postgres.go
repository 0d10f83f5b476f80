package repository

import (
	"context"
	"fmt"
	"net"
	"net/url"

	"github.com/UnknownOlympus/heatmap/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewDatabase opens a connection pool to PostgreSQL and verifies it with a ping.
func NewDatabase(ctx context.Context, host, port, user, password, name string) (*pgxpool.Pool, error) {
	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(user, password),
		Host:     net.JoinHostPort(host, port),
		Path:     name,
		RawQuery: "sslmode=disable",
	}

	pool, err := pgxpool.New(ctx, dsn.String())
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return pool, nil
}

// FetchPoints retrieves the coordinates that make up the heatmap point set.
// Rows with a NULL coordinate are skipped. The results are ordered by id and
// limited to the specified count.
//
// Parameters:
// - ctx: The context for the operation, allowing for cancellation and timeout.
// - limit: The maximum number of points to retrieve.
//
// Returns:
// - A slice of models.Point in id order.
// - An error if the query fails or if there is an issue scanning the results.
func (r *Repository) FetchPoints(ctx context.Context, limit int) ([]models.Point, error) {
	points := []models.Point{}
	query := `
		SELECT latitude, longitude
		FROM public.heatmap_points
		WHERE
			latitude IS NOT NULL
			AND longitude IS NOT NULL
		ORDER BY id ASC
		LIMIT $1;
	`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query heatmap points: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var point models.Point
		if errScan := rows.Scan(&point.Latitude, &point.Longitude); errScan != nil {
			return nil, fmt.Errorf("failed to scan heatmap point: %w", errScan)
		}
		points = append(points, point)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read row: %w", err)
	}

	r.log.DebugContext(ctx, "Heatmap points fetched", "count", len(points), "limit", limit)

	return points, nil
}

// Ping checks that the database is reachable.
func (r *Repository) Ping(ctx context.Context) error {
	if err := r.db.Ping(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	return nil
}
