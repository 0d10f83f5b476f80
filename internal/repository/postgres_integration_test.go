//go:build integration

package repository_test

import (
	"log/slog"
	"testing"
	"time"

	"github.com/UnknownOlympus/heatmap/internal/models"
	"github.com/UnknownOlympus/heatmap/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const schema = `
	CREATE TABLE public.heatmap_points (
		id        SERIAL PRIMARY KEY,
		latitude  DOUBLE PRECISION,
		longitude DOUBLE PRECISION
	);
	INSERT INTO public.heatmap_points (latitude, longitude) VALUES
		(37.782551, -122.445368),
		(NULL, -122.444586),
		(37.782842, -122.443688),
		(37.782919, -122.442815);
`

func TestFetchPoints_Postgres(t *testing.T) {
	ctx := t.Context()

	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("heatmap"),
		postgres.WithUsername("heatmap"),
		postgres.WithPassword("heatmap"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	testcontainers.CleanupContainer(t, container)
	require.NoError(t, err)

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	defer pool.Close()

	_, err = pool.Exec(ctx, schema)
	require.NoError(t, err)

	repo := repository.NewRepository(pool, slog.Default())

	points, err := repo.FetchPoints(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []models.Point{
		{Latitude: 37.782551, Longitude: -122.445368},
		{Latitude: 37.782842, Longitude: -122.443688},
	}, points)

	require.NoError(t, repo.Ping(ctx))
}
