package api_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/UnknownOlympus/heatmap/internal/api"
	"github.com/UnknownOlympus/heatmap/internal/controller"
	"github.com/UnknownOlympus/heatmap/internal/geometry"
	"github.com/UnknownOlympus/heatmap/internal/metrics"
	"github.com/UnknownOlympus/heatmap/internal/models"
	"github.com/UnknownOlympus/heatmap/internal/pointset"
	"github.com/UnknownOlympus/heatmap/internal/render"
	"github.com/UnknownOlympus/heatmap/internal/toggle"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingerStub struct {
	err error
}

func (p pingerStub) Ping(context.Context) error {
	return p.err
}

func newRouter(t *testing.T, pinger api.Pinger, rateLimit int) (*gin.Engine, *render.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := slog.Default()
	reg := prometheus.NewRegistry()
	appMetrics := metrics.NewMetrics(reg)
	store := render.NewStore(logger)
	points := pointset.New([]models.Point{
		{Latitude: 0, Longitude: 0},
		{Latitude: 10, Longitude: 10},
		{Latitude: -5, Longitude: -5},
	})
	ctrl := controller.NewController(logger, points, geometry.Planar{}, store, appMetrics,
		models.MapOptions{Zoom: 4, Center: models.DefaultCenter, MapType: "terrain"})
	require.NoError(t, ctrl.Start(t.Context()))

	router := api.NewRouter(api.RouterConfig{
		Handler:  api.NewHandler(ctrl, store, pinger, logger),
		Logger:   logger,
		Metrics:  appMetrics,
		Registry: reg,
		Limiter:  api.NewRateLimiter(rateLimit, 0),
	})

	return router, store
}

func do(router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	return rec
}

func TestOverlay(t *testing.T) {
	router, store := newRouter(t, nil, 0)

	t.Run("filters by the drawn polygon", func(t *testing.T) {
		body := `{"type":"polygon","path":[{"lat":-1,"lng":-1},{"lat":-1,"lng":5},{"lat":5,"lng":5},{"lat":5,"lng":-1}]}`

		rec := do(router, http.MethodPost, "/api/v1/overlay", body)

		require.Equal(t, http.StatusOK, rec.Code)
		var layer models.Layer
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &layer))
		assert.Equal(t, []models.Point{{Latitude: 0, Longitude: 0}}, layer.Points)
		assert.Equal(t, 1, store.Current().Count)
	})

	t.Run("layer endpoint returns the rendered layer", func(t *testing.T) {
		rec := do(router, http.MethodGet, "/api/v1/layer", "")

		require.Equal(t, http.StatusOK, rec.Code)
		var layer models.Layer
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &layer))
		assert.Equal(t, 1, layer.Count)
		require.NotNil(t, layer.Region)
	})

	t.Run("two vertices is a bad request", func(t *testing.T) {
		body := `{"path":[{"lat":0,"lng":0},{"lat":1,"lng":1}]}`

		rec := do(router, http.MethodPost, "/api/v1/overlay", body)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "invalid polygon")
	})

	t.Run("circle overlay is a bad request", func(t *testing.T) {
		body := `{"type":"circle","path":[{"lat":0,"lng":0}]}`

		rec := do(router, http.MethodPost, "/api/v1/overlay", body)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		rec := do(router, http.MethodPost, "/api/v1/overlay", `{"path":`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("clear restores the full set", func(t *testing.T) {
		rec := do(router, http.MethodDelete, "/api/v1/overlay", "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 3, store.Current().Count)
	})
}

func TestToggles(t *testing.T) {
	router, store := newRouter(t, nil, 0)

	rec := do(router, http.MethodPost, "/api/v1/toggles/radius", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var setting toggle.Setting
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &setting))
	assert.True(t, setting.Active)
	assert.InDelta(t, toggle.DefaultRadius, setting.Value, 0)
	assert.Equal(t, toggle.DefaultRadius, store.Current().Style.Radius)

	rec = do(router, http.MethodGet, "/api/v1/toggles/radius/class", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"flag":"radius","class":"md-warn"}`, rec.Body.String())

	rec = do(router, http.MethodPost, "/api/v1/toggles/radius", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"flag":"radius","active":false,"value":null}`, rec.Body.String())

	rec = do(router, http.MethodGet, "/api/v1/toggles", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Body.String(), `[{"flag":"heatmap","active":true,"value":true}`))

	rec = do(router, http.MethodPost, "/api/v1/toggles/blur", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(router, http.MethodGet, "/api/v1/toggles/blur/class", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDrawingAndMap(t *testing.T) {
	router, _ := newRouter(t, nil, 0)

	rec := do(router, http.MethodPost, "/api/v1/drawing/start", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"started":true,"mode":"polygon"}`, rec.Body.String())

	rec = do(router, http.MethodGet, "/api/v1/drawing", "")
	assert.JSONEq(t, `{"started":true,"mode":"polygon"}`, rec.Body.String())

	rec = do(router, http.MethodPost, "/api/v1/drawing/stop", "")
	assert.JSONEq(t, `{"started":false,"mode":""}`, rec.Body.String())

	rec = do(router, http.MethodGet, "/api/v1/map", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"zoom":4,"center":{"lat":37.782551,"lng":-122.445368},"map_type":"terrain"}`, rec.Body.String())
}

func TestHealthAndMetrics(t *testing.T) {
	t.Run("healthy without database", func(t *testing.T) {
		router, _ := newRouter(t, nil, 0)

		rec := do(router, http.MethodGet, "/healthz", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "OK", rec.Body.String())
	})

	t.Run("database ping failure", func(t *testing.T) {
		router, _ := newRouter(t, pingerStub{err: assert.AnError}, 0)

		rec := do(router, http.MethodGet, "/healthz", "")

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})

	t.Run("metrics are exposed", func(t *testing.T) {
		router, _ := newRouter(t, pingerStub{}, 0)
		do(router, http.MethodPost, "/api/v1/toggles/gradient", "")

		rec := do(router, http.MethodGet, "/metrics", "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "heatmap_toggles_total")
		assert.Contains(t, rec.Body.String(), "heatmap_http_request_duration_seconds")
	})
}

func TestRateLimit(t *testing.T) {
	router, _ := newRouter(t, nil, 1)

	first := do(router, http.MethodGet, "/api/v1/map", "")
	second := do(router, http.MethodGet, "/api/v1/map", "")

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)

	health := do(router, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, health.Code)
}

func TestRateLimiter_Disabled(t *testing.T) {
	limiter := api.NewRateLimiter(0, 0)

	for range 100 {
		require.True(t, limiter.Allow("client"))
	}
}

func TestRateLimiter_Sweep(t *testing.T) {
	t.Run("keeps recent clients", func(t *testing.T) {
		limiter := api.NewRateLimiter(10, 0)
		limiter.Allow("10.0.0.1")

		assert.Zero(t, limiter.Sweep(time.Hour))
		assert.Equal(t, 1, limiter.Len())
	})

	t.Run("drops idle clients only", func(t *testing.T) {
		limiter := api.NewRateLimiter(10, 0)
		limiter.Allow("10.0.0.1")
		time.Sleep(50 * time.Millisecond)
		limiter.Allow("10.0.0.2")

		assert.Equal(t, 1, limiter.Sweep(25*time.Millisecond))
		assert.Equal(t, 1, limiter.Len())
	})

	t.Run("evicted client gets a fresh bucket", func(t *testing.T) {
		limiter := api.NewRateLimiter(1, 0)
		require.True(t, limiter.Allow("10.0.0.1"))
		require.False(t, limiter.Allow("10.0.0.1"))

		assert.Equal(t, 1, limiter.Sweep(0))
		assert.True(t, limiter.Allow("10.0.0.1"))
	})
}

func TestRateLimiter_Run(t *testing.T) {
	limiter := api.NewRateLimiter(10, 0)
	limiter.Allow("10.0.0.1")

	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan struct{})
	go func() {
		limiter.Run(ctx, 5*time.Millisecond, 0)
		close(done)
	}()

	require.Eventually(t, func() bool { return limiter.Len() == 0 }, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("limiter cleanup did not stop after cancel")
	}
}
