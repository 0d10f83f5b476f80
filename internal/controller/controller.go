package controller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/UnknownOlympus/heatmap/internal/geometry"
	"github.com/UnknownOlympus/heatmap/internal/metrics"
	"github.com/UnknownOlympus/heatmap/internal/models"
	"github.com/UnknownOlympus/heatmap/internal/pointset"
	"github.com/UnknownOlympus/heatmap/internal/toggle"
)

// OverlayTypePolygon is the only overlay type the drawing tool is allowed to produce.
const OverlayTypePolygon = "polygon"

// vertexPrecision is the number of decimal digits kept for each drawn vertex.
const vertexPrecision = 5

// ErrUnsupportedOverlay is returned for a draw-complete event that is not a polygon.
var ErrUnsupportedOverlay = errors.New("unsupported overlay type")

// Renderer is the sink that draws a heatmap layer.
type Renderer interface {
	Render(ctx context.Context, layer models.Layer) error
}

// DrawingMode is the active mode of the drawing tool.
type DrawingMode string

const (
	// DrawingModeNone means the drawing tool is idle.
	DrawingModeNone DrawingMode = ""
	// DrawingModePolygon means the user is drawing a polygon.
	DrawingModePolygon DrawingMode = OverlayTypePolygon
)

// Drawing is the state of the drawing tool.
type Drawing struct {
	Started bool        `json:"started"`
	Mode    DrawingMode `json:"mode"`
}

// Controller binds UI actions to the polygon filter, the layer switches and
// the renderer. Every exported action holds the controller lock for its whole
// duration, so actions never interleave.
type Controller struct {
	log       *slog.Logger       // Logger for controller activities
	points    *pointset.Set      // Full point set, never modified
	predicate geometry.Predicate // Containment test used by the filter
	renderer  Renderer           // Sink receiving every new layer
	metrics   *metrics.Metrics   // Metrics for filter and toggle activity
	options   models.MapOptions  // Initial map widget state

	mu      sync.Mutex
	toggles *toggle.State
	drawing Drawing
	visible []models.Point
	region  models.Polygon
}

// NewController creates a Controller showing the full point set with the
// initial layer switches. A nil predicate selects the planar one.
func NewController(
	log *slog.Logger,
	points *pointset.Set,
	predicate geometry.Predicate,
	renderer Renderer,
	metrics *metrics.Metrics,
	options models.MapOptions,
) *Controller {
	if predicate == nil {
		predicate = geometry.Planar{}
	}
	metrics.PointSetSize.Set(float64(points.Len()))

	return &Controller{
		log:       log,
		points:    points,
		predicate: predicate,
		renderer:  renderer,
		metrics:   metrics,
		options:   options,
		toggles:   toggle.NewState(),
		visible:   points.Points(),
	}
}

// Start renders the initial layer.
func (c *Controller) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.render(ctx)
}

// HandleOverlayComplete filters the full point set by the polygon drawn by the
// user and renders the result. Vertices are rounded to five decimal places.
// On error the current layer is left unchanged.
func (c *Controller) HandleOverlayComplete(ctx context.Context, event models.OverlayEvent) (models.Layer, error) {
	if event.Type != OverlayTypePolygon {
		return models.Layer{}, fmt.Errorf("%w: %q", ErrUnsupportedOverlay, event.Type)
	}

	polygon := make(models.Polygon, 0, len(event.Path))
	for _, vertex := range event.Path {
		polygon = append(polygon, geometry.Round(vertex, vertexPrecision))
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	startTime := time.Now()
	filtered, err := geometry.Filter(c.points.Points(), polygon, c.predicate)
	c.metrics.FilterSeconds.Observe(time.Since(startTime).Seconds())
	if err != nil {
		c.metrics.FilterRuns.WithLabelValues("invalid_polygon").Inc()
		c.log.WarnContext(ctx, "Rejected drawn polygon", "vertices", len(polygon), "error", err)
		return models.Layer{}, err
	}
	c.metrics.FilterRuns.WithLabelValues("success").Inc()

	prevVisible, prevRegion := c.visible, c.region
	c.visible, c.region = filtered, polygon
	if err = c.render(ctx); err != nil {
		c.visible, c.region = prevVisible, prevRegion
		return models.Layer{}, err
	}

	c.log.InfoContext(ctx, "Point set filtered by drawn polygon",
		"vertices", len(polygon),
		"matched", len(filtered),
		"total", c.points.Len())

	return c.layer(), nil
}

// HandleOverlayCleared drops the drawn polygon and renders the full point set.
// On error the current layer is left unchanged.
func (c *Controller) HandleOverlayCleared(ctx context.Context) (models.Layer, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	prevVisible, prevRegion := c.visible, c.region
	c.visible, c.region = c.points.Points(), nil
	if err := c.render(ctx); err != nil {
		c.visible, c.region = prevVisible, prevRegion
		return models.Layer{}, err
	}

	c.log.InfoContext(ctx, "Drawn polygon cleared", "total", c.points.Len())

	return c.layer(), nil
}

// HandleToggle flips a layer switch, re-renders the current points with the
// new style and returns the flag's effective value. If the render fails the
// switch is flipped back.
func (c *Controller) HandleToggle(ctx context.Context, flag toggle.Flag) (toggle.Setting, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	setting, err := c.toggles.Toggle(flag)
	if err != nil {
		return toggle.Setting{}, err
	}

	if err = c.render(ctx); err != nil {
		// Undo. flag was validated by the first flip.
		_, _ = c.toggles.Toggle(flag)
		return toggle.Setting{}, err
	}

	c.metrics.Toggles.WithLabelValues(flag.String(), strconv.FormatBool(setting.Active)).Inc()
	c.log.DebugContext(ctx, "Layer switch toggled", "flag", flag, "active", setting.Active)

	return setting, nil
}

// StartDrawingTool puts the drawing tool into polygon mode.
func (c *Controller) StartDrawingTool() Drawing {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.drawing = Drawing{Started: true, Mode: DrawingModePolygon}

	return c.drawing
}

// HideDrawingTool leaves drawing mode.
func (c *Controller) HideDrawingTool() Drawing {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.drawing = Drawing{Started: false, Mode: DrawingModeNone}

	return c.drawing
}

// Drawing returns the drawing tool state.
func (c *Controller) Drawing() Drawing {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.drawing
}

// ButtonClass returns the CSS class for the button bound to flag.
func (c *Controller) ButtonClass(flag toggle.Flag) string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.toggles.ButtonClass(flag)
}

// Toggles returns the current setting of every layer switch.
func (c *Controller) Toggles() []toggle.Setting {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.toggles.Snapshot()
}

// Layer returns the layer the controller last produced.
func (c *Controller) Layer() models.Layer {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.layer()
}

// MapOptions returns the initial map widget state.
func (c *Controller) MapOptions() models.MapOptions {
	return c.options
}

// layer builds the current layer. Callers must hold c.mu.
func (c *Controller) layer() models.Layer {
	layer := models.Layer{
		Points: make([]models.Point, len(c.visible)),
		Count:  len(c.visible),
		Style:  c.toggles.Style(),
	}
	copy(layer.Points, c.visible)
	if c.region != nil {
		region := c.region.Clone()
		layer.Region = &region
	}

	return layer
}

// render sends the current layer to the renderer. Callers must hold c.mu.
func (c *Controller) render(ctx context.Context) error {
	layer := c.layer()
	if err := c.renderer.Render(ctx, layer); err != nil {
		c.metrics.RenderErrors.Inc()
		c.log.ErrorContext(ctx, "Failed to render layer", "error", err)
		return fmt.Errorf("failed to render layer: %w", err)
	}
	c.metrics.VisiblePoints.Set(float64(layer.Count))

	return nil
}
