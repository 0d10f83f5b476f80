package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/UnknownOlympus/heatmap/internal/controller"
	"github.com/UnknownOlympus/heatmap/internal/geometry"
	"github.com/UnknownOlympus/heatmap/internal/models"
	"github.com/UnknownOlympus/heatmap/internal/render"
	"github.com/UnknownOlympus/heatmap/internal/toggle"
	"github.com/gin-gonic/gin"
)

// Pinger checks a backing service during health checks.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler serves the browser UI actions.
type Handler struct {
	ctrl   *controller.Controller
	store  *render.Store
	pinger Pinger
	log    *slog.Logger
}

// NewHandler creates a Handler. pinger may be nil when no database is used.
func NewHandler(ctrl *controller.Controller, store *render.Store, pinger Pinger, log *slog.Logger) *Handler {
	return &Handler{ctrl: ctrl, store: store, pinger: pinger, log: log}
}

type overlayRequest struct {
	Type string         `json:"type"`
	Path []models.Point `json:"path" binding:"required"`
}

// Health handles GET /healthz.
func (h *Handler) Health(c *gin.Context) {
	if h.pinger != nil {
		if err := h.pinger.Ping(c.Request.Context()); err != nil {
			h.log.ErrorContext(c.Request.Context(), "Health check failed", "error", err)
			c.String(http.StatusServiceUnavailable, "DB ping failed")
			return
		}
	}
	c.String(http.StatusOK, "OK")
}

// MapOptions handles GET /api/v1/map.
func (h *Handler) MapOptions(c *gin.Context) {
	c.JSON(http.StatusOK, h.ctrl.MapOptions())
}

// Layer handles GET /api/v1/layer.
func (h *Handler) Layer(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Current())
}

// OverlayComplete handles POST /api/v1/overlay.
func (h *Handler) OverlayComplete(c *gin.Context) {
	var req overlayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Type == "" {
		req.Type = controller.OverlayTypePolygon
	}

	layer, err := h.ctrl.HandleOverlayComplete(c.Request.Context(), models.OverlayEvent{Type: req.Type, Path: req.Path})
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, layer)
}

// OverlayCleared handles DELETE /api/v1/overlay.
func (h *Handler) OverlayCleared(c *gin.Context) {
	layer, err := h.ctrl.HandleOverlayCleared(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, layer)
}

// Toggles handles GET /api/v1/toggles.
func (h *Handler) Toggles(c *gin.Context) {
	c.JSON(http.StatusOK, h.ctrl.Toggles())
}

// Toggle handles POST /api/v1/toggles/:flag.
func (h *Handler) Toggle(c *gin.Context) {
	flag, err := toggle.ParseFlag(c.Param("flag"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	setting, err := h.ctrl.HandleToggle(c.Request.Context(), flag)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, setting)
}

// ButtonClass handles GET /api/v1/toggles/:flag/class.
func (h *Handler) ButtonClass(c *gin.Context) {
	flag, err := toggle.ParseFlag(c.Param("flag"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"flag": flag, "class": h.ctrl.ButtonClass(flag)})
}

// StartDrawing handles POST /api/v1/drawing/start.
func (h *Handler) StartDrawing(c *gin.Context) {
	c.JSON(http.StatusOK, h.ctrl.StartDrawingTool())
}

// StopDrawing handles POST /api/v1/drawing/stop.
func (h *Handler) StopDrawing(c *gin.Context) {
	c.JSON(http.StatusOK, h.ctrl.HideDrawingTool())
}

// Drawing handles GET /api/v1/drawing.
func (h *Handler) Drawing(c *gin.Context) {
	c.JSON(http.StatusOK, h.ctrl.Drawing())
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, geometry.ErrInvalidPolygon), errors.Is(err, controller.ErrUnsupportedOverlay):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, toggle.ErrUnknownFlag):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
