// Package render keeps the most recent heatmap layer for the browser to draw.
package render

import (
	"context"
	"log/slog"
	"sync"

	"github.com/UnknownOlympus/heatmap/internal/models"
)

// Store is an in-memory rendering sink. It keeps a private copy of the last layer it was given.
type Store struct {
	mu      sync.RWMutex
	layer   models.Layer
	renders int
	log     *slog.Logger
}

// NewStore creates an empty Store.
func NewStore(log *slog.Logger) *Store {
	return &Store{log: log, layer: models.Layer{Points: []models.Point{}}}
}

// Render replaces the current layer.
func (s *Store) Render(ctx context.Context, layer models.Layer) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	snapshot := layer.Clone()
	snapshot.Count = len(snapshot.Points)

	s.mu.Lock()
	s.layer = snapshot
	s.renders++
	s.mu.Unlock()

	s.log.DebugContext(ctx, "Layer rendered", "points", snapshot.Count, "visible", snapshot.Style.Visible)

	return nil
}

// Current returns a copy of the last rendered layer.
func (s *Store) Current() models.Layer {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.layer.Clone()
}

// Renders returns how many layers have been rendered.
func (s *Store) Renders() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.renders
}
