package models

// Style holds the heatmap layer parameters the renderer applies.
// Zero values mean the renderer default is used.
type Style struct {
	Visible  bool     `json:"visible"`
	Gradient []string `json:"gradient,omitempty"`
	Radius   int      `json:"radius,omitempty"`
	Opacity  float64  `json:"opacity,omitempty"`
}

// Layer is a snapshot of what the heatmap renderer should draw.
type Layer struct {
	Points []Point  `json:"points"`
	Count  int      `json:"count"`
	Style  Style    `json:"style"`
	Region *Polygon `json:"region,omitempty"` // Region is the polygon the points were filtered by, if any.
}

// Clone returns a deep copy of the layer.
func (l Layer) Clone() Layer {
	out := l
	out.Points = make([]Point, len(l.Points))
	copy(out.Points, l.Points)
	if l.Style.Gradient != nil {
		out.Style.Gradient = make([]string, len(l.Style.Gradient))
		copy(out.Style.Gradient, l.Style.Gradient)
	}
	if l.Region != nil {
		region := l.Region.Clone()
		out.Region = &region
	}

	return out
}

// MapOptions describes the initial state of the map widget.
type MapOptions struct {
	Zoom    int    `json:"zoom"`
	Center  Point  `json:"center"`
	MapType string `json:"map_type"`
}

// OverlayEvent is the payload emitted by the drawing tool when a shape is completed.
type OverlayEvent struct {
	Type string  `json:"type"` // Type of the drawn overlay, e.g. "polygon".
	Path []Point `json:"path"` // Path holds the vertices of the overlay in drawing order.
}
