package models

// Polygon is an ordered ring of vertices. The last vertex implicitly connects to the first.
type Polygon []Point

// Len returns the number of vertices.
func (p Polygon) Len() int {
	return len(p)
}

// Clone returns a copy of the polygon that shares no memory with the receiver.
func (p Polygon) Clone() Polygon {
	if p == nil {
		return nil
	}
	out := make(Polygon, len(p))
	copy(out, p)

	return out
}
