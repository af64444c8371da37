package graph

// Segment is a cubic bezier segment p0, p1, p2, p3.
type Segment [4]Point

// BezierCurve is a contour made of cubic segments.
type BezierCurve []Segment

// VectorizedCurve is one fitted curve as a flat x,y strip.
type VectorizedCurve struct {
	Points     []float32
	ColorIndex float64
}

// Len returns the number of points.
func (c VectorizedCurve) Len() int { return len(c.Points) / 2 }

// Params returns the per-point curve parameter i/(n-1); a single point
// gets 0.
func (c VectorizedCurve) Params() []float32 {
	n := c.Len()
	out := make([]float32, n)
	if n < 2 {
		return out
	}
	for i := range out {
		out[i] = float32(i) / float32(n-1)
	}
	return out
}

// IntersectionSet is the set of curve intersections with hover and
// selection indices, -1 when none.
type IntersectionSet struct {
	Points   []Point
	Hovered  int
	Selected int
}

// NewIntersectionSet returns a set with nothing hovered or selected.
func NewIntersectionSet(pts []Point) IntersectionSet {
	return IntersectionSet{Points: pts, Hovered: -1, Selected: -1}
}
