package view

import "github.com/gogpu/sldview/internal/graph"

// NodeRadius is the hover radius for graph nodes in screen pixels.
const NodeRadius = 10.0

// IntersectionRadiusSq is the squared hover radius for intersections in
// model units. It does not follow the zoom level.
const IntersectionRadiusSq = 16.0

// NearestNode returns the index of the node nearest to m within
// NodeRadius screen pixels at the given scale, or NoHover. The first
// index wins exact ties.
func NearestNode(g *graph.Graph, m graph.Point, scale float64) int {
	if g == nil || scale <= 0 {
		return NoHover
	}
	r := NodeRadius / scale
	return nearest(g.NodeCount(), g.Node, m, r*r)
}

// NearestPoint returns the index of the point nearest to m with squared
// model distance below IntersectionRadiusSq, or NoHover.
func NearestPoint(pts []graph.Point, m graph.Point) int {
	return nearest(len(pts), func(i int) graph.Point { return pts[i] }, m, IntersectionRadiusSq)
}

func nearest(n int, at func(int) graph.Point, m graph.Point, limitSq float64) int {
	best := NoHover
	bestD := limitSq
	for i := 0; i < n; i++ {
		p := at(i)
		dx, dy := p.X-m.X, p.Y-m.Y
		d := dx*dx + dy*dy
		if d < bestD {
			best, bestD = i, d
		}
	}
	return best
}
