// Package graph holds the skeleton graph, selection mask and curve data
// returned by the vectorization service, flattened into the float layouts
// the renderers upload.
package graph

import (
	"errors"
	"fmt"
)

// ErrInvalidGraph is returned when a graph's buffers disagree in length or
// an edge references a node that does not exist.
var ErrInvalidGraph = errors.New("graph: invalid graph")

// Unbranched marks a node that belongs to no branch.
const Unbranched = -1

// Point is a model-space position.
type Point struct {
	X, Y float64
}

// Graph is a skeleton graph in flat buffer form.
//
// Nodes holds x,y pairs, Edges holds denormalized x1,y1,x2,y2 quadruples
// and BranchIndex holds one branch id per node (Unbranched for none).
type Graph struct {
	Nodes       []float32
	Edges       []float32
	BranchIndex []int
}

// IndexedEdge is an edge given as a pair of node indices.
type IndexedEdge struct {
	Source, Target int
}

// New builds a graph from node positions and index-pair edges, replacing
// each edge by the coordinates of its endpoints. A nil branch slice makes
// every node Unbranched.
func New(nodes []Point, edges []IndexedEdge, branch []int) (*Graph, error) {
	if branch != nil && len(branch) != len(nodes) {
		return nil, fmt.Errorf("%w: %d branch indices for %d nodes", ErrInvalidGraph, len(branch), len(nodes))
	}
	g := &Graph{
		Nodes:       make([]float32, 0, 2*len(nodes)),
		Edges:       make([]float32, 0, 4*len(edges)),
		BranchIndex: make([]int, len(nodes)),
	}
	for _, p := range nodes {
		g.Nodes = append(g.Nodes, float32(p.X), float32(p.Y))
	}
	for i, e := range edges {
		if e.Source < 0 || e.Source >= len(nodes) || e.Target < 0 || e.Target >= len(nodes) {
			return nil, fmt.Errorf("%w: edge %d (%d-%d) out of range for %d nodes",
				ErrInvalidGraph, i, e.Source, e.Target, len(nodes))
		}
		s, t := nodes[e.Source], nodes[e.Target]
		g.Edges = append(g.Edges, float32(s.X), float32(s.Y), float32(t.X), float32(t.Y))
	}
	if branch == nil {
		for i := range g.BranchIndex {
			g.BranchIndex[i] = Unbranched
		}
	} else {
		copy(g.BranchIndex, branch)
	}
	return g, nil
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int {
	if g == nil {
		return 0
	}
	return len(g.Nodes) / 2
}

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int {
	if g == nil {
		return 0
	}
	return len(g.Edges) / 4
}

// Node returns the position of node i.
func (g *Graph) Node(i int) Point {
	return Point{X: float64(g.Nodes[2*i]), Y: float64(g.Nodes[2*i+1])}
}

// Validate checks the buffer length invariants.
func (g *Graph) Validate() error {
	if g == nil {
		return nil
	}
	if len(g.Nodes)%2 != 0 {
		return fmt.Errorf("%w: odd node buffer length %d", ErrInvalidGraph, len(g.Nodes))
	}
	if len(g.Edges)%4 != 0 {
		return fmt.Errorf("%w: edge buffer length %d not a multiple of 4", ErrInvalidGraph, len(g.Edges))
	}
	if len(g.BranchIndex) != g.NodeCount() {
		return fmt.Errorf("%w: %d branch indices for %d nodes", ErrInvalidGraph, len(g.BranchIndex), g.NodeCount())
	}
	return nil
}

// WithBranch returns a copy of g whose nodes all belong to branch b.
// The base graph carries no branch data and is decoded this way.
func (g *Graph) WithBranch(b int) *Graph {
	if g == nil {
		return nil
	}
	out := &Graph{
		Nodes:       g.Nodes,
		Edges:       g.Edges,
		BranchIndex: make([]int, len(g.BranchIndex)),
	}
	for i := range out.BranchIndex {
		out.BranchIndex[i] = b
	}
	return out
}

// BranchFloats returns BranchIndex as a vertex attribute buffer.
func (g *Graph) BranchFloats() []float32 {
	out := make([]float32, len(g.BranchIndex))
	for i, b := range g.BranchIndex {
		out[i] = float32(b)
	}
	return out
}

// IndexFloats returns 0..n-1 as a vertex attribute buffer.
func (g *Graph) IndexFloats() []float32 {
	out := make([]float32, g.NodeCount())
	for i := range out {
		out[i] = float32(i)
	}
	return out
}
