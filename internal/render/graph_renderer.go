package render

import (
	"fmt"

	"github.com/gogpu/sldview/internal/color"
	"github.com/gogpu/sldview/internal/gpu"
	"github.com/gogpu/sldview/internal/graph"
	"github.com/gogpu/sldview/internal/shader"
)

// EdgeLineWidth is the edge stroke width in pixels.
const EdgeLineWidth = 2

// GraphRenderer draws a skeleton graph: edges as lines, then nodes as
// discs. It owns the graph's buffers and the selection mask.
type GraphRenderer struct {
	dev    gpu.Device
	points *shader.Program
	edges  *shader.Program

	vertex   gpu.BufferID
	index    gpu.BufferID
	branch   gpu.BufferID
	edge     gpu.BufferID
	selected gpu.BufferID

	graph *graph.Graph
	mask  graph.SelectionMask
}

// NewGraphRenderer creates a renderer drawing nodes in base and edges in a
// darker shade of base.
func NewGraphRenderer(dev gpu.Device, label string, base color.RGB, v shader.Variant) *GraphRenderer {
	r := &GraphRenderer{
		dev:    dev,
		points: shader.NewPointProgram(label+"_points", base, v),
		edges:  shader.NewEdgeProgram(label+"_edges", base.LowerIntensity(color.EdgeDivisor)),
	}
	compile(r.points)
	compile(r.edges)
	r.vertex = dev.CreateBuffer(label+"_vertex", gpu.VertexUsage)
	r.index = dev.CreateBuffer(label+"_index", gpu.VertexUsage)
	r.branch = dev.CreateBuffer(label+"_branch", gpu.VertexUsage)
	r.edge = dev.CreateBuffer(label+"_edge", gpu.VertexUsage)
	r.selected = dev.CreateBuffer(label+"_selected", gpu.VertexUsage)
	return r
}

// SetGraph installs g and uploads every buffer. A nil mask installs an
// all-zero mask; otherwise mask must have one entry per node.
func (r *GraphRenderer) SetGraph(g *graph.Graph, mask graph.SelectionMask) error {
	if g == nil {
		g = &graph.Graph{}
	}
	if err := g.Validate(); err != nil {
		return err
	}
	if mask == nil {
		mask = graph.NewSelectionMask(g.NodeCount())
	}
	if len(mask) != g.NodeCount() {
		return fmt.Errorf("%w: mask has %d entries for %d nodes", graph.ErrInvalidGraph, len(mask), g.NodeCount())
	}
	uploads := []struct {
		id   gpu.BufferID
		data []float32
	}{
		{r.vertex, g.Nodes},
		{r.index, g.IndexFloats()},
		{r.branch, g.BranchFloats()},
		{r.edge, g.Edges},
		{r.selected, mask},
	}
	for _, u := range uploads {
		if err := r.dev.WriteBuffer(u.id, u.data); err != nil {
			return fmt.Errorf("render: upload graph: %w", err)
		}
	}
	r.graph, r.mask = g, mask
	return nil
}

// Graph returns the installed graph, nil before the first SetGraph.
func (r *GraphRenderer) Graph() *graph.Graph {
	return r.graph
}

// Selection returns the live selection mask. Callers toggle entries in
// place; the mask is re-uploaded on every Draw.
func (r *GraphRenderer) Selection() graph.SelectionMask {
	return r.mask
}

// Draw draws all edges and the first count nodes (all nodes when count is
// negative or too large). pointSize is the node radius in pixels.
func (r *GraphRenderer) Draw(f Frame, pointSize float64, count int) error {
	if r.graph == nil {
		return nil
	}
	n := r.graph.NodeCount()
	if count < 0 || count > n {
		count = n
	}
	if err := r.dev.WriteBuffer(r.selected, r.mask); err != nil {
		return fmt.Errorf("render: upload selection: %w", err)
	}

	u := f.uniforms()
	u.PointSize = float32(pointSize * 2)
	if h := f.HoveredNode; h >= 0 && h < n && r.graph.BranchIndex[h] != graph.Unbranched {
		u.HoveredBranch = float32(r.graph.BranchIndex[h])
	}

	if err := r.dev.Draw(gpu.DrawCall{
		Program:   r.edges,
		Buffers:   []gpu.BufferID{r.edge},
		Uniforms:  u,
		Count:     2 * r.graph.EdgeCount(),
		LineWidth: EdgeLineWidth,
	}); err != nil {
		return err
	}
	return r.dev.Draw(gpu.DrawCall{
		Program:  r.points,
		Buffers:  []gpu.BufferID{r.vertex, r.index, r.branch, r.selected},
		Uniforms: u,
		Count:    count,
	})
}

// Destroy releases the renderer's buffers.
func (r *GraphRenderer) Destroy() {
	for _, id := range []gpu.BufferID{r.vertex, r.index, r.branch, r.edge, r.selected} {
		r.dev.DestroyBuffer(id)
	}
}
