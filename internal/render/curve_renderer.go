package render

import (
	"fmt"

	"github.com/gogpu/sldview/internal/gpu"
	"github.com/gogpu/sldview/internal/graph"
	"github.com/gogpu/sldview/internal/shader"
)

// NewCurveProgram returns the shared, compiled curve program.
func NewCurveProgram() *shader.Program {
	p := shader.NewCurveProgram("curve")
	compile(p)
	return p
}

// CurveRenderer draws one fitted curve as a triangle strip coloured by the
// repeat gradient.
type CurveRenderer struct {
	dev        gpu.Device
	prog       *shader.Program
	position   gpu.BufferID
	param      gpu.BufferID
	count      int
	colorIndex float64
}

// NewCurveRenderer uploads c and returns its renderer.
func NewCurveRenderer(dev gpu.Device, prog *shader.Program, c graph.VectorizedCurve) (*CurveRenderer, error) {
	r := &CurveRenderer{
		dev:        dev,
		prog:       prog,
		position:   dev.CreateBuffer("curve_position", gpu.VertexUsage),
		param:      dev.CreateBuffer("curve_t", gpu.VertexUsage),
		count:      c.Len(),
		colorIndex: c.ColorIndex,
	}
	if err := dev.WriteBuffer(r.position, c.Points); err != nil {
		return nil, fmt.Errorf("render: upload curve: %w", err)
	}
	if err := dev.WriteBuffer(r.param, c.Params()); err != nil {
		return nil, fmt.Errorf("render: upload curve: %w", err)
	}
	return r, nil
}

// Len returns the number of strip vertices.
func (r *CurveRenderer) Len() int { return r.count }

// Draw draws the curve with the given repeat-gradient value.
func (r *CurveRenderer) Draw(f Frame, colorScale float64) error {
	u := f.uniforms()
	u.ColorScale = float32(colorScale)
	u.CurveIndex = float32(r.colorIndex)
	return r.dev.Draw(gpu.DrawCall{
		Program:  r.prog,
		Buffers:  []gpu.BufferID{r.position, r.param},
		Uniforms: u,
		Count:    r.count,
	})
}

// Destroy releases the curve's buffers.
func (r *CurveRenderer) Destroy() {
	r.dev.DestroyBuffer(r.position)
	r.dev.DestroyBuffer(r.param)
}
