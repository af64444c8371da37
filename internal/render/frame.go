// Package render owns the device resources of the graph and curve layers
// and issues their draw calls.
package render

import (
	sldview "github.com/gogpu/sldview"
	"github.com/gogpu/sldview/internal/shader"
	"github.com/gogpu/sldview/internal/view"
)

// Frame is the per-draw view state shared by all renderers.
type Frame struct {
	Width, Height int
	View          view.Transform
	MouseX        float64
	MouseY        float64
	HoveredNode   int
}

func (f Frame) uniforms() shader.Uniforms {
	return shader.Uniforms{
		Resolution:    [2]float32{float32(f.Width), float32(f.Height)},
		Translation:   [2]float32{float32(f.View.OffsetX), float32(f.View.OffsetY)},
		Mouse:         [2]float32{float32(f.MouseX), float32(f.MouseY)},
		Scale:         float32(f.View.Scale),
		HoveredIndex:  float32(f.HoveredNode),
		HoveredBranch: shader.NoBranch,
	}
}

// compile compiles p, logging instead of failing: the software device runs
// the CPU stages and does not need SPIR-V.
func compile(p *shader.Program) {
	if err := p.Compile(); err != nil {
		sldview.Logger().Warn("shader compilation failed, SPIR-V unavailable", "program", p.Label, "err", err)
	}
}
