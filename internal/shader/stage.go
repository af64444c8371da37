package shader

import "github.com/gogpu/sldview/internal/color"

// The functions below evaluate the WGSL stages on the CPU.

// Clip maps a model point to clip space with y up.
func Clip(x, y float64, u Uniforms) (cx, cy float64) {
	sx := x*float64(u.Scale) + float64(u.Translation[0])
	sy := y*float64(u.Scale) + float64(u.Translation[1])
	cx = sx/float64(u.Resolution[0])*2 - 1
	cy = -(sy/float64(u.Resolution[1])*2 - 1)
	return cx, cy
}

// Pixel maps a clip-space point back to framebuffer pixels.
func Pixel(cx, cy float64, u Uniforms) (px, py float64) {
	px = (cx + 1) / 2 * float64(u.Resolution[0])
	py = (1 - cy) / 2 * float64(u.Resolution[1])
	return px, py
}

// PointVertex is the per-node input of a point program.
type PointVertex struct {
	X, Y     float32
	Index    float32
	Branch   float32
	Selected float32
}

// PointFragment is the output of the point vertex stage.
type PointFragment struct {
	ClipX, ClipY float64
	// Size is the disc diameter in pixels.
	Size     float64
	Hovered  float64
	Selected float64
}

// ShadePoint runs the point vertex stage.
func (p *Program) ShadePoint(v PointVertex, u Uniforms) PointFragment {
	hovered := 0.0
	if p.Variant == Highlightable && (v.Branch == u.HoveredBranch || v.Index == u.HoveredIndex) {
		hovered = 1
	}
	cx, cy := Clip(float64(v.X), float64(v.Y), u)
	return PointFragment{
		ClipX:    cx,
		ClipY:    cy,
		Size:     float64(u.PointSize) * (1 + hovered/4),
		Hovered:  hovered,
		Selected: float64(v.Selected),
	}
}

// PointColor runs the point fragment stage for the disc centre.
func (p *Program) PointColor(f PointFragment) color.RGB {
	c := p.Color
	if f.Selected > 0.5 {
		c = color.Selected
	}
	return c.Scale(1 + 0.2*f.Hovered)
}

// DiscAlpha is the coverage of a quad-local coordinate in [-1,1]².
func DiscAlpha(x, y float64) float64 {
	if x*x+y*y < 1 {
		return 1
	}
	return 0
}

// CurveColor runs the curve fragment stage at parameter t.
func CurveColor(t float64, u Uniforms) color.RGB {
	return color.CurveColor(t, float64(u.CurveIndex), float64(u.ColorScale))
}
