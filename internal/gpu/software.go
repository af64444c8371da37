package gpu

import (
	"fmt"
	"image"

	"github.com/gogpu/gg"
	"github.com/gogpu/gputypes"

	sldview "github.com/gogpu/sldview"
	"github.com/gogpu/sldview/internal/shader"
)

// SoftwareDevice rasterizes draw calls with gg.
//
// Point programs become filled discs, edge programs stroked lines and curve
// programs filled strip triangles, each coloured by the program's CPU
// stages.
type SoftwareDevice struct {
	bufferStore
	dc *gg.Context
}

// NewSoftwareDevice creates a device with a width x height framebuffer.
func NewSoftwareDevice(width, height int) *SoftwareDevice {
	return &SoftwareDevice{dc: gg.NewContext(width, height)}
}

// CreateBuffer implements Device.
func (d *SoftwareDevice) CreateBuffer(label string, usage gputypes.BufferUsage) BufferID {
	return d.create(label, usage)
}

// WriteBuffer implements Device.
func (d *SoftwareDevice) WriteBuffer(id BufferID, data []float32) error {
	return d.write(id, data)
}

// DestroyBuffer implements Device.
func (d *SoftwareDevice) DestroyBuffer(id BufferID) {
	d.destroy(id)
}

// Viewport implements Device.
func (d *SoftwareDevice) Viewport() (int, int) {
	return d.dc.Width(), d.dc.Height()
}

// Clear implements Device.
func (d *SoftwareDevice) Clear() {
	d.dc.Clear()
}

// Resize replaces the framebuffer. Buffers are kept.
func (d *SoftwareDevice) Resize(width, height int) {
	_ = d.dc.Close()
	d.dc = gg.NewContext(width, height)
}

// Image returns a snapshot of the framebuffer.
func (d *SoftwareDevice) Image() image.Image {
	return d.dc.Image()
}

// Context exposes the gg context for 2D drawing onto the same framebuffer.
func (d *SoftwareDevice) Context() *gg.Context {
	return d.dc
}

// Draw implements Device.
func (d *SoftwareDevice) Draw(call DrawCall) error {
	bufs, err := d.bind(call)
	if err != nil {
		return fmt.Errorf("draw %s: %w", labelOf(call), err)
	}
	if call.Count == 0 {
		return nil
	}
	switch call.Program.Kind {
	case shader.KindPoint:
		d.drawPoints(call, bufs)
	case shader.KindEdge:
		d.drawLines(call, bufs)
	case shader.KindCurve:
		d.drawStrip(call, bufs)
	}
	sldview.Logger().Debug("software draw", "program", call.Program.Label, "count", call.Count)
	return nil
}

func (d *SoftwareDevice) drawPoints(call DrawCall, bufs [][]float32) {
	p, u := call.Program, call.Uniforms
	pos, index, branch, selected := bufs[0], bufs[1], bufs[2], bufs[3]
	for i := call.First; i < call.First+call.Count; i++ {
		f := p.ShadePoint(shader.PointVertex{
			X:        pos[2*i],
			Y:        pos[2*i+1],
			Index:    index[i],
			Branch:   branch[i],
			Selected: selected[i],
		}, u)
		x, y := shader.Pixel(f.ClipX, f.ClipY, u)
		c := p.PointColor(f)
		d.dc.SetRGB(c.R, c.G, c.B)
		d.dc.DrawCircle(x, y, f.Size/2)
		_ = d.dc.Fill()
	}
}

func (d *SoftwareDevice) drawLines(call DrawCall, bufs [][]float32) {
	pos, u := bufs[0], call.Uniforms
	end := call.First + call.Count - call.Count%2
	for i := call.First; i < end; i += 2 {
		x1, y1 := d.pixel(pos, i, u)
		x2, y2 := d.pixel(pos, i+1, u)
		d.dc.MoveTo(x1, y1)
		d.dc.LineTo(x2, y2)
	}
	c := call.Program.Color
	d.dc.SetRGB(c.R, c.G, c.B)
	d.dc.SetLineWidth(lineWidth(call))
	_ = d.dc.Stroke()
}

func (d *SoftwareDevice) drawStrip(call DrawCall, bufs [][]float32) {
	pos, t, u := bufs[0], bufs[1], call.Uniforms
	for i := call.First + 2; i < call.First+call.Count; i++ {
		ax, ay := d.pixel(pos, i-2, u)
		bx, by := d.pixel(pos, i-1, u)
		cx, cy := d.pixel(pos, i, u)
		mid := float64(t[i-2]+t[i-1]+t[i]) / 3
		c := shader.CurveColor(mid, u)
		d.dc.SetRGB(c.R, c.G, c.B)
		d.dc.MoveTo(ax, ay)
		d.dc.LineTo(bx, by)
		d.dc.LineTo(cx, cy)
		d.dc.ClosePath()
		_ = d.dc.Fill()
	}
}

func (d *SoftwareDevice) pixel(pos []float32, i int, u shader.Uniforms) (float64, float64) {
	cx, cy := shader.Clip(float64(pos[2*i]), float64(pos[2*i+1]), u)
	return shader.Pixel(cx, cy, u)
}

func lineWidth(call DrawCall) float64 {
	if call.LineWidth <= 0 {
		return 1
	}
	return call.LineWidth
}

func labelOf(call DrawCall) string {
	if call.Program == nil {
		return "<nil>"
	}
	return call.Program.Label
}

var _ Device = (*SoftwareDevice)(nil)
