package app

import (
	"math"

	sldview "github.com/gogpu/sldview"
	"github.com/gogpu/sldview/internal/color"
	"github.com/gogpu/sldview/internal/controls"
	"github.com/gogpu/sldview/internal/graph"
	"github.com/gogpu/sldview/internal/render"
	"github.com/gogpu/sldview/internal/view"
)

// Overlay geometry in model units.
const (
	ContourWidth       = 0.2
	IntersectionRadius = 4.0
	IntersectionStroke = 0.5
	hoveredAlpha       = 0.2
	selectedAlpha      = 0.5
)

// Draw clears every layer and redraws the visible ones in order: image,
// contours, base graph, working graph, curves, intersections.
func (a *App) Draw() {
	a.raster.Clear()
	a.contour.dc.Clear()
	a.graphDev.Clear()
	a.vectorDev.Clear()
	a.marks.dc.Clear()

	v := a.store.View
	w, h := a.Size()
	f := render.Frame{
		Width:       w,
		Height:      h,
		View:        v.Transform,
		MouseX:      v.Pointer.MouseX,
		MouseY:      v.Pointer.MouseY,
		HoveredNode: v.Pointer.HoveredNode,
	}
	shown := a.controls.Shown

	if shown(controls.ShowImage) {
		a.raster.Draw(a.store.Image.Displayed(a.controls.ImageMode()), v.Transform)
	}
	if shown(controls.ShowContour) {
		a.drawContours()
	}
	if shown(controls.ShowBaseGraph) {
		base := f
		base.HoveredNode = -1
		if err := a.baseGraph.Draw(base, a.opts.PointSize, -1); err != nil {
			sldview.Logger().Warn("draw base graph", "err", err)
		}
	}
	if shown(controls.ShowGraph) {
		if err := a.workGraph.Draw(f, a.opts.PointSize, -1); err != nil {
			sldview.Logger().Warn("draw graph", "err", err)
		}
	}
	if shown(controls.ShowVectorization) {
		repeat := a.controls.Repeat()
		for i, c := range a.curves {
			if err := c.Draw(f, repeat); err != nil {
				sldview.Logger().Warn("draw curve", "curve", i, "err", err)
			}
		}
	}
	if shown(controls.ShowIntersections) {
		a.drawIntersections()
	}
}

func (a *App) drawContours() {
	dc, t := a.contour.dc, a.store.View.Transform
	dc.SetRGB(color.Red.R, color.Red.G, color.Red.B)
	dc.SetLineWidth(ContourWidth * t.Scale)
	for _, curve := range a.store.Contours {
		if len(curve) == 0 {
			continue
		}
		dc.MoveTo(t.ToScreen(curve[0][0]))
		for _, seg := range curve {
			x1, y1 := t.ToScreen(seg[1])
			x2, y2 := t.ToScreen(seg[2])
			x3, y3 := t.ToScreen(seg[3])
			dc.CubicTo(x1, y1, x2, y2, x3, y3)
		}
		if err := dc.Stroke(); err != nil {
			sldview.Logger().Warn("draw contour", "err", err)
			return
		}
	}
}

func (a *App) drawIntersections() {
	dc, t := a.marks.dc, a.store.View.Transform
	is := a.store.Intersections
	r := IntersectionRadius * t.Scale
	for i, p := range is.Points {
		if !onCanvas(t, p, r, a.stack.Width(), a.stack.Height()) {
			continue
		}
		x, y := t.ToScreen(p)
		for _, fill := range []struct {
			on    bool
			alpha float64
		}{
			{i == is.Hovered, hoveredAlpha},
			{i == is.Selected, selectedAlpha},
		} {
			if fill.on {
				dc.SetRGBA(color.Black.R, color.Black.G, color.Black.B, fill.alpha)
				dc.DrawCircle(x, y, r)
				_ = dc.Fill()
			}
		}
		dc.SetRGB(color.Black.R, color.Black.G, color.Black.B)
		dc.SetLineWidth(IntersectionStroke * t.Scale)
		dc.DrawCircle(x, y, r)
		_ = dc.Stroke()
	}
}

// onCanvas reports whether a marker of screen radius r around p touches
// the canvas.
func onCanvas(t view.Transform, p graph.Point, r float64, w, h int) bool {
	x, y := t.ToScreen(p)
	r = math.Abs(r) + 1
	return x+r >= 0 && y+r >= 0 && x-r <= float64(w) && y-r <= float64(h)
}
