// Package view maps between model space (image pixels) and screen space
// (canvas pixels) and performs hit testing in model space.
package view

import (
	"math"

	"github.com/gogpu/gg"

	"github.com/gogpu/sldview/internal/graph"
)

// ZoomStep is the exponent applied per wheel notch.
const ZoomStep = 0.1

// Transform is a uniform scale plus translation: screen = model*Scale + Offset.
type Transform struct {
	Scale   float64
	OffsetX float64
	OffsetY float64
}

// Identity is the transform with unit scale and no offset.
var Identity = Transform{Scale: 1}

// ZoomAt scales around the screen point (px, py) so that the model point
// under it stays put. sign is +1 to zoom in and -1 to zoom out.
func (t *Transform) ZoomAt(px, py float64, sign int) {
	if sign == 0 {
		return
	}
	s := 1.0
	if sign < 0 {
		s = -1
	}
	f := math.Exp(s * ZoomStep)
	t.OffsetX = px - (px-t.OffsetX)*f
	t.OffsetY = py - (py-t.OffsetY)*f
	t.Scale *= f
}

// Pan translates by a screen-space delta.
func (t *Transform) Pan(dx, dy float64) {
	t.OffsetX += dx
	t.OffsetY += dy
}

// ToModel maps a screen point to model space.
func (t Transform) ToModel(x, y float64) graph.Point {
	return graph.Point{X: (x - t.OffsetX) / t.Scale, Y: (y - t.OffsetY) / t.Scale}
}

// ToScreen maps a model point to screen space.
func (t Transform) ToScreen(p graph.Point) (float64, float64) {
	return p.X*t.Scale + t.OffsetX, p.Y*t.Scale + t.OffsetY
}

// Matrix returns the transform as a gg matrix for 2D layers.
func (t Transform) Matrix() gg.Matrix {
	return gg.Matrix{
		A: t.Scale, B: 0, C: t.OffsetX,
		D: 0, E: t.Scale, F: t.OffsetY,
	}
}

// Fit returns the transform that fits an imgW x imgH image inside a
// canvasW x canvasH canvas, centred along the axis with spare room.
func Fit(canvasW, canvasH, imgW, imgH int) Transform {
	if imgW <= 0 || imgH <= 0 {
		return Identity
	}
	rh := float64(canvasW) / float64(imgW)
	rv := float64(canvasH) / float64(imgH)
	if rh < rv {
		return Transform{Scale: rh, OffsetX: 0, OffsetY: (float64(canvasH) - float64(imgH)*rh) / 2}
	}
	return Transform{Scale: rv, OffsetX: (float64(canvasW) - float64(imgW)*rv) / 2, OffsetY: 0}
}
