// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Legend metrics of basicfont.Face7x13.
const (
	legendLine    = 15
	legendAdvance = 7
	legendPad     = 6
)

// LegendBounds returns the box DrawLegend fills for lines at (x, y).
func LegendBounds(lines []string, x, y int) image.Rectangle {
	if len(lines) == 0 {
		return image.Rectangle{}
	}
	w := 0
	for _, l := range lines {
		w = max(w, len([]rune(l)))
	}
	return image.Rect(x, y, x+w*legendAdvance+2*legendPad, y+len(lines)*legendLine+2*legendPad)
}

// DrawLegend draws lines of text on a box of colour bg with its top-left
// corner at (x, y).
func DrawLegend(dst draw.Image, lines []string, x, y int, fg, bg color.Color) {
	r := LegendBounds(lines, x, y)
	if r.Empty() {
		return
	}
	draw.Draw(dst, r, image.NewUniform(bg), image.Point{}, draw.Over)
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(fg),
		Face: basicfont.Face7x13,
	}
	for i, l := range lines {
		d.Dot = fixed.P(x+legendPad, y+legendPad+i*legendLine+basicfont.Face7x13.Ascent)
		d.DrawString(l)
	}
}
