// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package surface composites the viewer's layers into one frame.
package surface

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"slices"
)

// Z is a layer's position in the stack; higher values are drawn on top.
type Z int

// Layer positions of the viewer.
const (
	ZImage        Z = iota // raster image
	ZContour               // bezier contour overlay
	ZGraph                 // base and working graph
	ZVector                // fitted curves
	ZIntersection          // intersection markers
)

var zNames = [...]string{
	ZImage:        "image",
	ZContour:      "contour",
	ZGraph:        "graph",
	ZVector:       "vector",
	ZIntersection: "intersection",
}

// String returns the layer name.
func (z Z) String() string {
	if z >= 0 && int(z) < len(zNames) {
		return zNames[z]
	}
	return fmt.Sprintf("layer(%d)", int(z))
}

// Source is anything that can provide a layer's pixels.
type Source interface {
	Image() image.Image
}

// layer represents a single compositing layer.
type layer struct {
	src     Source
	visible bool
}

// Stack composites z-ordered sources over a background.
type Stack struct {
	base       *image.RGBA
	layers     map[Z]*layer
	zOrder     []Z // cached sorted z-order
	background color.Color
}

// NewStack creates a width x height stack with a white background.
func NewStack(width, height int) *Stack {
	return &Stack{
		base:       image.NewRGBA(image.Rect(0, 0, width, height)),
		layers:     make(map[Z]*layer),
		background: color.White,
	}
}

// Width returns the frame width in pixels.
func (s *Stack) Width() int { return s.base.Bounds().Dx() }

// Height returns the frame height in pixels.
func (s *Stack) Height() int { return s.base.Bounds().Dy() }

// SetBackground sets the colour the frame is cleared to.
func (s *Stack) SetBackground(c color.Color) {
	s.background = c
}

// Attach adds a visible layer at z.
func (s *Stack) Attach(z Z, src Source) error {
	if _, exists := s.layers[z]; exists {
		return fmt.Errorf("surface: layer %s already attached", z)
	}
	s.layers[z] = &layer{src: src, visible: true}
	s.zOrder = nil
	return nil
}

// Detach removes the layer at z.
func (s *Stack) Detach(z Z) error {
	if _, exists := s.layers[z]; !exists {
		return fmt.Errorf("surface: layer %s not attached", z)
	}
	delete(s.layers, z)
	s.zOrder = nil
	return nil
}

// SetVisible controls layer visibility without detaching it.
func (s *Stack) SetVisible(z Z, visible bool) {
	if l, exists := s.layers[z]; exists {
		l.visible = visible
	}
}

// Visible reports whether the layer at z is attached and visible.
func (s *Stack) Visible(z Z) bool {
	l, exists := s.layers[z]
	return exists && l.visible
}

// Layers returns all attached layers in render order.
func (s *Stack) Layers() []Z {
	if s.zOrder == nil {
		s.zOrder = make([]Z, 0, len(s.layers))
		for z := range s.layers {
			s.zOrder = append(s.zOrder, z)
		}
		slices.Sort(s.zOrder)
	}
	return slices.Clone(s.zOrder)
}

// Composite clears the frame to the background and blends every visible
// layer over it in z-order. The returned image is reused by the next call.
func (s *Stack) Composite() *image.RGBA {
	draw.Draw(s.base, s.base.Bounds(), image.NewUniform(s.background), image.Point{}, draw.Src)
	for _, z := range s.Layers() {
		l := s.layers[z]
		if l.visible {
			draw.Draw(s.base, s.base.Bounds(), l.src.Image(), image.Point{}, draw.Over)
		}
	}
	return s.base
}

// Resize reallocates the frame. Sources are resized by their owners.
func (s *Stack) Resize(width, height int) {
	s.base = image.NewRGBA(image.Rect(0, 0, width, height))
}
