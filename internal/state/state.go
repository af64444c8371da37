// Package state holds the viewer's application state: the view, the image
// set, the graphs, the contour curves, the intersections and the fitted
// curves. A Store is created per App; there is no package-level instance.
package state

import (
	"image"
	"path/filepath"
	"strings"

	"github.com/gogpu/sldview/internal/color"
	"github.com/gogpu/sldview/internal/controls"
	"github.com/gogpu/sldview/internal/graph"
	"github.com/gogpu/sldview/internal/view"
)

// ImageState is the uploaded image and its preprocessed variants.
type ImageState struct {
	Base   image.Image
	Blur   image.Image
	Binary image.Image
	Sigma  float64
	Thresh float64
}

// Displayed returns the image for mode, falling back to the base image
// when the variant has not been computed yet.
func (s ImageState) Displayed(mode controls.ImageMode) image.Image {
	switch mode {
	case controls.ImageBlur:
		if s.Blur != nil {
			return s.Blur
		}
	case controls.ImageBinary:
		if s.Binary != nil {
			return s.Binary
		}
	}
	return s.Base
}

// Size returns the base image size, 0x0 when none is loaded.
func (s ImageState) Size() (int, int) {
	if s.Base == nil {
		return 0, 0
	}
	b := s.Base.Bounds()
	return b.Dx(), b.Dy()
}

// Store is the application state.
type Store struct {
	View  *view.View
	Image ImageState

	// Graph is the working graph; its selection mask lives with its
	// renderer.
	Graph *graph.Graph
	// Base is the unsimplified graph, drawn for reference.
	Base *graph.Graph
	// Contours are the bezier outlines returned with the graph.
	Contours []graph.BezierCurve

	Intersections graph.IntersectionSet
	Curves        []graph.VectorizedCurve

	// SampleName is the dropped file name without extension, used to
	// name the exported SVG.
	SampleName string
	// LastError is the most recent request failure, cleared on success.
	LastError error
}

// New returns an empty store.
func New() *Store {
	return &Store{
		View:          view.New(),
		Intersections: graph.NewIntersectionSet(nil),
	}
}

// ResetAll drops every server result. The image and the sample name are
// kept.
func (s *Store) ResetAll() {
	s.Graph = nil
	s.Base = nil
	s.Contours = nil
	s.ResetIntersectionVectorization()
}

// ResetIntersectionVectorization drops the intersections and fitted
// curves.
func (s *Store) ResetIntersectionVectorization() {
	s.Intersections = graph.NewIntersectionSet(nil)
	s.Curves = nil
}

// SetVectorization replaces the intersections and fitted curves. Hover
// and selection are cleared.
func (s *Store) SetVectorization(intersections []graph.Point, curves [][]float32) {
	s.Intersections = graph.NewIntersectionSet(intersections)
	s.Curves = make([]graph.VectorizedCurve, len(curves))
	for i, pts := range curves {
		s.Curves[i] = graph.VectorizedCurve{
			Points:     pts,
			ColorIndex: color.CurveIndex(i, len(curves)),
		}
	}
}

// FitView fits the default view of a canvas of the given size to the base
// image and resets the view to it.
func (s *Store) FitView(canvasW, canvasH int) {
	w, h := s.Image.Size()
	s.View.SetDefault(view.Fit(canvasW, canvasH, w, h))
	s.View.Reset()
}

// SampleName returns filename without directory and final extension.
func SampleName(filename string) string {
	base := filepath.Base(filename)
	if ext := filepath.Ext(base); ext != "" && ext != base {
		base = strings.TrimSuffix(base, ext)
	}
	return base
}
