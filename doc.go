// Package sldview is the interactive client of the SLD line-drawing
// vectorization service.
//
// # Overview
//
// sldview shows a raster drawing, the skeleton graph extracted from it and
// the vector curves fitted to that graph on a stack of composited layers.
// The user pans and zooms the view, hovers and selects graph nodes or
// curve intersections, and triggers the processing stages of the remote
// service: threshold preprocessing, medial-axis extraction, node split,
// branch merge, curve fitting, intersection resolution and SVG export.
//
// # Quick Start
//
//	sldview config init
//	sldview view --server http://localhost:5000
//
//	// Headless: vectorize a drawing and write the composited layers.
//	sldview render drawing.png -o out.png
//
// # Architecture
//
// The library is organized into:
//   - client: typed HTTP client for the vectorization service
//   - internal/view, internal/interaction: view transform, hit testing, selection
//   - internal/shader, internal/gpu, internal/render: programs, draw devices, renderers
//   - internal/surface: z-ordered layer compositing
//   - internal/controls, internal/state, internal/app: view-model, state store, orchestration
//   - integration/ebitenhost: desktop window host
//
// # Logging
//
// Nothing is logged by default. Use [SetLogger] to install a [log/slog]
// logger shared by every sub-package.
package sldview

// Version is the sldview release.
const Version = "0.1.0"
