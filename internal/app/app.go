// Package app is the viewer's application context. It owns the state
// store, the control panel, the layer surfaces and renderers, and talks to
// the vectorization service.
//
// An App is not safe for concurrent use: every method must be called from
// the goroutine that owns it (the host's update loop, or a test). Service
// requests run on background goroutines and never touch the state; their
// results are queued and applied by Pump.
package app

import (
	"context"
	"errors"
	"image"
	"sync"
	"sync/atomic"

	"github.com/gogpu/gg"

	sldview "github.com/gogpu/sldview"
	"github.com/gogpu/sldview/client"
	"github.com/gogpu/sldview/internal/color"
	"github.com/gogpu/sldview/internal/controls"
	"github.com/gogpu/sldview/internal/gpu"
	"github.com/gogpu/sldview/internal/graph"
	"github.com/gogpu/sldview/internal/history"
	"github.com/gogpu/sldview/internal/render"
	"github.com/gogpu/sldview/internal/shader"
	"github.com/gogpu/sldview/internal/state"
	"github.com/gogpu/sldview/internal/surface"
)

// ErrClosed is returned by actions on a closed App.
var ErrClosed = errors.New("app: closed")

// Service is the vectorization service. *client.Client implements it.
type Service interface {
	UploadImage(ctx context.Context, filename string, data []byte) (image.Image, error)
	Preprocess(ctx context.Context, sigma, thresh float64) (*client.PreprocessResult, error)
	Graph(ctx context.Context, multipleLines bool) (*client.GraphResult, error)
	UpdateGraph(ctx context.Context, mask []int, kind client.SelectionType) (*graph.Graph, error)
	Vectorize(ctx context.Context, multipleLines bool) (*client.VectorResult, error)
	UpdateVectorize(ctx context.Context, index int) (*client.VectorResult, error)
	ExportSVG(ctx context.Context) ([]byte, error)
}

var _ Service = (*client.Client)(nil)

// Notifier shows blocking messages to the user.
type Notifier interface {
	Alert(msg string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(msg string)

// Alert implements Notifier.
func (f NotifierFunc) Alert(msg string) { f(msg) }

// HistoryRecorder stores applied results. *history.Store implements it.
type HistoryRecorder interface {
	Record(ctx context.Context, r history.Run) (int64, error)
}

// Options configures an App.
type Options struct {
	// Width and Height are the canvas size in pixels.
	Width, Height int
	// PointSize is the node radius in pixels.
	PointSize float64
	// Repeat is the initial repeat-gradient value.
	Repeat float64
	// Background is the hex colour behind every layer.
	Background string
	// ExportDir receives exported SVG files.
	ExportDir string
	Notifier  Notifier
	History   HistoryRecorder
	// Trace wraps the graph and vector devices in recorders, see Trace.
	Trace bool
}

func (o *Options) setDefaults() {
	if o.Width <= 0 {
		o.Width = 1280
	}
	if o.Height <= 0 {
		o.Height = 800
	}
	if o.PointSize <= 0 {
		o.PointSize = 5
	}
	if o.Repeat <= 0 {
		o.Repeat = controls.DefaultRepeat
	}
	if o.Background == "" {
		o.Background = "#ffffff"
	}
	if o.ExportDir == "" {
		o.ExportDir = "."
	}
	if o.Notifier == nil {
		o.Notifier = NotifierFunc(func(msg string) {
			sldview.Logger().Warn("alert", "msg", msg)
		})
	}
}

// canvas is a gg context attached to the stack. Resizing swaps the
// context behind a stable Source.
type canvas struct {
	dc *gg.Context
}

func newCanvas(w, h int) *canvas { return &canvas{dc: gg.NewContext(w, h)} }

func (c *canvas) Image() image.Image { return c.dc.Image() }

func (c *canvas) resize(w, h int) {
	_ = c.dc.Close()
	c.dc = gg.NewContext(w, h)
}

// App is the viewer application context.
type App struct {
	opts     Options
	svc      Service
	store    *state.Store
	controls *controls.Controls

	raster        *surface.Raster
	contour       *canvas
	graphSurface  *gpu.SoftwareDevice
	vectorSurface *gpu.SoftwareDevice
	marks         *canvas
	stack         *surface.Stack

	graphDev    gpu.Device
	vectorDev   gpu.Device
	graphTrace  *gpu.Recorder
	vectorTrace *gpu.Recorder

	baseGraph *render.GraphRenderer
	workGraph *render.GraphRenderer
	curveProg *shader.Program
	curves    []*render.CurveRenderer

	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	mu       sync.Mutex
	queue    []completion
	inflight atomic.Int64
	wake     chan struct{}
	seq      [numDomains]uint64
	locking  int
	closed   bool

	dirty      bool
	lastExport string
}

// New creates an App talking to svc.
func New(svc Service, opts Options) (*App, error) {
	opts.setDefaults()
	bg, err := color.ParseHex(opts.Background)
	if err != nil {
		return nil, err
	}

	w, h := opts.Width, opts.Height
	a := &App{
		opts:          opts,
		svc:           svc,
		store:         state.New(),
		controls:      controls.New(),
		raster:        surface.NewRaster(w, h),
		contour:       newCanvas(w, h),
		graphSurface:  gpu.NewSoftwareDevice(w, h),
		vectorSurface: gpu.NewSoftwareDevice(w, h),
		marks:         newCanvas(w, h),
		stack:         surface.NewStack(w, h),
		wake:          make(chan struct{}, 1),
	}
	a.ctx, a.cancel = context.WithCancel(context.Background())
	a.controls.SetRepeat(opts.Repeat)
	a.stack.SetBackground(bg.NRGBA(1))

	a.graphDev, a.vectorDev = a.graphSurface, a.vectorSurface
	if opts.Trace {
		a.graphTrace = gpu.Wrap(a.graphSurface)
		a.vectorTrace = gpu.Wrap(a.vectorSurface)
		a.graphDev, a.vectorDev = a.graphTrace, a.vectorTrace
	}

	layers := []struct {
		z   surface.Z
		src surface.Source
	}{
		{surface.ZImage, a.raster},
		{surface.ZContour, a.contour},
		{surface.ZGraph, a.graphSurface},
		{surface.ZVector, a.vectorSurface},
		{surface.ZIntersection, a.marks},
	}
	for _, l := range layers {
		if err := a.stack.Attach(l.z, l.src); err != nil {
			return nil, err
		}
	}

	a.baseGraph = render.NewGraphRenderer(a.graphDev, "base_graph", color.Yellow, shader.Plain)
	a.workGraph = render.NewGraphRenderer(a.graphDev, "graph", color.Green, shader.Highlightable)
	a.curveProg = render.NewCurveProgram()
	a.dirty = true
	return a, nil
}

// Close cancels in-flight requests, waits for them and releases the
// renderers.
func (a *App) Close() error {
	if a.closed {
		return nil
	}
	a.closed = true
	a.cancel()
	a.wg.Wait()
	a.clearCurves()
	a.baseGraph.Destroy()
	a.workGraph.Destroy()
	return errors.Join(a.contour.dc.Close(), a.marks.dc.Close())
}

// Store returns the application state.
func (a *App) Store() *state.Store { return a.store }

// Controls returns the control panel.
func (a *App) Controls() *controls.Controls { return a.controls }

// Selection returns the working graph's live selection mask.
func (a *App) Selection() graph.SelectionMask { return a.workGraph.Selection() }

// Alert forwards msg to the notifier.
func (a *App) Alert(msg string) { a.opts.Notifier.Alert(msg) }

// Size returns the canvas size.
func (a *App) Size() (int, int) { return a.stack.Width(), a.stack.Height() }

// PointSize returns the node radius in pixels.
func (a *App) PointSize() float64 { return a.opts.PointSize }

// LastExport returns the path of the last saved SVG.
func (a *App) LastExport() string { return a.lastExport }

// Trace returns the graph and vector recorders, nil unless Options.Trace
// was set.
func (a *App) Trace() (graphs, vectors *gpu.Recorder) {
	return a.graphTrace, a.vectorTrace
}

// Curves returns the number of curve renderers.
func (a *App) Curves() int { return len(a.curves) }

// RequestDraw marks the frame dirty; the next Frame redraws.
func (a *App) RequestDraw() { a.dirty = true }

// Frame draws if a redraw was requested since the last frame and reports
// whether it did. Hosts call it once per tick.
func (a *App) Frame() bool {
	if !a.dirty {
		return false
	}
	a.dirty = false
	a.Draw()
	return true
}

// Composite returns the composited frame. The image is reused by the next
// call.
func (a *App) Composite() *image.RGBA {
	return a.stack.Composite()
}

// Resize resizes every layer and redraws. The view is kept.
func (a *App) Resize(width, height int) {
	if width <= 0 || height <= 0 || (width == a.stack.Width() && height == a.stack.Height()) {
		return
	}
	a.raster.Resize(width, height)
	a.contour.resize(width, height)
	a.graphSurface.Resize(width, height)
	a.vectorSurface.Resize(width, height)
	a.marks.resize(width, height)
	a.stack.Resize(width, height)
	a.RequestDraw()
}

func (a *App) installGraphs(work, base *graph.Graph) error {
	if err := a.workGraph.SetGraph(work, nil); err != nil {
		return err
	}
	if err := a.baseGraph.SetGraph(base, nil); err != nil {
		return err
	}
	a.store.Graph, a.store.Base = work, base
	return nil
}

func (a *App) installCurves() error {
	a.clearCurves()
	for _, c := range a.store.Curves {
		r, err := render.NewCurveRenderer(a.vectorDev, a.curveProg, c)
		if err != nil {
			return err
		}
		a.curves = append(a.curves, r)
	}
	return nil
}

func (a *App) clearCurves() {
	for _, r := range a.curves {
		r.Destroy()
	}
	a.curves = nil
}
