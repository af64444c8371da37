package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	sldview "github.com/gogpu/sldview"
	"github.com/gogpu/sldview/client"
	"github.com/gogpu/sldview/internal/controls"
	"github.com/gogpu/sldview/internal/history"
	"github.com/gogpu/sldview/internal/state"
)

// UploadImage sends a validated image file. When the upload is applied
// the view is fitted to the image, every result and control is reset and
// an automatic threshold is requested.
func (a *App) UploadImage(filename string, data []byte) error {
	return a.submit(job{
		domain: domainUpload,
		op:     "upload_image",
		run: func(ctx context.Context) (func() error, error) {
			img, err := a.svc.UploadImage(ctx, filepath.Base(filename), data)
			if err != nil {
				return nil, err
			}
			return func() error {
				// Results computed for the previous image are void.
				a.supersede(domainImage)
				a.supersede(domainGraph)
				a.supersede(domainVector)

				a.store.Image = state.ImageState{Base: img}
				a.store.SampleName = state.SampleName(filename)
				a.store.FitView(a.Size())
				a.store.ResetAll()
				if err := a.installGraphs(nil, nil); err != nil {
					return err
				}
				a.clearCurves()
				a.controls.ResetAll()
				a.controls.Ready()
				b := img.Bounds()
				sldview.Logger().Info("image loaded", "sample", a.store.SampleName, "width", b.Dx(), "height", b.Dy())
				a.record(history.Run{Stage: history.StageUpload})
				return a.requestPreprocess(client.AutoThreshold, controls.ImageBinary)
			}, nil
		},
	})
}

// Automatic asks the server to choose the threshold and shows the binary
// image.
func (a *App) Automatic() error {
	if !a.controls.Enabled(controls.Automatic) {
		return fmt.Errorf("%w: %s", controls.ErrDisabled, controls.Automatic)
	}
	return a.requestPreprocess(client.AutoThreshold, controls.ImageBinary)
}

// SetSigma moves the blur slider and shows the blurred image.
func (a *App) SetSigma(v float64) error {
	if !a.controls.FieldsetEnabled(controls.ImageProcessing) {
		return fmt.Errorf("%w: sigma", controls.ErrDisabled)
	}
	a.controls.SetSigma(v)
	a.store.Image.Sigma = v
	return a.requestPreprocess(a.store.Image.Thresh, controls.ImageBlur)
}

// SetThresh moves the threshold slider and shows the binary image.
func (a *App) SetThresh(v float64) error {
	if !a.controls.FieldsetEnabled(controls.ImageProcessing) {
		return fmt.Errorf("%w: threshold", controls.ErrDisabled)
	}
	a.controls.SetThresh(v)
	a.store.Image.Thresh = v
	return a.requestPreprocess(v, controls.ImageBinary)
}

func (a *App) requestPreprocess(thresh float64, show controls.ImageMode) error {
	sigma := a.store.Image.Sigma
	return a.submit(job{
		domain: domainImage,
		op:     "preprocess",
		run: func(ctx context.Context) (func() error, error) {
			res, err := a.svc.Preprocess(ctx, sigma, thresh)
			if err != nil {
				return nil, err
			}
			return func() error {
				a.store.Image.Blur = res.Blur
				a.store.Image.Binary = res.Binary
				a.store.Image.Thresh = res.Thresh
				a.controls.SetThresh(res.Thresh)
				a.controls.SetImageMode(show)
				a.record(history.Run{Stage: history.StagePreprocess})
				return nil
			}, nil
		},
	})
}

// SelectImageMode switches the displayed image.
func (a *App) SelectImageMode(m controls.ImageMode) error {
	if err := a.controls.SelectImageMode(m); err != nil {
		return err
	}
	a.RequestDraw()
	return nil
}

// SetMultipleLines sets the flag sent with the graph and vectorize
// requests.
func (a *App) SetMultipleLines(on bool) error {
	return a.controls.SetMultipleLines(on)
}

// Toggle shows or hides a layer.
func (a *App) Toggle(t controls.Toggle, on bool) error {
	if err := a.controls.SetShown(t, on); err != nil {
		return err
	}
	if t == controls.ShowGraph && !on {
		a.store.View.Pointer.HoveredNode = -1
	}
	if t == controls.ShowIntersections && !on {
		a.store.Intersections.Hovered = -1
	}
	a.RequestDraw()
	return nil
}

// SetRepeat moves the repeat-gradient slider.
func (a *App) SetRepeat(v float64) error {
	if !a.controls.FieldsetEnabled(controls.Visualization) {
		return fmt.Errorf("%w: repeat gradient", controls.ErrDisabled)
	}
	a.controls.SetRepeat(v)
	a.RequestDraw()
	return nil
}

// ResetView restores the view fitted to the image.
func (a *App) ResetView() error {
	if !a.controls.Enabled(controls.ResetView) {
		return fmt.Errorf("%w: %s", controls.ErrDisabled, controls.ResetView)
	}
	a.store.View.Reset()
	a.RequestDraw()
	return nil
}

// MedialAxis requests the skeleton graph of the binary image. The panel
// is locked until the result is applied.
func (a *App) MedialAxis() error {
	if !a.controls.Enabled(controls.MedialAxis) {
		return fmt.Errorf("%w: %s", controls.ErrDisabled, controls.MedialAxis)
	}
	multiple := a.controls.MultipleLines()
	a.controls.Waiting()
	return a.submit(job{
		domain: domainGraph,
		op:     "graph",
		locks:  true,
		run: func(ctx context.Context) (func() error, error) {
			res, err := a.svc.Graph(ctx, multiple)
			if err != nil {
				return nil, err
			}
			return func() error {
				if err := a.installGraphs(res.Graph, res.Base); err != nil {
					return err
				}
				a.store.Contours = res.Curves
				a.supersede(domainVector)
				a.store.ResetIntersectionVectorization()
				a.clearCurves()

				a.controls.UncheckImage()
				a.controls.Check(controls.ShowGraph, true)
				a.controls.Check(controls.ShowBaseGraph, false)
				a.controls.Check(controls.ShowContour, true)
				a.controls.Check(controls.ShowIntersections, false)
				a.controls.Check(controls.ShowVectorization, false)
				a.controls.SetEnabled(controls.OrderGraph, true)
				a.controls.SetEnabled(controls.MergeBranch, false)
				a.controls.SetEnabled(controls.SplitNode, false)
				a.controls.Ready()

				sldview.Logger().Info("graph installed",
					"nodes", res.Graph.NodeCount(), "edges", res.Graph.EdgeCount(),
					"base_nodes", res.Base.NodeCount(), "contours", len(res.Curves))
				a.record(history.Run{Stage: history.StageGraph, Nodes: res.Graph.NodeCount(), Edges: res.Graph.EdgeCount()})
				return nil
			}, nil
		},
	})
}

// SplitNode splits the selected unbranched node.
func (a *App) SplitNode() error {
	return a.updateGraph(controls.SplitNode, client.SelectNode)
}

// MergeBranch merges the selected branch.
func (a *App) MergeBranch() error {
	return a.updateGraph(controls.MergeBranch, client.SelectBranch)
}

func (a *App) updateGraph(action controls.Action, kind client.SelectionType) error {
	if !a.controls.Enabled(action) {
		return fmt.Errorf("%w: %s", controls.ErrDisabled, action)
	}
	mask := client.EncodeMask(a.workGraph.Selection())
	a.controls.SetEnabled(controls.MergeBranch, false)
	a.controls.SetEnabled(controls.SplitNode, false)
	return a.submit(job{
		domain: domainGraph,
		op:     "update_graph",
		run: func(ctx context.Context) (func() error, error) {
			g, err := a.svc.UpdateGraph(ctx, mask, kind)
			if err != nil {
				return nil, err
			}
			return func() error {
				if err := a.workGraph.SetGraph(g, nil); err != nil {
					return err
				}
				a.store.Graph = g
				a.store.View.Pointer.HoveredNode = -1
				sldview.Logger().Info("graph updated", "selection", string(kind), "nodes", g.NodeCount(), "edges", g.EdgeCount())
				a.record(history.Run{Stage: history.StageUpdateGraph, Nodes: g.NodeCount(), Edges: g.EdgeCount()})
				return nil
			}, nil
		},
	})
}

// OrderGraph fits curves to the working graph. The panel is locked until
// the result is applied.
func (a *App) OrderGraph() error {
	if !a.controls.Enabled(controls.OrderGraph) {
		return fmt.Errorf("%w: %s", controls.ErrDisabled, controls.OrderGraph)
	}
	multiple := a.controls.MultipleLines()
	a.controls.Waiting()
	return a.submit(job{
		domain: domainVector,
		op:     "vectorize",
		locks:  true,
		run: func(ctx context.Context) (func() error, error) {
			res, err := a.svc.Vectorize(ctx, multiple)
			if err != nil {
				return nil, err
			}
			return func() error {
				if err := a.applyVectorization(res, history.StageVectorize); err != nil {
					return err
				}
				a.controls.Check(controls.ShowGraph, false)
				a.controls.Check(controls.ShowBaseGraph, false)
				a.controls.Check(controls.ShowVectorization, true)
				a.controls.SetEnabled(controls.Export, true)
				a.controls.Ready()
				return nil
			}, nil
		},
	})
}

// UpdateVectorize resolves intersection i. The marker shows as selected
// until the result arrives.
func (a *App) UpdateVectorize(i int) error {
	if i < 0 || i >= len(a.store.Intersections.Points) {
		return fmt.Errorf("app: intersection %d out of range [0,%d)", i, len(a.store.Intersections.Points))
	}
	a.store.Intersections.Selected = i
	a.RequestDraw()
	return a.submit(job{
		domain: domainVector,
		op:     "update_vectorize",
		run: func(ctx context.Context) (func() error, error) {
			res, err := a.svc.UpdateVectorize(ctx, i)
			if err != nil {
				return nil, err
			}
			return func() error {
				return a.applyVectorization(res, history.StageUpdateVectorize)
			}, nil
		},
		failed: func() { a.store.Intersections.Selected = -1 },
	})
}

func (a *App) applyVectorization(res *client.VectorResult, stage history.Stage) error {
	a.store.SetVectorization(res.Intersections, res.Curves)
	if err := a.installCurves(); err != nil {
		return err
	}
	sldview.Logger().Info("curves installed", "curves", len(res.Curves), "intersections", len(res.Intersections))
	a.record(history.Run{Stage: stage, Curves: len(res.Curves), Intersections: len(res.Intersections)})
	return nil
}

// ExportSVG fetches the SVG and saves it as <sample>.svg in the export
// directory.
func (a *App) ExportSVG() error {
	if !a.controls.Enabled(controls.Export) {
		return fmt.Errorf("%w: %s", controls.ErrDisabled, controls.Export)
	}
	name := a.store.SampleName
	if name == "" {
		name = "vectorized"
	}
	path := filepath.Join(a.opts.ExportDir, name+".svg")
	return a.submit(job{
		domain: domainExport,
		op:     "export_svg",
		run: func(ctx context.Context) (func() error, error) {
			svg, err := a.svc.ExportSVG(ctx)
			if err != nil {
				return nil, err
			}
			return func() error {
				if err := os.WriteFile(path, svg, 0o644); err != nil {
					return fmt.Errorf("app: save svg: %w", err)
				}
				a.lastExport = path
				sldview.Logger().Info("export saved", "path", path, "bytes", len(svg))
				a.record(history.Run{Stage: history.StageExport, Curves: len(a.store.Curves)})
				return nil
			}, nil
		},
	})
}

// record stores an applied result. History failures are logged only.
func (a *App) record(r history.Run) {
	if a.opts.History == nil {
		return
	}
	r.Sample = a.store.SampleName
	if _, err := a.opts.History.Record(a.ctx, r); err != nil {
		sldview.Logger().Warn("history record failed", "stage", r.Stage, "err", err)
	}
}

// ClearSelection deselects every node and disables merge and split.
func (a *App) ClearSelection() {
	mask := a.workGraph.Selection()
	for i := range mask {
		mask[i] = 0
	}
	a.controls.SetEnabled(controls.MergeBranch, false)
	a.controls.SetEnabled(controls.SplitNode, false)
	a.RequestDraw()
}
