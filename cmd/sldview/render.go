package main

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gogpu/sldview/internal/app"
	"github.com/gogpu/sldview/internal/controls"
	"github.com/gogpu/sldview/internal/shader"
	"github.com/gogpu/sldview/internal/surface"
	"github.com/gogpu/sldview/internal/ui"
)

func renderCmd() *cobra.Command {
	var (
		output        string
		until         string
		layers        string
		mode          string
		width, height int
		legend        bool
		trace         bool
		multipleLines bool
	)

	cmd := &cobra.Command{
		Use:   "render <image>",
		Short: "Vectorize an image and write the composited layers as PNG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			stage, err := app.ParseStage(until)
			if err != nil {
				return err
			}
			name, data, err := readImage(args[0])
			if err != nil {
				return err
			}
			if output == "" {
				output = strings.TrimSuffix(name, filepath.Ext(name)) + "_layers.png"
			}

			a, cleanup, err := newApp(app.Options{
				Width:     width,
				Height:    height,
				ExportDir: filepath.Dir(output),
				Trace:     trace,
			})
			if err != nil {
				return err
			}
			defer cleanup()

			ctx := cmd.Context()
			if err := a.Process(ctx, name, data, app.StagePreprocess); err != nil {
				return err
			}
			if err := a.SetMultipleLines(multipleLines); err != nil {
				return err
			}
			if stage > app.StagePreprocess {
				if err := a.Resume(ctx, app.StageGraph, stage); err != nil {
					return err
				}
			}
			if err := applyLayers(a, layers, mode); err != nil {
				return err
			}

			a.Frame()
			img := a.Composite()
			if legend {
				surface.DrawLegend(img, legendLines(a), 8, 8, color.White, color.NRGBA{0, 0, 0, 0xb0})
			}
			if err := writePNG(output, img); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			ui.Banner(out, "render")
			printSummary(out, a)
			ui.KeyValue(out, "output", output)
			if trace {
				fmt.Fprintln(out)
				printTrace(out, a)
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&output, "output", "o", "", "Output PNG (default <sample>_layers.png)")
	f.StringVar(&until, "until", app.StageVectorize.String(), "Last stage: preprocess, graph, vectorize, export")
	f.StringVar(&layers, "layers", "", "Comma-separated layers to show, e.g. image,graph,base-graph (default: as after the last stage)")
	f.StringVar(&mode, "mode", "", "Image shown: base, blur or binary")
	f.IntVar(&width, "width", 0, "Canvas width (default from config)")
	f.IntVar(&height, "height", 0, "Canvas height (default from config)")
	f.BoolVar(&legend, "legend", true, "Draw a legend with the result counts")
	f.BoolVar(&multipleLines, "multiple-lines", false, "Extract the graph with multiple lines per stroke")
	f.BoolVar(&trace, "trace", false, "Print the draw calls issued for the frame")
	return cmd
}

// applyLayers shows exactly the named layers and selects the image mode.
// Empty arguments keep the current state.
func applyLayers(a *app.App, layers, mode string) error {
	if layers != "" {
		on := map[controls.Toggle]bool{}
		for _, name := range strings.Split(layers, ",") {
			t, err := controls.ParseToggle(name)
			if err != nil {
				return err
			}
			on[t] = true
		}
		for _, t := range controls.Toggles() {
			if err := a.Toggle(t, on[t]); err != nil {
				return err
			}
		}
	}
	if mode != "" {
		m, err := controls.ParseImageMode(mode)
		if err != nil {
			return err
		}
		if err := a.SelectImageMode(m); err != nil {
			return err
		}
	}
	return nil
}

func legendLines(a *app.App) []string {
	s := a.Store()
	return []string{
		"sldview " + s.SampleName,
		fmt.Sprintf("threshold %.2f", s.Image.Thresh),
		fmt.Sprintf("graph %d nodes, %d edges", s.Graph.NodeCount(), s.Graph.EdgeCount()),
		fmt.Sprintf("%d curves, %d intersections", len(s.Curves), len(s.Intersections.Points)),
	}
}

func printSummary(w io.Writer, a *app.App) {
	s := a.Store()
	ui.KeyValue(w, "sample", s.SampleName)
	ui.KeyValue(w, "threshold", fmt.Sprintf("%.2f", s.Image.Thresh))
	ui.KeyValue(w, "graph", fmt.Sprintf("%d nodes, %d edges", s.Graph.NodeCount(), s.Graph.EdgeCount()))
	ui.KeyValue(w, "base graph", fmt.Sprintf("%d nodes", s.Base.NodeCount()))
	ui.KeyValue(w, "curves", len(s.Curves))
	ui.KeyValue(w, "intersections", len(s.Intersections.Points))
}

func printTrace(w io.Writer, a *app.App) {
	graphs, vectors := a.Trace()
	if graphs == nil || vectors == nil {
		return
	}
	var rows [][]string
	for _, k := range []shader.Kind{shader.KindPoint, shader.KindEdge} {
		for _, d := range graphs.Draws(k) {
			rows = append(rows, []string{"graph", d.Program.Label, k.String(), fmt.Sprint(d.Count)})
		}
	}
	for _, d := range vectors.Draws(shader.KindCurve) {
		rows = append(rows, []string{"vector", d.Program.Label, shader.KindCurve.String(), fmt.Sprint(d.Count)})
	}
	if len(rows) == 0 {
		ui.Subtle.Fprintln(w, "  no draw calls")
		return
	}
	ui.Table(w, []string{"Layer", "Program", "Kind", "Count"}, rows)
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
