package main

import (
	"fmt"
	"os"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/gogpu/sldview/internal/app"
	"github.com/gogpu/sldview/internal/ui"
)

func exportCmd() *cobra.Command {
	var (
		dir           string
		copyToClip    bool
		multipleLines bool
	)

	cmd := &cobra.Command{
		Use:   "export <image>",
		Short: "Vectorize an image and save the SVG as <sample>.svg",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, data, err := readImage(args[0])
			if err != nil {
				return err
			}
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}

			a, cleanup, err := newApp(app.Options{ExportDir: dir})
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
			if err := a.Resume(ctx, app.StageGraph, app.StageExport); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			ui.Banner(out, "export")
			printSummary(out, a)
			ui.KeyValue(out, "svg", a.LastExport())

			if copyToClip {
				svg, err := os.ReadFile(a.LastExport())
				if err != nil {
					return err
				}
				if err := clipboard.WriteAll(string(svg)); err != nil {
					return fmt.Errorf("copy to clipboard: %w", err)
				}
				ui.Good.Fprintln(out, "  SVG copied to clipboard")
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&dir, "dir", "d", ".", "Directory the SVG is saved to")
	f.BoolVar(&copyToClip, "copy", false, "Also copy the SVG to the clipboard")
	f.BoolVar(&multipleLines, "multiple-lines", false, "Extract the graph with multiple lines per stroke")
	return cmd
}
