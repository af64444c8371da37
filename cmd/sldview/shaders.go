package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gogpu/sldview/internal/color"
	"github.com/gogpu/sldview/internal/render"
	"github.com/gogpu/sldview/internal/shader"
	"github.com/gogpu/sldview/internal/ui"
)

// programs returns every program the viewer draws with.
func programs() []*shader.Program {
	return []*shader.Program{
		shader.NewPointProgram("graph_points", color.Green, shader.Highlightable),
		shader.NewEdgeProgram("graph_edges", color.Green.LowerIntensity(color.EdgeDivisor)),
		shader.NewPointProgram("base_graph_points", color.Yellow, shader.Plain),
		shader.NewEdgeProgram("base_graph_edges", color.Yellow.LowerIntensity(color.EdgeDivisor)),
		render.NewCurveProgram(),
	}
}

func shadersCmd() *cobra.Command {
	var dump string

	cmd := &cobra.Command{
		Use:   "shaders",
		Short: "Compile the draw programs and optionally dump WGSL and SPIR-V",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			ui.Banner(out, "shaders")
			if dump != "" {
				if err := os.MkdirAll(dump, 0o755); err != nil {
					return err
				}
			}

			var rows [][]string
			var failed []error
			for _, p := range programs() {
				err := p.Compile()
				status := ui.StatusIcon(err == nil)
				spirv := "-"
				if err != nil {
					failed = append(failed, err)
				} else {
					spirv = fmt.Sprintf("%d B", len(p.SPIRV))
				}
				variant := "-"
				if p.Kind == shader.KindPoint {
					variant = p.Variant.String()
				}
				rows = append(rows, []string{
					p.Label, p.Kind.String(), variant,
					fmt.Sprint(p.Buffers()), fmt.Sprintf("%d lines", strings.Count(p.WGSL, "\n")), spirv, status,
				})
				if dump != "" {
					if err := dumpProgram(dump, p); err != nil {
						return err
					}
				}
			}
			ui.Table(out, []string{"Program", "Kind", "Variant", "Buffers", "WGSL", "SPIR-V", "OK"}, rows)
			st := shader.CacheStats()
			ui.Subtle.Fprintf(out, "\n  %d sources compiled, %d cache hits\n", st.Len, st.Hits)
			for _, err := range failed {
				ui.Warn.Fprintf(out, "\n  %v", err)
			}
			if dump != "" {
				ui.Subtle.Fprintf(out, "\n  Sources written to %s\n", dump)
			}
			return errors.Join(failed...)
		},
	}

	cmd.Flags().StringVar(&dump, "dump", "", "Directory to write <program>.wgsl and <program>.spv to")
	return cmd
}

func dumpProgram(dir string, p *shader.Program) error {
	if err := os.WriteFile(filepath.Join(dir, p.Label+".wgsl"), []byte(p.WGSL), 0o644); err != nil {
		return err
	}
	if !p.Compiled() {
		return nil
	}
	return os.WriteFile(filepath.Join(dir, p.Label+".spv"), p.SPIRV, 0o644)
}
