package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gogpu/sldview/internal/history"
	"github.com/gogpu/sldview/internal/ui"
)

func historyCmd() *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:     "history",
		Aliases: []string{"runs"},
		Short:   "Show recorded runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := history.Open(cfg.HistoryPath())
			if err != nil {
				return err
			}
			defer store.Close()

			runs, err := store.List(cmd.Context(), count)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			ui.Banner(out, "recent runs")
			if len(runs) == 0 {
				fmt.Fprintln(out, "  No runs recorded yet.")
				fmt.Fprintln(out, "  Runs are recorded by `sldview view`, `render` and `export`")
				return nil
			}

			headers := []string{"Time", "Session", "Sample", "Stage", "Nodes", "Edges", "Curves", "Intersections"}
			rows := make([][]string, 0, len(runs))
			for _, r := range runs {
				rows = append(rows, []string{
					r.CreatedAt.Format("Jan 02 15:04:05"),
					r.Session.String()[:8],
					r.Sample,
					string(r.Stage),
					count0(r.Nodes),
					count0(r.Edges),
					count0(r.Curves),
					count0(r.Intersections),
				})
			}
			ui.Table(out, headers, rows)
			fmt.Fprintf(out, "\n  Showing %d most recent runs\n", len(runs))
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 20, "Number of runs to show, -1 for all")
	cmd.AddCommand(historyClearCmd())
	return cmd
}

func historyClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete every recorded run",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := history.Open(cfg.HistoryPath())
			if err != nil {
				return err
			}
			defer store.Close()

			n, err := store.Clear(cmd.Context())
			if err != nil {
				return err
			}
			ui.Good.Fprintf(cmd.OutOrStdout(), "  Removed %d runs\n", n)
			return nil
		},
	}
}

// count0 prints zero counts as "-".
func count0(n int) string {
	if n == 0 {
		return "-"
	}
	return fmt.Sprint(n)
}
