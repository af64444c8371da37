package main

import (
	"github.com/spf13/cobra"

	"github.com/gogpu/sldview/integration/ebitenhost"
	"github.com/gogpu/sldview/internal/app"
)

func viewCmd() *cobra.Command {
	var (
		width, height int
		exportDir     string
	)

	cmd := &cobra.Command{
		Use:   "view [image]",
		Short: "Open the viewer window",
		Long: "Open the viewer window. Drop a PNG or JPG on it, or pass one as argument.\n" +
			"Press H in the window for keyboard shortcuts.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			alerts := &ebitenhost.Alerts{}
			a, cleanup, err := newApp(app.Options{
				Width:     width,
				Height:    height,
				ExportDir: exportDir,
				Notifier:  alerts,
			})
			if err != nil {
				return err
			}
			defer cleanup()

			if len(args) == 1 {
				name, data, err := readImage(args[0])
				if err != nil {
					return err
				}
				if err := a.UploadImage(name, data); err != nil {
					return err
				}
			}

			game, err := ebitenhost.NewGame(a, alerts)
			if err != nil {
				return err
			}
			defer game.Close()

			w, h := a.Size()
			return ebitenhost.Run(game, cfg.Window.Title, w, h)
		},
	}

	cmd.Flags().IntVar(&width, "width", 0, "Window width (default from config)")
	cmd.Flags().IntVar(&height, "height", 0, "Window height (default from config)")
	cmd.Flags().StringVar(&exportDir, "export-dir", ".", "Directory exported SVG files are saved to")
	return cmd
}
