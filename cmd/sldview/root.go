package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	sldview "github.com/gogpu/sldview"
	"github.com/gogpu/sldview/client"
	"github.com/gogpu/sldview/internal/app"
	"github.com/gogpu/sldview/internal/config"
	"github.com/gogpu/sldview/internal/history"
	"github.com/gogpu/sldview/internal/interaction"
	"github.com/gogpu/sldview/internal/ui"
)

var version = sldview.Version

var (
	cfg       = config.Default()
	serverURL string
	logLevel  string
	noHistory bool
)

var rootCmd = &cobra.Command{
	Use:   "sldview",
	Short: "sldview: interactive client for the SLD vectorization service",
	Long: ui.Brand.Sprint("sldview") + " turns line drawings into vector curves\n" +
		ui.Subtle.Sprint("Inspect the skeleton graph, fix nodes and branches, export SVG"),
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return err
		}
		if serverURL != "" {
			c.Server.URL = serverURL
		}
		if logLevel != "" {
			c.Log.Level = logLevel
		}
		if noHistory {
			c.History.Enabled = false
		}
		level, err := c.Log.SlogLevel()
		if err != nil {
			return err
		}
		sldview.SetLogger(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
		cfg = c
		return nil
	},
}

func init() {
	rootCmd.SetVersionTemplate("sldview {{ .Version }}\n")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "Vectorization service URL (overrides config)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&noHistory, "no-history", false, "Do not record runs in the local history")

	rootCmd.AddCommand(
		viewCmd(),
		renderCmd(),
		exportCmd(),
		historyCmd(),
		configCmd(),
		shadersCmd(),
	)
}

// run executes the root command and prints a failure the way every
// subcommand reports errors.
func run(ctx context.Context, args []string) error {
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		ui.Bad.Fprintf(rootCmd.ErrOrStderr(), "sldview: %v\n", err)
	}
	return err
}

func newClient() (*client.Client, error) {
	return client.New(cfg.Server.URL, client.WithTimeout(cfg.Server.Timeout.Duration))
}

// openHistory opens the run history, or returns nil when it is disabled.
func openHistory() (*history.Store, error) {
	if !cfg.History.Enabled {
		return nil, nil
	}
	return history.Open(cfg.HistoryPath())
}

// newApp builds an App from the configuration. The returned cleanup
// closes the app and the history store.
func newApp(opts app.Options) (*app.App, func(), error) {
	svc, err := newClient()
	if err != nil {
		return nil, nil, err
	}
	if opts.Width <= 0 {
		opts.Width = cfg.Window.Width
	}
	if opts.Height <= 0 {
		opts.Height = cfg.Window.Height
	}
	opts.PointSize = cfg.Render.PointSize
	opts.Repeat = cfg.Render.RepeatGradient
	opts.Background = cfg.Render.Background

	hist, err := openHistory()
	if err != nil {
		sldview.Logger().Warn("history disabled", "err", err)
	}
	if hist != nil {
		opts.History = hist
	}
	a, err := app.New(svc, opts)
	if err != nil {
		hist.Close()
		return nil, nil, err
	}
	return a, func() {
		a.Close()
		hist.Close()
	}, nil
}

// readImage reads a PNG or JPEG file.
func readImage(path string) (string, []byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", nil, err
	}
	if !interaction.IsSupportedImage(data) {
		return "", nil, fmt.Errorf("%s: %w", path, interaction.ErrUnsupportedImage)
	}
	return filepath.Base(path), data, nil
}
