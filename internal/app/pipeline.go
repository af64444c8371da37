package app

import (
	"context"
	"fmt"
)

// Stage is how far Process takes an image.
type Stage int

const (
	StagePreprocess Stage = iota // upload and automatic threshold
	StageGraph                   // medial axis
	StageVectorize               // order graph
	StageExport                  // SVG export
)

var stageNames = [...]string{
	StagePreprocess: "preprocess",
	StageGraph:      "graph",
	StageVectorize:  "vectorize",
	StageExport:     "export",
}

func (s Stage) String() string {
	if s >= 0 && int(s) < len(stageNames) {
		return stageNames[s]
	}
	return fmt.Sprintf("stage(%d)", int(s))
}

// ParseStage parses a stage name.
func ParseStage(name string) (Stage, error) {
	for i, n := range stageNames {
		if n == name {
			return Stage(i), nil
		}
	}
	return 0, fmt.Errorf("app: unknown stage %q", name)
}

// Process runs the processing stages without a window: upload with the
// automatic threshold, then medial axis, order graph and export, stopping
// after until. The first failed request ends the run with its error.
func (a *App) Process(ctx context.Context, filename string, data []byte, until Stage) error {
	upload := func() error { return a.UploadImage(filename, data) }
	return a.run(ctx, upload, StagePreprocess, until)
}

// Resume runs the stages from..until on the loaded image.
func (a *App) Resume(ctx context.Context, from, until Stage) error {
	if from <= StagePreprocess {
		return fmt.Errorf("app: resume from %s: upload the image with Process", from)
	}
	return a.run(ctx, nil, from, until)
}

func (a *App) run(ctx context.Context, upload func() error, from, until Stage) error {
	steps := []struct {
		stage Stage
		run   func() error
	}{
		{StagePreprocess, upload},
		{StageGraph, a.MedialAxis},
		{StageVectorize, a.OrderGraph},
		{StageExport, a.ExportSVG},
	}
	for _, s := range steps {
		if s.stage < from {
			continue
		}
		if s.stage > until {
			break
		}
		if err := s.run(); err != nil {
			return fmt.Errorf("app: %s: %w", s.stage, err)
		}
		if err := a.Settle(ctx); err != nil {
			return err
		}
		if err := a.store.LastError; err != nil {
			return fmt.Errorf("app: %s: %w", s.stage, err)
		}
	}
	return nil
}
