package app

import (
	"strings"

	"github.com/gogpu/sldview/internal/controls"
)

// DropHint is shown until an image is loaded.
const DropHint = "Drop a PNG or JPG image here"

// Status returns the lines a host shows next to the canvas: sample,
// slider labels, visible layers, loader and last error.
func (a *App) Status() []string {
	c := a.controls
	if c.Overlay() {
		return []string{DropHint}
	}
	lines := []string{
		"Sample: " + a.store.SampleName,
		c.SigmaLabel() + "  " + c.ThreshLabel() + "  " + c.RepeatLabel(),
		"Image: " + c.ImageMode().String(),
	}
	var shown []string
	for _, t := range controls.Toggles() {
		if c.Shown(t) {
			shown = append(shown, t.String())
		}
	}
	if len(shown) == 0 {
		shown = append(shown, "none")
	}
	lines = append(lines, "Layers: "+strings.Join(shown, ", "))
	if c.MultipleLines() {
		lines = append(lines, "Multiple lines")
	}
	if c.Loading() {
		lines = append(lines, "Loading...")
	}
	if err := a.store.LastError; err != nil {
		lines = append(lines, "Error: "+err.Error())
	}
	return lines
}
