// Package controls is the view-model of the viewer's control panel: layer
// toggles, action buttons, image mode radios and sliders, with the
// enable/disable transitions of each processing stage. It holds no
// rendering or window state, so any host can bind it.
package controls

import (
	"errors"
	"fmt"
	"strings"
)

// ErrDisabled is returned when changing a control that is disabled.
var ErrDisabled = errors.New("controls: control is disabled")

// Toggle is a layer visibility checkbox.
type Toggle uint8

const (
	ShowImage Toggle = iota
	ShowContour
	ShowBaseGraph
	ShowGraph
	ShowIntersections
	ShowVectorization
	numToggles
)

var toggleNames = [...]string{
	ShowImage:         "image",
	ShowContour:       "contour",
	ShowBaseGraph:     "base graph",
	ShowGraph:         "graph",
	ShowIntersections: "intersections",
	ShowVectorization: "vectorization",
}

// String returns the toggle label.
func (t Toggle) String() string {
	if t < numToggles {
		return toggleNames[t]
	}
	return "unknown"
}

// Toggles lists every toggle in panel order.
func Toggles() []Toggle {
	return []Toggle{ShowImage, ShowContour, ShowBaseGraph, ShowGraph, ShowIntersections, ShowVectorization}
}

// ParseToggle parses a toggle name. Dashes stand for spaces, so
// "base-graph" names the base graph.
func ParseToggle(s string) (Toggle, error) {
	name := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", " ")
	for _, t := range Toggles() {
		if t.String() == name {
			return t, nil
		}
	}
	return 0, fmt.Errorf("controls: unknown layer %q", s)
}

// Action is a button.
type Action uint8

const (
	ResetView Action = iota
	Automatic
	MedialAxis
	MergeBranch
	SplitNode
	OrderGraph
	Export
	numActions
)

var actionNames = [...]string{
	ResetView:   "reset view",
	Automatic:   "automatic threshold",
	MedialAxis:  "medial axis",
	MergeBranch: "merge branch",
	SplitNode:   "split node",
	OrderGraph:  "order graph",
	Export:      "export SVG",
}

// String returns the button label.
func (a Action) String() string {
	if a < numActions {
		return actionNames[a]
	}
	return "unknown"
}

// Fieldset groups controls that are disabled together.
type Fieldset uint8

const (
	// Visualization holds the toggles, image radios, reset view and the
	// repeat-gradient slider.
	Visualization Fieldset = iota
	// Algorithm holds ImageProcessing and MedialAxisSet.
	Algorithm
	// ImageProcessing holds sigma, threshold and automatic.
	ImageProcessing
	// MedialAxisSet holds medial axis, multiple lines, merge, split,
	// order graph and export.
	MedialAxisSet
	numFieldsets
)

// parents lists the enclosing fieldsets of each fieldset.
var parents = [numFieldsets][]Fieldset{
	Visualization:   nil,
	Algorithm:       nil,
	ImageProcessing: {Algorithm},
	MedialAxisSet:   {Algorithm},
}

var actionFieldset = [numActions]Fieldset{
	ResetView:   Visualization,
	Automatic:   ImageProcessing,
	MedialAxis:  MedialAxisSet,
	MergeBranch: MedialAxisSet,
	SplitNode:   MedialAxisSet,
	OrderGraph:  MedialAxisSet,
	Export:      MedialAxisSet,
}

// ImageMode selects which raster is displayed.
type ImageMode uint8

const (
	ImageBase ImageMode = iota
	ImageBlur
	ImageBinary
)

// String returns the mode name used on the command line.
func (m ImageMode) String() string {
	switch m {
	case ImageBase:
		return "base"
	case ImageBlur:
		return "blur"
	case ImageBinary:
		return "binary"
	}
	return "unknown"
}

// ParseImageMode parses "base", "blur" or "binary".
func ParseImageMode(s string) (ImageMode, error) {
	for _, m := range []ImageMode{ImageBase, ImageBlur, ImageBinary} {
		if m.String() == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("controls: unknown image mode %q", s)
}

// AutoThreshold is the threshold value requesting automatic thresholding.
const AutoThreshold = 2.0

// DefaultRepeat is the initial repeat-gradient value.
const DefaultRepeat = 1.0

// Controls is the control panel state.
type Controls struct {
	shown            [numToggles]bool
	actionDisabled   [numActions]bool
	fieldsetDisabled [numFieldsets]bool

	imageMode      ImageMode
	radiosDisabled bool

	multipleLines         bool
	multipleLinesDisabled bool

	sigma  float64
	thresh float64
	repeat float64

	loading bool
	// overlay is the drop hint shown until an image is loaded.
	overlay bool
}

// New returns controls in their initial state: image shown, algorithm
// controls disabled until an image is loaded.
func New() *Controls {
	c := &Controls{repeat: DefaultRepeat, overlay: true}
	c.shown[ShowImage] = true
	c.Initialize()
	return c
}

// Initialize disables the algorithm controls and unchecks the image.
func (c *Controls) Initialize() {
	c.fieldsetDisabled[Algorithm] = true
	c.UncheckImage()
}

// CheckImage shows the image layer and enables the mode radios.
func (c *Controls) CheckImage() {
	c.shown[ShowImage] = true
	c.radiosDisabled = false
}

// UncheckImage hides the image layer and disables the mode radios.
func (c *Controls) UncheckImage() {
	c.shown[ShowImage] = false
	c.radiosDisabled = true
}

// Waiting disables the visualization and algorithm controls and shows the
// loader while a long request runs.
func (c *Controls) Waiting() {
	c.fieldsetDisabled[Visualization] = true
	c.fieldsetDisabled[Algorithm] = true
	c.loading = true
}

// Ready reverses Waiting.
func (c *Controls) Ready() {
	c.fieldsetDisabled[Visualization] = false
	c.fieldsetDisabled[Algorithm] = false
	c.loading = false
}

// ResetAll restores the state after a new image is loaded.
func (c *Controls) ResetAll() {
	c.CheckImage()
	c.imageMode = ImageBase
	for _, t := range []Toggle{ShowContour, ShowBaseGraph, ShowGraph, ShowIntersections, ShowVectorization} {
		c.shown[t] = false
	}
	c.fieldsetDisabled[Algorithm] = false
	c.fieldsetDisabled[ImageProcessing] = false
	c.fieldsetDisabled[MedialAxisSet] = false
	c.multipleLinesDisabled = false
	for _, a := range []Action{MergeBranch, SplitNode, OrderGraph, Export} {
		c.actionDisabled[a] = true
	}
	c.sigma = 0
	c.thresh = 0
	c.overlay = false
}

// Shown reports whether a layer toggle is checked.
func (c *Controls) Shown(t Toggle) bool {
	return c.shown[t]
}

// SetShown checks or unchecks a toggle. The image toggle also drives the
// mode radios. Toggles are locked while the visualization set is disabled.
func (c *Controls) SetShown(t Toggle, on bool) error {
	if c.fieldsetDisabled[Visualization] {
		return fmt.Errorf("%w: %s", ErrDisabled, t)
	}
	c.Check(t, on)
	return nil
}

// Check sets a toggle programmatically, ignoring disabled fieldsets.
func (c *Controls) Check(t Toggle, on bool) {
	if t == ShowImage {
		if on {
			c.CheckImage()
		} else {
			c.UncheckImage()
		}
		return
	}
	c.shown[t] = on
}

// Enabled reports whether an action's button and all its fieldsets are
// enabled.
func (c *Controls) Enabled(a Action) bool {
	return !c.actionDisabled[a] && c.fieldsetEnabled(actionFieldset[a])
}

// SetEnabled enables or disables a button.
func (c *Controls) SetEnabled(a Action, on bool) {
	c.actionDisabled[a] = !on
}

// FieldsetEnabled reports whether a fieldset and its parents are enabled.
func (c *Controls) FieldsetEnabled(f Fieldset) bool {
	return c.fieldsetEnabled(f)
}

func (c *Controls) fieldsetEnabled(f Fieldset) bool {
	if c.fieldsetDisabled[f] {
		return false
	}
	for _, p := range parents[f] {
		if c.fieldsetDisabled[p] {
			return false
		}
	}
	return true
}

// ImageMode returns the displayed image mode.
func (c *Controls) ImageMode() ImageMode {
	return c.imageMode
}

// RadiosEnabled reports whether the image mode radios can be used.
func (c *Controls) RadiosEnabled() bool {
	return !c.radiosDisabled && c.fieldsetEnabled(Visualization)
}

// SelectImageMode is a user click on a mode radio.
func (c *Controls) SelectImageMode(m ImageMode) error {
	if !c.RadiosEnabled() {
		return fmt.Errorf("%w: image mode", ErrDisabled)
	}
	c.imageMode = m
	return nil
}

// SetImageMode checks a radio programmatically.
func (c *Controls) SetImageMode(m ImageMode) {
	c.imageMode = m
}

// MultipleLines reports the multiple-lines checkbox.
func (c *Controls) MultipleLines() bool {
	return c.multipleLines
}

// SetMultipleLines sets the multiple-lines checkbox.
func (c *Controls) SetMultipleLines(on bool) error {
	if c.multipleLinesDisabled || !c.fieldsetEnabled(MedialAxisSet) {
		return fmt.Errorf("%w: multiple lines", ErrDisabled)
	}
	c.multipleLines = on
	return nil
}

// Sigma returns the blur slider value.
func (c *Controls) Sigma() float64 { return c.sigma }

// Thresh returns the threshold slider value.
func (c *Controls) Thresh() float64 { return c.thresh }

// Repeat returns the repeat-gradient slider value.
func (c *Controls) Repeat() float64 { return c.repeat }

// SetSigma moves the blur slider.
func (c *Controls) SetSigma(v float64) { c.sigma = v }

// SetThresh moves the threshold slider.
func (c *Controls) SetThresh(v float64) { c.thresh = v }

// SetRepeat moves the repeat-gradient slider.
func (c *Controls) SetRepeat(v float64) { c.repeat = v }

// SigmaLabel is the blur slider label.
func (c *Controls) SigmaLabel() string { return fmt.Sprintf("Scale: %.1f", c.sigma) }

// ThreshLabel is the threshold slider label.
func (c *Controls) ThreshLabel() string { return fmt.Sprintf("Threshold: %.2f", c.thresh) }

// RepeatLabel is the repeat-gradient slider label.
func (c *Controls) RepeatLabel() string { return fmt.Sprintf("Repeat gradient: %.1f", c.repeat) }

// Loading reports whether the loader is shown.
func (c *Controls) Loading() bool { return c.loading }

// Overlay reports whether the drop hint is shown.
func (c *Controls) Overlay() bool { return c.overlay }

// Snapshot is a read-only copy of the panel for hosts and logs.
type Snapshot struct {
	Shown         map[string]bool
	Enabled       map[string]bool
	ImageMode     string
	MultipleLines bool
	Loading       bool
}

// Snapshot returns the current panel state.
func (c *Controls) Snapshot() Snapshot {
	s := Snapshot{
		Shown:         make(map[string]bool, numToggles),
		Enabled:       make(map[string]bool, numActions),
		ImageMode:     c.imageMode.String(),
		MultipleLines: c.multipleLines,
		Loading:       c.loading,
	}
	for _, t := range Toggles() {
		s.Shown[t.String()] = c.shown[t]
	}
	for a := Action(0); a < numActions; a++ {
		s.Enabled[a.String()] = c.Enabled(a)
	}
	return s
}
