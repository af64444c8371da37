package interaction

import (
	"math"

	"github.com/gogpu/sldview/internal/controls"
)

// Commander is the part of the application that keyboard shortcuts drive.
// *app.App implements it.
type Commander interface {
	Controls() *controls.Controls
	Toggle(t controls.Toggle, on bool) error
	SelectImageMode(m controls.ImageMode) error
	SetMultipleLines(on bool) error
	SetSigma(v float64) error
	SetThresh(v float64) error
	SetRepeat(v float64) error
	ResetView() error
	Automatic() error
	MedialAxis() error
	MergeBranch() error
	SplitNode() error
	OrderGraph() error
	ExportSVG() error
	ClearSelection()
}

// Slider ranges and steps.
const (
	SigmaMax   = 10.0
	SigmaStep  = 0.5
	ThreshStep = 0.01
	RepeatMin  = 0.5
	RepeatMax  = 10.0
	RepeatStep = 0.5
)

// Shortcut binds a key name to a command. Key names are the host's key
// names ("1", "M", "Escape", "BracketLeft").
type Shortcut struct {
	Key  string
	Help string
	Run  func(Commander) error
}

// Shortcuts returns the keyboard bindings in help order.
func Shortcuts() []Shortcut {
	s := []Shortcut{}
	for i, t := range controls.Toggles() {
		s = append(s, Shortcut{
			Key:  string(rune('1' + i)),
			Help: "toggle " + t.String(),
			Run:  flip(t),
		})
	}
	s = append(s,
		Shortcut{"B", "show base image", mode(controls.ImageBase)},
		Shortcut{"U", "show blurred image", mode(controls.ImageBlur)},
		Shortcut{"T", "show binary image", mode(controls.ImageBinary)},
		Shortcut{"BracketLeft", "decrease scale", sigma(-SigmaStep)},
		Shortcut{"BracketRight", "increase scale", sigma(SigmaStep)},
		Shortcut{"Minus", "decrease threshold", thresh(-ThreshStep)},
		Shortcut{"Equal", "increase threshold", thresh(ThreshStep)},
		Shortcut{"Comma", "decrease repeat gradient", repeat(-RepeatStep)},
		Shortcut{"Period", "increase repeat gradient", repeat(RepeatStep)},
		Shortcut{"A", "automatic threshold", func(c Commander) error { return c.Automatic() }},
		Shortcut{"L", "toggle multiple lines", func(c Commander) error {
			return c.SetMultipleLines(!c.Controls().MultipleLines())
		}},
		Shortcut{"M", "medial axis", func(c Commander) error { return c.MedialAxis() }},
		Shortcut{"G", "merge branch", func(c Commander) error { return c.MergeBranch() }},
		Shortcut{"S", "split node", func(c Commander) error { return c.SplitNode() }},
		Shortcut{"O", "order graph", func(c Commander) error { return c.OrderGraph() }},
		Shortcut{"E", "export SVG", func(c Commander) error { return c.ExportSVG() }},
		Shortcut{"R", "reset view", func(c Commander) error { return c.ResetView() }},
		Shortcut{"Escape", "clear selection", func(c Commander) error {
			c.ClearSelection()
			return nil
		}},
	)
	return s
}

func flip(t controls.Toggle) func(Commander) error {
	return func(c Commander) error {
		return c.Toggle(t, !c.Controls().Shown(t))
	}
}

func mode(m controls.ImageMode) func(Commander) error {
	return func(c Commander) error { return c.SelectImageMode(m) }
}

func sigma(d float64) func(Commander) error {
	return func(c Commander) error {
		return c.SetSigma(step(c.Controls().Sigma(), d, 0, SigmaMax))
	}
}

func thresh(d float64) func(Commander) error {
	return func(c Commander) error {
		return c.SetThresh(step(c.Controls().Thresh(), d, 0, 1))
	}
}

func repeat(d float64) func(Commander) error {
	return func(c Commander) error {
		return c.SetRepeat(step(c.Controls().Repeat(), d, RepeatMin, RepeatMax))
	}
}

// step moves v by d, rounded to the step size and clamped to [lo, hi].
func step(v, d, lo, hi float64) float64 {
	s := math.Abs(d)
	v = math.Round((v+d)/s) * s
	return math.Max(lo, math.Min(hi, v))
}

// Dragged reports whether the pointer moved more than ClickSlop pixels
// between press and release, in which case the release ends a pan rather
// than a click.
func Dragged(x0, y0, x1, y1 float64) bool {
	return math.Hypot(x1-x0, y1-y0) > ClickSlop
}

// ClickSlop is the pointer travel in pixels still treated as a click.
const ClickSlop = 3.0
