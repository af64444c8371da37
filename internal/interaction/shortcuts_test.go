package interaction

import (
	"fmt"
	"math"
	"testing"
	"testing/fstest"

	"github.com/gogpu/sldview/internal/controls"
)

type fakeCommander struct {
	controls *controls.Controls
	calls    []string
	sigma    float64
	thresh   float64
	repeat   float64
}

func newCommander() *fakeCommander {
	c := controls.New()
	c.ResetAll()
	return &fakeCommander{controls: c}
}

func (f *fakeCommander) Controls() *controls.Controls { return f.controls }

func (f *fakeCommander) Toggle(t controls.Toggle, on bool) error {
	f.calls = append(f.calls, fmt.Sprintf("toggle %s %v", t, on))
	return f.controls.SetShown(t, on)
}

func (f *fakeCommander) SelectImageMode(m controls.ImageMode) error {
	f.calls = append(f.calls, "mode "+m.String())
	return f.controls.SelectImageMode(m)
}

func (f *fakeCommander) SetMultipleLines(on bool) error {
	f.calls = append(f.calls, fmt.Sprintf("multiple %v", on))
	return f.controls.SetMultipleLines(on)
}

func (f *fakeCommander) SetSigma(v float64) error {
	f.sigma = v
	f.controls.SetSigma(v)
	return nil
}

func (f *fakeCommander) SetThresh(v float64) error {
	f.thresh = v
	f.controls.SetThresh(v)
	return nil
}

func (f *fakeCommander) SetRepeat(v float64) error {
	f.repeat = v
	f.controls.SetRepeat(v)
	return nil
}

func (f *fakeCommander) ResetView() error { f.calls = append(f.calls, "reset"); return nil }
func (f *fakeCommander) Automatic() error { f.calls = append(f.calls, "automatic"); return nil }
func (f *fakeCommander) MedialAxis() error { f.calls = append(f.calls, "medial"); return nil }
func (f *fakeCommander) MergeBranch() error { f.calls = append(f.calls, "merge"); return nil }
func (f *fakeCommander) SplitNode() error { f.calls = append(f.calls, "split"); return nil }
func (f *fakeCommander) OrderGraph() error { f.calls = append(f.calls, "order"); return nil }
func (f *fakeCommander) ExportSVG() error { f.calls = append(f.calls, "export"); return nil }
func (f *fakeCommander) ClearSelection() { f.calls = append(f.calls, "clear") }

func shortcut(t *testing.T, key string) Shortcut {
	t.Helper()
	for _, s := range Shortcuts() {
		if s.Key == key {
			return s
		}
	}
	t.Fatalf("no shortcut for %q", key)
	return Shortcut{}
}

func TestShortcutKeysUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, s := range Shortcuts() {
		if seen[s.Key] {
			t.Errorf("key %q bound twice", s.Key)
		}
		seen[s.Key] = true
		if s.Help == "" || s.Run == nil {
			t.Errorf("shortcut %q incomplete", s.Key)
		}
	}
}

func TestShortcutTogglesFlip(t *testing.T) {
	f := newCommander()
	graphKey := shortcut(t, "4")

	if err := graphKey.Run(f); err != nil {
		t.Fatal(err)
	}
	if !f.controls.Shown(controls.ShowGraph) {
		t.Errorf("graph shown = false after first press, want true")
	}
	if err := graphKey.Run(f); err != nil {
		t.Fatal(err)
	}
	if f.controls.Shown(controls.ShowGraph) {
		t.Errorf("graph shown = true after second press, want false")
	}
}

func TestShortcutActions(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"A", "automatic"},
		{"M", "medial"},
		{"G", "merge"},
		{"S", "split"},
		{"O", "order"},
		{"E", "export"},
		{"R", "reset"},
		{"Escape", "clear"},
		{"T", "mode binary"},
		{"L", "multiple true"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			f := newCommander()
			if err := shortcut(t, tt.key).Run(f); err != nil {
				t.Fatal(err)
			}
			if len(f.calls) != 1 || f.calls[0] != tt.want {
				t.Errorf("calls = %v, want [%s]", f.calls, tt.want)
			}
		})
	}
}

func TestShortcutSlidersClamp(t *testing.T) {
	f := newCommander()

	if err := shortcut(t, "BracketLeft").Run(f); err != nil {
		t.Fatal(err)
	}
	if f.sigma != 0 {
		t.Errorf("sigma = %v, want 0", f.sigma)
	}
	if err := shortcut(t, "BracketRight").Run(f); err != nil {
		t.Fatal(err)
	}
	if f.sigma != SigmaStep {
		t.Errorf("sigma = %v, want %v", f.sigma, SigmaStep)
	}

	f.controls.SetThresh(0.995)
	if err := shortcut(t, "Equal").Run(f); err != nil {
		t.Fatal(err)
	}
	if math.Abs(f.thresh-1) > 1e-9 {
		t.Errorf("thresh = %v, want 1", f.thresh)
	}

	f.controls.SetRepeat(RepeatMin)
	if err := shortcut(t, "Comma").Run(f); err != nil {
		t.Fatal(err)
	}
	if f.repeat != RepeatMin {
		t.Errorf("repeat = %v, want %v", f.repeat, RepeatMin)
	}
}

func TestStep(t *testing.T) {
	tests := []struct {
		v, d, lo, hi float64
		want         float64
	}{
		{0.42, 0.01, 0, 1, 0.43},
		{0.42, -0.01, 0, 1, 0.41},
		{1, 0.5, 0.5, 10, 1.5},
		{10, 0.5, 0.5, 10, 10},
		{0.3, -0.5, 0, 10, 0},
	}
	for _, tt := range tests {
		if got := step(tt.v, tt.d, tt.lo, tt.hi); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("step(%v, %v) = %v, want %v", tt.v, tt.d, got, tt.want)
		}
	}
}

func TestDragged(t *testing.T) {
	if Dragged(10, 10, 12, 11) {
		t.Errorf("Dragged(2px) = true, want false")
	}
	if !Dragged(10, 10, 20, 10) {
		t.Errorf("Dragged(10px) = false, want true")
	}
}

func TestReadDropped(t *testing.T) {
	fsys := fstest.MapFS{
		"leaf.png":    {Data: pngBytes(t)},
		"notes/a.txt": {Data: []byte("x")},
	}
	files, err := ReadDropped(fsys)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 2 {
		t.Fatalf("len(files) = %d, want 2", len(files))
	}
	if files[0].Name != "leaf.png" || len(files[0].Data) == 0 {
		t.Errorf("files[0] = %q (%d bytes), want leaf.png with data", files[0].Name, len(files[0].Data))
	}
	if files[1].Name != "notes" || files[1].Data != nil {
		t.Errorf("files[1] = %q, want directory notes without data", files[1].Name)
	}
}
