package controls

import (
	"errors"
	"testing"
)

func TestNewInitialState(t *testing.T) {
	c := New()
	if c.Shown(ShowImage) {
		t.Error("image should be unchecked before an image is loaded")
	}
	if c.RadiosEnabled() {
		t.Error("radios should be disabled initially")
	}
	if c.FieldsetEnabled(Algorithm) || c.FieldsetEnabled(ImageProcessing) {
		t.Error("algorithm controls should be disabled initially")
	}
	if c.Enabled(MedialAxis) {
		t.Error("medial axis should be disabled through its parent fieldset")
	}
	if !c.Enabled(ResetView) {
		t.Error("reset view should be enabled initially")
	}
	if !c.Overlay() {
		t.Error("drop hint should be shown initially")
	}
	if c.Repeat() != DefaultRepeat {
		t.Errorf("Repeat() = %v, want %v", c.Repeat(), DefaultRepeat)
	}
}

func TestResetAll(t *testing.T) {
	c := New()
	c.Check(ShowGraph, true)
	c.Check(ShowVectorization, true)
	c.SetImageMode(ImageBinary)
	c.SetSigma(3)
	c.SetThresh(0.4)
	c.SetEnabled(Export, true)

	c.ResetAll()

	if !c.Shown(ShowImage) || !c.RadiosEnabled() {
		t.Error("ResetAll should check the image and enable the radios")
	}
	for _, tg := range []Toggle{ShowContour, ShowBaseGraph, ShowGraph, ShowIntersections, ShowVectorization} {
		if c.Shown(tg) {
			t.Errorf("%s still shown after ResetAll", tg)
		}
	}
	if c.ImageMode() != ImageBase {
		t.Errorf("ImageMode() = %s, want base", c.ImageMode())
	}
	for _, a := range []Action{MergeBranch, SplitNode, OrderGraph, Export} {
		if c.Enabled(a) {
			t.Errorf("%s enabled after ResetAll", a)
		}
	}
	for _, a := range []Action{Automatic, MedialAxis} {
		if !c.Enabled(a) {
			t.Errorf("%s disabled after ResetAll", a)
		}
	}
	if c.Sigma() != 0 || c.Thresh() != 0 {
		t.Errorf("sliders = %v, %v, want 0, 0", c.Sigma(), c.Thresh())
	}
	if c.SigmaLabel() != "Scale: 0.0" || c.ThreshLabel() != "Threshold: 0.00" {
		t.Errorf("labels = %q, %q", c.SigmaLabel(), c.ThreshLabel())
	}
	if c.Overlay() {
		t.Error("drop hint should be hidden after ResetAll")
	}
}

func TestWaitingReady(t *testing.T) {
	c := New()
	c.ResetAll()
	c.Waiting()
	if !c.Loading() {
		t.Error("Loading() = false while waiting")
	}
	if c.Enabled(ResetView) || c.Enabled(MedialAxis) || c.RadiosEnabled() {
		t.Error("controls should be disabled while waiting")
	}
	if err := c.SetShown(ShowGraph, true); !errors.Is(err, ErrDisabled) {
		t.Errorf("SetShown while waiting = %v, want ErrDisabled", err)
	}
	c.Ready()
	if c.Loading() || !c.Enabled(ResetView) || !c.Enabled(MedialAxis) {
		t.Error("Ready should re-enable the controls")
	}
	if err := c.SetShown(ShowGraph, true); err != nil || !c.Shown(ShowGraph) {
		t.Errorf("SetShown after Ready = %v", err)
	}
}

func TestImageToggleDrivesRadios(t *testing.T) {
	c := New()
	c.ResetAll()
	if err := c.SetShown(ShowImage, false); err != nil {
		t.Fatal(err)
	}
	if err := c.SelectImageMode(ImageBlur); !errors.Is(err, ErrDisabled) {
		t.Errorf("SelectImageMode with image hidden = %v, want ErrDisabled", err)
	}
	_ = c.SetShown(ShowImage, true)
	if err := c.SelectImageMode(ImageBlur); err != nil || c.ImageMode() != ImageBlur {
		t.Errorf("SelectImageMode = %v, mode %s", err, c.ImageMode())
	}
}

func TestMultipleLines(t *testing.T) {
	c := New()
	if err := c.SetMultipleLines(true); !errors.Is(err, ErrDisabled) {
		t.Errorf("SetMultipleLines before load = %v, want ErrDisabled", err)
	}
	c.ResetAll()
	if err := c.SetMultipleLines(true); err != nil || !c.MultipleLines() {
		t.Errorf("SetMultipleLines after load = %v", err)
	}
}

func TestParseImageMode(t *testing.T) {
	for _, m := range []ImageMode{ImageBase, ImageBlur, ImageBinary} {
		got, err := ParseImageMode(m.String())
		if err != nil || got != m {
			t.Errorf("ParseImageMode(%q) = %v, %v", m, got, err)
		}
	}
	if _, err := ParseImageMode("sepia"); err == nil {
		t.Error("ParseImageMode(sepia) should fail")
	}
}

func TestParseToggle(t *testing.T) {
	tests := []struct {
		in   string
		want Toggle
	}{
		{"image", ShowImage},
		{"base-graph", ShowBaseGraph},
		{"Base Graph", ShowBaseGraph},
		{" vectorization ", ShowVectorization},
	}
	for _, tt := range tests {
		got, err := ParseToggle(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseToggle(%q) = %v, %v, want %v", tt.in, got, err, tt.want)
		}
	}
	if _, err := ParseToggle("skeleton"); err == nil {
		t.Error("ParseToggle(skeleton) should fail")
	}
}

func TestSnapshot(t *testing.T) {
	c := New()
	c.ResetAll()
	c.SetRepeat(2.5)
	s := c.Snapshot()
	if !s.Shown["image"] || s.Shown["graph"] {
		t.Errorf("Snapshot().Shown = %v", s.Shown)
	}
	if !s.Enabled["medial axis"] || s.Enabled["export SVG"] {
		t.Errorf("Snapshot().Enabled = %v", s.Enabled)
	}
	if c.RepeatLabel() != "Repeat gradient: 2.5" {
		t.Errorf("RepeatLabel() = %q", c.RepeatLabel())
	}
	if Toggle(99).String() != "unknown" || Action(99).String() != "unknown" {
		t.Error("unexpected names for out-of-range values")
	}
}
