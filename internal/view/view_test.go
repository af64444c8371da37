package view

import (
	"math"
	"testing"

	"github.com/gogpu/sldview/internal/graph"
)

const eps = 1e-9

func near(a, b float64) bool { return math.Abs(a-b) < eps }

func TestZoomAtKeepsAnchor(t *testing.T) {
	tests := []struct {
		name   string
		start  Transform
		px, py float64
		sign   int
	}{
		{"identity in", Identity, 100, 50, 1},
		{"identity out", Identity, 100, 50, -1},
		{"offset in", Transform{Scale: 2.5, OffsetX: -40, OffsetY: 13}, 320, 240, 1},
		{"origin", Transform{Scale: 0.3, OffsetX: 7, OffsetY: 9}, 0, 0, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := tt.start
			before := tr.ToModel(tt.px, tt.py)
			tr.ZoomAt(tt.px, tt.py, tt.sign)
			after := tr.ToModel(tt.px, tt.py)
			if !near(before.X, after.X) || !near(before.Y, after.Y) {
				t.Errorf("model point moved: %v -> %v", before, after)
			}
			wantScale := tt.start.Scale * math.Exp(float64(tt.sign)*ZoomStep)
			if !near(tr.Scale, wantScale) {
				t.Errorf("Scale = %v, want %v", tr.Scale, wantScale)
			}
		})
	}
}

func TestZoomNeverNonPositive(t *testing.T) {
	tr := Identity
	for i := 0; i < 1000; i++ {
		tr.ZoomAt(10, 10, -1)
	}
	if tr.Scale <= 0 {
		t.Errorf("Scale = %v after zooming out, want > 0", tr.Scale)
	}
	tr.ZoomAt(10, 10, 0)
}

func TestPanAdditive(t *testing.T) {
	a := Transform{Scale: 2, OffsetX: 1, OffsetY: 1}
	b := a
	a.Pan(3, -4)
	a.Pan(5, 6)
	b.Pan(8, 2)
	if a != b {
		t.Errorf("Pan(3,-4)+Pan(5,6) = %+v, Pan(8,2) = %+v", a, b)
	}
}

func TestToScreenRoundTrip(t *testing.T) {
	tr := Transform{Scale: 1.7, OffsetX: -12, OffsetY: 30}
	p := graph.Point{X: 42, Y: -3}
	x, y := tr.ToScreen(p)
	got := tr.ToModel(x, y)
	if !near(got.X, p.X) || !near(got.Y, p.Y) {
		t.Errorf("round trip = %v, want %v", got, p)
	}
	m := tr.Matrix()
	if m.A != 1.7 || m.E != 1.7 || m.C != -12 || m.F != 30 {
		t.Errorf("Matrix() = %+v", m)
	}
}

func TestFit(t *testing.T) {
	tests := []struct {
		name           string
		cw, ch, iw, ih int
		want           Transform
	}{
		{"wide image", 800, 600, 400, 100, Transform{Scale: 2, OffsetX: 0, OffsetY: 200}},
		{"tall image", 800, 600, 100, 300, Transform{Scale: 2, OffsetX: 300, OffsetY: 0}},
		{"empty image", 800, 600, 0, 0, Identity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Fit(tt.cw, tt.ch, tt.iw, tt.ih); got != tt.want {
				t.Errorf("Fit() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestPointerDrag(t *testing.T) {
	p := NewPointer()
	if _, _, ok := p.Move(5, 5); ok {
		t.Error("Move without Press should not report a delta")
	}
	p.Press(10, 10)
	dx, dy, ok := p.Move(13, 6)
	if !ok || dx != 3 || dy != -4 {
		t.Errorf("Move() = %v, %v, %v", dx, dy, ok)
	}
	p.HoveredNode = 2
	p.Leave()
	if p.Dragging || p.HoveredNode != NoHover {
		t.Errorf("after Leave: %+v", p)
	}
}

func TestViewReset(t *testing.T) {
	v := New()
	v.SetDefault(Transform{Scale: 3, OffsetX: 1, OffsetY: 2})
	v.Pan(50, 50)
	v.Reset()
	if v.Transform != v.Default {
		t.Errorf("Reset() = %+v, want %+v", v.Transform, v.Default)
	}
}

func TestNearestNode(t *testing.T) {
	g, err := graph.New([]graph.Point{{X: 0, Y: 0}, {X: 5, Y: 0}, {X: 3, Y: 0}, {X: 3, Y: 0}}, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		name  string
		m     graph.Point
		scale float64
		want  int
	}{
		{"nearest wins", graph.Point{X: 4.2, Y: 0}, 1, 1},
		{"tie first index", graph.Point{X: 3, Y: 0}, 1, 2},
		{"outside radius", graph.Point{X: 30, Y: 0}, 1, NoHover},
		{"radius shrinks with zoom", graph.Point{X: 0, Y: 2}, 10, NoHover},
		{"radius grows when zoomed out", graph.Point{X: 0, Y: 15}, 0.5, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NearestNode(g, tt.m, tt.scale); got != tt.want {
				t.Errorf("NearestNode() = %d, want %d", got, tt.want)
			}
		})
	}
	if got := NearestNode(nil, graph.Point{}, 1); got != NoHover {
		t.Errorf("NearestNode(nil) = %d", got)
	}
}

func TestNearestPointIgnoresScale(t *testing.T) {
	pts := []graph.Point{{X: 0, Y: 0}, {X: 10, Y: 10}}
	if got := NearestPoint(pts, graph.Point{X: 3.9, Y: 0}); got != 0 {
		t.Errorf("NearestPoint within 4 = %d, want 0", got)
	}
	if got := NearestPoint(pts, graph.Point{X: 4, Y: 0}); got != NoHover {
		t.Errorf("NearestPoint at distance 4 = %d, want %d", got, NoHover)
	}
	if got := NearestPoint(nil, graph.Point{}); got != NoHover {
		t.Errorf("NearestPoint(nil) = %d", got)
	}
}
