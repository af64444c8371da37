package client

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gogpu/sldview/internal/graph"
)

func pngBase64(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, w, h))
	img.SetGray(0, 0, color.Gray{Y: 200})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode() error = %v", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes())
}

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := New(srv.URL, WithTimeout(5*time.Second))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return c
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Errorf("encode response: %v", err)
	}
}

func TestNewRejectsBadURL(t *testing.T) {
	for _, u := range []string{"", "ftp://host", "::bad"} {
		if _, err := New(u); err == nil {
			t.Errorf("New(%q) error = nil, want error", u)
		}
	}
}

func TestNewTrimsSlash(t *testing.T) {
	c, err := New("http://localhost:5000/")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if got := c.BaseURL(); got != "http://localhost:5000" {
		t.Errorf("BaseURL() = %q, want %q", got, "http://localhost:5000")
	}
}

func TestUploadImage(t *testing.T) {
	payload := []byte("\x89PNG fake bytes")
	encoded := pngBase64(t, 3, 2)
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != PathUploadImage {
			t.Errorf("request = %s %s, want POST %s", r.Method, r.URL.Path, PathUploadImage)
		}
		f, hdr, err := r.FormFile("file")
		if err != nil {
			t.Errorf("FormFile(file) error = %v", err)
			return
		}
		defer f.Close()
		got, _ := io.ReadAll(f)
		if !bytes.Equal(got, payload) {
			t.Errorf("uploaded bytes = %q, want %q", got, payload)
		}
		if hdr.Filename != "sample.png" {
			t.Errorf("filename = %q, want sample.png", hdr.Filename)
		}
		writeJSON(t, w, encoded)
	})

	img, err := c.UploadImage(context.Background(), "sample.png", payload)
	if err != nil {
		t.Fatalf("UploadImage() error = %v", err)
	}
	if b := img.Bounds(); b.Dx() != 3 || b.Dy() != 2 {
		t.Errorf("image size = %dx%d, want 3x2", b.Dx(), b.Dy())
	}
}

func TestPreprocess(t *testing.T) {
	blur := pngBase64(t, 4, 4)
	binary := pngBase64(t, 4, 4)

	tests := []struct {
		name       string
		sigma      float64
		thresh     float64
		respThresh float64
	}{
		{"manual", 1.5, 0.4, 0.4},
		{"automatic", 0, AutoThreshold, 0.37},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				var req preprocessRequest
				if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
					t.Errorf("decode request: %v", err)
				}
				if req.Sigma != tt.sigma || req.Thresh != tt.thresh {
					t.Errorf("request = %+v, want sigma %v thresh %v", req, tt.sigma, tt.thresh)
				}
				writeJSON(t, w, map[string]any{
					"blur_image":   blur,
					"binary_image": binary,
					"thresh":       tt.respThresh,
				})
			})
			res, err := c.Preprocess(context.Background(), tt.sigma, tt.thresh)
			if err != nil {
				t.Fatalf("Preprocess() error = %v", err)
			}
			if res.Thresh != tt.respThresh {
				t.Errorf("Thresh = %v, want %v", res.Thresh, tt.respThresh)
			}
			if res.Blur == nil || res.Binary == nil {
				t.Errorf("Blur, Binary = %v, %v, want both decoded", res.Blur, res.Binary)
			}
		})
	}
}

func TestPreprocessMissingField(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]any{"blur_image": pngBase64(t, 1, 1)})
	})
	_, err := c.Preprocess(context.Background(), 0, 0)
	if !errors.Is(err, ErrMalformedResponse) {
		t.Errorf("Preprocess() error = %v, want ErrMalformedResponse", err)
	}
}

func TestGraphDenormalizesEdges(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req stateRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if !req.State {
			t.Errorf("state = false, want true")
		}
		writeJSON(t, w, map[string]any{
			"graph_data": map[string]any{
				"nodes":      []map[string]float64{{"x": 0, "y": 0}, {"x": 10, "y": 0}, {"x": 10, "y": 5}},
				"edges":      []map[string]int{{"source": 0, "target": 1}, {"source": 1, "target": 2}},
				"branch_idx": []int{0, 0, -1},
			},
			"base_graph_data": map[string]any{
				"nodes": []map[string]float64{{"x": 1, "y": 2}},
				"edges": []map[string]int{},
			},
			"curves": [][][][]float64{
				{{{0, 0}, {1, 1}, {2, 1}, {3, 0}}},
			},
		})
	})

	res, err := c.Graph(context.Background(), true)
	if err != nil {
		t.Fatalf("Graph() error = %v", err)
	}
	wantEdges := []float32{0, 0, 10, 0, 10, 0, 10, 5}
	if len(res.Graph.Edges) != len(wantEdges) {
		t.Fatalf("Edges = %v, want %v", res.Graph.Edges, wantEdges)
	}
	for i := range wantEdges {
		if res.Graph.Edges[i] != wantEdges[i] {
			t.Errorf("Edges[%d] = %v, want %v", i, res.Graph.Edges[i], wantEdges[i])
		}
	}
	if got := res.Graph.BranchIndex; got[0] != 0 || got[2] != graph.Unbranched {
		t.Errorf("BranchIndex = %v, want [0 0 -1]", got)
	}
	if got := res.Base.BranchIndex; len(got) != 1 || got[0] != 0 {
		t.Errorf("base BranchIndex = %v, want [0]", got)
	}
	if len(res.Curves) != 1 || len(res.Curves[0]) != 1 {
		t.Fatalf("Curves = %v, want one curve of one segment", res.Curves)
	}
	if p := res.Curves[0][0][3]; p != (graph.Point{X: 3, Y: 0}) {
		t.Errorf("Curves[0][0][3] = %v, want {3 0}", p)
	}
}

func TestGraphEmpty(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]any{
			"graph_data":      map[string]any{"nodes": []any{}, "edges": []any{}, "branch_idx": []int{}},
			"base_graph_data": map[string]any{"nodes": []any{}, "edges": []any{}},
			"curves":          []any{},
		})
	})
	res, err := c.Graph(context.Background(), false)
	if err != nil {
		t.Fatalf("Graph() error = %v", err)
	}
	if res.Graph.NodeCount() != 0 || res.Graph.EdgeCount() != 0 {
		t.Errorf("counts = %d, %d, want 0, 0", res.Graph.NodeCount(), res.Graph.EdgeCount())
	}
}

func TestGraphMalformed(t *testing.T) {
	tests := []struct {
		name string
		body map[string]any
	}{
		{"missing graph_data", map[string]any{"base_graph_data": map[string]any{}}},
		{"edge out of range", map[string]any{
			"graph_data": map[string]any{
				"nodes": []map[string]float64{{"x": 0, "y": 0}},
				"edges": []map[string]int{{"source": 0, "target": 3}},
			},
			"base_graph_data": map[string]any{},
		}},
		{"short segment", map[string]any{
			"graph_data":      map[string]any{},
			"base_graph_data": map[string]any{},
			"curves":          [][][][]float64{{{{0, 0}, {1, 1}}}},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(t, w, tt.body)
			})
			_, err := c.Graph(context.Background(), false)
			if !errors.Is(err, ErrMalformedResponse) {
				t.Errorf("Graph() error = %v, want ErrMalformedResponse", err)
			}
		})
	}
}

func TestGraphOutOfRangeWrapsInvalidGraph(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]any{
			"graph_data": map[string]any{
				"nodes": []map[string]float64{{"x": 0, "y": 0}},
				"edges": []map[string]int{{"source": -1, "target": 0}},
			},
			"base_graph_data": map[string]any{},
		})
	})
	_, err := c.Graph(context.Background(), false)
	if !errors.Is(err, graph.ErrInvalidGraph) {
		t.Errorf("Graph() error = %v, want graph.ErrInvalidGraph", err)
	}
}

func TestUpdateGraph(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Nodes         []int  `json:"nodes"`
			SelectionType string `json:"selectionType"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.SelectionType != "branch" {
			t.Errorf("selectionType = %q, want branch", req.SelectionType)
		}
		if len(req.Nodes) != 3 || req.Nodes[1] != 1 {
			t.Errorf("nodes = %v, want [0 1 0]", req.Nodes)
		}
		writeJSON(t, w, map[string]any{
			"graph_data": map[string]any{
				"nodes":      []map[string]float64{{"x": 1, "y": 1}, {"x": 2, "y": 2}},
				"edges":      []map[string]int{{"source": 0, "target": 1}},
				"branch_idx": []int{-1, -1},
			},
		})
	})

	mask := graph.SelectionMask{0, 1, 0}
	g, err := c.UpdateGraph(context.Background(), EncodeMask(mask), SelectBranch)
	if err != nil {
		t.Fatalf("UpdateGraph() error = %v", err)
	}
	if g.NodeCount() != 2 || g.EdgeCount() != 1 {
		t.Errorf("counts = %d, %d, want 2, 1", g.NodeCount(), g.EdgeCount())
	}
}

func TestUpdateGraphRejectsUnknownType(t *testing.T) {
	c, _ := New("http://localhost:1")
	if _, err := c.UpdateGraph(context.Background(), nil, "edge"); err == nil {
		t.Error("UpdateGraph(edge) error = nil, want error")
	}
}

func TestVectorize(t *testing.T) {
	body := map[string]any{
		"intersections_pos": [][]float64{{1, 2}, {3, 4}},
		"vectorize_points":  [][]float32{{0, 0, 1, 1, 2, 0}, {5, 5}},
	}
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case PathVectorize:
			var req stateRequest
			_ = json.NewDecoder(r.Body).Decode(&req)
		case PathUpdateVectorize:
			var req vectorRequest
			_ = json.NewDecoder(r.Body).Decode(&req)
			if req.Intersection != 1 {
				t.Errorf("intersection = %d, want 1", req.Intersection)
			}
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		writeJSON(t, w, body)
	})

	for _, call := range []func() (*VectorResult, error){
		func() (*VectorResult, error) { return c.Vectorize(context.Background(), false) },
		func() (*VectorResult, error) { return c.UpdateVectorize(context.Background(), 1) },
	} {
		res, err := call()
		if err != nil {
			t.Fatalf("vectorize error = %v", err)
		}
		if len(res.Intersections) != 2 || res.Intersections[1] != (graph.Point{X: 3, Y: 4}) {
			t.Errorf("Intersections = %v, want [{1 2} {3 4}]", res.Intersections)
		}
		if len(res.Curves) != 2 || len(res.Curves[0]) != 6 {
			t.Errorf("Curves = %v, want 2 curves", res.Curves)
		}
	}
}

func TestVectorizeOddCoordinates(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]any{
			"intersections_pos": [][]float64{},
			"vectorize_points":  [][]float32{{1, 2, 3}},
		})
	})
	if _, err := c.Vectorize(context.Background(), false); !errors.Is(err, ErrMalformedResponse) {
		t.Errorf("Vectorize() error = %v, want ErrMalformedResponse", err)
	}
}

func TestVectorizeNestedPointsRejected(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]any{
			"intersections_pos": [][]float64{},
			"vectorize_points":  [][][]float32{{{0, 0}, {1, 1}}},
		})
	})
	if _, err := c.Vectorize(context.Background(), false); !errors.Is(err, ErrMalformedResponse) {
		t.Errorf("Vectorize() error = %v, want ErrMalformedResponse", err)
	}
}

func TestExportSVG(t *testing.T) {
	const svg = `<svg xmlns="http://www.w3.org/2000/svg"></svg>`
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("method = %s, want GET", r.Method)
		}
		w.Header().Set("Content-Type", "image/svg+xml")
		_, _ = io.WriteString(w, svg)
	})
	got, err := c.ExportSVG(context.Background())
	if err != nil {
		t.Fatalf("ExportSVG() error = %v", err)
	}
	if string(got) != svg {
		t.Errorf("ExportSVG() = %q, want %q", got, svg)
	}
}

func TestUnexpectedStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	_, err := c.Vectorize(context.Background(), false)
	if !errors.Is(err, ErrUnexpectedStatus) {
		t.Errorf("Vectorize() error = %v, want ErrUnexpectedStatus", err)
	}
}

func TestMalformedJSON(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "{not json")
	})
	_, err := c.Vectorize(context.Background(), false)
	if !errors.Is(err, ErrMalformedResponse) {
		t.Errorf("Vectorize() error = %v, want ErrMalformedResponse", err)
	}
}

func TestContextCanceled(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := c.ExportSVG(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("ExportSVG() error = %v, want context.Canceled", err)
	}
}

func TestDecodeImageDataURL(t *testing.T) {
	img, err := decodeImage("data:image/png;base64," + pngBase64(t, 2, 2))
	if err != nil {
		t.Fatalf("decodeImage() error = %v", err)
	}
	if img.Bounds().Dx() != 2 {
		t.Errorf("width = %d, want 2", img.Bounds().Dx())
	}
	if _, err := decodeImage(""); err == nil {
		t.Error("decodeImage(\"\") error = nil, want error")
	}
}
