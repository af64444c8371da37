package main

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"github.com/gogpu/sldview/client"
	"github.com/gogpu/sldview/internal/history"
)

func init() {
	color.NoColor = true
}

// fakeServer serves a tiny drawing through every endpoint.
func fakeServer(t *testing.T) (*httptest.Server, []byte) {
	t.Helper()
	var img bytes.Buffer
	if err := png.Encode(&img, image.NewGray(image.Rect(0, 0, 40, 20))); err != nil {
		t.Fatal(err)
	}
	encoded := base64.StdEncoding.EncodeToString(img.Bytes())

	mux := http.NewServeMux()
	reply := func(v any) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(v)
		}
	}
	mux.HandleFunc(client.PathUploadImage, reply(encoded))
	mux.HandleFunc(client.PathPreprocess, reply(map[string]any{"blur_image": encoded, "binary_image": encoded, "thresh": 0.5}))
	mux.HandleFunc(client.PathGraph, reply(map[string]any{
		"graph_data": map[string]any{
			"nodes":      []map[string]float64{{"x": 1, "y": 1}, {"x": 5, "y": 5}, {"x": 9, "y": 1}},
			"edges":      []map[string]int{{"source": 0, "target": 1}, {"source": 1, "target": 2}},
			"branch_idx": []int{0, 0, -1},
		},
		"base_graph_data": map[string]any{"nodes": []any{}, "edges": []any{}},
		"curves":          []any{},
	}))
	mux.HandleFunc(client.PathVectorize, reply(map[string]any{
		"intersections_pos": [][]float64{{5, 5}},
		"vectorize_points":  [][]float32{{1, 1, 5, 5, 9, 1}},
	}))
	mux.HandleFunc(client.PathExportSVG, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/svg+xml")
		_, _ = w.Write([]byte(`<svg xmlns="http://www.w3.org/2000/svg"/>`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, img.Bytes()
}

// execute runs the CLI with a private config directory.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	serverURL, logLevel, noHistory = "", "", false
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	err := run(ctx, args)
	return out.String(), err
}

func writeDrawing(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "leaf.png")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRender(t *testing.T) {
	srv, data := fakeServer(t)
	in := writeDrawing(t, data)
	outPath := filepath.Join(t.TempDir(), "layers.png")

	out, err := execute(t, "render", in, "-o", outPath, "--server", srv.URL,
		"--width", "120", "--height", "80", "--no-history", "--trace")
	if err != nil {
		t.Fatalf("render error = %v\n%s", err, out)
	}

	f, err := os.Open(outPath)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 120 || b.Dy() != 80 {
		t.Errorf("output size = %v, want 120x80", b.Size())
	}
	for _, want := range []string{"leaf", "3 nodes, 2 edges", "curve"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderRejectsNonImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := execute(t, "render", path, "--no-history", "--server", "http://127.0.0.1:1"); err == nil {
		t.Error("render of a text file succeeded, want error")
	}
}

func TestExportRecordsHistory(t *testing.T) {
	srv, data := fakeServer(t)
	in := writeDrawing(t, data)
	dir := t.TempDir()

	out, err := execute(t, "export", in, "-d", dir, "--server", srv.URL)
	if err != nil {
		t.Fatalf("export error = %v\n%s", err, out)
	}
	svg, err := os.ReadFile(filepath.Join(dir, "leaf.svg"))
	if err != nil {
		t.Fatalf("read exported svg: %v", err)
	}
	if !strings.HasPrefix(string(svg), "<svg") {
		t.Errorf("svg = %q, want the served document", svg)
	}

	store, err := history.Open(cfg.HistoryPath())
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()
	runs, err := store.List(context.Background(), -1)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) == 0 || runs[0].Stage != history.StageExport || runs[0].Sample != "leaf" {
		t.Errorf("latest run = %+v, want export of leaf", runs)
	}
}

func TestConfigShowAppliesFlags(t *testing.T) {
	out, err := execute(t, "config", "show", "--server", "http://example.test:9000", "--log-level", "debug")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, `url = "http://example.test:9000"`) {
		t.Errorf("config show missing server override:\n%s", out)
	}
	if !strings.Contains(out, `level = "debug"`) {
		t.Errorf("config show missing log level override:\n%s", out)
	}
}

func TestBadLogLevel(t *testing.T) {
	if _, err := execute(t, "config", "path", "--log-level", "loud"); err == nil {
		t.Error("unknown log level accepted")
	}
}

func TestHistoryEmpty(t *testing.T) {
	out, err := execute(t, "history")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "No runs recorded yet") {
		t.Errorf("history output = %q, want empty notice", out)
	}
}
