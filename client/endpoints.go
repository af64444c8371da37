package client

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // upload responses may echo JPEG sources
	_ "image/png"
	"net/http"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/gogpu/sldview/internal/graph"
)

// AutoThreshold asks the server to pick the binarization threshold.
const AutoThreshold = 2.0

// SelectionType tells /update_graph how to interpret the mask.
type SelectionType string

// Selection types.
const (
	SelectNode   SelectionType = "node"
	SelectBranch SelectionType = "branch"
)

// PreprocessResult is the outcome of /preprocess.
type PreprocessResult struct {
	Blur   image.Image
	Binary image.Image
	Thresh float64
}

// GraphResult is the outcome of /graph.
type GraphResult struct {
	Graph  *graph.Graph
	Base   *graph.Graph
	Curves []graph.BezierCurve
}

// VectorResult is the outcome of /vectorize and /update_vectorize.
type VectorResult struct {
	Intersections []graph.Point
	// Curves holds one flattened triangle-strip point list per curve.
	Curves [][]float32
}

type wireNode struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type wireEdge struct {
	Source int `json:"source"`
	Target int `json:"target"`
}

type wireGraph struct {
	Nodes     []wireNode `json:"nodes"`
	Edges     []wireEdge `json:"edges"`
	BranchIdx []int      `json:"branch_idx"`
}

type preprocessRequest struct {
	Sigma  float64 `json:"sigma"`
	Thresh float64 `json:"thresh"`
}

type preprocessResponse struct {
	BlurImage   string   `json:"blur_image"`
	BinaryImage string   `json:"binary_image"`
	Thresh      *float64 `json:"thresh"`
}

type stateRequest struct {
	State bool `json:"state"`
}

type graphResponse struct {
	GraphData     *wireGraph      `json:"graph_data"`
	BaseGraphData *wireGraph      `json:"base_graph_data"`
	Curves        [][][][]float64 `json:"curves"`
}

type updateGraphRequest struct {
	Nodes         []int         `json:"nodes"`
	SelectionType SelectionType `json:"selectionType"`
}

type vectorRequest struct {
	Intersection int `json:"intersection"`
}

type vectorResponse struct {
	IntersectionsPos [][]float64 `json:"intersections_pos"`
	VectorizePoints  [][]float32 `json:"vectorize_points"`
}

// UploadImage sends the image file and returns the decoded image the
// server will work on.
func (c *Client) UploadImage(ctx context.Context, filename string, data []byte) (image.Image, error) {
	body, contentType, err := multipartBody("file", filename, data)
	if err != nil {
		return nil, fmt.Errorf("client: %s: build form: %w", PathUploadImage, err)
	}
	var encoded string
	if err := c.do(ctx, http.MethodPost, PathUploadImage, contentType, body, &encoded); err != nil {
		return nil, err
	}
	img, err := decodeImage(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedResponse, PathUploadImage, err)
	}
	return img, nil
}

// Preprocess blurs with sigma and thresholds with thresh. Pass
// AutoThreshold to let the server choose; the chosen value is returned.
func (c *Client) Preprocess(ctx context.Context, sigma, thresh float64) (*PreprocessResult, error) {
	var resp preprocessResponse
	if err := c.postJSON(ctx, PathPreprocess, preprocessRequest{Sigma: sigma, Thresh: thresh}, &resp); err != nil {
		return nil, err
	}
	if resp.BlurImage == "" || resp.BinaryImage == "" || resp.Thresh == nil {
		return nil, fmt.Errorf("%w: %s: missing blur_image, binary_image or thresh", ErrMalformedResponse, PathPreprocess)
	}

	res := &PreprocessResult{Thresh: *resp.Thresh}
	var g errgroup.Group
	g.Go(func() error {
		img, err := decodeImage(resp.BlurImage)
		res.Blur = img
		return err
	})
	g.Go(func() error {
		img, err := decodeImage(resp.BinaryImage)
		res.Binary = img
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedResponse, PathPreprocess, err)
	}
	return res, nil
}

// Graph runs the medial axis extraction.
func (c *Client) Graph(ctx context.Context, multipleLines bool) (*GraphResult, error) {
	var resp graphResponse
	if err := c.postJSON(ctx, PathGraph, stateRequest{State: multipleLines}, &resp); err != nil {
		return nil, err
	}
	if resp.GraphData == nil || resp.BaseGraphData == nil {
		return nil, fmt.Errorf("%w: %s: missing graph_data or base_graph_data", ErrMalformedResponse, PathGraph)
	}
	g, err := resp.GraphData.graph(true)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: graph_data: %w", ErrMalformedResponse, PathGraph, err)
	}
	base, err := resp.BaseGraphData.graph(false)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: base_graph_data: %w", ErrMalformedResponse, PathGraph, err)
	}
	curves, err := bezierCurves(resp.Curves)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: curves: %w", ErrMalformedResponse, PathGraph, err)
	}
	return &GraphResult{Graph: g, Base: base, Curves: curves}, nil
}

// UpdateGraph splits the selected node or merges the selected branch.
// mask holds one 0/1 entry per node of the current working graph.
func (c *Client) UpdateGraph(ctx context.Context, mask []int, kind SelectionType) (*graph.Graph, error) {
	if kind != SelectNode && kind != SelectBranch {
		return nil, fmt.Errorf("client: %s: unknown selection type %q", PathUpdateGraph, kind)
	}
	if mask == nil {
		mask = []int{}
	}
	var resp graphResponse
	if err := c.postJSON(ctx, PathUpdateGraph, updateGraphRequest{Nodes: mask, SelectionType: kind}, &resp); err != nil {
		return nil, err
	}
	if resp.GraphData == nil {
		return nil, fmt.Errorf("%w: %s: missing graph_data", ErrMalformedResponse, PathUpdateGraph)
	}
	g, err := resp.GraphData.graph(true)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrMalformedResponse, PathUpdateGraph, err)
	}
	return g, nil
}

// Vectorize fits curves to the current graph.
func (c *Client) Vectorize(ctx context.Context, multipleLines bool) (*VectorResult, error) {
	var resp vectorResponse
	if err := c.postJSON(ctx, PathVectorize, stateRequest{State: multipleLines}, &resp); err != nil {
		return nil, err
	}
	return resp.result(PathVectorize)
}

// UpdateVectorize resolves the intersection at index and refits.
func (c *Client) UpdateVectorize(ctx context.Context, index int) (*VectorResult, error) {
	var resp vectorResponse
	if err := c.postJSON(ctx, PathUpdateVectorize, vectorRequest{Intersection: index}, &resp); err != nil {
		return nil, err
	}
	return resp.result(PathUpdateVectorize)
}

// ExportSVG returns the SVG document for the current vectorization.
func (c *Client) ExportSVG(ctx context.Context) ([]byte, error) {
	var svg []byte
	if err := c.do(ctx, http.MethodGet, PathExportSVG, "", nil, &svg); err != nil {
		return nil, err
	}
	return svg, nil
}

func (w *wireGraph) graph(branchAware bool) (*graph.Graph, error) {
	nodes := make([]graph.Point, len(w.Nodes))
	for i, n := range w.Nodes {
		nodes[i] = graph.Point{X: n.X, Y: n.Y}
	}
	edges := make([]graph.IndexedEdge, len(w.Edges))
	for i, e := range w.Edges {
		edges[i] = graph.IndexedEdge{Source: e.Source, Target: e.Target}
	}
	if !branchAware {
		g, err := graph.New(nodes, edges, nil)
		if err != nil {
			return nil, err
		}
		return g.WithBranch(0), nil
	}
	return graph.New(nodes, edges, w.BranchIdx)
}

func (r *vectorResponse) result(path string) (*VectorResult, error) {
	if r.IntersectionsPos == nil && r.VectorizePoints == nil {
		return nil, fmt.Errorf("%w: %s: missing intersections_pos and vectorize_points", ErrMalformedResponse, path)
	}
	res := &VectorResult{
		Intersections: make([]graph.Point, 0, len(r.IntersectionsPos)),
		Curves:        make([][]float32, 0, len(r.VectorizePoints)),
	}
	for i, p := range r.IntersectionsPos {
		if len(p) < 2 {
			return nil, fmt.Errorf("%w: %s: intersection %d has %d coordinates", ErrMalformedResponse, path, i, len(p))
		}
		res.Intersections = append(res.Intersections, graph.Point{X: p[0], Y: p[1]})
	}
	for i, pts := range r.VectorizePoints {
		if len(pts)%2 != 0 {
			return nil, fmt.Errorf("%w: %s: curve %d has odd coordinate count %d", ErrMalformedResponse, path, i, len(pts))
		}
		res.Curves = append(res.Curves, pts)
	}
	return res, nil
}

func bezierCurves(raw [][][][]float64) ([]graph.BezierCurve, error) {
	curves := make([]graph.BezierCurve, 0, len(raw))
	for ci, rc := range raw {
		curve := make(graph.BezierCurve, 0, len(rc))
		for si, rs := range rc {
			if len(rs) != 4 {
				return nil, fmt.Errorf("curve %d segment %d has %d control points", ci, si, len(rs))
			}
			var seg graph.Segment
			for k, p := range rs {
				if len(p) < 2 {
					return nil, fmt.Errorf("curve %d segment %d point %d has %d coordinates", ci, si, k, len(p))
				}
				seg[k] = graph.Point{X: p[0], Y: p[1]}
			}
			curve = append(curve, seg)
		}
		curves = append(curves, curve)
	}
	return curves, nil
}

var errEmptyImage = errors.New("empty image payload")

// decodeImage accepts raw base64 or a data URL.
func decodeImage(s string) (image.Image, error) {
	s = strings.TrimSpace(s)
	if i := strings.Index(s, ";base64,"); strings.HasPrefix(s, "data:") && i >= 0 {
		s = s[i+len(";base64,"):]
	}
	if s == "" {
		return nil, errEmptyImage
	}
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("base64: %w", err)
	}
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}

// EncodeMask converts a selection mask into the wire form.
func EncodeMask(mask graph.SelectionMask) []int {
	return mask.Ints()
}
