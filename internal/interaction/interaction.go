// Package interaction turns canvas pointer, wheel and drop events into
// view, hover, selection and upload changes.
package interaction

import (
	"errors"
	"io/fs"
	"net/http"
	"strings"

	sldview "github.com/gogpu/sldview"
	"github.com/gogpu/sldview/internal/controls"
	"github.com/gogpu/sldview/internal/graph"
	"github.com/gogpu/sldview/internal/state"
	"github.com/gogpu/sldview/internal/view"
)

// Drop errors. The matching alert has already been shown when they are
// returned.
var (
	ErrMultipleFiles    = errors.New("interaction: more than one file dropped")
	ErrUnsupportedImage = errors.New("interaction: dropped file is not a PNG or JPEG image")
)

// Alert texts.
const (
	AlertMultipleFiles    = "Please drop only one file"
	AlertUnsupportedImage = "Please drop a valid image file\nOnly PNG or JPG are supported"
)

// Target is the application the canvas drives. *app.App implements it.
type Target interface {
	Store() *state.Store
	Controls() *controls.Controls
	Selection() graph.SelectionMask
	RequestDraw()
	Alert(msg string)
	UploadImage(filename string, data []byte) error
	UpdateVectorize(i int) error
}

// File is a dropped file.
type File struct {
	Name string
	Data []byte
}

// Canvas dispatches events to a Target.
type Canvas struct {
	t Target
}

// New returns a canvas driving t.
func New(t Target) *Canvas {
	return &Canvas{t: t}
}

// Wheel zooms at (x, y). A negative deltaY (wheel up) zooms in and a
// zero delta is ignored.
func (c *Canvas) Wheel(x, y, deltaY float64) {
	if deltaY == 0 {
		return
	}
	sign := -1
	if deltaY < 0 {
		sign = 1
	}
	c.t.Store().View.ZoomAt(x, y, sign)
	c.t.RequestDraw()
}

// PointerDown starts a pan drag.
func (c *Canvas) PointerDown(x, y float64) {
	c.t.Store().View.Pointer.Press(x, y)
}

// PointerMove pans while dragging and updates the hovered node and
// intersection.
func (c *Canvas) PointerMove(x, y float64) {
	v := c.t.Store().View
	if dx, dy, ok := v.Pointer.Move(x, y); ok {
		v.Pan(dx, dy)
	}
	c.hover(x, y)
	c.t.RequestDraw()
}

// PointerUp ends a pan drag.
func (c *Canvas) PointerUp() {
	c.t.Store().View.Pointer.Release()
}

// PointerLeave ends a drag and clears the hovered node.
func (c *Canvas) PointerLeave() {
	c.t.Store().View.Pointer.Leave()
	c.t.RequestDraw()
}

func (c *Canvas) hover(x, y float64) {
	s, ctl := c.t.Store(), c.t.Controls()
	m := s.View.ToModel(x, y)

	s.View.Pointer.HoveredNode = view.NoHover
	if ctl.Shown(controls.ShowGraph) {
		s.View.Pointer.HoveredNode = view.NearestNode(s.Graph, m, s.View.Scale)
	}

	s.Intersections.Hovered = view.NoHover
	if ctl.Shown(controls.ShowIntersections) {
		s.Intersections.Hovered = view.NearestPoint(s.Intersections.Points, m)
	}
}

// Click selects the hovered node or branch, and resolves the hovered
// intersection.
func (c *Canvas) Click() error {
	s, ctl := c.t.Store(), c.t.Controls()
	defer c.t.RequestDraw()

	if h := s.View.Pointer.HoveredNode; h >= 0 && h < s.Graph.NodeCount() {
		mask := c.t.Selection()
		if len(mask) == s.Graph.NodeCount() {
			merge, split := Select(s.Graph, mask, h)
			ctl.SetEnabled(controls.MergeBranch, merge)
			ctl.SetEnabled(controls.SplitNode, split)
		}
	}

	// Resolving an intersection would replace a pending vectorization.
	if h := s.Intersections.Hovered; h >= 0 && !ctl.Loading() {
		return c.t.UpdateVectorize(h)
	}
	return nil
}

// Drop validates dropped files and uploads the image. Rejected drops
// alert the user and change nothing.
func (c *Canvas) Drop(files []File) error {
	switch {
	case len(files) == 0:
		return nil
	case len(files) > 1:
		c.t.Alert(AlertMultipleFiles)
		return ErrMultipleFiles
	}
	f := files[0]
	if !IsSupportedImage(f.Data) {
		sldview.Logger().Info("rejected drop", "file", f.Name, "type", http.DetectContentType(f.Data))
		c.t.Alert(AlertUnsupportedImage)
		return ErrUnsupportedImage
	}
	return c.t.UploadImage(f.Name, f.Data)
}

// IsSupportedImage reports whether data sniffs as PNG or JPEG.
func IsSupportedImage(data []byte) bool {
	ct := http.DetectContentType(data)
	return strings.HasPrefix(ct, "image/png") || strings.HasPrefix(ct, "image/jpeg")
}

// ReadDropped reads the entries at the root of fsys, as handed over by a
// window system on drop. Directories are returned without data so that
// Drop rejects them.
func ReadDropped(fsys fs.FS) ([]File, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, err
	}
	files := make([]File, 0, len(entries))
	for _, e := range entries {
		f := File{Name: e.Name()}
		if !e.IsDir() {
			if f.Data, err = fs.ReadFile(fsys, e.Name()); err != nil {
				return nil, err
			}
		}
		files = append(files, f)
	}
	return files, nil
}
