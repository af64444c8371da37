package view

// NoHover is the hovered index when nothing is under the pointer.
const NoHover = -1

// Pointer is the transient pointer state of the canvas.
type Pointer struct {
	Dragging    bool
	LastX       float64
	LastY       float64
	MouseX      float64
	MouseY      float64
	HoveredNode int
}

// NewPointer returns a pointer with nothing hovered.
func NewPointer() Pointer {
	return Pointer{HoveredNode: NoHover}
}

// Press starts a drag at (x, y).
func (p *Pointer) Press(x, y float64) {
	p.Dragging = true
	p.LastX, p.LastY = x, y
}

// Move records the pointer position and returns the drag delta since the
// last position, or ok=false when not dragging.
func (p *Pointer) Move(x, y float64) (dx, dy float64, ok bool) {
	p.MouseX, p.MouseY = x, y
	if !p.Dragging {
		return 0, 0, false
	}
	dx, dy = x-p.LastX, y-p.LastY
	p.LastX, p.LastY = x, y
	return dx, dy, true
}

// Release ends a drag.
func (p *Pointer) Release() {
	p.Dragging = false
}

// Leave ends a drag and clears the hovered node.
func (p *Pointer) Leave() {
	p.Dragging = false
	p.HoveredNode = NoHover
}

// View is the full view state: the live transform, the default fitted to
// the current image and the pointer.
type View struct {
	Transform
	Default Transform
	Pointer Pointer
}

// New returns a view at identity with nothing hovered.
func New() *View {
	return &View{Transform: Identity, Default: Identity, Pointer: NewPointer()}
}

// SetDefault records the fitted transform restored by Reset.
func (v *View) SetDefault(t Transform) {
	v.Default = t
}

// Reset restores the default transform.
func (v *View) Reset() {
	v.Transform = v.Default
}
