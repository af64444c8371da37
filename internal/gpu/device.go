package gpu

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/sldview/internal/shader"
)

// Device errors.
var (
	// ErrUnknownBuffer is returned when a BufferID was never created or has
	// been destroyed.
	ErrUnknownBuffer = errors.New("gpu: unknown buffer")

	// ErrBindingMismatch is returned when a draw call binds a different
	// number of buffers than its program declares.
	ErrBindingMismatch = errors.New("gpu: buffer bindings do not match program layout")

	// ErrDrawRange is returned when a draw call reads past a bound buffer.
	ErrDrawRange = errors.New("gpu: draw range exceeds buffer")
)

// BufferID is an opaque handle to a device buffer.
type BufferID uint64

// InvalidBuffer is the zero value, never returned by CreateBuffer.
const InvalidBuffer BufferID = 0

// Device is a draw target with buffer management.
type Device interface {
	// CreateBuffer allocates an empty buffer.
	CreateBuffer(label string, usage gputypes.BufferUsage) BufferID

	// WriteBuffer replaces the contents of a buffer.
	WriteBuffer(id BufferID, data []float32) error

	// DestroyBuffer releases a buffer. Unknown ids are ignored.
	DestroyBuffer(id BufferID)

	// Viewport returns the framebuffer size in pixels.
	Viewport() (width, height int)

	// Clear resets the framebuffer to transparent.
	Clear()

	// Draw executes a draw call.
	Draw(dc DrawCall) error
}

// DrawCall is one program invocation.
//
// Buffers are bound in the order of the program's vertex layout. For point
// programs First and Count are instances (one per node); otherwise they are
// vertices.
type DrawCall struct {
	Program   *shader.Program
	Buffers   []BufferID
	Uniforms  shader.Uniforms
	First     int
	Count     int
	LineWidth float64
}

// VertexUsage is the usage of vertex buffers written from the CPU.
const VertexUsage = gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst

// buffer is a CPU copy of a device buffer.
type buffer struct {
	label string
	usage gputypes.BufferUsage
	data  []float32
}

// bufferStore implements buffer bookkeeping shared by the devices.
type bufferStore struct {
	next    BufferID
	buffers map[BufferID]*buffer
}

func (s *bufferStore) create(label string, usage gputypes.BufferUsage) BufferID {
	if s.buffers == nil {
		s.buffers = make(map[BufferID]*buffer)
	}
	s.next++
	s.buffers[s.next] = &buffer{label: label, usage: usage}
	return s.next
}

func (s *bufferStore) write(id BufferID, data []float32) error {
	b, ok := s.buffers[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownBuffer, id)
	}
	b.data = append(b.data[:0], data...)
	return nil
}

func (s *bufferStore) destroy(id BufferID) {
	delete(s.buffers, id)
}

func (s *bufferStore) get(id BufferID) (*buffer, error) {
	b, ok := s.buffers[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownBuffer, id)
	}
	return b, nil
}

// Len returns the number of live buffers.
func (s *bufferStore) Len() int {
	return len(s.buffers)
}

// bind resolves the buffers of a draw call and checks that each one holds
// enough elements for the requested range.
func (s *bufferStore) bind(dc DrawCall) ([][]float32, error) {
	if dc.Program == nil || len(dc.Buffers) != dc.Program.Buffers() {
		return nil, ErrBindingMismatch
	}
	if dc.First < 0 || dc.Count < 0 {
		return nil, fmt.Errorf("%w: first=%d count=%d", ErrDrawRange, dc.First, dc.Count)
	}
	out := make([][]float32, len(dc.Buffers))
	for i, id := range dc.Buffers {
		b, err := s.get(id)
		if err != nil {
			return nil, err
		}
		width := componentCount(dc.Program, i)
		if need := (dc.First + dc.Count) * width; need > len(b.data) {
			return nil, fmt.Errorf("%w: %s needs %d floats, has %d", ErrDrawRange, b.label, need, len(b.data))
		}
		out[i] = b.data
	}
	return out, nil
}

// componentCount returns the float count per element of binding i.
func componentCount(p *shader.Program, i int) int {
	return int(p.Layout[i].ArrayStride) / 4
}
