package gpu

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/sldview/internal/shader"
)

// CommandType identifies the type of a recorded device command.
type CommandType uint8

const (
	CmdCreateBuffer  CommandType = iota // Allocate a buffer
	CmdWriteBuffer                      // Upload buffer contents
	CmdDestroyBuffer                    // Release a buffer
	CmdClear                            // Clear the framebuffer
	CmdDraw                             // Execute a draw call
)

// commandTypeNames maps CommandType values to their string representation.
var commandTypeNames = [...]string{
	CmdCreateBuffer:  "CreateBuffer",
	CmdWriteBuffer:   "WriteBuffer",
	CmdDestroyBuffer: "DestroyBuffer",
	CmdClear:         "Clear",
	CmdDraw:          "Draw",
}

// String returns the string representation of a CommandType.
func (c CommandType) String() string {
	if int(c) < len(commandTypeNames) {
		return commandTypeNames[c]
	}
	return "Unknown"
}

// Command is one recorded device operation.
type Command struct {
	Type   CommandType
	Buffer BufferID
	Label  string
	// Len is the float count written by CmdWriteBuffer.
	Len int
	// Draw is set for CmdDraw.
	Draw *DrawCall
}

// Recorder is a Device that records every command. When an inner device
// is set, commands are forwarded to it and its errors are returned.
type Recorder struct {
	bufferStore
	inner    Device
	width    int
	height   int
	commands []Command
	// innerIDs maps recorder ids to inner device ids.
	innerIDs map[BufferID]BufferID
}

// NewRecorder returns a recorder with the given viewport and no inner
// device.
func NewRecorder(width, height int) *Recorder {
	return &Recorder{width: width, height: height}
}

// Wrap returns a recorder forwarding to inner.
func Wrap(inner Device) *Recorder {
	w, h := inner.Viewport()
	return &Recorder{inner: inner, width: w, height: h, innerIDs: make(map[BufferID]BufferID)}
}

// CreateBuffer implements Device.
func (r *Recorder) CreateBuffer(label string, usage gputypes.BufferUsage) BufferID {
	id := r.create(label, usage)
	if r.inner != nil {
		r.innerIDs[id] = r.inner.CreateBuffer(label, usage)
	}
	r.commands = append(r.commands, Command{Type: CmdCreateBuffer, Buffer: id, Label: label})
	return id
}

// WriteBuffer implements Device.
func (r *Recorder) WriteBuffer(id BufferID, data []float32) error {
	if err := r.write(id, data); err != nil {
		return err
	}
	r.commands = append(r.commands, Command{Type: CmdWriteBuffer, Buffer: id, Label: r.buffers[id].label, Len: len(data)})
	if r.inner != nil {
		return r.inner.WriteBuffer(r.innerIDs[id], data)
	}
	return nil
}

// DestroyBuffer implements Device.
func (r *Recorder) DestroyBuffer(id BufferID) {
	r.destroy(id)
	r.commands = append(r.commands, Command{Type: CmdDestroyBuffer, Buffer: id})
	if r.inner != nil {
		if iid, ok := r.innerIDs[id]; ok {
			r.inner.DestroyBuffer(iid)
			delete(r.innerIDs, id)
		}
	}
}

// Viewport implements Device.
func (r *Recorder) Viewport() (int, int) {
	if r.inner != nil {
		return r.inner.Viewport()
	}
	return r.width, r.height
}

// Clear implements Device.
func (r *Recorder) Clear() {
	r.commands = append(r.commands, Command{Type: CmdClear})
	if r.inner != nil {
		r.inner.Clear()
	}
}

// Draw implements Device. The call is validated against the recorded
// buffers before it is recorded.
func (r *Recorder) Draw(call DrawCall) error {
	if _, err := r.bind(call); err != nil {
		return err
	}
	c := call
	c.Buffers = append([]BufferID(nil), call.Buffers...)
	r.commands = append(r.commands, Command{Type: CmdDraw, Label: call.Program.Label, Draw: &c})
	if r.inner == nil {
		return nil
	}
	fwd := call
	fwd.Buffers = make([]BufferID, len(call.Buffers))
	for i, id := range call.Buffers {
		fwd.Buffers[i] = r.innerIDs[id]
	}
	return r.inner.Draw(fwd)
}

// Commands returns the recorded commands.
func (r *Recorder) Commands() []Command {
	return r.commands
}

// Draws returns the recorded draw calls, optionally filtered by program kind.
func (r *Recorder) Draws(kinds ...shader.Kind) []DrawCall {
	var out []DrawCall
	for _, c := range r.commands {
		if c.Type != CmdDraw {
			continue
		}
		if len(kinds) == 0 || containsKind(kinds, c.Draw.Program.Kind) {
			out = append(out, *c.Draw)
		}
	}
	return out
}

// Data returns the current contents of a recorded buffer.
func (r *Recorder) Data(id BufferID) []float32 {
	b, err := r.get(id)
	if err != nil {
		return nil
	}
	return b.data
}

// Reset discards recorded commands. Buffers are kept.
func (r *Recorder) Reset() {
	r.commands = r.commands[:0]
}

func containsKind(kinds []shader.Kind, k shader.Kind) bool {
	for _, x := range kinds {
		if x == k {
			return true
		}
	}
	return false
}

var _ Device = (*Recorder)(nil)
