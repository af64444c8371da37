package shader

import (
	"encoding/binary"
	"math"
)

// NoBranch is the hovered branch value that matches no node. Unbranched
// nodes carry -1, so -1 cannot be used.
const NoBranch = -2

// Uniforms are the per-draw values shared by every program. Field order
// matches the WGSL struct.
type Uniforms struct {
	Resolution    [2]float32
	Translation   [2]float32
	Mouse         [2]float32
	Scale         float32
	PointSize     float32
	HoveredIndex  float32
	HoveredBranch float32
	ColorScale    float32
	CurveIndex    float32
}

// UniformSize is the byte size of the uniform block.
const UniformSize = 48

// Bytes encodes the uniforms in the little-endian std140-compatible layout.
func (u Uniforms) Bytes() []byte {
	vals := []float32{
		u.Resolution[0], u.Resolution[1],
		u.Translation[0], u.Translation[1],
		u.Mouse[0], u.Mouse[1],
		u.Scale, u.PointSize,
		u.HoveredIndex, u.HoveredBranch,
		u.ColorScale, u.CurveIndex,
	}
	buf := make([]byte, UniformSize)
	for i, v := range vals {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return buf
}
