// Package gpu provides the draw devices the graph and curve renderers
// target.
//
// A [Device] owns vertex buffers addressed by opaque [BufferID]s and
// executes [DrawCall]s of [shader.Program]s. Two devices are provided:
//
//   - [SoftwareDevice] rasterizes draw calls onto a gg context by running
//     the CPU stages of each program.
//   - [Recorder] records every device command, optionally forwarding to an
//     inner device. Used for inspection and tests.
package gpu
