// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package shader defines the point, edge and curve programs used to draw
// skeleton graphs and fitted curves.
//
// Each program carries its WGSL source, the SPIR-V compiled from it by
// naga, the vertex buffer layout and primitive state a GPU pipeline needs,
// and CPU stage functions that evaluate the same math for the software
// device.
package shader

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga"

	"github.com/gogpu/sldview/internal/cache"
	"github.com/gogpu/sldview/internal/color"
)

// Kind identifies what a program draws.
type Kind uint8

const (
	KindPoint Kind = iota // graph nodes, one quad per node
	KindEdge              // graph edges, line list
	KindCurve             // fitted curves, triangle strip
)

var kindNames = [...]string{
	KindPoint: "point",
	KindEdge:  "edge",
	KindCurve: "curve",
}

// String returns the string representation of a Kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Variant selects hover highlighting for point programs.
type Variant uint8

const (
	// Highlightable points brighten and grow when they or their branch
	// are hovered.
	Highlightable Variant = iota
	// Plain points ignore hover state.
	Plain
)

// String returns the string representation of a Variant.
func (v Variant) String() string {
	switch v {
	case Highlightable:
		return "highlightable"
	case Plain:
		return "plain"
	}
	return "unknown"
}

// Vertex strides in bytes.
const (
	positionStride = 8
	scalarStride   = 4
)

// PointVertices is the number of vertices emitted per point quad.
const PointVertices = 6

// Program is a compiled draw program.
type Program struct {
	Label   string
	Kind    Kind
	Variant Variant

	// Color is the base colour; for edges it is the line colour.
	Color color.RGB

	WGSL  string
	SPIRV []byte

	Layout    []gputypes.VertexBufferLayout
	Primitive gputypes.PrimitiveState
	Blend     *gputypes.BlendState
}

// NewPointProgram returns a program drawing nodes as discs of the base
// colour; selected nodes use color.Selected.
func NewPointProgram(label string, base color.RGB, v Variant) *Program {
	p := &Program{
		Label:   label,
		Kind:    KindPoint,
		Variant: v,
		Color:   base,
		Layout: []gputypes.VertexBufferLayout{
			{
				ArrayStride: positionStride,
				StepMode:    gputypes.VertexStepModeInstance,
				Attributes:  []gputypes.VertexAttribute{{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0}},
			},
			{
				ArrayStride: scalarStride,
				StepMode:    gputypes.VertexStepModeInstance,
				Attributes:  []gputypes.VertexAttribute{{Format: gputypes.VertexFormatFloat32, Offset: 0, ShaderLocation: 1}}, // index
			},
			{
				ArrayStride: scalarStride,
				StepMode:    gputypes.VertexStepModeInstance,
				Attributes:  []gputypes.VertexAttribute{{Format: gputypes.VertexFormatFloat32, Offset: 0, ShaderLocation: 2}}, // branch
			},
			{
				ArrayStride: scalarStride,
				StepMode:    gputypes.VertexStepModeInstance,
				Attributes:  []gputypes.VertexAttribute{{Format: gputypes.VertexFormatFloat32, Offset: 0, ShaderLocation: 3}}, // selected
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Blend: premultiplied(),
	}
	p.WGSL = pointSource(base, v)
	return p
}

// NewEdgeProgram returns a program drawing edges as solid lines.
func NewEdgeProgram(label string, c color.RGB) *Program {
	p := &Program{
		Label: label,
		Kind:  KindEdge,
		Color: c,
		Layout: []gputypes.VertexBufferLayout{
			{
				ArrayStride: positionStride,
				StepMode:    gputypes.VertexStepModeVertex,
				Attributes:  []gputypes.VertexAttribute{{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0}},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyLineList,
			CullMode: gputypes.CullModeNone,
		},
	}
	p.WGSL = edgeSource(c)
	return p
}

// NewCurveProgram returns a program drawing a curve strip coloured by the
// repeat gradient.
func NewCurveProgram(label string) *Program {
	p := &Program{
		Label: label,
		Kind:  KindCurve,
		Layout: []gputypes.VertexBufferLayout{
			{
				ArrayStride: positionStride,
				StepMode:    gputypes.VertexStepModeVertex,
				Attributes:  []gputypes.VertexAttribute{{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0}},
			},
			{
				ArrayStride: scalarStride,
				StepMode:    gputypes.VertexStepModeVertex,
				Attributes:  []gputypes.VertexAttribute{{Format: gputypes.VertexFormatFloat32, Offset: 0, ShaderLocation: 1}}, // t
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleStrip,
			CullMode: gputypes.CullModeNone,
		},
		Blend: premultiplied(),
	}
	p.WGSL = curveSource()
	return p
}

// compiled holds SPIR-V by WGSL source.
var compiled = cache.New[string, []byte](32)

// Compile compiles the WGSL source to SPIR-V with naga. Programs with the
// same source share one compilation.
func (p *Program) Compile() error {
	if spirv, ok := compiled.Get(p.WGSL); ok {
		p.SPIRV = spirv
		return nil
	}
	spirv, err := naga.Compile(p.WGSL)
	if err != nil {
		return fmt.Errorf("shader: compile %s (%s): %w", p.Label, p.Kind, err)
	}
	compiled.Set(p.WGSL, spirv)
	p.SPIRV = spirv
	return nil
}

// CacheStats reports the compilation cache.
func CacheStats() cache.Stats {
	return compiled.Stats()
}

// Compiled reports whether SPIR-V is available.
func (p *Program) Compiled() bool {
	return len(p.SPIRV) > 0
}

// Buffers returns the number of vertex buffers the program binds.
func (p *Program) Buffers() int {
	return len(p.Layout)
}

func premultiplied() *gputypes.BlendState {
	b := gputypes.BlendStatePremultiplied()
	return &b
}
