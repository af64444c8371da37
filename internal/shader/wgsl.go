package shader

import (
	"fmt"
	"strings"

	"github.com/gogpu/sldview/internal/color"
)

// uniformsWGSL matches the Uniforms struct byte layout.
const uniformsWGSL = `struct Uniforms {
    resolution: vec2<f32>,
    translation: vec2<f32>,
    mouse: vec2<f32>,
    scale: f32,
    point_size: f32,
    hovered_index: f32,
    hovered_branch: f32,
    color_scale: f32,
    curve_index: f32,
}

@group(0) @binding(0) var<uniform> u: Uniforms;

// Model space to clip space, y pointing down on screen.
fn to_clip(p: vec2<f32>) -> vec4<f32> {
    let screen = p * u.scale + u.translation;
    let clip = screen / u.resolution * 2.0 - 1.0;
    return vec4<f32>(clip.x, -clip.y, 0.0, 1.0);
}
`

const pointWGSL = `
struct PointIn {
    @location(0) position: vec2<f32>,
    @location(1) index: f32,
    @location(2) branch: f32,
    @location(3) selected: f32,
}

struct PointOut {
    @builtin(position) position: vec4<f32>,
    @location(0) coord: vec2<f32>,
    @location(1) hovered: f32,
    @location(2) selected: f32,
}

fn quad_corner(vi: u32) -> vec2<f32> {
    let i = vi % 6u;
    var c = vec2<f32>(-1.0, -1.0);
    if (i == 1u || i == 4u) {
        c = vec2<f32>(1.0, -1.0);
    }
    if (i == 2u || i == 3u) {
        c = vec2<f32>(-1.0, 1.0);
    }
    if (i == 5u) {
        c = vec2<f32>(1.0, 1.0);
    }
    return c;
}

@vertex
fn vs_main(@builtin(vertex_index) vi: u32, v: PointIn) -> PointOut {
    var out: PointOut;
    var hovered = 0.0;
{{HOVER}}
    let corner = quad_corner(vi);
    let size = u.point_size * (1.0 + hovered / 4.0);
    let center = to_clip(v.position);
    let offset = corner * size / u.resolution;
    out.position = vec4<f32>(center.x + offset.x, center.y - offset.y, 0.0, 1.0);
    out.coord = corner;
    out.hovered = hovered;
    out.selected = v.selected;
    return out;
}

@fragment
fn fs_main(f: PointOut) -> @location(0) vec4<f32> {
    let alpha = select(0.0, 1.0, length(f.coord) < 1.0);
    var rgb = {{BASE}};
    if (f.selected > 0.5) {
        rgb = {{SELECTED}};
    }
    rgb = rgb * (1.0 + 0.2 * f.hovered);
    return vec4<f32>(rgb * alpha, alpha);
}
`

const hoverWGSL = `    if (v.branch == u.hovered_branch || v.index == u.hovered_index) {
        hovered = 1.0;
    }`

const edgeWGSL = `
@vertex
fn vs_main(@location(0) position: vec2<f32>) -> @builtin(position) vec4<f32> {
    return to_clip(position);
}

@fragment
fn fs_main() -> @location(0) vec4<f32> {
    return vec4<f32>({{COLOR}}, 1.0);
}
`

const curveWGSL = `
struct CurveOut {
    @builtin(position) position: vec4<f32>,
    @location(0) t: f32,
}

{{RAMP}}

@vertex
fn vs_main(@location(0) position: vec2<f32>, @location(1) t: f32) -> CurveOut {
    var out: CurveOut;
    out.position = to_clip(position);
    out.t = t;
    return out;
}

@fragment
fn fs_main(f: CurveOut) -> @location(0) vec4<f32> {
    // smoothstep(1, 0, x) == 1 - smoothstep(0, 1, x)
    let k = clamp(u.color_scale, 0.0, 1.0);
    let fade = 1.0 - k * k * (3.0 - 2.0 * k);
    let v = u.color_scale * f.t + (1.3 + u.curve_index) * fade;
    let value = abs(v - 2.0 * floor(v / 2.0) - 1.0);
    return vec4<f32>(ramp(value), 1.0);
}
`

func pointSource(base color.RGB, v Variant) string {
	hover := ""
	if v == Highlightable {
		hover = hoverWGSL
	}
	r := strings.NewReplacer(
		"{{HOVER}}", hover,
		"{{BASE}}", vec3(base),
		"{{SELECTED}}", vec3(color.Selected),
	)
	return uniformsWGSL + r.Replace(pointWGSL)
}

func edgeSource(c color.RGB) string {
	return uniformsWGSL + strings.ReplaceAll(edgeWGSL, "{{COLOR}}", vec3(c))
}

func curveSource() string {
	return uniformsWGSL + strings.ReplaceAll(curveWGSL, "{{RAMP}}", rampSource())
}

// rampSource emits the colour ramp from color.RampStops so the GPU and the
// CPU path share one table.
func rampSource() string {
	var b strings.Builder
	stops := color.RampStops
	b.WriteString("fn ramp(x: f32) -> vec3<f32> {\n")
	for i := 1; i < len(stops)-1; i++ {
		fmt.Fprintf(&b, "    if (x < %s) {\n        return mix(%s, %s, (x - %s) / 0.2);\n    }\n",
			lit(stops[i].At), vec3(stops[i-1].Color), vec3(stops[i].Color), lit(stops[i-1].At))
	}
	last := len(stops) - 1
	fmt.Fprintf(&b, "    return mix(%s, %s, (x - %s) / 0.2);\n}\n",
		vec3(stops[last-1].Color), vec3(stops[last].Color), lit(stops[last-1].At))
	return b.String()
}

// float formats with a decimal point; WGSL reads "1" as an integer.
func lit(v float64) string {
	return fmt.Sprintf("%.6f", v)
}

func vec3(c color.RGB) string {
	return fmt.Sprintf("vec3<f32>(%s, %s, %s)", lit(c.R), lit(c.G), lit(c.B))
}
