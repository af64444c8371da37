package color

import "math"

// RampStop is one control point of the curve colour ramp.
type RampStop struct {
	At    float64
	Color RGB
}

// RampStops are evenly spaced at 0.2 from green to light blue.
var RampStops = [...]RampStop{
	{0.0, RGB{0. / 255, 158. / 255, 84. / 255}},   // green
	{0.2, RGB{253. / 255, 233. / 255, 43. / 255}}, // yellow
	{0.4, RGB{235. / 255, 45. / 255, 46. / 255}},  // red
	{0.6, RGB{233. / 255, 19. / 255, 136. / 255}}, // pink
	{0.8, RGB{51. / 255, 51. / 255, 145. / 255}},  // dark blue
	{1.0, RGB{0. / 255, 168. / 255, 222. / 255}},  // light blue
}

// Ramp maps x in [0,1] to a colour by linear interpolation between
// consecutive RampStops. Values outside [0,1] are clamped.
func Ramp(x float64) RGB {
	x = clamp01(x)
	for i := 1; i < len(RampStops)-1; i++ {
		if x < RampStops[i].At {
			lo := RampStops[i-1]
			return Lerp(lo.Color, RampStops[i].Color, (x-lo.At)/0.2)
		}
	}
	lo := RampStops[len(RampStops)-2]
	return Lerp(lo.Color, RampStops[len(RampStops)-1].Color, (x-lo.At)/0.2)
}

// CurveValue is the ramp parameter of a curve sample.
//
// t is the position along the curve in [0,1], curveIndex the per-curve
// offset and repeat the repeat-gradient slider value:
//
//	|mod(repeat*t + (1.3+curveIndex)*smoothstep(1, 0, repeat), 2) - 1|
func CurveValue(t, curveIndex, repeat float64) float64 {
	v := repeat*t + (1.3+curveIndex)*Smoothstep(1, 0, repeat)
	return math.Abs(Mod(v, 2) - 1)
}

// CurveColor is Ramp(CurveValue(t, curveIndex, repeat)).
func CurveColor(t, curveIndex, repeat float64) RGB {
	return Ramp(CurveValue(t, curveIndex, repeat))
}

// CurveIndex spreads n curves over the ramp: i/n up to 0.7, i/n-1 above.
func CurveIndex(i, n int) float64 {
	if n <= 0 {
		return 0
	}
	ind := float64(i) / float64(n)
	if ind <= 0.7 {
		return ind
	}
	return ind - 1
}

// Smoothstep is the Hermite step with GPU shading language semantics,
// including reversed edges.
func Smoothstep(edge0, edge1, x float64) float64 {
	t := clamp01((x - edge0) / (edge1 - edge0))
	return t * t * (3 - 2*t)
}

// Mod is the floored modulo of shading languages: x - y*floor(x/y).
func Mod(x, y float64) float64 {
	return x - y*math.Floor(x/y)
}
