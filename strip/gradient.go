package strip

import (
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/coreman2200/sk6812/led"
)

// SetGradient paints the whole strip from stops spread evenly between the
// first and the last LED. Colors between stops are blended linearly in RGB,
// so stops should already be linear-light values. An empty stop list leaves
// the strip untouched.
func (s *Strip) SetGradient(stops []colorful.Color) {
	n := len(s.leds)
	if n == 0 || len(stops) == 0 {
		return
	}
	for i := range s.leds {
		pos := 0.0
		if n > 1 {
			pos = float64(i) / float64(n-1)
		}
		s.leds[i] = led.FromColorful(sample(stops, pos).Clamped())
	}
}

// sample returns the gradient color at pos in [0,1].
func sample(stops []colorful.Color, pos float64) colorful.Color {
	segs := len(stops) - 1
	if segs == 0 {
		return stops[0]
	}
	x := pos * float64(segs)
	k := int(x)
	if k >= segs {
		return stops[segs]
	}
	return stops[k].BlendRgb(stops[k+1], x-float64(k))
}
