package led

import "math"

// Channel arithmetic saturates instead of wrapping: sums and products stop at
// 255, differences stop at 0, and dividing by a zero channel gives 0.

func addSat(a, b uint8) uint8 {
	if s := uint16(a) + uint16(b); s < 0xff {
		return uint8(s)
	}
	return 0xff
}

func subSat(a, b uint8) uint8 {
	if a < b {
		return 0
	}
	return a - b
}

func mulSat(a, b uint8) uint8 {
	if p := uint16(a) * uint16(b); p < 0xff {
		return uint8(p)
	}
	return 0xff
}

func divZero(a, b uint8) uint8 {
	if b == 0 {
		return 0
	}
	return a / b
}

func zip(a, b Led, op func(x, y uint8) uint8) Led {
	return Led{
		R: op(a.R, b.R),
		G: op(a.G, b.G),
		B: op(a.B, b.B),
		W: op(a.W, b.W),
	}
}

// Splat broadcasts s to all four channels.
func Splat(s uint8) Led {
	return Led{R: s, G: s, B: s, W: s}
}

// FactorToScalar converts a normalized factor to a channel value by
// multiplying by 255 and truncating. Factors outside [0,1] are clamped.
func FactorToScalar(f float64) uint8 {
	switch {
	case math.IsNaN(f) || f <= 0:
		return 0
	case f >= 1:
		return 0xff
	}
	return uint8(f * 255)
}

func (l Led) Add(o Led) Led { return zip(l, o, addSat) }
func (l Led) Sub(o Led) Led { return zip(l, o, subSat) }
func (l Led) Mul(o Led) Led { return zip(l, o, mulSat) }

// Div divides channel by channel. A zero divisor channel yields 0.
func (l Led) Div(o Led) Led { return zip(l, o, divZero) }

func (l *Led) AddAssign(o Led) { *l = l.Add(o) }
func (l *Led) SubAssign(o Led) { *l = l.Sub(o) }
func (l *Led) MulAssign(o Led) { *l = l.Mul(o) }
func (l *Led) DivAssign(o Led) { *l = l.Div(o) }

func (l Led) AddScalar(s uint8) Led { return l.Add(Splat(s)) }
func (l Led) SubScalar(s uint8) Led { return l.Sub(Splat(s)) }
func (l Led) MulScalar(s uint8) Led { return l.Mul(Splat(s)) }
func (l Led) DivScalar(s uint8) Led { return l.Div(Splat(s)) }

func (l *Led) AddScalarAssign(s uint8) { *l = l.AddScalar(s) }
func (l *Led) SubScalarAssign(s uint8) { *l = l.SubScalar(s) }
func (l *Led) MulScalarAssign(s uint8) { *l = l.MulScalar(s) }
func (l *Led) DivScalarAssign(s uint8) { *l = l.DivScalar(s) }

// AddFactor adds FactorToScalar(f) to every channel, so AddFactor(0.1) is the
// same as AddScalar(25).
func (l Led) AddFactor(f float64) Led { return l.AddScalar(FactorToScalar(f)) }
func (l Led) SubFactor(f float64) Led { return l.SubScalar(FactorToScalar(f)) }

// MulFactor multiplies every channel by FactorToScalar(f), not by f. Use
// Scale to dim a color.
func (l Led) MulFactor(f float64) Led { return l.MulScalar(FactorToScalar(f)) }
func (l Led) DivFactor(f float64) Led { return l.DivScalar(FactorToScalar(f)) }

func (l *Led) AddFactorAssign(f float64) { *l = l.AddFactor(f) }
func (l *Led) SubFactorAssign(f float64) { *l = l.SubFactor(f) }
func (l *Led) MulFactorAssign(f float64) { *l = l.MulFactor(f) }
func (l *Led) DivFactorAssign(f float64) { *l = l.DivFactor(f) }

// Scale multiplies each channel directly by f and truncates, saturating at 0
// and 255.
func (l Led) Scale(f float64) Led {
	sc := func(c uint8) uint8 {
		v := float64(c) * f
		switch {
		case math.IsNaN(v) || v <= 0:
			return 0
		case v >= 0xff:
			return 0xff
		}
		return uint8(v)
	}
	return Led{R: sc(l.R), G: sc(l.G), B: sc(l.B), W: sc(l.W)}
}
