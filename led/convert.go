package led

import (
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Float conversions are lossy. Going to float divides by 255; coming back
// multiplies by 255 and truncates. White has no float representation and is
// always 0 after a conversion from float.

func toChannel(c float64) uint8 {
	switch {
	case c != c || c <= 0:
		return 0
	case c >= 1:
		return 0xff
	}
	return uint8(c * 255)
}

// FromRGBFloat builds a Led from normalized components in [0,1].
func FromRGBFloat(r, g, b float64) Led {
	return Led{R: toChannel(r), G: toChannel(g), B: toChannel(b)}
}

// RGBFloat returns the red, green and blue channels normalized to [0,1].
func (l Led) RGBFloat() (r, g, b float64) {
	return float64(l.R) / 255.0, float64(l.G) / 255.0, float64(l.B) / 255.0
}

func FromColorful(c colorful.Color) Led {
	return FromRGBFloat(c.R, c.G, c.B)
}

func (l Led) Colorful() colorful.Color {
	r, g, b := l.RGBFloat()
	return colorful.Color{R: r, G: g, B: b}
}

// FromHSV takes hue in degrees [0,360) and saturation/value in [0,1].
func FromHSV(h, s, v float64) Led {
	return FromColorful(colorful.Hsv(h, s, v))
}

func (l Led) HSV() (h, s, v float64) {
	return l.Colorful().Hsv()
}

// FromHSL takes hue in degrees [0,360) and saturation/lightness in [0,1].
func FromHSL(h, s, lightness float64) Led {
	return FromColorful(colorful.Hsl(h, s, lightness))
}

func (l Led) HSL() (h, s, lightness float64) {
	return l.Colorful().Hsl()
}

// FromHex parses "#rrggbb" or "#rgb" into a Led with white off. Hex digits
// are already 8-bit, so they are rounded back rather than truncated.
func FromHex(s string) (Led, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return Led{}, err
	}
	r, g, b := c.RGB255()
	return RGB(r, g, b), nil
}
