// Package led models the color state of a single RGBW LED.
//
// A Led is a plain value: four 8-bit channels with saturating arithmetic and
// lossy conversions to floating color spaces. It knows nothing about the strip
// it lives on or the order its channels travel on the wire.
package led

import (
	"errors"
	"fmt"
	"image/color"
)

// ErrInvalidLength is returned by FromBytes for anything but 3 or 4 bytes.
var ErrInvalidLength = errors.New("led: byte sequence must hold 3 or 4 channels")

// Led is the color of one RGBW LED. The zero value is off.
type Led struct {
	R uint8
	G uint8
	B uint8
	W uint8
}

// RGB returns a Led with the white channel off.
func RGB(r, g, b uint8) Led {
	return Led{R: r, G: g, B: b}
}

// RGBW returns a Led with all four channels set.
func RGBW(r, g, b, w uint8) Led {
	return Led{R: r, G: g, B: b, W: w}
}

func FromRGBArray(c [3]uint8) Led {
	return Led{R: c[0], G: c[1], B: c[2]}
}

func FromRGBWArray(c [4]uint8) Led {
	return Led{R: c[0], G: c[1], B: c[2], W: c[3]}
}

// FromBytes reads channels in R,G,B[,W] order. Three bytes leave W at 0.
func FromBytes(b []byte) (Led, error) {
	switch len(b) {
	case 3:
		return Led{R: b[0], G: b[1], B: b[2]}, nil
	case 4:
		return Led{R: b[0], G: b[1], B: b[2], W: b[3]}, nil
	}
	return Led{}, fmt.Errorf("%w: got %d", ErrInvalidLength, len(b))
}

func (l Led) RGBArray() [3]uint8 {
	return [3]uint8{l.R, l.G, l.B}
}

func (l Led) RGBWArray() [4]uint8 {
	return [4]uint8{l.R, l.G, l.B, l.W}
}

// Bytes serializes the channels in R,G,B,W order. This is the interchange
// layout, not the wire layout.
func (l Led) Bytes() []byte {
	return []byte{l.R, l.G, l.B, l.W}
}

func (l Led) String() string {
	return fmt.Sprintf("#%02x%02x%02x%02x", l.R, l.G, l.B, l.W)
}

// RGBA implements color.Color. The white channel is folded into red, green
// and blue so on-screen previews roughly match the strip.
func (l Led) RGBA() (r, g, b, a uint32) {
	c := color.NRGBA{
		R: addSat(l.R, l.W),
		G: addSat(l.G, l.W),
		B: addSat(l.B, l.W),
		A: 0xff,
	}
	return c.RGBA()
}

var _ color.Color = Led{}
