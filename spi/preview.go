package spi

import (
	"image"

	"periph.io/x/devices/v3/screen1d"

	"github.com/coreman2200/sk6812/wire"
)

// Preview is a Driver that decodes frames back into colors and draws them
// as a one line strip on the terminal. It stands in for hardware when no SPI
// port is available.
type Preview struct {
	dev *screen1d.Dev
	img *image.NRGBA
}

// NewPreview returns a preview for a strip of n LEDs.
func NewPreview(n int) *Preview {
	return &Preview{
		dev: screen1d.New(&screen1d.Opts{X: n}),
		img: image.NewNRGBA(image.Rect(0, 0, n, 1)),
	}
}

func (p *Preview) Write(frame []byte) error {
	leds, err := wire.Decode(frame)
	if err != nil {
		return &WriteError{Len: len(frame), Err: err}
	}
	for x := 0; x < p.img.Rect.Max.X; x++ {
		if x < len(leds) {
			p.img.Set(x, 0, leds[x])
		} else {
			p.img.Set(x, 0, image.Black)
		}
	}
	if err := p.dev.Draw(p.dev.Bounds(), p.img, image.Point{}); err != nil {
		return &WriteError{Len: len(frame), Err: err}
	}
	return nil
}

func (p *Preview) String() string {
	return "preview"
}

func (p *Preview) Close() error {
	return p.dev.Halt()
}
