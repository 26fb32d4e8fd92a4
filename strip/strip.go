// Package strip holds the color buffer of one SK6812 RGBW strip and pushes
// it to the hardware.
//
// A Strip is not safe for concurrent use. Mutate it and call Update from a
// single goroutine, or guard it with one lock.
package strip

import (
	"slices"
	"time"

	"github.com/rs/zerolog"

	"github.com/coreman2200/sk6812/led"
	"github.com/coreman2200/sk6812/spi"
	"github.com/coreman2200/sk6812/wire"
)

// ResetInterval is how long the data line must stay low after a frame for
// the strip to latch it.
const ResetInterval = 80 * time.Microsecond

// Strip is a fixed-length run of LEDs and the driver they are sent through.
type Strip struct {
	leds  []led.Led
	drv   spi.Driver
	frame []byte
	log   zerolog.Logger
	sleep func(time.Duration)
}

type options struct {
	log zerolog.Logger
	spi []spi.Option
}

// Option configures New and Open.
type Option func(*options)

// WithLogger sets the logger for the strip and, through Open, its port.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) {
		o.log = l
		o.spi = append(o.spi, spi.WithLogger(l))
	}
}

// WithPortOptions passes extra options to spi.Open.
func WithPortOptions(opts ...spi.Option) Option {
	return func(o *options) { o.spi = append(o.spi, opts...) }
}

func buildOptions(opts []Option) options {
	o := options{log: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// New returns a strip of n LEDs, all off, writing through drv. The strip
// owns drv from now on.
func New(drv spi.Driver, n int, opts ...Option) *Strip {
	if n < 0 {
		n = 0
	}
	o := buildOptions(opts)
	s := &Strip{
		leds:  make([]led.Led, n),
		drv:   drv,
		frame: make([]byte, 0, wire.FrameSize(n)),
		log:   o.log,
		sleep: time.Sleep,
	}
	if l, ok := drv.(interface{ MaxTxSize() int }); ok {
		if limit := l.MaxTxSize(); limit > 0 && limit < wire.FrameSize(n) {
			s.log.Warn().
				Int("leds", n).
				Int("frame", wire.FrameSize(n)).
				Int("max_tx", limit).
				Msg("frame exceeds the port transfer size; raise spidev.bufsiz")
		}
	}
	return s
}

// Open opens the SPI port picked by sel and returns a strip of n LEDs on it.
// Errors are *spi.InitError.
func Open(sel spi.Selector, n int, opts ...Option) (*Strip, error) {
	o := buildOptions(opts)
	p, err := spi.Open(sel, o.spi...)
	if err != nil {
		return nil, err
	}
	return New(p, n, opts...), nil
}

func (s *Strip) Len() int {
	return len(s.leds)
}

// Leds returns the buffer itself. Writes to its elements show up on the
// next Update.
func (s *Strip) Leds() []led.Led {
	return s.leds
}

func (s *Strip) At(i int) led.Led {
	return s.leds[i]
}

func (s *Strip) Set(i int, l led.Led) {
	s.leds[i] = l
}

// Fill sets every LED to l.
func (s *Strip) Fill(l led.Led) {
	for i := range s.leds {
		s.leds[i] = l
	}
}

// Clear turns every LED off.
func (s *Strip) Clear() {
	s.Fill(led.Led{})
}

// ShiftLeft rotates the buffer k places towards index 0. The first LED
// wraps around to the end.
func (s *Strip) ShiftLeft(k int) {
	n := len(s.leds)
	if n == 0 {
		return
	}
	k %= n
	if k < 0 {
		k += n
	}
	if k == 0 {
		return
	}
	slices.Reverse(s.leds[:k])
	slices.Reverse(s.leds[k:])
	slices.Reverse(s.leds)
}

// ShiftRight rotates the buffer k places away from index 0. The last LED
// wraps around to the start.
func (s *Strip) ShiftRight(k int) {
	n := len(s.leds)
	if n == 0 {
		return
	}
	s.ShiftLeft(n - k%n)
}

// Frame encodes the whole buffer. The returned slice is reused by the next
// call to Frame or Update.
func (s *Strip) Frame() []byte {
	s.frame = wire.AppendFrame(s.frame[:0], s.leds)
	return s.frame
}

// Update sends every LED to the strip in one transfer and then blocks for
// ResetInterval so the strip latches the frame. A failed write is returned
// as the driver reported it, without waiting.
func (s *Strip) Update() error {
	frame := s.Frame()
	if err := s.drv.Write(frame); err != nil {
		s.log.Debug().Err(err).Int("bytes", len(frame)).Msg("frame write failed")
		return err
	}
	s.sleep(ResetInterval)
	return nil
}

// Close releases the driver.
func (s *Strip) Close() error {
	return s.drv.Close()
}
