// Package spi provides the serial transports an SK6812 strip is clocked out
// through: a periph.io SPI port for real hardware and a terminal preview.
package spi

import (
	"fmt"

	"github.com/rs/zerolog"
	"periph.io/x/conn/v3/physic"
)

const (
	// Frequency makes one SPI byte last one 1.25µs protocol bit.
	Frequency = 6400 * physic.KiloHertz
	// BitsPerWord is the SPI word size the waveform is laid out in.
	BitsPerWord = 8
)

// Driver is a raw byte sink for encoded frames.
type Driver interface {
	// Write sends one complete frame in a single transfer.
	Write(frame []byte) error
	// Close releases the underlying device.
	Close() error
}

// Selector picks the SPI port to open. Name, when set, is passed to spireg
// as is (e.g. "/dev/spidev0.1"); otherwise Bus and ChipSelect build
// "SPI<bus>.<cs>". The chip select line is not wired to the strip but the
// kernel driver still needs one.
type Selector struct {
	Bus        int
	ChipSelect int
	Name       string
}

func (s Selector) String() string {
	if s.Name != "" {
		return s.Name
	}
	return fmt.Sprintf("SPI%d.%d", s.Bus, s.ChipSelect)
}

// InitError reports a port that could not be opened or configured.
type InitError struct {
	Port string
	Err  error
}

func (e *InitError) Error() string {
	return "spi: open " + e.Port + ": " + e.Err.Error()
}

func (e *InitError) Unwrap() error { return e.Err }

// WriteError reports a failed frame transfer.
type WriteError struct {
	Len int
	Err error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("spi: write %d bytes: %v", e.Len, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

type options struct {
	freq physic.Frequency
	log  zerolog.Logger
}

// Option configures Open and NewPort.
type Option func(*options)

// WithLogger sets the logger used for port events.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithFrequency overrides the bit clock. The strip only decodes correctly
// near Frequency.
func WithFrequency(f physic.Frequency) Option {
	return func(o *options) { o.freq = f }
}

func buildOptions(opts []Option) options {
	o := options{freq: Frequency, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
