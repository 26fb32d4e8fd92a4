// Package wire expands LED colors into the SK6812 single-wire waveform.
//
// Clocked out over SPI at 6.4MHz, every output byte lasts 1.25µs, which is
// exactly one protocol bit. A logical 1 is sent as a long high pulse
// (11110000, ≈0.6µs high) and a logical 0 as a short one (11000000,
// ≈0.3µs high). Channels go out in G, R, B, W order, most significant bit
// first.
package wire

import (
	"errors"
	"fmt"

	"github.com/coreman2200/sk6812/led"
)

const (
	// High is the symbol byte for a logical 1.
	High byte = 0b11110000
	// Low is the symbol byte for a logical 0.
	Low byte = 0b11000000

	// BytesPerChannel is the number of symbol bytes per 8-bit channel.
	BytesPerChannel = 8
	// BytesPerLed is the encoded size of one Led: 4 channels of 8 bits.
	BytesPerLed = 4 * BytesPerChannel
)

// ErrShortFrame reports a frame that is not a whole number of LEDs.
var ErrShortFrame = errors.New("wire: frame length is not a multiple of 32")

// SymbolError reports a byte that is neither High nor Low.
type SymbolError struct {
	Offset int
	Value  byte
}

func (e *SymbolError) Error() string {
	return fmt.Sprintf("wire: invalid symbol %#08b at offset %d", e.Value, e.Offset)
}

// lut maps a channel value to its 8 symbol bytes, MSB first.
var lut [256][BytesPerChannel]byte

func init() {
	for v := 0; v < 256; v++ {
		for i := 0; i < BytesPerChannel; i++ {
			if v&(0x80>>i) != 0 {
				lut[v][i] = High
			} else {
				lut[v][i] = Low
			}
		}
	}
}

// Encode returns the 32 symbol bytes for l.
func Encode(l led.Led) [BytesPerLed]byte {
	var out [BytesPerLed]byte
	copy(out[0:8], lut[l.G][:])
	copy(out[8:16], lut[l.R][:])
	copy(out[16:24], lut[l.B][:])
	copy(out[24:32], lut[l.W][:])
	return out
}

// Append appends the encoding of l to dst and returns the extended slice.
func Append(dst []byte, l led.Led) []byte {
	dst = append(dst, lut[l.G][:]...)
	dst = append(dst, lut[l.R][:]...)
	dst = append(dst, lut[l.B][:]...)
	return append(dst, lut[l.W][:]...)
}

// AppendFrame appends the encoding of every Led in order.
func AppendFrame(dst []byte, leds []led.Led) []byte {
	if need := len(dst) + len(leds)*BytesPerLed; cap(dst) < need {
		grown := make([]byte, len(dst), need)
		copy(grown, dst)
		dst = grown
	}
	for _, l := range leds {
		dst = Append(dst, l)
	}
	return dst
}

// FrameSize is the number of bytes a strip of n LEDs encodes to.
func FrameSize(n int) int {
	return n * BytesPerLed
}

// Decode turns a frame produced by AppendFrame back into colors.
func Decode(frame []byte) ([]led.Led, error) {
	if len(frame)%BytesPerLed != 0 {
		return nil, fmt.Errorf("%w: got %d bytes", ErrShortFrame, len(frame))
	}
	out := make([]led.Led, len(frame)/BytesPerLed)
	for i := range out {
		var ch [4]uint8
		for c := range ch {
			off := i*BytesPerLed + c*BytesPerChannel
			v, err := decodeChannel(frame[off:off+BytesPerChannel], off)
			if err != nil {
				return nil, err
			}
			ch[c] = v
		}
		out[i] = led.Led{G: ch[0], R: ch[1], B: ch[2], W: ch[3]}
	}
	return out, nil
}

func decodeChannel(sym []byte, off int) (uint8, error) {
	var v uint8
	for i, s := range sym {
		v <<= 1
		switch s {
		case High:
			v |= 1
		case Low:
		default:
			return 0, &SymbolError{Offset: off + i, Value: s}
		}
	}
	return v, nil
}
