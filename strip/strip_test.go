package strip

import (
	"errors"
	"testing"
	"time"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3/spi/spitest"

	"github.com/coreman2200/sk6812/led"
	"github.com/coreman2200/sk6812/spi"
	"github.com/coreman2200/sk6812/wire"
)

// fakeDriver captures every frame written.
type fakeDriver struct {
	frames [][]byte
	err    error
	closed bool
}

func (d *fakeDriver) Write(frame []byte) error {
	if d.err != nil {
		return d.err
	}
	d.frames = append(d.frames, append([]byte(nil), frame...))
	return nil
}

func (d *fakeDriver) Close() error {
	d.closed = true
	return nil
}

type limitedDriver struct {
	fakeDriver
	limit int
}

func (d *limitedDriver) MaxTxSize() int { return d.limit }

func newTestStrip(n int) (*Strip, *fakeDriver, *[]time.Duration) {
	drv := &fakeDriver{}
	s := New(drv, n)
	var slept []time.Duration
	s.sleep = func(d time.Duration) { slept = append(slept, d) }
	return s, drv, &slept
}

func reds(s *Strip) []uint8 {
	out := make([]uint8, s.Len())
	for i, l := range s.Leds() {
		out[i] = l.R
	}
	return out
}

func TestNewIsDark(t *testing.T) {
	s, _, _ := newTestStrip(144)
	require.Equal(t, 144, s.Len())
	for _, l := range s.Leds() {
		assert.Equal(t, led.Led{}, l)
	}
	assert.Equal(t, 0, New(&fakeDriver{}, -3).Len())
}

func TestFillAndClear(t *testing.T) {
	s, _, _ := newTestStrip(144)
	c := led.RGB(100, 0, 0)

	s.Fill(c)
	for _, l := range s.Leds() {
		assert.Equal(t, c, l)
	}

	s.Clear()
	for _, l := range s.Leds() {
		assert.Equal(t, led.Led{}, l)
	}
}

func TestDirectAccess(t *testing.T) {
	s, _, _ := newTestStrip(4)
	s.Leds()[0].R = 100
	s.Leds()[1] = led.RGBW(1, 2, 3, 4)
	s.Set(2, led.RGB(7, 8, 9))
	s.Leds()[3].AddScalarAssign(50)

	assert.Equal(t, led.RGB(100, 0, 0), s.At(0))
	assert.Equal(t, led.RGBW(1, 2, 3, 4), s.At(1))
	assert.Equal(t, led.RGB(7, 8, 9), s.At(2))
	assert.Equal(t, led.Splat(50), s.At(3))
}

func TestShift(t *testing.T) {
	fill := func(s *Strip) {
		for i := range s.Leds() {
			s.Set(i, led.RGB(uint8(i+1), 0, 0))
		}
	}
	s, _, _ := newTestStrip(5)

	fill(s)
	s.ShiftRight(1)
	assert.Equal(t, []uint8{5, 1, 2, 3, 4}, reds(s))

	fill(s)
	s.ShiftLeft(1)
	assert.Equal(t, []uint8{2, 3, 4, 5, 1}, reds(s))

	fill(s)
	s.ShiftLeft(7)
	assert.Equal(t, []uint8{3, 4, 5, 1, 2}, reds(s))

	fill(s)
	s.ShiftRight(12)
	assert.Equal(t, []uint8{4, 5, 1, 2, 3}, reds(s))

	fill(s)
	s.ShiftLeft(5)
	assert.Equal(t, []uint8{1, 2, 3, 4, 5}, reds(s))

	fill(s)
	s.ShiftRight(-1)
	assert.Equal(t, []uint8{2, 3, 4, 5, 1}, reds(s))

	fill(s)
	s.ShiftLeft(2)
	s.ShiftRight(2)
	assert.Equal(t, []uint8{1, 2, 3, 4, 5}, reds(s))

	empty, _, _ := newTestStrip(0)
	assert.NotPanics(t, func() {
		empty.ShiftLeft(3)
		empty.ShiftRight(3)
	})
}

func TestGradient(t *testing.T) {
	s, _, _ := newTestStrip(5)
	s.SetGradient([]colorful.Color{{R: 0, G: 0, B: 0}, {R: 1, G: 1, B: 1}})
	want := []led.Led{
		led.RGB(0, 0, 0),
		led.RGB(63, 63, 63),
		led.RGB(127, 127, 127),
		led.RGB(191, 191, 191),
		led.RGB(255, 255, 255),
	}
	assert.Equal(t, want, s.Leds())

	s.SetGradient([]colorful.Color{{R: 1}, {G: 1}, {B: 1}})
	want = []led.Led{
		led.RGB(255, 0, 0),
		led.RGB(127, 127, 0),
		led.RGB(0, 255, 0),
		led.RGB(0, 127, 127),
		led.RGB(0, 0, 255),
	}
	assert.Equal(t, want, s.Leds())
}

func TestGradientEdgeCases(t *testing.T) {
	s, _, _ := newTestStrip(3)
	s.Fill(led.RGBW(1, 2, 3, 4))

	s.SetGradient(nil)
	for _, l := range s.Leds() {
		assert.Equal(t, led.RGBW(1, 2, 3, 4), l, "empty gradient is a no-op")
	}

	s.SetGradient([]colorful.Color{{R: 0.2, G: 0.4, B: 0.8}})
	for _, l := range s.Leds() {
		assert.Equal(t, led.RGB(51, 102, 204), l)
	}

	s.SetGradient([]colorful.Color{{R: 1.5, G: -1}, {R: 1.5, G: -1}})
	assert.Equal(t, led.RGB(255, 0, 0), s.At(1))

	one, _, _ := newTestStrip(1)
	one.SetGradient([]colorful.Color{{G: 1}, {B: 1}})
	assert.Equal(t, led.RGB(0, 255, 0), one.At(0))

	empty, _, _ := newTestStrip(0)
	assert.NotPanics(t, func() { empty.SetGradient([]colorful.Color{{R: 1}}) })
}

func TestFrame(t *testing.T) {
	s, _, _ := newTestStrip(3)
	s.Set(1, led.RGBW(0xAA, 0x00, 0xFF, 0x33))

	frame := s.Frame()
	require.Len(t, frame, 3*wire.BytesPerLed)
	enc := wire.Encode(led.RGBW(0xAA, 0x00, 0xFF, 0x33))
	assert.Equal(t, enc[:], frame[wire.BytesPerLed:2*wire.BytesPerLed])
}

func TestUpdateWritesOnceAndWaits(t *testing.T) {
	s, drv, slept := newTestStrip(144)
	s.Fill(led.RGBW(250, 0, 200, 10))

	require.NoError(t, s.Update())
	require.Len(t, drv.frames, 1)
	assert.Len(t, drv.frames[0], 144*wire.BytesPerLed)
	assert.Equal(t, []time.Duration{ResetInterval}, *slept)

	got, err := wire.Decode(drv.frames[0])
	require.NoError(t, err)
	assert.Equal(t, s.Leds(), got)
}

func TestUpdateIsIdempotent(t *testing.T) {
	s, drv, _ := newTestStrip(8)
	s.SetGradient([]colorful.Color{{R: 1}, {B: 1}})

	require.NoError(t, s.Update())
	require.NoError(t, s.Update())
	require.Len(t, drv.frames, 2)
	assert.Equal(t, drv.frames[0], drv.frames[1])
}

func TestUpdateFailureSkipsReset(t *testing.T) {
	s, drv, slept := newTestStrip(4)
	boom := &spi.WriteError{Len: 128, Err: errors.New("boom")}
	drv.err = boom

	err := s.Update()
	assert.Same(t, boom, err)
	assert.Empty(t, *slept)
}

func TestUpdateOverSPIPort(t *testing.T) {
	rec := &spitest.Record{}
	p, err := spi.NewPort(rec)
	require.NoError(t, err)

	s := New(p, 10)
	s.sleep = func(time.Duration) {}
	s.Fill(led.RGB(150, 0, 100))

	require.NoError(t, s.Update())
	require.NoError(t, s.Update())
	require.Len(t, rec.Ops, 2)
	assert.Len(t, rec.Ops[0].W, 10*wire.BytesPerLed)
	assert.Equal(t, rec.Ops[0].W, rec.Ops[1].W)
	assert.NoError(t, s.Close())
}

func TestMaxTxSizeDoesNotBlockConstruction(t *testing.T) {
	drv := &limitedDriver{limit: 4096}
	s := New(drv, 144)
	assert.Equal(t, 144, s.Len())
}

func TestClose(t *testing.T) {
	s, drv, _ := newTestStrip(1)
	require.NoError(t, s.Close())
	assert.True(t, drv.closed)
}
