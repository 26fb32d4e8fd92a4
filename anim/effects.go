// Package anim drives a strip frame by frame with simple effects.
package anim

import (
	"math"
	"sort"
	"time"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/coreman2200/sk6812/led"
	"github.com/coreman2200/sk6812/strip"
)

// Effect paints one frame at a time into a strip. The loop calls Update.
type Effect interface {
	Name() string
	// Start paints the first frame.
	Start(s *strip.Strip)
	// Step paints the frame due at elapsed since Start.
	Step(s *strip.Strip, elapsed time.Duration)
}

type Registry struct{ m map[string]Effect }

func NewRegistry() *Registry { return &Registry{m: map[string]Effect{}} }

func (r *Registry) Register(e Effect) {
	if e == nil {
		return
	}
	r.m[e.Name()] = e
}

func (r *Registry) Get(name string) (Effect, bool) { e, ok := r.m[name]; return e, ok }

func (r *Registry) List() []string {
	out := make([]string, 0, len(r.m))
	for k := range r.m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Defaults registers cycle, rainbow and breathe. An empty palette falls back
// to TestColors.
func Defaults(brightness float64, palette []led.Led) *Registry {
	if len(palette) == 0 {
		palette = TestColors
	}
	r := NewRegistry()
	r.Register(&Cycle{Colors: palette, Hold: 500 * time.Millisecond, Brightness: brightness})
	r.Register(&Rainbow{Brightness: brightness})
	r.Register(&Breathe{Color: palette[0], Period: 4 * time.Second, Brightness: brightness})
	return r
}

// TestColors walks through each channel and their mixes, then turns off.
var TestColors = []led.Led{
	led.RGB(100, 0, 0),
	led.RGB(0, 100, 0),
	led.RGB(0, 0, 100),
	led.RGB(100, 100, 0),
	led.RGB(100, 0, 100),
	led.RGB(0, 100, 100),
	led.RGB(100, 100, 100),
	led.RGBW(0, 0, 0, 100),
	{},
}

// Cycle fills the strip with each color in turn, Hold apiece.
type Cycle struct {
	Colors     []led.Led
	Hold       time.Duration
	Brightness float64
}

func (c *Cycle) Name() string { return "cycle" }

func (c *Cycle) Start(s *strip.Strip) { c.Step(s, 0) }

func (c *Cycle) Step(s *strip.Strip, elapsed time.Duration) {
	if len(c.Colors) == 0 {
		s.Clear()
		return
	}
	i := 0
	if c.Hold > 0 {
		i = int(elapsed/c.Hold) % len(c.Colors)
	}
	s.Fill(c.Colors[i].Scale(c.Brightness))
}

// Rainbow spreads the hue wheel over the strip and rotates it one LED per
// frame.
type Rainbow struct {
	Brightness float64
}

func (r *Rainbow) Name() string { return "rainbow" }

func (r *Rainbow) Start(s *strip.Strip) {
	stops := make([]colorful.Color, 0, 361)
	for h := 0; h <= 360; h++ {
		lr, lg, lb := colorful.Hsv(float64(h), 1, r.Brightness).LinearRgb()
		stops = append(stops, colorful.Color{R: lr, G: lg, B: lb})
	}
	s.SetGradient(stops)
}

func (r *Rainbow) Step(s *strip.Strip, _ time.Duration) { s.ShiftLeft(1) }

// Breathe fades Color in and out once per Period.
type Breathe struct {
	Color      led.Led
	Period     time.Duration
	Brightness float64
}

func (b *Breathe) Name() string { return "breathe" }

func (b *Breathe) Start(s *strip.Strip) { b.Step(s, 0) }

func (b *Breathe) Step(s *strip.Strip, elapsed time.Duration) {
	phase := 0.0
	if b.Period > 0 {
		phase = float64(elapsed%b.Period) / float64(b.Period)
	}
	f := (1 - math.Cos(2*math.Pi*phase)) / 2
	s.Fill(b.Color.Scale(f * b.Brightness))
}
