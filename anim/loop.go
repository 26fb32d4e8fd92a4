package anim

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/coreman2200/sk6812/strip"
)

const DefaultFPS = 30

// Loop runs an effect on the calling goroutine. Cancellation is only
// observed between frames; a frame in flight always finishes.
type Loop struct {
	strip  *strip.Strip
	effect Effect
	fps    int
	log    zerolog.Logger
	frames int
}

func NewLoop(s *strip.Strip, e Effect, fps int, log zerolog.Logger) *Loop {
	if fps <= 0 {
		fps = DefaultFPS
	}
	return &Loop{strip: s, effect: e, fps: fps, log: log}
}

// Frames is the number of frames sent so far.
func (l *Loop) Frames() int {
	return l.frames
}

// Run paints and sends frames until ctx is done or a frame fails to send.
// On cancellation the strip is cleared and ctx.Err() returned.
func (l *Loop) Run(ctx context.Context) error {
	delta := time.Second / time.Duration(l.fps)
	ticker := time.NewTicker(delta)
	defer ticker.Stop()

	l.log.Info().Str("effect", l.effect.Name()).Int("fps", l.fps).Int("leds", l.strip.Len()).Msg("loop starting")
	start := time.Now()
	l.effect.Start(l.strip)
	if err := l.send(); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return l.stop(ctx)

		case t := <-ticker.C:
			if ctx.Err() != nil {
				return l.stop(ctx)
			}
			l.effect.Step(l.strip, t.Sub(start))
			if err := l.send(); err != nil {
				return err
			}
		}
	}
}

func (l *Loop) send() error {
	if err := l.strip.Update(); err != nil {
		l.log.Error().Err(err).Int("frame", l.frames).Msg("frame update failed")
		return err
	}
	l.frames++
	return nil
}

func (l *Loop) stop(ctx context.Context) error {
	l.strip.Clear()
	if err := l.strip.Update(); err != nil {
		l.log.Warn().Err(err).Msg("clearing strip failed")
	}
	l.log.Info().Int("frames", l.frames).Msg("loop stopped")
	return ctx.Err()
}
