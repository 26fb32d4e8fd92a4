// Command sk6812 plays an effect on an SK6812 RGBW strip wired to an SPI bus.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/coreman2200/sk6812/anim"
	"github.com/coreman2200/sk6812/config"
	"github.com/coreman2200/sk6812/spi"
	"github.com/coreman2200/sk6812/strip"
)

func main() {
	var (
		configPath = flag.String("config", "config.yaml", "path to config.yaml")
		driver     = flag.String("driver", "spi", "driver: spi | preview")
		bus        = flag.Int("bus", 0, "SPI bus number")
		cs         = flag.Int("cs", 0, "SPI chip select")
		port       = flag.String("port", "", "SPI port name, overrides -bus/-cs (e.g. /dev/spidev0.1)")
		leds       = flag.Int("leds", 144, "number of LEDs on the strip")
		fps        = flag.Int("fps", 30, "target frames per second")
		effect     = flag.String("effect", "rainbow", "effect to play")
		brightness = flag.Float64("brightness", 1.0, "global brightness 0..1")
		list       = flag.Bool("list", false, "list effects and exit")
		verbose    = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	// ---- Config, then any flag given on the command line ----
	cfg, err := config.Load(*configPath)
	switch {
	case err == nil:
	case errors.Is(err, os.ErrNotExist):
		log.Debug().Str("path", *configPath).Msg("no config file; using flags")
		cfg = config.Default()
	default:
		log.Fatal().Err(err).Str("path", *configPath).Msg("config load failed")
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "driver":
			cfg.Driver = *driver
		case "bus":
			cfg.SPI.Bus = *bus
		case "cs":
			cfg.SPI.ChipSelect = *cs
		case "port":
			cfg.SPI.Name = *port
		case "leds":
			cfg.Leds = *leds
		case "fps":
			cfg.FPS = *fps
		case "effect":
			cfg.Effect = *effect
		case "brightness":
			cfg.Brightness = *brightness
		}
	})
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid settings")
	}
	palette, _ := cfg.Palette()

	effects := anim.Defaults(cfg.Brightness, palette)
	if *list {
		for _, name := range effects.List() {
			fmt.Println(name)
		}
		return
	}
	e, ok := effects.Get(cfg.Effect)
	if !ok {
		log.Fatal().Str("effect", cfg.Effect).Strs("known", effects.List()).Msg("unknown effect")
	}

	s := openStrip(cfg)
	defer func() {
		if err := s.Close(); err != nil {
			log.Warn().Err(err).Msg("close failed")
		}
	}()

	// ---- Run until interrupted ----
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err = anim.NewLoop(s, e, cfg.FPS, log.Logger).Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Msg("render loop failed")
		return
	}
	log.Info().Msg("shutting down")
}

// openStrip falls back to the terminal preview when the SPI port cannot be
// opened.
func openStrip(cfg *config.Config) *strip.Strip {
	opts := []strip.Option{strip.WithLogger(log.Logger)}
	if cfg.Driver == "preview" {
		return strip.New(spi.NewPreview(cfg.Leds), cfg.Leds, opts...)
	}

	sel := spi.Selector{Bus: cfg.SPI.Bus, ChipSelect: cfg.SPI.ChipSelect, Name: cfg.SPI.Name}
	s, err := strip.Open(sel, cfg.Leds, opts...)
	if err != nil {
		log.Warn().Err(err).
			Str("driver", "spi").
			Str("port", sel.String()).
			Msg("SPI init failed; falling back to preview")
		return strip.New(spi.NewPreview(cfg.Leds), cfg.Leds, opts...)
	}
	return s
}
