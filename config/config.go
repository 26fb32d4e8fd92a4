package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/coreman2200/sk6812/led"
)

type SPI struct {
	Bus        int    `yaml:"bus"`
	ChipSelect int    `yaml:"chip_select"`
	Name       string `yaml:"name,omitempty"` // e.g. /dev/spidev0.0, overrides bus/chip_select
}

type Config struct {
	Driver     string   `yaml:"driver"` // "spi" | "preview"
	Leds       int      `yaml:"leds"`
	FPS        int      `yaml:"fps"`
	Effect     string   `yaml:"effect"`
	Brightness float64  `yaml:"brightness"`
	Colors     []string `yaml:"colors,omitempty"` // hex, used by the cycle effect

	SPI SPI `yaml:"spi"`
}

// Default matches a 144 LED strip on SPI0 with chip select 0.
func Default() *Config {
	return &Config{
		Driver:     "spi",
		Leds:       144,
		FPS:        30,
		Effect:     "rainbow",
		Brightness: 1.0,
	}
}

// Load reads path over the defaults. Keys missing from the file keep their
// default value.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(b)
}

func Parse(b []byte) (*Config, error) {
	c := Default()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) Validate() error {
	var errs []error
	switch c.Driver {
	case "spi", "preview":
	default:
		errs = append(errs, fmt.Errorf("config: unknown driver %q", c.Driver))
	}
	if c.Leds < 0 {
		errs = append(errs, fmt.Errorf("config: leds must not be negative, got %d", c.Leds))
	}
	if c.FPS <= 0 {
		errs = append(errs, fmt.Errorf("config: fps must be positive, got %d", c.FPS))
	}
	if c.Brightness < 0 || c.Brightness > 1 {
		errs = append(errs, fmt.Errorf("config: brightness must be in [0,1], got %v", c.Brightness))
	}
	if _, err := c.Palette(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Palette parses Colors.
func (c *Config) Palette() ([]led.Led, error) {
	out := make([]led.Led, 0, len(c.Colors))
	for _, s := range c.Colors {
		l, err := led.FromHex(s)
		if err != nil {
			return nil, fmt.Errorf("config: color %q: %w", s, err)
		}
		out = append(out, l)
	}
	return out, nil
}
