package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/db47h/progcalc"
	"github.com/db47h/progcalc/decarith"
	"github.com/db47h/progcalc/width"
	"gopkg.in/yaml.v3"
)

const (
	defaultDigits = 12
	maxDigits     = 34
)

// config is the content of the configuration file.
type config struct {
	Mode           string `yaml:"mode"`
	Width          int    `yaml:"width"`
	Unsigned       bool   `yaml:"unsigned"`
	Angle          string `yaml:"angle"`
	RepeatedEquals bool   `yaml:"repeated_equals"`
	RoundingAid    bool   `yaml:"rounding_aid"`
	RandomRange    int    `yaml:"random_range"`
	WarnSigned     bool   `yaml:"warn_signed"`
	WarnUnsigned   bool   `yaml:"warn_unsigned"`
	// number of significant digits displayed in decimal mode
	Digits int `yaml:"digits"`
}

func defaultConfig() config {
	return config{
		Mode:         progcalc.Integer.String(),
		Width:        64,
		Angle:        decarith.Degree.String(),
		WarnSigned:   true,
		WarnUnsigned: true,
		Digits:       defaultDigits,
	}
}

// loadConfig reads the configuration file at path. Settings missing from the
// file keep their default value. An empty path yields the defaults.
func loadConfig(path string) (config, error) {
	if path == "" {
		return defaultConfig(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return config{}, err
	}
	defer f.Close()
	cfg, err := decodeConfig(f)
	if err != nil {
		return config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func decodeConfig(r io.Reader) (config, error) {
	cfg := defaultConfig()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return config{}, err
	}
	return cfg, nil
}

// calcConfig validates cfg and converts it to calculator settings.
func (cfg *config) calcConfig() (progcalc.Config, error) {
	c := progcalc.DefaultConfig()
	m, ok := progcalc.ParseMode(cfg.Mode)
	if !ok {
		return c, fmt.Errorf("invalid mode %q", cfg.Mode)
	}
	w, err := width.ParseWidth(strconv.Itoa(cfg.Width))
	if err != nil {
		return c, fmt.Errorf("width %d: %w", cfg.Width, err)
	}
	a, err := decarith.ParseAngle(cfg.Angle)
	if err != nil {
		return c, err
	}
	if cfg.Digits < 1 || cfg.Digits > maxDigits {
		return c, fmt.Errorf("digits must be in [1, %d]", maxDigits)
	}
	if cfg.RandomRange < 0 {
		return c, errors.New("random_range must be positive")
	}
	c.Mode = m
	c.Width = w
	c.Unsigned = cfg.Unsigned
	c.Angle = a
	c.RepeatedEquals = cfg.RepeatedEquals
	c.RoundingAid = cfg.RoundingAid
	c.RandomRange = cfg.RandomRange
	c.WarnSigned = cfg.WarnSigned
	c.WarnUnsigned = cfg.WarnUnsigned
	return c, nil
}
