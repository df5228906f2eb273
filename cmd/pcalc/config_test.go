package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/db47h/progcalc"
	"github.com/db47h/progcalc/decarith"
	"github.com/db47h/progcalc/width"
)

func TestDecodeConfig(t *testing.T) {
	cfg, err := decodeConfig(strings.NewReader(""))
	if err != nil {
		t.Fatal(err)
	}
	if cfg != defaultConfig() {
		t.Fatalf("Got : %+v\nWant: %+v", cfg, defaultConfig())
	}

	cfg, err = decodeConfig(strings.NewReader(`
mode: dec
width: 16
angle: rad
repeated_equals: true
warn_unsigned: false
digits: 20
`))
	if err != nil {
		t.Fatal(err)
	}
	c, err := cfg.calcConfig()
	if err != nil {
		t.Fatal(err)
	}
	if c.Mode != progcalc.Decimal || c.Width != width.W16 || c.Angle != decarith.Radian ||
		!c.RepeatedEquals || !c.WarnSigned || c.WarnUnsigned || cfg.Digits != 20 {
		t.Fatalf("Got : %+v", c)
	}
}

func TestConfigErrors(t *testing.T) {
	if _, err := decodeConfig(strings.NewReader("colour: red\n")); err == nil {
		t.Fatal("unknown field accepted")
	}
	td := []struct {
		name string
		yml  string
	}{
		{"mode", "mode: hex"},
		{"width", "width: 12"},
		{"angle", "angle: turn"},
		{"digits", "digits: 35"},
		{"random", "random_range: -1"},
	}
	for _, d := range td {
		t.Run(d.name, func(t *testing.T) {
			cfg, err := decodeConfig(strings.NewReader(d.yml))
			if err != nil {
				t.Fatal(err)
			}
			if _, err = cfg.calcConfig(); err == nil {
				t.Fatalf("%s: expected error", d.yml)
			}
		})
	}
	cfg, _ := decodeConfig(strings.NewReader("width: 12"))
	if _, err := cfg.calcConfig(); !errors.Is(err, width.ErrWidth) {
		t.Fatalf("Got : %v\nWant: %v", err, width.ErrWidth)
	}
}

func TestLoadConfig(t *testing.T) {
	cfg, err := loadConfig("")
	if err != nil || cfg != defaultConfig() {
		t.Fatalf("Got : %+v, %v", cfg, err)
	}
	name := filepath.Join(t.TempDir(), "pcalc.yaml")
	if err = os.WriteFile(name, []byte("unsigned: true\nwidth: 32\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if cfg, err = loadConfig(name); err != nil {
		t.Fatal(err)
	}
	if !cfg.Unsigned || cfg.Width != 32 || cfg.Mode != "int" {
		t.Fatalf("Got : %+v", cfg)
	}
	if _, err = loadConfig(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("Got : %v\nWant: %v", err, os.ErrNotExist)
	}
}
