// SPDX-License-Identifier: EPL-2.0

package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ik5/clicksplat/pcm"
	"gopkg.in/yaml.v3"
)

// ErrInvalid marks validation failures.
var ErrInvalid = errors.New("invalid configuration")

// Load reads the YAML configuration file at path on top of Default.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	cfg, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	return cfg, nil
}

// LoadFromReader decodes YAML from r on top of Default and validates the
// result. Unknown keys are rejected. An empty document yields Default.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that cfg contains a coherent set of values.
// It returns a joined error listing all validation failures found.
func Validate(cfg *Config) error {
	var errs []error

	if err := cfg.Pipeline().Validate(); err != nil {
		errs = append(errs, err)
	}

	switch cfg.Spectrum.Window {
	case WindowHann, WindowBlackman, WindowNone:
	default:
		errs = append(errs, fmt.Errorf("%w: spectrum.window %q; valid values: hann, blackman, none", ErrInvalid, cfg.Spectrum.Window))
	}

	if cfg.Output.Dir == "" {
		errs = append(errs, fmt.Errorf("%w: output.dir is empty", ErrInvalid))
	}
	if cfg.Output.WriteClips {
		if _, err := pcm.ParseBitDepth(cfg.Output.ClipBitDepth); err != nil {
			errs = append(errs, fmt.Errorf("%w: output.clip_bit_depth: %w", ErrInvalid, err))
		}
	}

	if !cfg.Log.Level.IsValid() {
		errs = append(errs, fmt.Errorf("%w: log.level %q; valid values: debug, info, warn, error", ErrInvalid, cfg.Log.Level))
	}
	if cfg.Workers < 1 {
		errs = append(errs, fmt.Errorf("%w: workers must be at least 1, got %d", ErrInvalid, cfg.Workers))
	}

	return errors.Join(errs...)
}
