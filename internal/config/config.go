// SPDX-License-Identifier: EPL-2.0

// Package config loads the YAML configuration of the clicksplat command.
package config

import (
	"log/slog"

	"github.com/ik5/clicksplat"
	"github.com/ik5/clicksplat/analysis"
	"github.com/ik5/clicksplat/detect"
	"github.com/ik5/clicksplat/pcm"
)

// LogLevel controls log verbosity.
type LogLevel string

const (
	LogDebug LogLevel = "debug"
	LogInfo  LogLevel = "info"
	LogWarn  LogLevel = "warn"
	LogError LogLevel = "error"
)

// IsValid reports whether l is a recognised log level.
func (l LogLevel) IsValid() bool {
	switch l {
	case LogDebug, LogInfo, LogWarn, LogError:
		return true
	}
	return false
}

// Slog maps l to a slog.Level. Unknown levels map to info.
func (l LogLevel) Slog() slog.Level {
	switch l {
	case LogDebug:
		return slog.LevelDebug
	case LogWarn:
		return slog.LevelWarn
	case LogError:
		return slog.LevelError
	}
	return slog.LevelInfo
}

// WindowName selects the spectrum window.
type WindowName string

const (
	WindowHann     WindowName = "hann"
	WindowBlackman WindowName = "blackman"
	WindowNone     WindowName = "none"
)

// Config is the root of the YAML document.
type Config struct {
	Read     ReadConfig     `yaml:"read"`
	Detect   detect.Config  `yaml:"detect"`
	Group    GroupConfig    `yaml:"group"`
	Spectrum SpectrumConfig `yaml:"spectrum"`
	PCM      PCMConfig      `yaml:"pcm"`
	Output   OutputConfig   `yaml:"output"`
	Log      LogConfig      `yaml:"log"`

	// Workers is the number of files processed at the same time.
	Workers int `yaml:"workers"`
}

// ReadConfig controls decoding.
type ReadConfig struct {
	// ChunkFrames is the number of file frames read at once.
	ChunkFrames int `yaml:"chunk_frames"`
}

// GroupConfig selects which clicks are kept.
type GroupConfig struct {
	Every int `yaml:"every"`
}

// SpectrumConfig controls the spectral analysis of every click.
type SpectrumConfig struct {
	FFTSize   int        `yaml:"fft_size"`
	Window    WindowName `yaml:"window"`
	HannA     float64    `yaml:"hann_a"`
	BlackmanA float64    `yaml:"blackman_a"`
}

// PCMConfig controls integer sample scaling.
type PCMConfig struct {
	// Legacy16BitScale scales 16-bit samples by 65536 instead of 32768.
	Legacy16BitScale bool `yaml:"legacy_16bit_scale"`
}

// OutputConfig controls what is written per click.
type OutputConfig struct {
	Dir string `yaml:"dir"`
	// WriteClips also stores every captured click as a WAV file.
	WriteClips   bool `yaml:"write_clips"`
	ClipBitDepth int  `yaml:"clip_bit_depth"`
}

// LogConfig controls logging.
type LogConfig struct {
	Level LogLevel `yaml:"level"`
}

// Default returns the configuration used for keys missing from a file.
func Default() *Config {
	return &Config{
		Read:   ReadConfig{ChunkFrames: clicksplat.DefaultChunkFrames},
		Detect: detect.DefaultConfig(),
		Group:  GroupConfig{Every: clicksplat.DefaultEvery},
		Spectrum: SpectrumConfig{
			FFTSize:   clicksplat.DefaultFFTSize,
			Window:    WindowHann,
			HannA:     analysis.DefaultHannAlpha,
			BlackmanA: analysis.DefaultBlackmanAlpha,
		},
		Output: OutputConfig{
			Dir:          "splats",
			WriteClips:   true,
			ClipBitDepth: 16,
		},
		Log:     LogConfig{Level: LogInfo},
		Workers: 1,
	}
}

// WindowFunc returns the configured window.
func (s SpectrumConfig) WindowFunc() analysis.WindowFunc {
	switch s.Window {
	case WindowBlackman:
		return analysis.Blackman(s.BlackmanA)
	case WindowNone:
		return analysis.Rectangular()
	}
	return analysis.Hann(s.HannA)
}

// PCMOptions returns the decoder and encoder options.
func (p PCMConfig) PCMOptions() []pcm.Option {
	if p.Legacy16BitScale {
		return []pcm.Option{pcm.WithLegacy16BitScale()}
	}
	return nil
}

// Pipeline returns the extraction settings.
func (c *Config) Pipeline() clicksplat.Config {
	return clicksplat.Config{
		ChunkFrames: c.Read.ChunkFrames,
		Detect:      c.Detect,
		Every:       c.Group.Every,
		FFTSize:     c.Spectrum.FFTSize,
		Window:      c.Spectrum.WindowFunc(),
		PCM:         c.PCM.PCMOptions(),
	}
}
