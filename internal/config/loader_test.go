// SPDX-License-Identifier: EPL-2.0

package config_test

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ik5/clicksplat"
	"github.com/ik5/clicksplat/analysis"
	"github.com/ik5/clicksplat/detect"
	"github.com/ik5/clicksplat/internal/config"
	"github.com/ik5/clicksplat/pcm"
)

func TestLoadFromReader_EmptyIsDefault(t *testing.T) {
	t.Parallel()

	cfg, err := config.LoadFromReader(strings.NewReader(""))
	if err != nil {
		t.Fatalf("LoadFromReader() error = %v", err)
	}

	def := config.Default()
	if cfg.Read != def.Read || cfg.Detect != def.Detect || cfg.Group != def.Group ||
		cfg.Spectrum != def.Spectrum || cfg.Output != def.Output || cfg.Log != def.Log ||
		cfg.Workers != def.Workers || cfg.PCM != def.PCM {
		t.Errorf("empty document = %+v, want %+v", cfg, def)
	}
}

func TestLoadFromReader_Overrides(t *testing.T) {
	t.Parallel()

	yaml := `
read:
  chunk_frames: 4096
detect:
  channel: -1
  capture_length: 4096
  level_threshold: 0.1
group:
  every: 1
spectrum:
  fft_size: 512
  window: blackman
pcm:
  legacy_16bit_scale: true
output:
  dir: out
  write_clips: false
log:
  level: debug
workers: 4
`
	cfg, err := config.LoadFromReader(strings.NewReader(yaml))
	if err != nil {
		t.Fatalf("LoadFromReader() error = %v", err)
	}

	if cfg.Read.ChunkFrames != 4096 {
		t.Errorf("read.chunk_frames = %d", cfg.Read.ChunkFrames)
	}
	wantDetect := detect.Config{
		Channel:        detect.MixDown,
		CaptureLength:  4096,
		SmoothingSize:  detect.DefaultSmoothingSize,
		RocThreshold:   detect.DefaultRocThreshold,
		LevelThreshold: 0.1,
	}
	if cfg.Detect != wantDetect {
		t.Errorf("detect = %+v, want %+v", cfg.Detect, wantDetect)
	}
	if cfg.Spectrum.FFTSize != 512 || cfg.Spectrum.Window != config.WindowBlackman {
		t.Errorf("spectrum = %+v", cfg.Spectrum)
	}
	if cfg.Spectrum.BlackmanA != analysis.DefaultBlackmanAlpha {
		t.Errorf("spectrum.blackman_a = %v, want default", cfg.Spectrum.BlackmanA)
	}
	if !cfg.PCM.Legacy16BitScale || cfg.Output.Dir != "out" || cfg.Output.WriteClips {
		t.Errorf("pcm/output = %+v %+v", cfg.PCM, cfg.Output)
	}
	if cfg.Log.Level.Slog() != slog.LevelDebug || cfg.Workers != 4 {
		t.Errorf("log/workers = %v %d", cfg.Log.Level, cfg.Workers)
	}

	p := cfg.Pipeline()
	if p.ChunkFrames != 4096 || p.Every != 1 || p.FFTSize != 512 || len(p.PCM) != 1 {
		t.Errorf("Pipeline() = %+v", p)
	}
	if err := p.Validate(); err != nil {
		t.Errorf("Pipeline().Validate() = %v", err)
	}
}

func TestLoadFromReader_UnknownKey(t *testing.T) {
	t.Parallel()

	_, err := config.LoadFromReader(strings.NewReader("spectrum:\n  fft: 256\n"))
	if err == nil {
		t.Fatal("expected error for unknown key, got nil")
	}
	if !strings.Contains(err.Error(), "fft") {
		t.Errorf("error should name the key, got: %v", err)
	}
}

func TestValidate_ReportsAllFailures(t *testing.T) {
	t.Parallel()

	yaml := `
group:
  every: 0
spectrum:
  fft_size: 100
  window: kaiser
output:
  dir: ""
  clip_bit_depth: 12
log:
  level: loud
workers: 0
`
	_, err := config.LoadFromReader(strings.NewReader(yaml))
	if err == nil {
		t.Fatal("expected validation error, got nil")
	}

	for _, want := range []string{"every", "fft size", "spectrum.window", "output.dir", "clip_bit_depth", "log.level", "workers"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error should mention %q, got: %v", want, err)
		}
	}
	if !errors.Is(err, config.ErrInvalid) || !errors.Is(err, clicksplat.ErrInvalidConfig) {
		t.Errorf("error should wrap both config.ErrInvalid and clicksplat.ErrInvalidConfig: %v", err)
	}
	if !errors.Is(err, pcm.ErrUnsupportedBitDepth) {
		t.Errorf("error should wrap pcm.ErrUnsupportedBitDepth: %v", err)
	}
}

func TestValidate_ClipDepthIgnoredWithoutClips(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Output.WriteClips = false
	cfg.Output.ClipBitDepth = 0
	if err := config.Validate(cfg); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestSpectrumConfig_WindowFunc(t *testing.T) {
	t.Parallel()

	tests := []struct {
		window config.WindowName
		want   float64 // coefficient at the centre of a 256 frame block
	}{
		{config.WindowHann, 0.9999},
		{config.WindowBlackman, 1},
		{config.WindowNone, 1},
	}
	for _, tt := range tests {
		s := config.Default().Spectrum
		s.Window = tt.window
		if got := s.WindowFunc()(128, 256); got < tt.want-1e-9 || got > tt.want+1e-9 {
			t.Errorf("%s centre = %v, want %v", tt.window, got, tt.want)
		}
	}
	s := config.Default().Spectrum
	s.Window = config.WindowNone
	if got := s.WindowFunc()(0, 256); got != 1 {
		t.Errorf("none edge = %v, want 1", got)
	}
}

func TestLogLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		level config.LogLevel
		valid bool
		slog  slog.Level
	}{
		{config.LogDebug, true, slog.LevelDebug},
		{config.LogInfo, true, slog.LevelInfo},
		{config.LogWarn, true, slog.LevelWarn},
		{config.LogError, true, slog.LevelError},
		{"verbose", false, slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := tt.level.IsValid(); got != tt.valid {
			t.Errorf("%q.IsValid() = %v, want %v", tt.level, got, tt.valid)
		}
		if got := tt.level.Slog(); got != tt.slog {
			t.Errorf("%q.Slog() = %v, want %v", tt.level, got, tt.slog)
		}
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "clicksplat.yaml")
	if err := os.WriteFile(path, []byte("workers: 3\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Workers != 3 {
		t.Errorf("workers = %d, want 3", cfg.Workers)
	}

	if _, err := config.Load(filepath.Join(dir, "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load(missing) error = %v, want os.ErrNotExist", err)
	}
}
