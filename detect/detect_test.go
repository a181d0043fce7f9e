// SPDX-License-Identifier: EPL-2.0

package detect

import (
	"errors"
	"testing"

	"github.com/ik5/clicksplat/audio"
	"github.com/ik5/clicksplat/internal/audiotest"
	"github.com/ik5/clicksplat/pipeline"
)

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.CaptureLength = 2048
	return cfg
}

func clicks(t *testing.T, cfg Config, src pipeline.Stream[audio.Snippet]) []audio.Snippet {
	t.Helper()

	stage, err := Clicks(cfg)
	if err != nil {
		t.Fatalf("Clicks() error = %v", err)
	}
	got, err := pipeline.Collect(stage(src))
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	return got
}

func TestClicks_SingleSpike(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	// An amplitude of 8 lifts the level over the threshold with the first
	// spike sample.
	src := audiotest.NewClickSource(200+1024+4000, 480, 1024, 8, 200)

	got := clicks(t, cfg, src)
	if len(got) != 1 {
		t.Fatalf("clicks = %d, want 1", len(got))
	}

	c := got[0]
	wantStart := audio.FramesToTicks(200, audio.InternalRate) - audio.FramesToTicks(int64(cfg.SmoothingSize), audio.InternalRate)
	if c.Start != wantStart {
		t.Errorf("start = %d, want %d", c.Start, wantStart)
	}
	if c.Sample.Channels() != 1 {
		t.Errorf("channels = %d, want 1", c.Sample.Channels())
	}
	if c.Sample.Frames() != cfg.CaptureLength+1 {
		t.Errorf("frames = %d, want %d", c.Sample.Frames(), cfg.CaptureLength+1)
	}

	data := c.Sample.Data()
	for i := range cfg.SmoothingSize {
		if data[i] != 0 {
			t.Fatalf("pre-trigger value %d = %v, want 0", i, data[i])
		}
	}
	if data[cfg.SmoothingSize] != 8 {
		t.Errorf("trigger value = %v, want 8", data[cfg.SmoothingSize])
	}
	if data[cfg.SmoothingSize+1023] != 8 || data[cfg.SmoothingSize+1024] != 0 {
		t.Error("capture does not follow the spike")
	}
}

func TestClicks_GradualOnset(t *testing.T) {
	t.Parallel()

	// Bursts within the nominal range need several samples before the
	// window mean passes the level threshold.
	tests := []struct {
		name      string
		amplitude float64
		offset    int // trigger position within the burst
	}{
		{"full scale", 1, 6},
		{"0.9", 0.9, 7},
		{"half scale", 0.5, 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := testConfig()
			const at = 200
			src := audiotest.NewClickSource(at+1024+4000, 480, 1024, tt.amplitude, at)

			got := clicks(t, cfg, src)
			if len(got) != 1 {
				t.Fatalf("clicks = %d, want 1", len(got))
			}

			c := got[0]
			trigger := int64(at + tt.offset)
			wantStart := audio.FramesToTicks(trigger, audio.InternalRate) -
				audio.FramesToTicks(int64(cfg.SmoothingSize), audio.InternalRate)
			if c.Start != wantStart {
				t.Errorf("start = %d, want %d", c.Start, wantStart)
			}

			// The pre-roll holds the silence and the burst samples that
			// came before the trigger.
			data := c.Sample.Data()
			lead := cfg.SmoothingSize - tt.offset
			for i := range cfg.SmoothingSize {
				want := 0.0
				if i >= lead {
					want = tt.amplitude
				}
				if data[i] != want {
					t.Fatalf("pre-trigger value %d = %v, want %v", i, data[i], want)
				}
			}
			if data[cfg.SmoothingSize] != tt.amplitude {
				t.Errorf("trigger value = %v, want %v", data[cfg.SmoothingSize], tt.amplitude)
			}
		})
	}
}

func TestClicks_IndependentOfChunking(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	var want []audio.Snippet
	for _, chunk := range []int{48, 480, 1000, 7000} {
		src := audiotest.NewClickSource(10000, chunk, 600, 0.5, 300, 5000)
		got := clicks(t, cfg, src)
		if len(got) != 2 {
			t.Fatalf("chunk %d: clicks = %d, want 2", chunk, len(got))
		}
		if want == nil {
			want = got
			continue
		}
		for i := range got {
			// Starts are derived from snippet starts which round to ticks.
			if d := got[i].Start - want[i].Start; d < -1 || d > 1 {
				t.Errorf("chunk %d click %d start = %d, want %d", chunk, i, got[i].Start, want[i].Start)
			}
			if got[i].Sample.Frames() != want[i].Sample.Frames() {
				t.Errorf("chunk %d click %d frames = %d, want %d", chunk, i, got[i].Sample.Frames(), want[i].Sample.Frames())
			}
		}
	}
}

func TestClicks_NoRetriggerWhileCapturing(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	// The second burst lands inside the first capture.
	src := audiotest.NewClickSource(6000, 480, 100, 8, 200, 1000)

	if got := clicks(t, cfg, src); len(got) != 1 {
		t.Errorf("clicks = %d, want 1", len(got))
	}
}

func TestClicks_DiscardsUnfinishedCapture(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	src := audiotest.NewClickSource(1000, 480, 100, 8, 500)

	if got := clicks(t, cfg, src); len(got) != 0 {
		t.Errorf("clicks = %d, want 0", len(got))
	}
}

func TestClicks_Thresholds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Config)
		amp    float64
		want   int
	}{
		{"default", func(*Config) {}, 0.5, 1},
		{"level too low", func(*Config) {}, 0.01, 0},
		{"level threshold raised", func(c *Config) { c.LevelThreshold = 0.6 }, 0.5, 0},
		{"roc threshold raised", func(c *Config) { c.RocThreshold = 0.01 }, 0.5, 0},
		// Captures shorter than the window complete on their trigger sample,
		// so every sample of the rising edge past the level threshold
		// (frames 212 to 327) triggers again.
		{"short capture", func(c *Config) { c.CaptureLength = 16 }, 0.5, 116},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := testConfig()
			tt.mutate(&cfg)
			src := audiotest.NewClickSource(4000, 480, 1024, tt.amp, 200)

			got := clicks(t, cfg, src)
			if len(got) != tt.want {
				t.Fatalf("clicks = %d, want %d", len(got), tt.want)
			}
			want := max(cfg.CaptureLength, cfg.SmoothingSize) + 1
			for i, c := range got {
				if c.Sample.Frames() != want {
					t.Errorf("click %d frames = %d, want %d", i, c.Sample.Frames(), want)
				}
			}
		})
	}
}

func TestClicks_Channels(t *testing.T) {
	t.Parallel()

	spike := func(frame, ch int) float64 {
		if ch == 1 && frame >= 200 && frame < 1200 {
			return 8
		}
		return 0
	}

	tests := []struct {
		name    string
		channel int
		want    int
	}{
		{"silent channel", 0, 0},
		{"spiking channel", 1, 1},
		{"mixdown", MixDown, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := testConfig()
			cfg.Channel = tt.channel
			src := audiotest.NewMockSource(2, 4000, 480, spike)

			if got := clicks(t, cfg, src); len(got) != tt.want {
				t.Errorf("clicks = %d, want %d", len(got), tt.want)
			}
		})
	}
}

func TestClicks_MixDownSearchesMean(t *testing.T) {
	t.Parallel()

	burst := func(frame, ch int) float64 {
		if frame >= 200 && frame < 1200 {
			return []float64{2, 6}[ch]
		}
		return 0
	}

	cfg := testConfig()
	cfg.Channel = MixDown
	got := clicks(t, cfg, audiotest.NewMockSource(2, 4000, 480, burst))
	if len(got) != 1 {
		t.Fatalf("clicks = %d, want 1", len(got))
	}

	c := got[0]
	if c.Sample.Channels() != 1 {
		t.Errorf("channels = %d, want 1", c.Sample.Channels())
	}
	// A mean of 4 passes the level threshold on the second burst sample.
	wantStart := audio.FramesToTicks(201, audio.InternalRate) -
		audio.FramesToTicks(int64(cfg.SmoothingSize), audio.InternalRate)
	if c.Start != wantStart {
		t.Errorf("start = %d, want %d", c.Start, wantStart)
	}
	if v := c.Sample.Data()[cfg.SmoothingSize]; v != 4 {
		t.Errorf("trigger value = %v, want 4", v)
	}
}

func TestClicks_ChannelOutOfRange(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Channel = 2
	stage, err := Clicks(cfg)
	if err != nil {
		t.Fatalf("Clicks() error = %v", err)
	}

	_, err = pipeline.Collect(stage(audiotest.NewSilentSource(2, 100, 50)))
	if !errors.Is(err, ErrChannelOutOfRange) {
		t.Errorf("error = %v, want ErrChannelOutOfRange", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v", err)
	}

	bad := Config{Channel: -2, CaptureLength: 0, SmoothingSize: 0}
	err := bad.Validate()
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("Validate() = %v, want ErrInvalidConfig", err)
	}
	if n := len(err.(interface{ Unwrap() []error }).Unwrap()); n != 3 {
		t.Errorf("joined errors = %d, want 3", n)
	}

	if _, err := Clicks(bad); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Clicks() error = %v, want ErrInvalidConfig", err)
	}
}

func TestClicks_ClosesSource(t *testing.T) {
	t.Parallel()

	src := audiotest.NewSilentSource(1, 100, 50)
	stage, err := Clicks(DefaultConfig())
	if err != nil {
		t.Fatalf("Clicks() error = %v", err)
	}
	if err := stage(src).Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if !src.Closed() {
		t.Error("source not closed")
	}
}
