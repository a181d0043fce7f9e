// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"slices"
	"testing"

	"github.com/ik5/clicksplat/pipeline"
)

func TestSample_Mono(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		channels int
		in       []float64
		want     []float64
	}{
		{"mono passthrough", 1, []float64{0.1, 0.2}, []float64{0.1, 0.2}},
		{"stereo", 2, []float64{0.5, -0.5, 1, 0}, []float64{0, 0.5}},
		{"three channels", 3, []float64{0.3, 0.6, 0.9, -0.3, -0.6, -0.9}, []float64{0.6, -0.6}},
		{"empty stereo", 2, nil, []float64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s, err := NewSample(tt.channels, tt.in)
			if err != nil {
				t.Fatalf("NewSample() error = %v", err)
			}
			m := s.Mono()
			if m.Channels() != 1 && len(tt.in) > 0 {
				t.Errorf("Channels() = %d, want 1", m.Channels())
			}
			got := m.Data()
			if len(got) != len(tt.want) {
				t.Fatalf("got %d values, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if d := got[i] - tt.want[i]; d > 1e-12 || d < -1e-12 {
					t.Errorf("value[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestMixDown(t *testing.T) {
	t.Parallel()

	s, _ := NewSample(2, []float64{1, 0, 0, 1})
	out, err := pipeline.Collect(MixDown()(pipeline.FromSlice(Snippet{Start: 77, Sample: s})))
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	if out[0].Start != 77 {
		t.Errorf("Start = %d, want 77", out[0].Start)
	}
	if !slices.Equal(out[0].Sample.Data(), []float64{0.5, 0.5}) {
		t.Errorf("Data() = %v, want [0.5 0.5]", out[0].Sample.Data())
	}
}
