// SPDX-License-Identifier: EPL-2.0

package audio

import "github.com/ik5/clicksplat/pipeline"

// RateConverter changes the frame rate of a stream by repeating or dropping
// whole frames. It keeps two counters across calls: frames consumed and frames
// produced. Whenever the produced count drifts more than one frame away from
// consumed*target/source, the current frame is duplicated or dropped. There is
// no interpolation, so the long-run rate is exact but the signal aliases.
//
// The ratio is kept as an integer fraction so the drift test is exact.
type RateConverter struct {
	num, den int64

	consumed int64
	produced int64
}

// NewRateConverter converts from sourceRate to targetRate.
func NewRateConverter(sourceRate, targetRate int) *RateConverter {
	num, den := int64(targetRate), int64(sourceRate)
	g := gcd(num, den)
	return &RateConverter{num: num / g, den: den / g}
}

// Ratio is target/source.
func (r *RateConverter) Ratio() float64 { return float64(r.num) / float64(r.den) }

// Counters reports frames consumed and produced so far.
func (r *RateConverter) Counters() (consumed, produced int64) {
	return r.consumed, r.produced
}

// Reset clears both counters.
func (r *RateConverter) Reset() {
	r.consumed, r.produced = 0, 0
}

// drift is (consumed*ratio - produced) scaled by den.
func (r *RateConverter) drift() int64 {
	return r.consumed*r.num - r.produced*r.den
}

// Convert returns s at the target rate. With a ratio of one the input is
// returned as is.
func (r *RateConverter) Convert(s Sample) Sample {
	frames := s.Frames()
	if r.num == r.den || frames == 0 {
		r.consumed += int64(frames)
		r.produced += int64(frames)
		return s
	}

	out := make([]float64, 0, (int64(frames)*r.num/r.den+2)*int64(s.channels))
	for i := range frames {
		frame := s.Frame(i)
		for r.drift() > r.den {
			out = append(out, frame...)
			r.produced++
		}
		// Each frame moves the drift by at most one frame downwards, so a
		// single drop always brings it back within bounds.
		dropped := false
		if r.drift() < -r.den {
			dropped = true
			r.produced--
		}
		if !dropped {
			out = append(out, frame...)
		}
		r.consumed++
		r.produced++
	}

	return Sample{channels: s.channels, data: out}
}

// Resample returns a stage converting snippets from sourceRate to
// targetRate. Start ticks are left untouched since they are rate independent.
func Resample(sourceRate, targetRate int) pipeline.Stage[Snippet, Snippet] {
	return func(src pipeline.Stream[Snippet]) pipeline.Stream[Snippet] {
		conv := NewRateConverter(sourceRate, targetRate)
		return pipeline.Map(func(s Snippet) (Snippet, error) {
			return Snippet{Start: s.Start, Sample: conv.Convert(s.Sample)}, nil
		})(src)
	}
}

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	if a == 0 {
		return 1
	}
	return a
}
