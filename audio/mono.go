// SPDX-License-Identifier: EPL-2.0

package audio

import "github.com/ik5/clicksplat/pipeline"

// Mono averages all channels of s into a single channel.
func (s Sample) Mono() Sample {
	channels := s.channels
	if channels <= 1 {
		return s
	}

	frames := s.Frames()
	out := make([]float64, frames)
	inv := 1.0 / float64(channels)

	switch channels {
	case 2:
		for f := range frames {
			idx := f << 1
			out[f] = (s.data[idx] + s.data[idx+1]) * 0.5
		}
	default:
		for f := range frames {
			sum := 0.0
			base := f * channels
			for c := range channels {
				sum += s.data[base+c]
			}
			out[f] = sum * inv
		}
	}

	return Sample{channels: 1, data: out}
}

// MixDown is a stage that converts every snippet to mono.
func MixDown() pipeline.Stage[Snippet, Snippet] {
	return pipeline.Map(func(s Snippet) (Snippet, error) {
		return Snippet{Start: s.Start, Sample: s.Sample.Mono()}, nil
	})
}
