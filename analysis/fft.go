// SPDX-License-Identifier: EPL-2.0

package analysis

import (
	"fmt"
	"math"
	"math/bits"

	"github.com/ik5/clicksplat/audio"
	"github.com/ik5/clicksplat/pipeline"
	"github.com/mjibson/go-dsp/fft"
)

// checkSize verifies n is an admissible FFT length.
func checkSize(n int) error {
	if n < 1 || bits.OnesCount(uint(n)) != 1 {
		return fmt.Errorf("%d frames: %w", n, ErrUnsupportedFFTSize)
	}
	return nil
}

// Forward transforms every channel of s. For each input channel the output
// holds, in order, the original values when addChannels is set, then the real
// parts, then the imaginary parts.
func Forward(s audio.Sample, addChannels bool) (audio.Sample, error) {
	if err := checkSize(s.Frames()); err != nil {
		return audio.Sample{}, err
	}

	var out [][]float64
	for c := range s.Channels() {
		values := s.Channel(c).Values()
		in := make([]complex128, len(values))
		for i, v := range values {
			in[i] = complex(v, 0)
		}
		spec := fft.FFT(in)

		re := make([]float64, len(spec))
		im := make([]float64, len(spec))
		for i, z := range spec {
			re[i], im[i] = real(z), imag(z)
		}
		if addChannels {
			out = append(out, values)
		}
		out = append(out, re, im)
	}
	return audio.FromChannels(out)
}

// Inverse treats channels pairwise as (real, imaginary) spectra and returns
// one time-domain channel per pair, keeping the real part.
func Inverse(s audio.Sample) (audio.Sample, error) {
	if err := checkSize(s.Frames()); err != nil {
		return audio.Sample{}, err
	}
	if s.Channels()%2 != 0 {
		return audio.Sample{}, fmt.Errorf("%d channels: %w", s.Channels(), ErrOddChannelCount)
	}

	out := make([][]float64, 0, s.Channels()/2)
	for c := 0; c < s.Channels(); c += 2 {
		re, im := s.Channel(c), s.Channel(c+1)
		in := make([]complex128, re.Len())
		for i := range in {
			in[i] = complex(re.At(i), im.At(i))
		}
		td := fft.IFFT(in)

		values := make([]float64, len(td))
		for i, z := range td {
			values[i] = real(z)
		}
		out = append(out, values)
	}
	return audio.FromChannels(out)
}

// Magnitudes treats channels pairwise as (real, imaginary) spectra and
// returns the magnitude of the first half of every pair. The second half of
// the spectrum of a real signal mirrors the first.
func Magnitudes(s audio.Sample) (audio.Sample, error) {
	if s.Channels()%2 != 0 {
		return audio.Sample{}, fmt.Errorf("%d channels: %w", s.Channels(), ErrOddChannelCount)
	}

	half := s.Frames() / 2
	out := make([][]float64, 0, s.Channels()/2)
	for c := 0; c < s.Channels(); c += 2 {
		re, im := s.Channel(c), s.Channel(c+1)
		mags := make([]float64, half)
		for i := range mags {
			mags[i] = math.Hypot(re.At(i), im.At(i))
		}
		out = append(out, mags)
	}
	return audio.FromChannels(out)
}

// FFT is a stage applying Forward to every snippet.
func FFT(addChannels bool) pipeline.Stage[audio.Snippet, audio.Snippet] {
	return sampleStage(func(s audio.Sample) (audio.Sample, error) { return Forward(s, addChannels) })
}

// IFFT is a stage applying Inverse to every snippet.
func IFFT() pipeline.Stage[audio.Snippet, audio.Snippet] {
	return sampleStage(Inverse)
}

// ExtractSpectrum is a stage applying Magnitudes to every snippet.
func ExtractSpectrum() pipeline.Stage[audio.Snippet, audio.Snippet] {
	return sampleStage(Magnitudes)
}

func sampleStage(fn func(audio.Sample) (audio.Sample, error)) pipeline.Stage[audio.Snippet, audio.Snippet] {
	return pipeline.Map(func(s audio.Snippet) (audio.Snippet, error) {
		out, err := fn(s.Sample)
		if err != nil {
			return audio.Snippet{}, fmt.Errorf("snippet at %d: %w", s.Start, err)
		}
		return audio.Snippet{Start: s.Start, Sample: out}, nil
	})
}

// Spectrum chains Rechunk(size), Window(w), FFT(false) and ExtractSpectrum:
// every output snippet holds size/2 magnitude frames per input channel.
func Spectrum(size int, w WindowFunc) (pipeline.Stage[audio.Snippet, audio.Snippet], error) {
	if err := checkSize(size); err != nil {
		return nil, err
	}
	rechunk, err := Rechunk(size)
	if err != nil {
		return nil, err
	}
	if w == nil {
		w = Rectangular()
	}
	return pipeline.Chain(
		pipeline.Chain(rechunk, Window(w)),
		pipeline.Chain(FFT(false), ExtractSpectrum()),
	), nil
}
