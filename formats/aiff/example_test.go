// SPDX-License-Identifier: EPL-2.0

package aiff_test

import (
	"log"
	"os"

	"github.com/ik5/clicksplat/formats/aiff"
	"github.com/ik5/clicksplat/formats/wav"
)

// ExampleDecoder_Decode_convertToWav demonstrates converting AIFF to WAV format.
func ExampleDecoder_Decode_convertToWav() {
	f, err := os.Open("input.aiff")
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	stream, err := aiff.Decoder{}.Decode(f)
	if err != nil {
		log.Fatal(err)
	}

	if err := wav.WriteFile("output.wav", wav.NewFormat(2, 44100, 16), stream); err != nil {
		log.Fatal(err)
	}
}
