// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"bytes"
	"encoding/binary"
)

// Chunk returns a RIFF chunk with the given tag and payload.
func Chunk(tag string, payload []byte) []byte {
	buf := new(bytes.Buffer)
	buf.WriteString(tag)
	binary.Write(buf, binary.LittleEndian, uint32(len(payload)))
	buf.Write(payload)
	return buf.Bytes()
}

// RIFF returns a RIFF record of form holding chunks, with a correct size.
func RIFF(form string, chunks ...[]byte) []byte {
	body := new(bytes.Buffer)
	body.WriteString(form)
	for _, c := range chunks {
		body.Write(c)
	}
	buf := new(bytes.Buffer)
	buf.WriteString("RIFF")
	binary.Write(buf, binary.LittleEndian, uint32(body.Len()))
	buf.Write(body.Bytes())
	return buf.Bytes()
}

// FmtPayload returns a 16 byte fmt chunk payload.
func FmtPayload(audioFormat uint16, channels, sampleRate, bitsPerSample int) []byte {
	blockAlign := channels * bitsPerSample / 8
	buf := new(bytes.Buffer)
	binary.Write(buf, binary.LittleEndian, audioFormat)
	binary.Write(buf, binary.LittleEndian, uint16(channels))
	binary.Write(buf, binary.LittleEndian, uint32(sampleRate))
	binary.Write(buf, binary.LittleEndian, uint32(sampleRate*blockAlign))
	binary.Write(buf, binary.LittleEndian, uint16(blockAlign))
	binary.Write(buf, binary.LittleEndian, uint16(bitsPerSample))
	return buf.Bytes()
}

// WAV returns a minimal PCM WAV file holding data.
func WAV(channels, sampleRate, bitsPerSample int, data []byte) []byte {
	return RIFF("WAVE",
		Chunk("fmt ", FmtPayload(1, channels, sampleRate, bitsPerSample)),
		Chunk("data", data),
	)
}

// Int16LE encodes samples as little-endian 16-bit PCM.
func Int16LE(samples ...int16) []byte {
	buf := new(bytes.Buffer)
	binary.Write(buf, binary.LittleEndian, samples)
	return buf.Bytes()
}

// PaddedChunk returns a RIFF chunk like Chunk, followed by a zero pad byte
// when the payload has an odd length.
func PaddedChunk(tag string, payload []byte) []byte {
	c := Chunk(tag, payload)
	if len(payload)%2 != 0 {
		c = append(c, 0)
	}
	return c
}
