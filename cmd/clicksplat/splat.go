// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/ik5/clicksplat"
	"github.com/ik5/clicksplat/audio"
	"github.com/ik5/clicksplat/formats/wav"
	"github.com/ik5/clicksplat/internal/config"
	"github.com/ik5/clicksplat/pcm"
	"github.com/ik5/clicksplat/pipeline"
	"gopkg.in/yaml.v3"
)

// splatDoc is the YAML document written per click.
type splatDoc struct {
	Source string     `yaml:"source"`
	Start  int64      `yaml:"start"`
	Rate   int        `yaml:"rate"`
	Bins   int        `yaml:"bins"`
	Clip   string     `yaml:"clip,omitempty"`
	Frames []frameDoc `yaml:"frames"`
}

type frameDoc struct {
	Start int64 `yaml:"start"`
	// Magnitudes per channel.
	Magnitudes [][]float64 `yaml:"magnitudes,flow"`
}

// splatWriter renders groups of one input file into its own directory.
type splatWriter struct {
	source     string
	dir        string
	writeClips bool
	clipFormat wav.Format
	pcmOpts    []pcm.Option
}

func newSplatWriter(cfg *config.Config, source, dir string) *splatWriter {
	return &splatWriter{
		source:     source,
		dir:        dir,
		writeClips: cfg.Output.WriteClips,
		clipFormat: wav.NewFormat(1, audio.InternalRate, cfg.Output.ClipBitDepth),
		pcmOpts:    cfg.PCM.PCMOptions(),
	}
}

func (w *splatWriter) Render(ctx context.Context, g clicksplat.Group) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return err
	}

	name := strconv.FormatInt(g.Start, 10)
	doc := splatDoc{
		Source: w.source,
		Start:  g.Start,
		Rate:   audio.InternalRate,
		Frames: make([]frameDoc, 0, len(g.Frames)),
	}
	for _, f := range g.Frames {
		doc.Bins = f.Sample.Frames()
		mags := make([][]float64, f.Sample.Channels())
		for c := range mags {
			mags[c] = f.Sample.Channel(c).Values()
		}
		doc.Frames = append(doc.Frames, frameDoc{Start: f.Start, Magnitudes: mags})
	}

	if w.writeClips {
		doc.Clip = name + ".wav"
		// The clip file starts at the click, which may lie before the
		// start of the recording.
		clip := audio.Snippet{Sample: g.Click.Sample}
		if err := wav.WriteFile(filepath.Join(w.dir, doc.Clip), w.clipFormat, pipeline.FromSlice(clip), w.pcmOpts...); err != nil {
			return fmt.Errorf("write clip: %w", err)
		}
	}

	return writeYAML(filepath.Join(w.dir, name+".yaml"), doc)
}

func writeYAML(path string, v any) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode %q: %w", path, err)
	}
	return enc.Close()
}
