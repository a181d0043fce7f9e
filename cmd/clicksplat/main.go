// SPDX-License-Identifier: EPL-2.0

// Command clicksplat finds clicks in WAV and AIFF recordings and writes the
// magnitude spectra of every selected click as a YAML document, optionally
// with the captured click as a WAV file.
//
// Usage:
//
//	clicksplat [-config clicksplat.yaml] [-out dir] [-workers n] input...
//
// Results for input "a/b/rec.wav" go to "<out>/rec/<start>.yaml" and
// "<out>/rec/<start>.wav", where start is the click start in microseconds.
// When several inputs share a name, later ones get "<out>/rec-2/",
// "<out>/rec-3/" and so on, in argument order.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/ik5/clicksplat"
	"github.com/ik5/clicksplat/internal/config"
	"github.com/ik5/clicksplat/internal/observe"
	"golang.org/x/sync/errgroup"
)

// Exit codes.
const (
	exitOK     = 0
	exitFailed = 1
	exitUsage  = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stderr io.Writer) int {
	fs := flag.NewFlagSet("clicksplat", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "YAML configuration file")
	outDir := fs.String("out", "", "output directory (overrides output.dir)")
	workers := fs.Int("workers", 0, "files processed at the same time (overrides workers)")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: clicksplat [-config file.yaml] [-out dir] [-workers n] input.{wav|aiff}...")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return exitUsage
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			fmt.Fprintln(stderr, err)
			return exitUsage
		}
	}
	if *outDir != "" {
		cfg.Output.Dir = *outDir
	}
	if *workers > 0 {
		cfg.Workers = *workers
	}
	if err := config.Validate(cfg); err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}

	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: cfg.Log.Level.Slog()}))

	provider := observe.NewProvider()
	defer func() { _ = provider.Shutdown(context.Background()) }()
	met, err := observe.NewMetrics(provider)
	if err != nil {
		logger.Error("metrics setup failed", "err", err)
		return exitFailed
	}

	pipelineCfg := cfg.Pipeline()
	proc := &clicksplat.Processor{
		Config:   pipelineCfg,
		Registry: pipelineCfg.NewRegistry(),
		Metrics:  met,
		Logger:   logger,
	}

	var failed atomic.Int32
	var g errgroup.Group
	g.SetLimit(cfg.Workers)
	inputs := fs.Args()
	dirs := outputDirs(cfg.Output.Dir, inputs)
	for i, path := range inputs {
		g.Go(func() error {
			w := newSplatWriter(cfg, path, dirs[i])
			if _, err := proc.ProcessFile(ctx, path, w); err != nil {
				logger.Error("file failed", "file", path, "err", err)
				failed.Add(1)
			}
			return nil
		})
	}
	_ = g.Wait()

	logSummary(logger, provider)

	if failed.Load() > 0 {
		return exitFailed
	}
	return exitOK
}

func logSummary(logger *slog.Logger, provider *observe.Provider) {
	totals, err := provider.Totals(context.Background())
	if err != nil {
		logger.Warn("metrics summary unavailable", "err", err)
		return
	}
	attrs := make([]any, 0, 2*len(totals))
	for _, k := range observe.SortedKeys(totals) {
		attrs = append(attrs, strings.TrimPrefix(k, "clicksplat."), totals[k])
	}
	logger.Info("done", attrs...)
}

// outputDirs returns one distinct results directory per input.
func outputDirs(root string, inputs []string) []string {
	used := make(map[string]bool, len(inputs))
	dirs := make([]string, len(inputs))
	for i, input := range inputs {
		base := filepath.Base(input)
		name := strings.TrimSuffix(base, filepath.Ext(base))
		dir := name
		for n := 2; used[dir]; n++ {
			dir = name + "-" + strconv.Itoa(n)
		}
		used[dir] = true
		dirs[i] = filepath.Join(root, dir)
	}
	return dirs
}
