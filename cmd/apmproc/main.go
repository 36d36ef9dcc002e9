// SPDX-License-Identifier: EPL-2.0

// Command apmproc runs an audio file through an audio processing engine
// and writes the processed capture stream as a 16-bit WAV file.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"go.uber.org/zap"

	"github.com/ik5/audproc"
	"github.com/ik5/audproc/apm"
	"github.com/ik5/audproc/audio"
	_ "github.com/ik5/audproc/engine/passthrough"
	_ "github.com/ik5/audproc/engine/webrtc"
	"github.com/ik5/audproc/formats/wav"
)

type options struct {
	capture  string
	render   string
	out      string
	engine   string
	config   string
	rate     int
	channels int
	delayMs  int
	debug    bool
}

func main() {
	var opts options
	flag.StringVar(&opts.capture, "capture", "", "Near-end input file (wav, aiff, mp3, ogg)")
	flag.StringVar(&opts.render, "render", "", "Far-end reference file for echo cancellation (optional)")
	flag.StringVar(&opts.out, "out", "", "Output WAV file")
	flag.StringVar(&opts.engine, "engine", "passthrough", "Engine name ("+strings.Join(apm.Engines(), ", ")+")")
	flag.StringVar(&opts.config, "config", "", "JSON processing config (optional)")
	flag.IntVar(&opts.rate, "rate", 16000, "Processing sample rate in Hz")
	flag.IntVar(&opts.channels, "channels", 1, "Processing channel count")
	flag.IntVar(&opts.delayMs, "delay", 0, "Render to capture delay in ms")
	flag.BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	flag.Parse()

	if opts.capture == "" || opts.out == "" {
		fmt.Fprintln(os.Stderr, "Usage: apmproc -capture <in> -out <out.wav> [-render <far>] [-engine name] [-config cfg.json]")
		fmt.Fprintln(os.Stderr, "               [-rate 16000] [-channels 1] [-delay ms] [-debug]")
		os.Exit(2)
	}

	log, err := newLogger(opts.debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()
	apm.SetLogger(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, log, opts); err != nil {
		log.Error("processing failed", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func run(ctx context.Context, log *zap.Logger, opts options) error {
	cfg, err := loadConfig(opts.config)
	if err != nil {
		return err
	}

	reg := audproc.NewRegistry()

	capture, err := audproc.OpenFile(reg, opts.capture)
	if err != nil {
		return fmt.Errorf("capture: %w", err)
	}
	defer capture.Close()

	var render audio.Source
	if opts.render != "" {
		r, err := audproc.OpenFile(reg, opts.render)
		if err != nil {
			return fmt.Errorf("render: %w", err)
		}
		defer r.Close()
		render = r
	}

	ap, err := apm.NewNamed(opts.engine, apm.WithLogger(log))
	if err != nil {
		return err
	}
	if err := ap.Initialize(); err != nil {
		return fmt.Errorf("engine %s: %w", opts.engine, err)
	}
	defer ap.Dispose()

	stream := apm.NewStreamConfig(opts.rate, opts.channels)

	f, err := os.Create(opts.out)
	if err != nil {
		return err
	}
	defer f.Close()

	w, err := wav.NewWriter(f, stream.SampleRate, stream.Channels)
	if err != nil {
		return err
	}

	res, err := audproc.Process(ctx, ap, capture, render, audproc.Options{
		Stream:  stream,
		Config:  &cfg,
		DelayMs: opts.delayMs,
		OnFrame: w.Write,
		Logger:  log,
	})
	if cerr := w.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}

	log.Info("processing complete",
		zap.String("engine", opts.engine),
		zap.String("out", opts.out),
		zap.Int("frames", res.Frames),
		zap.Int("render_frames", res.RenderFrames),
		zap.Int("failed_frames", res.FailedFrames))

	fmt.Printf("Wrote %s: %d frames at %s\n", opts.out, res.Frames, res.OutStream)
	if res.FailedFrames > 0 {
		fmt.Printf("Engine status %d on %d frames\n", res.LastBadStatus, res.FailedFrames)
	}
	fmt.Printf("Statistics: %s\n", res.Stats)
	return nil
}
