// SPDX-License-Identifier: EPL-2.0

package audproc

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/ik5/audproc/apm"
	"github.com/ik5/audproc/audio"
)

// Options controls Process. The zero value processes the capture source at
// its own rate and channel count with the engine's current config.
type Options struct {
	// Stream is the layout capture and render frames are converted to
	// before they reach the engine. Zero means the capture source's format.
	Stream apm.StreamConfig
	// OutStream is the layout of processed capture frames. Zero means Stream.
	OutStream apm.StreamConfig
	// Config is applied before the first frame when set.
	Config *apm.Config
	// DelayMs is passed to SetStreamDelayMs when a render source is given.
	DelayMs int
	// OnFrame receives every processed capture frame. The slice is reused
	// between calls. When set, Result.Output stays empty.
	OnFrame func(out []int16) error
	Logger  *zap.Logger
}

// Result summarizes a Process run.
type Result struct {
	// Output holds the processed capture audio laid out as OutStream.
	Output    []int16
	OutStream apm.StreamConfig

	Frames        int
	RenderFrames  int
	FailedFrames  int // frames whose engine status was not zero
	LastBadStatus int

	Stats apm.Stats
}

func (o Options) logger() *zap.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return apm.Logger()
}

// Process runs capture, and render when not nil, through ap in 10 ms
// frames. Each render frame goes through ProcessReverseStream before the
// capture frame of the same period goes through ProcessStream. The render
// source ending early leaves the remaining capture frames without a far
// end. Processing stops when capture ends or ctx is done.
//
// ap must be initialized. Sources are not closed.
func Process(ctx context.Context, ap *apm.AudioProcessing, capture, render audio.Source, opts Options) (Result, error) {
	if ap == nil {
		return Result{}, ErrNilProcessor
	}
	if capture == nil {
		return Result{}, ErrNilSource
	}

	log := opts.logger()

	in := opts.Stream
	if in == (apm.StreamConfig{}) {
		in = apm.StreamConfigFromFormat(capture.Format())
	}
	out := opts.OutStream
	if out == (apm.StreamConfig{}) {
		out = in
	}
	if err := in.Validate(); err != nil {
		return Result{}, fmt.Errorf("stream: %w", err)
	}
	if err := out.Validate(); err != nil {
		return Result{}, fmt.Errorf("output stream: %w", err)
	}

	if opts.Config != nil {
		if err := ap.ApplyConfig(*opts.Config); err != nil {
			return Result{}, err
		}
	}

	capReader, err := audio.NewFrameReader(capture, in.SampleRate, in.Channels)
	if err != nil {
		return Result{}, fmt.Errorf("capture: %w", err)
	}

	var renderReader *audio.FrameReader
	if render != nil {
		renderReader, err = audio.NewFrameReader(render, in.SampleRate, in.Channels)
		if err != nil {
			return Result{}, fmt.Errorf("render: %w", err)
		}
		status, err := ap.SetStreamDelayMs(opts.DelayMs)
		if err != nil {
			return Result{}, err
		}
		if status != 0 {
			log.Warn("stream delay not accepted as is",
				zap.Int("delay_ms", opts.DelayMs), zap.Int("status", status))
		}
	}

	log.Debug("processing started",
		zap.Stringer("stream", in), zap.Stringer("out_stream", out),
		zap.Bool("render", render != nil))

	res := Result{OutStream: out}

	capFrame := make([]int16, in.Samples())
	renderFrame := make([]int16, in.Samples())
	renderOut := make([]int16, in.Samples())
	dst := make([]int16, out.Samples())

	for {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		n, err := capReader.ReadFrame(capFrame)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return res, fmt.Errorf("capture: %w", err)
		}

		if renderReader != nil {
			ok, err := processRender(ap, renderReader, renderFrame, renderOut, in)
			if err != nil {
				return res, err
			}
			if ok {
				res.RenderFrames++
			} else {
				log.Debug("render source ended", zap.Int("frame", res.Frames))
				renderReader = nil
			}
		}

		status, err := ap.ProcessStream(capFrame, in, out, dst)
		if err != nil {
			return res, err
		}
		if status != 0 {
			res.FailedFrames++
			res.LastBadStatus = status
			log.Debug("engine rejected capture frame",
				zap.Int("frame", res.Frames), zap.Int("status", status))
		}
		res.Frames++

		valid := dst[:validSamples(n, in, out)]
		if opts.OnFrame != nil {
			if err := opts.OnFrame(valid); err != nil {
				return res, err
			}
		} else {
			res.Output = append(res.Output, valid...)
		}
	}

	if err := ap.UpdateStats(&res.Stats); err != nil {
		return res, err
	}

	log.Debug("processing finished",
		zap.Int("frames", res.Frames),
		zap.Int("render_frames", res.RenderFrames),
		zap.Int("failed_frames", res.FailedFrames))

	return res, nil
}

// processRender feeds the next render frame to the engine. It reports
// false once the render source is exhausted.
func processRender(ap *apm.AudioProcessing, r *audio.FrameReader, frame, out []int16, cfg apm.StreamConfig) (bool, error) {
	_, err := r.ReadFrame(frame)
	if errors.Is(err, io.EOF) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("render: %w", err)
	}

	if _, err := ap.ProcessReverseStream(frame, cfg, cfg, out); err != nil {
		return false, err
	}
	return true, nil
}

// validSamples maps n source samples of an in frame to the number of
// output samples that carry audio, rounding up to whole frames.
func validSamples(n int, in, out apm.StreamConfig) int {
	if n >= in.Samples() {
		return out.Samples()
	}
	frames := n / in.Channels
	outFrames := (frames*out.Frames() + in.Frames() - 1) / in.Frames()
	return outFrames * out.Channels
}
