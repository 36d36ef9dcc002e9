// SPDX-License-Identifier: EPL-2.0

package passthrough

import (
	"sync"

	"go.uber.org/zap"

	"github.com/ik5/audproc/apm"
	"github.com/ik5/audproc/utils"
)

// Name is the registry key of this engine.
const Name = "passthrough"

func init() {
	apm.Register(Name, func() apm.Engine { return New() })
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine's logger. The apm package logger is used
// otherwise.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		e.log = l
	}
}

// Engine implements apm.Engine. All methods are safe for concurrent use;
// processing calls are serialized.
type Engine struct {
	refs apm.RefCount
	log  *zap.Logger

	mu       sync.Mutex
	cfg      apm.Config
	delayMs  int
	delaySet bool
	level    *float64
	capture  converter
	render   converter
}

// New returns an engine holding one reference, configured with
// apm.DefaultConfig.
func New(opts ...Option) *Engine {
	e := &Engine{cfg: apm.DefaultConfig()}
	for _, opt := range opts {
		opt(e)
	}
	if e.log == nil {
		e.log = apm.Logger()
	}
	return e
}

func (e *Engine) ApplyConfig(cfg apm.Config) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.cfg = cfg
	e.log.Debug("config applied",
		zap.Float64("gain", captureGain(cfg)),
		zap.Bool("gain_controller2", cfg.GainController2.Enabled),
	)
}

// captureGain is the linear product of every enabled fixed gain stage.
func captureGain(cfg apm.Config) float64 {
	g := 1.0
	if cfg.PreAmplifier.Enabled {
		g *= cfg.PreAmplifier.FixedGainFactor
	}
	if cfg.CaptureLevelAdjustment.Enabled {
		g *= cfg.CaptureLevelAdjustment.PreGainFactor * cfg.CaptureLevelAdjustment.PostGainFactor
	}
	if cfg.GainController2.Enabled {
		g *= utils.GainFromDb(cfg.GainController2.FixedDigitalGainDb)
	}
	return g
}

func checkStream(c apm.StreamConfig) int {
	if c.SampleRate < minSampleRate || c.SampleRate > maxSampleRate {
		return StatusBadSampleRate
	}
	if c.Channels <= 0 || c.Channels > maxChannels {
		return StatusBadNumberChannels
	}
	return StatusOK
}

func checkChunk(src []int16, in, out apm.StreamConfig, dst []int16) int {
	if src == nil || dst == nil {
		return StatusNullPointer
	}
	if s := checkStream(in); s != StatusOK {
		return s
	}
	if s := checkStream(out); s != StatusOK {
		return s
	}
	if len(src) != in.Samples() || len(dst) != out.Samples() {
		return StatusBadDataLength
	}
	return StatusOK
}

func (e *Engine) ProcessStream(src []int16, in, out apm.StreamConfig, dst []int16) int {
	if s := checkChunk(src, in, out, dst); s != StatusOK {
		return s
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	gain := float32(captureGain(e.cfg))
	chans := e.capture.convert(src, in, out)
	for ch, frames := range chans {
		for f, v := range frames {
			dst[f*out.Channels+ch] = utils.ClampInt16(v * gain)
		}
	}

	level := utils.RMSDbfs(dst)
	e.level = &level

	return StatusOK
}

func (e *Engine) ProcessReverseStream(src []int16, in, out apm.StreamConfig, dst []int16) int {
	if s := checkChunk(src, in, out, dst); s != StatusOK {
		return s
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	chans := e.render.convert(src, in, out)
	for ch, frames := range chans {
		for f, v := range frames {
			dst[f*out.Channels+ch] = utils.ClampInt16(v)
		}
	}

	return StatusOK
}

// SetStreamDelayMs stores ms clamped to [0,500]. A clamped value is kept
// and reported with StatusBadStreamParameterWarn.
func (e *Engine) SetStreamDelayMs(ms int) int {
	status := StatusOK
	if ms < 0 {
		ms, status = 0, StatusBadStreamParameterWarn
	} else if ms > maxStreamDelayMs {
		ms, status = maxStreamDelayMs, StatusBadStreamParameterWarn
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.delayMs = ms
	e.delaySet = true
	return status
}

func (e *Engine) StreamDelayMs() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.delayMs
}

// Statistics reports DelayMs once a delay was set and OutputRMSDbfs once a
// capture chunk was processed.
func (e *Engine) Statistics() apm.Stats {
	e.mu.Lock()
	defer e.mu.Unlock()

	var s apm.Stats
	if e.delaySet {
		d := int32(e.delayMs)
		s.DelayMs = &d
	}
	if e.level != nil {
		l := *e.level
		s.OutputRMSDbfs = &l
	}
	return s
}

func (e *Engine) AddRef() { e.refs.IncRef() }

func (e *Engine) Release() apm.ReleaseStatus {
	if !e.refs.DecRef() {
		return apm.OtherRefsRemained
	}
	e.log.Debug("engine destroyed", zap.String("engine", Name))
	return apm.DroppedLastRef
}
