// SPDX-License-Identifier: EPL-2.0

package apm

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	goaudio "github.com/go-audio/audio"
	"go.uber.org/zap"

	"github.com/ik5/audproc/internal/handle"
)

// Handle identifies an engine instance held by an AudioProcessing wrapper.
// The zero Handle means no instance.
type Handle = handle.Handle

// instances holds every live engine created through Initialize.
var instances = handle.NewTable[Engine]()

const (
	opApplyConfig          = "apply config"
	opProcessStream        = "process stream"
	opProcessReverseStream = "process reverse stream"
	opSetStreamDelay       = "set stream delay"
	opStreamDelay          = "stream delay"
	opDispose              = "dispose"
	opUpdateStats          = "update stats"
)

// slot is the part of a wrapper shared with its GC cleanup. It must never
// point back at the wrapper.
type slot struct {
	h atomic.Uint64
}

// take clears the slot and removes its engine from the table. Only one of
// any number of concurrent callers gets the engine.
func (s *slot) take() (Engine, bool) {
	h := Handle(s.h.Swap(0))
	return instances.Remove(h)
}

// Option configures an AudioProcessing wrapper.
type Option func(*AudioProcessing)

// WithLogger sets the logger used for diagnostics. Without it the package
// logger is used.
func WithLogger(l *zap.Logger) Option {
	return func(ap *AudioProcessing) {
		ap.log = l
	}
}

// AudioProcessing is the caller-side wrapper around one engine instance.
// It stores only an opaque handle; every operation resolves the handle,
// translates its arguments and forwards to the engine.
//
// The wrapper adds no locking around engine calls. An engine is kept alive
// for the duration of each call, so Dispose racing a call never frees the
// engine under it.
type AudioProcessing struct {
	factory Factory
	log     *zap.Logger
	slot    *slot

	cleanupOnce sync.Once

	// openViews counts byte buffer views that have not been released.
	openViews atomic.Int64
}

// New creates a wrapper that builds its engine with factory. The wrapper is
// unusable until Initialize succeeds.
func New(factory Factory, opts ...Option) *AudioProcessing {
	ap := &AudioProcessing{
		factory: factory,
		slot:    &slot{},
	}
	for _, opt := range opts {
		opt(ap)
	}
	return ap
}

func (ap *AudioProcessing) logger() *zap.Logger {
	if ap.log != nil {
		return ap.log
	}
	return Logger()
}

// Initialize constructs the engine instance and stores its handle.
func (ap *AudioProcessing) Initialize() error {
	if ap.slot.h.Load() != 0 {
		return ErrAlreadyInitialized
	}

	var e Engine
	if ap.factory != nil {
		e = ap.factory()
	}
	if e == nil {
		ap.logger().Error("engine factory returned no instance")
		return ErrCreateFailed
	}

	h := instances.Insert(e)
	if !ap.slot.h.CompareAndSwap(0, uint64(h)) {
		instances.Remove(h)
		e.Release()
		return ErrAlreadyInitialized
	}

	ap.cleanupOnce.Do(func() {
		log := ap.logger()
		runtime.AddCleanup(ap, func(s *slot) {
			if e, ok := s.take(); ok {
				if e.Release() != DroppedLastRef {
					log.Warn("native object was not deleted, a reference is still around somewhere")
				}
			}
		}, ap.slot)
	})

	ap.logger().Debug("audio processing initialized", zap.Uint64("handle", uint64(h)))
	return nil
}

// Initialized reports whether the wrapper currently holds an engine.
func (ap *AudioProcessing) Initialized() bool {
	return ap.slot.h.Load() != 0
}

// Handle returns the current engine handle, zero when cleared.
func (ap *AudioProcessing) Handle() Handle {
	return Handle(ap.slot.h.Load())
}

// acquire resolves the handle and takes a reference for the duration of
// one call. The returned func drops that reference.
func (ap *AudioProcessing) acquire(op string) (Engine, func(), error) {
	e, ok := instances.Acquire(ap.Handle(), Engine.AddRef)
	if !ok {
		ap.logger().Warn("object handle is null", zap.String("op", op))
		return nil, nil, fmt.Errorf("%s: %w", op, ErrNotInitialized)
	}

	done := func() {
		if e.Release() == DroppedLastRef {
			ap.logger().Debug("engine released by in-flight call", zap.String("op", op))
		}
	}
	return e, done, nil
}

// ApplyConfig copies cfg into the engine.
func (ap *AudioProcessing) ApplyConfig(cfg Config) error {
	e, done, err := ap.acquire(opApplyConfig)
	if err != nil {
		return err
	}
	defer done()

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("%s: %w", opApplyConfig, err)
	}

	e.ApplyConfig(cfg)
	return nil
}

type processFunc func(e Engine, src []int16, in, out StreamConfig, dst []int16) int

func checkStreams(in, out StreamConfig) error {
	if err := in.Validate(); err != nil {
		return fmt.Errorf("input: %w", err)
	}
	if err := out.Validate(); err != nil {
		return fmt.Errorf("output: %w", err)
	}
	return nil
}

func (ap *AudioProcessing) process(op string, fn processFunc, src []int16, in, out StreamConfig, dst []int16) (int, error) {
	e, done, err := ap.acquire(op)
	if err != nil {
		return 0, err
	}
	defer done()

	if err := checkStreams(in, out); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if len(src) < in.Samples() {
		return 0, fmt.Errorf("%s: %d < %d: %w", op, len(src), in.Samples(), ErrSourceTooShort)
	}
	if len(dst) < out.Samples() {
		return 0, fmt.Errorf("%s: %d < %d: %w", op, len(dst), out.Samples(), ErrDestinationTooShort)
	}

	return fn(e, src[:in.Samples()], in, out, dst[:out.Samples()]), nil
}

// ProcessStream runs one 10 ms capture chunk through the engine. src must
// hold at least in.Samples() values and dst at least out.Samples(). The
// returned status is the engine's, unmodified.
func (ap *AudioProcessing) ProcessStream(src []int16, in, out StreamConfig, dst []int16) (int, error) {
	return ap.process(opProcessStream, Engine.ProcessStream, src, in, out, dst)
}

// ProcessReverseStream runs one 10 ms render chunk through the engine; it
// is the reference the echo canceller subtracts from the capture path.
func (ap *AudioProcessing) ProcessReverseStream(src []int16, in, out StreamConfig, dst []int16) (int, error) {
	return ap.process(opProcessReverseStream, Engine.ProcessReverseStream, src, in, out, dst)
}

func (ap *AudioProcessing) processBytes(op string, fn processFunc, src []byte, in, out StreamConfig, dst []byte) (int, error) {
	e, done, err := ap.acquire(op)
	if err != nil {
		return 0, err
	}
	defer done()

	if err := checkStreams(in, out); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if len(src) < in.Bytes() {
		return 0, fmt.Errorf("%s: %d bytes < %d: %w", op, len(src), in.Bytes(), ErrSourceTooShort)
	}
	if len(dst) < out.Bytes() {
		return 0, fmt.Errorf("%s: %d bytes < %d: %w", op, len(dst), out.Bytes(), ErrDestinationTooShort)
	}

	srcView, err := borrowSamples(src[:in.Bytes()], &ap.openViews)
	if err != nil {
		return 0, fmt.Errorf("%s: source: %w", op, err)
	}
	defer srcView.release()

	dstView, err := borrowSamples(dst[:out.Bytes()], &ap.openViews)
	if err != nil {
		return 0, fmt.Errorf("%s: destination: %w", op, err)
	}
	defer dstView.release()

	status := fn(e, srcView.samples, in, out, dstView.samples)
	dstView.commit()

	return status, nil
}

// ProcessStreamBytes is ProcessStream over little-endian 16-bit PCM bytes.
// The engine writes into dst directly when possible; otherwise the
// processed chunk is copied back before returning.
func (ap *AudioProcessing) ProcessStreamBytes(src []byte, in, out StreamConfig, dst []byte) (int, error) {
	return ap.processBytes(opProcessStream, Engine.ProcessStream, src, in, out, dst)
}

// ProcessReverseStreamBytes is ProcessReverseStream over little-endian
// 16-bit PCM bytes.
func (ap *AudioProcessing) ProcessReverseStreamBytes(src []byte, in, out StreamConfig, dst []byte) (int, error) {
	return ap.processBytes(opProcessReverseStream, Engine.ProcessReverseStream, src, in, out, dst)
}

// ProcessIntBuffer runs one capture chunk held in go-audio buffers. Stream
// configs are taken from the buffers' formats and dst.Data is resized to
// the output chunk.
func (ap *AudioProcessing) ProcessIntBuffer(src, dst *goaudio.IntBuffer) (int, error) {
	if src == nil || dst == nil {
		return 0, fmt.Errorf("%s: %w", opProcessStream, ErrNilBuffer)
	}

	in := StreamConfigFromFormat(src.Format)
	out := StreamConfigFromFormat(dst.Format)

	pcmOut := make([]int16, max(out.Samples(), 0))
	status, err := ap.ProcessStream(PCMFromIntBuffer(src), in, out, pcmOut)
	if err != nil {
		return status, err
	}

	if cap(dst.Data) < len(pcmOut) {
		dst.Data = make([]int, len(pcmOut))
	}
	dst.Data = dst.Data[:len(pcmOut)]
	for i, s := range pcmOut {
		dst.Data[i] = int(s)
	}
	dst.SourceBitDepth = 16

	return status, nil
}

// SetStreamDelayMs forwards the render-to-capture delay to the engine and
// returns its status.
func (ap *AudioProcessing) SetStreamDelayMs(ms int) (int, error) {
	e, done, err := ap.acquire(opSetStreamDelay)
	if err != nil {
		return 0, err
	}
	defer done()

	return e.SetStreamDelayMs(ms), nil
}

// StreamDelayMs returns the delay last accepted by the engine.
func (ap *AudioProcessing) StreamDelayMs() (int, error) {
	e, done, err := ap.acquire(opStreamDelay)
	if err != nil {
		return 0, err
	}
	defer done()

	return e.StreamDelayMs(), nil
}

// UpdateStats copies the engine's current statistics into dst.
func (ap *AudioProcessing) UpdateStats(dst *Stats) error {
	e, done, err := ap.acquire(opUpdateStats)
	if err != nil {
		return err
	}
	defer done()

	if dst == nil {
		return fmt.Errorf("%s: %w", opUpdateStats, ErrNilStats)
	}

	*dst = e.Statistics().Clone()
	return nil
}

// Dispose drops the wrapper's reference to the engine and clears the
// handle. The engine is destroyed once no other owner holds it. Calling
// Dispose again returns ErrNotInitialized.
func (ap *AudioProcessing) Dispose() error {
	e, ok := ap.slot.take()
	if !ok {
		ap.logger().Warn("object handle is null", zap.String("op", opDispose))
		return fmt.Errorf("%s: %w", opDispose, ErrNotInitialized)
	}

	if e.Release() != DroppedLastRef {
		ap.logger().Warn("native object was not deleted, a reference is still around somewhere")
	}
	return nil
}
