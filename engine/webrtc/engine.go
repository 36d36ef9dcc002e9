// SPDX-License-Identifier: EPL-2.0

//go:build cgo && webrtc

package webrtc

/*
#cgo pkg-config: webrtc-audio-processing-1
#cgo CXXFLAGS: -std=c++17 -DWEBRTC_POSIX
#include "bridge.h"
*/
import "C"

import (
	"unsafe"

	"go.uber.org/zap"

	"github.com/ik5/audproc/apm"
)

// Name is the registry key of this engine.
const Name = "webrtc"

func init() {
	apm.Register(Name, func() apm.Engine {
		// a nil *Engine must not reach the wrapper as a non-nil interface
		if e := New(); e != nil {
			return e
		}
		return nil
	})
}

// Engine forwards every call to a native AudioProcessing instance. The
// native object does its own locking and reference counting.
type Engine struct {
	ptr *C.apm_instance
	log *zap.Logger
}

// New creates a native instance holding one reference. It returns nil when
// the library fails to build one.
func New() *Engine {
	ptr := C.apm_create()
	if ptr == nil {
		apm.Logger().Error("native audio processing create failed")
		return nil
	}
	return &Engine{ptr: ptr, log: apm.Logger()}
}

func cBool(b bool) C.int {
	if b {
		return 1
	}
	return 0
}

func toNativeConfig(cfg apm.Config) C.apm_config {
	preGain := cfg.PreAmplifier.FixedGainFactor
	preEnabled := cfg.PreAmplifier.Enabled
	if !preEnabled {
		preGain = 1
	}
	if cla := cfg.CaptureLevelAdjustment; cla.Enabled {
		preGain *= cla.PreGainFactor * cla.PostGainFactor
		preEnabled = true
	}

	return C.apm_config{
		max_internal_rate:     C.int(cfg.Pipeline.MaximumInternalProcessingRate),
		multi_channel_render:  cBool(cfg.Pipeline.MultiChannelRender),
		multi_channel_capture: cBool(cfg.Pipeline.MultiChannelCapture),

		pre_amplifier_enabled: cBool(preEnabled),
		pre_amplifier_gain:    C.float(preGain),

		high_pass_filter_enabled: cBool(cfg.HighPassFilter.Enabled),

		echo_canceller_enabled: cBool(cfg.EchoCanceller.Enabled),
		echo_canceller_mobile:  cBool(cfg.EchoCanceller.MobileMode),

		noise_suppression_enabled:    cBool(cfg.NoiseSuppression.Enabled),
		noise_suppression_level:      C.int(cfg.NoiseSuppression.Level),
		noise_suppression_linear_aec: cBool(cfg.NoiseSuppression.AnalyzeLinearAecOutputWhenAvail),

		transient_suppression_enabled: cBool(cfg.TransientSuppression.Enabled),

		gc1_enabled:             cBool(cfg.GainController1.Enabled),
		gc1_mode:                C.int(cfg.GainController1.Mode),
		gc1_target_level_dbfs:   C.int(cfg.GainController1.TargetLevelDbfs),
		gc1_compression_gain_db: C.int(cfg.GainController1.CompressionGainDb),
		gc1_enable_limiter:      cBool(cfg.GainController1.EnableLimiter),

		gc2_enabled:          cBool(cfg.GainController2.Enabled),
		gc2_fixed_gain_db:    C.float(cfg.GainController2.FixedDigitalGainDb),
		gc2_adaptive_enabled: cBool(cfg.GainController2.AdaptiveDigitalEnabled),
	}
}

func (e *Engine) ApplyConfig(cfg apm.Config) {
	c := toNativeConfig(cfg)
	C.apm_apply_config(e.ptr, &c)
}

func samplePtr(b []int16) *C.int16_t {
	if len(b) == 0 {
		return nil
	}
	return (*C.int16_t)(unsafe.Pointer(&b[0]))
}

func (e *Engine) ProcessStream(src []int16, in, out apm.StreamConfig, dst []int16) int {
	return int(C.apm_process_stream(e.ptr, samplePtr(src),
		C.int(in.SampleRate), C.int(in.Channels),
		C.int(out.SampleRate), C.int(out.Channels),
		samplePtr(dst)))
}

func (e *Engine) ProcessReverseStream(src []int16, in, out apm.StreamConfig, dst []int16) int {
	return int(C.apm_process_reverse_stream(e.ptr, samplePtr(src),
		C.int(in.SampleRate), C.int(in.Channels),
		C.int(out.SampleRate), C.int(out.Channels),
		samplePtr(dst)))
}

func (e *Engine) SetStreamDelayMs(ms int) int {
	return int(C.apm_set_stream_delay_ms(e.ptr, C.int(ms)))
}

func (e *Engine) StreamDelayMs() int {
	return int(C.apm_stream_delay_ms(e.ptr))
}

func f64(has C.int, v C.double) *float64 {
	if has == 0 {
		return nil
	}
	x := float64(v)
	return &x
}

func i32(has C.int, v C.int32_t) *int32 {
	if has == 0 {
		return nil
	}
	x := int32(v)
	return &x
}

func (e *Engine) Statistics() apm.Stats {
	var s C.apm_stats
	C.apm_get_statistics(e.ptr, &s)

	stats := apm.Stats{
		EchoReturnLoss:                  f64(s.has_echo_return_loss, s.echo_return_loss),
		EchoReturnLossEnhancement:       f64(s.has_echo_return_loss_enhancement, s.echo_return_loss_enhancement),
		DivergentFilterFraction:         f64(s.has_divergent_filter_fraction, s.divergent_filter_fraction),
		DelayMedianMs:                   i32(s.has_delay_median_ms, s.delay_median_ms),
		DelayStandardDeviationMs:        i32(s.has_delay_standard_deviation_ms, s.delay_standard_deviation_ms),
		ResidualEchoLikelihood:          f64(s.has_residual_echo_likelihood, s.residual_echo_likelihood),
		ResidualEchoLikelihoodRecentMax: f64(s.has_residual_echo_likelihood_recent_max, s.residual_echo_likelihood_recent_max),
		DelayMs:                         i32(s.has_delay_ms, s.delay_ms),
	}
	if s.has_output_rms_dbfs != 0 {
		level := float64(s.output_rms_dbfs)
		stats.OutputRMSDbfs = &level
	}
	if s.has_voice_detected != 0 {
		voice := s.voice_detected != 0
		stats.VoiceDetected = &voice
	}
	return stats
}

func (e *Engine) AddRef() { C.apm_add_ref(e.ptr) }

func (e *Engine) Release() apm.ReleaseStatus {
	if C.apm_release(e.ptr) == 0 {
		return apm.OtherRefsRemained
	}
	e.log.Debug("native instance destroyed")
	return apm.DroppedLastRef
}
