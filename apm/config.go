// SPDX-License-Identifier: EPL-2.0

package apm

import (
	"fmt"
	"strings"
)

// NoiseSuppressionLevel selects how aggressively noise is suppressed.
type NoiseSuppressionLevel int

const (
	NoiseSuppressionLow NoiseSuppressionLevel = iota
	NoiseSuppressionModerate
	NoiseSuppressionHigh
	NoiseSuppressionVeryHigh
)

var noiseSuppressionLevelNames = [...]string{"low", "moderate", "high", "very-high"}

func (l NoiseSuppressionLevel) String() string {
	if l < 0 || int(l) >= len(noiseSuppressionLevelNames) {
		return fmt.Sprintf("NoiseSuppressionLevel(%d)", int(l))
	}
	return noiseSuppressionLevelNames[l]
}

func (l NoiseSuppressionLevel) MarshalText() ([]byte, error) {
	if l < 0 || int(l) >= len(noiseSuppressionLevelNames) {
		return nil, fmt.Errorf("noise suppression level %d: %w", int(l), ErrInvalidConfig)
	}
	return []byte(l.String()), nil
}

func (l *NoiseSuppressionLevel) UnmarshalText(text []byte) error {
	s := strings.ToLower(string(text))
	for i, name := range noiseSuppressionLevelNames {
		if name == s {
			*l = NoiseSuppressionLevel(i)
			return nil
		}
	}
	return fmt.Errorf("noise suppression level %q: %w", s, ErrInvalidConfig)
}

// GainControllerMode is the operating mode of GainController1.
type GainControllerMode int

const (
	GainControllerAdaptiveAnalog GainControllerMode = iota
	GainControllerAdaptiveDigital
	GainControllerFixedDigital
)

var gainControllerModeNames = [...]string{"adaptive-analog", "adaptive-digital", "fixed-digital"}

func (m GainControllerMode) String() string {
	if m < 0 || int(m) >= len(gainControllerModeNames) {
		return fmt.Sprintf("GainControllerMode(%d)", int(m))
	}
	return gainControllerModeNames[m]
}

func (m GainControllerMode) MarshalText() ([]byte, error) {
	if m < 0 || int(m) >= len(gainControllerModeNames) {
		return nil, fmt.Errorf("gain controller mode %d: %w", int(m), ErrInvalidConfig)
	}
	return []byte(m.String()), nil
}

func (m *GainControllerMode) UnmarshalText(text []byte) error {
	s := strings.ToLower(string(text))
	for i, name := range gainControllerModeNames {
		if name == s {
			*m = GainControllerMode(i)
			return nil
		}
	}
	return fmt.Errorf("gain controller mode %q: %w", s, ErrInvalidConfig)
}

type Pipeline struct {
	// MaximumInternalProcessingRate caps the rate the engine runs its
	// submodules at. 32000 or 48000.
	MaximumInternalProcessingRate int  `json:"maximum_internal_processing_rate"`
	MultiChannelRender            bool `json:"multi_channel_render"`
	MultiChannelCapture           bool `json:"multi_channel_capture"`
}

type PreAmplifier struct {
	Enabled         bool    `json:"enabled"`
	FixedGainFactor float64 `json:"fixed_gain_factor"`
}

type CaptureLevelAdjustment struct {
	Enabled        bool    `json:"enabled"`
	PreGainFactor  float64 `json:"pre_gain_factor"`
	PostGainFactor float64 `json:"post_gain_factor"`
}

type HighPassFilter struct {
	Enabled         bool `json:"enabled"`
	ApplyInFullBand bool `json:"apply_in_full_band"`
}

type EchoCanceller struct {
	Enabled    bool `json:"enabled"`
	MobileMode bool `json:"mobile_mode"`
}

type NoiseSuppression struct {
	Enabled                         bool                  `json:"enabled"`
	Level                           NoiseSuppressionLevel `json:"level"`
	AnalyzeLinearAecOutputWhenAvail bool                  `json:"analyze_linear_aec_output_when_available"`
}

type TransientSuppression struct {
	Enabled bool `json:"enabled"`
}

type GainController1 struct {
	Enabled           bool               `json:"enabled"`
	Mode              GainControllerMode `json:"mode"`
	TargetLevelDbfs   int                `json:"target_level_dbfs"`
	CompressionGainDb int                `json:"compression_gain_db"`
	EnableLimiter     bool               `json:"enable_limiter"`
}

type GainController2 struct {
	Enabled                bool    `json:"enabled"`
	FixedDigitalGainDb     float64 `json:"fixed_digital_gain_db"`
	AdaptiveDigitalEnabled bool    `json:"adaptive_digital_enabled"`
}

// Config describes which submodules of an engine are enabled and how they
// are tuned. It is a plain value: ApplyConfig copies it into the engine and
// later changes to the struct have no effect until it is applied again.
type Config struct {
	Pipeline               Pipeline               `json:"pipeline"`
	PreAmplifier           PreAmplifier           `json:"pre_amplifier"`
	CaptureLevelAdjustment CaptureLevelAdjustment `json:"capture_level_adjustment"`
	HighPassFilter         HighPassFilter         `json:"high_pass_filter"`
	EchoCanceller          EchoCanceller          `json:"echo_canceller"`
	NoiseSuppression       NoiseSuppression       `json:"noise_suppression"`
	TransientSuppression   TransientSuppression   `json:"transient_suppression"`
	GainController1        GainController1        `json:"gain_controller1"`
	GainController2        GainController2        `json:"gain_controller2"`
}

// DefaultConfig returns a config with every submodule disabled and every
// parameter at the engine's default value.
func DefaultConfig() Config {
	return Config{
		Pipeline: Pipeline{
			MaximumInternalProcessingRate: 48000,
		},
		PreAmplifier: PreAmplifier{
			FixedGainFactor: 1,
		},
		CaptureLevelAdjustment: CaptureLevelAdjustment{
			PreGainFactor:  1,
			PostGainFactor: 1,
		},
		HighPassFilter: HighPassFilter{
			ApplyInFullBand: true,
		},
		NoiseSuppression: NoiseSuppression{
			Level: NoiseSuppressionModerate,
		},
		GainController1: GainController1{
			Mode:              GainControllerAdaptiveAnalog,
			TargetLevelDbfs:   3,
			CompressionGainDb: 9,
			EnableLimiter:     true,
		},
	}
}

// Validate reports the first out-of-range parameter.
func (c Config) Validate() error {
	switch c.Pipeline.MaximumInternalProcessingRate {
	case 32000, 48000:
	default:
		return fmt.Errorf("maximum internal processing rate %d: %w",
			c.Pipeline.MaximumInternalProcessingRate, ErrInvalidConfig)
	}

	if c.PreAmplifier.FixedGainFactor <= 0 {
		return fmt.Errorf("pre-amplifier gain factor %g: %w", c.PreAmplifier.FixedGainFactor, ErrInvalidConfig)
	}

	if c.CaptureLevelAdjustment.PreGainFactor < 0 || c.CaptureLevelAdjustment.PostGainFactor < 0 {
		return fmt.Errorf("capture level adjustment gains %g/%g: %w",
			c.CaptureLevelAdjustment.PreGainFactor, c.CaptureLevelAdjustment.PostGainFactor, ErrInvalidConfig)
	}

	if c.NoiseSuppression.Level < NoiseSuppressionLow || c.NoiseSuppression.Level > NoiseSuppressionVeryHigh {
		return fmt.Errorf("noise suppression level %d: %w", int(c.NoiseSuppression.Level), ErrInvalidConfig)
	}

	gc1 := c.GainController1
	if gc1.Mode < GainControllerAdaptiveAnalog || gc1.Mode > GainControllerFixedDigital {
		return fmt.Errorf("gain controller mode %d: %w", int(gc1.Mode), ErrInvalidConfig)
	}
	if gc1.TargetLevelDbfs < 0 || gc1.TargetLevelDbfs > 31 {
		return fmt.Errorf("gain controller target level %d dBFS: %w", gc1.TargetLevelDbfs, ErrInvalidConfig)
	}
	if gc1.CompressionGainDb < 0 || gc1.CompressionGainDb > 90 {
		return fmt.Errorf("gain controller compression gain %d dB: %w", gc1.CompressionGainDb, ErrInvalidConfig)
	}

	if g := c.GainController2.FixedDigitalGainDb; g < 0 || g >= 50 {
		return fmt.Errorf("fixed digital gain %g dB: %w", g, ErrInvalidConfig)
	}

	return nil
}
