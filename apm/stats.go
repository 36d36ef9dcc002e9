// SPDX-License-Identifier: EPL-2.0

package apm

import (
	"fmt"
	"strings"
)

// Stats is a snapshot of the engine's internal counters. A nil field means
// the engine did not report that value, usually because the submodule
// that produces it is disabled.
type Stats struct {
	// Echo return loss in dB.
	EchoReturnLoss *float64 `json:"echo_return_loss,omitempty"`
	// Echo return loss enhancement in dB.
	EchoReturnLossEnhancement *float64 `json:"echo_return_loss_enhancement,omitempty"`
	// Fraction of time the linear echo filter diverged, in [0,1].
	DivergentFilterFraction  *float64 `json:"divergent_filter_fraction,omitempty"`
	DelayMedianMs            *int32   `json:"delay_median_ms,omitempty"`
	DelayStandardDeviationMs *int32   `json:"delay_standard_deviation_ms,omitempty"`
	// Residual echo detector likelihood, in [0,1].
	ResidualEchoLikelihood          *float64 `json:"residual_echo_likelihood,omitempty"`
	ResidualEchoLikelihoodRecentMax *float64 `json:"residual_echo_likelihood_recent_max,omitempty"`
	// Instantaneous delay estimate used by the echo canceller.
	DelayMs       *int32   `json:"delay_ms,omitempty"`
	OutputRMSDbfs *float64 `json:"output_rms_dbfs,omitempty"`
	VoiceDetected *bool    `json:"voice_detected,omitempty"`
}

// Clone returns a deep copy of s so the caller never aliases engine-owned
// memory.
func (s Stats) Clone() Stats {
	return Stats{
		EchoReturnLoss:                  clonePtr(s.EchoReturnLoss),
		EchoReturnLossEnhancement:       clonePtr(s.EchoReturnLossEnhancement),
		DivergentFilterFraction:         clonePtr(s.DivergentFilterFraction),
		DelayMedianMs:                   clonePtr(s.DelayMedianMs),
		DelayStandardDeviationMs:        clonePtr(s.DelayStandardDeviationMs),
		ResidualEchoLikelihood:          clonePtr(s.ResidualEchoLikelihood),
		ResidualEchoLikelihoodRecentMax: clonePtr(s.ResidualEchoLikelihoodRecentMax),
		DelayMs:                         clonePtr(s.DelayMs),
		OutputRMSDbfs:                   clonePtr(s.OutputRMSDbfs),
		VoiceDetected:                   clonePtr(s.VoiceDetected),
	}
}

func (s Stats) String() string {
	var b strings.Builder
	write := func(name string, v any) {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%s=%v", name, v)
	}

	if s.EchoReturnLoss != nil {
		write("erl", *s.EchoReturnLoss)
	}
	if s.EchoReturnLossEnhancement != nil {
		write("erle", *s.EchoReturnLossEnhancement)
	}
	if s.DivergentFilterFraction != nil {
		write("divergent_filter_fraction", *s.DivergentFilterFraction)
	}
	if s.DelayMedianMs != nil {
		write("delay_median_ms", *s.DelayMedianMs)
	}
	if s.DelayStandardDeviationMs != nil {
		write("delay_std_ms", *s.DelayStandardDeviationMs)
	}
	if s.ResidualEchoLikelihood != nil {
		write("residual_echo_likelihood", *s.ResidualEchoLikelihood)
	}
	if s.ResidualEchoLikelihoodRecentMax != nil {
		write("residual_echo_likelihood_recent_max", *s.ResidualEchoLikelihoodRecentMax)
	}
	if s.DelayMs != nil {
		write("delay_ms", *s.DelayMs)
	}
	if s.OutputRMSDbfs != nil {
		write("output_rms_dbfs", *s.OutputRMSDbfs)
	}
	if s.VoiceDetected != nil {
		write("voice_detected", *s.VoiceDetected)
	}

	if b.Len() == 0 {
		return "no stats"
	}
	return b.String()
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
