// SPDX-License-Identifier: EPL-2.0

package passthrough_test

import (
	"slices"
	"testing"

	"github.com/ik5/audproc/apm"
	"github.com/ik5/audproc/engine/passthrough"
)

func TestRegistered(t *testing.T) {
	t.Parallel()

	if !slices.Contains(apm.Engines(), passthrough.Name) {
		t.Fatalf("Engines() = %v, missing %q", apm.Engines(), passthrough.Name)
	}
}

func TestThroughWrapper(t *testing.T) {
	t.Parallel()

	ap, err := apm.NewNamed(passthrough.Name)
	if err != nil {
		t.Fatalf("NewNamed() error = %v", err)
	}
	if err := ap.Initialize(); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}

	cfg := apm.DefaultConfig()
	cfg.PreAmplifier.Enabled = true
	cfg.PreAmplifier.FixedGainFactor = 2
	if err := ap.ApplyConfig(cfg); err != nil {
		t.Fatalf("ApplyConfig() error = %v", err)
	}

	in := apm.NewStreamConfig(48000, 2)
	out := apm.NewStreamConfig(16000, 1)
	src := make([]int16, in.Samples())
	for i := range src {
		src[i] = 500
	}
	dst := make([]int16, out.Samples()+1)
	dst[out.Samples()] = 7

	status, err := ap.ProcessStream(src, in, out, dst)
	if err != nil || status != passthrough.StatusOK {
		t.Fatalf("ProcessStream() = %d, %v", status, err)
	}
	if dst[0] != 1000 || dst[out.Samples()-1] != 1000 {
		t.Errorf("output = %d..%d, want 1000", dst[0], dst[out.Samples()-1])
	}
	if dst[out.Samples()] != 7 {
		t.Error("ProcessStream() wrote past the output chunk")
	}

	status, err = ap.ProcessStream(src[:80*2], apm.NewStreamConfig(8000, 2), apm.NewStreamConfig(4000, 1), dst)
	if err != nil {
		t.Fatalf("ProcessStream() error = %v", err)
	}
	if status != passthrough.StatusBadSampleRate {
		t.Errorf("status = %d, want %d", status, passthrough.StatusBadSampleRate)
	}

	var stats apm.Stats
	if err := ap.UpdateStats(&stats); err != nil {
		t.Fatalf("UpdateStats() error = %v", err)
	}
	if stats.OutputRMSDbfs == nil {
		t.Error("UpdateStats() missing output level")
	}

	if err := ap.Dispose(); err != nil {
		t.Fatalf("Dispose() error = %v", err)
	}
}
