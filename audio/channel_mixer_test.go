// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"math"
	"testing"

	"github.com/ik5/audproc/internal/audiotest"
)

func TestChannelMixer(t *testing.T) {
	t.Parallel()

	perChannel := func(values ...float32) func(int, int) float32 {
		return func(_, ch int) float32 { return values[ch] }
	}

	tests := []struct {
		name string
		in   []float32
		out  int
		want []float32
	}{
		{"stereo to mono", []float32{0.4, 0.6}, 1, []float32{0.5}},
		{"mono to stereo", []float32{0.3}, 2, []float32{0.3, 0.3}},
		{"quad to stereo", []float32{0.1, 0.2, 0.3, 0.4}, 2, []float32{0.2, 0.3}},
		{"stereo passthrough", []float32{0.1, -0.1}, 2, []float32{0.1, -0.1}},
		{"mono to 5.1", []float32{0.7}, 6, []float32{0.7, 0.7, 0.7, 0.7, 0.7, 0.7}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := audiotest.NewMockSource(8000, len(tt.in), 50, perChannel(tt.in...))
			m, err := NewChannelMixer(src, tt.out)
			if err != nil {
				t.Fatalf("NewChannelMixer() error = %v", err)
			}
			if m.Format().NumChannels != tt.out || m.Format().SampleRate != 8000 {
				t.Errorf("Format() = %+v", *m.Format())
			}

			got := readAll(t, m, 10*tt.out)
			if len(got) != 50*tt.out {
				t.Fatalf("read %d samples, want %d", len(got), 50*tt.out)
			}
			for i, v := range got {
				if w := tt.want[i%tt.out]; math.Abs(float64(v-w)) > 1e-6 {
					t.Fatalf("got[%d] = %v, want %v", i, v, w)
				}
			}
		})
	}
}

func TestChannelMixer_Errors(t *testing.T) {
	t.Parallel()

	src := audiotest.NewSilentSource(8000, 2, 10)
	if _, err := NewChannelMixer(src, 0); !errors.Is(err, ErrInvalidChannels) {
		t.Errorf("NewChannelMixer(0) error = %v, want %v", err, ErrInvalidChannels)
	}

	m, _ := NewChannelMixer(src, 2)
	if _, err := m.ReadSamples(make([]float32, 3)); !errors.Is(err, ErrInvalidDstSize) {
		t.Errorf("ReadSamples(3) error = %v, want %v", err, ErrInvalidDstSize)
	}
	if n, err := m.ReadSamples(nil); n != 0 || err != nil {
		t.Errorf("ReadSamples(nil) = %d, %v", n, err)
	}
}

func TestNewMonoMixer(t *testing.T) {
	t.Parallel()

	m := NewMonoMixer(audiotest.NewConstantSource(16000, 2, 10, 0.25))
	if m.Format().NumChannels != 1 {
		t.Fatalf("NumChannels = %d, want 1", m.Format().NumChannels)
	}
	got := readAll(t, m, 4)
	if len(got) != 10 || got[0] != 0.25 {
		t.Errorf("read %v", got)
	}
}

func TestChannelMixer_LargeRead(t *testing.T) {
	t.Parallel()

	src := audiotest.NewConstantSource(8000, 2, 20000, 0.5)
	m := NewMonoMixer(src)

	buf := make([]float32, 10000)
	n, err := m.ReadSamples(buf)
	if err != nil || n != 10000 {
		t.Fatalf("ReadSamples() = %d, %v", n, err)
	}
}
