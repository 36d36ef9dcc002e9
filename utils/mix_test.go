// SPDX-License-Identifier: EPL-2.0

package utils

import (
	"slices"
	"testing"
)

func TestMixFrame(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  []float32
		out  int
		want []float32
	}{
		{"copy", []float32{1, 2}, 2, []float32{1, 2}},
		{"stereo to mono", []float32{0.4, 0.6}, 1, []float32{0.5}},
		{"mono to stereo", []float32{0.3}, 2, []float32{0.3, 0.3}},
		{"quad to stereo", []float32{1, 2, 3, 4}, 2, []float32{2, 3}},
		{"stereo to quad", []float32{1, 2}, 4, []float32{1, 2, 1, 2}},
		{"five to two", []float32{1, 2, 3, 4, 5}, 2, []float32{3, 3}},
		{"empty source", nil, 2, []float32{9, 9}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dst := make([]float32, tt.out)
			for i := range dst {
				dst[i] = 9
			}
			MixFrame(dst, tt.src)
			if !slices.Equal(dst, tt.want) {
				t.Errorf("MixFrame() = %v, want %v", dst, tt.want)
			}
		})
	}
}

func TestMixFrame_ZeroAllocs(t *testing.T) {
	src := []float32{1, 2, 3, 4, 5, 6}
	dst := make([]float32, 2)

	allocs := testing.AllocsPerRun(100, func() {
		MixFrame(dst, src)
	})
	if allocs != 0 {
		t.Errorf("MixFrame() allocated %v times, want 0", allocs)
	}
}
