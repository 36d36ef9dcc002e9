// SPDX-License-Identifier: EPL-2.0

package utils

// MixFrame maps one interleaved frame of len(src) channels onto len(dst)
// channels. Up-mixing repeats the input channels in order; down-mixing
// sets output channel c to the mean of the input channels congruent to c
// modulo len(dst). Equal widths copy.
func MixFrame(dst, src []float32) {
	in, out := len(src), len(dst)
	if in == 0 || out == 0 {
		return
	}

	if out >= in {
		for c := range dst {
			dst[c] = src[c%in]
		}
		return
	}

	for c := range dst {
		var sum float32
		n := 0
		for k := c; k < in; k += out {
			sum += src[k]
			n++
		}
		dst[c] = sum / float32(n)
	}
}
