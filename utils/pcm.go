// SPDX-License-Identifier: EPL-2.0

package utils

import "math"

// Float32ToInt16 converts a normalized sample in [-1,1] to 16-bit PCM.
// Values outside the range are clamped.
func Float32ToInt16(x float32) int16 {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	// 32767 keeps +1.0 from overflowing
	return int16(x * 32767.0)
}

// Int16ToFloat32 converts 16-bit PCM to a normalized sample in [-1,1).
func Int16ToFloat32(s int16) float32 {
	return float32(s) / 32768.0
}

// ClampInt16 rounds a sample already on the int16 scale and saturates it.
func ClampInt16(x float32) int16 {
	r := math.Round(float64(x))
	switch {
	case r > math.MaxInt16:
		return math.MaxInt16
	case r < math.MinInt16:
		return math.MinInt16
	}
	return int16(r)
}
