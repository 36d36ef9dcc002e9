// SPDX-License-Identifier: EPL-2.0

package utils

// CubicInterpolate performs Catmull-Rom interpolation between y1 and y2.
// x is the fractional position (0 <= x <= 1); y0 and y3 are the outer
// neighbours.
func CubicInterpolate(y0, y1, y2, y3, x float32) float32 {
	a0 := -0.5*y0 + 1.5*y1 - 1.5*y2 + 0.5*y3
	a1 := y0 - 2.5*y1 + 2*y2 - 0.5*y3
	a2 := -0.5*y0 + 0.5*y2
	a3 := y1

	return a0*x*x*x + a1*x*x + a2*x + a3
}

// CubicAt samples the sequence y at fractional index pos. prev stands in
// for y[-1]; indices past the end repeat the last value.
func CubicAt(y []float32, prev float32, pos float64) float32 {
	n := len(y)
	if n == 0 {
		return 0
	}

	i := int(pos)
	if i >= n-1 {
		return y[n-1]
	}
	x := float32(pos - float64(i))

	at := func(k int) float32 {
		switch {
		case k < 0:
			return prev
		case k >= n:
			return y[n-1]
		}
		return y[k]
	}

	return CubicInterpolate(at(i-1), at(i), at(i+1), at(i+2), x)
}
