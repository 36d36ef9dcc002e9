// SPDX-License-Identifier: EPL-2.0

package utils

import (
	"math"
	"testing"
)

func TestCubicInterpolate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		y0, y1, y2, y3 float32
		x              float32
		want           float32
		tolerance      float32
	}{
		{"start returns y1", 0, 1, 2, 3, 0, 1, 0.001},
		{"end returns y2", 0, 1, 2, 3, 1, 2, 0.001},
		{"linear midpoint", 0, 1, 2, 3, 0.5, 1.5, 0.001},
		{"linear quarter", 1, 2, 3, 4, 0.25, 2.25, 0.001},
		{"constant", 5, 5, 5, 5, 0.7, 5, 0.001},
		{"negative values", -1, -0.5, 0.5, 1, 0.5, 0, 0.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := CubicInterpolate(tt.y0, tt.y1, tt.y2, tt.y3, tt.x)
			if math.Abs(float64(got-tt.want)) > float64(tt.tolerance) {
				t.Errorf("CubicInterpolate() = %v, want %v ±%v", got, tt.want, tt.tolerance)
			}
		})
	}
}

func TestCubicAt(t *testing.T) {
	t.Parallel()

	y := []float32{10, 20, 30, 40}

	tests := []struct {
		name string
		prev float32
		pos  float64
		want float32
	}{
		{"integer index", 0, 2, 30},
		{"first sample", 0, 0, 10},
		{"between samples on a line", 0, 1.5, 25},
		{"uses history", 0, 0.5, 15.625},
		{"past the end", 0, 10, 40},
		{"last index", 0, 3, 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CubicAt(y, tt.prev, tt.pos)
			if math.Abs(float64(got-tt.want)) > 0.001 {
				t.Errorf("CubicAt(%v) = %v, want %v", tt.pos, got, tt.want)
			}
		})
	}

	if got := CubicAt(nil, 1, 0); got != 0 {
		t.Errorf("CubicAt(nil) = %v, want 0", got)
	}
}
