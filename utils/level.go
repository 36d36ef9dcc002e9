// SPDX-License-Identifier: EPL-2.0

package utils

import "math"

// SilenceDbfs is the level reported for an all-zero signal.
const SilenceDbfs = -127.0

// GainFromDb converts decibels to a linear amplitude factor.
func GainFromDb(db float64) float64 {
	return math.Pow(10, db/20)
}

// RMSDbfs returns the RMS level of 16-bit samples relative to full scale,
// never lower than SilenceDbfs.
func RMSDbfs(samples []int16) float64 {
	if len(samples) == 0 {
		return SilenceDbfs
	}

	var sum float64
	for _, s := range samples {
		v := float64(s)
		sum += v * v
	}

	rms := math.Sqrt(sum / float64(len(samples)))
	if rms == 0 {
		return SilenceDbfs
	}
	return max(20*math.Log10(rms/32768), SilenceDbfs)
}
