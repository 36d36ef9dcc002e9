// SPDX-License-Identifier: EPL-2.0

// Package utils holds the small numeric helpers shared by the audio
// pipeline and the pure-Go engine: sample format conversion, cubic
// interpolation and level math.
package utils
