// SPDX-License-Identifier: EPL-2.0

// Package passthrough is a pure-Go apm.Engine with no echo cancellation,
// noise suppression or adaptive gain.
//
// It converts each 10 ms chunk from the input stream layout to the output
// layout, applies the fixed gains from the config (pre-amplifier, capture
// level adjustment and the GainController2 fixed digital gain) on the
// capture path, and reports the stream delay and output level as stats.
// It is useful where the native engine is not available and as a
// reference for the binding's behaviour.
//
// Importing the package registers it as "passthrough":
//
//	import _ "github.com/ik5/audproc/engine/passthrough"
//
//	ap, err := apm.NewNamed("passthrough")
//
// Status codes follow the native library's numbering so callers can treat
// both engines the same way.
package passthrough
