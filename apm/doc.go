// SPDX-License-Identifier: EPL-2.0

// Package apm binds an audio processing engine (echo cancellation, noise
// suppression, gain control, statistics) to Go callers.
//
// The package owns no signal processing. An AudioProcessing wrapper holds
// an opaque handle to an Engine instance, translates configuration values
// and sample buffers, and forwards each call. Engines are provided by
// other packages and made available through a small registry:
//
//	import _ "github.com/ik5/audproc/engine/passthrough"
//
//	ap, err := apm.NewNamed("passthrough")
//	if err != nil {
//	    return err
//	}
//	if err := ap.Initialize(); err != nil {
//	    return err
//	}
//	defer ap.Dispose()
//
// # Lifecycle
//
// Initialize builds the engine and stores its handle. Dispose drops the
// wrapper's reference and clears the handle; the engine itself is freed
// when its reference count reaches zero, which may be later if another
// owner still holds it. A wrapper that is garbage collected without
// Dispose releases its engine the same way.
//
// Every other operation is guarded: on a wrapper that was never
// initialized, or was disposed, it returns ErrNotInitialized and logs a
// warning instead of touching the engine.
//
// # Processing
//
// Each processing call handles one 10 ms chunk described by two
// StreamConfig values, one for the input and one for the output:
//
//	in := apm.NewStreamConfig(48000, 2)
//	out := apm.NewStreamConfig(16000, 1)
//	dst := make([]int16, out.Samples())
//	status, err := ap.ProcessStream(src, in, out, dst)
//
// The status is the engine's own return code and is passed through
// without interpretation; err is only set for problems detected before
// the engine was called (cleared handle, bad stream config, short
// buffers).
//
// ProcessStreamBytes and ProcessReverseStreamBytes accept 16-bit
// little-endian PCM as []byte. The bytes are viewed in place when the host
// allows it and copied otherwise; a copied destination is written back
// before the call returns.
//
// # Logging
//
// Diagnostics go to a zap logger: the one passed with WithLogger, or the
// package logger set with SetLogger. The default is a no-op logger.
package apm
