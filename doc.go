// SPDX-License-Identifier: EPL-2.0

// Package audproc runs decoded audio through an audio processing engine.
//
// The apm subpackage is the binding itself: it wraps an engine instance
// behind an opaque handle and forwards 10 ms chunks of 16-bit PCM. This
// package adds the plumbing around it: decoding files, converting them to
// the engine's stream layout, and pairing far-end (render) frames with
// near-end (capture) frames.
//
// # Quick Start
//
//	import _ "github.com/ik5/audproc/engine/passthrough"
//
//	reg := audproc.NewRegistry()
//	capture, err := audproc.OpenFile(reg, "mic.wav")
//	if err != nil {
//	    return err
//	}
//	defer capture.Close()
//
//	ap, _ := apm.NewNamed("passthrough")
//	if err := ap.Initialize(); err != nil {
//	    return err
//	}
//	defer ap.Dispose()
//
//	res, err := audproc.Process(ctx, ap, capture, nil, audproc.Options{
//	    Stream: apm.NewStreamConfig(16000, 1),
//	})
//
// res.Output holds the processed capture audio and res.Stats the engine
// statistics after the last frame.
//
// # Formats
//
// NewRegistry knows WAV, AIFF, MP3 and Ogg Vorbis. Individual decoders
// live in the formats subpackages and return audio.Source values.
//
// # Engines
//
//   - passthrough: pure Go, applies the configured gain stages and converts
//     between stream layouts.
//   - webrtc: the native WebRTC audio processing module, built with
//     -tags webrtc and cgo.
package audproc
