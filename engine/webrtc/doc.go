// SPDX-License-Identifier: EPL-2.0

// Package webrtc is an apm.Engine backed by the native WebRTC audio
// processing library (webrtc-audio-processing-1).
//
// The engine is only built with cgo and the webrtc build tag, and needs
// the library's pkg-config file:
//
//	go build -tags webrtc ./...
//
// Importing the package registers it as "webrtc". Without the build tag
// the package is empty and nothing is registered.
//
// The library has no capture level adjustment stage; its pre and post
// gains are folded into the pre-amplifier factor. The high pass filter
// always runs on the split band.
package webrtc
