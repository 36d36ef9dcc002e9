// SPDX-License-Identifier: EPL-2.0

package apm

import "errors"

var (
	// ErrCreateFailed is returned by Initialize when the engine factory
	// produced no instance.
	ErrCreateFailed = errors.New("create audio processing failed")

	// ErrNotInitialized is returned by every guarded operation invoked
	// before Initialize or after Dispose.
	ErrNotInitialized = errors.New("object handle is null")

	// ErrAlreadyInitialized is returned by Initialize on a wrapper that
	// already holds an engine.
	ErrAlreadyInitialized = errors.New("audio processing already initialized")

	ErrInvalidStreamConfig = errors.New("invalid stream config")
	ErrInvalidConfig       = errors.New("invalid processing config")
	ErrSourceTooShort      = errors.New("source buffer shorter than input stream config")
	ErrDestinationTooShort = errors.New("destination buffer shorter than output stream config")
	ErrOddByteLength       = errors.New("16-bit sample buffer has odd byte length")
	ErrNilStats            = errors.New("nil stats destination")
	ErrNilBuffer           = errors.New("nil int buffer")
	ErrUnknownEngine       = errors.New("unknown engine")
)
