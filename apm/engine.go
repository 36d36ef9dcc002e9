// SPDX-License-Identifier: EPL-2.0

package apm

import "sync/atomic"

// Engine is the audio processing engine the binding forwards to. All the
// signal processing lives behind this interface; the binding only
// translates values and manages the instance lifetime.
//
// Processing methods receive one 10 ms chunk: src holds in.Samples()
// interleaved values and dst holds out.Samples(). They return the engine's
// status code, 0 meaning success. The binding never interprets the code.
type Engine interface {
	ApplyConfig(cfg Config)
	ProcessStream(src []int16, in, out StreamConfig, dst []int16) int
	ProcessReverseStream(src []int16, in, out StreamConfig, dst []int16) int

	// SetStreamDelayMs tells the echo canceller the delay between the
	// render and capture paths.
	SetStreamDelayMs(ms int) int
	StreamDelayMs() int

	Statistics() Stats

	AddRef()
	Release() ReleaseStatus
}

// ReleaseStatus reports what a Release call did to the reference count.
type ReleaseStatus int

const (
	// OtherRefsRemained means another owner still holds the instance.
	OtherRefsRemained ReleaseStatus = iota
	// DroppedLastRef means the instance was destroyed by this call.
	DroppedLastRef
)

func (s ReleaseStatus) String() string {
	if s == DroppedLastRef {
		return "dropped last ref"
	}
	return "other refs remained"
}

// Factory builds a new engine instance holding one reference. A nil return
// means construction failed.
type Factory func() Engine

// RefCount is an atomic reference count for Engine implementations. The
// zero value holds one reference, owned by the creator.
type RefCount struct {
	extra atomic.Int64
}

// IncRef adds a reference.
func (r *RefCount) IncRef() {
	r.extra.Add(1)
}

// DecRef drops a reference and reports whether it was the last one. Across
// any number of concurrent callers exactly one DecRef returns true; calls
// past zero return false.
func (r *RefCount) DecRef() bool {
	return r.extra.Add(-1) == -1
}

// Refs returns the current number of references.
func (r *RefCount) Refs() int64 {
	n := r.extra.Load() + 1
	if n < 0 {
		return 0
	}
	return n
}
