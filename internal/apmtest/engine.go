// SPDX-License-Identifier: EPL-2.0

// Package apmtest provides a recording fake engine for tests.
package apmtest

import (
	"sync"
	"sync/atomic"

	"github.com/ik5/audproc/apm"
	"github.com/ik5/audproc/utils"
)

// FakeEngine implements apm.Engine. Processing copies the first
// min(in, out) samples of src into dst and zero-fills the rest, then
// returns Status. Every call is counted.
type FakeEngine struct {
	refs apm.RefCount

	mu      sync.Mutex
	config  apm.Config
	applied int
	delayMs int
	stats   apm.Stats

	// Status is returned by every processing call.
	Status int

	Forward  atomic.Int32
	Reverse  atomic.Int32
	Freed    atomic.Int32
	LastIn   apm.StreamConfig
	LastOut  apm.StreamConfig
	Released atomic.Int32
}

// NewFakeEngine returns an engine holding one reference.
func NewFakeEngine() *FakeEngine {
	return &FakeEngine{}
}

// Factory returns an apm.Factory that always yields e.
func (e *FakeEngine) Factory() apm.Factory {
	return func() apm.Engine { return e }
}

func (e *FakeEngine) ApplyConfig(cfg apm.Config) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.config = cfg
	e.applied++
}

// Config returns the last applied config and how many times ApplyConfig
// ran.
func (e *FakeEngine) Config() (apm.Config, int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.config, e.applied
}

func (e *FakeEngine) process(src []int16, in, out apm.StreamConfig, dst []int16) int {
	n := copy(dst, src)
	clear(dst[n:])
	level := utils.RMSDbfs(dst)

	e.mu.Lock()
	e.LastIn, e.LastOut = in, out
	e.stats.OutputRMSDbfs = &level
	e.mu.Unlock()

	return e.Status
}

func (e *FakeEngine) ProcessStream(src []int16, in, out apm.StreamConfig, dst []int16) int {
	e.Forward.Add(1)
	return e.process(src, in, out, dst)
}

func (e *FakeEngine) ProcessReverseStream(src []int16, in, out apm.StreamConfig, dst []int16) int {
	e.Reverse.Add(1)
	return e.process(src, in, out, dst)
}

func (e *FakeEngine) SetStreamDelayMs(ms int) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.delayMs = ms
	d := int32(ms)
	e.stats.DelayMs = &d
	return 0
}

func (e *FakeEngine) StreamDelayMs() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.delayMs
}

// Statistics reports DelayMs from the last SetStreamDelayMs and the
// OutputRMSDbfs of the last processed chunk, forward or reverse.
func (e *FakeEngine) Statistics() apm.Stats {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stats
}

func (e *FakeEngine) AddRef() { e.refs.IncRef() }

func (e *FakeEngine) Release() apm.ReleaseStatus {
	e.Released.Add(1)
	if !e.refs.DecRef() {
		return apm.OtherRefsRemained
	}
	e.Freed.Add(1)
	return apm.DroppedLastRef
}

// Refs returns the current reference count.
func (e *FakeEngine) Refs() int64 { return e.refs.Refs() }
