// SPDX-License-Identifier: EPL-2.0

// Package handle implements a process-wide table that maps opaque integers
// to live objects. Handle 0 is reserved and always invalid, so a zero value
// on the caller side reads as "cleared".
//
// A handle packs a slot index in its low 32 bits and the slot's generation
// in the high 32 bits. Freed slots are reused, but their generation moves
// on, so a handle kept past Remove never resolves to a later entry.
package handle

import "sync"

// Handle is an opaque reference to an entry in a Table.
type Handle uint64

// Valid reports whether h can reference an entry.
func (h Handle) Valid() bool { return h != 0 }

func makeHandle(idx int, gen uint32) Handle {
	return Handle(uint64(gen)<<32 | uint64(idx+1))
}

// Slot returns the table slot h points at, starting from 1.
func (h Handle) Slot() uint32 { return uint32(h) }

// Generation returns the reuse count of h's slot when h was issued.
func (h Handle) Generation() uint32 { return uint32(h >> 32) }

type entry[T any] struct {
	value T
	gen   uint32
	valid bool
}

// Table stores values behind handles. Released slots are reused through a
// free list. Safe for concurrent use.
type Table[T any] struct {
	mu       sync.RWMutex
	entries  []entry[T]
	freeList []int
	live     int
}

// NewTable creates an empty table.
func NewTable[T any]() *Table[T] {
	return &Table[T]{
		entries:  make([]entry[T], 0, 16),
		freeList: make([]int, 0, 4),
	}
}

// Insert stores value and returns its handle.
func (t *Table[T]) Insert(value T) Handle {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.live++

	if n := len(t.freeList); n > 0 {
		idx := t.freeList[n-1]
		t.freeList = t.freeList[:n-1]
		e := &t.entries[idx]
		e.value, e.valid = value, true
		return makeHandle(idx, e.gen)
	}

	t.entries = append(t.entries, entry[T]{value: value, valid: true})
	return makeHandle(len(t.entries)-1, 0)
}

// lookup returns the index of the live entry h refers to. The caller holds
// t.mu.
func (t *Table[T]) lookup(h Handle) (int, bool) {
	if h == 0 || h.Slot() == 0 {
		return 0, false
	}
	idx := int(h.Slot() - 1)
	if idx >= len(t.entries) {
		return 0, false
	}
	e := &t.entries[idx]
	if !e.valid || e.gen != h.Generation() {
		return 0, false
	}
	return idx, true
}

// Get returns the value stored under h.
func (t *Table[T]) Get(h Handle) (T, bool) {
	var zero T

	t.mu.RLock()
	defer t.mu.RUnlock()

	idx, ok := t.lookup(h)
	if !ok {
		return zero, false
	}
	return t.entries[idx].value, true
}

// Acquire looks h up and calls fn with its value while holding the read
// lock, so a concurrent Remove of the same handle waits until fn returns.
func (t *Table[T]) Acquire(h Handle, fn func(T)) (T, bool) {
	var zero T

	t.mu.RLock()
	defer t.mu.RUnlock()

	idx, ok := t.lookup(h)
	if !ok {
		return zero, false
	}

	value := t.entries[idx].value
	fn(value)
	return value, true
}

// Remove deletes h and returns the value it held. Only the first Remove of
// a given insertion succeeds.
func (t *Table[T]) Remove(h Handle) (T, bool) {
	var zero T

	t.mu.Lock()
	defer t.mu.Unlock()

	idx, ok := t.lookup(h)
	if !ok {
		return zero, false
	}

	e := &t.entries[idx]
	value := e.value
	e.value, e.valid = zero, false
	e.gen++
	t.freeList = append(t.freeList, idx)
	t.live--

	return value, true
}

// Len returns the number of live entries.
func (t *Table[T]) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.live
}
