// SPDX-License-Identifier: EPL-2.0

package apm

import (
	"encoding/binary"
	"fmt"
	"sync/atomic"
	"unsafe"

	goaudio "github.com/go-audio/audio"
)

var littleEndianHost = func() bool {
	x := uint16(1)
	return *(*byte)(unsafe.Pointer(&x)) == 1
}()

// sampleView is a temporary []int16 view over a caller-owned byte buffer.
// When the bytes can be reinterpreted in place the view aliases them and
// nothing is copied; otherwise the view holds a private copy.
type sampleView struct {
	samples  []int16
	backing  []byte
	copied   bool
	released bool
	open     *atomic.Int64
}

// borrowSamples opens a view over b. open counts views that have not been
// released yet.
func borrowSamples(b []byte, open *atomic.Int64) (*sampleView, error) {
	if len(b)%2 != 0 {
		return nil, fmt.Errorf("%d bytes: %w", len(b), ErrOddByteLength)
	}

	v := &sampleView{backing: b, open: open}
	open.Add(1)

	switch {
	case len(b) == 0:
		v.samples = []int16{}
	case littleEndianHost && uintptr(unsafe.Pointer(unsafe.SliceData(b)))%2 == 0:
		v.samples = unsafe.Slice((*int16)(unsafe.Pointer(unsafe.SliceData(b))), len(b)/2)
	default:
		v.copied = true
		v.samples = make([]int16, len(b)/2)
		for i := range v.samples {
			v.samples[i] = int16(binary.LittleEndian.Uint16(b[2*i:]))
		}
	}

	return v, nil
}

// commit writes a private copy back into the caller's bytes. Direct views
// need nothing: the engine already wrote through them.
func (v *sampleView) commit() {
	if !v.copied || v.released {
		return
	}
	for i, s := range v.samples {
		binary.LittleEndian.PutUint16(v.backing[2*i:], uint16(s))
	}
}

// release drops the view without writing anything back. Calling it more
// than once is harmless.
func (v *sampleView) release() {
	if v.released {
		return
	}
	v.released = true
	v.samples = nil
	v.open.Add(-1)
}

// PCMFromIntBuffer converts a go-audio buffer to interleaved int16 PCM,
// clamping values outside the 16-bit range.
func PCMFromIntBuffer(buf *goaudio.IntBuffer) []int16 {
	if buf == nil {
		return nil
	}

	shift := 0
	if buf.SourceBitDepth > 16 {
		shift = buf.SourceBitDepth - 16
	}

	pcm := make([]int16, len(buf.Data))
	for i, v := range buf.Data {
		v >>= shift
		switch {
		case v > 32767:
			v = 32767
		case v < -32768:
			v = -32768
		}
		pcm[i] = int16(v)
	}
	return pcm
}

// IntBufferFromPCM wraps int16 PCM in a go-audio buffer laid out as cfg.
func IntBufferFromPCM(pcm []int16, cfg StreamConfig) *goaudio.IntBuffer {
	data := make([]int, len(pcm))
	for i, s := range pcm {
		data[i] = int(s)
	}
	return &goaudio.IntBuffer{
		Format:         cfg.Format(),
		Data:           data,
		SourceBitDepth: 16,
	}
}
