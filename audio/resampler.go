// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"

	"github.com/ik5/audproc/utils"
)

// window holds four consecutive source frames. Output is interpolated
// between frames[1] and frames[2]; missing neighbours repeat the nearest
// valid frame.
type window struct {
	frames [4][]float32
	valid  [4]bool
}

func (w *window) shift() {
	first := w.frames[0]
	copy(w.frames[:], w.frames[1:])
	copy(w.valid[:], w.valid[1:])
	w.frames[3] = first
	w.valid[3] = false
}

func (w *window) at(i, c int) float32 {
	for i > 1 && !w.valid[i] {
		i--
	}
	if i == 0 && !w.valid[0] {
		i = 1
	}
	return w.frames[i][c]
}

// Resampler streams from src to a target sample rate using cubic
// interpolation. Channel count is preserved. When downsampling, a one-pole
// low-pass runs over the input first.
type Resampler struct {
	src    Source
	format *goaudio.Format
	step   float64 // source frames per output frame
	pos    float64

	win    window
	primed bool
	eof    bool
	frame  []float32

	lowPass  bool
	filtered bool
	alpha    float32
	state    []float32
}

func NewResampler(src Source, dstRate int) *Resampler {
	in := src.Format()
	channels := in.NumChannels

	r := &Resampler{
		src:    src,
		format: &goaudio.Format{SampleRate: dstRate, NumChannels: channels},
		step:   float64(in.SampleRate) / float64(dstRate),
		frame:  make([]float32, channels),
		state:  make([]float32, channels),
	}
	if r.step > 1 {
		r.lowPass = true
		r.alpha = 0.5
	}
	for i := range r.win.frames {
		r.win.frames[i] = make([]float32, channels)
	}

	return r
}

func (r *Resampler) Format() *goaudio.Format { return r.format }

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("resampler: %w", err)
	}
	return nil
}

// pull reads one source frame into dst. ok is false once the source is
// drained; a trailing partial frame is dropped.
func (r *Resampler) pull(dst []float32) (bool, error) {
	if r.eof {
		return false, nil
	}

	n, err := r.src.ReadSamples(r.frame)
	if err == io.EOF {
		r.eof = true
	} else if err != nil {
		return false, fmt.Errorf("resampler: %w", err)
	}
	if n < len(r.frame) {
		r.eof = true
		return false, nil
	}

	if !r.lowPass {
		copy(dst, r.frame)
		return true, nil
	}

	if !r.filtered {
		copy(r.state, r.frame)
		r.filtered = true
	}
	for c, v := range r.frame {
		r.state[c] = r.alpha*v + (1-r.alpha)*r.state[c]
	}
	copy(dst, r.state)
	return true, nil
}

func (r *Resampler) prime() error {
	r.primed = true
	for i := 1; i < 4; i++ {
		ok, err := r.pull(r.win.frames[i])
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		r.win.valid[i] = true
	}
	return nil
}

// advance moves the window one source frame forward and reports whether a
// current frame remains.
func (r *Resampler) advance() (bool, error) {
	r.win.shift()
	ok, err := r.pull(r.win.frames[3])
	if err != nil {
		return false, err
	}
	r.win.valid[3] = ok
	return r.win.valid[1], nil
}

// ReadSamples produces samples at the target rate. len(dst) must be a
// multiple of the channel count. The last source frame is emitted only
// when an output instant lands exactly on it.
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	channels := r.format.NumChannels
	if len(dst)%channels != 0 {
		return 0, fmt.Errorf("%d samples not a multiple of %d channels: %w", len(dst), channels, ErrInvalidDstSize)
	}

	if !r.primed {
		if err := r.prime(); err != nil {
			return 0, err
		}
	}

	written := 0
	for written < len(dst)/channels {
		for r.pos >= 1 {
			r.pos--
			ok, err := r.advance()
			if err != nil {
				return written * channels, err
			}
			if !ok {
				return written * channels, io.EOF
			}
		}

		if !r.win.valid[1] || (!r.win.valid[2] && r.pos > 0) {
			return written * channels, io.EOF
		}

		x := float32(r.pos)
		for c := range channels {
			dst[written*channels+c] = utils.CubicInterpolate(
				r.win.at(0, c), r.win.at(1, c), r.win.at(2, c), r.win.at(3, c), x)
		}

		written++
		r.pos += r.step
	}

	return written * channels, nil
}
