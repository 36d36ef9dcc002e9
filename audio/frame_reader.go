// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"

	"github.com/ik5/audproc/utils"
)

// FramesPerSecond is the number of frames FrameReader produces per second
// of audio: every frame covers 10 ms.
const FramesPerSecond = 100

// maxEmptyReads bounds consecutive 0, nil reads before ReadFrame gives up.
const maxEmptyReads = 100

// FrameReader reads a Source as consecutive 10 ms frames of interleaved
// 16-bit PCM at a fixed rate and channel count, resampling and mixing as
// needed. The last frame is zero-padded.
type FrameReader struct {
	src    Source
	format *goaudio.Format
	buf    []float32
	done   bool
}

func NewFrameReader(src Source, sampleRate, channels int) (*FrameReader, error) {
	if sampleRate < FramesPerSecond {
		return nil, fmt.Errorf("%d: %w", sampleRate, ErrInvalidRate)
	}
	if channels <= 0 {
		return nil, fmt.Errorf("%d: %w", channels, ErrInvalidChannels)
	}

	in := src.Format()
	if in == nil || in.SampleRate <= 0 || in.NumChannels <= 0 {
		return nil, ErrInvalidFormat
	}

	var s Source = src
	if in.SampleRate != sampleRate {
		s = NewResampler(s, sampleRate)
	}
	if in.NumChannels != channels {
		m, err := NewChannelMixer(s, channels)
		if err != nil {
			return nil, err
		}
		s = m
	}

	fr := &FrameReader{
		src:    s,
		format: &goaudio.Format{SampleRate: sampleRate, NumChannels: channels},
	}
	fr.buf = make([]float32, fr.Samples())
	return fr, nil
}

func (fr *FrameReader) Format() *goaudio.Format { return fr.format }

// Frames is the number of frames per channel in one 10 ms frame.
func (fr *FrameReader) Frames() int { return fr.format.SampleRate / FramesPerSecond }

// Samples is the number of interleaved values in one 10 ms frame.
func (fr *FrameReader) Samples() int { return fr.Frames() * fr.format.NumChannels }

// ReadFrame fills dst[:Samples()] with the next frame and returns how many
// of those samples came from the source; the rest are zero. It returns
// 0, io.EOF once the source is exhausted.
func (fr *FrameReader) ReadFrame(dst []int16) (int, error) {
	want := fr.Samples()
	if len(dst) < want {
		return 0, fmt.Errorf("dst of %d samples shorter than the %d sample frame: %w", len(dst), want, ErrInvalidDstSize)
	}
	if fr.done {
		return 0, io.EOF
	}

	got, empty := 0, 0
	for got < want {
		n, err := fr.src.ReadSamples(fr.buf[got:want])
		got += n
		if errors.Is(err, io.EOF) {
			fr.done = true
			break
		}
		if err != nil {
			return 0, fmt.Errorf("read frame: %w", err)
		}
		if n > 0 {
			empty = 0
			continue
		}
		if empty++; empty >= maxEmptyReads {
			return 0, fmt.Errorf("read frame: %w", io.ErrNoProgress)
		}
	}

	if got == 0 {
		fr.done = true
		return 0, io.EOF
	}

	for i := range got {
		dst[i] = utils.ClampInt16(fr.buf[i] * 32768)
	}
	clear(dst[got:want])

	return got, nil
}

func (fr *FrameReader) Close() error {
	return fr.src.Close()
}
