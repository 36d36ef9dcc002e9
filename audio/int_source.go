// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
)

// IntDecoder is the reading side shared by the go-audio wav and aiff
// decoders.
type IntDecoder interface {
	Format() *goaudio.Format
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// IntSource adapts an IntDecoder to Source, normalizing integer samples of
// the given bit depth to [-1,1).
type IntSource struct {
	dec    IntDecoder
	format *goaudio.Format
	scale  float32
	buf    *goaudio.IntBuffer
	eof    bool
}

// NewIntSource wraps dec. bitDepth must be 16, 24 or 32.
func NewIntSource(dec IntDecoder, bitDepth int) (*IntSource, error) {
	var scale float32
	switch bitDepth {
	case 16:
		scale = 1 << 15
	case 24:
		scale = 1 << 23
	case 32:
		scale = 1 << 31
	default:
		return nil, fmt.Errorf("%d bits: %w", bitDepth, ErrUnsupportedBitDepth)
	}

	format := dec.Format()
	if format == nil || format.NumChannels <= 0 || format.SampleRate <= 0 {
		return nil, ErrInvalidFormat
	}

	return &IntSource{
		dec:    dec,
		format: format,
		scale:  scale,
		buf:    &goaudio.IntBuffer{Format: format, SourceBitDepth: bitDepth},
	}, nil
}

func (s *IntSource) Format() *goaudio.Format { return s.format }
func (s *IntSource) Close() error            { return nil }

func (s *IntSource) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}
	if s.eof {
		return 0, io.EOF
	}

	if cap(s.buf.Data) < len(dst) {
		s.buf.Data = make([]int, len(dst))
	}
	s.buf.Data = s.buf.Data[:len(dst)]

	n, err := s.dec.PCMBuffer(s.buf)
	if err != nil && err != io.EOF {
		return 0, fmt.Errorf("pcm buffer: %w", err)
	}
	if n == 0 {
		s.eof = true
		return 0, io.EOF
	}

	for i, v := range s.buf.Data[:n] {
		dst[i] = float32(v) / s.scale
	}

	if n < len(dst) || err == io.EOF {
		s.eof = true
		return n, io.EOF
	}
	return n, nil
}
