// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"errors"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/jfreymuth/oggvorbis"

	"github.com/ik5/audproc/audio"
)

// oggReader is the part of oggvorbis.Reader the source needs.
type oggReader interface {
	SampleRate() int
	Channels() int
	Read([]float32) (int, error)
}

type source struct {
	dec    oggReader
	format *goaudio.Format
	eof    bool
}

func newSource(dec oggReader) *source {
	return &source{
		dec:    dec,
		format: &goaudio.Format{SampleRate: dec.SampleRate(), NumChannels: dec.Channels()},
	}
}

func (s *source) Format() *goaudio.Format { return s.format }
func (s *source) Close() error            { return nil }

// ReadSamples decodes straight into dst. oggvorbis returns interleaved
// values, always a whole number of frames.
func (s *source) ReadSamples(dst []float32) (int, error) {
	dst = dst[:len(dst)-len(dst)%s.format.NumChannels]
	if len(dst) == 0 {
		return 0, nil
	}
	if s.eof {
		return 0, io.EOF
	}

	n, err := s.dec.Read(dst)
	if errors.Is(err, io.EOF) {
		s.eof = true
		return n, io.EOF
	}
	if err != nil {
		return n, fmt.Errorf("vorbis read: %w", err)
	}
	return n, nil
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("vorbis: %w", err)
	}
	if dec.Channels() <= 0 {
		return nil, audio.ErrInvalidFormat
	}
	return newSource(dec), nil
}
