// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	gomp3 "github.com/hajimehoshi/go-mp3"

	"github.com/ik5/audproc/audio"
	"github.com/ik5/audproc/utils"
)

// go-mp3 always produces interleaved stereo 16-bit little-endian PCM.
const (
	channels      = 2
	bytesPerFrame = channels * 2
)

// mp3Reader is the part of gomp3.Decoder the source needs.
type mp3Reader interface {
	Read([]byte) (int, error)
	SampleRate() int
}

type source struct {
	dec    mp3Reader
	format *goaudio.Format
	buf    []byte
	carry  int // bytes of a split frame kept at the front of buf
	eof    bool
}

func newSource(dec mp3Reader) *source {
	return &source{
		dec:    dec,
		format: &goaudio.Format{SampleRate: dec.SampleRate(), NumChannels: channels},
		buf:    make([]byte, 8192),
	}
}

func (s *source) Format() *goaudio.Format { return s.format }
func (s *source) Close() error            { return nil }

// ReadSamples returns whole stereo frames. A frame split across two reads
// of the decoder is held back until it is complete.
func (s *source) ReadSamples(dst []float32) (int, error) {
	frames := len(dst) / channels
	if frames == 0 {
		return 0, nil
	}
	if s.eof && s.carry == 0 {
		return 0, io.EOF
	}

	need := frames * bytesPerFrame
	if cap(s.buf) < need {
		grown := make([]byte, need)
		copy(grown, s.buf[:s.carry])
		s.buf = grown
	}
	s.buf = s.buf[:need]

	have := s.carry
	var err error
	for have < need && !s.eof {
		var n int
		n, err = s.dec.Read(s.buf[have:])
		have += n
		if errors.Is(err, io.EOF) {
			s.eof = true
			err = nil
			break
		}
		if err != nil {
			break
		}
		if n == 0 {
			break
		}
	}

	whole := have - have%bytesPerFrame
	samples := whole / 2
	for i := range samples {
		dst[i] = utils.Int16ToFloat32(int16(binary.LittleEndian.Uint16(s.buf[2*i:])))
	}

	s.carry = copy(s.buf, s.buf[whole:have])
	if s.eof {
		// a trailing partial frame can never complete
		s.carry = 0
	}

	if err != nil {
		return samples, fmt.Errorf("mp3 read: %w", err)
	}
	if s.eof {
		return samples, io.EOF
	}
	return samples, nil
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("mp3: %w", err)
	}
	return newSource(dec), nil
}
