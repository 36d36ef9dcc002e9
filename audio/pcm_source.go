// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"io"

	goaudio "github.com/go-audio/audio"

	"github.com/ik5/audproc/utils"
)

// PCMSource is a Source over interleaved 16-bit samples held in memory.
type PCMSource struct {
	pcm    []int16
	format *goaudio.Format
	pos    int
}

func NewPCMSource(pcm []int16, sampleRate, channels int) *PCMSource {
	return &PCMSource{
		pcm:    pcm,
		format: &goaudio.Format{SampleRate: sampleRate, NumChannels: channels},
	}
}

// NewIntBufferSource wraps a decoded go-audio buffer, shifting samples
// wider than 16 bits down first.
func NewIntBufferSource(buf *goaudio.IntBuffer) *PCMSource {
	shift := 0
	if buf.SourceBitDepth > 16 {
		shift = buf.SourceBitDepth - 16
	}

	pcm := make([]int16, len(buf.Data))
	for i, v := range buf.Data {
		pcm[i] = utils.ClampInt16(float32(v >> shift))
	}
	return &PCMSource{pcm: pcm, format: buf.Format}
}

func (s *PCMSource) Format() *goaudio.Format { return s.format }
func (s *PCMSource) Close() error            { return nil }

// Len is the number of samples not read yet.
func (s *PCMSource) Len() int { return len(s.pcm) - s.pos }

func (s *PCMSource) ReadSamples(dst []float32) (int, error) {
	if s.pos >= len(s.pcm) {
		return 0, io.EOF
	}

	n := min(len(dst), len(s.pcm)-s.pos)
	if ch := s.format.NumChannels; ch > 1 {
		n -= n % ch
	}
	for i := range n {
		dst[i] = utils.Int16ToFloat32(s.pcm[s.pos+i])
	}
	s.pos += n

	if s.pos >= len(s.pcm) {
		return n, io.EOF
	}
	return n, nil
}
