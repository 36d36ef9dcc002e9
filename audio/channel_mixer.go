// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"

	goaudio "github.com/go-audio/audio"

	"github.com/ik5/audproc/utils"
)

// ChannelMixer converts a Source to a different channel count. Down-mixing
// averages input channels, up-mixing repeats them; see utils.MixFrame.
type ChannelMixer struct {
	src    Source
	format *goaudio.Format
	in     int
	tmp    []float32
}

// NewChannelMixer returns a mixer producing channels channels.
func NewChannelMixer(src Source, channels int) (*ChannelMixer, error) {
	if channels <= 0 {
		return nil, fmt.Errorf("%d: %w", channels, ErrInvalidChannels)
	}

	in := src.Format()
	return &ChannelMixer{
		src:    src,
		format: &goaudio.Format{SampleRate: in.SampleRate, NumChannels: channels},
		in:     in.NumChannels,
		tmp:    make([]float32, 4096),
	}, nil
}

// NewMonoMixer is NewChannelMixer(src, 1).
func NewMonoMixer(src Source) *ChannelMixer {
	m, _ := NewChannelMixer(src, 1)
	return m
}

func (m *ChannelMixer) Format() *goaudio.Format { return m.format }

func (m *ChannelMixer) Close() error {
	if err := m.src.Close(); err != nil {
		return fmt.Errorf("channel mixer: %w", err)
	}
	return nil
}

// ReadSamples fills dst with whole output frames. len(dst) must be a
// multiple of the output channel count.
func (m *ChannelMixer) ReadSamples(dst []float32) (int, error) {
	out := m.format.NumChannels
	if len(dst)%out != 0 {
		return 0, fmt.Errorf("%d samples not a multiple of %d channels: %w", len(dst), out, ErrInvalidDstSize)
	}
	if len(dst) == 0 {
		return 0, nil
	}
	if m.in == out {
		return m.src.ReadSamples(dst)
	}

	needed := len(dst) / out * m.in
	if cap(m.tmp) < needed {
		m.tmp = make([]float32, max(needed, 8192))
	}
	m.tmp = m.tmp[:needed]

	n, err := m.src.ReadSamples(m.tmp)
	frames := n / m.in
	for f := range frames {
		utils.MixFrame(dst[f*out:(f+1)*out], m.tmp[f*m.in:(f+1)*m.in])
	}

	return frames * out, err
}
