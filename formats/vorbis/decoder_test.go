// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"bytes"
	"errors"
	"io"
	"slices"
	"testing"
)

// mockOggVorbisReader serves interleaved samples, at most chunk frames per
// Read.
type mockOggVorbisReader struct {
	sampleRate int
	channels   int
	samples    []float32
	chunk      int
	err        error
}

func (m *mockOggVorbisReader) SampleRate() int { return m.sampleRate }
func (m *mockOggVorbisReader) Channels() int   { return m.channels }

func (m *mockOggVorbisReader) Read(buf []float32) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	if len(m.samples) == 0 {
		return 0, io.EOF
	}
	n := len(buf)
	if m.chunk > 0 {
		n = min(n, m.chunk*m.channels)
	}
	n = copy(buf[:n], m.samples)
	m.samples = m.samples[n:]
	return n, nil
}

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	for name, data := range map[string][]byte{
		"garbage": []byte("This is not Ogg Vorbis data"),
		"empty":   {},
	} {
		if _, err := (Decoder{}).Decode(bytes.NewReader(data)); err == nil {
			t.Errorf("%s: Decode() error = nil", name)
		}
	}
}

func TestSource_Format(t *testing.T) {
	t.Parallel()

	s := newSource(&mockOggVorbisReader{sampleRate: 48000, channels: 2})
	if f := s.Format(); f.SampleRate != 48000 || f.NumChannels != 2 {
		t.Errorf("Format() = %+v", *f)
	}
}

func TestSource_ReadSamples(t *testing.T) {
	t.Parallel()

	want := []float32{0.1, -0.1, 0.2, -0.2, 0.3, -0.3, 0.4, -0.4}

	tests := []struct {
		name  string
		chunk int
		size  int
	}{
		{"single read", 0, 64},
		{"chunked", 1, 64},
		{"odd buffer", 0, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := newSource(&mockOggVorbisReader{
				sampleRate: 44100, channels: 2, chunk: tt.chunk,
				samples: slices.Clone(want),
			})

			buf := make([]float32, tt.size)
			var got []float32
			for range 100 {
				n, err := s.ReadSamples(buf)
				if n%2 != 0 {
					t.Fatalf("ReadSamples() returned a partial frame (%d)", n)
				}
				got = append(got, buf[:n]...)
				if err == io.EOF {
					break
				}
				if err != nil {
					t.Fatalf("ReadSamples() error = %v", err)
				}
			}

			if !slices.Equal(got, want) {
				t.Errorf("read %v, want %v", got, want)
			}
			if n, err := s.ReadSamples(buf); n != 0 || err != io.EOF {
				t.Errorf("ReadSamples() after EOF = %d, %v", n, err)
			}
		})
	}
}

func TestSource_Errors(t *testing.T) {
	t.Parallel()

	s := newSource(&mockOggVorbisReader{sampleRate: 8000, channels: 1, err: io.ErrUnexpectedEOF})
	if _, err := s.ReadSamples(make([]float32, 4)); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("ReadSamples() error = %v, want %v", err, io.ErrUnexpectedEOF)
	}

	stereo := newSource(&mockOggVorbisReader{sampleRate: 8000, channels: 2})
	if n, err := stereo.ReadSamples(make([]float32, 1)); n != 0 || err != nil {
		t.Errorf("ReadSamples(1) = %d, %v; want 0, nil", n, err)
	}
}
