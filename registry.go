// SPDX-License-Identifier: EPL-2.0

package audproc

import (
	"fmt"
	"os"

	"github.com/ik5/audproc/audio"
	"github.com/ik5/audproc/formats/aiff"
	"github.com/ik5/audproc/formats/mp3"
	"github.com/ik5/audproc/formats/vorbis"
	"github.com/ik5/audproc/formats/wav"
)

// NewRegistry returns a decoder registry holding every bundled format.
func NewRegistry() *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register("wav", wav.Decoder{}, "wave")
	reg.Register("aiff", aiff.Decoder{}, "aif", "aifc")
	reg.Register("mp3", mp3.Decoder{})
	reg.Register("vorbis", vorbis.Decoder{}, "ogg", "oga")
	return reg
}

// fileSource closes the underlying file together with the decoded source.
type fileSource struct {
	audio.Source
	f *os.File
}

func (s *fileSource) Close() error {
	err := s.Source.Close()
	if cerr := s.f.Close(); err == nil {
		err = cerr
	}
	return err
}

// OpenFile decodes path with the decoder its extension maps to in reg.
// Closing the returned source closes the file.
func OpenFile(reg *audio.Registry, path string) (audio.Source, error) {
	dec, err := reg.DecoderFor(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	src, err := dec.Decode(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return &fileSource{Source: src, f: f}, nil
}
