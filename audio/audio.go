// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	goaudio "github.com/go-audio/audio"
)

type Source interface {
	// Format reports the sample rate and channel count of the stream.
	Format() *goaudio.Format
	// ReadSamples fills dst with interleaved float32 samples in [-1,1].
	// Returns number of float32 values written (not frames). When n == 0 with err == io.EOF, the stream is finished.
	ReadSamples(dst []float32) (n int, err error)

	// Close releases any resources.
	Close() error
}

// Decoder constructs a Source from an input reader.
type Decoder interface {
	Decode(r io.Reader) (Source, error)
}

// Registry for decoders by format key (e.g., "wav", "mp3", "vorbis") and
// by file extension.
type Registry struct {
	codecs     map[string]Decoder
	extensions map[string]string

	mtx *sync.RWMutex
}

func NewRegistry() *Registry {
	return &Registry{
		codecs:     make(map[string]Decoder),
		extensions: make(map[string]string),
		mtx:        &sync.RWMutex{},
	}
}

// Register adds d under format. The format name itself and every given
// extension (with or without the leading dot) resolve to it in DecoderFor.
func (r *Registry) Register(format string, d Decoder, extensions ...string) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	format = strings.ToLower(format)
	r.codecs[format] = d
	r.extensions[format] = format
	for _, ext := range extensions {
		r.extensions[normalizeExt(ext)] = format
	}
}

func (r *Registry) Get(format string) (Decoder, bool) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	d, ok := r.codecs[strings.ToLower(format)]
	return d, ok
}

// DecoderFor picks a decoder from the extension of path.
func (r *Registry) DecoderFor(path string) (Decoder, error) {
	ext := normalizeExt(filepath.Ext(path))

	r.mtx.RLock()
	defer r.mtx.RUnlock()

	format, ok := r.extensions[ext]
	if !ok {
		return nil, fmt.Errorf("%q: %w", path, ErrUnknownFormat)
	}
	return r.codecs[format], nil
}

// Formats lists the registered format names in sorted order.
func (r *Registry) Formats() []string {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	names := make([]string, 0, len(r.codecs))
	for name := range r.codecs {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func normalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
