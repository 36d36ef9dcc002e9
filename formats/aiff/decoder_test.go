// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	goaiff "github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"

	"github.com/ik5/audproc/audio"
)

func writeAIFF(t *testing.T, rate, depth, channels int, data []int) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "in.aiff")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	enc := goaiff.NewEncoder(f, rate, depth, channels)
	err = enc.Write(&goaudio.IntBuffer{
		Format:         &goaudio.Format{SampleRate: rate, NumChannels: channels},
		Data:           data,
		SourceBitDepth: depth,
	})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("encode close: %v", err)
	}
	return path
}

func TestDecode(t *testing.T) {
	t.Parallel()

	data := []int{0, 0, 16384, -16384, 32767, -32768, 100, -100}
	path := writeAIFF(t, 22050, 16, 2, data)

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	for name, r := range map[string]io.Reader{
		"seeker":   bytes.NewReader(raw),
		"buffered": io.MultiReader(bytes.NewReader(raw)),
	} {
		src, err := Decoder{}.Decode(r)
		if err != nil {
			t.Fatalf("%s: Decode() error = %v", name, err)
		}
		if f := src.Format(); f.SampleRate != 22050 || f.NumChannels != 2 {
			t.Errorf("%s: Format() = %+v", name, *f)
		}

		buf := make([]float32, 16)
		n, err := src.ReadSamples(buf)
		if n != len(data) || err != io.EOF {
			t.Fatalf("%s: ReadSamples() = %d, %v; want %d, EOF", name, n, err, len(data))
		}
		for i, v := range data {
			if want := float32(v) / 32768; buf[i] != want {
				t.Errorf("%s: sample %d = %v, want %v", name, i, buf[i], want)
			}
		}
	}
}

func TestDecode_24Bit(t *testing.T) {
	t.Parallel()

	f, err := os.Open(writeAIFF(t, 48000, 24, 1, []int{1 << 22, -(1 << 21)}))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	src, err := Decoder{}.Decode(f)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	buf := make([]float32, 2)
	if n, _ := src.ReadSamples(buf); n != 2 {
		t.Fatalf("ReadSamples() n = %d, want 2", n)
	}
	if buf[0] != 0.5 || buf[1] != -0.25 {
		t.Errorf("samples = %v, want [0.5 -0.25]", buf)
	}
}

func TestDecode_Errors(t *testing.T) {
	t.Parallel()

	if _, err := (Decoder{}).Decode(bytes.NewReader([]byte("This is not AIFF data"))); !errors.Is(err, ErrNotAiffFile) {
		t.Errorf("Decode(garbage) error = %v, want %v", err, ErrNotAiffFile)
	}
	if _, err := (Decoder{}).Decode(bytes.NewReader(nil)); !errors.Is(err, ErrNotAiffFile) {
		t.Errorf("Decode(empty) error = %v, want %v", err, ErrNotAiffFile)
	}

	f, err := os.Open(writeAIFF(t, 8000, 8, 1, []int{1, 2, 3}))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if _, err := (Decoder{}).Decode(f); !errors.Is(err, audio.ErrUnsupportedBitDepth) {
		t.Errorf("Decode(8 bit) error = %v, want %v", err, audio.ErrUnsupportedBitDepth)
	}
}
