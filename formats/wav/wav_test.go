// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"

	"github.com/ik5/audproc/audio"
)

// onlyReader hides Seek so Decode takes the buffering path.
type onlyReader struct{ r io.Reader }

func (o onlyReader) Read(p []byte) (int, error) { return o.r.Read(p) }

func readAll(t *testing.T, src audio.Source) []float32 {
	t.Helper()

	var out []float32
	buf := make([]float32, 7*src.Format().NumChannels)
	for {
		n, err := src.ReadSamples(buf)
		out = append(out, buf[:n]...)
		if err == io.EOF {
			return out
		}
		if err != nil {
			t.Fatalf("ReadSamples() error = %v", err)
		}
	}
}

func TestWriteWAV16_Header(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	samples := []int16{1, -1, 2, -2, 3, -3}
	if err := WriteWAV16(&buf, 48000, 2, samples); err != nil {
		t.Fatalf("WriteWAV16() error = %v", err)
	}

	b := buf.Bytes()
	if len(b) != 44+12 {
		t.Fatalf("file is %d bytes, want 56", len(b))
	}

	tests := []struct {
		name string
		got  uint32
		want uint32
	}{
		{"riff size", binary.LittleEndian.Uint32(b[4:]), 36 + 12},
		{"format", uint32(binary.LittleEndian.Uint16(b[20:])), 1},
		{"channels", uint32(binary.LittleEndian.Uint16(b[22:])), 2},
		{"sample rate", binary.LittleEndian.Uint32(b[24:]), 48000},
		{"byte rate", binary.LittleEndian.Uint32(b[28:]), 48000 * 4},
		{"block align", uint32(binary.LittleEndian.Uint16(b[32:])), 4},
		{"bits", uint32(binary.LittleEndian.Uint16(b[34:])), 16},
		{"data size", binary.LittleEndian.Uint32(b[40:]), 12},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %d, want %d", tt.name, tt.got, tt.want)
		}
	}

	if string(b[0:4]) != "RIFF" || string(b[8:12]) != "WAVE" || string(b[36:40]) != "data" {
		t.Error("chunk markers missing")
	}
	if int16(binary.LittleEndian.Uint16(b[46:])) != -1 {
		t.Error("samples not little-endian interleaved")
	}
}

func TestWriteWAV16_InvalidChannels(t *testing.T) {
	t.Parallel()

	if err := WriteWAV16(io.Discard, 8000, 0, nil); !errors.Is(err, ErrInvalidChannels) {
		t.Errorf("WriteWAV16() error = %v, want %v", err, ErrInvalidChannels)
	}
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	samples := make([]int16, 10000)
	for i := range samples {
		samples[i] = int16(i*13 - 30000)
	}

	for _, channels := range []int{1, 2} {
		var buf bytes.Buffer
		if err := WriteWAV16(&buf, 16000, channels, samples); err != nil {
			t.Fatalf("WriteWAV16() error = %v", err)
		}

		for name, r := range map[string]io.Reader{
			"seeker":   bytes.NewReader(buf.Bytes()),
			"buffered": onlyReader{bytes.NewReader(buf.Bytes())},
		} {
			src, err := Decoder{}.Decode(r)
			if err != nil {
				t.Fatalf("%s: Decode() error = %v", name, err)
			}
			if f := src.Format(); f.SampleRate != 16000 || f.NumChannels != channels {
				t.Errorf("%s: Format() = %+v", name, *f)
			}

			got := readAll(t, src)
			if len(got) != len(samples) {
				t.Fatalf("%s: read %d samples, want %d", name, len(got), len(samples))
			}
			for i, v := range got {
				if want := float32(samples[i]) / 32768; v != want {
					t.Fatalf("%s: sample %d = %v, want %v", name, i, v, want)
				}
			}
		}
	}
}

func TestWriter(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}

	w, err := NewWriter(f, 8000, 2)
	if err != nil {
		t.Fatalf("NewWriter() error = %v", err)
	}
	for range 5 {
		frame := make([]int16, 160)
		for i := range frame {
			frame[i] = int16(i)
		}
		if err := w.Write(frame); err != nil {
			t.Fatalf("Write() error = %v", err)
		}
	}
	if err := w.Write(nil); err != nil {
		t.Fatalf("Write(nil) error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	in, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer in.Close()

	src, err := Decoder{}.Decode(in)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if f := src.Format(); f.SampleRate != 8000 || f.NumChannels != 2 {
		t.Errorf("Format() = %+v", *f)
	}
	got := readAll(t, src)
	if len(got) != 800 {
		t.Fatalf("read %d samples, want 800", len(got))
	}
	if got[161] != 1.0/32768 {
		t.Errorf("got[161] = %v, want %v", got[161], 1.0/32768)
	}

	if _, err := NewWriter(f, 8000, 0); !errors.Is(err, ErrInvalidChannels) {
		t.Errorf("NewWriter(0 channels) error = %v", err)
	}
}

func TestDecode_24Bit(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "24.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	enc := gowav.NewEncoder(f, 44100, 24, 1, 1)
	err = enc.Write(&goaudio.IntBuffer{
		Format:         &goaudio.Format{SampleRate: 44100, NumChannels: 1},
		Data:           []int{1 << 22, -(1 << 22), 0, 1 << 21},
		SourceBitDepth: 24,
	})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatal(err)
	}
	f.Close()

	in, _ := os.Open(path)
	defer in.Close()

	src, err := Decoder{}.Decode(in)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	got := readAll(t, src)
	want := []float32{0.5, -0.5, 0, 0.25}
	if len(got) != len(want) {
		t.Fatalf("read %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestDecode_Errors(t *testing.T) {
	t.Parallel()

	header := func(format, bits uint16) []byte {
		var buf bytes.Buffer
		WriteWAV16(&buf, 8000, 1, []int16{1, 2, 3, 4})
		b := buf.Bytes()
		binary.LittleEndian.PutUint16(b[20:], format)
		binary.LittleEndian.PutUint16(b[34:], bits)
		return b
	}

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"not riff", []byte("this is definitely not a wav file, honest"), ErrNotWavFile},
		{"empty", nil, ErrNotWavFile},
		{"float", header(3, 32), ErrNotPCM},
		{"8 bit", header(1, 8), audio.ErrUnsupportedBitDepth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Decoder{}.Decode(bytes.NewReader(tt.data))
			if !errors.Is(err, tt.want) {
				t.Errorf("Decode() error = %v, want %v", err, tt.want)
			}
		})
	}
}
