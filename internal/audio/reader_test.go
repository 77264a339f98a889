package audio

import (
	"os"
	"path/filepath"
	"testing"

	gaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// writeTestWAV encodes samples as a PCM WAV file and returns its path.
func writeTestWAV(t *testing.T, sampleRate, bitDepth, channels int, samples []int) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	enc := wav.NewEncoder(f, sampleRate, bitDepth, channels, 1)
	buf := &gaudio.IntBuffer{
		Format:         &gaudio.Format{NumChannels: channels, SampleRate: sampleRate},
		Data:           samples,
		SourceBitDepth: bitDepth,
	}
	if err := enc.Write(buf); err != nil {
		t.Fatalf("failed to write samples: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("failed to close encoder: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("failed to close file: %v", err)
	}
	return path
}

func TestReadWAVFile(t *testing.T) {
	samples := []int{0, 16384, -16384, 32767, -32768, 100}
	path := writeTestWAV(t, 8000, 16, 1, samples)

	buf, meta, err := ReadWAVFile(path)
	if err != nil {
		t.Fatalf("ReadWAVFile() error = %v", err)
	}

	if buf.SampleRate != 8000 {
		t.Errorf("SampleRate = %d, want 8000", buf.SampleRate)
	}
	if len(buf.Samples) != len(samples) {
		t.Fatalf("len(Samples) = %d, want %d", len(buf.Samples), len(samples))
	}
	for i, want := range samples {
		if buf.Samples[i] != want {
			t.Errorf("Samples[%d] = %d, want %d", i, buf.Samples[i], want)
		}
	}

	if meta.SampleRate != 8000 {
		t.Errorf("meta.SampleRate = %d, want 8000", meta.SampleRate)
	}
	if meta.Channels != 1 {
		t.Errorf("meta.Channels = %d, want 1", meta.Channels)
	}
	if meta.BitDepth != 16 {
		t.Errorf("meta.BitDepth = %d, want 16", meta.BitDepth)
	}
	// 6 samples at 8000 Hz = 0.00075 seconds
	if got, want := meta.Duration, 6.0/8000.0; got != want {
		t.Errorf("meta.Duration = %g, want %g", got, want)
	}
}

func TestReadWAVFileRejectsStereo(t *testing.T) {
	// Two channels, interleaved
	path := writeTestWAV(t, 8000, 16, 2, []int{0, 0, 100, 100, -100, -100})

	if _, _, err := ReadWAVFile(path); err == nil {
		t.Fatal("ReadWAVFile() accepted a stereo file, want error")
	}
}

func TestReadWAVFileRejectsWrongBitDepth(t *testing.T) {
	path := writeTestWAV(t, 8000, 24, 1, []int{0, 1000, -1000})

	if _, _, err := ReadWAVFile(path); err == nil {
		t.Fatal("ReadWAVFile() accepted a 24-bit file, want error")
	}
}

func TestReadWAVFileRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.wav")
	if err := os.WriteFile(path, []byte("this is not a wav file"), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	if _, _, err := ReadWAVFile(path); err == nil {
		t.Fatal("ReadWAVFile() accepted garbage input, want error")
	}
}

func TestReadWAVFileMissing(t *testing.T) {
	if _, _, err := ReadWAVFile(filepath.Join(t.TempDir(), "missing.wav")); err == nil {
		t.Fatal("ReadWAVFile() succeeded on a missing file, want error")
	}
}

func TestBufferDuration(t *testing.T) {
	tests := []struct {
		name string
		buf  Buffer
		want float64
	}{
		{"one second", Buffer{Samples: make([]int, 8000), SampleRate: 8000}, 1.0},
		{"empty", Buffer{SampleRate: 8000}, 0},
		{"zero rate", Buffer{Samples: make([]int, 100)}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.buf.Duration(); got != tt.want {
				t.Errorf("Duration() = %g, want %g", got, tt.want)
			}
		})
	}
}
