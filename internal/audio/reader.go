// Package audio provides WAV file reading into integer sample buffers
package audio

import (
	"fmt"
	"os"

	"github.com/go-audio/wav"
)

// pcmFormat is the WAV audio format tag for uncompressed linear PCM.
const pcmFormat = 1

// Buffer holds decoded audio as signed integer samples at a fixed rate.
type Buffer struct {
	Samples    []int // one sample per time step, 16-bit signed range
	SampleRate int   // samples per second
}

// Duration returns the buffer length in seconds.
func (b Buffer) Duration() float64 {
	if b.SampleRate <= 0 {
		return 0
	}
	return float64(len(b.Samples)) / float64(b.SampleRate)
}

// Metadata contains audio file metadata
type Metadata struct {
	Duration   float64 // seconds
	SampleRate int
	Channels   int
	BitDepth   int
}

// ReadWAVFile decodes a mono 16-bit linear PCM WAV file in full.
// Files with a different encoding, channel count, or bit depth are
// rejected rather than converted.
func ReadWAVFile(filename string) (Buffer, *Metadata, error) {
	f, err := os.Open(filename)
	if err != nil {
		return Buffer{}, nil, fmt.Errorf("failed to open audio file: %w", err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return Buffer{}, nil, fmt.Errorf("not a valid WAV file: %s", filename)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return Buffer{}, nil, fmt.Errorf("failed to read PCM data: %w", err)
	}

	if dec.WavAudioFormat != pcmFormat {
		return Buffer{}, nil, fmt.Errorf("unsupported WAV encoding %d in %s: only linear PCM is supported", dec.WavAudioFormat, filename)
	}
	if buf.Format.NumChannels != 1 {
		return Buffer{}, nil, fmt.Errorf("unsupported channel count %d in %s: only mono is supported", buf.Format.NumChannels, filename)
	}
	if dec.BitDepth != 16 {
		return Buffer{}, nil, fmt.Errorf("unsupported bit depth %d in %s: only 16-bit PCM is supported", dec.BitDepth, filename)
	}
	if len(buf.Data) == 0 {
		return Buffer{}, nil, fmt.Errorf("no audio samples in %s", filename)
	}

	b := Buffer{
		Samples:    buf.Data,
		SampleRate: buf.Format.SampleRate,
	}
	meta := &Metadata{
		Duration:   b.Duration(),
		SampleRate: buf.Format.SampleRate,
		Channels:   buf.Format.NumChannels,
		BitDepth:   int(dec.BitDepth),
	}
	return b, meta, nil
}
