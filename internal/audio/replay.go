package audio

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/wav"
)

// Replay decodes a WAV track and feeds it through an Analyzer at a
// caller-chosen pace, for headless runs without an audio device.
type Replay struct {
	streamer beep.StreamSeekCloser
	format   beep.Format
	analyzer *Analyzer
	buf      [][2]float64
	done     bool
}

// OpenReplay opens a WAV file for offline analysis.
func OpenReplay(path string) (*Replay, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	r, err := NewReplay(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("replay %s: %w", path, err)
	}
	return r, nil
}

// NewReplay decodes WAV data from r. Closing the Replay closes r.
func NewReplay(r io.ReadCloser) (*Replay, error) {
	streamer, format, err := wav.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode wav: %w", err)
	}
	return &Replay{
		streamer: streamer,
		format:   format,
		analyzer: NewAnalyzer(),
		buf:      make([][2]float64, 512),
	}, nil
}

// Advance consumes dt seconds of audio and returns the resulting band
// sample. It returns nil once the track is exhausted, which the modulator
// treats as silence.
func (r *Replay) Advance(dt float32) *Bands {
	if r.done {
		return nil
	}
	n := r.format.SampleRate.N(time.Duration(float64(dt) * float64(time.Second)))
	for n > 0 {
		chunk := r.buf[:min(n, len(r.buf))]
		got, ok := r.streamer.Stream(chunk)
		r.analyzer.Push(chunk[:got])
		n -= got
		if !ok || got == 0 {
			r.done = true
			return nil
		}
	}
	b := r.analyzer.Bands()
	return &b
}

// Close releases the underlying stream.
func (r *Replay) Close() error {
	return r.streamer.Close()
}
