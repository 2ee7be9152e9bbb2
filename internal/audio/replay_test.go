package audio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/wav"
)

func writeWAV(t *testing.T, s beep.Streamer, n int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tone.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	format := beep.Format{SampleRate: DefaultSampleRate, NumChannels: 2, Precision: 2}
	if err := wav.Encode(f, beep.Take(n, s), format); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReplay(t *testing.T) {
	// half a second of a low tone
	path := writeWAV(t, sine(4), int(DefaultSampleRate)/2)

	r, err := OpenReplay(path)
	if err != nil {
		t.Fatalf("OpenReplay: %v", err)
	}
	defer r.Close()

	b := r.Advance(0.1)
	if b == nil {
		t.Fatal("expected a sample while the track plays")
	}
	if b.Bass <= b.High {
		t.Errorf("expected a low tone to favor bass, got %+v", *b)
	}

	var ended bool
	for range 10 {
		if r.Advance(0.1) == nil {
			ended = true
			break
		}
	}
	if !ended {
		t.Error("expected the replay to end after the track")
	}
	if r.Advance(0.1) != nil {
		t.Error("expected nil after the track ended")
	}
}

func TestOpenReplayInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.wav")
	if err := os.WriteFile(path, []byte("not a wav"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := OpenReplay(path); err == nil {
		t.Error("expected decode error")
	}
	if _, err := OpenReplay(filepath.Join(t.TempDir(), "missing.wav")); err == nil {
		t.Error("expected open error")
	}
}
