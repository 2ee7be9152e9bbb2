package audio

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/gopxl/beep/v2"
)

func TestGainExponent(t *testing.T) {
	tests := []struct {
		vol  float64
		want float64
	}{
		{1.0, 0},
		{0.5, -1},
		{0.25, -2},
		{0.0, -100},
		{-1, -100},
	}
	for _, tt := range tests {
		if got := gainExponent(tt.vol); got != tt.want {
			t.Errorf("gainExponent(%v) = %v, want %v", tt.vol, got, tt.want)
		}
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		v, lo, hi, want float64
	}{
		{0.5, 0, 1, 0.5},
		{-1, 0, 1, 0},
		{2, 0, 1, 1},
		{0, 0, 1, 0},
		{1, 0, 1, 1},
	}
	for _, tt := range tests {
		if got := clamp(tt.v, tt.lo, tt.hi); got != tt.want {
			t.Errorf("clamp(%v, %v, %v) = %v, want %v", tt.v, tt.lo, tt.hi, got, tt.want)
		}
	}
}

func TestNewPlayer(t *testing.T) {
	p := NewPlayer(nil)
	if p.masterVolume != 1.0 {
		t.Errorf("default volume = %v, want 1.0", p.masterVolume)
	}
	if p.Playing() {
		t.Error("new player reports playing")
	}
	if p.Sample() != nil {
		t.Error("Sample() of idle player should be nil")
	}
}

func TestSetVolume(t *testing.T) {
	p := NewPlayer(nil)
	p.SetVolume(0.5)
	if p.masterVolume != 0.5 {
		t.Errorf("volume = %v, want 0.5", p.masterVolume)
	}
	p.SetVolume(2)
	if p.masterVolume != 1 {
		t.Errorf("volume = %v, want 1 (clamped)", p.masterVolume)
	}
	p.SetVolume(-1)
	if p.masterVolume != 0 {
		t.Errorf("volume = %v, want 0 (clamped)", p.masterVolume)
	}
}

func TestPlayBeforeInit(t *testing.T) {
	p := NewPlayer(nil)
	err := p.Play(io.NopCloser(strings.NewReader("")), "empty.wav", false)
	if !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Play() error = %v, want ErrNotInitialized", err)
	}
}

func TestPauseWithoutTrack(t *testing.T) {
	p := NewPlayer(nil)
	p.TogglePause()
	p.TogglePause()
	if p.Playing() {
		t.Error("player without a track reports playing")
	}
}

func TestFinishedTrackCannotResume(t *testing.T) {
	p := NewPlayer(nil)
	ctrl := &beep.Ctrl{}
	p.ctrl = ctrl
	p.playing = true
	p.analyzer.Push([][2]float64{{1, 1}, {-1, -1}})

	if p.Sample() == nil {
		t.Fatal("Sample() = nil while playing")
	}

	p.finished(ctrl, "song.wav")
	if p.Playing() {
		t.Error("player still playing after the track finished")
	}

	p.TogglePause()
	if p.Playing() {
		t.Error("TogglePause resumed a finished track")
	}
	if p.Sample() != nil {
		t.Error("Sample() after a finished track should be nil")
	}
}

func TestFinishedIgnoresReplacedTrack(t *testing.T) {
	p := NewPlayer(nil)
	current := &beep.Ctrl{}
	p.ctrl = current
	p.playing = true

	p.finished(&beep.Ctrl{}, "old.wav")
	if !p.Playing() || p.ctrl != current {
		t.Error("finishing a replaced track stopped the current one")
	}
}

type nopCloser struct {
	beep.StreamSeeker
}

func (nopCloser) Close() error { return nil }

func TestLoopStreamer(t *testing.T) {
	format := beep.Format{SampleRate: DefaultSampleRate, NumChannels: 2, Precision: 2}
	buf := beep.NewBuffer(format)
	buf.Append(beep.Take(10, sine(4)))

	l := &loopStreamer{streamer: nopCloser{buf.Streamer(0, buf.Len())}}
	out := make([][2]float64, 25)
	n, ok := l.Stream(out)
	if n != 25 || !ok {
		t.Fatalf("Stream() = %d, %v; want 25, true", n, ok)
	}
	if out[10] != out[0] || out[20] != out[0] {
		t.Errorf("loop did not restart: %v %v %v", out[0], out[10], out[20])
	}
}

func TestLoopStreamerEmpty(t *testing.T) {
	format := beep.Format{SampleRate: DefaultSampleRate, NumChannels: 2, Precision: 2}
	buf := beep.NewBuffer(format)

	l := &loopStreamer{streamer: nopCloser{buf.Streamer(0, 0)}}
	n, ok := l.Stream(make([][2]float64, 8))
	if n != 0 || ok {
		t.Errorf("Stream() of empty source = %d, %v; want 0, false", n, ok)
	}
}
