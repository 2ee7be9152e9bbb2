package audio

import (
	"errors"
	"fmt"
	"io"
	gomath "math"
	"os"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
	"go.uber.org/zap"
)

// DefaultSampleRate is the speaker sample rate.
const DefaultSampleRate = beep.SampleRate(44100)

// ErrNotInitialized is returned by playback calls made before Init.
var ErrNotInitialized = errors.New("audio not initialized")

// Player plays a music track through the speaker and feeds an Analyzer, so
// the frame loop can sample band energies of what is currently audible.
type Player struct {
	mu sync.RWMutex

	initialized bool
	sampleRate  beep.SampleRate

	streamer beep.StreamSeekCloser
	ctrl     *beep.Ctrl
	volume   *effects.Volume
	playing  bool

	masterVolume float64

	analyzer *Analyzer
	log      *zap.Logger
}

// NewPlayer creates a player. A nil logger disables logging.
func NewPlayer(log *zap.Logger) *Player {
	if log == nil {
		log = zap.NewNop()
	}
	return &Player{
		masterVolume: 1.0,
		analyzer:     NewAnalyzer(),
		log:          log,
	}
}

// Init opens the speaker.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}

	p.sampleRate = DefaultSampleRate
	if err := speaker.Init(p.sampleRate, p.sampleRate.N(time.Second/30)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	p.initialized = true
	return nil
}

// Close stops playback and releases the track.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.stopInternal()
	p.initialized = false
}

// SetVolume sets the master volume (0.0 to 1.0).
func (p *Player) SetVolume(vol float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.masterVolume = clamp(vol, 0, 1)
	p.updateVolume()
}

func (p *Player) updateVolume() {
	if p.volume == nil {
		return
	}
	speaker.Lock()
	defer speaker.Unlock()
	p.volume.Silent = p.masterVolume <= 0
	p.volume.Volume = gainExponent(p.masterVolume)
}

// gainExponent converts a 0-1 linear gain to the base-2 exponent used by
// effects.Volume.
func gainExponent(vol float64) float64 {
	if vol <= 0 {
		return -100
	}
	return gomath.Log2(vol)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo || gomath.IsNaN(v) {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Load opens a WAV file and starts playing it.
func (p *Player) Load(path string, loop bool) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	return p.Play(f, path, loop)
}

// Play decodes WAV data from r and starts playing it, replacing any current
// track. The player owns r from here on.
func (p *Player) Play(r io.ReadCloser, name string, loop bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		r.Close()
		return ErrNotInitialized
	}

	p.stopInternal()

	streamer, format, err := wav.Decode(r)
	if err != nil {
		r.Close()
		return fmt.Errorf("decode wav %s: %w", name, err)
	}

	var source beep.Streamer = streamer
	if loop {
		source = &loopStreamer{streamer: streamer}
	}
	if format.SampleRate != p.sampleRate {
		source = beep.Resample(4, format.SampleRate, p.sampleRate, source)
	}

	p.ctrl = &beep.Ctrl{Streamer: p.analyzer.Tap(source)}
	p.volume = &effects.Volume{Streamer: p.ctrl, Base: 2}
	p.streamer = streamer
	p.playing = true
	p.analyzer.Reset()
	p.updateVolume()

	ctrl := p.ctrl
	speaker.Play(beep.Seq(p.volume, beep.Callback(func() {
		// runs under the speaker lock; p.mu is taken elsewhere first
		go p.finished(ctrl, name)
	})))

	p.log.Info("playing track",
		zap.String("track", name),
		zap.Int("sample_rate", int(format.SampleRate)),
		zap.Bool("loop", loop))
	return nil
}

// finished releases a track that ran out. A later TogglePause then has
// nothing to resume, so Sample stays nil and the modulator decays.
func (p *Player) finished(ctrl *beep.Ctrl, name string) {
	p.mu.Lock()
	if p.ctrl == ctrl {
		if p.streamer != nil {
			p.streamer.Close()
			p.streamer = nil
		}
		p.ctrl = nil
		p.volume = nil
		p.playing = false
	}
	p.mu.Unlock()
	p.log.Debug("track finished", zap.String("track", name))
}

func (p *Player) stopInternal() {
	if p.initialized {
		speaker.Clear()
	}
	if p.streamer != nil {
		p.streamer.Close()
		p.streamer = nil
	}
	p.ctrl = nil
	p.volume = nil
	p.playing = false
}

// TogglePause flips between paused and playing.
func (p *Player) TogglePause() {
	p.mu.RLock()
	playing := p.playing
	p.mu.RUnlock()
	p.setPaused(playing)
}

func (p *Player) setPaused(paused bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ctrl == nil {
		return
	}
	speaker.Lock()
	p.ctrl.Paused = paused
	speaker.Unlock()
	p.playing = !paused
}

// Playing reports whether a track is audible.
func (p *Player) Playing() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.playing
}

// Sample returns the band energies of the audible signal, or nil while
// nothing is playing so the modulator decays instead.
func (p *Player) Sample() *Bands {
	if !p.Playing() {
		return nil
	}
	b := p.analyzer.Bands()
	return &b
}

// loopStreamer rewinds the underlying stream whenever it runs out.
type loopStreamer struct {
	streamer beep.StreamSeekCloser
}

func (l *loopStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	filled := 0
	for filled < len(samples) {
		n, ok := l.streamer.Stream(samples[filled:])
		filled += n
		if !ok {
			if err := l.streamer.Seek(0); err != nil {
				return filled, filled > 0
			}
			if n == 0 && l.streamer.Len() == 0 {
				return filled, filled > 0
			}
		}
	}
	return filled, true
}

func (l *loopStreamer) Err() error {
	return l.streamer.Err()
}
