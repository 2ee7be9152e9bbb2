package audio

import (
	gomath "math"
	"math/cmplx"
	"sync"

	"github.com/gopxl/beep/v2"
	"gonum.org/v1/gonum/dsp/fourier"
)

// Analyzer parameters. They mirror a browser analyser node with fftSize 256,
// so band levels match what the effects were tuned against.
const (
	FFTSize     = 256
	BinCount    = FFTSize / 2
	MinDecibels = -100.0
	MaxDecibels = -30.0
	Smoothing   = 0.8
)

// Band boundaries as bin index ranges.
const (
	bassEnd = 32
	midEnd  = 64
	highEnd = BinCount
)

// Analyzer keeps the most recent FFTSize mono samples of a stream and turns
// them into band energies. Push may be called from the audio goroutine while
// Bands is called from the frame loop.
type Analyzer struct {
	mu     sync.Mutex
	ring   [FFTSize]float64
	pos    int
	filled int

	fft      *fourier.FFT
	frame    [FFTSize]float64
	coeffs   []complex128
	window   [FFTSize]float64
	smoothed [BinCount]float64
	bins     [BinCount]uint8
}

// NewAnalyzer returns an analyzer with a Blackman window and empty history.
func NewAnalyzer() *Analyzer {
	a := &Analyzer{
		fft:    fourier.NewFFT(FFTSize),
		coeffs: make([]complex128, FFTSize/2+1),
	}
	const a0, a1, a2 = 0.42, 0.5, 0.08
	for n := range FFTSize {
		x := 2 * gomath.Pi * float64(n) / FFTSize
		a.window[n] = a0 - a1*gomath.Cos(x) + a2*gomath.Cos(2*x)
	}
	return a
}

// Push appends stereo samples, downmixed to mono. Non-finite samples are
// recorded as silence.
func (a *Analyzer) Push(samples [][2]float64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, s := range samples {
		v := (s[0] + s[1]) / 2
		if !finite(v) {
			v = 0
		}
		a.ring[a.pos] = v
		a.pos = (a.pos + 1) % FFTSize
		if a.filled < FFTSize {
			a.filled++
		}
	}
}

// Reset clears the sample history and the smoothing state.
func (a *Analyzer) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.ring = [FFTSize]float64{}
	a.smoothed = [BinCount]float64{}
	a.bins = [BinCount]uint8{}
	a.pos, a.filled = 0, 0
}

// Bands analyzes the current window and returns band energies in [0, 1].
// Each call advances the temporal smoothing by one step.
func (a *Analyzer) Bands() Bands {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.analyze()
	return Bands{
		Bass: a.mean(0, bassEnd),
		Mid:  a.mean(bassEnd, midEnd),
		High: a.mean(midEnd, highEnd),
	}
}

func (a *Analyzer) analyze() {
	// oldest sample first
	for i := range FFTSize {
		a.frame[i] = a.ring[(a.pos+i)%FFTSize] * a.window[i]
	}
	a.coeffs = a.fft.Coefficients(a.coeffs, a.frame[:])

	for k := range BinCount {
		mag := cmplx.Abs(a.coeffs[k]) / FFTSize
		a.smoothed[k] = Smoothing*a.smoothed[k] + (1-Smoothing)*mag
		a.bins[k] = toByte(a.smoothed[k])
	}
}

// toByte maps a magnitude onto [0, 255] across [MinDecibels, MaxDecibels].
func toByte(mag float64) uint8 {
	if mag <= 0 {
		return 0
	}
	db := 20 * gomath.Log10(mag)
	v := 255 * (db - MinDecibels) / (MaxDecibels - MinDecibels)
	switch {
	case v <= 0 || !finite(v):
		return 0
	case v >= 255:
		return 255
	default:
		return uint8(v)
	}
}

func (a *Analyzer) mean(lo, hi int) float32 {
	sum := 0
	for _, b := range a.bins[lo:hi] {
		sum += int(b)
	}
	return float32(sum) / float32(hi-lo) / 255
}

// Tap wraps s so every sample it produces is also pushed into the analyzer.
func (a *Analyzer) Tap(s beep.Streamer) beep.Streamer {
	return &tap{s: s, a: a}
}

type tap struct {
	s beep.Streamer
	a *Analyzer
}

func (t *tap) Stream(samples [][2]float64) (int, bool) {
	n, ok := t.s.Stream(samples)
	t.a.Push(samples[:n])
	return n, ok
}

func (t *tap) Err() error {
	return t.s.Err()
}
