package audio

import (
	gomath "math"
	"testing"
)

func TestModulatorSampleSetsState(t *testing.T) {
	var m Modulator
	got := m.Update(&Bands{Bass: 0.4, Mid: 1.5, High: float32(gomath.NaN())}, 1.0/60)
	want := Bands{Bass: 0.4, Mid: 1, High: 0}
	if got != want {
		t.Errorf("Update() = %+v, want %+v", got, want)
	}
	if m.state != want {
		t.Errorf("state = %+v, want %+v", m.state, want)
	}
}

func TestModulatorDecay(t *testing.T) {
	var m Modulator
	m.Update(&Bands{Bass: 1, Mid: 0.5, High: 0.01}, 0)

	bass, mid, high := float32(1), float32(0.5), float32(0.01)
	for n := 1; n <= 200; n++ {
		got := m.Update(nil, 0)

		bass, mid, high = bass*DecayFactor, mid*DecayFactor, high*DecayFactor
		if bass < SilenceThreshold && mid < SilenceThreshold && high < SilenceThreshold {
			bass, mid, high = 0, 0, 0
		}
		if got.Bass != bass || got.Mid != mid || got.High != high {
			t.Fatalf("step %d: got %+v, want {%v %v %v}", n, got, bass, mid, high)
		}
	}
	if !m.state.Silent() {
		t.Errorf("state after 200 steps = %+v, want silent", m.state)
	}
}

func TestModulatorDecayGeometric(t *testing.T) {
	var m Modulator
	m.Update(&Bands{Bass: 1}, 0)

	want := float32(1)
	for n := 1; ; n++ {
		got := m.Update(nil, 0).Bass
		want *= DecayFactor
		if want < SilenceThreshold {
			if got != 0 {
				t.Fatalf("step %d: bass = %v, want exactly 0", n, got)
			}
			break
		}
		if got != want {
			t.Fatalf("step %d: bass = %v, want %v", n, got, want)
		}
	}
}

func TestModulatorJointCutoff(t *testing.T) {
	var m Modulator
	m.Update(&Bands{Bass: 1, Mid: 0.01}, 0)

	for n := 1; ; n++ {
		got := m.Update(nil, 0)
		if got.Silent() {
			break
		}
		if got.Bass >= SilenceThreshold && got.Mid == 0 {
			t.Fatalf("step %d: mid snapped to 0 while bass = %v", n, got.Bass)
		}
		if got.Bass < SilenceThreshold && got.Mid < SilenceThreshold && got.High < SilenceThreshold {
			t.Fatalf("step %d: all channels below threshold but state = %+v", n, got)
		}
		if n > 1000 {
			t.Fatal("modulator never fell silent")
		}
	}

	// a channel that drops below the threshold keeps its value while another is loud
	m.Update(&Bands{Bass: 1, High: 0.00105}, 0)
	got := m.Update(nil, 0)
	if want := float32(0.00105) * DecayFactor; got.High != want {
		t.Errorf("high = %v, want %v while bass is above threshold", got.High, want)
	}
}

func TestModulatorReset(t *testing.T) {
	var m Modulator
	m.Update(&Bands{Bass: 1, Mid: 1, High: 1}, 0)
	m.Reset()
	if !m.state.Silent() {
		t.Errorf("state after Reset = %+v", m.state)
	}
}

func TestParseVisualization(t *testing.T) {
	tests := []struct {
		in   string
		want Visualization
		ok   bool
	}{
		{"pulse", VisPulse, true},
		{"Explode", VisExplode, true},
		{" wave ", VisWave, true},
		{"strobe", VisNone, false},
	}
	for _, tt := range tests {
		got, ok := ParseVisualization(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseVisualization(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestVisualizationNext(t *testing.T) {
	v := VisNone
	seen := map[Visualization]bool{}
	for range 4 {
		seen[v] = true
		v = v.Next()
	}
	if v != VisNone || len(seen) != 4 {
		t.Errorf("Next did not cycle through all visualizations: %v", seen)
	}
}

func TestScaleFactor(t *testing.T) {
	tests := []struct {
		vis  Visualization
		bass float32
		want float32
	}{
		{VisNone, 1, 1},
		{VisWave, 1, 1},
		{VisPulse, 0.5, 1.6},
		{VisExplode, 0.5, 1.5},
		{VisPulse, 3, 2.2},
	}
	for _, tt := range tests {
		got := tt.vis.ScaleFactor(tt.bass)
		if gomath.Abs(float64(got-tt.want)) > 1e-6 {
			t.Errorf("%v.ScaleFactor(%v) = %v, want %v", tt.vis, tt.bass, got, tt.want)
		}
	}
}
