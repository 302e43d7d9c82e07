package audio

import (
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/scrolldeck/parameter"
)

// drain streams s to completion and returns every sample
func drain(s beep.Streamer) [][2]float64 {
	var out [][2]float64
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		out = append(out, buf[:n]...)
		if !ok {
			return out
		}
	}
}

func TestPartialLength(t *testing.T) {
	rate := beep.SampleRate(44100)
	d := 100 * time.Millisecond

	for _, wave := range []Wave{Sine, Triangle} {
		s, err := NewPartial(Partial{Freq: 440, Wave: wave, Gain: 1, Release: 10 * time.Millisecond}, d, rate)
		if err != nil {
			t.Fatalf("wave %d: %v", wave, err)
		}
		samples := drain(s)
		if len(samples) != rate.N(d) {
			t.Fatalf("wave %d: expected %d samples, got %d", wave, rate.N(d), len(samples))
		}
		for i, v := range samples {
			if v[0] < -1 || v[0] > 1 || v[0] != v[1] {
				t.Fatalf("wave %d: sample %d invalid: %v", wave, i, v)
			}
		}
	}
}

func TestPartialRejectsBadFrequency(t *testing.T) {
	rate := beep.SampleRate(44100)
	if _, err := NewPartial(Partial{Freq: float64(rate), Wave: Sine, Gain: 1}, time.Millisecond, rate); err == nil {
		t.Error("frequency at the sample rate should be rejected")
	}
	if _, err := NewPartial(Partial{Freq: 440, Wave: Wave(9), Gain: 1}, time.Millisecond, rate); err == nil {
		t.Error("unknown wave should be rejected")
	}
}

// TestShape verifies silence at both ends and full level in between
func TestShape(t *testing.T) {
	rate := beep.SampleRate(1000)
	d := 100 * time.Millisecond
	env := Shape(constant{}, d, 10*time.Millisecond, 10*time.Millisecond, rate)

	samples := drain(env)
	if len(samples) != 100 {
		t.Fatalf("Expected 100 samples, got %d", len(samples))
	}
	if samples[0][0] != 0 {
		t.Errorf("Attack should start silent, got %f", samples[0][0])
	}
	if samples[50][0] != 1 {
		t.Errorf("Sustain should be full level, got %f", samples[50][0])
	}
	if samples[99][0] >= samples[90][0] {
		t.Errorf("Release should fade: %f >= %f", samples[99][0], samples[90][0])
	}
}

func TestToneRange(t *testing.T) {
	tone, err := NewTone(440, 0.5, sampleRate)
	if err != nil {
		t.Fatalf("NewTone failed: %v", err)
	}
	samples := drain(tone)
	if len(samples) != sampleRate.N(parameter.CueDuration) {
		t.Fatalf("Expected %d samples, got %d", sampleRate.N(parameter.CueDuration), len(samples))
	}
	for i, s := range samples {
		if s[0] < -1 || s[0] > 1 {
			t.Fatalf("Sample %d out of range: %f", i, s[0])
		}
	}
}

// constant streams 1.0 forever
type constant struct{}

func (constant) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		samples[i] = [2]float64{1, 1}
	}
	return len(samples), true
}

func (constant) Err() error { return nil }
