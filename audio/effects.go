package audio

import (
	"fmt"
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"

	"github.com/lixenwraith/scrolldeck/parameter"
)

// Wave selects the generator behind a partial
type Wave int

const (
	Sine Wave = iota
	Triangle
)

// Partial is one sounding component of a cue tone
type Partial struct {
	Freq    float64
	Wave    Wave
	Gain    float64
	Release time.Duration
}

// NewPartial returns a finite, enveloped stream of p lasting d
func NewPartial(p Partial, d time.Duration, rate beep.SampleRate) (beep.Streamer, error) {
	var (
		gen beep.Streamer
		err error
	)
	switch p.Wave {
	case Sine:
		gen, err = generators.SineTone(rate, p.Freq)
	case Triangle:
		gen, err = generators.TriangleTone(rate, p.Freq)
	default:
		err = fmt.Errorf("unknown wave %d", p.Wave)
	}
	if err != nil {
		return nil, err
	}

	shaped := Shape(beep.Take(rate.N(d), gen), d, parameter.CueAttack, p.Release, rate)
	return gain(shaped, p.Gain), nil
}

// shaper applies a linear attack ramp and release fade over a fixed span
type shaper struct {
	src     beep.Streamer
	pos     int
	attack  int
	release int
	span    int
}

// Shape limits s to d and fades it in over attack and out over release
func Shape(s beep.Streamer, d, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &shaper{
		src:     s,
		attack:  rate.N(attack),
		release: rate.N(release),
		span:    rate.N(d),
	}
}

func (s *shaper) level() float64 {
	switch {
	case s.attack > 0 && s.pos < s.attack:
		return float64(s.pos) / float64(s.attack)
	case s.release > 0 && s.pos >= s.span-s.release:
		return math.Max(0, float64(s.span-s.pos)/float64(s.release))
	default:
		return 1
	}
}

func (s *shaper) Stream(samples [][2]float64) (int, bool) {
	if s.pos >= s.span {
		return 0, false
	}
	if left := s.span - s.pos; len(samples) > left {
		samples = samples[:left]
	}

	n, ok := s.src.Stream(samples)
	for i := range samples[:n] {
		l := s.level()
		samples[i][0] *= l
		samples[i][1] *= l
		s.pos++
	}
	return n, ok || n > 0
}

func (s *shaper) Err() error { return s.src.Err() }

// gain scales s linearly, zero or less is silent
func gain(s beep.Streamer, g float64) beep.Streamer {
	if g <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(g)}
}

// cuePartials is a sine fundamental with a quieter, shorter triangle overtone
func cuePartials(freq float64) []Partial {
	return []Partial{
		{Freq: freq, Wave: Sine, Gain: 0.8, Release: parameter.CueRelease},
		{Freq: freq * parameter.CueOvertone, Wave: Triangle, Gain: 0.2, Release: parameter.CueRelease / 2},
	}
}

// NewTone builds the transition cue at freq scaled by volume
func NewTone(freq, volume float64, rate beep.SampleRate) (beep.Streamer, error) {
	parts := cuePartials(freq)
	streams := make([]beep.Streamer, 0, len(parts))
	for _, p := range parts {
		s, err := NewPartial(p, parameter.CueDuration, rate)
		if err != nil {
			return nil, fmt.Errorf("cue partial %.1fHz: %w", p.Freq, err)
		}
		streams = append(streams, s)
	}
	// Take bounds the mix, which may keep streaming silence after its inputs end
	mixed := beep.Take(rate.N(parameter.CueDuration), beep.Mix(streams...))
	return gain(mixed, volume), nil
}
