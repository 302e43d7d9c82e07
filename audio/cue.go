package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/scrolldeck/navigation"
	"github.com/lixenwraith/scrolldeck/parameter"
)

const sampleRate = beep.SampleRate(parameter.AudioSampleRate)

// Cue plays a short tone on every accepted scene transition
// Silent until Initialize succeeds, a missing audio device never stops the deck
type Cue struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	sink        func(beep.Streamer)
	volume      float64
	initialized bool
	muted       bool
	lastPlay    time.Time
}

// NewCue creates an uninitialized cue, volume <= 0 uses the default
func NewCue(volume float64) *Cue {
	if volume <= 0 {
		volume = parameter.CueVolume
	}
	c := &Cue{
		mixer:  &beep.Mixer{},
		volume: volume,
	}
	c.sink = func(s beep.Streamer) {
		speaker.Lock()
		c.mixer.Add(s)
		speaker.Unlock()
	}
	return c
}

// Initialize opens the speaker and starts the mixer
func (c *Cue) Initialize() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(parameter.AudioBufferDuration)); err != nil {
		return err
	}

	speaker.Play(c.mixer)
	c.initialized = true
	return nil
}

// SetMuted toggles playback without closing the device
func (c *Cue) SetMuted(muted bool) {
	c.mu.Lock()
	c.muted = muted
	c.mu.Unlock()
}

// Play queues the tone for tr
// Tones closer together than the minimum gap are dropped
func (c *Cue) Play(tr navigation.Transition) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized || c.muted {
		return
	}
	now := time.Now()
	if now.Sub(c.lastPlay) < parameter.CueMinGap {
		return
	}

	tone, err := NewTone(Frequency(tr), c.volume, sampleRate)
	if err != nil {
		return
	}
	c.lastPlay = now
	c.sink(tone)
}

// Cleanup stops all queued tones
func (c *Cue) Cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return
	}

	// beep has no speaker Close, clearing the mixer silences it
	speaker.Lock()
	c.mixer.Clear()
	speaker.Unlock()
	c.initialized = false
}

// Frequency picks the pitch for a transition
func Frequency(tr navigation.Transition) float64 {
	switch {
	case tr.Source == navigation.SourceDirect:
		return parameter.CueJumpFreq
	case tr.To > tr.From:
		return parameter.CueNextFreq
	default:
		return parameter.CuePrevFreq
	}
}
