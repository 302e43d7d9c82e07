package parameter

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate = 44100

	// AudioBufferDuration determines speaker latency
	AudioBufferDuration = 100 * time.Millisecond
)

// Transition Cue
const (
	CueDuration = 120 * time.Millisecond
	CueAttack   = 5 * time.Millisecond
	CueRelease  = 90 * time.Millisecond

	// Pitch per direction, next rises and previous falls
	CueNextFreq = 659.25 // E5
	CuePrevFreq = 493.88 // B4
	CueJumpFreq = 587.33 // D5
	CueOvertone = 2.0
	CueVolume   = 0.35
	CueMinGap   = 50 * time.Millisecond
)
