package parameter

import "time"

// Navigation - Transition Lock
const (
	// NavCooldown is how long the transition lock is held after an accepted jump
	// Matches the slowest scene-enter animation
	NavCooldown = 700 * time.Millisecond

	// NavWheelDebounce is the minimum gap between wheel-driven transitions
	NavWheelDebounce = 700 * time.Millisecond
)

// Navigation - Gesture Thresholds
const (
	// NavWheelThreshold filters inertial and trackpad micro-scrolls (delta units)
	NavWheelThreshold = 20.0

	// NavTouchThreshold is the minimum vertical swipe displacement (px)
	NavTouchThreshold = 50.0
)

// Probe
const (
	// ProbeTolerance absorbs sub-pixel rounding in scroll edge measurement (px)
	ProbeTolerance = 5.0
)
