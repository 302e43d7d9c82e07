package navigation

import (
	"math"
	"time"

	"github.com/lixenwraith/scrolldeck/probe"
)

// Direction is the page direction requested by an input
type Direction uint8

const (
	DirNone Direction = iota
	DirNext
	DirPrev
)

// String returns the direction name
func (d Direction) String() string {
	switch d {
	case DirNone:
		return "none"
	case DirNext:
		return "next"
	case DirPrev:
		return "prev"
	default:
		return "unknown"
	}
}

// Reason explains why an input did not produce a transition
type Reason uint8

const (
	ReasonNone Reason = iota
	ReasonEdgeGuard
	ReasonDebounce
	ReasonThreshold
	ReasonNoDirection
	ReasonNoGesture
	ReasonUnbound
	ReasonLocked
	ReasonSameIndex
	ReasonIntro
	ReasonClosed
)

var reasonNames = [...]string{
	ReasonNone:        "none",
	ReasonEdgeGuard:   "edge_guard",
	ReasonDebounce:    "debounce",
	ReasonThreshold:   "threshold",
	ReasonNoDirection: "no_direction",
	ReasonNoGesture:   "no_gesture",
	ReasonUnbound:     "unbound",
	ReasonLocked:      "locked",
	ReasonSameIndex:   "same_index",
	ReasonIntro:       "intro_incomplete",
	ReasonClosed:      "closed",
}

// String returns the reason name used in logs
func (r Reason) String() string {
	if int(r) < len(reasonNames) {
		return reasonNames[r]
	}
	return "unknown"
}

// Key is a navigation-relevant key, hosts map their native key codes onto it
type Key uint8

const (
	KeyNone Key = iota
	KeyDown
	KeySpace
	KeyUp
)

// keyDirection maps the "next" group (down, space) and "previous" key (up)
func keyDirection(k Key) Direction {
	switch k {
	case KeyDown, KeySpace:
		return DirNext
	case KeyUp:
		return DirPrev
	case KeyNone:
		return DirNone
	default:
		return DirNone
	}
}

// Decision is the outcome of one input event
// PreventDefault false means the host lets the event scroll the scene natively
type Decision struct {
	Direction      Direction
	PreventDefault bool
	Reason         Reason
	// Accepted is set by the engine once jumpTo took the transition
	Accepted bool
}

// EdgeAllows is the scroll-edge guard
// A scrollable scene must sit at the edge facing dir before page navigation may occur
func EdgeAllows(res probe.Result, dir Direction) bool {
	if !res.Scrollable {
		return true
	}
	switch dir {
	case DirNext:
		return res.AtBottom
	case DirPrev:
		return res.AtTop
	case DirNone:
		return false
	default:
		return false
	}
}

// DecideWheel evaluates a wheel event: edge guard, then debounce, then magnitude
// lastAccepted is the time of the previous accepted wheel-driven transition, zero if none
func DecideWheel(deltaY float64, res probe.Result, lastAccepted, now time.Time, cfg Config) Decision {
	dir := wheelDirection(deltaY)
	if dir == DirNone {
		return Decision{Reason: ReasonNoDirection}
	}

	if !EdgeAllows(res, dir) {
		return Decision{Reason: ReasonEdgeGuard}
	}

	if !lastAccepted.IsZero() && now.Sub(lastAccepted) < cfg.WheelDebounce {
		return Decision{PreventDefault: true, Reason: ReasonDebounce}
	}

	if math.Abs(deltaY) < cfg.WheelThreshold {
		return Decision{PreventDefault: true, Reason: ReasonThreshold}
	}

	return Decision{Direction: dir, PreventDefault: true}
}

// DecideTouch evaluates a completed vertical swipe
// Displacement is startY - endY: an upward swipe is positive and advances
func DecideTouch(startY, endY float64, res probe.Result, cfg Config) Decision {
	disp := startY - endY
	if math.IsNaN(disp) || math.Abs(disp) < cfg.TouchThreshold {
		return Decision{Reason: ReasonThreshold}
	}

	dir := DirNext
	if disp < 0 {
		dir = DirPrev
	}

	if !EdgeAllows(res, dir) {
		return Decision{Reason: ReasonEdgeGuard}
	}
	return Decision{Direction: dir, PreventDefault: true}
}

// DecideKey evaluates a key press
// Only keys that pass the guard prevent default, guarded keys scroll the scene
func DecideKey(k Key, res probe.Result) Decision {
	dir := keyDirection(k)
	if dir == DirNone {
		return Decision{Reason: ReasonUnbound}
	}
	if !EdgeAllows(res, dir) {
		return Decision{Reason: ReasonEdgeGuard}
	}
	return Decision{Direction: dir, PreventDefault: true}
}

func wheelDirection(deltaY float64) Direction {
	switch {
	case deltaY > 0:
		return DirNext
	case deltaY < 0:
		return DirPrev
	default:
		return DirNone
	}
}
