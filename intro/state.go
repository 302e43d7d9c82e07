package intro

import "fmt"

// State is the intro gate lifecycle
type State uint8

const (
	StateLoading State = iota
	StatePlaying
	StateDone
)

var stateNames = [...]string{
	StateLoading: "loading",
	StatePlaying: "playing",
	StateDone:    "done",
}

// String returns the state name
func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}

// MarshalText encodes the state by name
func (s State) MarshalText() ([]byte, error) {
	if int(s) >= len(stateNames) {
		return nil, fmt.Errorf("invalid intro state %d", s)
	}
	return []byte(stateNames[s]), nil
}

// UnmarshalText decodes a state name
func (s *State) UnmarshalText(text []byte) error {
	for i, name := range stateNames {
		if name == string(text) {
			*s = State(i)
			return nil
		}
	}
	return fmt.Errorf("unknown intro state %q", text)
}

// Phase is the animation sub-phase while playing
type Phase uint8

const (
	PhaseNone Phase = iota
	PhaseGather
	PhaseReveal
)

var phaseNames = [...]string{
	PhaseNone:   "none",
	PhaseGather: "gather",
	PhaseReveal: "reveal",
}

// String returns the phase name
func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return "unknown"
}

// MarshalText encodes the phase by name
func (p Phase) MarshalText() ([]byte, error) {
	if int(p) >= len(phaseNames) {
		return nil, fmt.Errorf("invalid intro phase %d", p)
	}
	return []byte(phaseNames[p]), nil
}

// UnmarshalText decodes a phase name
func (p *Phase) UnmarshalText(text []byte) error {
	for i, name := range phaseNames {
		if name == string(text) {
			*p = Phase(i)
			return nil
		}
	}
	return fmt.Errorf("unknown intro phase %q", text)
}
