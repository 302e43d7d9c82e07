package navigation

import (
	"time"

	"github.com/lixenwraith/scrolldeck/parameter"
)

// Config holds the navigation policy constants
type Config struct {
	// Cooldown is how long the transition lock is held after an accepted jump
	Cooldown time.Duration
	// WheelDebounce is the minimum gap after an accepted wheel-driven transition
	WheelDebounce time.Duration
	// WheelThreshold is the smallest |deltaY| that counts as a page gesture
	WheelThreshold float64
	// TouchThreshold is the smallest |displacement| in px that counts as a swipe
	TouchThreshold float64
}

// DefaultConfig returns the compiled-in policy
func DefaultConfig() Config {
	return Config{
		Cooldown:       parameter.NavCooldown,
		WheelDebounce:  parameter.NavWheelDebounce,
		WheelThreshold: parameter.NavWheelThreshold,
		TouchThreshold: parameter.NavTouchThreshold,
	}
}

// IsZero reports whether no policy field was set
func (c Config) IsZero() bool {
	return c == Config{}
}

// normalized replaces unset or invalid fields with defaults
// The zero Config means the full default policy
func (c Config) normalized() Config {
	def := DefaultConfig()
	if c.IsZero() {
		return def
	}
	if c.Cooldown <= 0 {
		c.Cooldown = def.Cooldown
	}
	if c.WheelDebounce < 0 {
		c.WheelDebounce = def.WheelDebounce
	}
	if c.WheelThreshold < 0 {
		c.WheelThreshold = def.WheelThreshold
	}
	if c.TouchThreshold < 0 {
		c.TouchThreshold = def.TouchThreshold
	}
	return c
}
