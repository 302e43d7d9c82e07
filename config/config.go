package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/lixenwraith/scrolldeck/intro"
	"github.com/lixenwraith/scrolldeck/navigation"
	"github.com/lixenwraith/scrolldeck/parameter"
)

// EnvPrefix prefixes environment overrides, nested keys join with a double underscore
// SCROLLDECK_NAVIGATION__COOLDOWN=1s sets navigation.cooldown
const EnvPrefix = "SCROLLDECK_"

// DefaultPath is the config file read when none is given
const DefaultPath = "scrolldeck.yml"

// DefaultConfig returns the compiled-in configuration
func DefaultConfig() *Config {
	return &Config{
		Navigation: NavigationConfig{
			Cooldown:       parameter.NavCooldown,
			WheelDebounce:  parameter.NavWheelDebounce,
			WheelThreshold: parameter.NavWheelThreshold,
			TouchThreshold: parameter.NavTouchThreshold,
		},
		Probe: ProbeConfig{Tolerance: parameter.ProbeTolerance},
		Intro: IntroConfig{
			Gather:    parameter.IntroGather,
			Total:     parameter.IntroTotal,
			Skippable: true,
		},
		Marker: MarkerConfig{
			Driver: MarkerSQLite,
			Key:    parameter.IntroMarkerKey,
		},
		Server: ServerConfig{Addr: parameter.ServerAddr},
		Terminal: TerminalConfig{
			CellHeight: parameter.TermCellHeight,
			WheelDelta: parameter.TermWheelDelta,
			Sound:      true,
		},
	}
}

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (SCROLLDECK_*)
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	cfg := DefaultConfig()

	// A missing file leaves the defaults in place
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// envKey maps SCROLLDECK_TERMINAL__CELL_HEIGHT_PX to terminal.cell_height_px
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

// Save writes the configuration to the given YAML file path
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

var validDrivers = map[MarkerDriver]bool{
	MarkerSQLite: true,
	MarkerFile:   true,
	MarkerMemory: true,
}

// Validate checks that the configuration contains valid values
func (c *Config) Validate() error {
	if c.Navigation.Cooldown <= 0 {
		return fmt.Errorf("navigation.cooldown must be positive")
	}
	if c.Navigation.WheelDebounce < 0 {
		return fmt.Errorf("navigation.wheel_debounce must be non-negative")
	}
	if c.Navigation.WheelThreshold < 0 || c.Navigation.TouchThreshold < 0 {
		return fmt.Errorf("navigation thresholds must be non-negative")
	}
	if c.Probe.Tolerance <= 0 {
		return fmt.Errorf("probe.tolerance must be positive")
	}
	if c.Intro.Gather <= 0 || c.Intro.Total <= 0 {
		return fmt.Errorf("intro timings must be positive")
	}
	if c.Intro.Gather >= c.Intro.Total {
		return fmt.Errorf("intro.gather %s must end before intro.total %s", c.Intro.Gather, c.Intro.Total)
	}
	if !validDrivers[c.Marker.Driver] {
		return fmt.Errorf("invalid marker.driver %q: must be one of sqlite, file, memory", c.Marker.Driver)
	}
	if c.Terminal.CellHeight <= 0 || c.Terminal.WheelDelta <= 0 {
		return fmt.Errorf("terminal cell_height_px and wheel_delta must be positive")
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	return nil
}

// MarkerPath returns the configured marker path or the driver default
func (c *Config) MarkerPath() string {
	if c.Marker.Path != "" {
		return c.Marker.Path
	}
	switch c.Marker.Driver {
	case MarkerSQLite:
		return parameter.IntroMarkerDB
	case MarkerFile:
		return parameter.IntroMarkerFile
	default:
		return ""
	}
}

// NavigationPolicy converts the navigation section for the engine
func (c *Config) NavigationPolicy() navigation.Config {
	return navigation.Config{
		Cooldown:       c.Navigation.Cooldown,
		WheelDebounce:  c.Navigation.WheelDebounce,
		WheelThreshold: c.Navigation.WheelThreshold,
		TouchThreshold: c.Navigation.TouchThreshold,
	}
}

// IntroOptions converts the intro section for the gate
func (c *Config) IntroOptions() intro.Options {
	return intro.Options{
		Gather: c.Intro.Gather,
		Total:  c.Intro.Total,
	}
}
