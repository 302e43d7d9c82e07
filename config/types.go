package config

import "time"

// MarkerDriver selects the intro marker store
type MarkerDriver string

const (
	MarkerSQLite MarkerDriver = "sqlite"
	MarkerFile   MarkerDriver = "file"
	MarkerMemory MarkerDriver = "memory"
)

// Config is the top-level scrolldeck configuration, corresponding to scrolldeck.yml
type Config struct {
	Navigation NavigationConfig `yaml:"navigation" koanf:"navigation"`
	Probe      ProbeConfig      `yaml:"probe" koanf:"probe"`
	Intro      IntroConfig      `yaml:"intro" koanf:"intro"`
	Marker     MarkerConfig     `yaml:"marker" koanf:"marker"`
	Scenes     ScenesConfig     `yaml:"scenes" koanf:"scenes"`
	Server     ServerConfig     `yaml:"server" koanf:"server"`
	Terminal   TerminalConfig   `yaml:"terminal" koanf:"terminal"`
	Log        LogConfig        `yaml:"log" koanf:"log"`
}

// NavigationConfig holds the transition policy
type NavigationConfig struct {
	Cooldown       time.Duration `yaml:"cooldown" koanf:"cooldown"`
	WheelDebounce  time.Duration `yaml:"wheel_debounce" koanf:"wheel_debounce"`
	WheelThreshold float64       `yaml:"wheel_threshold" koanf:"wheel_threshold"`
	TouchThreshold float64       `yaml:"touch_threshold" koanf:"touch_threshold"`
}

// ProbeConfig holds the scroll edge tolerance in px
type ProbeConfig struct {
	Tolerance float64 `yaml:"tolerance" koanf:"tolerance"`
}

// IntroConfig holds the intro timings
type IntroConfig struct {
	Gather    time.Duration `yaml:"gather" koanf:"gather"`
	Total     time.Duration `yaml:"total" koanf:"total"`
	Skippable bool          `yaml:"skippable" koanf:"skippable"`
}

// MarkerConfig selects where the "intro seen" flag persists
type MarkerConfig struct {
	Driver MarkerDriver `yaml:"driver" koanf:"driver"`
	// Path is the file or database path, empty uses the driver default
	Path string `yaml:"path" koanf:"path"`
	Key  string `yaml:"key" koanf:"key"`
}

// ScenesConfig locates the scene deck, empty path uses the embedded deck
type ScenesConfig struct {
	Path string `yaml:"path" koanf:"path"`
}

// ServerConfig holds the broadcast server settings
type ServerConfig struct {
	Addr     string `yaml:"addr" koanf:"addr"`
	AllowAll bool   `yaml:"allow_all_origins" koanf:"allow_all_origins"`
}

// TerminalConfig holds the terminal host settings
type TerminalConfig struct {
	CellHeight float64 `yaml:"cell_height_px" koanf:"cell_height_px"`
	WheelDelta float64 `yaml:"wheel_delta" koanf:"wheel_delta"`
	Sound      bool    `yaml:"sound" koanf:"sound"`
}

// LogConfig holds the debug log location
type LogConfig struct {
	File string `yaml:"file" koanf:"file"`
}
