package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/lixenwraith/scrolldeck/asset"
	"github.com/lixenwraith/scrolldeck/config"
	"github.com/lixenwraith/scrolldeck/marker"
	"github.com/lixenwraith/scrolldeck/probe"
	"github.com/lixenwraith/scrolldeck/scene"
	"github.com/lixenwraith/scrolldeck/session"
)

// loadConfig reads the config file and applies command-line overrides
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if scenesPath != "" {
		cfg.Scenes.Path = scenesPath
	}
	if markerPath != "" {
		cfg.Marker.Path = markerPath
	}
	if logFile != "" {
		cfg.Log.File = logFile
	}
	return cfg, nil
}

// loadDeck reads the configured scene deck or falls back to the built-in one
func loadDeck(cfg *config.Config) (*scene.Deck, error) {
	if cfg.Scenes.Path == "" {
		deck, err := scene.Parse(asset.DefaultDeck)
		if err != nil {
			return nil, fmt.Errorf("built-in scene deck: %w", err)
		}
		return deck, nil
	}
	return scene.Load(cfg.Scenes.Path)
}

// openMarker opens the configured intro marker store
// The closer is a no-op for stores without resources
func openMarker(cfg *config.Config) (marker.Marker, io.Closer, error) {
	switch cfg.Marker.Driver {
	case config.MarkerMemory:
		return marker.NewMemory(false), nopCloser{}, nil
	case config.MarkerFile:
		return marker.NewFile(cfg.MarkerPath()), nopCloser{}, nil
	case config.MarkerSQLite:
		m, err := marker.OpenSQLite(cfg.MarkerPath(), cfg.Marker.Key)
		if err != nil {
			return nil, nil, fmt.Errorf("opening intro marker: %w", err)
		}
		return m, m, nil
	default:
		return nil, nil, fmt.Errorf("unknown marker driver %q", cfg.Marker.Driver)
	}
}

// newSession assembles a session over root from the configuration
func newSession(cfg *config.Config, deck *scene.Deck, m marker.Marker, root probe.ContentRoot, logger *slog.Logger) *session.Session {
	return session.New(deck, m, root, session.Options{
		Navigation: cfg.NavigationPolicy(),
		Intro:      cfg.IntroOptions(),
		Prober:     probe.New(cfg.Probe.Tolerance),
		Anchor:     anchor,
		Logger:     logger,
	})
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
