package scene

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// deckFile is the on-disk scene deck layout
type deckFile struct {
	Scenes []sceneEntry      `yaml:"scenes"`
	Links  map[string]string `yaml:"links"`
}

type sceneEntry struct {
	ID     string         `yaml:"id"`
	Embed  bool           `yaml:"embed"`
	Title  string         `yaml:"title"`
	Body   string         `yaml:"body"`
	Mascot string         `yaml:"mascot"`
	Preset map[string]any `yaml:"preset"`
}

// Deck is a loaded registry with its deep-link table
type Deck struct {
	Registry *Registry
	Links    *Links
}

// Load reads a YAML scene deck from path
func Load(path string) (*Deck, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scene deck %s: %w", path, err)
	}
	deck, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("scene deck %s: %w", path, err)
	}
	return deck, nil
}

// Parse decodes a YAML scene deck
func Parse(data []byte) (*Deck, error) {
	var f deckFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing scene deck: %w", err)
	}

	descs := make([]Descriptor, 0, len(f.Scenes))
	for _, s := range f.Scenes {
		descs = append(descs, Descriptor{
			ID:                 s.ID,
			OwnsInternalScroll: s.Embed,
			Title:              s.Title,
			Body:               s.Body,
			Mascot:             s.Mascot,
			Preset:             s.Preset,
		})
	}

	reg, err := New(descs)
	if err != nil {
		return nil, err
	}

	for frag, id := range f.Links {
		if _, ok := reg.IndexOf(id); !ok {
			return nil, fmt.Errorf("link %q targets unknown scene %q", frag, id)
		}
	}

	return &Deck{Registry: reg, Links: NewLinks(reg, f.Links)}, nil
}
