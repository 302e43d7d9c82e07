package scene

import (
	"errors"
	"fmt"
)

var (
	ErrEmpty       = errors.New("scene registry is empty")
	ErrMissingID   = errors.New("scene id is empty")
	ErrDuplicateID = errors.New("duplicate scene id")
)

// Descriptor is one full-viewport scene in the ordered deck
// Title, Body, Mascot and Preset are presentation payload, the engine never reads them
type Descriptor struct {
	ID                 string
	Ordinal            int
	OwnsInternalScroll bool

	Title  string
	Body   string
	Mascot string
	Preset map[string]any
}

// Registry is the ordered, immutable scene list shared by every component
type Registry struct {
	scenes []Descriptor
	byID   map[string]int
}

// New validates descriptors and freezes them into a registry
// Ordinals are reassigned from position
func New(descs []Descriptor) (*Registry, error) {
	if len(descs) == 0 {
		return nil, ErrEmpty
	}

	r := &Registry{
		scenes: make([]Descriptor, len(descs)),
		byID:   make(map[string]int, len(descs)),
	}

	for i, d := range descs {
		if d.ID == "" {
			return nil, fmt.Errorf("scene %d: %w", i, ErrMissingID)
		}
		if prev, ok := r.byID[d.ID]; ok {
			return nil, fmt.Errorf("scene %d %q (first at %d): %w", i, d.ID, prev, ErrDuplicateID)
		}
		d.Ordinal = i
		d.Preset = clonePreset(d.Preset)
		r.scenes[i] = d
		r.byID[d.ID] = i
	}

	return r, nil
}

// Len returns the scene count
func (r *Registry) Len() int {
	return len(r.scenes)
}

// At returns the descriptor at index
func (r *Registry) At(i int) (Descriptor, bool) {
	if i < 0 || i >= len(r.scenes) {
		return Descriptor{}, false
	}
	return r.scenes[i], true
}

// IndexOf returns the ordinal of the scene with the given id
func (r *Registry) IndexOf(id string) (int, bool) {
	i, ok := r.byID[id]
	return i, ok
}

// All returns a copy of the ordered descriptors
func (r *Registry) All() []Descriptor {
	out := make([]Descriptor, len(r.scenes))
	copy(out, r.scenes)
	return out
}

// Embedded returns the ids of scenes owning internal scroll content
func (r *Registry) Embedded() []string {
	var ids []string
	for _, d := range r.scenes {
		if d.OwnsInternalScroll {
			ids = append(ids, d.ID)
		}
	}
	return ids
}

func clonePreset(p map[string]any) map[string]any {
	if p == nil {
		return nil
	}
	out := make(map[string]any, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}
